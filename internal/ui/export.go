package ui

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/thesavant42/gitsome-header/internal/models"
)

// DefaultExportFilename returns <login>-header-<date>.md
func DefaultExportFilename(login string, now time.Time) string {
	safe := strings.NewReplacer("/", "-", "\\", "-", " ", "-").Replace(login)
	if safe == "" {
		safe = "profile"
	}
	return fmt.Sprintf("%s-header-%s.md", safe, now.Format("2006-01-02"))
}

// escapeTableCell keeps a value from breaking a Markdown table row
func escapeTableCell(s string) string {
	s = strings.ReplaceAll(s, "|", "\\|")
	return strings.Join(strings.Fields(s), " ")
}

// GenerateHeaderMarkdown renders the header and repository list as Markdown
func GenerateHeaderMarkdown(p models.UserProfile, repos []models.UserRepository, generated time.Time) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("# %s\n\n", p.DisplayName()))
	if p.Name != "" && p.Login != "" {
		sb.WriteString(fmt.Sprintf("**Login:** [@%s](%s)\n", p.Login, p.HTMLURL))
	}
	if p.Location != "" {
		sb.WriteString(fmt.Sprintf("**Location:** %s\n", p.Location))
	}
	if p.Company != "" {
		sb.WriteString(fmt.Sprintf("**Company:** %s\n", p.Company))
	}
	if p.HasBlog() {
		sb.WriteString(fmt.Sprintf("**Blog:** <%s>\n", p.BlogURL()))
	} else {
		sb.WriteString("**Blog:** not set\n")
	}
	sb.WriteString(fmt.Sprintf("**Generated:** %s\n\n", generated.Format("2006-01-02 15:04:05")))

	if bio := strings.TrimSpace(p.Bio); bio != "" {
		sb.WriteString("> " + strings.Join(strings.Fields(bio), " ") + "\n\n")
	}

	sb.WriteString("| Repositories | Followers | Following |\n")
	sb.WriteString("|--------------|-----------|-----------|\n")
	sb.WriteString(fmt.Sprintf("| %d | %d | %d |\n\n", p.PublicRepos, p.Followers, p.Following))

	if url := p.RepositoriesURL(); url != "" {
		sb.WriteString(fmt.Sprintf("## [Repositories](%s)\n\n", url))
	} else {
		sb.WriteString("## Repositories\n\n")
	}

	if len(repos) == 0 {
		sb.WriteString("No repositories\n")
		return sb.String()
	}

	sb.WriteString("| Name | Stars | Forks | Language | Description |\n")
	sb.WriteString("|------|-------|-------|----------|-------------|\n")
	for _, r := range repos {
		name := escapeTableCell(r.Name)
		if r.URL != "" {
			name = fmt.Sprintf("[%s](%s)", name, r.URL)
		}
		if r.IsFork {
			name += " (fork)"
		}
		lang := r.PrimaryLanguage
		if lang == "" {
			lang = "-"
		}
		sb.WriteString(fmt.Sprintf("| %s | %d | %d | %s | %s |\n",
			name, r.StargazerCount, r.ForkCount, escapeTableCell(lang), escapeTableCell(r.Description)))
	}

	return sb.String()
}

// ExportHeaderMarkdown writes the Markdown export to filename
func ExportHeaderMarkdown(p models.UserProfile, repos []models.UserRepository, filename string) error {
	content := GenerateHeaderMarkdown(p, repos, time.Now())
	if err := os.WriteFile(filename, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write markdown file: %w", err)
	}
	return nil
}
