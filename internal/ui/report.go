package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/thesavant42/gitsome-header/internal/models"
)

// CLI output (non-interactive). Lipgloss is used only for colors here; the
// interactive screens use bubbles components.

var (
	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("82")).
			Bold(true)

	summaryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")).
			Italic(true)
)

// PrintSuccess prints a success message
func PrintSuccess(message string) {
	fmt.Println(successStyle.Render(message))
}

// PrintError prints an error message
func PrintError(message string) {
	fmt.Println(ErrorStyle.Render("Error: " + message))
}

// PrintWarning prints a non-fatal warning
func PrintWarning(message string) {
	fmt.Println(StatusStyle.Render(message))
}

// ProfileSummary is the one-line summary printed after a fetch or export
func ProfileSummary(p models.UserProfile, repoCount int) string {
	return fmt.Sprintf("%s: %s public repos, %s followers, %s following (%d listed)",
		p.DisplayName(),
		humanize.Comma(int64(p.PublicRepos)),
		humanize.Comma(int64(p.Followers)),
		humanize.Comma(int64(p.Following)),
		repoCount,
	)
}

// PrintSummary prints ProfileSummary in the summary style
func PrintSummary(p models.UserProfile, repoCount int) {
	fmt.Println(summaryStyle.Render(ProfileSummary(p, repoCount)))
}
