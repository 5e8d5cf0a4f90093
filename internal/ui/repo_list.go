package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/dustin/go-humanize"
	"github.com/thesavant42/gitsome-header/internal/models"
)

// repoColumns returns the repository table columns sized to the layout
func repoColumns(layout Layout) []table.Column {
	return CalculateColumns(RepositoryColumns(), layout.InnerWidth)
}

// repoRows converts repositories to table rows
func repoRows(repos []models.UserRepository) []table.Row {
	rows := make([]table.Row, len(repos))
	for i, r := range repos {
		name := r.Name
		if r.IsFork {
			name += " (fork)"
		}
		lang := r.PrimaryLanguage
		if lang == "" {
			lang = "-"
		}
		pushed := "-"
		if !r.PushedAt.IsZero() {
			pushed = humanize.Time(r.PushedAt)
		}
		rows[i] = table.Row{
			name,
			humanize.Comma(int64(r.StargazerCount)),
			humanize.Comma(int64(r.ForkCount)),
			lang,
			pushed,
		}
	}
	return rows
}

// InitTable creates and configures a table with proper styling and dimensions.
func InitTable(columns []table.Column, rows []table.Row, height int) table.Model {
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(height),
	)

	ApplyTableStyles(&t)

	// Ensure cursor starts at the top for proper viewport positioning
	t.GotoTop()

	return t
}

// RepoList is the repository table rendered beneath the header
type RepoList struct {
	repos []models.UserRepository
	table table.Model
}

// NewRepoList builds the list for the given layout
func NewRepoList(repos []models.UserRepository, layout Layout) RepoList {
	l := RepoList{
		repos: repos,
		table: InitTable(repoColumns(layout), repoRows(repos), RepoTableHeight),
	}
	l.resetCursor()
	return l
}

// SetRepos replaces the listed repositories
func (l *RepoList) SetRepos(repos []models.UserRepository) {
	l.repos = repos
	l.table.SetRows(repoRows(repos))
	l.resetCursor()
}

// resetCursor moves the cursor to the first row when it is out of range.
// table.SetRows clamps it to -1 on an empty table.
func (l *RepoList) resetCursor() {
	if c := l.table.Cursor(); len(l.repos) > 0 && (c < 0 || c >= len(l.repos)) {
		l.table.SetCursor(0)
	}
}

// Resize re-derives column widths from the layout
func (l *RepoList) Resize(layout Layout) {
	l.table.SetColumns(repoColumns(layout))
}

// MoveUp moves the cursor up one row
func (l *RepoList) MoveUp() { l.table.MoveUp(1) }

// MoveDown moves the cursor down one row
func (l *RepoList) MoveDown() { l.table.MoveDown(1) }

// Selected returns the repository under the cursor
func (l RepoList) Selected() (models.UserRepository, bool) {
	i := l.table.Cursor()
	if i < 0 || i >= len(l.repos) {
		return models.UserRepository{}, false
	}
	return l.repos[i], true
}

// Len returns the number of listed repositories
func (l RepoList) Len() int { return len(l.repos) }

// View renders the table, or a hint when empty
func (l RepoList) View() string {
	if len(l.repos) == 0 {
		return HintStyle.Render("No repositories loaded.")
	}
	var b strings.Builder
	b.WriteString(l.table.View())
	b.WriteString("\n")
	b.WriteString(RenderDim(fmt.Sprintf("%d of %d", l.table.Cursor()+1, len(l.repos))))
	return b.String()
}
