package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
	"github.com/thesavant42/gitsome-header/internal/header"
	"github.com/thesavant42/gitsome-header/internal/models"
)

const refreshTimeout = 45 * time.Second

// Button indices in the button row
const (
	buttonSeeAll = iota
	buttonViewBlog
	buttonCount
)

// Refresher reloads the profile and its repositories
type Refresher func(ctx context.Context) (*models.UserProfile, []models.UserRepository, error)

// stateChangedMsg signals that the header store changed
type stateChangedMsg struct{}

// refreshDoneMsg carries the result of a refresh
type refreshDoneMsg struct {
	repos []models.UserRepository
	err   error
}

// HeaderModel renders the repositories list header and drives its store
type HeaderModel struct {
	ScreenState

	store       *header.Store
	state       header.State
	changes     chan struct{}
	unsubscribe func()

	keys  headerKeyMap
	help  help.Model
	focus int

	repos      RepoList
	blogs      BlogSource
	viewer     BlogViewerModel
	mounted    bool
	refresher  Refresher
	refreshing bool

	logger *log.Logger
}

// HeaderOption configures a HeaderModel
type HeaderOption func(*HeaderModel)

// WithRepositories sets the repositories listed beneath the header
func WithRepositories(repos []models.UserRepository) HeaderOption {
	return func(m *HeaderModel) { m.repos.SetRepos(repos) }
}

// WithBlogSource sets the loader used by the embedded blog viewer
func WithBlogSource(src BlogSource) HeaderOption {
	return func(m *HeaderModel) { m.blogs = src }
}

// WithRefresher enables the refresh key
func WithRefresher(r Refresher) HeaderOption {
	return func(m *HeaderModel) { m.refresher = r }
}

// WithHeaderLogger sets the UI logger
func WithHeaderLogger(logger *log.Logger) HeaderOption {
	return func(m *HeaderModel) { m.logger = logger }
}

// NewHeaderModel creates the header screen over store and subscribes to it
func NewHeaderModel(store *header.Store, opts ...HeaderOption) HeaderModel {
	layout := DefaultLayout()
	m := HeaderModel{
		ScreenState: NewScreenState(layout),
		store:       store,
		state:       store.Snapshot(),
		changes:     make(chan struct{}, 1),
		keys:        newHeaderKeyMap(),
		help:        help.New(),
		repos:       NewRepoList(nil, layout),
	}
	for _, opt := range opts {
		opt(&m)
	}

	changes := m.changes
	m.unsubscribe = store.Subscribe(func(header.State) {
		// Coalesce: the model always reads the latest snapshot
		select {
		case changes <- struct{}{}:
		default:
		}
	})

	m.apply(m.state)
	return m
}

// waitForChange blocks until the store signals a change
func waitForChange(ch <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		<-ch
		return stateChangedMsg{}
	}
}

// Init implements tea.Model
func (m HeaderModel) Init() tea.Cmd {
	cmds := []tea.Cmd{tea.WindowSize(), waitForChange(m.changes)}
	if m.mounted {
		cmds = append(cmds, m.viewer.Init())
	}
	return tea.Batch(cmds...)
}

// State returns the last store snapshot the model rendered
func (m HeaderModel) State() header.State { return m.state }

// Focus returns the focused button index
func (m HeaderModel) Focus() int { return m.focus }

// Viewer returns the mounted blog viewer, if any
func (m HeaderModel) Viewer() (BlogViewerModel, bool) { return m.viewer, m.mounted }

// apply syncs the model with a store snapshot, mounting or unmounting the
// blog viewer as needed
func (m *HeaderModel) apply(st header.State) tea.Cmd {
	m.state = st
	if !st.ShowBlog {
		m.mounted = false
		m.viewer = BlogViewerModel{}
		return nil
	}
	if m.mounted && m.viewer.Generation() == st.Generation {
		return nil
	}
	m.viewer = NewBlogViewer(st.MountedURL, st.Generation, m.blogs, m.Layout)
	m.mounted = true
	if m.logger != nil {
		m.logger.Info("Mounted blog viewer", "url", st.MountedURL, "generation", st.Generation)
	}
	return m.viewer.Init()
}

// Update implements tea.Model
func (m HeaderModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	m.ClearExpiredStatus()

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Resize(msg.Width, msg.Height)
		m.repos.Resize(m.Layout)
		m.help.Width = m.Layout.InnerWidth
		if m.mounted {
			var cmd tea.Cmd
			m.viewer, cmd = m.viewer.Update(msg)
			return m, cmd
		}
		return m, nil

	case stateChangedMsg:
		cmd := m.apply(m.store.Snapshot())
		return m, tea.Batch(cmd, waitForChange(m.changes))

	case refreshDoneMsg:
		m.refreshing = false
		if msg.err != nil {
			m.Fail("Refresh failed", msg.err)
			return m, nil
		}
		// An empty list replaces the old one: the user may have no repos now
		m.repos.SetRepos(msg.repos)
		m.Notify("Profile refreshed")
		cmd := m.apply(m.store.Snapshot())
		return m, cmd

	case blogLoadedMsg:
		if !m.mounted {
			return m, nil
		}
		var cmd tea.Cmd
		m.viewer, cmd = m.viewer.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m.quit()
		}
		switch {
		case m.state.NotFound:
			return m.handleDialogKeys(msg)
		case m.mounted:
			return m.handleViewerKeys(msg)
		default:
			return m.handleHeaderKeys(msg)
		}
	}

	if m.mounted {
		var cmd tea.Cmd
		m.viewer, cmd = m.viewer.Update(msg)
		return m, cmd
	}
	return m, nil
}

// handleDialogKeys handles keys while the not-found notice is open; it is
// modal, so every other key is ignored
func (m HeaderModel) handleDialogKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Dismiss) {
		cmd := m.apply(m.store.DismissNotFound())
		return m, cmd
	}
	return m, nil
}

// handleViewerKeys handles keys while the blog page is mounted
func (m HeaderModel) handleViewerKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Close):
		cmd := m.apply(m.store.CloseBlog())
		return m, cmd
	case key.Matches(msg, m.keys.OpenPage):
		m.reportLaunch(m.store.OpenMounted())
		return m, nil
	}
	var cmd tea.Cmd
	m.viewer, cmd = m.viewer.Update(msg)
	return m, cmd
}

// handleHeaderKeys handles keys on the header itself
func (m HeaderModel) handleHeaderKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()

	case key.Matches(msg, m.keys.Left):
		m.focus = (m.focus + buttonCount - 1) % buttonCount
	case key.Matches(msg, m.keys.Right):
		m.focus = (m.focus + 1) % buttonCount

	case key.Matches(msg, m.keys.Activate):
		if m.focus == buttonSeeAll {
			m.reportLaunch(m.store.SeeAll())
			return m, nil
		}
		cmd := m.apply(m.store.ViewBlog())
		return m, cmd

	case key.Matches(msg, m.keys.SeeAll):
		m.focus = buttonSeeAll
		m.reportLaunch(m.store.SeeAll())
	case key.Matches(msg, m.keys.ViewBlog):
		m.focus = buttonViewBlog
		cmd := m.apply(m.store.ViewBlog())
		return m, cmd
	case key.Matches(msg, m.keys.Avatar):
		m.reportLaunch(m.store.OpenAvatar())

	case key.Matches(msg, m.keys.Up):
		m.repos.MoveUp()
	case key.Matches(msg, m.keys.Down):
		m.repos.MoveDown()
	case key.Matches(msg, m.keys.OpenRepo):
		if r, ok := m.repos.Selected(); ok {
			m.reportLaunch(m.store.Open(r.URL))
		}

	case key.Matches(msg, m.keys.Refresh):
		if m.refresher != nil && !m.refreshing {
			m.refreshing = true
			m.Pending("Refreshing...")
			return m, m.refresh()
		}
	}
	return m, nil
}

// refresh reloads the profile; the store change reaches the model through
// its subscription
func (m HeaderModel) refresh() tea.Cmd {
	refresher, store := m.refresher, m.store
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
		defer cancel()
		profile, repos, err := refresher(ctx)
		if err != nil {
			return refreshDoneMsg{err: err}
		}
		if profile != nil {
			store.SetProfile(*profile)
		}
		return refreshDoneMsg{repos: repos}
	}
}

func (m *HeaderModel) reportLaunch(err error) {
	if err != nil {
		m.Fail("Could not open browser", err)
	}
}

func (m HeaderModel) quit() (tea.Model, tea.Cmd) {
	m.Quitting = true
	if m.unsubscribe != nil {
		m.unsubscribe()
	}
	return m, tea.Quit
}

// =============================================================================
// View
// =============================================================================

// View implements tea.Model
func (m HeaderModel) View() string {
	if m.Quitting {
		return ""
	}

	if m.mounted {
		return TwoBoxView(m.viewer.View(), m.help.ShortHelpView(m.keys.viewerHelp()), m.Layout)
	}

	var b strings.Builder
	b.WriteString(RenderHeader(m.state.Profile, m.focus, m.Layout))
	b.WriteString("\n")

	if m.state.NotFound {
		b.WriteString("\n")
		b.WriteString(lipgloss.PlaceHorizontal(m.Layout.InnerWidth, lipgloss.Center, RenderNotFoundDialog(m.state.Profile)))
		b.WriteString("\n")
	} else {
		b.WriteString(FullWidthDivider(m.Layout.InnerWidth))
		b.WriteString("\n")
		b.WriteString(m.repos.View())
	}

	if line := m.StatusLine(); line != "" {
		b.WriteString("\n")
		b.WriteString(line)
	}

	helpText := m.help.ShortHelpView(m.keys.headerHelp(m.refresher != nil))
	if m.state.NotFound {
		helpText = m.help.ShortHelpView(m.keys.dialogHelp())
	}
	return TwoBoxView(b.String(), helpText, m.Layout)
}

// RenderHeader renders the avatar and score row, the detail text and the
// button row for a profile
func RenderHeader(p models.UserProfile, focus int, layout Layout) string {
	top := lipgloss.JoinHorizontal(lipgloss.Center,
		RenderAvatar(p),
		"   ",
		RenderScoreRow(p),
	)
	return lipgloss.JoinVertical(lipgloss.Left,
		top,
		"",
		RenderDetail(p, layout.InnerWidth),
		"",
		RenderButtonRow(focus),
	)
}

// RenderAvatar renders the avatar as an initials badge
func RenderAvatar(p models.UserProfile) string {
	return AvatarStyle.Render(p.Initials())
}

// RenderStat renders one count with its label beneath
func RenderStat(label string, count int) string {
	return lipgloss.JoinVertical(lipgloss.Center,
		StatValueStyle.Render(humanize.Comma(int64(count))),
		RenderDim(label),
	)
}

// RenderScoreRow renders the repositories, followers and following counts
func RenderScoreRow(p models.UserProfile) string {
	return lipgloss.JoinHorizontal(lipgloss.Top,
		RenderStat("Repositories", p.PublicRepos),
		"    ",
		RenderStat("Followers", p.Followers),
		"    ",
		RenderStat("Following", p.Following),
	)
}

// RenderDetail renders the name, location and short bio
func RenderDetail(p models.UserProfile, width int) string {
	var lines []string

	name := TitleStyle.Render(p.DisplayName())
	if p.Name != "" && p.Login != "" {
		name += " " + RenderDim("@"+p.Login)
	}
	lines = append(lines, name)

	var facts []string
	if loc := strings.TrimSpace(p.Location); loc != "" {
		facts = append(facts, "Location: "+loc)
	}
	if company := strings.TrimSpace(p.Company); company != "" {
		facts = append(facts, company)
	}
	if len(facts) > 0 {
		lines = append(lines, RenderNormal(strings.Join(facts, "  ·  ")))
	}

	if bio := strings.Join(strings.Fields(p.Bio), " "); bio != "" {
		lines = append(lines, HintStyle.Render(truncateToWidth(bio, width)))
	}

	if !p.FetchedAt.IsZero() {
		lines = append(lines, RenderDim(fmt.Sprintf("updated %s", humanize.Time(p.FetchedAt))))
	}

	return strings.Join(lines, "\n")
}

// RenderButtonRow renders the "See all" and "View blog" buttons
func RenderButtonRow(focus int) string {
	labels := [buttonCount]string{"See all", "View blog"}
	rendered := make([]string, 0, buttonCount*2)
	for i, label := range labels {
		style := ButtonStyle
		if i == focus {
			style = ButtonFocusedStyle
		}
		if i > 0 {
			rendered = append(rendered, "  ")
		}
		rendered = append(rendered, style.Render(label))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

// RenderNotFoundDialog renders the notice shown when no blog is set
func RenderNotFoundDialog(p models.UserProfile) string {
	body := lipgloss.JoinVertical(lipgloss.Center,
		AccentStyle.Render("Blog not found"),
		"",
		RenderNormal(fmt.Sprintf("%s has not set a blog URL.", p.DisplayName())),
		"",
		HintStyle.Render("Press enter to dismiss"),
	)
	return DialogStyle.Render(body)
}

// =============================================================================
// Entry point
// =============================================================================

// RunHeader starts the header TUI
func RunHeader(store *header.Store, opts ...HeaderOption) error {
	model := NewHeaderModel(store, opts...)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())

	_, err := p.Run()
	return err
}
