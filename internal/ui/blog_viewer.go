package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/thesavant42/gitsome-header/internal/api"
	"github.com/thesavant42/gitsome-header/internal/models"
)

const blogLoadTimeout = 30 * time.Second

// blogLoadedMsg carries the result of a page load for one mount
type blogLoadedMsg struct {
	generation int
	page       *models.BlogPage
	err        error
}

// BlogViewerModel is the embedded web-page viewer. It is mounted once per
// header generation and never follows later URI changes itself; the header
// replaces it with a new viewer instead.
type BlogViewerModel struct {
	url        string
	generation int
	source     BlogSource

	layout   Layout
	viewport viewport.Model
	spinner  spinner.Model
	markdown *MarkdownRenderer

	loading bool
	page    *models.BlogPage
	err     error
}

// NewBlogViewer creates a viewer for url. Call Init to start loading.
func NewBlogViewer(url string, generation int, source BlogSource, layout Layout) BlogViewerModel {
	m := BlogViewerModel{
		url:        url,
		generation: generation,
		source:     source,
		spinner:    NewAppSpinner(),
		loading:    true,
	}
	m.viewport = viewport.New(0, 0)
	m.markdown = NewMarkdownRenderer(0)
	m.resize(layout)
	return m
}

// URL returns the URI the viewer was mounted with
func (m BlogViewerModel) URL() string { return m.url }

// Generation returns the header generation this viewer belongs to
func (m BlogViewerModel) Generation() int { return m.generation }

// Loading reports whether the page is still being fetched
func (m BlogViewerModel) Loading() bool { return m.loading }

// Err returns the load error, if any
func (m BlogViewerModel) Err() error { return m.err }

// Init starts the spinner and the page load
func (m BlogViewerModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.load())
}

func (m BlogViewerModel) load() tea.Cmd {
	url, generation, source := m.url, m.generation, m.source
	return func() tea.Msg {
		if source == nil {
			return blogLoadedMsg{generation: generation, err: fmt.Errorf("no page loader configured")}
		}
		ctx, cancel := context.WithTimeout(context.Background(), blogLoadTimeout)
		defer cancel()
		page, err := source.FetchPage(ctx, url)
		return blogLoadedMsg{generation: generation, page: page, err: err}
	}
}

// Update handles load results, spinner ticks, resizes and scrolling
func (m BlogViewerModel) Update(msg tea.Msg) (BlogViewerModel, tea.Cmd) {
	switch msg := msg.(type) {
	case blogLoadedMsg:
		if msg.generation != m.generation {
			// Result of an earlier mount
			return m, nil
		}
		m.loading = false
		m.page = msg.page
		m.err = msg.err
		m.refreshContent()
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.resize(NewLayout(msg.Width, msg.Height))
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "g", "home":
			m.viewport.GotoTop()
			return m, nil
		case "G", "end":
			m.viewport.GotoBottom()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *BlogViewerModel) resize(layout Layout) {
	m.layout = layout
	m.viewport.Width = layout.InnerWidth - 2
	// title, domain line, divider, scroll line, plus the help box
	m.viewport.Height = layout.ViewportHeight - 10
	if m.viewport.Height < 3 {
		m.viewport.Height = 3
	}
	m.markdown.SetWidth(layout.InnerWidth - 4)
	m.refreshContent()
}

func (m *BlogViewerModel) refreshContent() {
	if m.page == nil {
		return
	}
	m.viewport.SetContent(m.markdown.Render(m.page.Markdown))
}

// Title returns the page title once loaded, otherwise the mounted URL
func (m BlogViewerModel) Title() string {
	if m.page != nil && m.page.Title != "" {
		return m.page.Title
	}
	return m.url
}

// View renders the viewer content (without the outer boxes)
func (m BlogViewerModel) View() string {
	var b strings.Builder

	subtitle := m.url
	if domain := api.SiteDomain(m.url); domain != "" {
		subtitle = domain + "  " + m.url
	}
	b.WriteString(ViewHeaderWithSubtitle(truncateToWidth(m.Title(), m.layout.InnerWidth), truncateToWidth(subtitle, m.layout.InnerWidth), m.layout.InnerWidth))

	switch {
	case m.loading:
		b.WriteString(fmt.Sprintf("%s %s", m.spinner.View(), RenderNormal("Loading "+m.url+"...")))
	case m.err != nil:
		b.WriteString(ErrorStyle.Render("Could not load page"))
		b.WriteString("\n")
		b.WriteString(RenderDim(m.err.Error()))
	case m.page != nil && strings.TrimSpace(m.page.Markdown) == "":
		b.WriteString(HintStyle.Render("This page has no readable text."))
	default:
		b.WriteString(m.viewport.View())
		b.WriteString("\n")
		b.WriteString(RenderDim(fmt.Sprintf("%3.0f%%", m.viewport.ScrollPercent()*100)))
	}

	return b.String()
}
