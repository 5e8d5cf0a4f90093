package ui

import (
	"errors"
	"os/exec"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/thesavant42/gitsome-header/internal/models"
)

func TestNewLayout(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		want          Layout
	}{
		{"too small", 10, 5, Layout{ViewportWidth: 72, ViewportHeight: 16, InnerWidth: 70}},
		{"in range", 100, 40, Layout{ViewportWidth: 100, ViewportHeight: 40, InnerWidth: 98}},
		{"too wide", 300, 60, Layout{ViewportWidth: 120, ViewportHeight: 60, InnerWidth: 118}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NewLayout(tt.width, tt.height); got != tt.want {
				t.Errorf("NewLayout(%d, %d) = %+v, want %+v", tt.width, tt.height, got, tt.want)
			}
		})
	}
}

func TestScreenStateStatus(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	s := NewScreenState(DefaultLayout())
	s.now = func() time.Time { return now }

	s.Pending("Refreshing...")
	now = now.Add(time.Hour)
	s.ClearExpiredStatus()
	if !s.HasStatus() {
		t.Error("pending status was cleared")
	}

	s.Notify("saved")
	now = now.Add(statusDuration - time.Second)
	s.ClearExpiredStatus()
	if s.StatusMsg != "saved" || s.StatusErr {
		t.Errorf("status = %q err=%v before expiry", s.StatusMsg, s.StatusErr)
	}
	now = now.Add(2 * time.Second)
	s.ClearExpiredStatus()
	if s.HasStatus() || s.StatusLine() != "" {
		t.Errorf("expired status kept: %q", s.StatusMsg)
	}

	s.Fail("Could not open browser", errors.New("no display"))
	if !s.StatusErr || s.StatusMsg != "Could not open browser: no display" {
		t.Errorf("status = %q err=%v", s.StatusMsg, s.StatusErr)
	}
	if got := ansi.Strip(s.StatusLine()); got != s.StatusMsg {
		t.Errorf("StatusLine = %q", got)
	}
	s.Notify("ok")
	if s.StatusErr {
		t.Error("error flag survived an info status")
	}

	if s.Resize(DefaultWidth, DefaultHeight) {
		t.Error("Resize reported a change for the same size")
	}
	if !s.Resize(80, 24) {
		t.Error("Resize missed a change")
	}
}

func TestTruncateToWidth(t *testing.T) {
	if got := truncateToWidth("hello world", 6); got != "hello…" {
		t.Errorf("truncateToWidth = %q", got)
	}
	if got := truncateToWidth("short", 10); got != "short" {
		t.Errorf("truncateToWidth = %q", got)
	}
	if got := truncateToWidth("anything", 0); got != "" {
		t.Errorf("truncateToWidth = %q", got)
	}
}

func TestTwoBoxView(t *testing.T) {
	layout := DefaultLayout()
	out := TwoBoxView("content", "help", layout)
	for _, line := range strings.Split(out, "\n") {
		if w := StringWidth(line); w != layout.ViewportWidth {
			t.Fatalf("line width = %d, want %d: %q", w, layout.ViewportWidth, stripEscapeCodes(line))
		}
	}
}

func TestValidateLogin(t *testing.T) {
	tests := []struct {
		in      string
		wantErr bool
	}{
		{"octocat", false},
		{"@octocat", false},
		{"https://github.com/octocat", false},
		{"", true},
		{"   ", true},
		{"two words", true},
	}
	for _, tt := range tests {
		if err := validateLogin(tt.in); (err != nil) != tt.wantErr {
			t.Errorf("validateLogin(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
	}
}

func TestSanitizeInput(t *testing.T) {
	if got := sanitizeInput("oct\x00o\x07cat\t"); got != "octocat\t" {
		t.Errorf("sanitizeInput = %q", got)
	}
}

func TestRepoList(t *testing.T) {
	empty := NewRepoList(nil, DefaultLayout())
	if !strings.Contains(ansi.Strip(empty.View()), "No repositories") {
		t.Error("empty list hint missing")
	}
	if _, ok := empty.Selected(); ok {
		t.Error("Selected() on empty list returned ok")
	}

	l := NewRepoList([]models.UserRepository{
		{Name: "one", StargazerCount: 1234},
		{Name: "two", IsFork: true},
	}, DefaultLayout())
	l.MoveDown()
	r, ok := l.Selected()
	if !ok || r.Name != "two" {
		t.Fatalf("Selected() = %+v, %v", r, ok)
	}
	view := ansi.Strip(l.View())
	for _, want := range []string{"1,234", "two (fork)", "2 of 2"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}

	l.SetRepos(l.repos[:1])
	if r, ok := l.Selected(); !ok || r.Name != "one" {
		t.Errorf("cursor not reset after shrinking: %+v, %v", r, ok)
	}
}

func TestRepoListSetReposSelectsFirstRow(t *testing.T) {
	l := NewRepoList(nil, DefaultLayout())
	l.SetRepos([]models.UserRepository{{Name: "one"}, {Name: "two"}})
	if r, ok := l.Selected(); !ok || r.Name != "one" {
		t.Fatalf("Selected() = %+v, %v after loading an empty list", r, ok)
	}
	if view := ansi.Strip(l.View()); !strings.Contains(view, "1 of 2") {
		t.Errorf("view missing position:\n%s", view)
	}

	l.SetRepos(nil)
	if _, ok := l.Selected(); ok {
		t.Error("Selected() ok after clearing the list")
	}
	l.SetRepos([]models.UserRepository{{Name: "three"}})
	if r, ok := l.Selected(); !ok || r.Name != "three" {
		t.Errorf("Selected() = %+v, %v after reloading", r, ok)
	}
}

func TestBrowserLauncher(t *testing.T) {
	var got string
	l := &BrowserLauncher{command: func(url string) *exec.Cmd {
		got = url
		return exec.Command("true")
	}}
	if err := l.Open("https://example.com"); err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if got != "https://example.com" {
		t.Errorf("command got %q", got)
	}

	failing := &BrowserLauncher{command: func(url string) *exec.Cmd {
		return exec.Command("/nonexistent/browser")
	}}
	if err := failing.Open("https://example.com"); err == nil {
		t.Error("expected error for missing handler")
	}
}

func TestCalculateColumns(t *testing.T) {
	cols := CalculateColumns(RepositoryColumns(), 98)
	total := 0
	for _, c := range cols {
		total += c.Width + cellPadding
	}
	if total != 98 {
		t.Errorf("total width = %d, want 98", total)
	}
	if cols[0].Width != 98-10-7-7-12-14 {
		t.Errorf("Repository width = %d", cols[0].Width)
	}

	narrow := CalculateColumns(RepositoryColumns(), 20)
	if narrow[0].Width != 12 {
		t.Errorf("Repository width = %d, want minimum 12", narrow[0].Width)
	}
}
