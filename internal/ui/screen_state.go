package ui

import (
	"time"
)

// statusDuration is how long a transient status line stays up
const statusDuration = 5 * time.Second

// ScreenState holds the header screen's layout and its status line.
// An error status renders in ErrorStyle; a pending one stays until replaced.
type ScreenState struct {
	Layout       Layout
	StatusMsg    string
	StatusErr    bool
	StatusExpiry time.Time
	Quitting     bool

	now func() time.Time
}

func NewScreenState(layout Layout) ScreenState {
	return ScreenState{Layout: layout, now: time.Now}
}

// Notify shows msg for statusDuration
func (s *ScreenState) Notify(msg string) {
	s.setStatus(msg, false, statusDuration)
}

// Fail shows "<what>: <err>" as an error for statusDuration
func (s *ScreenState) Fail(what string, err error) {
	s.setStatus(what+": "+err.Error(), true, statusDuration)
}

// Pending shows msg until the next Notify or Fail
func (s *ScreenState) Pending(msg string) {
	s.setStatus(msg, false, 0)
}

func (s *ScreenState) setStatus(msg string, isErr bool, d time.Duration) {
	s.StatusMsg = msg
	s.StatusErr = isErr
	s.StatusExpiry = time.Time{}
	if d > 0 {
		s.StatusExpiry = s.clock().Add(d)
	}
}

func (s *ScreenState) clock() time.Time {
	if s.now == nil {
		return time.Now()
	}
	return s.now()
}

// ClearExpiredStatus drops a status whose time is up. Called on every Update.
func (s *ScreenState) ClearExpiredStatus() {
	if !s.StatusExpiry.IsZero() && s.clock().After(s.StatusExpiry) {
		s.StatusMsg = ""
		s.StatusErr = false
		s.StatusExpiry = time.Time{}
	}
}

func (s *ScreenState) HasStatus() bool {
	return s.StatusMsg != ""
}

// StatusLine renders the status message, or "" when there is none
func (s *ScreenState) StatusLine() string {
	if !s.HasStatus() {
		return ""
	}
	if s.StatusErr {
		return ErrorStyle.Render(s.StatusMsg)
	}
	return StatusStyle.Render(s.StatusMsg)
}

// Resize recomputes the layout for a terminal size and reports whether it changed
func (s *ScreenState) Resize(width, height int) bool {
	layout := NewLayout(width, height)
	if layout == s.Layout {
		return false
	}
	s.Layout = layout
	return true
}
