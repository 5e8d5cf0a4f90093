// Package header holds the state behind the repositories list header: the
// profile being shown and the two flags that decide whether the blog page or
// the not-found notice is displayed.
package header

import (
	"sync"

	"github.com/charmbracelet/log"
	"github.com/thesavant42/gitsome-header/internal/models"
)

// Launcher opens a URI with an external handler (usually the system browser).
// Open must not block on the handler.
type Launcher interface {
	Open(url string) error
}

// LauncherFunc adapts a function to Launcher
type LauncherFunc func(url string) error

// Open calls f(url)
func (f LauncherFunc) Open(url string) error { return f(url) }

// State is a snapshot of the header's UI state.
// ShowBlog and NotFound are never both true.
type State struct {
	Profile    models.UserProfile
	ShowBlog   bool   // blog page viewer is mounted
	NotFound   bool   // "no blog" notice is displayed
	MountedURL string // URI the viewer was mounted with
	Generation int    // bumped on every mount
}

// Listener receives the new state after every change
type Listener func(State)

// Store is the header view-model. It is safe for concurrent use.
type Store struct {
	mu        sync.Mutex
	state     State
	launcher  Launcher
	logger    *log.Logger
	listeners map[int]Listener
	nextID    int
}

// Option configures a Store
type Option func(*Store)

// WithLogger sets the logger used for launcher failures
func WithLogger(logger *log.Logger) Option {
	return func(s *Store) { s.logger = logger }
}

// NewStore creates a store over profile. launcher may be nil, in which case
// external actions are dropped.
func NewStore(profile models.UserProfile, launcher Launcher, opts ...Option) *Store {
	s := &Store{
		state:     State{Profile: profile},
		launcher:  launcher,
		listeners: make(map[int]Listener),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Snapshot returns a copy of the current state
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Subscribe registers fn to be called after every state change and returns a
// func that removes it
func (s *Store) Subscribe(fn Listener) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

// ViewBlog resolves the "view blog" action: with no blog configured the
// not-found notice is raised, otherwise the blog viewer is mounted.
func (s *Store) ViewBlog() State {
	return s.update(func(st *State) {
		if !st.Profile.HasBlog() {
			st.ShowBlog = false
			st.MountedURL = ""
			st.NotFound = true
			return
		}
		st.NotFound = false
		if st.ShowBlog && st.MountedURL == st.Profile.BlogURL() {
			return
		}
		st.mount(st.Profile.BlogURL())
	})
}

// DismissNotFound hides the not-found notice
func (s *Store) DismissNotFound() State {
	return s.update(func(st *State) {
		st.NotFound = false
	})
}

// CloseBlog unmounts the blog viewer
func (s *Store) CloseBlog() State {
	return s.update(func(st *State) {
		st.ShowBlog = false
		st.MountedURL = ""
	})
}

// SetProfile replaces the profile. A mounted viewer follows the blog URI:
// it is re-mounted when the URI changes and unmounted when the blog is
// removed. The not-found notice is only ever raised by ViewBlog.
func (s *Store) SetProfile(p models.UserProfile) State {
	return s.update(func(st *State) {
		st.Profile = p
		if !st.ShowBlog {
			return
		}
		switch {
		case !p.HasBlog():
			st.ShowBlog = false
			st.MountedURL = ""
		case p.BlogURL() != st.MountedURL:
			st.mount(p.BlogURL())
		}
	})
}

// SeeAll opens the profile's repositories page. The launch is
// fire-and-forget: failures are logged and returned, state is untouched.
func (s *Store) SeeAll() error {
	p := s.Snapshot().Profile
	target := p.RepositoriesURL()
	if target == "" {
		target = p.HTMLURL
	}
	return s.launch("see all", target)
}

// OpenAvatar opens the avatar image externally
func (s *Store) OpenAvatar() error {
	return s.launch("avatar", s.Snapshot().Profile.AvatarURL)
}

// OpenMounted opens the mounted blog page in the external browser
func (s *Store) OpenMounted() error {
	return s.launch("blog", s.Snapshot().MountedURL)
}

// Open hands an arbitrary URI (a repository, say) to the launcher
func (s *Store) Open(url string) error {
	return s.launch("open", url)
}

func (s *Store) launch(action, target string) error {
	if s.launcher == nil || target == "" {
		return nil
	}
	err := s.launcher.Open(target)
	if err != nil && s.logger != nil {
		s.logger.Error("Launch failed", "action", action, "url", target, "error", err)
	}
	return err
}

func (st *State) mount(url string) {
	st.ShowBlog = true
	st.MountedURL = url
	st.Generation++
}

// update applies fn under the lock and notifies listeners outside it when
// the state changed
func (s *Store) update(fn func(*State)) State {
	s.mu.Lock()
	before := s.state
	fn(&s.state)
	after := s.state
	var listeners []Listener
	if after != before {
		listeners = make([]Listener, 0, len(s.listeners))
		for _, l := range s.listeners {
			listeners = append(listeners, l)
		}
	}
	s.mu.Unlock()

	for _, l := range listeners {
		l(after)
	}
	return after
}
