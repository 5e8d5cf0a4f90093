package header

import (
	"errors"
	"math/rand"
	"sync"
	"testing"

	"github.com/thesavant42/gitsome-header/internal/models"
)

type recordingLauncher struct {
	mu     sync.Mutex
	opened []string
	err    error
}

func (r *recordingLauncher) Open(url string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.opened = append(r.opened, url)
	return r.err
}

func profileWithBlog(blog string) models.UserProfile {
	return models.UserProfile{
		Login:     "octocat",
		Name:      "The Octocat",
		HTMLURL:   "https://github.com/octocat",
		AvatarURL: "https://avatars.example/octocat.png",
		Blog:      blog,
	}
}

func TestViewBlogWithoutBlogRaisesNotFound(t *testing.T) {
	s := NewStore(profileWithBlog(""), nil)
	st := s.ViewBlog()
	if !st.NotFound {
		t.Error("NotFound = false, want true")
	}
	if st.ShowBlog || st.MountedURL != "" {
		t.Errorf("viewer mounted: %+v", st)
	}
}

func TestViewBlogMountsBlankBlogValue(t *testing.T) {
	s := NewStore(profileWithBlog("   "), nil)
	st := s.ViewBlog()
	if st.NotFound {
		t.Error("NotFound = true for a non-empty blog value")
	}
	if !st.ShowBlog || st.MountedURL != "   " {
		t.Errorf("state = %+v, want viewer mounted with the raw value", st)
	}
}

func TestViewBlogMountsExactURI(t *testing.T) {
	s := NewStore(profileWithBlog("https://example.com/blog"), nil)
	st := s.ViewBlog()
	if !st.ShowBlog {
		t.Fatal("ShowBlog = false, want true")
	}
	if st.NotFound {
		t.Error("NotFound = true, want false")
	}
	if st.MountedURL != "https://example.com/blog" {
		t.Errorf("MountedURL = %q", st.MountedURL)
	}
	if st.Generation != 1 {
		t.Errorf("Generation = %d, want 1", st.Generation)
	}

	// a second invocation keeps the existing mount
	if again := s.ViewBlog(); again.Generation != 1 {
		t.Errorf("re-invoking ViewBlog remounted: generation %d", again.Generation)
	}
}

func TestViewBlogAddsSchemeToBareHost(t *testing.T) {
	s := NewStore(profileWithBlog("example.com/blog"), nil)
	if st := s.ViewBlog(); st.MountedURL != "https://example.com/blog" {
		t.Errorf("MountedURL = %q, want https://example.com/blog", st.MountedURL)
	}
}

func TestDismissNotFoundAlwaysClears(t *testing.T) {
	s := NewStore(profileWithBlog(""), nil)

	if st := s.DismissNotFound(); st.NotFound {
		t.Error("NotFound set after dismiss on fresh store")
	}
	s.ViewBlog()
	if st := s.DismissNotFound(); st.NotFound {
		t.Error("NotFound still set after dismiss")
	}
	if st := s.DismissNotFound(); st.NotFound {
		t.Error("NotFound set after repeated dismiss")
	}
}

func TestCloseBlog(t *testing.T) {
	s := NewStore(profileWithBlog("https://example.com"), nil)
	s.ViewBlog()
	st := s.CloseBlog()
	if st.ShowBlog || st.MountedURL != "" {
		t.Errorf("CloseBlog() left viewer mounted: %+v", st)
	}
	if st := s.ViewBlog(); st.Generation != 2 {
		t.Errorf("Generation after remount = %d, want 2", st.Generation)
	}
}

func TestSetProfileRemountPolicy(t *testing.T) {
	t.Run("uri changes while shown", func(t *testing.T) {
		s := NewStore(profileWithBlog("https://a.example"), nil)
		s.ViewBlog()
		st := s.SetProfile(profileWithBlog("https://b.example"))
		if !st.ShowBlog || st.MountedURL != "https://b.example" || st.Generation != 2 {
			t.Errorf("expected remount on b.example, got %+v", st)
		}
	})

	t.Run("same uri keeps mount", func(t *testing.T) {
		s := NewStore(profileWithBlog("https://a.example"), nil)
		s.ViewBlog()
		p := profileWithBlog("https://a.example")
		p.Followers = 42
		st := s.SetProfile(p)
		if st.Generation != 1 || st.Profile.Followers != 42 {
			t.Errorf("unexpected state %+v", st)
		}
	})

	t.Run("blog removed while shown", func(t *testing.T) {
		s := NewStore(profileWithBlog("https://a.example"), nil)
		s.ViewBlog()
		st := s.SetProfile(profileWithBlog(""))
		if st.ShowBlog || st.NotFound {
			t.Errorf("expected viewer unmounted without notice, got %+v", st)
		}
	})

	t.Run("hidden viewer is not mounted", func(t *testing.T) {
		s := NewStore(profileWithBlog(""), nil)
		st := s.SetProfile(profileWithBlog("https://a.example"))
		if st.ShowBlog || st.NotFound {
			t.Errorf("SetProfile changed flags: %+v", st)
		}
	})
}

func TestViewBlogClearsPendingNotice(t *testing.T) {
	s := NewStore(profileWithBlog(""), nil)
	s.ViewBlog()
	s.SetProfile(profileWithBlog("https://example.com"))
	st := s.ViewBlog()
	if st.NotFound || !st.ShowBlog {
		t.Errorf("expected viewer and no notice, got %+v", st)
	}
}

func TestFlagsNeverBothTrue(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	profiles := []models.UserProfile{
		profileWithBlog(""),
		profileWithBlog("https://a.example"),
		profileWithBlog("b.example"),
		profileWithBlog("   "),
	}
	s := NewStore(profiles[0], nil)

	for i := 0; i < 2000; i++ {
		var st State
		switch rng.Intn(4) {
		case 0:
			st = s.ViewBlog()
		case 1:
			st = s.DismissNotFound()
		case 2:
			st = s.CloseBlog()
		case 3:
			st = s.SetProfile(profiles[rng.Intn(len(profiles))])
		}
		if st.ShowBlog && st.NotFound {
			t.Fatalf("step %d: both flags true: %+v", i, st)
		}
		if st.ShowBlog != (st.MountedURL != "") {
			t.Fatalf("step %d: ShowBlog/MountedURL disagree: %+v", i, st)
		}
	}
}

func TestSubscribeNotifiesOnChangeOnly(t *testing.T) {
	s := NewStore(profileWithBlog(""), nil)

	var got []State
	unsubscribe := s.Subscribe(func(st State) { got = append(got, st) })

	s.DismissNotFound() // no-op
	s.ViewBlog()        // NotFound -> true
	s.ViewBlog()        // no-op
	s.DismissNotFound() // NotFound -> false

	if len(got) != 2 {
		t.Fatalf("got %d notifications, want 2: %+v", len(got), got)
	}
	if !got[0].NotFound || got[1].NotFound {
		t.Errorf("unexpected notification sequence: %+v", got)
	}

	unsubscribe()
	s.ViewBlog()
	if len(got) != 2 {
		t.Errorf("listener called after unsubscribe")
	}
}

func TestListenerMayReadStore(t *testing.T) {
	s := NewStore(profileWithBlog("https://example.com"), nil)
	var seen State
	s.Subscribe(func(State) { seen = s.Snapshot() })
	s.ViewBlog()
	if !seen.ShowBlog {
		t.Error("listener snapshot did not observe the change")
	}
}

func TestSeeAllDispatchesRepositoriesPage(t *testing.T) {
	l := &recordingLauncher{}
	s := NewStore(profileWithBlog(""), l)

	before := s.Snapshot()
	if err := s.SeeAll(); err != nil {
		t.Fatalf("SeeAll() error = %v", err)
	}
	if len(l.opened) != 1 || l.opened[0] != "https://github.com/octocat?tab=repositories" {
		t.Errorf("opened = %v", l.opened)
	}
	if s.Snapshot() != before {
		t.Error("SeeAll changed state")
	}
}

func TestLaunchFailureLeavesStateUntouched(t *testing.T) {
	l := &recordingLauncher{err: errors.New("no browser")}
	s := NewStore(profileWithBlog("https://example.com"), l)
	s.ViewBlog()
	before := s.Snapshot()

	if err := s.SeeAll(); err == nil {
		t.Error("expected launcher error to be returned")
	}
	if err := s.OpenMounted(); err == nil {
		t.Error("expected launcher error from OpenMounted")
	}
	if s.Snapshot() != before {
		t.Error("launch failure changed state")
	}
	if len(l.opened) != 2 || l.opened[1] != "https://example.com" {
		t.Errorf("opened = %v", l.opened)
	}
}

func TestNilLauncherAndEmptyTargets(t *testing.T) {
	s := NewStore(models.UserProfile{}, nil)
	if err := s.SeeAll(); err != nil {
		t.Errorf("SeeAll() with nil launcher error = %v", err)
	}

	l := &recordingLauncher{}
	s = NewStore(models.UserProfile{}, l)
	if err := s.OpenAvatar(); err != nil {
		t.Errorf("OpenAvatar() error = %v", err)
	}
	if len(l.opened) != 0 {
		t.Errorf("empty avatar URL was launched: %v", l.opened)
	}
}

func TestLauncherFunc(t *testing.T) {
	var got string
	var l Launcher = LauncherFunc(func(url string) error { got = url; return nil })
	_ = l.Open("https://example.com")
	if got != "https://example.com" {
		t.Errorf("LauncherFunc passed %q", got)
	}
}

func TestConcurrentAccess(t *testing.T) {
	s := NewStore(profileWithBlog("https://example.com"), nil)
	s.Subscribe(func(State) {})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				if (i+j)%2 == 0 {
					s.ViewBlog()
				} else {
					s.CloseBlog()
				}
				if st := s.Snapshot(); st.ShowBlog && st.NotFound {
					t.Error("both flags true")
					return
				}
			}
		}(i)
	}
	wg.Wait()
}

func TestOpenDispatchesURL(t *testing.T) {
	launcher := &recordingLauncher{}
	s := NewStore(profileWithBlog(""), launcher)
	before := s.Snapshot()

	if err := s.Open("https://github.com/octocat/hello-world"); err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if err := s.Open(""); err != nil {
		t.Fatalf("Open(\"\") error = %v", err)
	}

	if len(launcher.opened) != 1 || launcher.opened[0] != "https://github.com/octocat/hello-world" {
		t.Errorf("opened = %v", launcher.opened)
	}
	if s.Snapshot() != before {
		t.Error("Open changed state")
	}
}
