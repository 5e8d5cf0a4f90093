package ui

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/thesavant42/gitsome-header/internal/db"
	"github.com/thesavant42/gitsome-header/internal/models"
)

type memCache struct {
	pages  map[string]models.BlogPage
	saves  int
	getErr error
}

func (c *memCache) GetBlogPage(url string, maxAge time.Duration) (*models.BlogPage, error) {
	if c.getErr != nil {
		return nil, c.getErr
	}
	p, ok := c.pages[url]
	if !ok {
		return nil, db.ErrNotCached
	}
	return &p, nil
}

func (c *memCache) SaveBlogPage(url string, page models.BlogPage) error {
	c.saves++
	c.pages[url] = page
	return nil
}

type countingSource struct {
	calls int
	page  models.BlogPage
	err   error
}

func (s *countingSource) FetchPage(ctx context.Context, url string) (*models.BlogPage, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	p := s.page
	return &p, nil
}

func TestCachedBlogSource(t *testing.T) {
	cache := &memCache{pages: map[string]models.BlogPage{}}
	source := &countingSource{page: models.BlogPage{Title: "Post", Markdown: "body"}}
	cached := NewCachedBlogSource(cache, source, time.Hour, nil)

	for i := 0; i < 3; i++ {
		page, err := cached.FetchPage(context.Background(), "https://example.com")
		if err != nil {
			t.Fatalf("FetchPage() error = %v", err)
		}
		if page.Title != "Post" {
			t.Errorf("Title = %q", page.Title)
		}
	}
	if source.calls != 1 {
		t.Errorf("network calls = %d, want 1", source.calls)
	}
	if cache.saves != 1 {
		t.Errorf("cache saves = %d, want 1", cache.saves)
	}
}

func TestCachedBlogSourceErrors(t *testing.T) {
	t.Run("network error is returned and not cached", func(t *testing.T) {
		cache := &memCache{pages: map[string]models.BlogPage{}}
		want := errors.New("timeout")
		cached := NewCachedBlogSource(cache, &countingSource{err: want}, time.Hour, nil)

		if _, err := cached.FetchPage(context.Background(), "https://example.com"); !errors.Is(err, want) {
			t.Fatalf("FetchPage() error = %v, want %v", err, want)
		}
		if cache.saves != 0 {
			t.Errorf("cache saves = %d, want 0", cache.saves)
		}
	})

	t.Run("cache read failure falls through to network", func(t *testing.T) {
		cache := &memCache{pages: map[string]models.BlogPage{}, getErr: errors.New("disk I/O error")}
		source := &countingSource{page: models.BlogPage{Title: "Live"}}
		cached := NewCachedBlogSource(cache, source, time.Hour, nil)

		page, err := cached.FetchPage(context.Background(), "https://example.com")
		if err != nil {
			t.Fatalf("FetchPage() error = %v", err)
		}
		if page.Title != "Live" || source.calls != 1 {
			t.Errorf("page = %+v, calls = %d", page, source.calls)
		}
	})
}
