package ui

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/log"
	"github.com/thesavant42/gitsome-header/internal/db"
	"github.com/thesavant42/gitsome-header/internal/models"
)

// BlogSource loads a blog page for the embedded viewer
type BlogSource interface {
	FetchPage(ctx context.Context, url string) (*models.BlogPage, error)
}

// BlogCache stores converted blog pages
type BlogCache interface {
	GetBlogPage(url string, maxAge time.Duration) (*models.BlogPage, error)
	SaveBlogPage(url string, page models.BlogPage) error
}

// CachedBlogSource serves pages from the cache while they are fresh and
// falls back to the network otherwise
type CachedBlogSource struct {
	cache  BlogCache
	source BlogSource
	maxAge time.Duration
	logger *log.Logger
}

// NewCachedBlogSource wraps source with cache. logger may be nil.
func NewCachedBlogSource(cache BlogCache, source BlogSource, maxAge time.Duration, logger *log.Logger) *CachedBlogSource {
	return &CachedBlogSource{cache: cache, source: source, maxAge: maxAge, logger: logger}
}

// FetchPage implements BlogSource
func (c *CachedBlogSource) FetchPage(ctx context.Context, url string) (*models.BlogPage, error) {
	page, err := c.cache.GetBlogPage(url, c.maxAge)
	if err == nil {
		return page, nil
	}
	if !errors.Is(err, db.ErrNotCached) && c.logger != nil {
		c.logger.Warn("Blog cache read failed", "url", url, "error", err)
	}

	page, err = c.source.FetchPage(ctx, url)
	if err != nil {
		return nil, err
	}
	if err := c.cache.SaveBlogPage(url, *page); err != nil && c.logger != nil {
		c.logger.Warn("Blog cache write failed", "url", url, "error", err)
	}
	return page, nil
}
