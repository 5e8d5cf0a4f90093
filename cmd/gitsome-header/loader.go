package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/sourcegraph/conc/pool"
	"github.com/thesavant42/gitsome-header/internal/db"
	"github.com/thesavant42/gitsome-header/internal/models"
)

// profileFetcher is the part of the GitHub client the loader needs
type profileFetcher interface {
	FetchUserProfile(ctx context.Context, login string) (*models.UserProfile, error)
	FetchUserRepositories(ctx context.Context, login string, limit int) ([]models.UserRepository, error)
}

// profileStore is the part of the database the loader needs
type profileStore interface {
	GetProfile(login string) (*models.UserProfile, error)
	SaveProfile(p models.UserProfile) error
	GetRepositories(login string) ([]models.UserRepository, error)
	SaveRepositories(login string, repos []models.UserRepository) error
}

// profileLoader serves a profile and its repositories from the cache while
// fresh and from GitHub otherwise
type profileLoader struct {
	client    profileFetcher
	store     profileStore
	login     string
	maxAge    time.Duration
	repoLimit int
	logger    *log.Logger
}

// cached returns the cached profile and repositories. fresh reports whether
// the profile is younger than maxAge.
func (l *profileLoader) cached() (profile *models.UserProfile, repos []models.UserRepository, fresh bool, err error) {
	profile, err = l.store.GetProfile(l.login)
	if err != nil {
		return nil, nil, false, err
	}
	repos, err = l.store.GetRepositories(profile.Login)
	if err != nil {
		return nil, nil, false, err
	}
	fresh = l.maxAge <= 0 || time.Since(profile.FetchedAt) <= l.maxAge
	return profile, repos, fresh, nil
}

// fetch loads the profile and repositories from GitHub concurrently and
// caches them
func (l *profileLoader) fetch(ctx context.Context) (*models.UserProfile, []models.UserRepository, error) {
	var (
		profile *models.UserProfile
		repos   []models.UserRepository
	)

	p := pool.New().WithContext(ctx).WithCancelOnError()
	p.Go(func(ctx context.Context) error {
		var err error
		profile, err = l.client.FetchUserProfile(ctx, l.login)
		if err != nil {
			return fmt.Errorf("failed to fetch profile: %w", err)
		}
		return nil
	})
	if l.repoLimit > 0 {
		p.Go(func(ctx context.Context) error {
			var err error
			repos, err = l.client.FetchUserRepositories(ctx, l.login, l.repoLimit)
			if err != nil {
				return fmt.Errorf("failed to fetch repositories: %w", err)
			}
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		return nil, nil, err
	}

	if err := l.store.SaveProfile(*profile); err != nil {
		l.logger.Warn("Could not cache profile", "login", profile.Login, "error", err)
	}
	if err := l.store.SaveRepositories(profile.Login, repos); err != nil {
		l.logger.Warn("Could not cache repositories", "login", profile.Login, "error", err)
	}
	l.logger.Info("Fetched profile", "login", profile.Login, "repos", len(repos))
	return profile, repos, nil
}

// load returns the cached data when fresh (and refresh is false), otherwise
// fetches. A failed fetch falls back to stale cached data when present; stale
// is true in that case.
func (l *profileLoader) load(ctx context.Context, refresh bool, fetch func(context.Context) (*models.UserProfile, []models.UserRepository, error)) (profile *models.UserProfile, repos []models.UserRepository, stale bool, err error) {
	cachedProfile, cachedRepos, fresh, cacheErr := l.cached()
	if cacheErr != nil && !errors.Is(cacheErr, db.ErrNotCached) {
		l.logger.Warn("Cache read failed", "login", l.login, "error", cacheErr)
	}
	if cacheErr == nil && fresh && !refresh {
		l.logger.Debug("Using cached profile", "login", l.login)
		return cachedProfile, cachedRepos, false, nil
	}

	if fetch == nil {
		fetch = l.fetch
	}
	profile, repos, err = fetch(ctx)
	if err == nil {
		return profile, repos, false, nil
	}

	if cacheErr == nil {
		l.logger.Warn("Fetch failed, using cached profile", "login", l.login, "error", err)
		return cachedProfile, cachedRepos, true, nil
	}
	return nil, nil, false, err
}
