package db

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/thesavant42/gitsome-header/internal/models"

	_ "modernc.org/sqlite"
)

// ErrNotCached is returned when a lookup finds no usable cached row
var ErrNotCached = errors.New("not cached")

const timeFormat = time.RFC3339

// DB wraps the SQLite database connection
type DB struct {
	conn *sql.DB
}

// New creates a new database connection and initializes the schema
func New(dbPath string) (*DB, error) {
	// Ensure the directory exists
	dir := filepath.Dir(dbPath)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	schemas := []struct {
		name string
		ddl  string
	}{
		{"profiles", createProfilesTable},
		{"repositories", createRepositoriesTable},
		{"blog pages", createBlogPagesTable},
	}
	for _, s := range schemas {
		if _, err := conn.Exec(s.ddl); err != nil {
			conn.Close()
			return nil, fmt.Errorf("failed to create %s schema: %w", s.name, err)
		}
	}

	return &DB{conn: conn}, nil
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.conn.Close()
}

// SaveProfile inserts or replaces a cached profile
func (db *DB) SaveProfile(p models.UserProfile) error {
	fetchedAt := p.FetchedAt
	if fetchedAt.IsZero() {
		fetchedAt = time.Now().UTC()
	}
	_, err := db.conn.Exec(insertProfile,
		p.Login,
		p.Name,
		p.AvatarURL,
		p.HTMLURL,
		p.Blog,
		p.Location,
		p.Bio,
		p.Company,
		p.PublicRepos,
		p.Followers,
		p.Following,
		fetchedAt.UTC().Format(timeFormat),
	)
	if err != nil {
		return fmt.Errorf("failed to save profile %s: %w", p.Login, err)
	}
	return nil
}

// GetProfile returns the cached profile for a login, or ErrNotCached
func (db *DB) GetProfile(login string) (*models.UserProfile, error) {
	p, err := scanProfile(db.conn.QueryRow(selectProfile, login))
	if err == sql.ErrNoRows {
		return nil, ErrNotCached
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile %s: %w", login, err)
	}
	return p, nil
}

// ListProfiles returns every cached profile, most recently fetched first
func (db *DB) ListProfiles() ([]models.UserProfile, error) {
	rows, err := db.conn.Query(selectProfiles)
	if err != nil {
		return nil, fmt.Errorf("failed to query profiles: %w", err)
	}
	defer rows.Close()

	var profiles []models.UserProfile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan profile: %w", err)
		}
		profiles = append(profiles, *p)
	}
	return profiles, rows.Err()
}

// DeleteProfile removes a cached profile and its repositories
func (db *DB) DeleteProfile(login string) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(deleteRepositories, login); err != nil {
		return fmt.Errorf("failed to delete repositories: %w", err)
	}
	if _, err := tx.Exec(deleteProfile, login); err != nil {
		return fmt.Errorf("failed to delete profile: %w", err)
	}
	return tx.Commit()
}

// SaveRepositories replaces the cached repository list for a login
func (db *DB) SaveRepositories(login string, repos []models.UserRepository) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(deleteRepositories, login); err != nil {
		return fmt.Errorf("failed to clear repositories: %w", err)
	}

	stmt, err := tx.Prepare(insertRepository)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC()
	for _, r := range repos {
		fetchedAt := r.FetchedAt
		if fetchedAt.IsZero() {
			fetchedAt = now
		}
		pushedAt := ""
		if !r.PushedAt.IsZero() {
			pushedAt = r.PushedAt.UTC().Format(timeFormat)
		}
		_, err := stmt.Exec(
			login,
			r.Name,
			r.FullName,
			r.Description,
			r.URL,
			r.HomepageURL,
			r.StargazerCount,
			r.ForkCount,
			r.PrimaryLanguage,
			r.IsFork,
			pushedAt,
			fetchedAt.UTC().Format(timeFormat),
		)
		if err != nil {
			return fmt.Errorf("failed to insert repository %s: %w", r.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetRepositories returns cached repositories for a login, most recently pushed first
func (db *DB) GetRepositories(login string) ([]models.UserRepository, error) {
	rows, err := db.conn.Query(selectRepositories, login)
	if err != nil {
		return nil, fmt.Errorf("failed to query repositories: %w", err)
	}
	defer rows.Close()

	var repos []models.UserRepository
	for rows.Next() {
		var r models.UserRepository
		var fullName, desc, url, homepage, lang, pushedAt sql.NullString
		var fetchedAt string
		if err := rows.Scan(&r.GitHubLogin, &r.Name, &fullName, &desc, &url, &homepage,
			&r.StargazerCount, &r.ForkCount, &lang, &r.IsFork, &pushedAt, &fetchedAt); err != nil {
			return nil, fmt.Errorf("failed to scan repository: %w", err)
		}
		r.FullName = fullName.String
		r.Description = desc.String
		r.URL = url.String
		r.HomepageURL = homepage.String
		r.PrimaryLanguage = lang.String
		r.PushedAt, _ = parseTimestamp(pushedAt.String)
		r.FetchedAt, _ = parseTimestamp(fetchedAt)
		repos = append(repos, r)
	}
	return repos, rows.Err()
}

// SaveBlogPage caches a converted blog page under the URL it was requested with
func (db *DB) SaveBlogPage(requestURL string, page models.BlogPage) error {
	fetchedAt := page.FetchedAt
	if fetchedAt.IsZero() {
		fetchedAt = time.Now().UTC()
	}
	_, err := db.conn.Exec(insertBlogPage, requestURL, page.URL, page.Title, page.Markdown,
		fetchedAt.UTC().Format(timeFormat))
	if err != nil {
		return fmt.Errorf("failed to save blog page: %w", err)
	}
	return nil
}

// GetBlogPage returns a cached blog page no older than maxAge.
// A maxAge <= 0 accepts any age.
func (db *DB) GetBlogPage(requestURL string, maxAge time.Duration) (*models.BlogPage, error) {
	var page models.BlogPage
	var finalURL, title, markdown sql.NullString
	var fetchedAt string
	err := db.conn.QueryRow(selectBlogPage, requestURL).Scan(&finalURL, &title, &markdown, &fetchedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotCached
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get blog page: %w", err)
	}

	page.URL = finalURL.String
	page.Title = title.String
	page.Markdown = markdown.String
	page.FetchedAt, _ = parseTimestamp(fetchedAt)

	if maxAge > 0 && time.Since(page.FetchedAt) > maxAge {
		return nil, ErrNotCached
	}
	return &page, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProfile(row rowScanner) (*models.UserProfile, error) {
	var p models.UserProfile
	var name, avatar, htmlURL, blog, location, bio, company sql.NullString
	var fetchedAt string
	if err := row.Scan(&p.Login, &name, &avatar, &htmlURL, &blog, &location, &bio, &company,
		&p.PublicRepos, &p.Followers, &p.Following, &fetchedAt); err != nil {
		return nil, err
	}
	p.Name = name.String
	p.AvatarURL = avatar.String
	p.HTMLURL = htmlURL.String
	p.Blog = blog.String
	p.Location = location.String
	p.Bio = bio.String
	p.Company = company.String
	p.FetchedAt, _ = parseTimestamp(fetchedAt)
	return &p, nil
}

// parseTimestamp parses SQLite timestamp formats
func parseTimestamp(ts string) (time.Time, error) {
	formats := []string{
		"2006-01-02 15:04:05",
		"2006-01-02T15:04:05Z",
		time.RFC3339,
	}
	for _, format := range formats {
		if t, err := time.Parse(format, ts); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unable to parse timestamp: %s", ts)
}
