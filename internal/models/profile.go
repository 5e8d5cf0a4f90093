package models

import (
	"strings"
	"time"
)

// UserProfile is the profile summary shown in the repositories list header.
// It mirrors the fields of GitHub's GET /users/{login} response that the
// header renders.
type UserProfile struct {
	Login       string    `json:"login"`
	Name        string    `json:"name"`       // optional
	AvatarURL   string    `json:"avatar_url"` // avatar image location
	HTMLURL     string    `json:"html_url"`   // profile web page
	Blog        string    `json:"blog"`       // empty = no blog configured
	Location    string    `json:"location"`   // optional
	Bio         string    `json:"bio"`
	Company     string    `json:"company"`
	PublicRepos int       `json:"public_repos"`
	Followers   int       `json:"followers"`
	Following   int       `json:"following"`
	FetchedAt   time.Time `json:"-"`
}

// DisplayName returns the profile name, falling back to the login
func (p UserProfile) DisplayName() string {
	if name := strings.TrimSpace(p.Name); name != "" {
		return name
	}
	return p.Login
}

// HasBlog reports whether a blog URI is configured. Only the empty string
// means "none"; a malformed value still goes to the viewer.
func (p UserProfile) HasBlog() bool {
	return p.Blog != ""
}

// BlogURL returns the blog URI with a scheme. GitHub stores whatever the user
// typed, which is often a bare host like "example.com/blog".
func (p UserProfile) BlogURL() string {
	blog := strings.TrimSpace(p.Blog)
	if blog == "" {
		// empty or blank: passed through as stored
		return p.Blog
	}
	lower := strings.ToLower(blog)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return blog
	}
	return "https://" + strings.TrimPrefix(blog, "//")
}

// RepositoriesURL returns the link opened by "See all": the repositories tab
// of the profile page.
func (p UserProfile) RepositoriesURL() string {
	if p.HTMLURL != "" {
		return strings.TrimRight(p.HTMLURL, "/") + "?tab=repositories"
	}
	if p.Login != "" {
		return "https://github.com/" + p.Login + "?tab=repositories"
	}
	return ""
}

// Initials returns up to two uppercase initials used for the avatar badge
func (p UserProfile) Initials() string {
	var initials []rune
	for _, f := range strings.Fields(p.DisplayName()) {
		initials = append(initials, []rune(strings.ToUpper(f))[0])
		if len(initials) == 2 {
			break
		}
	}
	if len(initials) == 0 {
		return "?"
	}
	return string(initials)
}

// UserRepository is a repository listed beneath the header
type UserRepository struct {
	GitHubLogin     string    `json:"-"`
	Name            string    `json:"name"`
	FullName        string    `json:"full_name"`
	Description     string    `json:"description"`
	URL             string    `json:"html_url"`
	HomepageURL     string    `json:"homepage"`
	StargazerCount  int       `json:"stargazers_count"`
	ForkCount       int       `json:"forks_count"`
	PrimaryLanguage string    `json:"language"`
	IsFork          bool      `json:"fork"`
	PushedAt        time.Time `json:"pushed_at"`
	FetchedAt       time.Time `json:"-"`
}

// BlogPage is a blog page converted for terminal display
type BlogPage struct {
	URL       string // final URL after redirects
	Title     string
	Markdown  string
	Links     []PageLink
	FetchedAt time.Time
}

// PageLink is an anchor extracted from a blog page
type PageLink struct {
	Index int
	Text  string
	URL   string
}
