package db

// Schema for cached user profiles
const createProfilesTable = `
CREATE TABLE IF NOT EXISTS profiles (
    login TEXT PRIMARY KEY COLLATE NOCASE,
    name TEXT,
    avatar_url TEXT,
    html_url TEXT,
    blog TEXT,
    location TEXT,
    bio TEXT,
    company TEXT,
    public_repos INTEGER NOT NULL DEFAULT 0,
    followers INTEGER NOT NULL DEFAULT 0,
    following INTEGER NOT NULL DEFAULT 0,
    fetched_at TEXT NOT NULL
);
`

const insertProfile = `
INSERT OR REPLACE INTO profiles (
    login, name, avatar_url, html_url, blog, location, bio, company,
    public_repos, followers, following, fetched_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

const selectProfile = `
SELECT login, name, avatar_url, html_url, blog, location, bio, company,
       public_repos, followers, following, fetched_at
FROM profiles
WHERE login = ?
`

const selectProfiles = `
SELECT login, name, avatar_url, html_url, blog, location, bio, company,
       public_repos, followers, following, fetched_at
FROM profiles
ORDER BY fetched_at DESC
`

const deleteProfile = `
DELETE FROM profiles WHERE login = ?
`

// Schema for repositories listed beneath the header
const createRepositoriesTable = `
CREATE TABLE IF NOT EXISTS repositories (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    github_login TEXT NOT NULL COLLATE NOCASE,
    name TEXT NOT NULL,
    full_name TEXT,
    description TEXT,
    url TEXT,
    homepage_url TEXT,
    stargazer_count INTEGER NOT NULL DEFAULT 0,
    fork_count INTEGER NOT NULL DEFAULT 0,
    primary_language TEXT,
    is_fork INTEGER NOT NULL DEFAULT 0,
    pushed_at TEXT,
    fetched_at TEXT NOT NULL,
    UNIQUE(github_login, name)
);

CREATE INDEX IF NOT EXISTS idx_repositories_login ON repositories(github_login);
`

const insertRepository = `
INSERT OR REPLACE INTO repositories (
    github_login, name, full_name, description, url, homepage_url,
    stargazer_count, fork_count, primary_language, is_fork, pushed_at, fetched_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

const selectRepositories = `
SELECT github_login, name, full_name, description, url, homepage_url,
       stargazer_count, fork_count, primary_language, is_fork, pushed_at, fetched_at
FROM repositories
WHERE github_login = ?
ORDER BY pushed_at DESC, name ASC
`

const deleteRepositories = `
DELETE FROM repositories WHERE github_login = ?
`

// Schema for converted blog pages
const createBlogPagesTable = `
CREATE TABLE IF NOT EXISTS blog_pages (
    url TEXT PRIMARY KEY,
    final_url TEXT,
    title TEXT,
    markdown TEXT,
    fetched_at TEXT NOT NULL
);
`

const insertBlogPage = `
INSERT OR REPLACE INTO blog_pages (url, final_url, title, markdown, fetched_at)
VALUES (?, ?, ?, ?, ?)
`

const selectBlogPage = `
SELECT final_url, title, markdown, fetched_at FROM blog_pages WHERE url = ?
`
