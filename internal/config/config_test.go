package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"GITHUB_TOKEN", "GITSOME_DB", "GITSOME_LOG", "GITSOME_LOG_LEVEL", "GITSOME_MAX_AGE", "GITSOME_REPO_LIMIT", "GITHUB_API_URL"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}

	cfg := Load(filepath.Join(t.TempDir(), "missing.env"))
	if cfg.DBPath != defaultDBPath {
		t.Errorf("DBPath = %q, want %q", cfg.DBPath, defaultDBPath)
	}
	if cfg.MaxAge != defaultMaxAge {
		t.Errorf("MaxAge = %v, want %v", cfg.MaxAge, defaultMaxAge)
	}
	if cfg.RepoLimit != defaultRepoCap {
		t.Errorf("RepoLimit = %d, want %d", cfg.RepoLimit, defaultRepoCap)
	}
	if cfg.LogPath != DefaultLogPath(defaultDBPath) {
		t.Errorf("LogPath = %q", cfg.LogPath)
	}
}

func TestLoadFromEnvFile(t *testing.T) {
	for _, k := range []string{"GITHUB_TOKEN", "GITSOME_DB", "GITSOME_LOG", "GITSOME_MAX_AGE", "GITSOME_REPO_LIMIT"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}

	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	content := "GITHUB_TOKEN=ghp_test\nGITSOME_DB=" + filepath.Join(dir, "data", "x.db") + "\nGITSOME_MAX_AGE=90m\nGITSOME_REPO_LIMIT=bogus\n"
	if err := os.WriteFile(envFile, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	cfg := Load(envFile)
	if cfg.Token != "ghp_test" {
		t.Errorf("Token = %q", cfg.Token)
	}
	if cfg.MaxAge != 90*time.Minute {
		t.Errorf("MaxAge = %v, want 90m", cfg.MaxAge)
	}
	if cfg.RepoLimit != defaultRepoCap {
		t.Errorf("RepoLimit = %d, want default for unparseable value", cfg.RepoLimit)
	}
	if want := filepath.Join(dir, "data", "gitsome-header.log"); cfg.LogPath != want {
		t.Errorf("LogPath = %q, want %q", cfg.LogPath, want)
	}
}

func TestEnvironmentWinsOverEnvFile(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	if err := os.WriteFile(envFile, []byte("GITHUB_TOKEN=from_file\n"), 0600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("GITHUB_TOKEN", "from_env")

	if cfg := Load(envFile); cfg.Token != "from_env" {
		t.Errorf("Token = %q, want from_env", cfg.Token)
	}
}
