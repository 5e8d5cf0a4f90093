package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/thesavant42/gitsome-header/internal/api"
	"github.com/thesavant42/gitsome-header/internal/config"
	"github.com/thesavant42/gitsome-header/internal/db"
	"github.com/thesavant42/gitsome-header/internal/header"
	"github.com/thesavant42/gitsome-header/internal/models"
	"github.com/thesavant42/gitsome-header/internal/ui"
)

func main() {
	// Load .env and environment first; flags override
	cfg := config.Load()

	userFlag := flag.String("user", "", "GitHub login, @login or profile URL")
	dbPath := flag.String("db", cfg.DBPath, "Path to SQLite cache database")
	tokenFlag := flag.String("token", "", "GitHub personal access token (optional)")
	refreshFlag := flag.Bool("refresh", false, "Ignore the cached profile and fetch from GitHub")
	maxAge := flag.Duration("max-age", cfg.MaxAge, "How long cached profiles and blog pages stay fresh")
	exportFlag := flag.String("export", "", "Write the header as Markdown to FILE and exit (\"-\" prompts for a name)")
	logFlag := flag.String("log", "", "Log file (default: next to the database)")
	flag.Parse()

	// Also accept the login as positional argument
	if *userFlag == "" && flag.NArg() > 0 {
		*userFlag = flag.Arg(0)
	}

	token := *tokenFlag
	if token == "" {
		token = cfg.Token
	}

	logPath := *logFlag
	if logPath == "" {
		logPath = cfg.LogPath
		if *dbPath != cfg.DBPath && os.Getenv("GITSOME_LOG") == "" {
			logPath = config.DefaultLogPath(*dbPath)
		}
	}
	logger, closeLog := newLogger(logPath, cfg.LogLevel)

	err := run(cfg, runOptions{
		login:   *userFlag,
		dbPath:  *dbPath,
		token:   token,
		refresh: *refreshFlag,
		maxAge:  *maxAge,
		export:  *exportFlag,
	}, logger)
	os.Exit(finish(err, logger, closeLog))
}

// finish reports err and closes the log. os.Exit skips deferred calls, so
// the log is closed here before main exits.
func finish(err error, logger *log.Logger, closeLog func()) int {
	defer closeLog()
	if err != nil {
		logger.Error("Exiting", "error", err)
		ui.PrintError(err.Error())
		return 1
	}
	return 0
}

type runOptions struct {
	login   string
	dbPath  string
	token   string
	refresh bool
	maxAge  time.Duration
	export  string
}

func run(cfg *config.Config, opts runOptions, logger *log.Logger) error {
	login := opts.login
	if login == "" {
		var err error
		login, err = ui.PromptForLogin()
		if err != nil {
			return err
		}
	} else {
		var err error
		login, err = api.ParseLogin(login)
		if err != nil {
			return err
		}
	}

	database, err := db.New(opts.dbPath)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer database.Close()

	client := api.NewClient(opts.token).WithLogger(logger.WithPrefix("API"))
	if cfg.APIURL != "" {
		client = client.WithBaseURL(cfg.APIURL)
	}

	loader := &profileLoader{
		client:    client,
		store:     database,
		login:     login,
		maxAge:    opts.maxAge,
		repoLimit: cfg.RepoLimit,
		logger:    logger.WithPrefix("DB"),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	profile, repos, stale, err := loader.load(ctx, opts.refresh, func(ctx context.Context) (*models.UserProfile, []models.UserRepository, error) {
		var (
			fetched *models.UserProfile
			list    []models.UserRepository
		)
		err := ui.RunWithSpinner(ctx, fmt.Sprintf("Fetching @%s from GitHub...", login), func(ctx context.Context) error {
			var err error
			fetched, list, err = loader.fetch(ctx)
			return err
		})
		return fetched, list, err
	})
	if err != nil {
		return err
	}
	if stale {
		ui.PrintWarning(fmt.Sprintf("GitHub unreachable, showing cached data from %s", profile.FetchedAt.Local().Format(time.RFC1123)))
	}

	if opts.export != "" {
		return export(*profile, repos, opts.export)
	}

	store := header.NewStore(*profile, ui.NewBrowserLauncher(), header.WithLogger(logger.WithPrefix("UI")))
	blogs := ui.NewCachedBlogSource(database, api.NewBlogClient(logger.WithPrefix("WEB")), opts.maxAge, logger.WithPrefix("DB"))

	return ui.RunHeader(store,
		ui.WithRepositories(repos),
		ui.WithBlogSource(blogs),
		ui.WithHeaderLogger(logger.WithPrefix("UI")),
		ui.WithRefresher(func(ctx context.Context) (*models.UserProfile, []models.UserRepository, error) {
			return loader.fetch(ctx)
		}),
	)
}

func export(profile models.UserProfile, repos []models.UserRepository, filename string) error {
	if filename == "-" {
		var err error
		filename, err = ui.PromptForExportFilename(ui.DefaultExportFilename(profile.Login, time.Now()))
		if err != nil {
			return err
		}
	}
	if err := ui.ExportHeaderMarkdown(profile, repos, filename); err != nil {
		return err
	}
	ui.PrintSuccess("Exported to " + filename)
	ui.PrintSummary(profile, len(repos))
	return nil
}

// newLogger opens the log file; the TUI owns stdout. Falls back to a
// discarding logger if the file cannot be opened.
func newLogger(path, level string) (*log.Logger, func()) {
	opts := log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
	}
	if lvl, err := log.ParseLevel(level); err == nil {
		opts.Level = lvl
	}

	if dir := filepath.Dir(path); dir != "" {
		_ = os.MkdirAll(dir, 0755)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return log.NewWithOptions(io.Discard, opts), func() {}
	}
	return log.NewWithOptions(f, opts), func() { f.Close() }
}
