package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"

	"github.com/yken-tsuru/ganttx/internal/cli"
	"github.com/yken-tsuru/ganttx/internal/config"
	"github.com/yken-tsuru/ganttx/internal/db"
	"github.com/yken-tsuru/ganttx/internal/redmine"
	"github.com/yken-tsuru/ganttx/internal/repository"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// The chart owns the terminal, so diagnostics go to a file.
	logOut, closeLog := openLog(cfg.LogPath)
	defer closeLog()
	logger := slog.New(slog.NewTextHandler(logOut, &slog.HandlerOptions{Level: slog.LevelInfo}))

	// Open database
	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	journalRepo := repository.NewSQLiteJournalRepo(database)
	settingsRepo := repository.NewSQLiteSettingsRepo(database)
	uow := db.NewSQLiteUnitOfWork(database)

	app := &cli.App{
		Config:   cfg,
		Settings: settingsRepo,
		Journal:  journalRepo,
		Edits:    repository.NewBoundedJournal(uow, cfg.JournalRetention),
		Logger:   logger,
	}

	app.Connect = func(cfg *config.Config) (*redmine.Client, error) {
		var observer redmine.Observer = redmine.NoopObserver{}
		if cfg.LogCalls {
			observer = redmine.NewLogObserver(logOut)
		}
		return redmine.NewClient(redmine.Options{
			BaseURL:   cfg.Server.URL,
			APIKey:    cfg.Server.APIKey,
			ProjectID: cfg.Project,
			Token:     cfg.Server.Token,
			Timeout:   cfg.Timeout(),
		}, observer)
	}

	// Detect interactive terminal for the chart TUI and prompts.
	app.IsInteractive = func() bool {
		in := isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
		out := isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
		return in && out
	}

	// Execute root command
	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}

// openLog opens the append-only log file. Logging is discarded when the
// file cannot be created.
func openLog(path string) (io.Writer, func()) {
	if path == "" {
		return io.Discard, func() {}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return io.Discard, func() {}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return io.Discard, func() {}
	}
	return f, func() { f.Close() }
}
