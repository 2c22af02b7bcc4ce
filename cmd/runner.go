package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/juliettebernheisel/etoilekit/internal/cache"
	"github.com/juliettebernheisel/etoilekit/internal/catalog"
	"github.com/juliettebernheisel/etoilekit/internal/credentials"
	"github.com/juliettebernheisel/etoilekit/internal/library"
	"github.com/juliettebernheisel/etoilekit/internal/shared"
	"github.com/urfave/cli/v3"
)

// cacheOptions maps the cache section of the config onto store options.
// Zero values defer to the package defaults.
func cacheOptions(config *shared.Config) cache.Options {
	return cache.Options{
		TTL:        time.Duration(config.Cache.RetentionDays) * 24 * time.Hour,
		CountLimit: config.Cache.CountLimit,
		CostLimit:  config.Cache.CostLimit,
	}
}

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config *shared.Config
	logger *log.Logger
	output io.Writer

	// test hook: when set, openLibrary uses this instead of building a
	// real catalog client from stored credentials
	catalogOverride catalog.Catalog
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config  *shared.Config
	Logger  *log.Logger
	Output  io.Writer
	Catalog catalog.Catalog
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	return &Runner{
		config:          opts.Config,
		logger:          opts.Logger,
		output:          opts.Output,
		catalogOverride: opts.Catalog,
	}
}

// loadConfig re-reads configuration from the given path, falling back to
// the Runner's current config when the file is absent or unreadable.
func (r *Runner) loadConfig(path string) *shared.Config {
	if path == "" {
		return r.config
	}
	if _, err := os.Stat(path); err != nil {
		return r.config
	}
	config, err := shared.LoadConfig(path)
	if err != nil {
		r.logger.Warn("failed to load config, using current", "path", path, "error", err)
		return r.config
	}
	return config
}

// openDB opens the application database and applies pool settings.
// The caller owns the returned handle.
func (r *Runner) openDB(config *shared.Config) (*sql.DB, error) {
	db, err := shared.NewDatabase(config.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	shared.ConfigureDatabase(db, config.Database.MaxOpenConns, config.Database.MaxIdleConns)
	return db, nil
}

// openLibrary builds the full dependency chain for library commands:
// database, credential store, catalog client, library.
func (r *Runner) openLibrary(config *shared.Config) (*library.Library, *sql.DB, error) {
	db, err := r.openDB(config)
	if err != nil {
		return nil, nil, err
	}

	creds := credentials.NewSqliteStore(db)

	cat := r.catalogOverride
	if cat == nil {
		client, err := catalog.New(creds, catalog.Options{
			DeviceName: config.Catalog.DeviceName,
			ClientName: config.Catalog.ClientName,
			RateLimit:  config.Catalog.RateLimit,
			Logger:     r.logger,
		})
		if err != nil {
			db.Close()
			return nil, nil, err
		}
		cat = client
	}

	lib, err := library.New(library.Deps{
		Catalog:      cat,
		Credentials:  creds,
		DB:           db,
		Logger:       r.logger,
		CacheOptions: cacheOptions(config),
	})
	if err != nil {
		db.Close()
		return nil, nil, err
	}

	return lib, db, nil
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	encoder := json.NewEncoder(r.output)
	if pretty {
		encoder.SetIndent("", "  ")
	}
	return encoder.Encode(data)
}

func (r *Runner) writePlainln(format string, args ...any) {
	fmt.Fprintf(r.output, format+"\n", args...)
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, loginCommand, logoutCommand, libraryCommand, playlistCommand, recentCommand, playCommand, lyricsCommand, cacheCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}
