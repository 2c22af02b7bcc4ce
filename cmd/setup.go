package main

import (
	"context"
	"fmt"
	"net/url"
	"os"

	"github.com/juliettebernheisel/etoilekit/internal/credentials"
	"github.com/juliettebernheisel/etoilekit/internal/shared"
	"github.com/urfave/cli/v3"
)

// SetupDatabase initializes the database and runs migrations.
func (r *Runner) SetupDatabase(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")

	var config *shared.Config
	if _, err := os.Stat(configPath); err == nil {
		if config, err = shared.LoadConfig(configPath); err != nil {
			r.logger.Warn("failed to load config, using defaults", "error", err)
			config = shared.DefaultConfig()
		}
	} else {
		r.logger.Info("config file not found, creating from template", "path", configPath)
		if err := shared.CreateConfigFile(configPath); err != nil {
			r.logger.Warn("failed to create config file, using defaults", "error", err)
			config = shared.DefaultConfig()
		} else {
			r.logger.Info("config file created", "path", configPath)
			if config, err = shared.LoadConfig(configPath); err != nil {
				r.logger.Warn("failed to load created config, using defaults", "error", err)
				config = shared.DefaultConfig()
			}
		}
	}

	r.logger.Info("initializing database", "path", config.Database.Path)

	db, err := r.openDB(config)
	if err != nil {
		return err
	}
	defer db.Close()

	r.logger.Info("running database migrations")
	if err := shared.RunMigrations(db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	r.logger.Infof("setup complete for database: %v", config.Database.Path)
	return nil
}

// Login stores the catalog endpoint URL and bearer token.
func (r *Runner) Login(ctx context.Context, cmd *cli.Command) error {
	instance := cmd.String("instance")
	token := cmd.String("token")

	if instance == "" || token == "" {
		return fmt.Errorf("%w: both --instance and --token are required", shared.ErrMissingArgument)
	}

	if u, err := url.Parse(instance); err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%w: %q", shared.ErrInvalidEndpoint, instance)
	}

	config := r.loadConfig(cmd.String("config"))
	db, err := r.openDB(config)
	if err != nil {
		return err
	}
	defer db.Close()

	store := credentials.NewSqliteStore(db)
	if err := store.Set(credentials.KeyInstance, instance); err != nil {
		return err
	}
	if err := store.Set(credentials.KeyToken, token); err != nil {
		return err
	}

	r.writePlainln("✓ Credentials stored for %s", instance)
	return nil
}

// Logout deletes the stored endpoint and token. Failures are logged, not fatal.
func (r *Runner) Logout(ctx context.Context, cmd *cli.Command) error {
	config := r.loadConfig(cmd.String("config"))
	db, err := r.openDB(config)
	if err != nil {
		return err
	}
	defer db.Close()

	store := credentials.NewSqliteStore(db)
	if err := store.Delete(credentials.KeyToken); err != nil {
		r.logger.Error("failed to delete token", "error", err)
	}
	if err := store.Delete(credentials.KeyInstance); err != nil {
		r.logger.Error("failed to delete instance", "error", err)
	}

	r.writePlainln("✓ Logged out")
	return nil
}

func configFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to configuration file",
		Value:   "config.toml",
	}
}

func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "setup",
		Usage:  "Initialize database and run migrations",
		Flags:  []cli.Flag{configFlag()},
		Action: r.SetupDatabase,
	}
}

func loginCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "login",
		Usage: "Store catalog endpoint and token",
		Flags: []cli.Flag{
			configFlag(),
			&cli.StringFlag{
				Name:     "instance",
				Usage:    "Catalog server URL",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "token",
				Usage:    "Bearer token",
				Required: true,
			},
		},
		Action: r.Login,
	}
}

func logoutCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "logout",
		Usage:  "Delete stored credentials",
		Flags:  []cli.Flag{configFlag()},
		Action: r.Logout,
	}
}
