package main

import (
	"context"
	"fmt"

	"github.com/juliettebernheisel/etoilekit/internal/cache"
	"github.com/urfave/cli/v3"
)

// CacheClear removes one namespace's entries, or all of them.
func (r *Runner) CacheClear(ctx context.Context, cmd *cli.Command) error {
	config := r.loadConfig(cmd.String("config"))
	db, err := r.openDB(config)
	if err != nil {
		return err
	}
	defer db.Close()

	namespace := cmd.String("namespace")
	if namespace == "" {
		result, err := db.Exec("DELETE FROM cache_entries")
		if err != nil {
			return fmt.Errorf("failed to clear cache: %w", err)
		}
		affected, _ := result.RowsAffected()
		r.writePlainln("✓ Cleared %d cache entries", affected)
		return nil
	}

	result, err := db.Exec("DELETE FROM cache_entries WHERE namespace = ?", namespace)
	if err != nil {
		return fmt.Errorf("failed to clear cache namespace: %w", err)
	}
	affected, _ := result.RowsAffected()
	r.writePlainln("✓ Cleared %d entries from %s", affected, namespace)
	return nil
}

// CacheStats prints per-namespace entry counts.
func (r *Runner) CacheStats(ctx context.Context, cmd *cli.Command) error {
	config := r.loadConfig(cmd.String("config"))
	db, err := r.openDB(config)
	if err != nil {
		return err
	}
	defer db.Close()

	rows, err := db.Query("SELECT namespace, COUNT(*) FROM cache_entries GROUP BY namespace ORDER BY namespace")
	if err != nil {
		return fmt.Errorf("failed to read cache stats: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var namespace string
		var count int
		if err := rows.Scan(&namespace, &count); err != nil {
			return err
		}
		r.writePlainln("%s: %d", namespace, count)
	}
	return rows.Err()
}

func cacheCommand(r *Runner) *cli.Command {
	namespaceUsage := fmt.Sprintf("Cache namespace (e.g. %s)", cache.NamespaceAlbums)

	return &cli.Command{
		Name:  "cache",
		Usage: "Inspect and clear the local cache",
		Commands: []*cli.Command{
			{
				Name:   "stats",
				Usage:  "Show per-namespace entry counts",
				Flags:  []cli.Flag{configFlag()},
				Action: r.CacheStats,
			},
			{
				Name:  "clear",
				Usage: "Delete cached entries",
				Flags: []cli.Flag{
					configFlag(),
					&cli.StringFlag{Name: "namespace", Usage: namespaceUsage},
				},
				Action: r.CacheClear,
			},
		},
	}
}
