package main

import (
	"context"
	"fmt"

	"github.com/juliettebernheisel/etoilekit/internal/formatter"
	"github.com/juliettebernheisel/etoilekit/internal/models"
	"github.com/urfave/cli/v3"
)

// Recent lists the recently played songs, most recent first.
func (r *Runner) Recent(ctx context.Context, cmd *cli.Command) error {
	lib, db, err := r.openLibrary(r.loadConfig(cmd.String("config")))
	if err != nil {
		return err
	}
	defer db.Close()

	songs, err := lib.GetRecentlyPlayed()
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(songs, true)
	}
	_, err = r.output.Write(formatter.SongsToText("Recently played", songs))
	return err
}

// RecentAdd records a song at the head of the recently played list.
func (r *Runner) RecentAdd(ctx context.Context, cmd *cli.Command) error {
	lib, db, err := r.openLibrary(r.loadConfig(cmd.String("config")))
	if err != nil {
		return err
	}
	defer db.Close()

	song := models.Song{
		ID:     cmd.String("id"),
		Name:   cmd.String("name"),
		Artist: cmd.String("artist"),
	}
	if err := lib.AddToRecentlyPlayed(song); err != nil {
		return fmt.Errorf("failed to record song: %w", err)
	}

	r.writePlainln("✓ Recorded %s", song.ID)
	return nil
}

func recentCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "recent",
		Usage: "Recently played songs",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "Show the recently played list",
				Flags: []cli.Flag{
					configFlag(),
					&cli.BoolFlag{Name: "json", Usage: "Output JSON"},
				},
				Action: r.Recent,
			},
			{
				Name:  "add",
				Usage: "Record a played song",
				Flags: []cli.Flag{
					configFlag(),
					&cli.StringFlag{Name: "id", Usage: "Song ID", Required: true},
					&cli.StringFlag{Name: "name", Usage: "Song name"},
					&cli.StringFlag{Name: "artist", Usage: "Song artist"},
				},
				Action: r.RecentAdd,
			},
		},
	}
}
