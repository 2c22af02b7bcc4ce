package main

import (
	"context"
	"fmt"

	"github.com/juliettebernheisel/etoilekit/internal/models"
	"github.com/urfave/cli/v3"
)

// Play emits the handoff payload for playing a song on a named device and
// records the song as played. The device name defaults to the configured one.
func (r *Runner) Play(ctx context.Context, cmd *cli.Command) error {
	config := r.loadConfig(cmd.String("config"))

	lib, db, err := r.openLibrary(config)
	if err != nil {
		return err
	}
	defer db.Close()

	device := cmd.String("device")
	if device == "" {
		device = config.Catalog.DeviceName
	}

	song := models.Song{
		ID:     cmd.String("id"),
		Name:   cmd.String("name"),
		Artist: cmd.String("artist"),
	}
	payload, err := lib.PlayOn(song, device)
	if err != nil {
		return fmt.Errorf("failed to build playback payload: %w", err)
	}
	return r.writeJSON(payload, true)
}

func playCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "play",
		Usage: "Hand a song off for playback on a device",
		Flags: []cli.Flag{
			configFlag(),
			&cli.StringFlag{Name: "id", Usage: "Song ID", Required: true},
			&cli.StringFlag{Name: "name", Usage: "Song name"},
			&cli.StringFlag{Name: "artist", Usage: "Song artist"},
			&cli.StringFlag{Name: "device", Usage: "Target device name"},
		},
		Action: r.Play,
	}
}
