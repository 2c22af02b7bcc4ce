package main

import (
	"context"
	"fmt"

	"github.com/juliettebernheisel/etoilekit/internal/formatter"
	"github.com/juliettebernheisel/etoilekit/internal/models"
	"github.com/urfave/cli/v3"
)

// Playlists lists playlists, from cache or from the catalog.
func (r *Runner) Playlists(ctx context.Context, cmd *cli.Command) error {
	lib, db, err := r.openLibrary(r.loadConfig(cmd.String("config")))
	if err != nil {
		return err
	}
	defer db.Close()

	var playlists []models.Playlist
	if cmd.Bool("no-pull") {
		playlists, err = lib.ReloadNoPullPlaylists()
	} else {
		playlists, err = lib.PullPlaylists(ctx)
	}
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(playlists, true)
	}
	_, err = r.output.Write(formatter.PlaylistsToText(playlists))
	return err
}

// PlaylistCreate creates a playlist remotely and updates the cached list.
func (r *Runner) PlaylistCreate(ctx context.Context, cmd *cli.Command) error {
	name := cmd.String("name")

	lib, db, err := r.openLibrary(r.loadConfig(cmd.String("config")))
	if err != nil {
		return err
	}
	defer db.Close()

	playlists, err := lib.CreatePlaylist(ctx, name)
	if err != nil {
		return fmt.Errorf("failed to create playlist: %w", err)
	}

	r.writePlainln("✓ Playlist created: %s", name)
	r.writePlainln("  Playlists: %d", len(playlists))
	return nil
}

// PlaylistSongs lists a playlist's songs, cache first.
func (r *Runner) PlaylistSongs(ctx context.Context, cmd *cli.Command) error {
	playlistID := cmd.String("id")

	lib, db, err := r.openLibrary(r.loadConfig(cmd.String("config")))
	if err != nil {
		return err
	}
	defer db.Close()

	songs, err := lib.GetSongsFromPlaylist(ctx, playlistID)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(songs, true)
	}
	_, err = r.output.Write(formatter.SongsToText("Playlist "+playlistID, songs))
	return err
}

// PlaylistAdd adds a song to a playlist.
func (r *Runner) PlaylistAdd(ctx context.Context, cmd *cli.Command) error {
	lib, db, err := r.openLibrary(r.loadConfig(cmd.String("config")))
	if err != nil {
		return err
	}
	defer db.Close()

	playlist := models.Playlist{ID: cmd.String("playlist")}
	song := models.Song{ID: cmd.String("song")}
	if err := lib.AddSongToPlaylist(ctx, playlist, song); err != nil {
		return fmt.Errorf("failed to add song: %w", err)
	}

	r.writePlainln("✓ Song %s added to playlist %s", song.ID, playlist.ID)
	return nil
}

// PlaylistRemove removes a song from a playlist.
func (r *Runner) PlaylistRemove(ctx context.Context, cmd *cli.Command) error {
	lib, db, err := r.openLibrary(r.loadConfig(cmd.String("config")))
	if err != nil {
		return err
	}
	defer db.Close()

	playlistID := cmd.String("playlist")
	song := models.Song{ID: cmd.String("song")}
	if err := lib.RemoveSongFromPlaylist(ctx, playlistID, song); err != nil {
		return fmt.Errorf("failed to remove song: %w", err)
	}

	r.writePlainln("✓ Song %s removed from playlist %s", song.ID, playlistID)
	return nil
}

// PlaylistDelete deletes a playlist locally and remotely.
func (r *Runner) PlaylistDelete(ctx context.Context, cmd *cli.Command) error {
	lib, db, err := r.openLibrary(r.loadConfig(cmd.String("config")))
	if err != nil {
		return err
	}
	defer db.Close()

	playlist := models.Playlist{ID: cmd.String("id")}
	if err := lib.DeletePlaylist(ctx, playlist); err != nil {
		return fmt.Errorf("failed to delete playlist: %w", err)
	}

	r.writePlainln("✓ Playlist %s deleted", playlist.ID)
	return nil
}

func playlistCommand(r *Runner) *cli.Command {
	jsonFlag := &cli.BoolFlag{Name: "json", Usage: "Output JSON"}

	return &cli.Command{
		Name:    "playlists",
		Aliases: []string{"pl"},
		Usage:   "Manage playlists",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List playlists",
				Flags: []cli.Flag{
					configFlag(),
					jsonFlag,
					&cli.BoolFlag{Name: "no-pull", Usage: "Use cached playlists only"},
				},
				Action: r.Playlists,
			},
			{
				Name:  "create",
				Usage: "Create a playlist",
				Flags: []cli.Flag{
					configFlag(),
					&cli.StringFlag{Name: "name", Usage: "Playlist name", Required: true},
				},
				Action: r.PlaylistCreate,
			},
			{
				Name:  "songs",
				Usage: "List songs in a playlist",
				Flags: []cli.Flag{
					configFlag(),
					jsonFlag,
					&cli.StringFlag{Name: "id", Usage: "Playlist ID", Required: true},
				},
				Action: r.PlaylistSongs,
			},
			{
				Name:  "add",
				Usage: "Add a song to a playlist",
				Flags: []cli.Flag{
					configFlag(),
					&cli.StringFlag{Name: "playlist", Usage: "Playlist ID", Required: true},
					&cli.StringFlag{Name: "song", Usage: "Song ID", Required: true},
				},
				Action: r.PlaylistAdd,
			},
			{
				Name:  "remove",
				Usage: "Remove a song from a playlist",
				Flags: []cli.Flag{
					configFlag(),
					&cli.StringFlag{Name: "playlist", Usage: "Playlist ID", Required: true},
					&cli.StringFlag{Name: "song", Usage: "Song ID", Required: true},
				},
				Action: r.PlaylistRemove,
			},
			{
				Name:  "delete",
				Usage: "Delete a playlist",
				Flags: []cli.Flag{
					configFlag(),
					&cli.StringFlag{Name: "id", Usage: "Playlist ID", Required: true},
				},
				Action: r.PlaylistDelete,
			},
		},
	}
}
