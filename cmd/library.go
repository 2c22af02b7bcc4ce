// submodule cmd contains command definitions
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/juliettebernheisel/etoilekit/internal/formatter"
	"github.com/juliettebernheisel/etoilekit/internal/library"
	"github.com/juliettebernheisel/etoilekit/internal/models"
	"github.com/juliettebernheisel/etoilekit/internal/shared"
	"github.com/urfave/cli/v3"
)

func (r *Runner) printSnapshot(snapshot *library.Snapshot, asJSON bool) error {
	if snapshot == nil {
		r.writePlainln("No cached library data")
		return nil
	}

	if asJSON {
		return r.writeJSON(snapshot, true)
	}

	for _, album := range snapshot.Albums {
		r.writePlainln("%s — %s (%d songs)", album.Name, album.Artist, len(snapshot.Songs[album.ID]))
	}
	r.writePlainln("Albums: %d", len(snapshot.Albums))
	return nil
}

// Reload serves the cache-first read path.
func (r *Runner) Reload(ctx context.Context, cmd *cli.Command) error {
	lib, db, err := r.openLibrary(r.loadConfig(cmd.String("config")))
	if err != nil {
		return err
	}
	defer db.Close()

	snapshot, err := lib.Reload(ctx)
	if err != nil {
		return fmt.Errorf("reload failed: %w", err)
	}
	return r.printSnapshot(snapshot, cmd.Bool("json"))
}

// ReloadNoPull serves the local-only read path.
func (r *Runner) ReloadNoPull(ctx context.Context, cmd *cli.Command) error {
	lib, db, err := r.openLibrary(r.loadConfig(cmd.String("config")))
	if err != nil {
		return err
	}
	defer db.Close()

	snapshot, err := lib.ReloadNoPull()
	if err != nil {
		return fmt.Errorf("reload failed: %w", err)
	}
	return r.printSnapshot(snapshot, cmd.Bool("json"))
}

// Refresh forces a full remote sync.
func (r *Runner) Refresh(ctx context.Context, cmd *cli.Command) error {
	lib, db, err := r.openLibrary(r.loadConfig(cmd.String("config")))
	if err != nil {
		return err
	}
	defer db.Close()

	snapshot, err := lib.Refresh(ctx)
	if err != nil {
		return fmt.Errorf("refresh failed: %w", err)
	}
	return r.printSnapshot(snapshot, cmd.Bool("json"))
}

// Albums lists the albums under one artist from the remote catalog.
func (r *Runner) Albums(ctx context.Context, cmd *cli.Command) error {
	artistID := cmd.String("artist")

	lib, db, err := r.openLibrary(r.loadConfig(cmd.String("config")))
	if err != nil {
		return err
	}
	defer db.Close()

	albums, err := lib.GetAlbums(ctx, artistID)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(albums, true)
	}
	for _, album := range albums {
		r.writePlainln("%s — %s (%s)", album.Name, album.Artist, album.ID)
	}
	return nil
}

// Songs lists the songs of one album from the remote catalog.
func (r *Runner) Songs(ctx context.Context, cmd *cli.Command) error {
	albumID := cmd.String("album")

	lib, db, err := r.openLibrary(r.loadConfig(cmd.String("config")))
	if err != nil {
		return err
	}
	defer db.Close()

	songs, err := lib.GetSongsInAlbum(ctx, albumID)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(songs, true)
	}
	for _, song := range songs {
		r.writePlainln("%2d. %s - %s", song.PositionInAlbum, song.Artist, song.Name)
	}
	return nil
}

// Export writes the cached snapshot to a file in the requested format.
func (r *Runner) Export(ctx context.Context, cmd *cli.Command) error {
	lib, db, err := r.openLibrary(r.loadConfig(cmd.String("config")))
	if err != nil {
		return err
	}
	defer db.Close()

	snapshot, err := lib.ReloadNoPull()
	if err != nil {
		return err
	}
	if snapshot == nil {
		return fmt.Errorf("%w: no cached library to export, run reload first", shared.ErrNotFound)
	}

	var data []byte
	switch format := cmd.String("format"); format {
	case "csv":
		if data, err = formatter.AlbumsToCSV(snapshot.Albums); err != nil {
			return err
		}
	case "markdown", "md":
		data = formatter.SnapshotToMarkdown(snapshot.Albums, snapshot.Songs)
	case "text", "txt":
		var songs []models.Song
		for _, album := range snapshot.Albums {
			songs = append(songs, snapshot.Songs[album.ID]...)
		}
		data = formatter.SongsToText("Library", songs)
	default:
		return fmt.Errorf("%w: unknown format %q", shared.ErrInvalidArgument, format)
	}

	output := cmd.String("output")
	if output == "" {
		_, err = r.output.Write(data)
		return err
	}
	if err := os.WriteFile(output, data, 0644); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	r.writePlainln("✓ Exported to %s", output)
	return nil
}

// Lyrics fetches and prints the lyric sheet for one song.
func (r *Runner) Lyrics(ctx context.Context, cmd *cli.Command) error {
	songID := cmd.String("id")

	lib, db, err := r.openLibrary(r.loadConfig(cmd.String("config")))
	if err != nil {
		return err
	}
	defer db.Close()

	lyrics, err := lib.GetLyrics(ctx, models.Song{ID: songID})
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(lyrics, true)
	}
	_, err = r.output.Write(formatter.LyricsToText(lyrics))
	return err
}

func libraryCommand(r *Runner) *cli.Command {
	jsonFlag := &cli.BoolFlag{Name: "json", Usage: "Output JSON"}

	return &cli.Command{
		Name:    "library",
		Aliases: []string{"lib"},
		Usage:   "Sync and inspect the music library",
		Commands: []*cli.Command{
			{
				Name:   "reload",
				Usage:  "Load the library from cache, pulling from the catalog on a miss",
				Flags:  []cli.Flag{configFlag(), jsonFlag},
				Action: r.Reload,
			},
			{
				Name:   "local",
				Usage:  "Load the library from cache only, never touching the network",
				Flags:  []cli.Flag{configFlag(), jsonFlag},
				Action: r.ReloadNoPull,
			},
			{
				Name:   "refresh",
				Usage:  "Force a full resync from the catalog",
				Flags:  []cli.Flag{configFlag(), jsonFlag},
				Action: r.Refresh,
			},
			{
				Name:  "albums",
				Usage: "List albums under an artist",
				Flags: []cli.Flag{
					configFlag(),
					jsonFlag,
					&cli.StringFlag{Name: "artist", Usage: "Artist ID", Required: true},
				},
				Action: r.Albums,
			},
			{
				Name:  "songs",
				Usage: "List songs in an album",
				Flags: []cli.Flag{
					configFlag(),
					jsonFlag,
					&cli.StringFlag{Name: "album", Usage: "Album ID", Required: true},
				},
				Action: r.Songs,
			},
			{
				Name:  "export",
				Usage: "Export the cached library snapshot",
				Flags: []cli.Flag{
					configFlag(),
					&cli.StringFlag{Name: "format", Usage: "csv, markdown, or text", Value: "text"},
					&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "Output file path"},
				},
				Action: r.Export,
			},
		},
	}
}

func lyricsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "lyrics",
		Usage: "Fetch lyrics for a song",
		Flags: []cli.Flag{
			configFlag(),
			&cli.BoolFlag{Name: "json", Usage: "Output JSON"},
			&cli.StringFlag{Name: "id", Usage: "Song ID", Required: true},
		},
		Action: r.Lyrics,
	}
}
