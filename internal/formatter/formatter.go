// package formatter provides functions to export library snapshots and
// playlist song lists to various formats (CSV, Markdown, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/juliettebernheisel/etoilekit/internal/models"
)

// SongsToCSV converts a song list to CSV with columns: ID, Name, Artist, Position
func SongsToCSV(songs []models.Song) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Name", "Artist", "Position"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, song := range songs {
		record := []string{
			song.ID,
			song.Name,
			song.Artist,
			strconv.FormatInt(song.PositionInAlbum, 10),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// AlbumsToCSV converts an album list to CSV with columns: ID, Name, Artist
func AlbumsToCSV(albums []models.Album) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Name", "Artist"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, album := range albums {
		if err := writer.Write([]string{album.ID, album.Name, album.Artist}); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// SnapshotToMarkdown converts a library snapshot to Markdown, one section
// per album with its songs in listing order.
func SnapshotToMarkdown(albums []models.Album, songs map[string][]models.Song) []byte {
	var buf bytes.Buffer

	buf.WriteString("# Library\n\n")
	buf.WriteString(fmt.Sprintf("**Albums**: %d\n\n", len(albums)))

	for _, album := range albums {
		buf.WriteString(fmt.Sprintf("## %s — %s\n\n", album.Name, album.Artist))
		for i, song := range songs[album.ID] {
			buf.WriteString(fmt.Sprintf("%d. %s - %s\n", i+1, song.Artist, song.Name))
		}
		buf.WriteString("\n")
	}

	return buf.Bytes()
}

// SongsToText converts a song list to plain text
func SongsToText(title string, songs []models.Song) []byte {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("%s\n", title))
	buf.WriteString(fmt.Sprintf("Songs: %d\n\n", len(songs)))

	for i, song := range songs {
		buf.WriteString(fmt.Sprintf("%d. %s - %s\n", i+1, song.Artist, song.Name))
	}

	return buf.Bytes()
}

// PlaylistsToText converts a playlist list to plain text
func PlaylistsToText(playlists []models.Playlist) []byte {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Playlists: %d\n\n", len(playlists)))
	for i, playlist := range playlists {
		buf.WriteString(fmt.Sprintf("%d. %s (%s)\n", i+1, playlist.Name, playlist.ID))
	}

	return buf.Bytes()
}

// LyricsToText renders a lyric sheet as plain text, with timestamps when synced.
func LyricsToText(lyrics models.Lyrics) []byte {
	var buf bytes.Buffer

	for _, line := range lyrics.Lines {
		if line.Start != nil {
			ms := *line.Start
			buf.WriteString(fmt.Sprintf("[%02d:%05.2f] ", ms/60000, float64(ms%60000)/1000))
		}
		buf.WriteString(line.Text)
		buf.WriteString("\n")
	}

	return buf.Bytes()
}
