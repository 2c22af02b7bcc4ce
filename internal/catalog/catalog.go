// Package catalog adapts the remote Etoile catalog server's HTTP API into
// typed operations.
//
// The [Catalog] interface is what the library layer programs against;
// [Client] is the real implementation. No caching happens here: every call
// is a network round trip.
package catalog

import (
	"context"

	"github.com/juliettebernheisel/etoilekit/internal/models"
)

// ItemFilters narrows a children listing. Zero value lists everything
// under the parent in the server's default order.
type ItemFilters struct {
	IncludeItemTypes []string
	SortDescending   bool
}

// Catalog exposes the remote catalog operations the library layer needs.
type Catalog interface {
	// ListMusicLibraries returns the ids of the user's top-level views
	// that are music collections.
	ListMusicLibraries(ctx context.Context) ([]string, error)

	// ListItems lists the children of parentID. An empty parentID lists
	// top-level items.
	ListItems(ctx context.Context, parentID string, filters ItemFilters) ([]models.RemoteItem, error)

	// FetchArtwork returns the primary image for an item, or nil when the
	// item has none or the fetch fails. Failures are never surfaced.
	FetchArtwork(ctx context.Context, itemID string) []byte

	// FetchLyrics returns the lyric sheet for a song.
	FetchLyrics(ctx context.Context, itemID string) (models.Lyrics, error)

	// CreatePlaylist creates an empty playlist and returns its id.
	CreatePlaylist(ctx context.Context, name string) (string, error)

	// UpdatePlaylistMembership replaces a playlist's membership with the
	// full ordered song id list.
	UpdatePlaylistMembership(ctx context.Context, playlistID string, songIDs []string) error

	// RemoveFromPlaylist removes the given entries from a playlist.
	RemoveFromPlaylist(ctx context.Context, playlistID string, entryIDs []string) error

	// DeleteItem deletes an item (used for playlists).
	DeleteItem(ctx context.Context, itemID string) error
}
