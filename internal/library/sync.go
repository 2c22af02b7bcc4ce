package library

import (
	"context"
	"errors"

	"github.com/juliettebernheisel/etoilekit/internal/cache"
	"github.com/juliettebernheisel/etoilekit/internal/catalog"
	"github.com/juliettebernheisel/etoilekit/internal/models"
	"github.com/juliettebernheisel/etoilekit/internal/shared"
)

// GetAlbums fetches the albums under an artist from the remote catalog.
// Remote records missing a name, id, or album artist are skipped silently;
// artwork is best-effort enrichment.
func (l *Library) GetAlbums(ctx context.Context, artistID string) ([]models.Album, error) {
	items, err := l.catalog.ListItems(ctx, artistID, catalog.ItemFilters{})
	if err != nil {
		return nil, err
	}

	var albums []models.Album
	for _, item := range items {
		if !item.CompleteAlbum() {
			continue
		}
		art := l.catalog.FetchArtwork(ctx, item.ID)
		albums = append(albums, models.AlbumFromItem(item, art))
	}
	return albums, nil
}

// GetSongsInAlbum fetches the songs of an album from the remote catalog and
// overwrites the album's cached song list. Song order follows the remote
// listing order; no client-side sort is imposed.
func (l *Library) GetSongsInAlbum(ctx context.Context, albumID string) ([]models.Song, error) {
	items, err := l.catalog.ListItems(ctx, albumID, catalog.ItemFilters{})
	if err != nil {
		return nil, err
	}

	var songs []models.Song
	for _, item := range items {
		if !item.CompleteSong() {
			continue
		}
		art := l.catalog.FetchArtwork(ctx, item.ID)
		songs = append(songs, models.SongFromItem(item, art))
	}

	if err := l.songCache.Set(albumID, songs); err != nil {
		return nil, err
	}
	return songs, nil
}

// getArtists walks every music library and collects its artists.
func (l *Library) getArtists(ctx context.Context) ([]models.Artist, error) {
	libraries, err := l.catalog.ListMusicLibraries(ctx)
	if err != nil {
		return nil, err
	}

	var artists []models.Artist
	for _, libraryID := range libraries {
		items, err := l.catalog.ListItems(ctx, libraryID, catalog.ItemFilters{})
		if err != nil {
			return nil, err
		}
		for _, item := range items {
			if item.Type != models.ItemTypeMusicArtist || !item.CompleteArtist() {
				continue
			}
			image := l.catalog.FetchArtwork(ctx, item.ID)
			artists = append(artists, models.ArtistFromItem(item, image))
		}
	}
	return artists, nil
}

// reloadFromRemote performs the full sync: libraries, artists, albums per
// artist, songs per album. A failure under one artist or album is logged
// and that branch skipped; the sync continues with whatever succeeded.
// The assembled album list overwrites the albums cache entry at the end.
func (l *Library) reloadFromRemote(ctx context.Context) error {
	l.logger.Info("pulling library from catalog")
	l.albums = nil
	l.songs = make(map[string][]models.Song)

	artists, err := l.getArtists(ctx)
	if err != nil {
		return err
	}

	for _, artist := range artists {
		albums, err := l.GetAlbums(ctx, artist.ID)
		if err != nil {
			l.logger.Error("failed to fetch albums for artist, skipping", "artist", artist.Name, "error", err)
			continue
		}
		l.albums = append(l.albums, albums...)
	}

	for _, album := range l.albums {
		songs, err := l.GetSongsInAlbum(ctx, album.ID)
		if err != nil {
			l.logger.Error("failed to fetch songs for album, skipping", "album", album.Name, "error", err)
			continue
		}
		l.songs[album.ID] = songs
	}

	return l.albumCache.Set(cache.KeyAlbums, l.albums)
}

// snapshotFromCache rebuilds the in-memory mirror from the persistent tier.
// Albums must be present; per-album song misses are tolerated, leaving that
// album without songs in the snapshot.
func (l *Library) snapshotFromCache(quiet bool) (*Snapshot, error) {
	albums, err := l.albumCache.Get(cache.KeyAlbums)
	if err != nil {
		return nil, err
	}
	l.logger.Info("got albums from cache", "count", len(albums))

	l.albums = albums
	l.songs = make(map[string][]models.Song)

	for _, album := range albums {
		songs, err := l.songCache.Get(album.ID)
		if err != nil {
			if !quiet {
				l.logger.Error("missing cached songs for album, skipping", "album", album.Name, "error", err)
			}
			continue
		}
		l.songs[album.ID] = songs
	}

	return &Snapshot{Albums: l.albums, Songs: l.songs}, nil
}

// Reload is the cache-first read path: it serves the cached album list when
// one exists and falls through to a full remote sync when it does not.
func (l *Library) Reload(ctx context.Context) (*Snapshot, error) {
	snapshot, err := l.snapshotFromCache(false)
	if err == nil {
		return snapshot, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	if err := l.reloadFromRemote(ctx); err != nil {
		return nil, err
	}
	return &Snapshot{Albums: l.albums, Songs: l.songs}, nil
}

// ReloadNoPull is the local-only read path: it never contacts the remote
// and returns a nil snapshot when the albums entry is absent or expired.
func (l *Library) ReloadNoPull() (*Snapshot, error) {
	snapshot, err := l.snapshotFromCache(true)
	if errors.Is(err, shared.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return snapshot, nil
}

// Refresh unconditionally resyncs from the remote catalog regardless of
// cache state.
func (l *Library) Refresh(ctx context.Context) (*Snapshot, error) {
	if err := l.reloadFromRemote(ctx); err != nil {
		return nil, err
	}
	return &Snapshot{Albums: l.albums, Songs: l.songs}, nil
}

// SetAlbumsAndCache bulk-seeds the album and song caches from a snapshot
// produced elsewhere, with no remote round trip. Seeded data is treated as
// authoritative by Reload until it expires or Refresh replaces it.
func (l *Library) SetAlbumsAndCache(albums []models.Album, songs map[string][]models.Song) error {
	for albumID, albumSongs := range songs {
		if err := l.songCache.Set(albumID, albumSongs); err != nil {
			return err
		}
	}

	if albums != nil {
		if err := l.albumCache.Set(cache.KeyAlbums, albums); err != nil {
			return err
		}
	}
	return nil
}

// GetLyrics fetches the lyric sheet for a song. Lyrics are derived on
// demand and never cached.
func (l *Library) GetLyrics(ctx context.Context, song models.Song) (models.Lyrics, error) {
	return l.catalog.FetchLyrics(ctx, song.ID)
}
