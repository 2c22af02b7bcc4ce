package library

import (
	"context"

	"github.com/juliettebernheisel/etoilekit/internal/cache"
	"github.com/juliettebernheisel/etoilekit/internal/catalog"
	"github.com/juliettebernheisel/etoilekit/internal/models"
)

// getSongsFromRemotePlaylist fetches a playlist's songs from the catalog
// and overwrites its cached song list.
func (l *Library) getSongsFromRemotePlaylist(ctx context.Context, playlistID string) ([]models.Song, error) {
	items, err := l.catalog.ListItems(ctx, playlistID, catalog.ItemFilters{})
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

	if err := l.playlistSongCache.Set(playlistID, songs); err != nil {
		return nil, err
	}
	return songs, nil
}

// GetSongsFromPlaylist is the cache-first read for playlist membership:
// the cached song list when present, otherwise a remote fetch that fills
// the cache.
func (l *Library) GetSongsFromPlaylist(ctx context.Context, playlistID string) ([]models.Song, error) {
	if l.playlistSongCache.Exists(playlistID) {
		if songs, err := l.playlistSongCache.Get(playlistID); err == nil {
			return songs, nil
		}
	}
	return l.getSongsFromRemotePlaylist(ctx, playlistID)
}

// PullPlaylists fetches the user's playlists from the catalog, walking
// playlist folders, and overwrites the cached playlist list.
func (l *Library) PullPlaylists(ctx context.Context) ([]models.Playlist, error) {
	folders, err := l.catalog.ListItems(ctx, "", catalog.ItemFilters{
		IncludeItemTypes: []string{models.ItemTypePlaylistsFolder},
		SortDescending:   true,
	})
	if err != nil {
		return nil, err
	}

	var playlists []models.Playlist
	for _, folder := range folders {
		if folder.CollectionType != models.CollectionTypePlaylists {
			continue
		}
		items, err := l.catalog.ListItems(ctx, folder.ID, catalog.ItemFilters{})
		if err != nil {
			return nil, err
		}
		for _, item := range items {
			if !item.CompletePlaylist() {
				continue
			}
			art := l.catalog.FetchArtwork(ctx, item.ID)
			playlists = append(playlists, models.PlaylistFromItem(item, art))
		}
	}

	if err := l.playlistCache.Set(cache.KeyPlaylists, playlists); err != nil {
		return nil, err
	}
	return playlists, nil
}

// ReloadNoPullPlaylists returns the cached playlist list without touching
// the remote. An absent entry is an empty list, not an error.
func (l *Library) ReloadNoPullPlaylists() ([]models.Playlist, error) {
	if !l.playlistCache.Exists(cache.KeyPlaylists) {
		return nil, nil
	}
	return l.playlistCache.Get(cache.KeyPlaylists)
}

// CreatePlaylist creates the playlist remotely, then appends it to the
// cached playlist list and returns the updated list. When the cache write
// fails the remote creation has still happened; the error is surfaced and
// the inconsistency left for the next pull to repair.
func (l *Library) CreatePlaylist(ctx context.Context, name string) ([]models.Playlist, error) {
	id, err := l.catalog.CreatePlaylist(ctx, name)
	if err != nil {
		return nil, err
	}

	var playlists []models.Playlist
	if l.playlistCache.Exists(cache.KeyPlaylists) {
		if cached, err := l.playlistCache.Get(cache.KeyPlaylists); err == nil {
			playlists = cached
		}
	}

	playlists = append(playlists, models.Playlist{ID: id, Name: name})
	if err := l.playlistCache.Set(cache.KeyPlaylists, playlists); err != nil {
		return nil, err
	}
	return playlists, nil
}

// AddSongToPlaylist appends the song to the cached list when one exists,
// then replaces the remote membership with the full ordered id list: every
// previously known id plus the new one, no duplicates.
func (l *Library) AddSongToPlaylist(ctx context.Context, playlist models.Playlist, song models.Song) error {
	if l.playlistSongCache.Exists(playlist.ID) {
		if songs, err := l.playlistSongCache.Get(playlist.ID); err == nil {
			songs = append(songs, song)
			if err := l.playlistSongCache.Set(playlist.ID, songs); err != nil {
				return err
			}
		}
	}

	current, err := l.GetSongsFromPlaylist(ctx, playlist.ID)
	if err != nil {
		return err
	}

	var ids []string
	seen := make(map[string]bool)
	for _, s := range current {
		if seen[s.ID] {
			continue
		}
		seen[s.ID] = true
		ids = append(ids, s.ID)
	}
	if !seen[song.ID] {
		ids = append(ids, song.ID)
	}

	return l.catalog.UpdatePlaylistMembership(ctx, playlist.ID, ids)
}

// RemoveSongFromPlaylist filters the song out of the cached list when one
// exists, then removes it remotely by id.
func (l *Library) RemoveSongFromPlaylist(ctx context.Context, playlistID string, song models.Song) error {
	if l.playlistSongCache.Exists(playlistID) {
		if songs, err := l.playlistSongCache.Get(playlistID); err == nil {
			kept := songs[:0]
			for _, s := range songs {
				if s.ID != song.ID {
					kept = append(kept, s)
				}
			}
			if err := l.playlistSongCache.Set(playlistID, kept); err != nil {
				return err
			}
		}
	}

	return l.catalog.RemoveFromPlaylist(ctx, playlistID, []string{song.ID})
}

// DeletePlaylist drops the playlist's cached song list, filters it out of
// the cached playlist list, then deletes it remotely. Cache mutations are
// not rolled back when the remote delete fails.
func (l *Library) DeletePlaylist(ctx context.Context, playlist models.Playlist) error {
	if l.playlistSongCache.Exists(playlist.ID) {
		if err := l.playlistSongCache.Remove(playlist.ID); err != nil {
			return err
		}
	}

	if l.playlistCache.Exists(cache.KeyPlaylists) {
		if playlists, err := l.playlistCache.Get(cache.KeyPlaylists); err == nil {
			kept := playlists[:0]
			for _, p := range playlists {
				if p.ID != playlist.ID {
					kept = append(kept, p)
				}
			}
			if err := l.playlistCache.Set(cache.KeyPlaylists, kept); err != nil {
				return err
			}
		}
	}

	return l.catalog.DeleteItem(ctx, playlist.ID)
}
