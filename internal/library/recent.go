package library

import (
	"errors"

	"github.com/juliettebernheisel/etoilekit/internal/cache"
	"github.com/juliettebernheisel/etoilekit/internal/models"
	"github.com/juliettebernheisel/etoilekit/internal/shared"
)

// GetRecentlyPlayed returns the recently played list, most recent first.
// An absent or expired entry is simply an empty history.
func (l *Library) GetRecentlyPlayed() ([]models.Song, error) {
	songs, err := l.recentCache.Get(cache.KeyRecentlyPlayed)
	if errors.Is(err, shared.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return songs, nil
}

// AddToRecentlyPlayed inserts the song at the head of the recently played
// list. Insertion is unbounded; expiry trims history instead of a cap.
func (l *Library) AddToRecentlyPlayed(song models.Song) error {
	songs, err := l.recentCache.Get(cache.KeyRecentlyPlayed)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return err
	}

	updated := append([]models.Song{song}, songs...)
	return l.recentCache.Set(cache.KeyRecentlyPlayed, updated)
}

// PlayOn builds the handoff payload for playing a song on another device,
// recording the song in the recently played history first.
func (l *Library) PlayOn(song models.Song, deviceName string) (models.ExternalPlayback, error) {
	if err := l.AddToRecentlyPlayed(song); err != nil {
		return models.ExternalPlayback{}, err
	}
	return models.ExternalPlayback{Song: song, DeviceName: deviceName}, nil
}
