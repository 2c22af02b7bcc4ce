package library

import (
	"database/sql"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/juliettebernheisel/etoilekit/internal/cache"
	"github.com/juliettebernheisel/etoilekit/internal/catalog"
	"github.com/juliettebernheisel/etoilekit/internal/credentials"
	"github.com/juliettebernheisel/etoilekit/internal/models"
	"github.com/juliettebernheisel/etoilekit/internal/shared"
)

// Snapshot is the merged view a read path returns: the album list plus
// whatever song lists were available, keyed by album id.
type Snapshot struct {
	Albums []models.Album
	Songs  map[string][]models.Song
}

// Deps holds everything a Library needs. Catalog and DB are required.
type Deps struct {
	Catalog      catalog.Catalog
	Credentials  credentials.Store
	DB           *sql.DB
	Logger       *log.Logger
	CacheOptions cache.Options
}

// Library maintains the multi-tier cache of the remote catalog and exposes
// the read and mutation surface for UI callers.
//
// The albums/songs fields are a non-authoritative in-memory mirror of the
// persistent tier: overwritten wholesale on every reload, never merged.
type Library struct {
	catalog catalog.Catalog
	creds   credentials.Store
	logger  *log.Logger

	albums []models.Album
	songs  map[string][]models.Song

	albumCache        *cache.Store[[]models.Album]
	songCache         *cache.Store[[]models.Song]
	playlistCache     *cache.Store[[]models.Playlist]
	playlistSongCache *cache.Store[[]models.Song]
	recentCache       *cache.Store[[]models.Song]
}

// New constructs a Library and its five cache namespaces. Namespace
// construction is idempotent: data persisted by an earlier process is kept.
func New(deps Deps) (*Library, error) {
	if deps.Catalog == nil {
		return nil, fmt.Errorf("%w: nil catalog", shared.ErrInvalidArgument)
	}
	if deps.DB == nil {
		return nil, fmt.Errorf("%w: nil database", shared.ErrInvalidArgument)
	}
	if deps.Logger == nil {
		deps.Logger = shared.NewLogger(nil)
	}

	albumCache, err := cache.New[[]models.Album](deps.DB, cache.NamespaceAlbums, deps.CacheOptions)
	if err != nil {
		return nil, err
	}
	songCache, err := cache.New[[]models.Song](deps.DB, cache.NamespaceSongs, deps.CacheOptions)
	if err != nil {
		return nil, err
	}
	playlistCache, err := cache.New[[]models.Playlist](deps.DB, cache.NamespacePlaylists, deps.CacheOptions)
	if err != nil {
		return nil, err
	}
	playlistSongCache, err := cache.New[[]models.Song](deps.DB, cache.NamespacePlaylistsSongs, deps.CacheOptions)
	if err != nil {
		return nil, err
	}
	recentCache, err := cache.New[[]models.Song](deps.DB, cache.NamespaceRecentlyPlayed, deps.CacheOptions)
	if err != nil {
		return nil, err
	}

	return &Library{
		catalog:           deps.Catalog,
		creds:             deps.Credentials,
		logger:            deps.Logger,
		songs:             make(map[string][]models.Song),
		albumCache:        albumCache,
		songCache:         songCache,
		playlistCache:     playlistCache,
		playlistSongCache: playlistSongCache,
		recentCache:       recentCache,
	}, nil
}

// Logout deletes the stored endpoint and token. Failures are logged, not
// surfaced: a half-finished logout is still a logout from the caller's view.
func (l *Library) Logout() {
	if l.creds == nil {
		return
	}
	if err := l.creds.Delete(credentials.KeyToken); err != nil {
		l.logger.Error("failed to delete token during logout", "error", err)
	}
	if err := l.creds.Delete(credentials.KeyInstance); err != nil {
		l.logger.Error("failed to delete instance during logout", "error", err)
	}
}
