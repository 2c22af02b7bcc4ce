// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"fmt"

	"github.com/juliettebernheisel/etoilekit/internal/catalog"
	"github.com/juliettebernheisel/etoilekit/internal/models"
	"github.com/juliettebernheisel/etoilekit/internal/shared"
)

// MockCatalog is a scripted test double for [catalog.Catalog].
//
// Items maps a parent id (empty string for top-level listings) to the
// records a listing returns; ItemErrors injects per-parent failures. Every
// mutation is recorded so tests can assert on exactly what was sent.
type MockCatalog struct {
	Libraries  []string
	Items      map[string][]models.RemoteItem
	Artwork    map[string][]byte
	LyricSheet map[string]models.Lyrics
	ItemErrors map[string]error

	LibrariesErr error
	CreateErr    error
	UpdateErr    error
	RemoveErr    error
	DeleteErr    error

	NextPlaylistID string

	// call records
	LibraryCalls      int
	ListCalls         []string
	CreatedNames      []string
	MembershipUpdates map[string][][]string
	Removals          map[string][][]string
	DeletedItems      []string
}

func (m *MockCatalog) ListMusicLibraries(ctx context.Context) ([]string, error) {
	m.LibraryCalls++
	if m.LibrariesErr != nil {
		return nil, m.LibrariesErr
	}
	return m.Libraries, nil
}

func (m *MockCatalog) ListItems(ctx context.Context, parentID string, filters catalog.ItemFilters) ([]models.RemoteItem, error) {
	m.ListCalls = append(m.ListCalls, parentID)
	if err, ok := m.ItemErrors[parentID]; ok {
		return nil, err
	}
	return m.Items[parentID], nil
}

func (m *MockCatalog) FetchArtwork(ctx context.Context, itemID string) []byte {
	return m.Artwork[itemID]
}

func (m *MockCatalog) FetchLyrics(ctx context.Context, itemID string) (models.Lyrics, error) {
	lyrics, ok := m.LyricSheet[itemID]
	if !ok {
		return models.Lyrics{}, errors.New("no lyrics")
	}
	return lyrics, nil
}

func (m *MockCatalog) CreatePlaylist(ctx context.Context, name string) (string, error) {
	if m.CreateErr != nil {
		return "", m.CreateErr
	}
	m.CreatedNames = append(m.CreatedNames, name)
	if m.NextPlaylistID != "" {
		return m.NextPlaylistID, nil
	}
	return fmt.Sprintf("playlist-%d", len(m.CreatedNames)), nil
}

func (m *MockCatalog) UpdatePlaylistMembership(ctx context.Context, playlistID string, songIDs []string) error {
	if m.UpdateErr != nil {
		return m.UpdateErr
	}
	if m.MembershipUpdates == nil {
		m.MembershipUpdates = make(map[string][][]string)
	}
	m.MembershipUpdates[playlistID] = append(m.MembershipUpdates[playlistID], songIDs)
	return nil
}

func (m *MockCatalog) RemoveFromPlaylist(ctx context.Context, playlistID string, entryIDs []string) error {
	if m.RemoveErr != nil {
		return m.RemoveErr
	}
	if m.Removals == nil {
		m.Removals = make(map[string][][]string)
	}
	m.Removals[playlistID] = append(m.Removals[playlistID], entryIDs)
	return nil
}

func (m *MockCatalog) DeleteItem(ctx context.Context, itemID string) error {
	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	m.DeletedItems = append(m.DeletedItems, itemID)
	return nil
}

// MemoryCredentials is an in-memory credential store for tests.
type MemoryCredentials struct {
	Values map[string]string
}

func (m *MemoryCredentials) Get(key string) (string, error) {
	value, ok := m.Values[key]
	if !ok {
		return "", fmt.Errorf("%w: missing %q", shared.ErrUnconfigured, key)
	}
	return value, nil
}

func (m *MemoryCredentials) Set(key, value string) error {
	if m.Values == nil {
		m.Values = make(map[string]string)
	}
	m.Values[key] = value
	return nil
}

func (m *MemoryCredentials) Delete(key string) error {
	delete(m.Values, key)
	return nil
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}
