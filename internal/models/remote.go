// Remote item shapes for the Etoile catalog server.
//
// Field names follow the server's generic item record; most fields are
// optional on the wire and the Complete* predicates decide which records
// the sync layer may keep.

package models

// Item type and collection type constants as the catalog server reports them.
const (
	ItemTypeMusicArtist     = "MusicArtist"
	ItemTypeMusicAlbum      = "MusicAlbum"
	ItemTypeAudio           = "Audio"
	ItemTypePlaylist        = "Playlist"
	ItemTypePlaylistsFolder = "PlaylistsFolder"

	CollectionTypeMusic     = "music"
	CollectionTypePlaylists = "playlists"
)

// RemoteItem is the catalog server's generic item record.
// Every listing endpoint returns these regardless of the underlying entity.
type RemoteItem struct {
	ID             string `json:"Id"`
	Name           string `json:"Name"`
	Type           string `json:"Type"`
	CollectionType string `json:"CollectionType"`
	AlbumArtist    string `json:"AlbumArtist"`
	IndexNumber    *int64 `json:"IndexNumber"`
}

// CompleteAlbum reports whether the item carries every field an Album needs.
// Incomplete records are skipped during sync, never treated as errors.
func (it RemoteItem) CompleteAlbum() bool {
	return it.ID != "" && it.Name != "" && it.AlbumArtist != ""
}

// CompleteSong reports whether the item carries every field a Song needs.
func (it RemoteItem) CompleteSong() bool {
	return it.ID != "" && it.Name != "" && it.AlbumArtist != ""
}

// CompleteArtist reports whether the item carries every field an Artist needs.
func (it RemoteItem) CompleteArtist() bool {
	return it.ID != "" && it.Name != ""
}

// CompletePlaylist reports whether the item carries every field a Playlist needs.
func (it RemoteItem) CompletePlaylist() bool {
	return it.ID != "" && it.Name != ""
}

// AlbumFromItem converts a complete remote item into an Album.
func AlbumFromItem(it RemoteItem, art []byte) Album {
	return Album{ID: it.ID, Name: it.Name, Artist: it.AlbumArtist, Art: art}
}

// SongFromItem converts a complete remote item into a Song.
// The album position defaults to 0 when the server omits the index number.
func SongFromItem(it RemoteItem, art []byte) Song {
	var position int64
	if it.IndexNumber != nil {
		position = *it.IndexNumber
	}
	return Song{ID: it.ID, Name: it.Name, Artist: it.AlbumArtist, Art: art, PositionInAlbum: position}
}

// ArtistFromItem converts a complete remote item into an Artist.
func ArtistFromItem(it RemoteItem, image []byte) Artist {
	return Artist{ID: it.ID, Name: it.Name, Image: image}
}

// PlaylistFromItem converts a complete remote item into a Playlist.
func PlaylistFromItem(it RemoteItem, art []byte) Playlist {
	return Playlist{ID: it.ID, Name: it.Name, Art: art}
}
