package models

// Album represents one album in the user's library.
// Immutable once constructed; Art may be nil when the server has no primary image.
type Album struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Artist string `json:"artist"`
	Art    []byte `json:"art,omitempty"`
}

// Song represents one song inside an album or playlist.
// PositionInAlbum carries the server's index number, 0 when the server omits it.
type Song struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Artist          string `json:"artist"`
	Art             []byte `json:"art,omitempty"`
	PositionInAlbum int64  `json:"position_in_album"`
}

// Artist is used only while walking the catalog during a full sync.
// Albums derived from it are persisted; the artist itself never is.
type Artist struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Image []byte `json:"image,omitempty"`
}

// Playlist represents one user playlist.
type Playlist struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Art  []byte `json:"art,omitempty"`
}

// LyricLine is a single lyric line, timed when Start is set.
type LyricLine struct {
	Text  string `json:"text"`
	Start *int64 `json:"start,omitempty"` // milliseconds from song start
}

// Lyrics holds the lyric sheet for one song. Derived on demand, never cached.
type Lyrics struct {
	Lines  []LyricLine `json:"lines,omitempty"`
	Offset *int        `json:"offset,omitempty"` // milliseconds
	Synced *bool       `json:"synced,omitempty"`
}

// ExternalPlayback is the payload handed to another device to play a song there.
type ExternalPlayback struct {
	Song       Song   `json:"song"`
	DeviceName string `json:"device_name"`
}
