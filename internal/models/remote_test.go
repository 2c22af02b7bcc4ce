package models

import "testing"

func TestCompletePredicates(t *testing.T) {
	tc := []struct {
		name  string
		item  RemoteItem
		album bool
		song  bool
	}{
		{
			name:  "complete record",
			item:  RemoteItem{ID: "x", Name: "Name", AlbumArtist: "Artist"},
			album: true,
			song:  true,
		},
		{
			name: "missing id",
			item: RemoteItem{Name: "Name", AlbumArtist: "Artist"},
		},
		{
			name: "missing name",
			item: RemoteItem{ID: "x", AlbumArtist: "Artist"},
		},
		{
			name: "missing album artist",
			item: RemoteItem{ID: "x", Name: "Name"},
		},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.item.CompleteAlbum(); got != tt.album {
				t.Errorf("CompleteAlbum() = %v, want %v", got, tt.album)
			}
			if got := tt.item.CompleteSong(); got != tt.song {
				t.Errorf("CompleteSong() = %v, want %v", got, tt.song)
			}
		})
	}

	t.Run("artist and playlist need no album artist", func(t *testing.T) {
		item := RemoteItem{ID: "x", Name: "Name"}
		if !item.CompleteArtist() {
			t.Error("expected complete artist")
		}
		if !item.CompletePlaylist() {
			t.Error("expected complete playlist")
		}
	})
}

func TestSongFromItem(t *testing.T) {
	t.Run("carries index number", func(t *testing.T) {
		index := int64(4)
		item := RemoteItem{ID: "x", Name: "Name", AlbumArtist: "Artist", IndexNumber: &index}

		song := SongFromItem(item, []byte("art"))
		if song.PositionInAlbum != 4 {
			t.Errorf("expected position 4, got %d", song.PositionInAlbum)
		}
		if string(song.Art) != "art" {
			t.Errorf("expected artwork carried over, got %q", song.Art)
		}
	})

	t.Run("defaults position to zero", func(t *testing.T) {
		item := RemoteItem{ID: "x", Name: "Name", AlbumArtist: "Artist"}

		if song := SongFromItem(item, nil); song.PositionInAlbum != 0 {
			t.Errorf("expected position 0, got %d", song.PositionInAlbum)
		}
	})
}
