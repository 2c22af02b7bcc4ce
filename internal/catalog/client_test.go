package catalog_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/juliettebernheisel/etoilekit/internal/catalog"
	"github.com/juliettebernheisel/etoilekit/internal/credentials"
	"github.com/juliettebernheisel/etoilekit/internal/models"
	"github.com/juliettebernheisel/etoilekit/internal/shared"
	tu "github.com/juliettebernheisel/etoilekit/internal/testing"
)

func testClient(t *testing.T, handler http.Handler) *catalog.Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	store := &tu.MemoryCredentials{Values: map[string]string{
		credentials.KeyInstance: server.URL,
		credentials.KeyToken:    "test-token",
	}}

	client, err := catalog.New(store, catalog.Options{RateLimit: 1000})
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}
	return client
}

func writeItems(w http.ResponseWriter, items []models.RemoteItem) {
	json.NewEncoder(w).Encode(map[string]any{
		"Items":            items,
		"TotalRecordCount": len(items),
	})
}

func TestNew(t *testing.T) {
	t.Run("Missing Credentials", func(t *testing.T) {
		store := &tu.MemoryCredentials{}
		if _, err := catalog.New(store, catalog.Options{}); !errors.Is(err, shared.ErrUnconfigured) {
			t.Errorf("expected ErrUnconfigured, got %v", err)
		}
	})

	t.Run("Missing Token", func(t *testing.T) {
		store := &tu.MemoryCredentials{Values: map[string]string{
			credentials.KeyInstance: "https://music.example.com",
		}}
		if _, err := catalog.New(store, catalog.Options{}); !errors.Is(err, shared.ErrUnconfigured) {
			t.Errorf("expected ErrUnconfigured, got %v", err)
		}
	})

	t.Run("Invalid Endpoint", func(t *testing.T) {
		store := &tu.MemoryCredentials{Values: map[string]string{
			credentials.KeyInstance: "not a url",
			credentials.KeyToken:    "token",
		}}
		if _, err := catalog.New(store, catalog.Options{}); !errors.Is(err, shared.ErrInvalidEndpoint) {
			t.Errorf("expected ErrInvalidEndpoint, got %v", err)
		}
	})
}

func TestClient(t *testing.T) {
	ctx := context.Background()

	t.Run("Sends Auth and Identity Headers", func(t *testing.T) {
		var gotAuth, gotClient, gotDeviceID string
		client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			gotClient = r.Header.Get("X-Etoile-Client")
			gotDeviceID = r.Header.Get("X-Etoile-Device-Id")
			writeItems(w, nil)
		}))

		if _, err := client.ListMusicLibraries(ctx); err != nil {
			t.Fatalf("request failed: %v", err)
		}
		if gotAuth != "Bearer test-token" {
			t.Errorf("expected bearer token header, got %q", gotAuth)
		}
		if gotClient != "Etoile" {
			t.Errorf("expected default client name, got %q", gotClient)
		}
		if gotDeviceID == "" {
			t.Error("expected a device id header")
		}
	})

	t.Run("ListMusicLibraries", func(t *testing.T) {
		t.Run("Keeps Only Music Collections", func(t *testing.T) {
			client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/UserViews" {
					t.Errorf("unexpected path %s", r.URL.Path)
				}
				writeItems(w, []models.RemoteItem{
					{ID: "lib-music", Name: "Music", CollectionType: models.CollectionTypeMusic},
					{ID: "lib-movies", Name: "Movies", CollectionType: "movies"},
					{Name: "Nameless", CollectionType: models.CollectionTypeMusic},
				})
			}))

			libraries, err := client.ListMusicLibraries(ctx)
			if err != nil {
				t.Fatalf("failed to list libraries: %v", err)
			}
			if len(libraries) != 1 || libraries[0] != "lib-music" {
				t.Errorf("expected [lib-music], got %v", libraries)
			}
		})

		t.Run("Server Error", func(t *testing.T) {
			client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			}))

			if _, err := client.ListMusicLibraries(ctx); !errors.Is(err, shared.ErrRemoteRequest) {
				t.Errorf("expected ErrRemoteRequest, got %v", err)
			}
		})
	})

	t.Run("ListItems", func(t *testing.T) {
		var gotQuery map[string]string
		client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/Items" {
				t.Errorf("unexpected path %s", r.URL.Path)
			}
			gotQuery = map[string]string{
				"parentId":         r.URL.Query().Get("parentId"),
				"includeItemTypes": r.URL.Query().Get("includeItemTypes"),
				"sortOrder":        r.URL.Query().Get("sortOrder"),
			}
			writeItems(w, []models.RemoteItem{
				{ID: "album-1", Name: "Album", Type: models.ItemTypeMusicAlbum, AlbumArtist: "Artist"},
			})
		}))

		items, err := client.ListItems(ctx, "artist-1", catalog.ItemFilters{
			IncludeItemTypes: []string{models.ItemTypeMusicAlbum},
			SortDescending:   true,
		})
		if err != nil {
			t.Fatalf("failed to list items: %v", err)
		}
		if len(items) != 1 || items[0].ID != "album-1" {
			t.Errorf("unexpected items: %+v", items)
		}
		if gotQuery["parentId"] != "artist-1" {
			t.Errorf("expected parentId=artist-1, got %q", gotQuery["parentId"])
		}
		if gotQuery["includeItemTypes"] != models.ItemTypeMusicAlbum {
			t.Errorf("expected includeItemTypes=%s, got %q", models.ItemTypeMusicAlbum, gotQuery["includeItemTypes"])
		}
		if gotQuery["sortOrder"] != "Descending" {
			t.Errorf("expected sortOrder=Descending, got %q", gotQuery["sortOrder"])
		}
	})

	t.Run("FetchArtwork", func(t *testing.T) {
		t.Run("Returns Image Bytes", func(t *testing.T) {
			client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/Items/album-1/Images/Primary" {
					t.Errorf("unexpected path %s", r.URL.Path)
				}
				w.Write([]byte("png-bytes"))
			}))

			image := client.FetchArtwork(ctx, "album-1")
			if string(image) != "png-bytes" {
				t.Errorf("unexpected artwork: %q", image)
			}
		})

		t.Run("Failure Yields No Artwork", func(t *testing.T) {
			client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNotFound)
			}))

			if image := client.FetchArtwork(ctx, "album-1"); image != nil {
				t.Errorf("expected nil artwork on failure, got %q", image)
			}
		})
	})

	t.Run("FetchLyrics", func(t *testing.T) {
		client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/Audio/song-1/Lyrics" {
				t.Errorf("unexpected path %s", r.URL.Path)
			}
			start := int64(12_500)
			synced := true
			json.NewEncoder(w).Encode(map[string]any{
				"Lyrics": []models.LyricLine{
					{Text: "first line", Start: &start},
					{Text: "second line"},
				},
				"Metadata": map[string]any{"IsSynced": synced},
			})
		}))

		lyrics, err := client.FetchLyrics(ctx, "song-1")
		if err != nil {
			t.Fatalf("failed to fetch lyrics: %v", err)
		}
		if len(lyrics.Lines) != 2 || lyrics.Lines[0].Text != "first line" {
			t.Errorf("unexpected lines: %+v", lyrics.Lines)
		}
		if lyrics.Lines[0].Start == nil || *lyrics.Lines[0].Start != 12_500 {
			t.Errorf("unexpected start: %v", lyrics.Lines[0].Start)
		}
		if lyrics.Synced == nil || !*lyrics.Synced {
			t.Error("expected synced lyrics")
		}
	})

	t.Run("CreatePlaylist", func(t *testing.T) {
		var gotBody map[string]string
		client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost || r.URL.Path != "/Playlists" {
				t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
			}
			json.NewDecoder(r.Body).Decode(&gotBody)
			json.NewEncoder(w).Encode(map[string]string{"Id": "playlist-1"})
		}))

		id, err := client.CreatePlaylist(ctx, "Road Trip")
		if err != nil {
			t.Fatalf("failed to create playlist: %v", err)
		}
		if id != "playlist-1" {
			t.Errorf("expected playlist-1, got %q", id)
		}
		if gotBody["Name"] != "Road Trip" {
			t.Errorf("expected playlist name in body, got %+v", gotBody)
		}
	})

	t.Run("UpdatePlaylistMembership", func(t *testing.T) {
		var gotBody map[string][]string
		client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost || r.URL.Path != "/Playlists/playlist-1" {
				t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
			}
			json.NewDecoder(r.Body).Decode(&gotBody)
		}))

		if err := client.UpdatePlaylistMembership(ctx, "playlist-1", []string{"s1", "s2"}); err != nil {
			t.Fatalf("failed to update membership: %v", err)
		}
		if len(gotBody["Ids"]) != 2 || gotBody["Ids"][0] != "s1" {
			t.Errorf("expected full id list in body, got %+v", gotBody)
		}
	})

	t.Run("RemoveFromPlaylist", func(t *testing.T) {
		var gotEntryIDs string
		client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodDelete || r.URL.Path != "/Playlists/playlist-1/Items" {
				t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
			}
			gotEntryIDs = r.URL.Query().Get("entryIds")
		}))

		if err := client.RemoveFromPlaylist(ctx, "playlist-1", []string{"e1", "e2"}); err != nil {
			t.Fatalf("failed to remove entries: %v", err)
		}
		if gotEntryIDs != "e1,e2" {
			t.Errorf("expected entryIds=e1,e2, got %q", gotEntryIDs)
		}
	})

	t.Run("DeleteItem", func(t *testing.T) {
		var gotPath string
		client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodDelete {
				t.Errorf("unexpected method %s", r.Method)
			}
			gotPath = r.URL.Path
		}))

		if err := client.DeleteItem(ctx, "playlist-1"); err != nil {
			t.Fatalf("failed to delete item: %v", err)
		}
		if gotPath != "/Items/playlist-1" {
			t.Errorf("unexpected path %q", gotPath)
		}
	})
}
