package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/juliettebernheisel/etoilekit/internal/models"
	"github.com/juliettebernheisel/etoilekit/internal/shared"
	tu "github.com/juliettebernheisel/etoilekit/internal/testing"
	"github.com/urfave/cli/v3"
)

func TestRunner(t *testing.T) {
	t.Run("NewRunner", func(t *testing.T) {
		t.Run("with all dependencies provided", func(t *testing.T) {
			config := shared.DefaultConfig()
			logger := shared.NewLogger(nil)
			output := &bytes.Buffer{}
			mock := &tu.MockCatalog{}

			runner := NewRunner(RunnerOpts{
				Config:  config,
				Logger:  logger,
				Output:  output,
				Catalog: mock,
			})

			if runner.config != config {
				t.Error("expected config to be set")
			}
			if runner.logger != logger {
				t.Error("expected logger to be set")
			}
			if runner.output != output {
				t.Error("expected output to be set")
			}
			if runner.catalogOverride != mock {
				t.Error("expected catalog override to be set")
			}
		})

		t.Run("with nil config uses defaults", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{})

			if runner.config == nil {
				t.Error("expected default config to be set")
			}
		})

		t.Run("with nil logger uses default", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{})

			if runner.logger == nil {
				t.Error("expected default logger to be set")
			}
		})

		t.Run("with nil output uses stdout", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{})

			if runner.output != os.Stdout {
				t.Error("expected output to default to os.Stdout")
			}
		})
	})

	t.Run("cacheOptions", func(t *testing.T) {
		config := shared.DefaultConfig()
		config.Cache.RetentionDays = 3
		config.Cache.CountLimit = 7

		opts := cacheOptions(config)
		if opts.TTL != 3*24*time.Hour {
			t.Errorf("expected 72h TTL, got %v", opts.TTL)
		}
		if opts.CountLimit != 7 {
			t.Errorf("expected count limit 7, got %d", opts.CountLimit)
		}
	})

	t.Run("writeJSON", func(t *testing.T) {
		t.Run("writes formatted JSON successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			if err := runner.writeJSON(map[string]string{"key": "value"}, true); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			result := output.String()
			if !strings.Contains(result, `"key": "value"`) {
				t.Errorf("expected formatted JSON, got %s", result)
			}
		})

		t.Run("writes compact JSON successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			if err := runner.writeJSON(map[string]string{"key": "value"}, false); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			expected := `{"key":"value"}` + "\n"
			if output.String() != expected {
				t.Errorf("expected %q, got %q", expected, output.String())
			}
		})

		t.Run("handles write failure", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: &tu.FWriter{}})

			if err := runner.writeJSON(map[string]string{"key": "value"}, false); err == nil {
				t.Fatal("expected error from failing writer")
			}
		})
	})

	t.Run("register", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{})
		commands := runner.register()

		if len(commands) != 9 {
			t.Errorf("expected 9 commands, got %d", len(commands))
		}

		names := make(map[string]bool)
		for _, cmd := range commands {
			names[cmd.Name] = true
		}
		for _, want := range []string{"setup", "login", "logout", "library", "playlists", "recent", "play", "lyrics", "cache"} {
			if !names[want] {
				t.Errorf("missing command %q", want)
			}
		}
	})
}

// testApp wires a Runner with a scripted catalog against a temp database and
// returns a run helper that invokes the CLI the way main does.
func testApp(t *testing.T, mock *tu.MockCatalog) (func(args ...string) error, *bytes.Buffer, string) {
	t.Helper()

	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.toml")
	dbPath := filepath.Join(tmpDir, "etoile.db")

	content := fmt.Sprintf("[database]\npath = %q\n", dbPath)
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	output := &bytes.Buffer{}
	runner := NewRunner(RunnerOpts{
		Logger:  shared.NewLogger(&bytes.Buffer{}),
		Output:  output,
		Catalog: mock,
	})

	// a fresh command tree per invocation, since parsed flag values stick
	// to the commands after a run
	run := func(args ...string) error {
		app := &cli.Command{
			Name:     "etoile",
			Commands: runner.register(),
		}
		argv := append([]string{"etoile"}, args...)
		return app.Run(context.Background(), argv)
	}
	return run, output, configPath
}

func TestCommands(t *testing.T) {
	mock := &tu.MockCatalog{
		Libraries: []string{"lib-1"},
		Items: map[string][]models.RemoteItem{
			"lib-1": {
				{ID: "artist-1", Name: "First Artist", Type: models.ItemTypeMusicArtist},
			},
			"artist-1": {
				{ID: "album-1", Name: "Debut", Type: models.ItemTypeMusicAlbum, AlbumArtist: "First Artist"},
			},
			"album-1": {
				{ID: "song-1", Name: "Opener", Type: models.ItemTypeAudio, AlbumArtist: "First Artist"},
			},
		},
	}

	run, output, configPath := testApp(t, mock)

	if err := run("setup", "-c", configPath); err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	t.Run("library reload", func(t *testing.T) {
		output.Reset()
		if err := run("library", "reload", "-c", configPath); err != nil {
			t.Fatalf("reload failed: %v", err)
		}
		if !strings.Contains(output.String(), "Debut — First Artist") {
			t.Errorf("expected album in output, got: %s", output.String())
		}
	})

	t.Run("library local serves cache", func(t *testing.T) {
		output.Reset()
		listCalls := len(mock.ListCalls)

		if err := run("library", "local", "-c", configPath); err != nil {
			t.Fatalf("local read failed: %v", err)
		}
		if !strings.Contains(output.String(), "Debut") {
			t.Errorf("expected cached album in output, got: %s", output.String())
		}
		if len(mock.ListCalls) != listCalls {
			t.Error("local read contacted the remote catalog")
		}
	})

	t.Run("recent add and list", func(t *testing.T) {
		output.Reset()
		if err := run("recent", "add", "-c", configPath, "--id", "song-1", "--name", "Opener", "--artist", "First Artist"); err != nil {
			t.Fatalf("recent add failed: %v", err)
		}

		output.Reset()
		if err := run("recent", "list", "-c", configPath); err != nil {
			t.Fatalf("recent list failed: %v", err)
		}
		if !strings.Contains(output.String(), "Opener") {
			t.Errorf("expected song in history, got: %s", output.String())
		}
	})

	t.Run("play emits handoff payload", func(t *testing.T) {
		output.Reset()
		if err := run("play", "-c", configPath, "--id", "song-1", "--name", "Opener", "--device", "Living Room"); err != nil {
			t.Fatalf("play failed: %v", err)
		}
		if !strings.Contains(output.String(), `"device_name": "Living Room"`) {
			t.Errorf("expected device in payload, got: %s", output.String())
		}
	})

	t.Run("cache stats", func(t *testing.T) {
		output.Reset()
		if err := run("cache", "stats", "-c", configPath); err != nil {
			t.Fatalf("cache stats failed: %v", err)
		}
		if !strings.Contains(output.String(), "etoileAlbums") {
			t.Errorf("expected albums namespace in stats, got: %s", output.String())
		}
	})

	t.Run("cache clear empties the library", func(t *testing.T) {
		output.Reset()
		if err := run("cache", "clear", "-c", configPath); err != nil {
			t.Fatalf("cache clear failed: %v", err)
		}
		if !strings.Contains(output.String(), "Cleared") {
			t.Errorf("expected clear confirmation, got: %s", output.String())
		}

		output.Reset()
		if err := run("library", "local", "-c", configPath); err != nil {
			t.Fatalf("local read failed: %v", err)
		}
		if !strings.Contains(output.String(), "No cached library data") {
			t.Errorf("expected empty library after clear, got: %s", output.String())
		}
	})

	t.Run("playlists", func(t *testing.T) {
		mock.Items[""] = []models.RemoteItem{
			{ID: "folder-1", Name: "Playlists", Type: models.ItemTypePlaylistsFolder, CollectionType: models.CollectionTypePlaylists},
		}
		mock.Items["folder-1"] = []models.RemoteItem{
			{ID: "playlist-1", Name: "Favorites", Type: models.ItemTypePlaylist},
		}
		mock.Items["playlist-1"] = []models.RemoteItem{
			{ID: "song-1", Name: "Opener", Type: models.ItemTypeAudio, AlbumArtist: "First Artist"},
		}

		output.Reset()
		if err := run("playlists", "list", "-c", configPath); err != nil {
			t.Fatalf("playlist list failed: %v", err)
		}
		if !strings.Contains(output.String(), "Favorites (playlist-1)") {
			t.Errorf("expected playlist in output, got: %s", output.String())
		}

		output.Reset()
		if err := run("playlists", "add", "-c", configPath, "--playlist", "playlist-1", "--song", "song-2"); err != nil {
			t.Fatalf("playlist add failed: %v", err)
		}
		updates := mock.MembershipUpdates["playlist-1"]
		if len(updates) != 1 || len(updates[0]) != 2 {
			t.Errorf("expected membership update with 2 ids, got %v", updates)
		}

		output.Reset()
		if err := run("playlists", "delete", "-c", configPath, "--id", "playlist-1"); err != nil {
			t.Fatalf("playlist delete failed: %v", err)
		}
		if len(mock.DeletedItems) != 1 || mock.DeletedItems[0] != "playlist-1" {
			t.Errorf("expected remote delete recorded, got %v", mock.DeletedItems)
		}
	})

	t.Run("login and logout", func(t *testing.T) {
		output.Reset()
		if err := run("login", "-c", configPath, "--instance", "https://music.example.com", "--token", "secret"); err != nil {
			t.Fatalf("login failed: %v", err)
		}
		if !strings.Contains(output.String(), "Credentials stored") {
			t.Errorf("expected login confirmation, got: %s", output.String())
		}

		output.Reset()
		if err := run("logout", "-c", configPath); err != nil {
			t.Fatalf("logout failed: %v", err)
		}
		if !strings.Contains(output.String(), "Logged out") {
			t.Errorf("expected logout confirmation, got: %s", output.String())
		}
	})

	t.Run("login rejects bad endpoint", func(t *testing.T) {
		if err := run("login", "-c", configPath, "--instance", "not a url", "--token", "secret"); err == nil {
			t.Error("expected error for invalid endpoint")
		}
	})
}
