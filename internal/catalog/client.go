// HTTP client for the Etoile catalog server.
//
// Endpoint shapes follow the server's item-listing API: every collection
// read goes through /Items, playlist mutations through /Playlists.

package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/juliettebernheisel/etoilekit/internal/credentials"
	"github.com/juliettebernheisel/etoilekit/internal/models"
	"github.com/juliettebernheisel/etoilekit/internal/shared"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"
)

const defaultRateLimit = 5.0

// Options configures a Client.
type Options struct {
	DeviceName string
	ClientName string
	RateLimit  float64 // requests per second, 0 = default
	Logger     *log.Logger
}

// Client implements [Catalog] against a real catalog server.
//
// The client is built once from resolved credentials and reused for its
// whole lifetime; nothing here re-reads the credential store per call.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *log.Logger

	clientName string
	deviceName string
	deviceID   string
}

// New resolves credentials and constructs a Client.
//
// Fails with [shared.ErrUnconfigured] when the endpoint or token has never
// been stored, and with [shared.ErrInvalidEndpoint] when the stored
// endpoint URL does not parse. Both happen before any network use.
func New(store credentials.Store, opts Options) (*Client, error) {
	instance, err := store.Get(credentials.KeyInstance)
	if err != nil {
		return nil, err
	}
	token, err := store.Get(credentials.KeyToken)
	if err != nil {
		return nil, err
	}

	baseURL, err := url.Parse(instance)
	if err != nil || baseURL.Scheme == "" || baseURL.Host == "" {
		return nil, fmt.Errorf("%w: %q", shared.ErrInvalidEndpoint, instance)
	}

	if opts.RateLimit <= 0 {
		opts.RateLimit = defaultRateLimit
	}
	if opts.ClientName == "" {
		opts.ClientName = "Etoile"
	}
	if opts.DeviceName == "" {
		opts.DeviceName = "Etoile"
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}

	httpClient := oauth2.NewClient(
		context.Background(),
		oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"}),
	)

	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		limiter:    rate.NewLimiter(rate.Limit(opts.RateLimit), 1),
		logger:     opts.Logger,
		clientName: opts.ClientName,
		deviceName: opts.DeviceName,
		deviceID:   shared.GenerateID(),
	}, nil
}

// itemsResponse is the envelope every listing endpoint returns.
type itemsResponse struct {
	Items            []models.RemoteItem `json:"Items"`
	TotalRecordCount int                 `json:"TotalRecordCount"`
}

type createPlaylistResponse struct {
	ID string `json:"Id"`
}

type lyricsMetadata struct {
	Offset   *int  `json:"Offset"`
	IsSynced *bool `json:"IsSynced"`
}

type lyricsResponse struct {
	Lyrics   []models.LyricLine `json:"Lyrics"`
	Metadata *lyricsMetadata    `json:"Metadata"`
}

// doRequest performs one rate-limited, authenticated request against the
// catalog server, JSON-encoding body and decoding into result when non-nil.
func (c *Client) doRequest(ctx context.Context, method, path string, query url.Values, body, result any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrRemoteRequest, err)
	}

	endpoint := c.baseURL.JoinPath(path)
	if len(query) > 0 {
		endpoint.RawQuery = query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint.String(), reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Etoile-Client", c.clientName)
	req.Header.Set("X-Etoile-Device", c.deviceName)
	req.Header.Set("X-Etoile-Device-Id", c.deviceID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrRemoteRequest, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: status %d for %s %s", shared.ErrRemoteRequest, resp.StatusCode, method, path)
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// ListMusicLibraries retrieves the user's top-level views and keeps the
// ids of music collections.
func (c *Client) ListMusicLibraries(ctx context.Context) ([]string, error) {
	var views itemsResponse
	if err := c.doRequest(ctx, http.MethodGet, "/UserViews", nil, nil, &views); err != nil {
		return nil, err
	}

	var libraries []string
	for _, item := range views.Items {
		if item.CollectionType == models.CollectionTypeMusic && item.ID != "" {
			libraries = append(libraries, item.ID)
		}
	}
	return libraries, nil
}

// ListItems lists children of parentID, applying the given filters.
func (c *Client) ListItems(ctx context.Context, parentID string, filters ItemFilters) ([]models.RemoteItem, error) {
	query := url.Values{}
	if parentID != "" {
		query.Set("parentId", parentID)
	}
	if len(filters.IncludeItemTypes) > 0 {
		query.Set("includeItemTypes", strings.Join(filters.IncludeItemTypes, ","))
	}
	if filters.SortDescending {
		query.Set("sortOrder", "Descending")
	}

	var response itemsResponse
	if err := c.doRequest(ctx, http.MethodGet, "/Items", query, nil, &response); err != nil {
		return nil, err
	}
	return response.Items, nil
}

// FetchArtwork retrieves an item's primary image. Any failure is logged
// and reported as "no artwork".
func (c *Client) FetchArtwork(ctx context.Context, itemID string) []byte {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil
	}

	endpoint := c.baseURL.JoinPath("/Items", itemID, "/Images/Primary")
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("failed to fetch artwork", "item", itemID, "error", err)
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Warn("failed to fetch artwork", "item", itemID, "status", resp.StatusCode)
		return nil
	}

	image, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logger.Warn("failed to read artwork", "item", itemID, "error", err)
		return nil
	}
	return image
}

// FetchLyrics retrieves the lyric sheet for a song.
func (c *Client) FetchLyrics(ctx context.Context, itemID string) (models.Lyrics, error) {
	var response lyricsResponse
	path := fmt.Sprintf("/Audio/%s/Lyrics", itemID)
	if err := c.doRequest(ctx, http.MethodGet, path, nil, nil, &response); err != nil {
		return models.Lyrics{}, err
	}

	lyrics := models.Lyrics{Lines: response.Lyrics}
	if response.Metadata != nil {
		lyrics.Offset = response.Metadata.Offset
		lyrics.Synced = response.Metadata.IsSynced
	}
	return lyrics, nil
}

// CreatePlaylist creates an empty playlist and returns the server-assigned id.
func (c *Client) CreatePlaylist(ctx context.Context, name string) (string, error) {
	body := map[string]string{"Name": name}
	var response createPlaylistResponse
	if err := c.doRequest(ctx, http.MethodPost, "/Playlists", nil, body, &response); err != nil {
		return "", err
	}
	return response.ID, nil
}

// UpdatePlaylistMembership replaces the playlist's membership with the full
// ordered id list. The server treats this as a whole-list replacement, so
// callers always send every id, never a delta.
func (c *Client) UpdatePlaylistMembership(ctx context.Context, playlistID string, songIDs []string) error {
	body := map[string][]string{"Ids": songIDs}
	path := fmt.Sprintf("/Playlists/%s", playlistID)
	return c.doRequest(ctx, http.MethodPost, path, nil, body, nil)
}

// RemoveFromPlaylist removes the given entries from a playlist by id.
func (c *Client) RemoveFromPlaylist(ctx context.Context, playlistID string, entryIDs []string) error {
	query := url.Values{"entryIds": {strings.Join(entryIDs, ",")}}
	path := fmt.Sprintf("/Playlists/%s/Items", playlistID)
	return c.doRequest(ctx, http.MethodDelete, path, query, nil, nil)
}

// DeleteItem deletes an item from the catalog.
func (c *Client) DeleteItem(ctx context.Context, itemID string) error {
	path := fmt.Sprintf("/Items/%s", itemID)
	return c.doRequest(ctx, http.MethodDelete, path, nil, nil, nil)
}
