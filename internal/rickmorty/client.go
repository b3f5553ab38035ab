// Package rickmorty is a read-only client for the Rick and Morty catalog API.
package rickmorty

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/me/rickdex/pkg/model"
)

// DefaultBaseURL is the production catalog endpoint.
const DefaultBaseURL = "https://rickandmortyapi.com/api"

// Catalog is the set of read operations the screens and API depend on.
type Catalog interface {
	GetPage(ctx context.Context, page int) (*model.CharacterPage, error)
	GetByID(ctx context.Context, id int) (*model.Character, error)
	GetByIDs(ctx context.Context, ids []int) ([]model.Episode, error)
}

// FetchError is returned when the catalog answers with a non-success status.
type FetchError struct {
	Op         string // "characters", "character" or "episodes"
	StatusCode int
	Status     string // status text, e.g. "Not Found"
	Detail     string // upstream {"error": ...} message, if any
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("failed to fetch %s: %s", e.Op, e.Status)
}

// IsNotFound reports whether err is a FetchError for a 404 response.
func IsNotFound(err error) bool {
	var fe *FetchError
	return errors.As(err, &fe) && fe.StatusCode == http.StatusNotFound
}

// ClientConfig holds catalog client configuration.
type ClientConfig struct {
	BaseURL string
	Timeout time.Duration // zero means no timeout
}

// DefaultClientConfig returns configuration pointing to the production endpoint.
func DefaultClientConfig() ClientConfig {
	return ClientConfig{
		BaseURL: DefaultBaseURL,
	}
}

// Client implements Catalog using net/http. Each call is a single attempt.
type Client struct {
	baseURL string
	client  *http.Client
	logger  *slog.Logger
}

var _ Catalog = (*Client)(nil)

// NewClient creates a client targeting the configured base URL.
func NewClient(cfg ClientConfig, logger *slog.Logger) *Client {
	base := strings.TrimRight(cfg.BaseURL, "/")
	if base == "" {
		base = DefaultBaseURL
	}
	return &Client{
		baseURL: base,
		client:  &http.Client{Timeout: cfg.Timeout},
		logger:  logger.With("component", "rickmorty"),
	}
}

// GetPage fetches one page of characters. Pages below 1 are requested as page 1.
func (c *Client) GetPage(ctx context.Context, page int) (*model.CharacterPage, error) {
	if page < 1 {
		page = 1
	}
	var out model.CharacterPage
	if err := c.getJSON(ctx, "characters", "/character?page="+strconv.Itoa(page), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetByID fetches a single character.
func (c *Client) GetByID(ctx context.Context, id int) (*model.Character, error) {
	var out model.Character
	if err := c.getJSON(ctx, "character", "/character/"+strconv.Itoa(id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetByIDs fetches a batch of episodes in one request. An empty id list returns
// an empty slice without contacting the catalog.
func (c *Client) GetByIDs(ctx context.Context, ids []int) ([]model.Episode, error) {
	if len(ids) == 0 {
		return []model.Episode{}, nil
	}

	var raw json.RawMessage
	if err := c.getJSON(ctx, "episodes", "/episode/"+JoinIDs(ids), &raw); err != nil {
		return nil, err
	}

	// A single id yields a bare object instead of a one-element array.
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return []model.Episode{}, nil
	}
	if trimmed[0] == '[' {
		var eps []model.Episode
		if err := json.Unmarshal(trimmed, &eps); err != nil {
			return nil, fmt.Errorf("unmarshal episodes: %w", err)
		}
		return dropEmptyEpisodes(eps), nil
	}
	var ep model.Episode
	if err := json.Unmarshal(trimmed, &ep); err != nil {
		return nil, fmt.Errorf("unmarshal episode: %w", err)
	}
	return dropEmptyEpisodes([]model.Episode{ep}), nil
}

// dropEmptyEpisodes removes entries decoded from null elements.
func dropEmptyEpisodes(eps []model.Episode) []model.Episode {
	out := eps[:0]
	for _, ep := range eps {
		if ep.ID > 0 {
			out = append(out, ep)
		}
	}
	return out
}

// JoinIDs renders ids as the comma-separated list the batch endpoint expects.
func JoinIDs(ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, ",")
}

func (c *Client) getJSON(ctx context.Context, op, path string, out any) error {
	url := c.baseURL + path

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	c.logger.Debug("catalog request", "op", op, "url", url)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", op, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		fe := &FetchError{
			Op:         op,
			StatusCode: resp.StatusCode,
			Status:     statusText(resp),
		}
		var upstream struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(body, &upstream) == nil {
			fe.Detail = upstream.Error
		}
		c.logger.Debug("catalog request failed", "op", op, "status", resp.StatusCode, "detail", fe.Detail)
		return fe
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("unmarshal %s: %w", op, err)
	}
	return nil
}

// statusText strips the numeric code from resp.Status ("404 Not Found" -> "Not Found").
func statusText(resp *http.Response) string {
	code := strconv.Itoa(resp.StatusCode)
	if text := strings.TrimSpace(strings.TrimPrefix(resp.Status, code)); text != "" {
		return text
	}
	return http.StatusText(resp.StatusCode)
}
