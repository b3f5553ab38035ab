package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/me/rickdex/pkg/model"
)

// Client is an HTTP client for the rickdex API.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	Logger     *slog.Logger
}

// NewClient creates a rickdex API client.
func NewClient(baseURL string, logger *slog.Logger) *Client {
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{},
		Logger:     logger,
	}
}

// apiResponse is the parsed envelope.
type apiResponse struct {
	Status     string            `json:"status"`
	RequestID  string            `json:"request_id"`
	Data       json.RawMessage   `json:"data"`
	Pagination *model.Pagination `json:"pagination"`
	Error      *model.APIError   `json:"error"`
}

// do performs an HTTP request and returns the parsed envelope.
func (c *Client) do(ctx context.Context, method, path string) (*apiResponse, error) {
	u := c.BaseURL + path

	req, err := http.NewRequestWithContext(ctx, method, u, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	c.Logger.Debug("HTTP request", "method", method, "url", u)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	c.Logger.Debug("HTTP response", "status", resp.StatusCode, "bytes", len(respBody))

	var apiResp apiResponse
	if err := json.Unmarshal(respBody, &apiResp); err != nil {
		return nil, fmt.Errorf("parse response (status %d): %w", resp.StatusCode, err)
	}

	if apiResp.Status == "error" && apiResp.Error != nil {
		return &apiResp, apiResp.Error
	}

	return &apiResp, nil
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, path string) (*apiResponse, error) {
	return c.do(ctx, http.MethodGet, path)
}

// ListCharacters fetches one page of characters.
func (c *Client) ListCharacters(ctx context.Context, page int) ([]model.Character, *model.Pagination, error) {
	q := url.Values{"page": {strconv.Itoa(page)}}
	resp, err := c.Get(ctx, "/api/v1/characters?"+q.Encode())
	if err != nil {
		return nil, nil, err
	}
	var chars []model.Character
	if err := json.Unmarshal(resp.Data, &chars); err != nil {
		return nil, nil, fmt.Errorf("parse characters: %w", err)
	}
	return chars, resp.Pagination, nil
}

// GetCharacter fetches a single character.
func (c *Client) GetCharacter(ctx context.Context, id int) (*model.Character, error) {
	resp, err := c.Get(ctx, "/api/v1/characters/"+strconv.Itoa(id))
	if err != nil {
		return nil, err
	}
	var ch model.Character
	if err := json.Unmarshal(resp.Data, &ch); err != nil {
		return nil, fmt.Errorf("parse character: %w", err)
	}
	return &ch, nil
}

// GetEpisodes fetches the episodes a character appears in.
func (c *Client) GetEpisodes(ctx context.Context, id int) ([]model.Episode, error) {
	resp, err := c.Get(ctx, "/api/v1/characters/"+strconv.Itoa(id)+"/episodes")
	if err != nil {
		return nil, err
	}
	var eps []model.Episode
	if err := json.Unmarshal(resp.Data, &eps); err != nil {
		return nil, fmt.Errorf("parse episodes: %w", err)
	}
	return eps, nil
}
