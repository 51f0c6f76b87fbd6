// Package figma is a minimal client for the two Figma REST lookups the
// dashboard needs: the token owner and a file's metadata.
package figma

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"time"
)

// DefaultBaseURL is the public Figma REST API.
const DefaultBaseURL = "https://api.figma.com"

// tokenHeader carries the personal access token on every request.
const tokenHeader = "X-Figma-Token"

// Me is the token owner returned by GET /v1/me.
type Me struct {
	ID     string `json:"id,omitempty"`
	Handle string `json:"handle"`
	Email  string `json:"email,omitempty"`
	ImgURL string `json:"img_url,omitempty"`
}

// File is the subset of GET /v1/files/{key} the dashboard keeps.
type File struct {
	Name         string `json:"name"`
	ThumbnailURL string `json:"thumbnailUrl,omitempty"`
	LastModified string `json:"lastModified,omitempty"`
}

// Client is the Figma API client.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a new API client. The token is passed per call because the
// dashboard lets the user change it at any time.
func New(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// GetMe returns the owner of token.
func (c *Client) GetMe(ctx context.Context, token string) (*Me, error) {
	var m Me
	if err := c.get(ctx, token, "/v1/me", &m); err != nil {
		return nil, fmt.Errorf("figma.GetMe: %w", err)
	}
	if m.Handle == "" {
		return nil, fmt.Errorf("figma.GetMe: %w", &MalformedResponseError{Path: "/v1/me", Field: "handle"})
	}
	return &m, nil
}

// GetFile fetches the metadata of the file identified by key.
func (c *Client) GetFile(ctx context.Context, token, key string) (*File, error) {
	path := "/v1/files/" + url.PathEscape(key)
	var f File
	if err := c.get(ctx, token, path, &f); err != nil {
		return nil, fmt.Errorf("figma.GetFile: %w", err)
	}
	if f.Name == "" {
		return nil, fmt.Errorf("figma.GetFile: %w", &MalformedResponseError{Path: path, Field: "name"})
	}
	return &f, nil
}

var fileKeyPattern = regexp.MustCompile(`figma\.com/(?:file|design|board)/([a-zA-Z0-9]+)`)

// FileKey extracts the file key from a share URL such as
// https://www.figma.com/design/AbC123/Landing.
func FileKey(rawURL string) (string, error) {
	m := fileKeyPattern.FindStringSubmatch(rawURL)
	if m == nil {
		return "", fmt.Errorf("figma.FileKey: %w: %q", ErrInvalidURL, rawURL)
	}
	return m[1], nil
}

func (c *Client) get(ctx context.Context, token, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set(tokenHeader, token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck // best-effort close

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respBody, readErr := io.ReadAll(io.LimitReader(resp.Body, 1<<20)) // 1 MB max error body
		if readErr != nil {
			return &HTTPError{StatusCode: resp.StatusCode, Message: fmt.Sprintf("failed to read body: %v", readErr)}
		}
		var apiErr struct {
			Err     string `json:"err"`
			Message string `json:"message"`
		}
		if json.Unmarshal(respBody, &apiErr) == nil {
			if apiErr.Err != "" {
				return &HTTPError{StatusCode: resp.StatusCode, Message: apiErr.Err}
			}
			if apiErr.Message != "" {
				return &HTTPError{StatusCode: resp.StatusCode, Message: apiErr.Message}
			}
		}
		return &HTTPError{StatusCode: resp.StatusCode, Message: string(respBody)}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &MalformedResponseError{Path: path, Err: err}
	}
	return nil
}
