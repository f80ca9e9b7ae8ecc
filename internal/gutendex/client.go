// Package gutendex queries the Gutendex books API (https://gutendex.com).
package gutendex

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
)

const DefaultBaseURL = "https://gutendex.com/books/"

type Client struct {
	Client  *http.Client
	BaseURL *url.URL
	Logger  *slog.Logger
}

func NewClient(client *http.Client, baseURL *url.URL, l *slog.Logger) *Client {
	return &Client{Client: client, BaseURL: baseURL, Logger: l}
}

// Search runs a free-text search. Spaces in the query are sent as %20.
// Pagination is never followed: callers only ever consume the first
// result of the first page.
func (c *Client) Search(ctx context.Context, query string) (*SearchResult, error) {
	searchUrl, err := url.Parse(c.BaseURL.String() + "?search=" + strings.ReplaceAll(strings.TrimSpace(query), " ", "%20"))
	if err != nil {
		return nil, fmt.Errorf("building search URL: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchUrl.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("building search request: %w", err)
	}

	res, err := c.Client.Do(req)
	if err != nil {
		c.Logger.Error("Failed to fetch search results for " + query + ": " + err.Error())
		return nil, fmt.Errorf("fetching search results: %w", err)
	}

	var bs []byte
	func() {
		defer res.Body.Close()
		bs, err = io.ReadAll(res.Body)
	}()

	if err != nil {
		c.Logger.Error("Failed to read body of search results for " + query + ": " + err.Error())
		return nil, fmt.Errorf("fetching search results (reading response): %w", err)
	}

	if res.StatusCode != http.StatusOK {
		c.Logger.Error("Search returned status " + res.Status + " for " + query)
		return nil, fmt.Errorf("fetching search results: unexpected status %s", res.Status)
	}

	if len(bs) == 0 {
		c.Logger.Error("Search returned empty body for " + query)
		return nil, fmt.Errorf("fetching search results: empty response body")
	}

	var result SearchResult
	err = json.Unmarshal(bs, &result)
	if err != nil {
		c.Logger.Error("Failed to unmarshal search results for " + query + ": " + err.Error())
		return nil, fmt.Errorf("unmarshalling search results: %w", err)
	}

	c.Logger.Debug("Search for " + query + " returned " + fmt.Sprint(len(result.Results)) + " results")

	return &result, nil
}
