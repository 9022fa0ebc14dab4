package datamuse

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/poiesic/searchit/expand"
)

// DefaultBaseURL is the public Datamuse API endpoint.
const DefaultBaseURL = "https://api.datamuse.com"

// Client implements both expand.SynonymProvider and
// expand.WordVectorProvider against the Datamuse word-finding API.
// Datamuse requires no credentials.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

var (
	_ expand.SynonymProvider    = (*Client)(nil)
	_ expand.WordVectorProvider = (*Client)(nil)
)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// WithBaseURL sets a custom API base URL.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		if baseURL != "" {
			c.baseURL = baseURL
		}
	}
}

// NewClient creates a Datamuse client.
func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient: http.DefaultClient,
		baseURL:    DefaultBaseURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// word is a single entry in a Datamuse response.
type word struct {
	Word string `json:"word"`
}

// Synonyms returns synonyms of w via the rel_syn relation. Datamuse returns
// a flat relevance-ordered list, which is exposed as a single group.
func (c *Client) Synonyms(ctx context.Context, w string) ([][]string, error) {
	words, err := c.query(ctx, url.Values{"rel_syn": {w}, "max": {"30"}})
	if err != nil {
		return nil, err
	}
	if len(words) == 0 {
		return nil, nil
	}
	return [][]string{words}, nil
}

// Nearest returns up to k distributionally similar words via the ml
// ("means like") relation, which is backed by word embeddings.
func (c *Client) Nearest(ctx context.Context, w string, k int) ([]string, error) {
	if k < 1 {
		return nil, nil
	}
	return c.query(ctx, url.Values{"ml": {w}, "max": {fmt.Sprint(k)}})
}

// query performs one GET against the words endpoint.
func (c *Client) query(ctx context.Context, params url.Values) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/words?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("datamuse: unexpected status %s", resp.Status)
	}

	var entries []word
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return nil, err
	}

	words := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.Word != "" {
			words = append(words, entry.Word)
		}
	}
	return words, nil
}
