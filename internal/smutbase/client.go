package smutbase

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"net/http"
	"net/url"
	"strconv"
	"time"

	xproxy "golang.org/x/net/proxy"
)

const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// maxRandomPage caps how deep the random walk goes into the catalog.
const maxRandomPage = 50

// Options configures a Client.
type Options struct {
	BaseURL    string        // defaults to RootURL
	Proxy      string        // empty, http(s)://, or socks5:// URL
	Timeout    time.Duration // per-request timeout, defaults to 30s
	MaxResults int           // per-page item cap, defaults to 10
	UserAgent  string
}

// Client is a typed HTTP client for the smutba.se catalog API.
type Client struct {
	baseURL    string
	maxResults int
	userAgent  string
	httpClient *http.Client
}

// New creates a Client. It fails only on an unusable proxy URL.
func New(opts Options) (*Client, error) {
	if opts.BaseURL == "" {
		opts.BaseURL = RootURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.MaxResults <= 0 {
		opts.MaxResults = 10
	}
	if opts.UserAgent == "" {
		opts.UserAgent = defaultUserAgent
	}

	transport, err := NewProxyTransport(opts.Proxy)
	if err != nil {
		return nil, err
	}

	return &Client{
		baseURL:    opts.BaseURL,
		maxResults: opts.MaxResults,
		userAgent:  opts.UserAgent,
		httpClient: &http.Client{
			Timeout:   opts.Timeout,
			Transport: transport,
		},
	}, nil
}

// NewProxyTransport builds a proxy-aware transport. http(s) proxies go
// through the standard CONNECT path, socks5 through x/net's dialer. An empty
// URL falls back to the environment proxy settings.
func NewProxyTransport(proxyURL string) (*http.Transport, error) {
	if proxyURL == "" {
		return &http.Transport{Proxy: http.ProxyFromEnvironment}, nil
	}

	u, err := url.Parse(proxyURL)
	if err != nil {
		return nil, fmt.Errorf("parse proxy URL: %w", err)
	}

	switch u.Scheme {
	case "http", "https":
		return &http.Transport{Proxy: http.ProxyURL(u)}, nil
	case "socks5":
		dialer, err := xproxy.FromURL(u, xproxy.Direct)
		if err != nil {
			return nil, fmt.Errorf("socks5 proxy: %w", err)
		}
		cd, ok := dialer.(xproxy.ContextDialer)
		if !ok {
			return nil, fmt.Errorf("socks5 proxy %s: dialer does not support context", proxyURL)
		}
		return &http.Transport{DialContext: cd.DialContext}, nil
	default:
		return nil, fmt.Errorf("unsupported proxy scheme %q", u.Scheme)
	}
}

// SearchOptions selects what Search returns. Zero values mean: no query, any
// category, default ordering, first page.
type SearchOptions struct {
	Query    string
	Category Category
	Sort     SortBy
	Page     int
}

// Wire shapes for the JSON API.

type searchEnvelope struct {
	Results    []modelJSON `json:"results"`
	Page       int         `json:"page"`
	TotalPages int         `json:"total_pages"`
	Detail     string      `json:"detail"` // error payloads only
}

type modelJSON struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Author      authorJSON `json:"author"`
	Category    string     `json:"category"`
	Thumbnail   string     `json:"thumbnail"`
	Description string     `json:"description"`
	Tags        []string   `json:"tags"`
	DownloadURL string     `json:"download_url"`
	Views       int        `json:"views"`
	Downloads   int        `json:"downloads"`
	Posted      string     `json:"posted"`
	Updated     string     `json:"updated"`
	Licence     string     `json:"licence"`
	Detail      string     `json:"detail"` // error payloads only
}

type authorJSON struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Search queries the catalog and returns one page of results. Items is capped
// at the configured MaxResults.
func (c *Client) Search(ctx context.Context, opts SearchOptions) (*SearchResult, error) {
	if opts.Page < 1 {
		opts.Page = 1
	}

	params := url.Values{}
	if opts.Query != "" {
		params.Set("q", opts.Query)
	}
	if filter := categoryFilters[opts.Category]; filter != "" {
		params.Set("category", filter)
	}
	if opts.Sort != "" && opts.Sort != SortLastUpdated {
		params.Set("sort", string(opts.Sort))
	}
	if opts.Page > 1 {
		params.Set("page", strconv.Itoa(opts.Page))
	}

	reqURL := c.baseURL + "/api/search/"
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	var env searchEnvelope
	if err := c.getJSON(ctx, reqURL, &env); err != nil {
		return nil, err
	}
	if env.Detail != "" && len(env.Results) == 0 {
		return nil, &NotFoundError{Resource: env.Detail}
	}

	result := &SearchResult{
		Page:       opts.Page,
		TotalPages: env.TotalPages,
		Query:      opts.Query,
	}
	if env.Page > 0 {
		result.Page = env.Page
	}
	if result.TotalPages < 1 {
		result.TotalPages = 1
	}

	for _, m := range env.Results {
		if len(result.Items) >= c.maxResults {
			break
		}
		result.Items = append(result.Items, c.summary(m, result.Page))
	}

	return result, nil
}

// GetModel fetches the full record for a model. The input may be a bare UUID
// or a project URL; anything else fails with InvalidIDError before any
// request is made.
func (c *Client) GetModel(ctx context.Context, id string) (*ModelDetail, error) {
	modelID, err := ParseModelID(id)
	if err != nil {
		return nil, err
	}

	reqURL := c.baseURL + "/api/project/" + modelID + "/"

	var m modelJSON
	if err := c.getJSON(ctx, reqURL, &m); err != nil {
		if nf, ok := err.(*NotFoundError); ok {
			nf.Resource = "model " + modelID
		}
		return nil, err
	}
	if m.ID == "" {
		return nil, &NotFoundError{Resource: "model " + modelID}
	}

	detail := &ModelDetail{
		ModelSummary: c.summary(m, 0),
		Description:  htmlToText(m.Description),
		Tags:         m.Tags,
		DownloadURL:  m.DownloadURL,
		Views:        m.Views,
		Downloads:    m.Downloads,
		Posted:       m.Posted,
		Updated:      m.Updated,
		Licence:      m.Licence,
	}

	// The API omits thumbnails on some older entries; the page's og:image
	// still has one.
	if detail.ThumbnailURL == "" {
		if img, err := c.scrapeThumbnail(ctx, c.baseURL+"/project/"+modelID+"/"); err == nil {
			detail.ThumbnailURL = img
		}
	}

	return detail, nil
}

// Latest returns the newest models.
func (c *Client) Latest(ctx context.Context, page int) (*SearchResult, error) {
	return c.Search(ctx, SearchOptions{Sort: SortNewest, Page: page})
}

// Popular returns the most viewed models.
func (c *Client) Popular(ctx context.Context, page int) (*SearchResult, error) {
	return c.Search(ctx, SearchOptions{Sort: SortMostViewed, Page: page})
}

// ByCategory returns models filtered to one category.
func (c *Client) ByCategory(ctx context.Context, category Category, page int) (*SearchResult, error) {
	return c.Search(ctx, SearchOptions{Category: category, Page: page})
}

// Random picks a random model and returns its detail record. It walks the
// catalog like a user would: first page to learn the page count, a random
// page, then a random entry from it.
func (c *Client) Random(ctx context.Context) (*ModelDetail, error) {
	first, err := c.Search(ctx, SearchOptions{})
	if err != nil {
		return nil, err
	}
	if len(first.Items) == 0 {
		return nil, &NotFoundError{Resource: "random model"}
	}

	pages := min(first.TotalPages, maxRandomPage)
	picked := first.Items
	if pages > 1 {
		page, err := c.Search(ctx, SearchOptions{Page: 1 + rand.IntN(pages)})
		if err == nil && len(page.Items) > 0 {
			picked = page.Items
		}
	}

	return c.GetModel(ctx, picked[rand.IntN(len(picked))].ID)
}

func (c *Client) summary(m modelJSON, page int) ModelSummary {
	category := CategoryOther
	if parsed, ok := ParseCategory(m.Category); ok {
		category = parsed
	}
	return ModelSummary{
		ID:           m.ID,
		Title:        m.Title,
		Author:       Author{Name: m.Author.Name, URL: m.Author.URL},
		Category:     category,
		ThumbnailURL: absoluteURL(c.baseURL, m.Thumbnail),
		Page:         page,
	}
}

func (c *Client) getJSON(ctx context.Context, reqURL string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return &NetworkError{URL: reqURL, Err: err}
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &NetworkError{URL: reqURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return &NotFoundError{Resource: reqURL}
	}
	if resp.StatusCode != http.StatusOK {
		return &NetworkError{URL: reqURL, Status: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return &ParseError{URL: reqURL, Err: err}
	}
	return nil
}
