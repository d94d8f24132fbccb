package smutbase

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// RootURL is the public site root. The client's BaseURL defaults to it but can
// be overridden for tests.
const RootURL = "https://smutba.se"

// Category is one of the site's fixed classification filters.
type Category string

const (
	CategoryAny       Category = "any"
	CategoryModels    Category = "models"
	CategoryTextures  Category = "textures"
	CategorySceneries Category = "sceneries"
	CategoryHDRIs     Category = "hdris"
	CategoryOther     Category = "other"
)

// categoryFilters maps public category names to the site's numeric filter
// values. "any" sends no filter at all.
var categoryFilters = map[Category]string{
	CategoryAny:       "",
	CategoryModels:    "1",
	CategoryTextures:  "2",
	CategorySceneries: "3",
	CategoryHDRIs:     "4",
	CategoryOther:     "5",
}

// ParseCategory resolves a user-supplied category name.
func ParseCategory(name string) (Category, bool) {
	c := Category(strings.ToLower(strings.TrimSpace(name)))
	_, ok := categoryFilters[c]
	return c, ok
}

// CategoryNames returns the public category names in display order.
func CategoryNames() []string {
	return []string{"any", "models", "textures", "sceneries", "hdris", "other"}
}

// SortBy selects the result ordering for search and browse calls.
type SortBy string

const (
	SortLastUpdated    SortBy = "last_updated"
	SortNewest         SortBy = "newest"
	SortOldest         SortBy = "oldest"
	SortMostViewed     SortBy = "most_viewed"
	SortMostDownloaded SortBy = "most_downloaded"
)

// Author identifies the uploader of a model.
type Author struct {
	Name string
	URL  string
}

// ProfileURL returns the author's page as an absolute URL.
func (a Author) ProfileURL() string {
	if a.URL == "" || strings.HasPrefix(a.URL, "http") {
		return a.URL
	}
	return RootURL + a.URL
}

// ModelSummary is one catalog entry as it appears in a result listing.
// Immutable once built from a response.
type ModelSummary struct {
	ID           string
	Title        string
	Author       Author
	Category     Category
	ThumbnailURL string
	Page         int
}

// URL returns the model's page URL.
func (m ModelSummary) URL() string { return ModelURL(m.ID) }

// ModelDetail is the full record returned by a detail lookup. Not persisted.
type ModelDetail struct {
	ModelSummary
	Description string
	Tags        []string
	DownloadURL string
	Views       int
	Downloads   int
	Posted      string
	Updated     string
	Licence     string
}

// SearchResult is one page of catalog entries. Items holds at most the
// client's configured MaxResults entries and Page is always >= 1.
type SearchResult struct {
	Items      []ModelSummary
	Page       int
	TotalPages int
	Query      string
}

// HasNext reports whether a later page exists.
func (r *SearchResult) HasNext() bool { return r.Page < r.TotalPages }

// HasPrev reports whether an earlier page exists.
func (r *SearchResult) HasPrev() bool { return r.Page > 1 }

var projectIDPattern = regexp.MustCompile(`/project/([0-9a-fA-F-]{36})`)

// ParseModelID canonicalizes user input into a model UUID. It accepts a bare
// UUID or a project URL containing one. Returns InvalidIDError otherwise; no
// network is involved.
func ParseModelID(input string) (string, error) {
	s := strings.TrimSpace(input)

	if id, err := uuid.Parse(s); err == nil {
		return id.String(), nil
	}

	if m := projectIDPattern.FindStringSubmatch(s); m != nil {
		if id, err := uuid.Parse(m[1]); err == nil {
			return id.String(), nil
		}
	}

	return "", &InvalidIDError{Input: input}
}

// ModelURL returns the site page URL for a model ID.
func ModelURL(id string) string {
	return RootURL + "/project/" + id + "/"
}
