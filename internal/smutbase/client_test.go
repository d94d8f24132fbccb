package smutbase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
)

const testID = "b8c7264b-29e7-4091-bb73-3eac2fddb350"

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := New(Options{BaseURL: srv.URL})
	if err != nil {
		t.Fatal(err)
	}
	return client, srv
}

func searchPayload(n int) string {
	var results []string
	for i := 0; i < n; i++ {
		results = append(results, fmt.Sprintf(
			`{"id":"%08x-29e7-4091-bb73-3eac2fddb350","title":"Model %d","author":{"name":"a%d","url":"/member/a%d/"},"category":"models","thumbnail":"/media/t%d.jpg"}`,
			i, i, i, i, i))
	}
	return fmt.Sprintf(`{"results":[%s],"page":1,"total_pages":3}`, strings.Join(results, ","))
}

func TestSearchCapsItemsAtMaxResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, searchPayload(15))
	}))
	defer srv.Close()

	client, err := New(Options{BaseURL: srv.URL, MaxResults: 10})
	if err != nil {
		t.Fatal(err)
	}

	result, err := client.Search(context.Background(), SearchOptions{Query: "anime", Page: 1})
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Items) != 10 {
		t.Errorf("got %d items, want 10", len(result.Items))
	}
	if result.Page != 1 {
		t.Errorf("page = %d, want 1", result.Page)
	}
	if result.TotalPages != 3 {
		t.Errorf("total pages = %d, want 3", result.TotalPages)
	}
}

func TestSearchQueryParams(t *testing.T) {
	var gotQuery string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		fmt.Fprint(w, `{"results":[],"page":2,"total_pages":2}`)
	}))

	_, err := client.Search(context.Background(), SearchOptions{
		Query:    "mech",
		Category: CategoryTextures,
		Sort:     SortMostViewed,
		Page:     2,
	})
	if err != nil {
		t.Fatal(err)
	}

	for _, want := range []string{"q=mech", "category=2", "sort=most_viewed", "page=2"} {
		if !strings.Contains(gotQuery, want) {
			t.Errorf("query %q missing %q", gotQuery, want)
		}
	}
}

func TestSearchDefaultsOmitParams(t *testing.T) {
	var gotQuery string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		fmt.Fprint(w, `{"results":[],"page":1,"total_pages":1}`)
	}))

	if _, err := client.Search(context.Background(), SearchOptions{}); err != nil {
		t.Fatal(err)
	}
	if gotQuery != "" {
		t.Errorf("default search sent params: %q", gotQuery)
	}
}

func TestSearchErrorPayload(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"detail":"invalid category"}`)
	}))

	_, err := client.Search(context.Background(), SearchOptions{Category: CategoryOther})
	var notFound *NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("got %v, want NotFoundError", err)
	}
}

func TestSearchMalformedJSON(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html>definitely not json`)
	}))

	_, err := client.Search(context.Background(), SearchOptions{})
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("got %v, want ParseError", err)
	}
}

func TestSearchServerError(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))

	_, err := client.Search(context.Background(), SearchOptions{})
	var netErr *NetworkError
	if !errors.As(err, &netErr) {
		t.Fatalf("got %v, want NetworkError", err)
	}
	if netErr.Status != http.StatusBadGateway {
		t.Errorf("status = %d, want 502", netErr.Status)
	}
}

func TestGetModelInvalidIDBeforeNetwork(t *testing.T) {
	var requests atomic.Int64
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
	}))

	_, err := client.GetModel(context.Background(), "not-a-uuid")
	var invalid *InvalidIDError
	if !errors.As(err, &invalid) {
		t.Fatalf("got %v, want InvalidIDError", err)
	}
	if requests.Load() != 0 {
		t.Errorf("%d requests made, want 0", requests.Load())
	}
}

func TestGetModelNotFound(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))

	_, err := client.GetModel(context.Background(), testID)
	var notFound *NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("got %v, want NotFoundError", err)
	}
	if !strings.Contains(notFound.Resource, testID) {
		t.Errorf("resource %q does not name the model", notFound.Resource)
	}
}

func TestGetModelDetail(t *testing.T) {
	client, srv := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/project/"+testID+"/" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"id":          testID,
			"title":       "Space Mech",
			"author":      map[string]string{"name": "builder", "url": "/member/builder/"},
			"category":    "models",
			"thumbnail":   "/media/mech.jpg",
			"description": "<p>A <b>big</b> mech.</p><p>Rigged.</p>",
			"tags":        []string{"mech", "scifi"},
			"download_url": "/project/" + testID + "/download/",
			"views":       1200,
			"downloads":   34,
			"posted":      "Jan. 2, 2024",
			"licence":     "CC BY-NC",
		})
	}))

	detail, err := client.GetModel(context.Background(), testID)
	if err != nil {
		t.Fatal(err)
	}

	if detail.ID != testID {
		t.Errorf("id = %q", detail.ID)
	}
	if detail.Title != "Space Mech" {
		t.Errorf("title = %q", detail.Title)
	}
	if detail.Category != CategoryModels {
		t.Errorf("category = %q", detail.Category)
	}
	if detail.Description != "A big mech.\nRigged." {
		t.Errorf("description = %q", detail.Description)
	}
	if detail.ThumbnailURL != srv.URL+"/media/mech.jpg" {
		t.Errorf("thumbnail = %q", detail.ThumbnailURL)
	}
	if detail.Views != 1200 || detail.Downloads != 34 {
		t.Errorf("stats = %d/%d", detail.Views, detail.Downloads)
	}
	if len(detail.Tags) != 2 {
		t.Errorf("tags = %v", detail.Tags)
	}
}

func TestGetModelThumbnailFallback(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/project/"+testID+"/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"id":"%s","title":"Old Entry"}`, testID)
	})
	mux.HandleFunc("/project/"+testID+"/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><head><meta property="og:image" content="/media/og.jpg"></head><body></body></html>`)
	})

	client, srv := newTestClient(t, mux)

	detail, err := client.GetModel(context.Background(), testID)
	if err != nil {
		t.Fatal(err)
	}
	if detail.ThumbnailURL != srv.URL+"/media/og.jpg" {
		t.Errorf("thumbnail = %q, want og:image fallback", detail.ThumbnailURL)
	}
}

func TestGetModelEmptyPayload(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"detail":"no such project"}`)
	}))

	_, err := client.GetModel(context.Background(), testID)
	var notFound *NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("got %v, want NotFoundError", err)
	}
}

func TestRandomReturnsDetailFromListing(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/search/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"results":[{"id":"%s","title":"Only One","category":"models"}],"page":1,"total_pages":1}`, testID)
	})
	mux.HandleFunc("/api/project/"+testID+"/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"id":"%s","title":"Only One","category":"models"}`, testID)
	})

	client, _ := newTestClient(t, mux)

	detail, err := client.Random(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if detail.ID != testID {
		t.Errorf("id = %q", detail.ID)
	}
}

func TestRandomEmptyCatalog(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"results":[],"page":1,"total_pages":1}`)
	}))

	_, err := client.Random(context.Background())
	var notFound *NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("got %v, want NotFoundError", err)
	}
}

func TestNetworkErrorOnUnreachableHost(t *testing.T) {
	client, err := New(Options{BaseURL: "http://127.0.0.1:1"})
	if err != nil {
		t.Fatal(err)
	}

	_, err = client.Search(context.Background(), SearchOptions{})
	var netErr *NetworkError
	if !errors.As(err, &netErr) {
		t.Fatalf("got %v, want NetworkError", err)
	}
}

func TestNewRejectsBadProxy(t *testing.T) {
	if _, err := New(Options{Proxy: "ftp://example.com"}); err == nil {
		t.Error("ftp proxy accepted")
	}
	if _, err := New(Options{Proxy: "socks5://127.0.0.1:1080"}); err != nil {
		t.Errorf("socks5 proxy rejected: %v", err)
	}
}
