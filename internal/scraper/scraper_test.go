package scraper

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"
)

func loadFixture(t *testing.T, name string) []byte {
	t.Helper()
	data, err := os.ReadFile("../../testdata/fixtures/" + name)
	if err != nil {
		t.Fatalf("failed to load test fixture: %v", err)
	}
	return data
}

func TestParsePostsJSON(t *testing.T) {
	data := loadFixture(t, "profile_response.json")

	posts, err := parsePostsJSON(data, 10)
	if err != nil {
		t.Fatalf("parsePostsJSON failed: %v", err)
	}

	// The captionless post is skipped entirely.
	if len(posts) != 3 {
		t.Fatalf("got %d posts, want 3", len(posts))
	}
	if !strings.HasPrefix(posts[0].Caption, "Glow Party at Warehouse 9") {
		t.Errorf("first caption = %q", posts[0].Caption)
	}
	if posts[0].Permalink != "https://www.instagram.com/p/Cxy123Ab/" {
		t.Errorf("first permalink = %q", posts[0].Permalink)
	}
	if posts[1].Permalink != "https://www.instagram.com/p/Cxy789Ef/" {
		t.Errorf("second permalink = %q", posts[1].Permalink)
	}
}

func TestParsePostsJSONCountLimit(t *testing.T) {
	data := loadFixture(t, "profile_response.json")

	posts, err := parsePostsJSON(data, 1)
	if err != nil {
		t.Fatalf("parsePostsJSON failed: %v", err)
	}
	if len(posts) != 1 {
		t.Errorf("got %d posts, want 1", len(posts))
	}
}

func TestParsePostsJSONNoUser(t *testing.T) {
	if _, err := parsePostsJSON([]byte(`{"data":{}}`), 10); err == nil {
		t.Error("expected error for payload without user data")
	}
}

func TestParsePostsHTML(t *testing.T) {
	data := loadFixture(t, "profile_page.html")

	posts, err := parsePostsHTML(bytes.NewReader(data), 10)
	if err != nil {
		t.Fatalf("parsePostsHTML failed: %v", err)
	}

	if len(posts) != 2 {
		t.Fatalf("got %d posts, want 2", len(posts))
	}
	if !strings.HasPrefix(posts[0].Caption, "Glow Party") {
		t.Errorf("first caption = %q", posts[0].Caption)
	}
	if posts[0].Permalink != "" {
		t.Errorf("HTML fallback should not produce permalinks, got %q", posts[0].Permalink)
	}
}

func TestFetchPosts(t *testing.T) {
	fixture := loadFixture(t, "profile_response.json")

	var gotQuery url.Values
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Write(fixture)
	}))
	defer server.Close()

	c := NewWithBaseURL("secret-token", server.URL)
	posts, err := c.FetchPosts("venueco", 10)
	if err != nil {
		t.Fatalf("FetchPosts failed: %v", err)
	}

	if len(posts) != 3 {
		t.Errorf("got %d posts, want 3", len(posts))
	}
	if gotQuery.Get("token") != "secret-token" {
		t.Errorf("token = %q", gotQuery.Get("token"))
	}
	if target := gotQuery.Get("url"); !strings.Contains(target, "web_profile_info") || !strings.Contains(target, "venueco") {
		t.Errorf("proxied url = %q", target)
	}
}

func TestFetchPostsHTMLFallback(t *testing.T) {
	fixture := loadFixture(t, "profile_page.html")

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(fixture)
	}))
	defer server.Close()

	c := NewWithBaseURL("t", server.URL)
	posts, err := c.FetchPosts("venueco", 10)
	if err != nil {
		t.Fatalf("FetchPosts failed: %v", err)
	}
	if len(posts) != 2 {
		t.Errorf("got %d posts via fallback, want 2", len(posts))
	}
}

func TestFetchPostsClientErrorIsPermanent(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	c := NewWithBaseURL("t", server.URL)
	if _, err := c.FetchPosts("gone", 10); err == nil {
		t.Fatal("expected error for 404 response")
	}
	if requests != 1 {
		t.Errorf("made %d requests, want 1 (no retries on client errors)", requests)
	}
}

func TestFetchPostsRetriesServerError(t *testing.T) {
	fixture := loadFixture(t, "profile_response.json")

	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		if requests == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write(fixture)
	}))
	defer server.Close()

	c := NewWithBaseURL("t", server.URL)
	posts, err := c.FetchPosts("venueco", 10)
	if err != nil {
		t.Fatalf("FetchPosts failed after retry: %v", err)
	}
	if requests != 2 {
		t.Errorf("made %d requests, want 2", requests)
	}
	if len(posts) != 3 {
		t.Errorf("got %d posts, want 3", len(posts))
	}
}
