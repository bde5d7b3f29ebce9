package scraper

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/cenkalti/backoff/v4"
)

const (
	DefaultBaseURL = "https://api.scrape.do"
	UserAgent      = "gram-events-cli/1.0 (github.com/pfrederiksen/gram-events)"
	Timeout        = 30 * time.Second

	profileAPITemplate = "https://www.instagram.com/api/v1/users/web_profile_info/?username=%s"
	permalinkTemplate  = "https://www.instagram.com/p/%s/"

	maxRetries = 3
)

// Post is a single fetched post: the caption text plus a permalink when the
// post's shortcode is known.
type Post struct {
	Caption   string
	Permalink string
}

// Client fetches account posts through the scraping proxy.
type Client struct {
	client  *http.Client
	baseURL string
	token   string
}

// New creates a Client using the given proxy API token.
func New(token string) *Client {
	return NewWithBaseURL(token, DefaultBaseURL)
}

// NewWithBaseURL creates a Client against a specific proxy endpoint.
// Used by tests to point at a local server.
func NewWithBaseURL(token, baseURL string) *Client {
	return &Client{
		client: &http.Client{
			Timeout: Timeout,
		},
		baseURL: baseURL,
		token:   token,
	}
}

// FetchPosts returns up to count recent posts for account. Posts without a
// caption are skipped and do not count toward the limit.
func (c *Client) FetchPosts(account string, count int) ([]Post, error) {
	profileURL := fmt.Sprintf(profileAPITemplate, url.QueryEscape(account))
	apiURL := fmt.Sprintf("%s/?token=%s&url=%s",
		c.baseURL, url.QueryEscape(c.token), url.QueryEscape(profileURL))

	body, err := c.get(apiURL)
	if err != nil {
		return nil, fmt.Errorf("fetching profile for %s: %w", account, err)
	}

	posts, err := parsePostsJSON(body, count)
	if err != nil {
		// The proxy sometimes returns the rendered profile page instead
		// of the API payload; recover what captions we can from it.
		return parsePostsHTML(bytes.NewReader(body), count)
	}
	return posts, nil
}

// get performs the proxy request, retrying transient failures with bounded
// exponential backoff. Client errors other than 429 are permanent.
func (c *Client) get(apiURL string) ([]byte, error) {
	var body []byte

	operation := func() error {
		req, err := http.NewRequest(http.MethodGet, apiURL, nil)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("creating request: %w", err))
		}
		req.Header.Set("User-Agent", UserAgent)

		resp, err := c.client.Do(req)
		if err != nil {
			return fmt.Errorf("proxy request: %w", err)
		}
		defer resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusOK:
		case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
			return fmt.Errorf("proxy status %d", resp.StatusCode)
		default:
			return backoff.Permanent(fmt.Errorf("proxy status %d", resp.StatusCode))
		}

		body, err = io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("reading response: %w", err)
		}
		return nil
	}

	policy := backoff.WithMaxRetries(backoff.NewExponentialBackOff(), maxRetries)
	if err := backoff.Retry(operation, policy); err != nil {
		return nil, err
	}
	return body, nil
}

// profileResponse mirrors the slice of the profile-info payload we consume.
type profileResponse struct {
	Data struct {
		User *struct {
			EdgeOwnerToTimelineMedia struct {
				Edges []struct {
					Node struct {
						Shortcode          string `json:"shortcode"`
						EdgeMediaToCaption struct {
							Edges []struct {
								Node struct {
									Text string `json:"text"`
								} `json:"node"`
							} `json:"edges"`
						} `json:"edge_media_to_caption"`
					} `json:"node"`
				} `json:"edges"`
			} `json:"edge_owner_to_timeline_media"`
		} `json:"user"`
	} `json:"data"`
}

// parsePostsJSON walks the timeline media edges of the profile payload.
func parsePostsJSON(body []byte, count int) ([]Post, error) {
	var profile profileResponse
	if err := json.Unmarshal(body, &profile); err != nil {
		return nil, fmt.Errorf("parsing profile payload: %w", err)
	}
	if profile.Data.User == nil {
		return nil, fmt.Errorf("profile payload has no user data")
	}

	posts := make([]Post, 0, count)
	for _, edge := range profile.Data.User.EdgeOwnerToTimelineMedia.Edges {
		if len(posts) >= count {
			break
		}
		node := edge.Node

		caption := ""
		if len(node.EdgeMediaToCaption.Edges) > 0 {
			caption = node.EdgeMediaToCaption.Edges[0].Node.Text
		}
		if caption == "" {
			continue
		}

		permalink := ""
		if node.Shortcode != "" {
			permalink = fmt.Sprintf(permalinkTemplate, node.Shortcode)
		}

		posts = append(posts, Post{Caption: caption, Permalink: permalink})
	}
	return posts, nil
}

// parsePostsHTML is the degraded fallback for HTML responses: post captions
// surface as image alt text on the profile page. No permalinks are available
// on this path.
func parsePostsHTML(r io.Reader, count int) ([]Post, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing profile HTML: %w", err)
	}

	posts := make([]Post, 0, count)
	doc.Find("img[alt]").EachWithBreak(func(i int, sel *goquery.Selection) bool {
		alt := strings.TrimSpace(sel.AttrOr("alt", ""))
		if alt == "" {
			return true
		}
		posts = append(posts, Post{Caption: alt})
		return len(posts) < count
	})
	return posts, nil
}
