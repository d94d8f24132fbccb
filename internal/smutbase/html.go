package smutbase

import (
	"context"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// htmlToText flattens an HTML fragment (model descriptions arrive as one)
// into plain text suitable for a chat message. Block-ish elements become line
// breaks; runs of whitespace collapse.
func htmlToText(fragment string) string {
	if fragment == "" || !strings.ContainsAny(fragment, "<&") {
		return strings.TrimSpace(fragment)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return strings.TrimSpace(fragment)
	}

	doc.Find("br, p, div, li").Each(func(_ int, s *goquery.Selection) {
		s.AppendHtml("\n")
	})

	var lines []string
	for _, line := range strings.Split(doc.Text(), "\n") {
		if line = strings.Join(strings.Fields(line), " "); line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}

// scrapeThumbnail fetches a model page and pulls the og:image URL out of it.
func (c *Client) scrapeThumbnail(ctx context.Context, pageURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", &NetworkError{URL: pageURL, Err: err}
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &NetworkError{URL: pageURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", &NetworkError{URL: pageURL, Status: resp.StatusCode}
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", &ParseError{URL: pageURL, Err: err}
	}

	img, ok := doc.Find(`meta[property="og:image"]`).Attr("content")
	if !ok || img == "" {
		return "", &NotFoundError{Resource: "thumbnail for " + pageURL}
	}
	return absoluteURL(c.baseURL, img), nil
}

// absoluteURL resolves a possibly-relative asset URL against the site base.
func absoluteURL(base, ref string) string {
	if ref == "" || strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return ref
	}
	if !strings.HasPrefix(ref, "/") {
		ref = "/" + ref
	}
	return base + ref
}
