// Package thumbcache manages the plugin's thumbnail files: download into a
// cache directory, optional blur, and cleanup. Entries are ephemeral; a new
// fetch or a cleanup supersedes whatever was cached before.
package thumbcache

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/disintegration/imaging"

	"github.com/ThatCatDev/smutbot/internal/smutbase"
)

const jpegQuality = 85

// Options configures a Cache.
type Options struct {
	Dir         string
	AutoCleanup bool          // delete this session's files before each new fetch
	Timeout     time.Duration // download timeout, defaults to 30s
	UserAgent   string
	Transport   http.RoundTripper // optional, for proxying downloads
}

// Cache owns the files under Dir. Safe for concurrent use; the worst case of
// two commands racing a cleanup is a missing file, which every operation
// tolerates.
type Cache struct {
	dir         string
	autoCleanup bool
	userAgent   string
	httpClient  *http.Client

	mu      sync.Mutex
	session []string // files written since the last cleanup
}

// New creates a Cache over dir. The directory is created lazily on first
// fetch.
func New(opts Options) *Cache {
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	return &Cache{
		dir:         opts.Dir,
		autoCleanup: opts.AutoCleanup,
		userAgent:   opts.UserAgent,
		httpClient: &http.Client{
			Timeout:   opts.Timeout,
			Transport: opts.Transport,
		},
	}
}

// Dir returns the cache directory.
func (c *Cache) Dir() string { return c.dir }

// Path returns the deterministic cache path for a thumbnail URL.
func (c *Cache) Path(url string) string {
	sum := sha256.Sum256([]byte(url))
	return filepath.Join(c.dir, "thumb_"+hex.EncodeToString(sum[:])[:12]+".jpg")
}

// Fetch downloads a thumbnail, re-encodes it as JPEG, and applies the given
// blur level. When auto-cleanup is on, files from earlier fetches in this
// session are removed first. Returns the local path.
func (c *Cache) Fetch(ctx context.Context, url string, blurLevel int) (string, error) {
	if c.autoCleanup {
		c.CleanupSession()
	}

	if err := os.MkdirAll(c.dir, 0755); err != nil {
		return "", err
	}

	data, err := c.download(ctx, url)
	if err != nil {
		return "", err
	}

	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return "", &ImageProcessingError{Source: url, Err: err}
	}

	if blurLevel > 0 {
		img = imaging.Blur(img, blurSigma(blurLevel))
	}

	path := c.Path(url)
	if err := imaging.Save(img, path, imaging.JPEGQuality(jpegQuality)); err != nil {
		return "", &ImageProcessingError{Source: path, Err: err}
	}

	c.mu.Lock()
	c.session = append(c.session, path)
	c.mu.Unlock()

	return path, nil
}

// CleanupSession removes the files recorded by earlier fetches. Missing files
// are a no-op.
func (c *Cache) CleanupSession() {
	c.mu.Lock()
	files := c.session
	c.session = nil
	c.mu.Unlock()

	for _, path := range files {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			// Leave it for the next full Clean.
			continue
		}
	}
}

// Clean deletes every regular file under the cache directory and returns how
// many were removed. A missing directory counts as zero.
func (c *Cache) Clean() (int, error) {
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, err
	}

	removed := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if err := os.Remove(filepath.Join(c.dir, entry.Name())); err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return removed, err
		}
		removed++
	}

	c.mu.Lock()
	c.session = nil
	c.mu.Unlock()

	return removed, nil
}

func (c *Cache) download(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &smutbase.NetworkError{URL: url, Err: err}
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &smutbase.NetworkError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &smutbase.NetworkError{URL: url, Status: resp.StatusCode}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &smutbase.NetworkError{URL: url, Err: err}
	}
	return data, nil
}
