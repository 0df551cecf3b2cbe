package logo

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/apogeu/crmdocs"
)

// Fetcher retrieves the raw bytes of a logo.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// HTTPFetcher downloads logos over HTTP(S).
type HTTPFetcher struct {
	Client   *http.Client
	MaxBytes int64
}

// NewHTTPFetcher returns a fetcher whose requests time out after timeout.
func NewHTTPFetcher(timeout time.Duration) *HTTPFetcher {
	return &HTTPFetcher{
		Client:   &http.Client{Timeout: timeout},
		MaxBytes: MaxBytes,
	}
}

// Fetch implements Fetcher.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, crmdocs.Wrap("logo.Fetch", err)
	}
	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, crmdocs.Wrap("logo.Fetch", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, crmdocs.Wrap("logo.Fetch", fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	limit := f.MaxBytes
	if limit <= 0 {
		limit = MaxBytes
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return nil, crmdocs.Wrap("logo.Fetch", err)
	}
	if int64(len(data)) > limit {
		return nil, crmdocs.Wrap("logo.Fetch", crmdocs.ErrImageTooLarge)
	}
	return data, nil
}

// CachedFetcher keeps fetched logo bytes in redis. Redis failures are
// logged and the request goes to the wrapped fetcher.
type CachedFetcher struct {
	next   Fetcher
	rdb    *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewCachedFetcher wraps next with a redis cache.
func NewCachedFetcher(next Fetcher, rdb *redis.Client, ttl time.Duration, logger *zap.Logger) *CachedFetcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachedFetcher{next: next, rdb: rdb, ttl: ttl, logger: logger}
}

func cacheKey(url string) string {
	sum := sha256.Sum256([]byte(url))
	return "crmdocs:logo:" + hex.EncodeToString(sum[:])
}

// Fetch implements Fetcher.
func (c *CachedFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	key := cacheKey(url)
	data, err := c.rdb.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		return data, nil
	case !errors.Is(err, redis.Nil):
		c.logger.Warn("logo cache read failed", zap.String("url", url), zap.Error(err))
	}

	data, err = c.next.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	if err := c.rdb.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.logger.Warn("logo cache write failed", zap.String("url", url), zap.Error(err))
	}
	return data, nil
}

// Load fetches and decodes the logo at url. Any failure is logged and
// yields nil so the document is rendered without a logo.
func Load(ctx context.Context, f Fetcher, url string, logger *zap.Logger) *Image {
	url = strings.TrimSpace(url)
	if url == "" || f == nil {
		return nil
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	data, err := f.Fetch(ctx, url)
	if err != nil {
		logger.Warn("logo fetch failed, rendering without logo", zap.String("url", url), zap.Error(err))
		return nil
	}
	img, err := Decode(data)
	if err != nil {
		logger.Warn("logo decode failed, rendering without logo", zap.String("url", url), zap.Error(err))
		return nil
	}
	return img
}
