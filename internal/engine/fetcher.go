package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/tartampluch/profile-gallery/internal/config"
)

// ErrResponseTooLarge is returned while reading a body that outgrows the fetcher's MaxBytes.
var ErrResponseTooLarge = errors.New(config.ErrTooLarge)

// Fetcher retrieves one remote resource. The profile source and the picture
// loader share it; tests substitute a mock.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (io.ReadCloser, error)
}

// HTTPFetcher is the net/http Fetcher used at runtime.
type HTTPFetcher struct {
	Client *http.Client

	// MaxBytes caps every body. Zero or less means config.MaxHTTPResponseSize.
	MaxBytes int64
}

func NewHTTPFetcher() *HTTPFetcher {
	return &HTTPFetcher{
		Client:   &http.Client{Timeout: config.HTTPTimeout},
		MaxBytes: config.MaxHTTPResponseSize,
	}
}

// Fetch GETs targetURL and hands back its body once the server answered 200.
// Reading past MaxBytes fails with ErrResponseTooLarge instead of truncating.
func (f *HTTPFetcher) Fetch(ctx context.Context, targetURL string) (io.ReadCloser, error) {
	u, err := url.Parse(targetURL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrInvalidURL, err)
	}
	if u.Scheme != config.SchemeHTTP && u.Scheme != config.SchemeHTTPS {
		return nil, fmt.Errorf("%s: %s", config.ErrProtocol, u.Scheme)
	}

	// Portrait and API URLs never need their query in the logs.
	log := slog.With(
		slog.String(config.LogKeyComponent, config.CompFetcher),
		slog.String(config.LogKeyURL, u.Scheme+"://"+u.Host+u.Path),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrInvalidURL, err)
	}
	req.Header.Set(config.HeaderUserAgent, config.UserAgent)

	log.Debug(config.MsgFetchRequest)
	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrNetwork, err)
	}

	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		log.Warn(config.ErrBadStatus, slog.Int(config.LogKeyStatus, resp.StatusCode))
		return nil, fmt.Errorf("%s: %d %s", config.ErrBadStatus, resp.StatusCode, resp.Status)
	}

	limit := f.MaxBytes
	if limit <= 0 {
		limit = config.MaxHTTPResponseSize
	}
	return &cappedBody{ReadCloser: resp.Body, limit: limit, left: limit}, nil
}

// cappedBody passes through at most limit bytes, then reports
// ErrResponseTooLarge if the underlying body still has data.
type cappedBody struct {
	io.ReadCloser
	limit int64
	left  int64
}

func (c *cappedBody) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	if c.left <= 0 {
		var extra [1]byte
		n, err := c.ReadCloser.Read(extra[:])
		if n > 0 {
			return 0, fmt.Errorf("%w: over %d bytes", ErrResponseTooLarge, c.limit)
		}
		return 0, err
	}
	if int64(len(p)) > c.left {
		p = p[:c.left]
	}
	n, err := c.ReadCloser.Read(p)
	c.left -= int64(n)
	return n, err
}
