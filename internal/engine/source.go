package engine

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/tartampluch/profile-gallery/internal/config"
)

// FetchError reports a failed profile batch: transport, status or decode.
// The gallery treats it as fatal to the initial render only.
type FetchError struct {
	URL   string
	Cause error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("%s: %v", config.ErrFetchFailed, e.Cause)
}

func (e *FetchError) Unwrap() error {
	return e.Cause
}

// batchEnvelope is the top level of the API response. Results stays nil
// when the key is absent or null; the API reports its own failures in Error.
type batchEnvelope struct {
	Results *[]*Profile `json:"results"`
	Error   string      `json:"error"`
}

// Source performs the single fetch of the profile batch.
type Source struct {
	URL     string
	Fetcher Fetcher
}

// NewSource creates a Source for the given URL. An empty URL selects config.DefaultAPIURL.
func NewSource(url string, fetcher Fetcher) *Source {
	if url == "" {
		url = config.DefaultAPIURL
	}
	return &Source{URL: url, Fetcher: fetcher}
}

// FetchBatch issues one request and decodes the result set. It never retries.
// Every failure is returned as a *FetchError.
func (s *Source) FetchBatch(ctx context.Context) (ResultSet, error) {
	start := time.Now()
	log := slog.With(config.LogKeyComponent, config.CompSource)
	log.InfoContext(ctx, config.MsgFetchStarted)

	if s.URL == "" {
		return nil, &FetchError{Cause: errors.New(config.ErrSourceURLEmpty)}
	}
	if s.Fetcher == nil {
		return nil, &FetchError{URL: s.URL, Cause: errors.New(config.ErrFetcherMissing)}
	}

	body, err := s.Fetcher.Fetch(ctx, s.URL)
	if err != nil {
		return nil, &FetchError{URL: s.URL, Cause: err}
	}
	defer func() { _ = body.Close() }()

	var env batchEnvelope
	if err := json.NewDecoder(body).Decode(&env); err != nil {
		return nil, &FetchError{URL: s.URL, Cause: fmt.Errorf("%s: %w", config.ErrDecodeProfiles, err)}
	}
	if env.Results == nil {
		reason := config.ErrNoResults
		if env.Error != "" {
			reason = env.Error
		}
		return nil, &FetchError{URL: s.URL, Cause: fmt.Errorf("%s: %s", config.ErrDecodeProfiles, reason)}
	}

	// A null entry in the array decodes to a nil pointer; keep the slot so
	// order is preserved but give renderers something to read.
	results := make(ResultSet, 0, len(*env.Results))
	for _, p := range *env.Results {
		if p == nil {
			p = &Profile{}
		}
		results = append(results, p)
	}

	log.Info(config.MsgFetchDone,
		config.LogKeyCount, len(results),
		config.LogKeyDuration, time.Since(start).Milliseconds(),
	)
	return results, nil
}
