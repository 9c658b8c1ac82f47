package server

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/tartampluch/profile-gallery/internal/config"
)

// Feed names one export served by the ExportServer.
type Feed string

const (
	FeedCalendar Feed = "calendar"
	FeedContacts Feed = "contacts"
)

// cacheItem stores a rendered export and its metadata for HTTP caching.
type cacheItem struct {
	data         []byte
	etag         string
	lastModified string // RFC1123 format required by HTTP headers
}

// feed is one route of the server. The cache is swapped atomically on update.
type feed struct {
	route    string
	mimeType string
	cache    atomic.Pointer[cacheItem]
}

// ExportServer serves the birthday calendar and the contacts address book
// generated from the current profile batch.
type ExportServer struct {
	Port  string
	feeds map[Feed]*feed // fixed at construction, read-only afterwards
}

// NewExportServer creates a new instance of the server.
func NewExportServer(port string) *ExportServer {
	return &ExportServer{
		Port: port,
		feeds: map[Feed]*feed{
			FeedCalendar: {route: config.RouteCalendar, mimeType: config.MimeTextCalendar},
			FeedContacts: {route: config.RouteContacts, mimeType: config.MimeTextVCard},
		},
	}
}

// Handler returns the router serving every feed.
func (s *ExportServer) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: config.AllowedMethods,
		ExposedHeaders: []string{config.HeaderETag, config.HeaderLastModified},
		MaxAge:         config.CORSMaxAge,
	}))

	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set(config.HeaderAllow, strings.Join(config.AllowedMethods, ", "))
		http.Error(w, config.HTTPMsgMethodNotAll, http.StatusMethodNotAllowed)
	})

	for _, f := range s.feeds {
		h := s.feedHandler(f)
		r.Get(f.route, h)
		r.Head(f.route, h)
	}
	return r
}

// Start initializes the HTTP server and blocks until the context is cancelled.
func (s *ExportServer) Start(ctx context.Context) error {
	if s.Port == "" {
		return errors.New(config.ErrPortRequired)
	}

	srv := &http.Server{
		Addr:         config.LocalhostBindAddr + config.AddrSeparator + s.Port,
		Handler:      s.Handler(),
		ReadTimeout:  config.ServerReadTimeout,
		WriteTimeout: config.ServerWriteTimeout,
		IdleTimeout:  config.ServerIdleTimeout,
	}

	serverError := make(chan error, config.ChannelBufferSize)

	go func() {
		slog.Info(config.MsgServerListen,
			config.LogKeyComponent, config.CompServer,
			config.LogKeyPort, s.Port,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverError <- err
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info(config.MsgServerStop, config.LogKeyComponent, config.CompServer)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("%s: %w", config.ErrServerShutdown, err)
		}
		return nil

	case err := <-serverError:
		return fmt.Errorf("%s: %w", config.ErrServerStartup, err)
	}
}

// Update atomically replaces the content of one feed.
func (s *ExportServer) Update(name Feed, data []byte) error {
	f, ok := s.feeds[name]
	if !ok {
		return fmt.Errorf("%s: %q", config.ErrUnknownFeed, name)
	}

	hash := sha256.Sum256(data)
	item := &cacheItem{
		data:         data,
		etag:         fmt.Sprintf(config.FormatETag, hex.EncodeToString(hash[:])),
		lastModified: time.Now().UTC().Format(http.TimeFormat),
	}
	f.cache.Store(item)

	slog.Debug(config.MsgCacheUpdated,
		config.LogKeyComponent, config.CompServer,
		config.LogKeyFeed, string(name),
		config.LogKeySizeBytes, len(data),
		config.LogKeyETag, item.etag,
	)
	return nil
}

// feedHandler serves one feed with HTTP caching support.
func (s *ExportServer) feedHandler(f *feed) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		item := f.cache.Load()

		// Nothing exported yet: the profile batch is still loading or failed.
		if item == nil {
			w.Header().Set(config.HeaderRetryAfter, config.RetryAfterSeconds)
			http.Error(w, config.HTTPMsgInitializing, http.StatusServiceUnavailable)
			return
		}

		w.Header().Set(config.HeaderContentType, f.mimeType)
		w.Header().Set(config.HeaderXContentType, config.MimeNoSniff)
		w.Header().Set(config.HeaderCacheControl, config.CacheControlPrivate)
		w.Header().Set(config.HeaderETag, item.etag)
		w.Header().Set(config.HeaderLastModified, item.lastModified)

		if match := r.Header.Get(config.HeaderIfNoneMatch); match == item.etag {
			w.WriteHeader(http.StatusNotModified)
			return
		}

		if since := r.Header.Get(config.HeaderIfModifiedSince); since != "" {
			if clientTime, err := time.Parse(http.TimeFormat, since); err == nil {
				if serverTime, err := time.Parse(http.TimeFormat, item.lastModified); err == nil {
					if !serverTime.After(clientTime) {
						w.WriteHeader(http.StatusNotModified)
						return
					}
				}
			}
		}

		if r.Method == http.MethodGet {
			if _, err := io.Copy(w, bytes.NewReader(item.data)); err != nil {
				slog.Error(config.ErrWriteResp,
					config.LogKeyComponent, config.CompServer,
					config.LogKeyFeed, f.route,
					config.LogKeyError, err,
				)
			}
		}
	}
}
