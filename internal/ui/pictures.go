package ui

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"github.com/tartampluch/profile-gallery/internal/config"
	"github.com/tartampluch/profile-gallery/internal/engine"
)

// PictureLoader resolves a portrait URL into an image resource.
type PictureLoader interface {
	Load(ctx context.Context, url string) (fyne.Resource, error)
}

// FetcherPictureLoader downloads portraits through an engine.Fetcher.
// Each URL is downloaded once per session; cards rebuilt by a search wait on
// the download already running or reuse its resource. Failed downloads are
// forgotten so the next render retries them.
type FetcherPictureLoader struct {
	Fetcher engine.Fetcher

	mu      sync.Mutex
	entries map[string]*pictureEntry
}

// pictureEntry is one download; res and err are set before done is closed.
type pictureEntry struct {
	done chan struct{}
	res  fyne.Resource
	err  error
}

func NewPictureLoader(fetcher engine.Fetcher) *FetcherPictureLoader {
	return &FetcherPictureLoader{
		Fetcher: fetcher,
		entries: make(map[string]*pictureEntry),
	}
}

func (l *FetcherPictureLoader) Load(ctx context.Context, url string) (fyne.Resource, error) {
	l.mu.Lock()
	e, ok := l.entries[url]
	if !ok {
		e = &pictureEntry{done: make(chan struct{})}
		l.entries[url] = e
	}
	l.mu.Unlock()

	if ok {
		select {
		case <-e.done:
			return e.res, e.err
		case <-ctx.Done():
			return nil, fmt.Errorf("%s: %w", config.ErrPictureLoad, ctx.Err())
		}
	}

	e.res, e.err = l.download(ctx, url)
	if e.err != nil {
		l.mu.Lock()
		delete(l.entries, url)
		l.mu.Unlock()
	}
	close(e.done)
	return e.res, e.err
}

func (l *FetcherPictureLoader) download(ctx context.Context, url string) (fyne.Resource, error) {
	slog.Debug(config.MsgPictureLoading,
		config.LogKeyComponent, config.CompGallery,
		config.LogKeyURL, url)

	body, err := l.Fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrPictureLoad, err)
	}
	defer func() { _ = body.Close() }()

	data, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrPictureLoad, err)
	}
	return fyne.NewStaticResource(path.Base(url), data), nil
}

// loadPicture fills img in the background. The placeholder stays on failure.
func (app *GalleryApp) loadPicture(img *canvas.Image, url string) {
	if app.Pictures == nil || url == "" {
		return
	}
	go func() {
		res, err := app.Pictures.Load(app.Ctx, url)
		if err != nil {
			slog.Warn(config.ErrPictureLoad,
				config.LogKeyComponent, config.CompGallery,
				config.LogKeyURL, url,
				config.LogKeyError, err)
			return
		}
		fyne.Do(func() {
			img.Resource = res
			img.Refresh()
		})
	}()
}
