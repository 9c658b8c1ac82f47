package ui

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/widget"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/tartampluch/profile-gallery/internal/config"
	"github.com/tartampluch/profile-gallery/internal/engine"
	"github.com/tartampluch/profile-gallery/internal/server"
)

// ProfileSource is the single-fetch data source of the gallery.
type ProfileSource interface {
	FetchBatch(ctx context.Context) (engine.ResultSet, error)
}

// GalleryApp owns the gallery state and every window of the application.
// Gallery fields are only touched from the Fyne event goroutine.
type GalleryApp struct {
	App         fyne.App
	Window      fyne.Window
	Preferences fyne.Preferences
	I18nBundle  *i18n.Bundle
	Localizer   *i18n.Localizer
	Ctx         context.Context

	Server   *server.ExportServer
	Source   ProfileSource
	Pictures PictureLoader // nil keeps the placeholder portraits
	Clock    engine.Clock

	SupportedLanguages []string

	// Gallery state.
	results    engine.ResultSet // full batch in API order
	visible    engine.ResultSet // last rendered sequence, the navigation order
	loadErr    error
	overlay    *detailOverlay
	gallery    *fyne.Container
	search     *widget.Entry
	searchBtn  *widget.Button
	status     *widget.Label
	birthBtn   *widget.Button
	settingBtn *widget.Button

	// Birthdays State
	BirthdaysMut    sync.RWMutex
	Birthdays       []engine.BirthdayEntry
	birthdaysWindow fyne.Window
	settingsWindow  fyne.Window
}

// NewGalleryApp constructs the application and wires dependencies.
func NewGalleryApp(a fyne.App, ctx context.Context, srv *server.ExportServer, source ProfileSource, pictures PictureLoader) *GalleryApp {
	return &GalleryApp{
		App:                a,
		Preferences:        a.Preferences(),
		Ctx:                ctx,
		Server:             srv,
		Source:             source,
		Pictures:           pictures,
		Clock:              engine.RealClock{},
		SupportedLanguages: config.SupportedLanguages,
		Birthdays:          make([]engine.BirthdayEntry, 0),
	}
}

// Run launches the export server, the single profile fetch and the main UI loop.
func (app *GalleryApp) Run() {
	app.SetupI18n()

	if app.Server != nil {
		go func() {
			if err := app.Server.Start(app.Ctx); err != nil {
				slog.Error(config.ErrServerStartup,
					config.LogKeyError, err,
					config.LogKeyComponent, config.CompUI)

				app.App.SendNotification(fyne.NewNotification(
					config.TitleStartupError,
					fmt.Sprintf(config.MsgPortBusy, app.Server.Port)))
			}
		}()
	}

	app.buildMainWindow()
	go app.LoadGallery(app.Ctx)
	app.Window.ShowAndRun()
}

// LoadGallery performs the one fetch of the batch, renders it, then publishes
// the exports. It runs off the UI goroutine; widget updates go through fyne.Do.
func (app *GalleryApp) LoadGallery(ctx context.Context) {
	rs, err := app.Source.FetchBatch(ctx)
	fyne.Do(func() {
		app.applyBatch(rs, err)
	})
	if err != nil {
		return
	}
	app.publishExports(ctx, rs)
}

// publishExports turns the batch into the calendar and contacts feeds.
// Export failures are logged; the gallery itself is unaffected.
func (app *GalleryApp) publishExports(ctx context.Context, rs engine.ResultSet) {
	exp := &engine.Exporter{
		Clock:         app.Clock,
		FormatSummary: app.buildSummaryFormatter(),
	}

	out, err := exp.Export(ctx, rs)
	if err != nil {
		slog.Error(config.ErrExportFailed,
			config.LogKeyComponent, config.CompUI,
			config.LogKeyError, err)
		return
	}

	app.BirthdaysMut.Lock()
	app.Birthdays = out.Birthdays
	app.BirthdaysMut.Unlock()

	if app.Server == nil {
		return
	}
	for feed, data := range map[server.Feed][]byte{
		server.FeedCalendar: out.Calendar,
		server.FeedContacts: out.Contacts,
	} {
		if err := app.Server.Update(feed, data); err != nil {
			slog.Error(config.ErrExportFailed,
				config.LogKeyComponent, config.CompUI,
				config.LogKeyFeed, string(feed),
				config.LogKeyError, err)
		}
	}
}

// buildSummaryFormatter returns a closure that localizes calendar event titles.
func (app *GalleryApp) buildSummaryFormatter() func(name string, age int) string {
	return func(name string, age int) string {
		msg := app.GetMsgWith(config.TKeyEvtSummaryAge, map[string]interface{}{"Name": name, "Age": age})
		if msg == config.TKeyEvtSummaryAge {
			return fmt.Sprintf(config.FallbackSummaryAge, name, age)
		}
		return msg
	}
}
