package ui

import (
	"log/slog"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/profile-gallery/internal/config"
	"github.com/tartampluch/profile-gallery/internal/engine"
)

// buildMainWindow assembles the search bar, the status line and the card grid.
func (app *GalleryApp) buildMainWindow() {
	app.Window = app.App.NewWindow(app.GetMsg(config.TKeyWinTitle))
	app.Window.Resize(fyne.NewSize(config.MainWindowWidth, config.MainWindowHeight))
	app.Window.SetMaster()

	app.search = widget.NewEntry()
	app.search.OnChanged = app.Search
	app.search.OnSubmitted = app.Search
	app.searchBtn = widget.NewButtonWithIcon("", theme.SearchIcon(), func() {
		app.Search(app.search.Text)
	})

	app.birthBtn = widget.NewButtonWithIcon("", theme.ListIcon(), app.ShowBirthdaysWindow)
	app.settingBtn = widget.NewButtonWithIcon("", theme.SettingsIcon(), app.ShowSettingsWindow)

	app.status = widget.NewLabel("")
	app.status.Alignment = fyne.TextAlignCenter
	app.status.Wrapping = fyne.TextWrapWord

	app.gallery = container.NewGridWrap(fyne.NewSize(config.CardWidth, config.CardHeight))

	searchBar := container.NewBorder(nil, nil, nil,
		container.NewHBox(app.searchBtn, app.birthBtn, app.settingBtn),
		app.search)

	app.Window.SetContent(container.NewBorder(
		container.NewPadded(searchBar), nil, nil, nil,
		container.NewVScroll(container.NewVBox(app.status, app.gallery)),
	))

	app.Window.Canvas().SetOnTypedKey(app.handleKey)
	app.refreshLabels()
	app.setStatus(app.GetMsg(config.TKeyLoading))
}

// refreshLabels re-applies every translated text of the main window.
func (app *GalleryApp) refreshLabels() {
	if app.Window == nil {
		return
	}
	app.Window.SetTitle(app.GetMsg(config.TKeyWinTitle))

	hint := app.GetMsg(config.TKeySearchHint)
	if hint == config.TKeySearchHint {
		hint = config.SearchPlaceholder
	}
	app.search.SetPlaceHolder(hint)
	app.birthBtn.SetText(app.GetMsg(config.TKeyMenuBirthdays))
	app.settingBtn.SetText(app.GetMsg(config.TKeyMenuSettings))
}

// applyBatch installs the result of the single fetch and renders it through
// the current search query. A failed load leaves an empty gallery and a
// static error message.
func (app *GalleryApp) applyBatch(rs engine.ResultSet, err error) {
	if err != nil {
		slog.Error(config.ErrFetchFailed,
			config.LogKeyComponent, config.CompGallery,
			config.LogKeyError, err)

		app.loadErr = err
		app.results = nil
		app.clearGallery()

		app.setStatus(app.loadErrorMessage())
		return
	}

	if rs == nil {
		rs = engine.ResultSet{}
	}
	app.loadErr = nil
	app.results = rs
	app.Search(app.search.Text)
}

// Search filters the loaded batch and re-renders the gallery. Re-rendering
// closes any open overlay since its index refers to the previous sequence.
func (app *GalleryApp) Search(query string) {
	if app.loadErr != nil {
		return
	}

	filtered, err := engine.Filter(query, app.results)
	if err != nil {
		slog.Debug(config.ErrInvalidPattern,
			config.LogKeyComponent, config.CompGallery,
			config.LogKeyQuery, query,
			config.LogKeyError, err)
		app.renderProfiles(nil)
		app.setStatus(app.GetMsg(config.TKeyInvalidSearch))
		return
	}

	app.renderProfiles(filtered)

	slog.Debug(config.MsgSearchApplied,
		config.LogKeyComponent, config.CompGallery,
		config.LogKeyQuery, query,
		config.LogKeyVisible, len(filtered),
		config.LogKeyTotal, len(app.results))

	switch {
	case app.results == nil:
		// Batch not arrived yet, keep the loading status.
	case len(filtered) == 0:
		app.setStatus(app.GetMsg(config.TKeyNoMatch))
	default:
		app.setStatus("")
	}
}

// renderProfiles replaces the gallery with one card per profile, in order.
// The rendered sequence becomes the navigation order of the overlay.
func (app *GalleryApp) renderProfiles(seq engine.ResultSet) {
	app.clearGallery()
	app.visible = seq
	for i, p := range seq {
		app.renderCard(i, p)
	}
	app.gallery.Refresh()

	slog.Debug(config.MsgGalleryRender,
		config.LogKeyComponent, config.CompGallery,
		config.LogKeyCount, len(seq))
}

// clearGallery removes every card and the overlay that may point at one.
func (app *GalleryApp) clearGallery() {
	app.closeOverlay()
	app.gallery.RemoveAll()
	app.visible = nil
}

func (app *GalleryApp) loadErrorMessage() string {
	msg := app.GetMsg(config.TKeyLoadError)
	if msg == config.TKeyLoadError {
		return config.FallbackLoadError
	}
	return msg
}

func (app *GalleryApp) setStatus(text string) {
	app.status.SetText(text)
	if text == "" {
		app.status.Hide()
	} else {
		app.status.Show()
	}
}

// handleKey drives the overlay from the keyboard when no widget has focus.
func (app *GalleryApp) handleKey(ev *fyne.KeyEvent) {
	if app.overlay == nil {
		return
	}
	switch ev.Name {
	case fyne.KeyEscape:
		app.closeOverlay()
	case fyne.KeyLeft:
		app.navigateOverlay(-1)
	case fyne.KeyRight:
		app.navigateOverlay(1)
	}
}
