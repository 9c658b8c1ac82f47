package ui

import (
	"log/slog"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/profile-gallery/internal/config"
)

// settingsWidgets holds the inputs read back on save.
type settingsWidgets struct {
	langSelect *widget.Select
	portEntry  *PortEntry
}

// ShowSettingsWindow displays the preferences dialog (language and export port).
func (app *GalleryApp) ShowSettingsWindow() {
	if app.settingsWindow != nil {
		slog.Debug(config.MsgSettingsFocus, config.LogKeyComponent, config.CompUISet)
		app.settingsWindow.RequestFocus()
		return
	}

	slog.Info(config.MsgSettingsOpen, config.LogKeyComponent, config.CompUISet)
	w := app.App.NewWindow(app.GetMsg(config.TKeyWinSettings))
	app.settingsWindow = w

	sw := &settingsWidgets{}

	sw.langSelect = widget.NewSelect(app.SupportedLanguages, nil)
	sw.langSelect.SetSelected(app.language())

	sw.portEntry = NewPortEntry(app.GetMsg)
	sw.portEntry.SetText(app.Preferences.StringWithFallback(config.PrefServerPort, config.DefaultPort))

	itemLang := widget.NewFormItem(app.GetMsg(config.TKeyLblLanguage), sw.langSelect)
	itemLang.HintText = app.GetMsg(config.TKeyHelpLanguage)

	itemPort := widget.NewFormItem(app.GetMsg(config.TKeyLblPort), sw.portEntry)
	itemPort.HintText = app.GetMsg(config.TKeyHelpPort)

	btnSave := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnSave), theme.DocumentSaveIcon(), func() {
		if err := sw.portEntry.Validate(); err != nil {
			dialog.ShowError(err, w)
			return
		}
		app.saveSettings(sw)
		w.Close()
	})
	btnSave.Importance = widget.HighImportance
	btnCancel := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnCancel), theme.CancelIcon(), w.Close)

	footer := widget.NewLabel(app.GetMsgWith(config.TKeyLblFooter, map[string]interface{}{"Version": config.Version}))
	footer.Alignment = fyne.TextAlignCenter
	footer.TextStyle = fyne.TextStyle{Italic: true}

	content := container.NewPadded(container.NewVBox(
		widget.NewForm(itemLang, itemPort),
		container.NewGridWithColumns(config.LayoutColumnsDouble, btnCancel, btnSave),
		footer,
	))

	w.SetContent(content)
	w.Resize(fyne.NewSize(config.SettingsWindowWidth, content.MinSize().Height))
	w.SetFixedSize(true)
	w.SetOnClosed(func() { app.settingsWindow = nil })
	w.Show()
}

// saveSettings persists the preferences and re-translates the open UI.
// A new port takes effect on the next start.
func (app *GalleryApp) saveSettings(sw *settingsWidgets) {
	slog.Info(config.MsgSettingsSaved,
		config.LogKeyComponent, config.CompUISet,
		config.LogKeyLang, sw.langSelect.Selected,
		config.LogKeyPort, sw.portEntry.Text)

	if sw.langSelect.Selected != "" {
		app.Preferences.SetString(config.PrefLanguage, sw.langSelect.Selected)
	}
	if sw.portEntry.Text != "" {
		app.Preferences.SetString(config.PrefServerPort, sw.portEntry.Text)
	}

	app.UpdateLocalizer()
	if app.Window == nil {
		return
	}
	app.refreshLabels()
	switch {
	case app.loadErr != nil:
		app.setStatus(app.loadErrorMessage())
	case app.results != nil:
		app.Search(app.search.Text)
	}
}
