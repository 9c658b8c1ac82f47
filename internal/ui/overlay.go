package ui

import (
	"fmt"
	"log/slog"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/profile-gallery/internal/config"
	"github.com/tartampluch/profile-gallery/internal/engine"
)

// detailOverlay is the modal view of a single profile. Its index points into
// the sequence that was rendered when it was opened.
type detailOverlay struct {
	index   int
	profile *engine.Profile
	popup   *widget.PopUp

	picture  *canvas.Image
	name     *widget.Label
	email    *widget.Label
	city     *widget.Label
	cell     *widget.Label
	address  *widget.Label
	birthday *widget.Label

	closeBtn *widget.Button
	prevBtn  *widget.Button
	nextBtn  *widget.Button
}

// openOverlay shows the detail view of the profile at index in the rendered
// sequence. An already open overlay is closed first.
func (app *GalleryApp) openOverlay(index int) {
	if index < 0 || index >= len(app.visible) {
		return
	}
	app.closeOverlay()

	ov := app.newDetailOverlay(index, app.visible[index])
	app.overlay = ov
	ov.popup.Show()

	slog.Debug(config.MsgOverlayOpen,
		config.LogKeyComponent, config.CompOverlay,
		config.LogKeyIndex, index,
		config.LogKeyName, ov.profile.FullName())
}

// closeOverlay removes the overlay if present. Calling it with nothing open
// is a no-op.
func (app *GalleryApp) closeOverlay() {
	if app.overlay == nil {
		return
	}
	app.overlay.popup.Hide()
	app.overlay = nil

	slog.Debug(config.MsgOverlayClose, config.LogKeyComponent, config.CompOverlay)
}

// navigateOverlay replaces the overlay with its neighbour in the rendered
// sequence. Moving past either end does nothing.
func (app *GalleryApp) navigateOverlay(delta int) {
	if app.overlay == nil {
		return
	}
	target := app.overlay.index + delta
	if target < 0 || target >= len(app.visible) {
		slog.Debug(config.MsgOverlayBound,
			config.LogKeyComponent, config.CompOverlay,
			config.LogKeyIndex, app.overlay.index,
			config.LogKeyDelta, delta)
		return
	}
	app.openOverlay(target)
}

func (app *GalleryApp) newDetailOverlay(index int, p *engine.Profile) *detailOverlay {
	ov := &detailOverlay{
		index:   index,
		profile: p,
		picture: newPortrait(config.OverlayPictureSize),
		name:    widget.NewLabelWithStyle(app.capitalize(p.FullName()), fyne.TextAlignCenter, fyne.TextStyle{Bold: true}),
		email:   widget.NewLabelWithStyle(p.Email, fyne.TextAlignCenter, fyne.TextStyle{}),
		city:    widget.NewLabelWithStyle(app.capitalize(p.Location.City), fyne.TextAlignCenter, fyne.TextStyle{}),
		cell:    widget.NewLabelWithStyle(p.Cell, fyne.TextAlignCenter, fyne.TextStyle{}),
		address: widget.NewLabelWithStyle(p.AddressLine(), fyne.TextAlignCenter, fyne.TextStyle{}),
	}

	birthday := engine.FormatBirthday(p.DOB.Date)
	text := app.GetMsgWith(config.TKeyLblBirthday, map[string]interface{}{"Date": birthday})
	if text == config.TKeyLblBirthday {
		text = fmt.Sprintf(config.FallbackBirthday, birthday)
	}
	ov.birthday = widget.NewLabelWithStyle(text, fyne.TextAlignCenter, fyne.TextStyle{})

	ov.closeBtn = widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnClose), theme.CancelIcon(), app.closeOverlay)
	ov.prevBtn = widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnPrev), theme.NavigateBackIcon(), func() {
		app.navigateOverlay(-1)
	})
	ov.nextBtn = widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnNext), theme.NavigateNextIcon(), func() {
		app.navigateOverlay(1)
	})

	// Boundary buttons stay clickable but look inert.
	if index == 0 {
		ov.prevBtn.Importance = widget.LowImportance
	}
	if index == len(app.visible)-1 {
		ov.nextBtn.Importance = widget.LowImportance
	}

	content := container.NewVBox(
		container.NewBorder(nil, nil, nil, ov.closeBtn),
		container.NewCenter(ov.picture),
		ov.name,
		ov.email,
		ov.city,
		widget.NewSeparator(),
		ov.cell,
		ov.address,
		ov.birthday,
		container.NewGridWithColumns(config.LayoutColumnsDouble, ov.prevBtn, ov.nextBtn),
	)

	app.loadPicture(ov.picture, p.Picture.Large)
	ov.popup = widget.NewModalPopUp(container.NewPadded(content), app.Window.Canvas())
	return ov
}
