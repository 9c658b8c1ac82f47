package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/profile-gallery/internal/config"
	"github.com/tartampluch/profile-gallery/internal/engine"
)

// profileCard is the summary tile of one profile. Tapping anywhere on it
// opens the detail overlay.
type profileCard struct {
	widget.BaseWidget

	index   int
	profile *engine.Profile
	picture *canvas.Image
	name    *widget.Label
	email   *widget.Label
	city    *widget.Label

	OnTapped func()
}

var _ fyne.Tappable = (*profileCard)(nil)

func newProfileCard(index int, p *engine.Profile, capitalize func(string) string) *profileCard {
	c := &profileCard{
		index:   index,
		profile: p,
		picture: newPortrait(config.CardPictureSize),
		name:    widget.NewLabelWithStyle(capitalize(p.FullName()), fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		email:   widget.NewLabel(p.Email),
		city:    widget.NewLabel(capitalize(p.CityCountry())),
	}
	c.name.Truncation = fyne.TextTruncateEllipsis
	c.email.Truncation = fyne.TextTruncateEllipsis
	c.city.Truncation = fyne.TextTruncateEllipsis
	c.ExtendBaseWidget(c)
	return c
}

func (c *profileCard) Tapped(*fyne.PointEvent) {
	if c.OnTapped != nil {
		c.OnTapped()
	}
}

func (c *profileCard) CreateRenderer() fyne.WidgetRenderer {
	info := container.NewVBox(c.name, c.email, c.city)
	body := container.NewBorder(nil, nil, container.NewCenter(c.picture), nil, info)
	return widget.NewSimpleRenderer(widget.NewCard("", "", body))
}

// newPortrait returns a square image showing the placeholder avatar until
// the real picture arrives.
func newPortrait(size float32) *canvas.Image {
	img := canvas.NewImageFromResource(theme.AccountIcon())
	img.FillMode = canvas.ImageFillContain
	img.SetMinSize(fyne.NewSquareSize(size))
	return img
}

// renderCard appends the card of the profile at position index of the
// rendered sequence.
func (app *GalleryApp) renderCard(index int, p *engine.Profile) {
	card := newProfileCard(index, p, app.capitalize)
	card.OnTapped = func() {
		app.openOverlay(card.index)
	}
	app.loadPicture(card.picture, p.Picture.Large)
	app.gallery.Add(card)
}
