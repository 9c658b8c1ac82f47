package ui

import (
	"log/slog"
	"sort"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/profile-gallery/internal/config"
	"github.com/tartampluch/profile-gallery/internal/engine"
)

// birthdaySorter orders the birthdays table by the selected column.
type birthdaySorter struct {
	column int
	asc    bool
}

// toggle selects col, flipping the direction when it is already selected.
func (s *birthdaySorter) toggle(col int) {
	if s.column == col {
		s.asc = !s.asc
		return
	}
	s.column = col
	s.asc = true
}

func (s *birthdaySorter) sort(entries []engine.BirthdayEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if !s.asc {
			a, b = b, a
		}
		switch s.column {
		case config.ColIDName:
			return strings.ToLower(a.Name) < strings.ToLower(b.Name)
		case config.ColIDAge:
			return a.AgeNext < b.AgeNext
		default:
			if a.NextOccurrence.Equal(b.NextOccurrence) {
				return a.Name < b.Name
			}
			return a.NextOccurrence.Before(b.NextOccurrence)
		}
	})
}

// ShowBirthdaysWindow lists the upcoming birthday of every loaded profile.
// Only one such window exists; a second request focuses it.
func (app *GalleryApp) ShowBirthdaysWindow() {
	if app.birthdaysWindow != nil {
		app.birthdaysWindow.RequestFocus()
		return
	}

	w := app.App.NewWindow(app.GetMsg(config.TKeyWinBirthdays))
	w.Resize(fyne.NewSize(config.BirthdaysWinWidth, config.BirthdaysWinHeight))
	app.birthdaysWindow = w

	app.BirthdaysMut.RLock()
	entries := make([]engine.BirthdayEntry, len(app.Birthdays))
	copy(entries, app.Birthdays)
	app.BirthdaysMut.RUnlock()

	slog.Info(config.LogMsgOpenWin,
		config.LogKeyComponent, config.CompUI,
		config.LogKeyCount, len(entries))

	sorter := &birthdaySorter{column: config.ColIDDate, asc: true}
	sorter.sort(entries)

	table := widget.NewTable(
		func() (int, int) {
			return len(entries), config.ColCount
		},
		func() fyne.CanvasObject {
			return widget.NewLabel(config.TablePlaceholder)
		},
		func(id widget.TableCellID, o fyne.CanvasObject) {
			if id.Row >= len(entries) {
				return
			}
			o.(*widget.Label).SetText(app.birthdayCell(entries[id.Row], id.Col))
		},
	)

	table.ShowHeaderRow = true
	table.CreateHeader = func() fyne.CanvasObject {
		return widget.NewButton(config.TablePlaceholder, func() {})
	}
	table.UpdateHeader = func(id widget.TableCellID, o fyne.CanvasObject) {
		btn := o.(*widget.Button)
		btn.SetText(app.birthdayHeader(id.Col, sorter))
		btn.OnTapped = func() {
			sorter.toggle(id.Col)
			sorter.sort(entries)
			slog.Debug(config.LogMsgSorted,
				config.LogKeyComponent, config.CompUI,
				config.LogKeySortCol, sorter.column,
				config.LogKeySortAsc, sorter.asc)
			table.Refresh()
		}
	}

	table.SetColumnWidth(config.ColIDName, config.ColWidthName)
	table.SetColumnWidth(config.ColIDDate, config.ColWidthDate)
	table.SetColumnWidth(config.ColIDAge, config.ColWidthAge)

	w.SetContent(table)
	w.SetOnClosed(func() {
		app.birthdaysWindow = nil
	})
	w.Show()
}

func (app *GalleryApp) birthdayHeader(col int, sorter *birthdaySorter) string {
	var key string
	switch col {
	case config.ColIDName:
		key = config.TKeyColName
	case config.ColIDDate:
		key = config.TKeyColDate
	default:
		key = config.TKeyColAge
	}

	text := app.GetMsg(key)
	if col == sorter.column {
		if sorter.asc {
			text += config.SortIconAsc
		} else {
			text += config.SortIconDesc
		}
	}
	return text
}

func (app *GalleryApp) birthdayCell(e engine.BirthdayEntry, col int) string {
	switch col {
	case config.ColIDName:
		return app.capitalize(e.Name)
	case config.ColIDDate:
		format := app.GetMsg(config.TKeyFormatDate)
		if format == config.TKeyFormatDate {
			format = config.DateFormatDisplay
		}
		return e.NextOccurrence.Format(format)
	default:
		return strconv.Itoa(e.AgeNext)
	}
}
