package engine

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/emersion/go-ical"
	"github.com/emersion/go-vcard"
	"github.com/google/uuid"
	"github.com/tartampluch/profile-gallery/internal/config"
)

// Clock abstracts time.Now() so exports can be generated for a fixed "today" in tests.
type Clock interface {
	Now() time.Time
}

// RealClock implements Clock using the standard time package.
type RealClock struct{}

// Now returns the current local time.
func (RealClock) Now() time.Time {
	return time.Now()
}

// Export is the calendar and address-book rendition of one profile batch.
type Export struct {
	Calendar  []byte          // text/calendar, one all-day event per profile and year
	Contacts  []byte          // text/vcard, one card per profile
	Birthdays []BirthdayEntry // profiles with a parseable birth date, in batch order
	Today     int             // number of profiles whose birthday is today
}

// Exporter converts a ResultSet into the feeds served by the export server.
type Exporter struct {
	Clock Clock

	// FormatSummary allows the UI to inject localized event titles.
	FormatSummary func(name string, age int) string
}

// Export builds both feeds. Profiles without a parseable birth date are kept
// in the address book (without BDAY) and left out of the calendar.
func (e *Exporter) Export(ctx context.Context, rs ResultSet) (*Export, error) {
	start := time.Now()
	log := slog.With(config.LogKeyComponent, config.CompExporter)

	clock := e.Clock
	if clock == nil {
		clock = RealClock{}
	}
	now := clock.Now()

	cal := newCalendar(now)
	dtStampProp := ical.NewProp(config.PropDTStamp)
	dtStampProp.SetDateTime(now.UTC())

	var contacts bytes.Buffer
	enc := vcard.NewEncoder(&contacts)

	out := &Export{}
	for _, p := range rs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if p == nil {
			continue
		}

		uid := profileUID(p)
		name := p.FullName()
		if name == "" {
			name = config.FallbackName
		}

		birthDate, dateErr := ParseBirthDate(p.DOB.Date)
		if err := enc.Encode(buildVCard(p, uid, birthDate, dateErr == nil)); err != nil {
			return nil, fmt.Errorf("%s: %w", config.ErrVCardEncode, err)
		}

		if dateErr != nil {
			log.Debug(config.MsgSkippedDate, config.LogKeyValue, p.DOB.Date)
			continue
		}

		nextOcc, ageNext := calculateNextOccurrence(now, birthDate)
		out.Birthdays = append(out.Birthdays, BirthdayEntry{
			UID:            uid,
			Name:           name,
			DateOfBirth:    birthDate,
			NextOccurrence: nextOcc,
			AgeNext:        ageNext,
		})

		events, isToday := e.createEvents(name, birthDate, now, uid)
		if isToday {
			out.Today++
			log.Info(config.MsgBdayToday,
				config.LogKeyName, name,
				config.LogKeyDOB, birthDate.Format(config.DateFormatFullDash))
		}
		for _, ev := range events {
			ev.Props.Set(dtStampProp)
			cal.Children = append(cal.Children, ev.Component)
		}
	}

	if len(cal.Children) == 0 {
		out.Calendar = []byte(config.StubVCalendar)
	} else {
		var buf bytes.Buffer
		if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
			return nil, fmt.Errorf("%s: %w", config.ErrICalEncode, err)
		}
		out.Calendar = buf.Bytes()
	}
	out.Contacts = contacts.Bytes()

	log.Info(config.MsgExportDone,
		slog.Group(config.LogKeyStats,
			slog.Int(config.LogKeyTotal, len(rs)),
			slog.Int(config.LogKeyEvents, len(cal.Children)),
			slog.Int(config.LogKeyToday, out.Today),
		),
		config.LogKeyDuration, time.Since(start).Milliseconds(),
	)
	return out, nil
}

// newCalendar returns a VCALENDAR with the standard headers set.
func newCalendar(now time.Time) *ical.Calendar {
	cal := ical.NewCalendar()
	cal.Props.SetText(config.PropVersion, config.ICalVersion)
	cal.Props.SetText(config.PropProdid, config.ICalProdid)
	cal.Props.SetText(config.PropXWRCalName, config.ICalCalName)
	cal.Props.SetText(config.PropCalScale, config.ICalScale)
	cal.Props.SetText(config.PropMethod, config.ICalMethod)

	// RFC 7986 refresh hint.
	refreshProp := ical.NewProp(config.PropRefresh)
	refreshProp.SetDuration(config.DefaultICalRefresh)
	cal.Props.Set(refreshProp)
	return cal
}

// profileUID derives a stable identifier so repeated exports of the same
// profile produce the same calendar and vCard UIDs.
func profileUID(p *Profile) string {
	input := fmt.Sprintf(config.FormatHashInput, config.UIDSalt, p.FullName(), p.Email, p.DOB.Date)
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(input)).String()
}

// buildVCard maps a profile onto a vCard 4.0 card.
func buildVCard(p *Profile, uid string, birthDate time.Time, hasBirthDate bool) vcard.Card {
	card := make(vcard.Card)
	card.SetValue(vcard.FieldVersion, config.VCardVersion)
	card.SetValue(vcard.FieldUID, uid)

	fn := p.FullName()
	if fn == "" {
		fn = config.FallbackName
	}
	card.SetValue(vcard.FieldFormattedName, fn)
	card.AddName(&vcard.Name{
		GivenName:  p.Name.First,
		FamilyName: p.Name.Last,
	})

	if p.Email != "" {
		card.SetValue(vcard.FieldEmail, p.Email)
	}
	if p.Cell != "" {
		card.Add(vcard.FieldTelephone, &vcard.Field{
			Value:  p.Cell,
			Params: vcard.Params{vcard.ParamType: {vcard.TypeCell}},
		})
	}

	card.AddAddress(&vcard.Address{
		Field:         &vcard.Field{Params: vcard.Params{vcard.ParamType: {vcard.TypeHome}}},
		StreetAddress: p.AddressLine(),
		Locality:      p.Location.City,
		Region:        p.Location.State,
		PostalCode:    string(p.Location.Postcode),
		Country:       p.Location.Country,
	})

	if p.Picture.Large != "" {
		card.SetValue(vcard.FieldPhoto, p.Picture.Large)
	}
	if hasBirthDate {
		card.SetValue(vcard.FieldBirthday, birthDate.Format(config.VCardBDAYBasic))
	}
	return card
}

// calculateNextOccurrence determines the next birthday date relative to 'now'.
func calculateNextOccurrence(now time.Time, birthDate time.Time) (time.Time, int) {
	loc := now.Location()

	// time.Date normalizes Feb 29 to March 1st in non-leap years.
	candidate := time.Date(now.Year(), birthDate.Month(), birthDate.Day(), 0, 0, 0, 0, loc)
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)

	if candidate.Before(todayStart) {
		candidate = time.Date(now.Year()+1, birthDate.Month(), birthDate.Day(), 0, 0, 0, 0, loc)
	}

	return candidate, candidate.Year() - birthDate.Year()
}

// createEvents generates events for the previous, current and next year,
// never before the birth year.
func (e *Exporter) createEvents(name string, birthDate time.Time, now time.Time, uid string) ([]*ical.Event, bool) {
	currentYear := now.Year()
	loc := now.Location()
	todayYear, todayMonth, todayDay := now.Date()

	var events []*ical.Event
	isToday := false

	for _, y := range []int{currentYear - 1, currentYear, currentYear + 1} {
		if y < birthDate.Year() {
			continue
		}

		age := y - birthDate.Year()
		summary := fmt.Sprintf(config.FallbackSummaryAge, name, age)
		if e.FormatSummary != nil {
			summary = e.FormatSummary(name, age)
		}

		event := ical.NewEvent()
		event.Props.SetText(config.PropUID, fmt.Sprintf(config.FormatUID, uid, y, config.ICalDomain))
		event.Props.SetText(config.PropSummary, summary)

		eventDate := time.Date(y, birthDate.Month(), birthDate.Day(), 0, 0, 0, 0, loc)
		if y == todayYear && eventDate.Month() == todayMonth && eventDate.Day() == todayDay {
			isToday = true
		}

		dtStartProp := ical.NewProp(config.PropDTStart)
		dtStartProp.SetDate(eventDate)
		event.Props.Set(dtStartProp)

		events = append(events, event)
	}
	return events, isToday
}
