package engine_test

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/emersion/go-vcard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/profile-gallery/internal/config"
	"github.com/tartampluch/profile-gallery/internal/engine"
)

// MockClock controls time for deterministic testing.
type MockClock struct {
	CurrentTime time.Time
}

func (m MockClock) Now() time.Time {
	return m.CurrentTime
}

func exportFixture() engine.ResultSet {
	return engine.ResultSet{
		{
			Name:  engine.Name{First: "Ana", Last: "Silva"},
			Email: "ana.silva@example.com",
			Cell:  "(11) 9876-5432",
			Location: engine.Location{
				Street:   engine.Street{Number: 4821, Name: "Rua Principal"},
				City:     "Curitiba",
				State:    "Paraná",
				Postcode: "80010",
				Country:  "Brazil",
			},
			Picture: engine.Picture{Large: "https://randomuser.me/api/portraits/women/1.jpg"},
			DOB:     engine.DOB{Date: "1990-06-01T04:12:55.123Z"},
		},
		{
			Name: engine.Name{First: "Bob", Last: "Ana"},
			DOB:  engine.DOB{Date: "not a date"},
		},
	}
}

func TestExport_CalendarAndContacts(t *testing.T) {
	// Today is Ana's birthday.
	exp := &engine.Exporter{Clock: MockClock{CurrentTime: time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)}}

	out, err := exp.Export(context.Background(), exportFixture())
	require.NoError(t, err)

	assert.Equal(t, 1, out.Today)

	// Calendar: three years for Ana, nothing for Bob.
	ics := string(out.Calendar)
	assert.Contains(t, ics, "BEGIN:VCALENDAR")
	assert.Contains(t, ics, "X-WR-CALNAME:"+config.ICalCalName)
	assert.Equal(t, 3, strings.Count(ics, "BEGIN:VEVENT"))
	assert.Contains(t, ics, "DTSTART;VALUE=DATE:20240601")
	assert.Contains(t, ics, "DTSTART;VALUE=DATE:20250601")
	assert.Contains(t, ics, "DTSTART;VALUE=DATE:20260601")
	assert.Contains(t, ics, "SUMMARY:Birthday: Ana Silva (35)")
	assert.NotContains(t, ics, "Bob Ana")

	// Contacts: one card per profile, including the one without a usable date.
	dec := vcard.NewDecoder(bytes.NewReader(out.Contacts))
	var cards []vcard.Card
	for {
		card, err := dec.Decode()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		cards = append(cards, card)
	}
	require.Len(t, cards, 2)

	ana := cards[0]
	assert.Equal(t, "Ana Silva", ana.PreferredValue(vcard.FieldFormattedName))
	assert.Equal(t, "ana.silva@example.com", ana.PreferredValue(vcard.FieldEmail))
	assert.Equal(t, "(11) 9876-5432", ana.PreferredValue(vcard.FieldTelephone))
	assert.Equal(t, "19900601", ana.PreferredValue(vcard.FieldBirthday))
	require.NotNil(t, ana.Address())
	assert.Equal(t, "Curitiba", ana.Address().Locality)
	assert.Equal(t, "80010", ana.Address().PostalCode)

	bob := cards[1]
	assert.Equal(t, "Bob Ana", bob.PreferredValue(vcard.FieldFormattedName))
	assert.Empty(t, bob.PreferredValue(vcard.FieldBirthday))

	// Birthdays table rows only for parseable dates.
	require.Len(t, out.Birthdays, 1)
	assert.Equal(t, "Ana Silva", out.Birthdays[0].Name)
	assert.Equal(t, 35, out.Birthdays[0].AgeNext)
	assert.Equal(t, ana.PreferredValue(vcard.FieldUID), out.Birthdays[0].UID, "vCard and table must share the UID")
}

func TestExport_DeterministicUIDs(t *testing.T) {
	exp := &engine.Exporter{Clock: MockClock{CurrentTime: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}}

	first, err := exp.Export(context.Background(), exportFixture())
	require.NoError(t, err)
	second, err := exp.Export(context.Background(), exportFixture())
	require.NoError(t, err)

	require.Len(t, first.Birthdays, 1)
	assert.Equal(t, first.Birthdays[0].UID, second.Birthdays[0].UID)
	assert.Contains(t, string(second.Calendar), "UID:"+first.Birthdays[0].UID+"-2025@"+config.ICalDomain)
}

func TestExport_NoParseableDates(t *testing.T) {
	exp := &engine.Exporter{Clock: MockClock{CurrentTime: time.Now()}}

	rs := engine.ResultSet{{Name: engine.Name{First: "Nobody"}}}
	out, err := exp.Export(context.Background(), rs)

	require.NoError(t, err)
	assert.Equal(t, config.StubVCalendar, string(out.Calendar), "An empty calendar must still be valid")
	assert.Contains(t, string(out.Contacts), "FN:Nobody")
	assert.Empty(t, out.Birthdays)
	assert.Zero(t, out.Today)
}

func TestExport_BornThisYearSkipsPreviousYear(t *testing.T) {
	exp := &engine.Exporter{
		Clock: MockClock{CurrentTime: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)},
		FormatSummary: func(name string, age int) string {
			return fmt.Sprintf("%s turns %d", name, age)
		},
	}

	rs := engine.ResultSet{{Name: engine.Name{First: "Baby"}, DOB: engine.DOB{Date: "2025-05-01"}}}
	out, err := exp.Export(context.Background(), rs)
	require.NoError(t, err)

	ics := string(out.Calendar)
	assert.NotContains(t, ics, "DTSTART;VALUE=DATE:20240501")
	assert.Contains(t, ics, "DTSTART;VALUE=DATE:20250501")
	assert.Contains(t, ics, "SUMMARY:Baby turns 0")
	assert.Contains(t, ics, "SUMMARY:Baby turns 1")
}

func TestExport_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	exp := &engine.Exporter{}
	_, err := exp.Export(ctx, exportFixture())

	assert.ErrorIs(t, err, context.Canceled)
}
