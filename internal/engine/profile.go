package engine

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/tartampluch/profile-gallery/internal/config"
)

// Profile is one person as returned by the profile API.
// The field layout mirrors the wire format so the batch decodes in one pass.
type Profile struct {
	Name     Name     `json:"name"`
	Email    string   `json:"email"`
	Cell     string   `json:"cell"`
	Location Location `json:"location"`
	Picture  Picture  `json:"picture"`
	DOB      DOB      `json:"dob"`
}

// Name holds the identity fields. Uniqueness is not guaranteed by the API.
type Name struct {
	First string `json:"first"`
	Last  string `json:"last"`
}

// Location is the postal address of a profile.
type Location struct {
	Street   Street   `json:"street"`
	City     string   `json:"city"`
	State    string   `json:"state"`
	Postcode Postcode `json:"postcode"`
	Country  string   `json:"country"`
}

// Street is the first address line.
type Street struct {
	Number int    `json:"number"`
	Name   string `json:"name"`
}

// Picture contains the portrait URLs. Only the large variant is displayed.
type Picture struct {
	Large string `json:"large"`
}

// DOB carries the raw birth date string, e.g. "1993-07-20T09:44:18.674Z".
type DOB struct {
	Date string `json:"date"`
}

// Postcode is a string on the wire for some nationalities and a number for others.
type Postcode string

// UnmarshalJSON accepts both JSON strings and JSON numbers.
func (p *Postcode) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*p = ""
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*p = Postcode(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("%s: %s", config.ErrPostcodeType, string(data))
	}
	*p = Postcode(n.String())
	return nil
}

// ResultSet is the ordered batch returned by one fetch.
// Order is the API response order and is the navigation order of the gallery.
type ResultSet []*Profile

// FullName joins first and last name with a single space, skipping empty parts.
func (p *Profile) FullName() string {
	parts := make([]string, 0, 2)
	if p.Name.First != "" {
		parts = append(parts, p.Name.First)
	}
	if p.Name.Last != "" {
		parts = append(parts, p.Name.Last)
	}
	return strings.Join(parts, config.SepNameParts)
}

// CityCountry is the location line shown on summary cards.
func (p *Profile) CityCountry() string {
	return p.Location.City + config.SepCityCountry + p.Location.Country
}

// AddressLine is the full address line shown in the detail overlay:
// "number street, state postcode".
func (p *Profile) AddressLine() string {
	number := ""
	if p.Location.Street.Number != 0 {
		number = strconv.Itoa(p.Location.Street.Number)
	}
	street := strings.TrimSpace(number + config.SepNameParts + p.Location.Street.Name)
	region := strings.TrimSpace(p.Location.State + config.SepNameParts + string(p.Location.Postcode))
	return street + config.SepCityCountry + region
}
