package engine_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/profile-gallery/internal/config"
	"github.com/tartampluch/profile-gallery/internal/engine"
)

// -----------------------------------------------------------------------------
// Mocks
// -----------------------------------------------------------------------------

// MockFetcher simulates the network layer using testify/mock.
type MockFetcher struct {
	mock.Mock
}

// Fetch implements the engine.Fetcher interface.
func (m *MockFetcher) Fetch(ctx context.Context, url string) (io.ReadCloser, error) {
	args := m.Called(ctx, url)
	if r := args.Get(0); r != nil {
		return r.(io.ReadCloser), args.Error(1)
	}
	return nil, args.Error(1)
}

// batchJSON is a trimmed API response with one numeric and one string postcode.
const batchJSON = `{
  "results": [
    {
      "name": {"title": "Ms", "first": "Ana", "last": "Silva"},
      "email": "ana.silva@example.com",
      "cell": "(11) 9876-5432",
      "location": {
        "street": {"number": 4821, "name": "Rua Principal"},
        "city": "Curitiba",
        "state": "Paraná",
        "country": "Brazil",
        "postcode": 80010
      },
      "picture": {"large": "https://randomuser.me/api/portraits/women/1.jpg"},
      "dob": {"date": "1999-01-15T04:12:55.123Z", "age": 26}
    },
    {
      "name": {"first": "Bob", "last": "Ana"},
      "email": "bob.ana@example.com",
      "cell": "071-555-0101",
      "location": {
        "street": {"number": 12, "name": "High Street"},
        "city": "Leeds",
        "state": "West Yorkshire",
        "country": "United Kingdom",
        "postcode": "LS1 4AP"
      },
      "picture": {"large": "https://randomuser.me/api/portraits/men/2.jpg"},
      "dob": {"date": "1985-11-03T10:00:00.000Z"}
    }
  ],
  "info": {"seed": "abc", "results": 2, "page": 1, "version": "1.4"}
}`

// -----------------------------------------------------------------------------
// Test Cases
// -----------------------------------------------------------------------------

func TestFetchBatch_Success(t *testing.T) {
	fetcher := new(MockFetcher)
	fetcher.On("Fetch", mock.Anything, "http://profiles.test/api").
		Return(io.NopCloser(strings.NewReader(batchJSON)), nil)

	src := engine.NewSource("http://profiles.test/api", fetcher)
	rs, err := src.FetchBatch(context.Background())

	require.NoError(t, err)
	require.Len(t, rs, 2)

	// Order is the response order.
	assert.Equal(t, "Ana", rs[0].Name.First)
	assert.Equal(t, "Bob", rs[1].Name.First)

	ana := rs[0]
	assert.Equal(t, "ana.silva@example.com", ana.Email)
	assert.Equal(t, "(11) 9876-5432", ana.Cell)
	assert.Equal(t, 4821, ana.Location.Street.Number)
	assert.Equal(t, "Rua Principal", ana.Location.Street.Name)
	assert.Equal(t, engine.Postcode("80010"), ana.Location.Postcode, "Numeric postcode should decode to its string form")
	assert.Equal(t, "https://randomuser.me/api/portraits/women/1.jpg", ana.Picture.Large)
	assert.Equal(t, "1999-01-15T04:12:55.123Z", ana.DOB.Date)

	assert.Equal(t, engine.Postcode("LS1 4AP"), rs[1].Location.Postcode)

	fetcher.AssertExpectations(t)
}

func TestFetchBatch_DefaultURL(t *testing.T) {
	fetcher := new(MockFetcher)
	fetcher.On("Fetch", mock.Anything, config.DefaultAPIURL).
		Return(io.NopCloser(strings.NewReader(`{"results":[]}`)), nil)

	rs, err := engine.NewSource("", fetcher).FetchBatch(context.Background())

	require.NoError(t, err)
	assert.Empty(t, rs)
	fetcher.AssertExpectations(t)
}

func TestFetchBatch_TransportFailure(t *testing.T) {
	cause := errors.New("connection refused")
	fetcher := new(MockFetcher)
	fetcher.On("Fetch", mock.Anything, mock.Anything).Return(nil, cause)

	rs, err := engine.NewSource("http://profiles.test/api", fetcher).FetchBatch(context.Background())

	require.Error(t, err)
	assert.Nil(t, rs)

	var fetchErr *engine.FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, "http://profiles.test/api", fetchErr.URL)
	assert.ErrorIs(t, err, cause, "The underlying cause must be reachable")

	// No retry.
	fetcher.AssertNumberOfCalls(t, "Fetch", 1)
}

func TestFetchBatch_DecodeFailure(t *testing.T) {
	fetcher := new(MockFetcher)
	fetcher.On("Fetch", mock.Anything, mock.Anything).
		Return(io.NopCloser(strings.NewReader(`<html>rate limited</html>`)), nil)

	_, err := engine.NewSource("http://profiles.test/api", fetcher).FetchBatch(context.Background())

	var fetchErr *engine.FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Contains(t, err.Error(), config.ErrDecodeProfiles)
}

func TestFetchBatch_ErrorEnvelope(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantMsg string
	}{
		{"API error object", `{"error":"Uh oh, something has gone wrong."}`, "Uh oh, something has gone wrong."},
		{"Empty object", `{}`, config.ErrNoResults},
		{"Null document", `null`, config.ErrNoResults},
		{"Null results", `{"results":null,"info":{"seed":"x"}}`, config.ErrNoResults},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fetcher := new(MockFetcher)
			fetcher.On("Fetch", mock.Anything, mock.Anything).
				Return(io.NopCloser(strings.NewReader(tt.body)), nil)

			rs, err := engine.NewSource("http://profiles.test/api", fetcher).FetchBatch(context.Background())

			assert.Nil(t, rs)
			var fetchErr *engine.FetchError
			require.ErrorAs(t, err, &fetchErr)
			assert.Equal(t, "http://profiles.test/api", fetchErr.URL)
			assert.Contains(t, err.Error(), config.ErrDecodeProfiles)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestFetchBatch_MissingFetcher(t *testing.T) {
	src := &engine.Source{URL: "http://profiles.test/api"}

	_, err := src.FetchBatch(context.Background())

	var fetchErr *engine.FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Contains(t, err.Error(), config.ErrFetcherMissing)
}

func TestFetchBatch_MissingFieldsAreSoft(t *testing.T) {
	fetcher := new(MockFetcher)
	fetcher.On("Fetch", mock.Anything, mock.Anything).
		Return(io.NopCloser(strings.NewReader(`{"results":[{"name":{"first":"Solo"}}, null]}`)), nil)

	rs, err := engine.NewSource("http://profiles.test/api", fetcher).FetchBatch(context.Background())

	require.NoError(t, err)
	require.Len(t, rs, 2)
	assert.Equal(t, "Solo", rs[0].FullName())
	assert.Empty(t, rs[0].Email)
	assert.NotNil(t, rs[1], "A null entry keeps its slot as an empty profile")
}

func TestPostcode_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want engine.Postcode
	}{
		{"String", `"2000"`, "2000"},
		{"Number", `2000`, "2000"},
		{"Alphanumeric", `"SW1A 1AA"`, "SW1A 1AA"},
		{"Null", `null`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p engine.Postcode
			require.NoError(t, p.UnmarshalJSON([]byte(tt.raw)))
			assert.Equal(t, tt.want, p)
		})
	}

	var p engine.Postcode
	assert.Error(t, p.UnmarshalJSON([]byte(`{"a":1}`)), "Objects are not a valid postcode")
}

func TestProfile_DisplayLines(t *testing.T) {
	p := &engine.Profile{
		Name: engine.Name{First: "Ana", Last: "Silva"},
		Location: engine.Location{
			Street:   engine.Street{Number: 4821, Name: "Rua Principal"},
			City:     "Curitiba",
			State:    "Paraná",
			Postcode: "80010",
			Country:  "Brazil",
		},
	}

	assert.Equal(t, "Ana Silva", p.FullName())
	assert.Equal(t, "Curitiba, Brazil", p.CityCountry())
	assert.Equal(t, "4821 Rua Principal, Paraná 80010", p.AddressLine())

	empty := &engine.Profile{}
	assert.Equal(t, "", empty.FullName())
	assert.Equal(t, ", ", empty.CityCountry())
	assert.Equal(t, ", ", empty.AddressLine())
}
