package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/profile-gallery/internal/engine"
)

func sampleResultSet() engine.ResultSet {
	return engine.ResultSet{
		{Name: engine.Name{First: "Ana", Last: "Silva"}, DOB: engine.DOB{Date: "990115-000000"}},
		{Name: engine.Name{First: "Bob", Last: "Ana"}},
		{Name: engine.Name{First: "Carla", Last: "Jensen"}},
		{Name: engine.Name{First: "Diego", Last: "Fernández"}},
	}
}

func names(rs engine.ResultSet) []string {
	out := make([]string, 0, len(rs))
	for _, p := range rs {
		out = append(out, p.FullName())
	}
	return out
}

func TestFilter_MatchesFirstOrLastName(t *testing.T) {
	rs := sampleResultSet()

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"CaseInsensitiveBothFields", "ana", []string{"Ana Silva", "Bob Ana"}},
		{"UpperCaseQuery", "JENS", []string{"Carla Jensen"}},
		{"Substring", "arl", []string{"Carla Jensen"}},
		{"NoMatch", "xyz", []string{}},
		{"Empty", "", []string{"Ana Silva", "Bob Ana", "Carla Jensen", "Diego Fernández"}},
		{"RegexAlternation", "^bob$|^diego$", []string{"Bob Ana", "Diego Fernández"}},
		{"Unicode", "fernández", []string{"Diego Fernández"}},
		{"FullNameSpansFields", "ana silva", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := engine.Filter(tt.query, rs)
			require.NoError(t, err)
			assert.Equal(t, tt.want, names(got))
		})
	}
}

func TestFilter_PreservesOrderAndPointers(t *testing.T) {
	rs := sampleResultSet()

	got, err := engine.Filter("[ae]", rs)
	require.NoError(t, err)

	// Every record has an "a" or an "e" in its first or last name.
	require.Len(t, got, len(rs))
	for i := range rs {
		assert.Same(t, rs[i], got[i], "Filter must reference the original records, not copies")
	}
}

func TestFilter_InvalidPattern(t *testing.T) {
	rs := sampleResultSet()

	for _, q := range []string{"[", "(ana", "a{2,1}", "*"} {
		t.Run(q, func(t *testing.T) {
			assert.NotPanics(t, func() {
				got, err := engine.Filter(q, rs)
				require.Error(t, err)
				assert.ErrorIs(t, err, engine.ErrInvalidPattern)
				assert.Nil(t, got)
			})
		})
	}
}

func TestFilter_EmptyResultSet(t *testing.T) {
	got, err := engine.Filter("ana", nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}
