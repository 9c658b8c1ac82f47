package engine

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/tartampluch/profile-gallery/internal/config"
)

// ErrInvalidPattern is returned by Filter when the query is not a valid regular expression.
var ErrInvalidPattern = errors.New(config.ErrInvalidPattern)

// Filter returns the profiles whose first or last name matches query,
// as a case-insensitive regular expression, in their original order.
// An empty query matches every profile. The returned slice shares the profile pointers.
func Filter(query string, rs ResultSet) (ResultSet, error) {
	re, err := regexp.Compile(config.CaseInsensitiveFlag + query)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPattern, err)
	}

	out := make(ResultSet, 0, len(rs))
	for _, p := range rs {
		if p == nil {
			continue
		}
		if re.MatchString(p.Name.First) || re.MatchString(p.Name.Last) {
			out = append(out, p)
		}
	}
	return out, nil
}
