package stock

import (
	"slices"
	"strings"
)

// Criteria is the search text plus the optional expiry range applied to the
// record set. A zero Criteria matches every named record.
type Criteria struct {
	Search     string
	ExpiryFrom Date // inclusive calendar day
	ExpiryTo   Date // inclusive calendar day
}

// HasRange reports whether both expiry bounds are set.
func (c Criteria) HasRange() bool {
	return c.ExpiryFrom.Valid && c.ExpiryTo.Valid
}

// Match reports whether a single record passes the criteria.
//
// The medicine name must be present and contain the search text,
// case-insensitively. Expiry bounds are inclusive calendar days, compared
// against the day the record shows. A set bound excludes records without an
// expiry date.
func (c Criteria) Match(r Record) bool {
	if r.MedicineName == "" {
		return false
	}
	if c.Search != "" && !strings.Contains(strings.ToLower(r.MedicineName), strings.ToLower(c.Search)) {
		return false
	}
	if c.ExpiryFrom.Valid {
		if !r.ExpiryDate.Valid || r.ExpiryDate.CompareDay(c.ExpiryFrom) < 0 {
			return false
		}
	}
	if c.ExpiryTo.Valid {
		if !r.ExpiryDate.Valid || r.ExpiryDate.CompareDay(c.ExpiryTo) > 0 {
			return false
		}
	}
	return true
}

// Filter returns the records matching c, ordered by ascending expiry date.
// Records sharing an expiry date keep their input order; records without an
// expiry date sort last. The input slice is not modified.
func Filter(records []Record, c Criteria) []Record {
	out := make([]Record, 0, len(records))
	for _, r := range records {
		if c.Match(r) {
			out = append(out, r)
		}
	}
	slices.SortStableFunc(out, compareExpiry)
	return out
}

func compareExpiry(a, b Record) int {
	switch {
	case !a.ExpiryDate.Valid && !b.ExpiryDate.Valid:
		return 0
	case !a.ExpiryDate.Valid:
		return 1
	case !b.ExpiryDate.Valid:
		return -1
	}
	return a.ExpiryDate.CompareDay(b.ExpiryDate)
}
