package model

import (
	"math"
	"time"

	"github.com/iliyamo/loan-ledger/internal/apperr"
)

// Accepted ISO-8601 shapes. Layouts without a zone are parsed in the local
// zone so every stored timestamp ends up aware.
var dateLayouts = []struct {
	layout string
	zoned  bool
}{
	{time.RFC3339Nano, true},
	{"2006-01-02T15:04:05.999999999", false},
	{"2006-01-02 15:04:05", false},
	{"2006-01-02", false},
}

// ParseDate parses an ISO-8601 timestamp. Naive inputs are assumed to be in
// local time. The field name only affects the error message ('date',
// 'until_date').
func ParseDate(field, value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, apperr.New(apperr.KindInvalidInput, "'%s' field required", field)
	}
	for _, l := range dateLayouts {
		if l.zoned {
			if t, err := time.Parse(l.layout, value); err == nil {
				return t, nil
			}
			continue
		}
		if t, err := time.ParseInLocation(l.layout, value, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, apperr.New(apperr.KindInvalidInput, "Invalid '%s' provided, please use ISO-8601 standard", field)
}

// Round2 rounds to two decimal places, the precision every monetary value
// in the system is kept at.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
