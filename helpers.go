package parcels

import (
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// DateFormats are the layouts tried, in order, when parsing a date cell.
var DateFormats = []string{"2006-01-02", "2006-1-2", "2006/01/02", "2006/1/2", "01/02/2006", "1/2/2006",
	"2006-01-02 15:04:05", time.RFC3339}

// missingTokens are the cell values read as missing by FromRecords.
var missingTokens = []string{"", "NA", "NaN", "nan", "NULL", "null"}

// ParseDate parses s using DateFormats.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, format := range DateFormats {
		if dt, e := time.Parse(format, s); e == nil {
			return dt, nil
		}
	}

	return time.Time{}, errors.Wrapf(ErrDate, "cannot parse %q as date", s)
}

// IsMissingToken reports whether a raw cell is read as missing.
func IsMissingToken(s string) bool {
	return has(strings.TrimSpace(s), missingTokens)
}

func parseInt(s string) (int, bool) {
	i, e := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	return int(i), e == nil
}

func parseFloat(s string) (float64, bool) {
	f, e := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return f, e == nil
}

// *********** Other ***********

func has[C comparable](needle C, haystack []C) bool {
	return position(needle, haystack) >= 0
}

func position[C comparable](needle C, haystack []C) int {
	for ind, straw := range haystack {
		if needle == straw {
			return ind
		}
	}

	return -1
}

func validName(name string) bool {
	const illegal = "!@#$%^&*()=+-;:'`/.,>< ~ " + `"`

	return name != "" && !strings.ContainsAny(name, illegal)
}
