package normalize

import (
	"strconv"
	"strings"
	"time"
)

// ParseAmount parses a raw disclosure amount string into a min/max pair.
// Currency symbols and thousands separators are stripped; a hyphen splits
// the string into a range; a bare numeric value becomes both bounds.
// Unparsable input yields nil for both, never an error.
func ParseAmount(raw string) (min, max *float64) {
	cleaned := strings.NewReplacer("$", "", ",", "", " ", "").Replace(strings.TrimSpace(raw))
	if cleaned == "" {
		return nil, nil
	}

	if i := strings.Index(cleaned, "-"); i > 0 {
		lo, loErr := strconv.ParseFloat(cleaned[:i], 64)
		hi, hiErr := strconv.ParseFloat(cleaned[i+1:], 64)
		if loErr != nil && hiErr != nil {
			return nil, nil
		}
		if loErr == nil {
			min = &lo
		}
		if hiErr == nil {
			max = &hi
		}
		return min, max
	}

	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return nil, nil
	}
	return &v, &v
}

// dateLayouts are the accepted ISO-8601 shapes, most specific first.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseDate parses an ISO-8601 timestamp. A trailing "Z" zone marker is
// honored as UTC; zone-less input is taken as UTC. The zero time and an
// error are returned when nothing matches.
func ParseDate(raw string) (time.Time, error) {
	s := strings.TrimSpace(raw)
	var lastErr error
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t.UTC(), nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

// NormalizeType canonicalizes a raw transaction kind string to one of
// "Buy", "Sell", or "Exchange". Unrecognized kinds pass through trimmed,
// so provenance is preserved for odd source values.
func NormalizeType(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	switch {
	case strings.HasPrefix(s, "purchase"), s == "buy":
		return "Buy"
	case strings.HasPrefix(s, "sale"), s == "sell":
		return "Sell"
	case strings.HasPrefix(s, "exchange"):
		return "Exchange"
	}
	return strings.TrimSpace(raw)
}
