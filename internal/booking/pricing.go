package booking

import (
	"strconv"
	"strings"
)

// Hourly rates in minor units. Studio A: $75/hr, Studio B: $65/hr.
const (
	studioARateMinor int64 = 7500
	studioBRateMinor int64 = 6500

	// defaultDurationHours applies when the spoken duration cannot be
	// parsed into a positive hour count.
	defaultDurationHours = 2
)

// Quote is the priced outcome of a complete draft.
type Quote struct {
	Studio        Studio
	DurationHours int
	Currency      string

	TotalCostMinor     int64
	DepositAmountMinor int64
}

// ResolveStudio maps a spoken studio value onto the closed room set.
// Matching is an exact, case-insensitive comparison against the two known
// identifiers; anything unrecognized prices as Studio A.
func ResolveStudio(spoken string) Studio {
	switch strings.ToLower(strings.TrimSpace(spoken)) {
	case "studio b", "b":
		return StudioB
	default:
		return StudioA
	}
}

// HourlyRateMinor returns the per-hour rate for a room.
func HourlyRateMinor(s Studio) int64 {
	if s == StudioB {
		return studioBRateMinor
	}
	return studioARateMinor
}

// ParseDurationHours extracts an hour count from a spoken duration
// ("2", "2 hours", "about 3hrs"). Unparsable or non-positive input falls
// back to the default.
func ParseDurationHours(spoken string) int {
	fields := strings.FieldsFunc(spoken, func(r rune) bool {
		return r < '0' || r > '9'
	})
	for _, f := range fields {
		n, err := strconv.Atoi(f)
		if err == nil && n > 0 {
			return n
		}
	}
	return defaultDurationHours
}

// PriceDraft computes the quote for a draft. The deposit is half the total;
// rates are whole dollars so the split is always exact in cents.
func PriceDraft(d BookingDraft) Quote {
	studio := ResolveStudio(d.Studio)
	hours := ParseDurationHours(d.Duration)
	total := HourlyRateMinor(studio) * int64(hours)
	return Quote{
		Studio:             studio,
		DurationHours:      hours,
		Currency:           "USD",
		TotalCostMinor:     total,
		DepositAmountMinor: total / 2,
	}
}
