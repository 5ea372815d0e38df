package util

import (
	"strconv"
	"strings"
	"time"
)

// Probed first to last; some names are prefixes of others, so the order is
// load-bearing.
var frenchMonths = []struct {
	name  string
	month time.Month
}{
	{"janv.", time.January},
	{"févr.", time.February},
	{"mars", time.March},
	{"avr.", time.April},
	{"mai", time.May},
	{"juin", time.June},
	{"juil.", time.July},
	{"août", time.August},
	{"sept.", time.September},
	{"oct.", time.October},
	{"nov.", time.November},
	{"déc.", time.December},
	{"janvier", time.January},
	{"février", time.February},
	{"avril", time.April},
	{"juillet", time.July},
	{"novembre", time.November},
	{"décembre", time.December},
}

// ParseFrenchDate falls back to the current time on anything it cannot
// resolve, so callers always get a plottable value.
func ParseFrenchDate(raw string) int64 {
	parts := strings.Fields(raw)
	if len(parts) < 3 {
		return time.Now().UnixMilli()
	}

	day, err := strconv.Atoi(parts[0])
	if err != nil {
		return time.Now().UnixMilli()
	}

	token := strings.Replace(strings.ToLower(parts[1]), ".", "", 1)
	month, ok := matchFrenchMonth(token)
	if !ok {
		return time.Now().UnixMilli()
	}

	year, err := strconv.Atoi(parts[2])
	if err != nil {
		return time.Now().UnixMilli()
	}

	return time.Date(year, month, day, 0, 0, 0, 0, time.Local).UnixMilli()
}

func matchFrenchMonth(token string) (time.Month, bool) {
	for _, m := range frenchMonths {
		bare := strings.Replace(m.name, ".", "", 1)
		if strings.HasPrefix(m.name, token) || strings.HasPrefix(token, bare) {
			return m.month, true
		}
	}
	return 0, false
}
