package filter

import (
	"strings"

	"marketradar/internal"
)

// Substring match, so an unrelated title containing a token is hidden too.
var junkTokens = []string{"pièce", "hs", "broken"}

func Apply(records []internal.ProductRecord, state internal.FilterState) []internal.ProductRecord {
	out := make([]internal.ProductRecord, 0, len(records))
	for _, r := range records {
		if !matchesCondition(r, state.Condition) {
			continue
		}
		if !matchesBand(r, state.Band) {
			continue
		}
		if state.HideJunk && isJunk(r) {
			continue
		}
		if !withinZoom(r, state.Zoom) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func matchesCondition(r internal.ProductRecord, c internal.Condition) bool {
	if c == internal.ConditionAll || c == "" {
		return true
	}
	label := strings.ToLower(r.Condition)
	isNew := strings.Contains(label, "neuf") || strings.Contains(label, "new")
	if c == internal.ConditionNew {
		return isNew
	}
	return !isNew
}

func matchesBand(r internal.ProductRecord, b internal.PriceBand) bool {
	switch b {
	case internal.BandLow:
		return r.TotalPrice <= 50
	case internal.BandMid:
		return r.TotalPrice >= 50 && r.TotalPrice <= 200
	case internal.BandHigh:
		return r.TotalPrice >= 200
	default:
		return true
	}
}

func isJunk(r internal.ProductRecord) bool {
	title := strings.ToLower(r.Title)
	cond := strings.ToLower(r.Condition)
	for _, token := range junkTokens {
		if strings.Contains(title, token) || strings.Contains(cond, token) {
			return true
		}
	}
	return false
}

func withinZoom(r internal.ProductRecord, zoom *internal.ZoomDomain) bool {
	if zoom == nil {
		return true
	}
	return r.TotalPrice >= zoom.Y[0] && r.TotalPrice <= zoom.Y[1]
}
