package filter

import (
	"testing"

	"marketradar/internal"
)

func record(title, condition string, total float64) internal.ProductRecord {
	return internal.ProductRecord{Title: title, Condition: condition, TotalPrice: total, Link: title}
}

func sample() []internal.ProductRecord {
	return []internal.ProductRecord{
		record("Console PS5", "Neuf", 449.99),
		record("Manette DualSense", "Occasion", 39.90),
		record("Écran 27 pouces", "Brand New", 180),
		record("Carte mère pour pièces", "Occasion", 25),
		record("Chargeur HS", "N/A", 10),
		record("Dock de charge", "Occasion", 50),
		record("Casque sans fil", "Neuf", 200),
	}
}

func links(records []internal.ProductRecord) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.Link)
	}
	return out
}

func equalLinks(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestApplyCondition(t *testing.T) {
	tests := []struct {
		name      string
		condition internal.Condition
		want      []string
	}{
		{"all", internal.ConditionAll, links(sample())},
		{"new matches neuf and new labels", internal.ConditionNew, []string{"Console PS5", "Écran 27 pouces", "Casque sans fil"}},
		{"used is everything not new", internal.ConditionUsed, []string{"Manette DualSense", "Carte mère pour pièces", "Chargeur HS", "Dock de charge"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Apply(sample(), internal.FilterState{Condition: tt.condition})
			if !equalLinks(links(got), tt.want) {
				t.Fatalf("got %v, want %v", links(got), tt.want)
			}
		})
	}
}

func TestApplyBandBoundaries(t *testing.T) {
	records := []internal.ProductRecord{
		record("a", "", 49.99),
		record("b", "", 50),
		record("c", "", 200),
		record("d", "", 200.01),
	}
	tests := []struct {
		name string
		band internal.PriceBand
		want []string
	}{
		{"all", internal.BandAll, []string{"a", "b", "c", "d"}},
		// 50 belongs to both LOW and MID, 200 to both MID and HIGH.
		{"low", internal.BandLow, []string{"a", "b"}},
		{"mid", internal.BandMid, []string{"b", "c"}},
		{"high", internal.BandHigh, []string{"c", "d"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Apply(records, internal.FilterState{Band: tt.band})
			if !equalLinks(links(got), tt.want) {
				t.Fatalf("got %v, want %v", links(got), tt.want)
			}
		})
	}
}

func TestApplyHideJunk(t *testing.T) {
	records := []internal.ProductRecord{
		record("Console PS5", "Neuf", 100),
		record("Carte mère pour pièces", "Occasion", 100),
		record("Chargeur", "HS", 100),
		record("Broken screen", "Used", 100),
		// Substring match: "hs" hides this accidental hit too.
		record("Casque Bose QC35 NHS edition", "Occasion", 100),
	}
	got := Apply(records, internal.FilterState{HideJunk: true})
	want := []string{"Console PS5"}
	if !equalLinks(links(got), want) {
		t.Fatalf("got %v, want %v", links(got), want)
	}

	if n := len(Apply(records, internal.FilterState{})); n != len(records) {
		t.Fatalf("junk filter must be off by default, got %d records", n)
	}
}

func TestApplyZoomInclusive(t *testing.T) {
	records := []internal.ProductRecord{
		record("a", "", 19.99),
		record("b", "", 20),
		record("c", "", 60),
		record("d", "", 100),
		record("e", "", 100.01),
	}
	zoom := &internal.ZoomDomain{X: [2]float64{0, 1e12}, Y: [2]float64{20, 100}}
	got := Apply(records, internal.FilterState{Zoom: zoom})
	want := []string{"b", "c", "d"}
	if !equalLinks(links(got), want) {
		t.Fatalf("got %v, want %v (zoom bounds are inclusive)", links(got), want)
	}
}

// The stages form a conjunction, so applying them one at a time in any order
// must land on the same subset as applying them all at once.
func TestApplyStagesOrderIndependent(t *testing.T) {
	full := internal.FilterState{
		Condition: internal.ConditionUsed,
		Band:      internal.BandLow,
		HideJunk:  true,
		Zoom:      &internal.ZoomDomain{Y: [2]float64{5, 45}},
	}
	partials := []internal.FilterState{
		{Condition: full.Condition},
		{Band: full.Band},
		{HideJunk: true},
		{Zoom: full.Zoom},
	}

	want := links(Apply(sample(), full))

	orders := [][]int{
		{0, 1, 2, 3},
		{3, 2, 1, 0},
		{1, 3, 0, 2},
		{2, 0, 3, 1},
	}
	for _, order := range orders {
		out := sample()
		for _, i := range order {
			out = Apply(out, partials[i])
		}
		if !equalLinks(links(out), want) {
			t.Fatalf("order %v: got %v, want %v", order, links(out), want)
		}
	}
}
