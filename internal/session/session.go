// Package session owns the shared dashboard state. Everything runs on a
// single event loop: updates replace values wholesale and no locking is
// involved.
package session

import (
	"marketradar/internal"
	"marketradar/internal/filter"
	"marketradar/internal/metrics"
)

type Session struct {
	batch internal.Batch
	stats internal.AggregateStats

	condition internal.Condition
	band      internal.PriceBand
	hideJunk  bool
	zoom      *internal.ZoomDomain
	hover     string
	lastError string

	hoverObservers []func(link string)
	zoomObservers  []func(*internal.ZoomDomain)
	batchObservers []func(internal.Batch)
}

func New() *Session {
	return &Session{
		batch:     internal.Batch{Records: []internal.ProductRecord{}},
		condition: internal.ConditionAll,
		band:      internal.BandAll,
	}
}

func (s *Session) OnHover(fn func(link string)) { s.hoverObservers = append(s.hoverObservers, fn) }

func (s *Session) OnZoom(fn func(*internal.ZoomDomain)) {
	s.zoomObservers = append(s.zoomObservers, fn)
}

func (s *Session) OnBatch(fn func(internal.Batch)) { s.batchObservers = append(s.batchObservers, fn) }

func (s *Session) ReplaceBatch(batch internal.Batch) {
	if batch.Records == nil {
		batch.Records = []internal.ProductRecord{}
	}
	s.batch = batch
	s.stats = metrics.Compute(batch)
	s.lastError = ""
	for _, fn := range s.batchObservers {
		fn(batch)
	}
}

// The previous batch stays in place on failure.
func (s *Session) Fail(err error) {
	if err == nil {
		return
	}
	s.lastError = err.Error()
}

func (s *Session) SetCondition(c internal.Condition) { s.condition = c }

func (s *Session) SetBand(b internal.PriceBand) { s.band = b }

func (s *Session) SetHideJunk(hide bool) { s.hideJunk = hide }

// Observers fire only when the domain actually changes.
func (s *Session) SetZoom(zoom *internal.ZoomDomain) {
	if zoomEqual(s.zoom, zoom) {
		return
	}
	s.zoom = zoom
	for _, fn := range s.zoomObservers {
		fn(zoom)
	}
}

func (s *Session) ResetZoom() { s.SetZoom(nil) }

func (s *Session) SetHover(link string) {
	if link == s.hover {
		return
	}
	s.hover = link
	for _, fn := range s.hoverObservers {
		fn(link)
	}
}

func (s *Session) ClearHover() { s.SetHover("") }

func (s *Session) Visible() []internal.ProductRecord {
	return filter.Apply(s.batch.Records, s.Filter())
}

func (s *Session) Filter() internal.FilterState {
	return internal.FilterState{
		Condition: s.condition,
		Band:      s.band,
		HideJunk:  s.hideJunk,
		Zoom:      s.zoom,
	}
}

func (s *Session) Records() []internal.ProductRecord { return s.batch.Records }

func (s *Session) Batch() internal.Batch { return s.batch }

func (s *Session) Stats() internal.AggregateStats { return s.stats }

func (s *Session) Zoom() *internal.ZoomDomain { return s.zoom }

func (s *Session) Hover() string { return s.hover }

func (s *Session) LastError() string { return s.lastError }

func zoomEqual(a, b *internal.ZoomDomain) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.X == b.X && a.Y == b.Y
}
