package radar

import "marketradar/internal"

type Semantics string

const (
	PriceOverTime   Semantics = "price_over_time"
	RatingOverPrice Semantics = "rating_over_price"
)

type SharedState interface {
	SetZoom(*internal.ZoomDomain)
	ResetZoom()
	SetHover(link string)
	ClearHover()
}

type dragState int

const (
	idle dragState = iota
	dragging
)

type Controller struct {
	semantics Semantics
	shared    SharedState

	state     dragState
	originX   float64
	originY   float64
	cornerX   float64
	cornerY   float64
	hasCorner bool
}

func NewController(semantics Semantics, shared SharedState) *Controller {
	return &Controller{semantics: semantics, shared: shared}
}

func (c *Controller) Semantics() Semantics { return c.semantics }

func (c *Controller) Dragging() bool { return c.state == dragging }

func (c *Controller) PointerDown(x, y float64) {
	c.state = dragging
	c.originX, c.originY = x, y
	c.hasCorner = false
}

// Hover tracking is active in both states, independent of the drag.
func (c *Controller) PointerMove(x, y float64, overLink string) {
	if c.state == dragging {
		c.cornerX, c.cornerY = x, y
		c.hasCorner = true
	}

	if overLink != "" {
		c.shared.SetHover(overLink)
	} else {
		c.shared.ClearHover()
	}
}

// A selection degenerate on either axis is discarded.
func (c *Controller) PointerUp() *internal.ZoomDomain {
	if c.state != dragging {
		return nil
	}
	c.state = idle

	if !c.hasCorner || c.originX == c.cornerX || c.originY == c.cornerY {
		return nil
	}

	domain := &internal.ZoomDomain{
		X: orderedRange(c.originX, c.cornerX),
		Y: orderedRange(c.originY, c.cornerY),
	}
	c.shared.SetZoom(domain)
	return domain
}

func (c *Controller) Reset() {
	c.state = idle
	c.hasCorner = false
	c.shared.ResetZoom()
}

func (c *Controller) Selection() *internal.ZoomDomain {
	if c.state != dragging || !c.hasCorner {
		return nil
	}
	return &internal.ZoomDomain{
		X: orderedRange(c.originX, c.cornerX),
		Y: orderedRange(c.originY, c.cornerY),
	}
}

func orderedRange(a, b float64) [2]float64 {
	if a <= b {
		return [2]float64{a, b}
	}
	return [2]float64{b, a}
}
