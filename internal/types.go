package internal

type RecordSource string

const (
	SourceEbay   RecordSource = "ebay"
	SourceAmazon RecordSource = "amazon"
)

// Link doubles as record identity; the sources carry no numeric ID.
type ProductRecord struct {
	Title      string  `json:"title"`
	Price      float64 `json:"price"`
	Shipping   float64 `json:"shipping"`
	TotalPrice float64 `json:"totalPrice"`
	Date       string  `json:"date"`
	Condition  string  `json:"condition"`
	Timestamp  int64   `json:"timestamp"`
	Link       string  `json:"link"`
	Image      string  `json:"image,omitempty"`
	Rating     float64 `json:"rating,omitempty"`
	Sales      string  `json:"sales,omitempty"`
	ValueScore float64 `json:"valueScore"`
}

type Batch struct {
	Source            RecordSource
	Records           []ProductRecord
	RowsAttempted     int
	ValidPriceCount   int
	MaxPrice          float64
	MinPriceHighRated float64
}

type AggregateStats struct {
	Count           int
	AveragePrice    float64
	MinPrice        float64
	MaxPrice        float64
	SignalIntegrity float64
	MarketCeiling   float64
	MarketFloor     float64
}

type Condition string

const (
	ConditionAll  Condition = "ALL"
	ConditionNew  Condition = "NEW"
	ConditionUsed Condition = "USED"
)

type PriceBand string

const (
	BandAll  PriceBand = "ALL"
	BandLow  PriceBand = "LOW"
	BandMid  PriceBand = "MID"
	BandHigh PriceBand = "HIGH"
)

// nil means unzoomed.
type ZoomDomain struct {
	X [2]float64 `json:"x"`
	Y [2]float64 `json:"y"`
}

type FilterState struct {
	Condition Condition
	Band      PriceBand
	HideJunk  bool
	Zoom      *ZoomDomain
}
