package ingest

import (
	"encoding/json"

	"marketradar/internal"
	"marketradar/internal/util"
)

type jsonRow struct {
	Title     string  `json:"title"`
	Price     float64 `json:"price"`
	Shipping  float64 `json:"shipping"`
	Date      string  `json:"date"`
	Condition string  `json:"condition"`
	Link      string  `json:"link"`
	Image     string  `json:"image"`
	Rating    float64 `json:"rating"`
	Sales     string  `json:"sales"`
}

// A malformed document is a transport-level failure; individual rows never
// fail.
func FromJSON(blob []byte, source internal.RecordSource) (internal.Batch, error) {
	var rows []jsonRow
	if err := json.Unmarshal(blob, &rows); err != nil {
		return internal.Batch{}, err
	}

	batch := internal.Batch{Source: source, Records: make([]internal.ProductRecord, 0, len(rows))}
	track := tracker{}
	for _, row := range rows {
		record := internal.ProductRecord{
			Title:      row.Title,
			Price:      row.Price,
			Shipping:   row.Shipping,
			TotalPrice: row.Price + row.Shipping,
			Date:       row.Date,
			Condition:  row.Condition,
			Timestamp:  util.ParseFrenchDate(row.Date),
			Link:       row.Link,
			Image:      row.Image,
			Rating:     row.Rating,
			Sales:      row.Sales,
			ValueScore: valueScore(row.Rating, row.Price),
		}
		track.observe(row.Price, row.Rating)
		batch.Records = append(batch.Records, record)
	}

	track.fill(&batch)
	return batch, nil
}
