package ingest

import (
	"encoding/csv"
	"io"
	"strings"

	"marketradar/internal"
	"marketradar/internal/util"
)

// Header spellings across the known dialects: the Amazon generator
// (Nom du Produit, Note, Prix, Ventes, Lien, Statut), the eBay backend dump
// (Nom du Produit, Prix Total, Date de vente, Condition, Image, Lien) and
// re-imports of our own export (Titre, Prix, Livraison, Total, Date, Etat,
// Lien, Image).
var (
	titleProbes     = []string{"nom du produit", "titre", "title"}
	priceProbes     = []string{"prix", "price"}
	shippingProbes  = []string{"livraison", "shipping"}
	ratingProbes    = []string{"note", "rating"}
	dateProbes      = []string{"date"}
	conditionProbes = []string{"condition", "etat", "état", "statut"}
	linkProbes      = []string{"lien", "link"}
	imageProbes     = []string{"image"}
	salesProbes     = []string{"ventes", "sales"}
)

type columnMap struct {
	title     int
	price     int
	shipping  int
	rating    int
	date      int
	condition int
	link      int
	image     int
	sales     int
}

// Rows never fail: a malformed row becomes a zeroed record so the record
// count matches the number of raw input rows.
func FromCSV(text string, source internal.RecordSource) internal.Batch {
	batch := internal.Batch{Source: source, Records: []internal.ProductRecord{}}

	reader := csv.NewReader(strings.NewReader(text))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		return batch
	}
	cols := resolveColumns(header)

	track := tracker{}
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			track.observe(0, 0)
			batch.Records = append(batch.Records, internal.ProductRecord{})
			continue
		}

		price := util.ParseLocaleNumber(pickCell(row, cols.price))
		shipping := util.ParseLocaleNumber(pickCell(row, cols.shipping))
		rating := util.ParseLocaleNumber(pickCell(row, cols.rating))
		date := pickCell(row, cols.date)

		record := internal.ProductRecord{
			Title:      pickCell(row, cols.title),
			Price:      price,
			Shipping:   shipping,
			TotalPrice: price + shipping,
			Date:       date,
			Condition:  pickCell(row, cols.condition),
			Timestamp:  util.ParseFrenchDate(date),
			Link:       pickCell(row, cols.link),
			Image:      pickCell(row, cols.image),
			Rating:     rating,
			Sales:      pickCell(row, cols.sales),
			ValueScore: valueScore(rating, price),
		}

		track.observe(price, rating)
		batch.Records = append(batch.Records, record)
	}

	track.fill(&batch)
	return batch
}

func resolveColumns(header []string) columnMap {
	norm := make([]string, 0, len(header))
	for _, h := range header {
		norm = append(norm, strings.ToLower(strings.TrimSpace(h)))
	}
	return columnMap{
		title:     findHeaderIndex(norm, titleProbes),
		price:     findHeaderIndex(norm, priceProbes),
		shipping:  findHeaderIndex(norm, shippingProbes),
		rating:    findHeaderIndex(norm, ratingProbes),
		date:      findHeaderIndex(norm, dateProbes),
		condition: findHeaderIndex(norm, conditionProbes),
		link:      findHeaderIndex(norm, linkProbes),
		image:     findHeaderIndex(norm, imageProbes),
		sales:     findHeaderIndex(norm, salesProbes),
	}
}

func findHeaderIndex(headers []string, probes []string) int {
	for i, h := range headers {
		for _, probe := range probes {
			if strings.Contains(h, probe) {
				return i
			}
		}
	}
	return -1
}

func pickCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
