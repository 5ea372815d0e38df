package ingest

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"marketradar/internal"
	"marketradar/internal/util"
)

var (
	priceValuePattern = regexp.MustCompile(`\d+([.,]\d+)?`)
	eurAmountPattern  = regexp.MustCompile(`(\d+([.,]\d+)?)EUR`)
	eurPrefixPattern  = regexp.MustCompile(`EUR(\d+([.,]\d+)?)`)
	soldDatePattern   = regexp.MustCompile(`(?i)Vendu le\s+(\d{1,2}\s+[a-zA-Zéûùà]+\.?\s+\d{4})`)
	bareDatePattern   = regexp.MustCompile(`\d{1,2}\s+[a-zA-Zéûùà]+\.?\s+\d{4}`)
	zeroStockPatterns = []*regexp.Regexp{
		regexp.MustCompile(`0\s*disponible`),
		regexp.MustCompile(`0\s*available`),
		regexp.MustCompile(`quantité\s*:\s*0`),
		regexp.MustCompile(`quantity\s*:\s*0`),
	}
	accessibilityNoise = []string{
		"La page s'ouvre dans une nouvelle fenêtre ou un nouvel onglet",
		"Opens in a new window or tab",
	}
	newListingPrefixes = []string{"Nouvelle annonce", "New Listing"}
	endedPhrases       = []string{
		"vente terminée", "vendu", "plus disponible", "épuisé", "rupture",
		"out of stock", "sold", "ended", "no longer available", "sold out",
	}
)

// FromHTML ingests a saved eBay result page in either result-card markup,
// keeping only listings with a usable price. soldSearch relaxes the
// availability filter, since a sold-listings page is made of ended sales.
func FromHTML(htmlText string, soldSearch bool) (internal.Batch, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlText))
	if err != nil {
		return internal.Batch{}, err
	}

	batch := internal.Batch{Source: internal.SourceEbay, Records: []internal.ProductRecord{}}

	cards := doc.Find(".s-card")
	cardFormat := cards.Length() > 0
	if !cardFormat {
		cards = doc.Find(".s-item")
	}

	track := tracker{}
	cards.Each(func(_ int, card *goquery.Selection) {
		if !listingAvailable(card, soldSearch) {
			return
		}

		title := extractTitle(card, cardFormat)
		if title == "" || strings.Contains(title, "Shop on eBay") || strings.Contains(title, "Boutique sur eBay") {
			return
		}

		price := extractPrice(card)
		track.observe(price, 0)
		if price == 0 {
			return
		}

		date := extractDate(card)
		record := internal.ProductRecord{
			Title:      title,
			Price:      price,
			Shipping:   0,
			TotalPrice: price,
			Date:       date,
			Condition:  extractCondition(card),
			Timestamp:  util.ParseFrenchDate(date),
			Link:       extractLink(card),
			Image:      extractImage(card),
		}
		batch.Records = append(batch.Records, record)
	})

	track.fill(&batch)
	return batch, nil
}

func listingAvailable(card *goquery.Selection, soldSearch bool) bool {
	text := strings.ToLower(normalizeSpaces(card.Text()))

	if strings.Contains(text, "shop on ebay") || strings.Contains(text, "boutique sur ebay") {
		return false
	}

	if soldSearch {
		return true
	}

	if card.Find(".s-item__ended-date").Length() > 0 {
		return false
	}

	detail := card.Find(".s-item__detail, .s-card__subtitle, .s-item__subtitle")
	unavailable := false
	detail.Each(func(_ int, d *goquery.Selection) {
		detailText := strings.ToLower(strings.TrimSpace(d.Text()))
		for _, phrase := range endedPhrases {
			if strings.Contains(detailText, phrase) {
				unavailable = true
			}
		}
	})
	if unavailable {
		return false
	}

	for _, pattern := range zeroStockPatterns {
		if pattern.MatchString(text) {
			return false
		}
	}
	return true
}

func extractTitle(card *goquery.Selection, cardFormat bool) string {
	var elem *goquery.Selection
	if cardFormat {
		elem = card.Find(".s-card__title").First()
	} else {
		elem = card.Find(".s-item__title").First()
		if elem.Length() == 0 {
			elem = card.Find("h3").First()
		}
	}
	if elem.Length() == 0 {
		return ""
	}

	title := strings.TrimSpace(elem.Text())
	for _, noise := range accessibilityNoise {
		title = strings.ReplaceAll(title, noise, "")
	}
	for _, prefix := range newListingPrefixes {
		title = strings.TrimPrefix(strings.TrimSpace(title), prefix)
	}
	return strings.TrimSpace(title)
}

func extractPrice(card *goquery.Selection) float64 {
	elem := card.Find(".s-item__price, .s-card__price, .POSITIVE, .STRIKETHROUGH").First()
	if elem.Length() > 0 {
		clean := strings.NewReplacer(" ", "", " ", "", "EUR", "", "€", "").Replace(strings.TrimSpace(elem.Text()))
		if match := priceValuePattern.FindString(clean); match != "" {
			if v := util.ParseLocaleNumber(match); v > 0 {
				return v
			}
		}
	}

	// No price element: look for a bare EUR amount in the card text.
	compact := strings.NewReplacer(" ", "", " ", "").Replace(card.Text())
	if m := eurAmountPattern.FindStringSubmatch(compact); m != nil {
		return util.ParseLocaleNumber(m[1])
	}
	if m := eurPrefixPattern.FindStringSubmatch(compact); m != nil {
		return util.ParseLocaleNumber(m[1])
	}
	return 0
}

func extractDate(card *goquery.Selection) string {
	elem := card.Find(".s-item__caption, .s-item__detail--secondary, .s-item__ended-date").First()
	text := card.Text()
	if elem.Length() > 0 {
		text = elem.Text()
	}

	if m := soldDatePattern.FindStringSubmatch(text); m != nil {
		return normalizeSpaces(m[1])
	}
	if m := bareDatePattern.FindString(text); m != "" {
		return normalizeSpaces(m)
	}
	return "N/A"
}

func extractCondition(card *goquery.Selection) string {
	elem := card.Find(".s-card__subtitle, .SECONDARY_INFO, .s-item__subtitle, .s-item__detail--secondary").First()
	if elem.Length() > 0 {
		cond := strings.TrimSpace(elem.Text())
		if idx := strings.Index(cond, "|"); idx >= 0 {
			cond = strings.TrimSpace(cond[:idx])
		}
		if cond != "" && len(cond) < 50 {
			return cond
		}
	}

	text := strings.ToLower(card.Text())
	switch {
	case strings.Contains(text, "neuf") || strings.Contains(text, "brand new"):
		return "Neuf"
	case strings.Contains(text, "occasion") || strings.Contains(text, "pre-owned"):
		return "Occasion"
	case strings.Contains(text, "reconditionné") || strings.Contains(text, "refurbished"):
		return "Reconditionné"
	case strings.Contains(text, "pièces") || strings.Contains(text, "parts") || strings.Contains(text, "broken"):
		return "Pour pièces"
	}
	return "N/A"
}

func extractLink(card *goquery.Selection) string {
	elem := card.Find("a.s-card__link").First()
	if elem.Length() == 0 {
		elem = card.Find("a.s-item__link").First()
	}
	if elem.Length() == 0 {
		elem = card.Find("a").First()
	}
	href, ok := elem.Attr("href")
	if !ok || href == "" {
		return "#"
	}
	if idx := strings.Index(href, "?"); idx >= 0 {
		href = href[:idx]
	}
	return href
}

func extractImage(card *goquery.Selection) string {
	img := card.Find("img").First()
	if img.Length() == 0 {
		return "N/A"
	}
	src, ok := img.Attr("src")
	if !ok || src == "" {
		src, ok = img.Attr("data-src")
		if !ok || src == "" {
			return "N/A"
		}
	}
	src = strings.ReplaceAll(src, "s-l225.jpg", "s-l500.jpg")
	return strings.ReplaceAll(src, "s-l140.webp", "s-l500.webp")
}

func normalizeSpaces(input string) string {
	return strings.Join(strings.Fields(input), " ")
}
