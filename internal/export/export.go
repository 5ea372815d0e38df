package export

import (
	"encoding/csv"
	"io"
	"net/url"
	"strconv"
	"strings"
	"time"

	"marketradar/internal"
)

// Fixed: downstream spreadsheets depend on these exact headers.
var csvHeaders = []string{"Titre", "Prix", "Livraison", "Total", "Date", "Etat", "Lien", "Image"}

func WriteCSV(w io.Writer, records []internal.ProductRecord) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(csvHeaders); err != nil {
		return err
	}
	for _, r := range records {
		row := []string{
			r.Title,
			formatAmount(r.Price),
			formatAmount(r.Shipping),
			formatAmount(r.TotalPrice),
			r.Date,
			r.Condition,
			r.Link,
			r.Image,
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func ExportFilename(now time.Time) string {
	return "ebay-search-" + now.Format("2006-01-02") + ".csv"
}

// ebay_ps5-console.csv from the domain and search term.
func SourceFilename(rawURL string) string {
	domain := "site"
	term := ""

	if u, err := url.Parse(rawURL); err == nil {
		parts := strings.Split(u.Hostname(), ".")
		if len(parts) >= 2 {
			domain = parts[len(parts)-2]
		}
		query := u.Query()
		term = strings.ReplaceAll(query.Get("_nkw"), " ", "-")
		if term == "" {
			term = strings.ReplaceAll(query.Get("k"), " ", "-")
		}
	}
	if term == "" {
		term = "default"
	}
	return domain + "_" + term + ".csv"
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
