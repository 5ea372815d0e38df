package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"marketradar/internal"
	"marketradar/internal/backend"
	"marketradar/internal/config"
	"marketradar/internal/export"
	"marketradar/internal/ingest"
	"marketradar/internal/metrics"
	"marketradar/internal/session"
)

func main() {
	cfg, err := config.Load()
	must(err)

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	switch cmd {
	case "search":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		query := fs.String("query", "", "search term")
		condition := fs.String("condition", "ALL", "ALL|NEW|USED")
		band := fs.String("band", "ALL", "ALL|LOW|MID|HIGH")
		hideJunk := fs.Bool("hide-junk", false, "drop parts/broken listings")
		out := fs.String("out", "", "optional export path (.csv or .xlsx)")
		_ = fs.Parse(os.Args[2:])
		if strings.TrimSpace(*query) == "" {
			must(fmt.Errorf("--query is required"))
		}

		sess := session.New()
		client := backend.NewClient(cfg)
		must(sess.SearchSold(context.Background(), client, *query))
		configureFilters(sess, *condition, *band, *hideJunk)
		report(sess, cfg)
		exportVisible(sess, cfg, *out)

	case "value:search":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		query := fs.String("query", "", "search term")
		out := fs.String("out", "", "optional export path (.csv or .xlsx)")
		_ = fs.Parse(os.Args[2:])
		if strings.TrimSpace(*query) == "" {
			must(fmt.Errorf("--query is required"))
		}

		sess := session.New()
		client := backend.NewClient(cfg)
		must(sess.SearchValue(context.Background(), client, *query))
		reportValue(sess)
		exportVisible(sess, cfg, *out)

	case "load":
		sess := session.New()
		client := backend.NewClient(cfg)
		found, err := sess.LoadCached(context.Background(), client)
		must(err)
		if !found {
			fmt.Println("no cached data yet")
			return
		}
		reportValue(sess)

	case "analyze":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		input := fs.String("input", "", "input file path")
		format := fs.String("format", "csv", "csv|json|html")
		source := fs.String("source", "ebay", "ebay|amazon")
		sold := fs.Bool("sold", true, "html input is a sold-listings page")
		condition := fs.String("condition", "ALL", "ALL|NEW|USED")
		band := fs.String("band", "ALL", "ALL|LOW|MID|HIGH")
		hideJunk := fs.Bool("hide-junk", false, "drop parts/broken listings")
		out := fs.String("out", "", "optional export path (.csv or .xlsx)")
		_ = fs.Parse(os.Args[2:])
		if strings.TrimSpace(*input) == "" {
			must(fmt.Errorf("--input is required"))
		}

		batch, err := ingestFile(*input, *format, *source, *sold)
		must(err)

		sess := session.New()
		sess.ReplaceBatch(batch)
		configureFilters(sess, *condition, *band, *hideJunk)
		if batch.Source == internal.SourceAmazon {
			reportValue(sess)
		} else {
			report(sess, cfg)
		}
		exportVisible(sess, cfg, *out)

	default:
		usage()
		os.Exit(1)
	}
}

func ingestFile(path, format, source string, sold bool) (internal.Batch, error) {
	blob, err := os.ReadFile(path)
	if err != nil {
		return internal.Batch{}, err
	}

	switch format {
	case "csv":
		return ingest.FromCSV(string(blob), internal.RecordSource(source)), nil
	case "json":
		return ingest.FromJSON(blob, internal.RecordSource(source))
	case "html":
		return ingest.FromHTML(string(blob), sold)
	default:
		return internal.Batch{}, fmt.Errorf("unsupported format: %s", format)
	}
}

func configureFilters(sess *session.Session, condition, band string, hideJunk bool) {
	sess.SetCondition(internal.Condition(strings.ToUpper(condition)))
	sess.SetBand(internal.PriceBand(strings.ToUpper(band)))
	sess.SetHideJunk(hideJunk)
}

func report(sess *session.Session, cfg config.Config) {
	stats := sess.Stats()
	visible := sess.Visible()

	fmt.Printf("items=%d visible=%d avg=%.2f€ min=%.2f€ max=%.2f€\n",
		stats.Count, len(visible), stats.AveragePrice, stats.MinPrice, stats.MaxPrice)

	deals := 0
	for _, r := range visible {
		if metrics.GoodDeal(r, stats.AveragePrice, cfg.DealThreshold) {
			deals++
		}
	}
	if deals > 0 {
		fmt.Printf("good deals (<%.0f%% of average): %d\n", cfg.DealThreshold*100, deals)
	}
}

func reportValue(sess *session.Session) {
	stats := sess.Stats()
	visible := sess.Visible()

	fmt.Printf("items=%d visible=%d signal=%.1f%% ceiling=%.2f€ floor=%.2f€\n",
		stats.Count, len(visible), stats.SignalIntegrity, stats.MarketCeiling, stats.MarketFloor)

	top := metrics.TopByValueScore(visible, 5)
	for i, r := range top {
		fmt.Printf("  %d. score=%.1f price=%.2f€ rating=%.1f %s\n", i+1, r.ValueScore, r.Price, r.Rating, r.Title)
	}
}

func exportVisible(sess *session.Session, cfg config.Config, out string) {
	if strings.TrimSpace(out) == "" {
		return
	}

	records := sess.Visible()
	path := out
	if !filepath.IsAbs(path) {
		path = filepath.Join(cfg.OutputDir, path)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		must(export.WriteXLSX(records, path))
	default:
		must(os.MkdirAll(filepath.Dir(path), 0o755))
		f, err := os.Create(path)
		must(err)
		defer f.Close()
		must(export.WriteCSV(f, records))
	}
	fmt.Printf("exported %d rows to %s\n", len(records), path)
}

func usage() {
	fmt.Println("usage: radar <command>")
	fmt.Println("commands:")
	fmt.Println("  search --query=... [--condition=ALL|NEW|USED] [--band=ALL|LOW|MID|HIGH] [--hide-junk] [--out=...]")
	fmt.Println("  value:search --query=... [--out=...]")
	fmt.Println("  load")
	fmt.Println("  analyze --input=... --format=csv|json|html [--source=ebay|amazon] [--out=...]")
	fmt.Printf("default export name: %s\n", export.ExportFilename(time.Now()))
}

func must(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
