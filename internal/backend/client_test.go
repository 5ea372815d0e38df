package backend

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"
	"testing"

	"marketradar/internal/config"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

func testConfig() config.Config {
	return config.Config{
		BackendBaseURL: "http://backend.test",
		BackendTimeout: 1000,
		RateLimitRPS:   1000,
		RetryAttempts:  3,
		EbayDomain:     "www.ebay.fr",
		AmazonDomain:   "www.amazon.fr",
		DataCSVPath:    "/data.csv",
	}
}

func newTestClient(rt roundTripFunc) *Client {
	c := NewClient(testConfig())
	c.httpClient = &http.Client{Transport: rt}
	return c
}

func response(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     make(http.Header),
	}
}

func TestSearchSold(t *testing.T) {
	var captured *http.Request
	var payload []byte
	client := newTestClient(func(r *http.Request) (*http.Response, error) {
		captured = r
		payload, _ = io.ReadAll(r.Body)
		return response(http.StatusOK, `[{"title":"Console PS5","price":449.99}]`), nil
	})

	blob, err := client.SearchSold(context.Background(), "console ps5")
	if err != nil {
		t.Fatalf("SearchSold: %v", err)
	}
	if !bytes.Contains(blob, []byte("Console PS5")) {
		t.Fatalf("unexpected body: %s", blob)
	}

	if captured.Method != http.MethodPost || captured.URL.Path != "/api/search" {
		t.Fatalf("%s %s, want POST /api/search", captured.Method, captured.URL.Path)
	}
	if ct := captured.Header.Get("Content-Type"); ct != "application/json" {
		t.Fatalf("content-type=%q", ct)
	}
	for _, want := range []string{"www.ebay.fr", "_nkw=console+ps5", "LH_Sold=1", "LH_Complete=1"} {
		if !bytes.Contains(payload, []byte(want)) {
			t.Fatalf("payload %s missing %q", payload, want)
		}
	}
}

func TestGenerateCSV(t *testing.T) {
	var payload []byte
	var path string
	client := newTestClient(func(r *http.Request) (*http.Response, error) {
		path = r.URL.Path
		payload, _ = io.ReadAll(r.Body)
		return response(http.StatusOK, "Nom du Produit,Prix\n"), nil
	})

	blob, err := client.GenerateCSV(context.Background(), "serveur nas")
	if err != nil {
		t.Fatalf("GenerateCSV: %v", err)
	}
	if !bytes.HasPrefix(blob, []byte("Nom du Produit")) {
		t.Fatalf("unexpected body: %s", blob)
	}
	if path != "/generate-csv" {
		t.Fatalf("path=%q, want /generate-csv", path)
	}
	if !bytes.Contains(payload, []byte("www.amazon.fr/s?k=serveur+nas")) {
		t.Fatalf("payload %s missing the search url", payload)
	}
}

func TestScrapeFailureNotRetried(t *testing.T) {
	var calls int
	client := newTestClient(func(*http.Request) (*http.Response, error) {
		calls++
		return response(http.StatusInternalServerError, `{"error":"le scraping a échoué"}`), nil
	})

	_, err := client.SearchSold(context.Background(), "ps5")
	if err == nil || !strings.Contains(err.Error(), "le scraping a échoué") {
		t.Fatalf("err=%v, want the backend error message surfaced", err)
	}
	if calls != 1 {
		t.Fatalf("calls=%d, a scrape failure carries an answer and must not be retried", calls)
	}
}

func TestRetryOnGatewayError(t *testing.T) {
	var calls int
	client := newTestClient(func(*http.Request) (*http.Response, error) {
		calls++
		if calls == 1 {
			return response(http.StatusBadGateway, ""), nil
		}
		return response(http.StatusOK, `[]`), nil
	})

	blob, err := client.SearchSold(context.Background(), "ps5")
	if err != nil {
		t.Fatalf("SearchSold: %v", err)
	}
	if string(blob) != `[]` || calls != 2 {
		t.Fatalf("blob=%s calls=%d, want a retry after the 502", blob, calls)
	}
}

func TestLoadCached(t *testing.T) {
	client := newTestClient(func(r *http.Request) (*http.Response, error) {
		if r.URL.Path != "/data.csv" {
			t.Fatalf("path=%q, want /data.csv", r.URL.Path)
		}
		return response(http.StatusOK, "Nom du Produit,Prix\nDisque dur,59.99\n"), nil
	})

	blob, found, err := client.LoadCached(context.Background())
	if err != nil || !found {
		t.Fatalf("found=%v err=%v", found, err)
	}
	if !bytes.Contains(blob, []byte("Disque dur")) {
		t.Fatalf("unexpected body: %s", blob)
	}
}

func TestLoadCachedMissing(t *testing.T) {
	client := newTestClient(func(*http.Request) (*http.Response, error) {
		return response(http.StatusNotFound, "not found"), nil
	})

	_, found, err := client.LoadCached(context.Background())
	if err != nil {
		t.Fatalf("a 404 is a quiet miss, got %v", err)
	}
	if found {
		t.Fatal("found must be false on 404")
	}
}
