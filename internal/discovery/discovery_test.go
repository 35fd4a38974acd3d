package discovery

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"bompilot/internal/llm"
	"bompilot/internal/models"
	"bompilot/internal/planner"
)

type fakeSearcher func(ctx context.Context, query string) ([]Snippet, error)

func (f fakeSearcher) Search(ctx context.Context, query string) ([]Snippet, error) {
	return f(ctx, query)
}

func spec(name string, terms ...string) planner.CategorySpec {
	return planner.CategorySpec{Name: name, Description: name, SearchTerms: terms}
}

func pcbProject() models.Project {
	return models.Project{Type: models.ProjectTypePCB, Currency: "USD"}
}

func TestDiscoverLivePath(t *testing.T) {
	searcher := fakeSearcher(func(ctx context.Context, query string) ([]Snippet, error) {
		if !strings.Contains(query, "Connectivity") || !strings.Contains(query, "USD") {
			t.Errorf("query missing category name or currency: %q", query)
		}
		return []Snippet{
			{Title: "ESP32-C6 module", URL: "https://www.digikey.com/p/1", Text: "$4.20 — 500 in stock"},
			{Title: "No price here", URL: "https://x.test/p/2", Text: "great wifi module"},
			{Title: "ESP8266 board", URL: "https://www.mouser.com/p/3", Text: "$2.80, 12 in stock"},
			{Title: "esp32-c6 MODULE", URL: "https://dup.test/p/4", Text: "$9.99"},
		}, nil
	})

	d := New(searcher, nil)
	got := d.Discover(context.Background(), spec("Connectivity", "wifi module"), pcbProject(), "USD")

	if len(got) != 2 {
		t.Fatalf("expected 2 usable deduped candidates, got %d", len(got))
	}
	// Both in stock; cheaper first.
	if got[0].Title != "ESP8266 board" {
		t.Errorf("expected cheapest in-stock candidate first, got %q", got[0].Title)
	}
	for _, s := range got {
		if s.Confidence != models.ConfidenceLive {
			t.Errorf("live candidate %q tagged %s", s.Title, s.Confidence)
		}
		if s.Source != models.SourceLiveSearch {
			t.Errorf("live candidate %q has source %s", s.Title, s.Source)
		}
		if s.Price == nil || *s.Price <= 0 {
			t.Errorf("live candidate %q has no usable price", s.Title)
		}
	}
	if got[0].Supplier != "mouser.com" {
		t.Errorf("supplier not derived from host: %q", got[0].Supplier)
	}
}

func TestDiscoverAlwaysResolves(t *testing.T) {
	// Every live-search outcome still yields >=1 suggestion with the
	// correct confidence tag.
	outcomes := map[string]fakeSearcher{
		"search_error": func(ctx context.Context, query string) ([]Snippet, error) {
			return nil, fmt.Errorf("timeout")
		},
		"empty_results": func(ctx context.Context, query string) ([]Snippet, error) {
			return nil, nil
		},
		"malformed_payload": func(ctx context.Context, query string) ([]Snippet, error) {
			return []Snippet{{Title: "no price", Text: "call us for pricing"}}, nil
		},
	}

	for name, searcher := range outcomes {
		t.Run(name, func(t *testing.T) {
			d := New(searcher, nil)
			got := d.Discover(context.Background(), spec("Power stage", "ldo"), pcbProject(), "USD")
			if len(got) == 0 {
				t.Fatal("discovery must resolve from the sample catalog")
			}
			for _, s := range got {
				if s.Confidence != models.ConfidenceSample {
					t.Errorf("fallback candidate %q tagged %s", s.Title, s.Confidence)
				}
				if s.Source != models.SourceSampleDataset {
					t.Errorf("fallback candidate %q has source %s", s.Title, s.Source)
				}
			}
		})
	}
}

func TestDiscoverProjectTypeFallbackTier(t *testing.T) {
	d := New(nil, nil)
	// No catalog category label is a substring of this name, so the
	// final project-type tier serves up to 2 entries.
	got := d.Discover(context.Background(), spec("Enclosure", "project box"), pcbProject(), "USD")
	if len(got) == 0 || len(got) > 2 {
		t.Fatalf("expected 1-2 project-type fallback entries, got %d", len(got))
	}
}

func TestDiscoverCategoryTierCap(t *testing.T) {
	d := New(nil, nil)
	got := d.Discover(context.Background(), spec("Sensing", "sensor"), pcbProject(), "USD")
	if len(got) == 0 || len(got) > 3 {
		t.Fatalf("category tier capped at 3, got %d", len(got))
	}
}

func TestRegenerateAvoidsExcludedTitle(t *testing.T) {
	// The replacement for a rejected BME280 must not be a BME280,
	// whichever tier serves it.
	t.Run("live_tier_filters_exclusion", func(t *testing.T) {
		searcher := fakeSearcher(func(ctx context.Context, query string) ([]Snippet, error) {
			return []Snippet{
				{Title: "BME280", URL: "https://a.test/1", Text: "$14.95"},
				{Title: "SHT31-D", URL: "https://b.test/2", Text: "$13.95"},
			}, nil
		})
		d := New(searcher, nil)
		got := d.Regenerate(context.Background(), pcbProject(), "Sensing", []string{"humidity sensor"}, "BME280")
		if strings.EqualFold(got.Title, "BME280") {
			t.Fatalf("replacement equals excluded part: %q", got.Title)
		}
		if got.Title != "SHT31-D" {
			t.Errorf("expected filtered live candidate, got %q", got.Title)
		}
	})

	t.Run("generative_tier_told_to_avoid", func(t *testing.T) {
		var prompt string
		client := llm.CompleteFunc(func(ctx context.Context, p string) (string, error) {
			prompt = p
			return `{"title":"HDC1080","description":"Humidity sensor","supplier":"TI","supplierUrl":"https://ti.com","price":2.5,"currency":"USD"}`, nil
		})
		d := New(fakeSearcher(func(ctx context.Context, q string) ([]Snippet, error) {
			return nil, fmt.Errorf("outage")
		}), client)

		got := d.Regenerate(context.Background(), pcbProject(), "Sensing", nil, "BME280")
		if got.Title != "HDC1080" {
			t.Fatalf("expected generative replacement, got %q", got.Title)
		}
		if got.Source != models.SourceRecommendation {
			t.Errorf("expected recommendation source, got %s", got.Source)
		}
		if !strings.Contains(prompt, "BME280") {
			t.Error("generative prompt must name the excluded part")
		}
	})

	t.Run("catalog_tier_skips_exclusion", func(t *testing.T) {
		d := New(nil, nil)
		got := d.Regenerate(context.Background(), pcbProject(), "Sensing", nil, "BME280")
		if strings.EqualFold(got.Title, "BME280") {
			t.Fatalf("catalog replacement equals excluded part")
		}
		if got.Confidence != models.ConfidenceSample {
			t.Errorf("expected sample confidence, got %s", got.Confidence)
		}
	})

	t.Run("generative_echoing_exclusion_is_rejected", func(t *testing.T) {
		client := llm.CompleteFunc(func(ctx context.Context, p string) (string, error) {
			return `{"title":"BME280","price":14.95,"currency":"USD"}`, nil
		})
		d := New(nil, client)
		got := d.Regenerate(context.Background(), pcbProject(), "Sensing", nil, "BME280")
		if strings.EqualFold(got.Title, "BME280") {
			t.Fatal("echoed exclusion must fall through to the catalog tier")
		}
	})
}

func TestParsePrice(t *testing.T) {
	cases := []struct {
		text string
		want float64
		ok   bool
	}{
		{"$14.95 each", 14.95, true},
		{"price: € 3,40", 3.40, true},
		{"£0.99", 0.99, true},
		{"¥1200", 1200, true},
		{"only 12 left", 0, false},
		{"$0", 0, false},
		{"costs 14.95 dollars", 0, false}, // no symbol prefix
	}
	for _, tc := range cases {
		got, ok := parsePrice(tc.text)
		if ok != tc.ok || (ok && got != tc.want) {
			t.Errorf("parsePrice(%q) = %v,%v want %v,%v", tc.text, got, ok, tc.want, tc.ok)
		}
	}
}

func TestParseStock(t *testing.T) {
	cases := []struct {
		text string
		want int
		ok   bool
	}{
		{"$5 — 230 in stock", 230, true},
		{"1,200 available", 1200, true},
		{"23 In Stock", 23, true},
		{"backordered", 0, false},
	}
	for _, tc := range cases {
		got, ok := parseStock(tc.text)
		if ok != tc.ok || (ok && got != tc.want) {
			t.Errorf("parseStock(%q) = %v,%v want %v,%v", tc.text, got, ok, tc.want, tc.ok)
		}
	}
}
