package discovery

import (
	"net/url"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"bompilot/internal/models"
)

// priceRe matches a currency-symbol-prefixed amount, e.g. "$14.95" or
// "€ 3,40". A candidate without such an amount is not usable.
var priceRe = regexp.MustCompile(`[$€£¥]\s*([0-9]+(?:[.,][0-9]{1,2})?)`)

// stockRe matches an optional stock count, e.g. "230 in stock".
var stockRe = regexp.MustCompile(`(?i)([0-9][0-9,]*)\s*(?:in stock|available|in-stock)`)

// parseSnippets turns raw search snippets into live-tagged candidates,
// discarding any snippet with no parseable positive price.
func parseSnippets(snippets []Snippet, currency string) []models.Suggestion {
	var out []models.Suggestion
	for _, sn := range snippets {
		price, ok := parsePrice(sn.Text)
		if !ok {
			continue
		}

		title := strings.TrimSpace(sn.Title)
		if title == "" {
			continue
		}

		s := models.Suggestion{
			Title:       title,
			Description: truncate(sn.Text, descriptionLimit),
			Supplier:    supplierFromURL(sn.URL),
			SupplierURL: sn.URL,
			Price:       &price,
			Currency:    currency,
			Confidence:  models.ConfidenceLive,
			Source:      models.SourceLiveSearch,
		}
		if stock, ok := parseStock(sn.Text); ok {
			s.Stock = &stock
		}
		out = append(out, s)
	}
	return out
}

// parsePrice extracts the first currency-prefixed positive amount.
func parsePrice(text string) (float64, bool) {
	m := priceRe.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", "."), 64)
	if err != nil || v <= 0 {
		return 0, false
	}
	return v, true
}

// parseStock extracts an optional stock count.
func parseStock(text string) (int, bool) {
	m := stockRe.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(strings.ReplaceAll(m[1], ",", ""))
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// dedupeByTitle keeps the first candidate for each case-insensitive title.
func dedupeByTitle(candidates []models.Suggestion) []models.Suggestion {
	seen := make(map[string]bool, len(candidates))
	var out []models.Suggestion
	for _, s := range candidates {
		key := strings.ToLower(s.Title)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, s)
	}
	return out
}

// rank orders candidates in-stock first, then cheapest first, and caps
// the result. The sort is stable so equally-ranked candidates keep their
// search order.
func rank(candidates []models.Suggestion, max int) []models.Suggestion {
	sort.SliceStable(candidates, func(i, j int) bool {
		si, sj := inStock(candidates[i]), inStock(candidates[j])
		if si != sj {
			return si
		}
		return priceOf(candidates[i]) < priceOf(candidates[j])
	})
	if len(candidates) > max {
		candidates = candidates[:max]
	}
	return candidates
}

func inStock(s models.Suggestion) bool {
	return s.Stock != nil && *s.Stock > 0
}

func priceOf(s models.Suggestion) float64 {
	if s.Price == nil {
		return 0
	}
	return *s.Price
}

// supplierFromURL derives a display supplier name from a result URL host.
func supplierFromURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return "unknown"
	}
	return strings.TrimPrefix(u.Host, "www.")
}

func truncate(s string, limit int) string {
	s = strings.TrimSpace(s)
	if len(s) <= limit {
		return s
	}
	return s[:limit]
}
