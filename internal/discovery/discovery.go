// Package discovery produces ranked candidate parts for a category spec.
// It races a live-search path against the searcher's own time budget and
// falls back to the sample catalog, so it always resolves to a non-empty
// candidate list and never raises to its caller.
package discovery

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"bompilot/internal/catalog"
	"bompilot/internal/llm"
	"bompilot/internal/logger"
	"bompilot/internal/models"
	"bompilot/internal/planner"
)

const (
	maxCandidates    = 5
	categoryTierCap  = 3
	projectTierCap   = 2
	descriptionLimit = 200
)

// Discoverer finds candidate parts via live search with catalog fallback.
type Discoverer struct {
	searcher Searcher
	client   llm.Client
}

// Searcher is the slice of the search collaborator discovery needs.
type Searcher interface {
	Search(ctx context.Context, query string) ([]Snippet, error)
}

// Snippet mirrors search.Snippet so discovery does not import the
// concrete client package.
type Snippet struct {
	Title string
	URL   string
	Text  string
}

// New creates a Discoverer.
func New(searcher Searcher, client llm.Client) *Discoverer {
	return &Discoverer{searcher: searcher, client: client}
}

// Discover returns 1-5 candidate suggestions for the spec, tagged with
// their provenance. A supplier outage degrades the confidence tag, never
// the call.
func (d *Discoverer) Discover(ctx context.Context, spec planner.CategorySpec, project models.Project, currency string) []models.Suggestion {
	if live := d.liveTier(ctx, buildQuery(spec.Name, spec.SearchTerms, currency), currency); len(live) > 0 {
		return live
	}
	return sampleTier(spec.Name, project.Type)
}

// liveTier runs the search and keeps only candidates with a parseable
// positive price. Timeouts, non-2xx responses, and empty result sets are
// all "no live data", not errors.
func (d *Discoverer) liveTier(ctx context.Context, query, currency string) []models.Suggestion {
	if d.searcher == nil {
		return nil
	}

	snippets, err := d.searcher.Search(ctx, query)
	if err != nil {
		logger.Get().Infow("live search degraded",
			"query", query,
			"error", err.Error(),
		)
		return nil
	}

	candidates := parseSnippets(snippets, currency)
	return rank(dedupeByTitle(candidates), maxCandidates)
}

// sampleTier serves candidates from the static catalog: category label
// match first, then anything valid for the project type.
func sampleTier(categoryName string, pt models.ProjectType) []models.Suggestion {
	entries := catalog.MatchCategory(categoryName, categoryTierCap)
	if len(entries) == 0 {
		entries = catalog.ForProjectType(pt, projectTierCap)
	}

	out := make([]models.Suggestion, 0, len(entries))
	for _, e := range entries {
		out = append(out, fromCatalogEntry(e))
	}
	return out
}

func fromCatalogEntry(e catalog.Entry) models.Suggestion {
	price := e.Price
	return models.Suggestion{
		Title:        e.Title,
		Description:  e.Description,
		Supplier:     e.Supplier,
		SupplierURL:  e.SupplierURL,
		Manufacturer: e.Manufacturer,
		MPN:          e.MPN,
		Price:        &price,
		Currency:     e.Currency,
		Confidence:   models.ConfidenceSample,
		Source:       models.SourceSampleDataset,
	}
}

// Regenerate produces exactly one replacement candidate for a category,
// avoiding the excluded part's title. Tier order: live search filtered by
// the exclusion, then a generative single-part recommendation told to
// avoid the excluded name, then the catalog minus the excluded title.
func (d *Discoverer) Regenerate(ctx context.Context, project models.Project, categoryName string, searchTerms []string, excludeTitle string) models.Suggestion {
	query := buildQuery(categoryName, searchTerms, project.Currency)

	live := d.liveTier(ctx, query, project.Currency)
	for _, s := range live {
		if !strings.EqualFold(s.Title, excludeTitle) {
			return s
		}
	}

	if gen, ok := d.generativeTier(ctx, project, categoryName, excludeTitle); ok {
		return gen
	}

	entries := catalog.MatchCategory(categoryName, categoryTierCap+1)
	if len(entries) == 0 {
		entries = catalog.ForProjectType(project.Type, projectTierCap+1)
	}
	for _, e := range entries {
		if !strings.EqualFold(e.Title, excludeTitle) {
			return fromCatalogEntry(e)
		}
	}

	// The catalog only collides when it holds a single same-titled entry
	// for the type; serve it anyway rather than return nothing.
	if len(entries) > 0 {
		return fromCatalogEntry(entries[0])
	}
	return fromCatalogEntry(catalog.ForProjectType(models.ProjectTypeCustom, 1)[0])
}

type generatedPart struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Supplier    string   `json:"supplier"`
	SupplierURL string   `json:"supplierUrl"`
	Price       *float64 `json:"price"`
	Currency    string   `json:"currency"`
}

func (d *Discoverer) generativeTier(ctx context.Context, project models.Project, categoryName, excludeTitle string) (models.Suggestion, bool) {
	if d.client == nil {
		return models.Suggestion{}, false
	}

	prompt := fmt.Sprintf(`Suggest exactly one electronic part for the %q category of a %s project. Return JSON only.

Do NOT suggest %q or anything from the same part family; the user rejected it.

Return a JSON object: {"title": "...", "description": "...", "supplier": "...", "supplierUrl": "...", "price": 1.23, "currency": %q}

Return ONLY the JSON, no other text.`, categoryName, project.Type, excludeTitle, project.Currency)

	raw, err := d.client.Complete(ctx, prompt)
	if err != nil {
		logger.Get().Infow("generative replacement degraded",
			"category", categoryName,
			"error", err.Error(),
		)
		return models.Suggestion{}, false
	}

	var part generatedPart
	if err := json.Unmarshal([]byte(llm.CleanJSON(raw)), &part); err != nil {
		return models.Suggestion{}, false
	}
	if strings.TrimSpace(part.Title) == "" || strings.EqualFold(part.Title, excludeTitle) {
		return models.Suggestion{}, false
	}

	return models.Suggestion{
		Title:       part.Title,
		Description: part.Description,
		Supplier:    part.Supplier,
		SupplierURL: part.SupplierURL,
		Price:       part.Price,
		Currency:    part.Currency,
		Confidence:  models.ConfidenceSample,
		Source:      models.SourceRecommendation,
	}, true
}

func buildQuery(name string, terms []string, currency string) string {
	parts := append([]string{name}, terms...)
	parts = append(parts, "price", currency)
	return strings.Join(parts, " ")
}
