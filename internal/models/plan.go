package models

import "time"

// SelectedPartsName is the distinguished aggregate category that mirrors
// every currently-accepted suggestion project-wide. At most one category
// with this name may exist per project; it is created lazily on the first
// accept and found by name afterwards.
const SelectedPartsName = "Selected Parts"

// SuggestionStatus is the lifecycle state of a suggestion.
type SuggestionStatus string

const (
	StatusPending   SuggestionStatus = "pending"
	StatusAccepted  SuggestionStatus = "accepted"
	StatusDismissed SuggestionStatus = "dismissed"
)

// Confidence tags a suggestion's provenance: parsed from live search
// results, or served from the static sample catalog.
type Confidence string

const (
	ConfidenceLive   Confidence = "live"
	ConfidenceSample Confidence = "sample"
)

// Suggestion source tags.
const (
	SourceSampleDataset  = "sample-dataset"
	SourceLiveSearch     = "live-search"
	SourceRecommendation = "recommendation"
)

// Suggestion is one concrete candidate part proposed for a category.
// Field names follow the persisted document shape, which predates this
// service; only status, owned, and enrichment fields are ever edited in
// place.
type Suggestion struct {
	ID           string           `json:"id"`
	Title        string           `json:"title"`
	Description  string           `json:"description"`
	Supplier     string           `json:"supplier"`
	SupplierURL  string           `json:"supplierUrl"`
	Image        string           `json:"image,omitempty"`
	Manufacturer string           `json:"manufacturer,omitempty"`
	MPN          string           `json:"mpn,omitempty"`
	Price        *float64         `json:"price,omitempty"`
	Currency     string           `json:"currency,omitempty"`
	MOQ          *int             `json:"moq,omitempty"`
	Stock        *int             `json:"stock,omitempty"`
	LeadTime     string           `json:"leadTime,omitempty"`
	Owned        bool             `json:"owned"`
	Status       SuggestionStatus `json:"status"`
	Confidence   Confidence       `json:"confidence"`
	Source       string           `json:"source"`
}

// UserItem is a user-authored checklist entry, independent of suggestions.
type UserItem struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Done      bool      `json:"done"`
	CreatedAt time.Time `json:"createdAt"`
}

// Category groups suggestions and user items for one class of parts.
type Category struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	AIGenerated bool         `json:"aiGenerated"`
	SearchTerms []string     `json:"searchTerms"`
	Suggestions []Suggestion `json:"suggestions"`
	UserItems   []UserItem   `json:"userItems"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

// Recommendation is the legacy flat part shape kept for documents written
// by the pre-category flow. Its storage schema is deliberately not merged
// with Category suggestions.
type Recommendation struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Supplier    string   `json:"supplier"`
	SupplierURL string   `json:"supplierUrl"`
	Price       *float64 `json:"price,omitempty"`
	Currency    string   `json:"currency,omitempty"`
	Category    string   `json:"category,omitempty"`
}

// Legacy selection actions applied against the flat recommendation list.
const (
	SelectActionAccept = "accept"
	SelectActionReject = "reject"
	SelectActionRemove = "remove"
)
