package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// CategoryList is the jsonb-persisted category array of a parts plan.
type CategoryList []Category

// Value implements driver.Valuer.
func (c CategoryList) Value() (driver.Value, error) {
	if c == nil {
		c = CategoryList{}
	}
	return json.Marshal(c)
}

// Scan implements sql.Scanner.
func (c *CategoryList) Scan(value interface{}) error {
	return scanJSON(value, c)
}

// RecommendationList is the legacy flat recommendation array.
type RecommendationList []Recommendation

// Value implements driver.Valuer.
func (r RecommendationList) Value() (driver.Value, error) {
	if r == nil {
		r = RecommendationList{}
	}
	return json.Marshal(r)
}

// Scan implements sql.Scanner.
func (r *RecommendationList) Scan(value interface{}) error {
	return scanJSON(value, r)
}

// SelectionMap maps a recommendation index to the legacy action applied
// to it ("accept", "reject", "remove"). Keys are stringified indexes to
// keep the persisted document JSON-compatible.
type SelectionMap map[string]string

// Value implements driver.Valuer.
func (s SelectionMap) Value() (driver.Value, error) {
	if s == nil {
		s = SelectionMap{}
	}
	return json.Marshal(s)
}

// Scan implements sql.Scanner.
func (s *SelectionMap) Scan(value interface{}) error {
	return scanJSON(value, s)
}

func scanJSON(value interface{}, dest interface{}) error {
	if value == nil {
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, dest)
	case string:
		return json.Unmarshal([]byte(v), dest)
	default:
		return fmt.Errorf("unsupported jsonb column type %T", value)
	}
}

// PartsPlan is the single per-project parts document: the category array
// plus the legacy flat recommendation list and its index-to-action map.
// All writes replace the document wholesale; categories are small and
// total ordering matters more than write amplification.
type PartsPlan struct {
	Base
	UserID          string             `gorm:"type:uuid;not null;index" json:"user_id"`
	ProjectID       string             `gorm:"type:uuid;not null;uniqueIndex" json:"project_id"`
	Categories      CategoryList       `gorm:"type:jsonb" json:"categories"`
	GeneratedAt     *time.Time         `json:"generated_at,omitempty"`
	Recommendations RecommendationList `gorm:"type:jsonb" json:"recommendations"`
	Selections      SelectionMap       `gorm:"type:jsonb" json:"selections"`
}
