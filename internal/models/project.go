package models

// ProjectType represents the physical form factor of a hardware project.
type ProjectType string

const (
	ProjectTypeBreadboard ProjectType = "breadboard"
	ProjectTypePCB        ProjectType = "pcb"
	ProjectTypeCustom     ProjectType = "custom"
)

// Project represents a hardware project whose parts are being planned.
// The parts subsystem treats it as read-only context.
type Project struct {
	Base
	UserID     string      `gorm:"type:uuid;not null;index" json:"user_id"`
	Name       string      `gorm:"not null" json:"name"`
	Type       ProjectType `gorm:"not null" json:"type"`
	Summary    string      `json:"summary"`
	Complexity int         `gorm:"default:5" json:"complexity"`
	Budget     *float64    `json:"budget,omitempty"`
	Currency   string      `gorm:"size:3;default:USD" json:"currency"`
}
