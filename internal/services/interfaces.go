package services

import (
	"context"
	"time"

	"bompilot/internal/models"
	"bompilot/internal/pagination"
	"bompilot/internal/planner"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(email, password, firstName, lastName string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
	RecordLogin(user *models.User) error
}

// ProjectServicer defines the contract for project-related business logic.
type ProjectServicer interface {
	CreateProject(userID, name string, projectType models.ProjectType, summary string, complexity int, budget *float64, currency string) (*models.Project, error)
	GetUserProjects(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.Project], error)
	GetProjectByID(userID, projectID string) (*models.Project, error)
	UpdateProject(userID, projectID, name, summary string, complexity *int, budget *float64, currency string) (*models.Project, error)
	DeleteProject(userID, projectID string) error
}

// PlanDocument is the outward shape of a project's parts plan.
type PlanDocument struct {
	Categories  []models.Category `json:"categories"`
	GeneratedAt *time.Time        `json:"generated_at,omitempty"`
}

// CategoryPlanner produces the category plan for a project.
type CategoryPlanner interface {
	Plan(ctx context.Context, project models.Project) []planner.CategorySpec
}

// CandidateDiscoverer resolves part candidates for a planned category.
type CandidateDiscoverer interface {
	Discover(ctx context.Context, spec planner.CategorySpec, project models.Project, currency string) []models.Suggestion
	Regenerate(ctx context.Context, project models.Project, categoryName string, searchTerms []string, excludeTitle string) models.Suggestion
}

// PartsServicer defines the contract for the parts planning pipeline.
type PartsServicer interface {
	GetPlan(userID, projectID string) (*PlanDocument, error)
	GenerateCategories(ctx context.Context, userID, projectID, currency string) (*PlanDocument, error)
	ReplaceCategories(userID, projectID string, categories []models.Category) (*PlanDocument, error)
	AddCategory(userID, projectID, name, description string) (*PlanDocument, error)
	ApplySuggestionAction(userID, projectID, categoryID, suggestionID, action string) (*PlanDocument, error)
	AddCustomItem(userID, projectID, categoryID, title string) (*PlanDocument, error)
	ToggleCustomItem(userID, projectID, categoryID, itemID string) (*PlanDocument, error)
	RemoveCustomItem(userID, projectID, categoryID, itemID string) (*PlanDocument, error)
	GetRecommendations(userID, projectID string) ([]models.Recommendation, models.SelectionMap, error)
	SelectPart(userID, projectID string, index int, action string) (models.SelectionMap, error)
	RegeneratePart(ctx context.Context, userID, projectID string, index int, rejectedTitle string) (*models.Recommendation, error)
}

// Suggestion actions accepted by ApplySuggestionAction.
const (
	ActionAccept      = "accept"
	ActionDismiss     = "dismiss"
	ActionRestore     = "restore"
	ActionToggleOwned = "toggle-owned"
	ActionRemove      = "remove"
)
