package services

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"

	apperrors "bompilot/internal/errors"
	"bompilot/internal/lifecycle"
	"bompilot/internal/logger"
	"bompilot/internal/models"
	"bompilot/internal/uuid"
)

// partsService orchestrates the parts planning pipeline: category
// planning, candidate discovery, the suggestion lifecycle, and the plan
// document store.
type partsService struct {
	db         *gorm.DB
	store      *partsStore
	planner    CategoryPlanner
	discoverer CandidateDiscoverer
}

// NewPartsService creates a new PartsServicer.
func NewPartsService(db *gorm.DB, planner CategoryPlanner, discoverer CandidateDiscoverer) PartsServicer {
	return &partsService{
		db:         db,
		store:      &partsStore{db: db},
		planner:    planner,
		discoverer: discoverer,
	}
}

// getProject loads a project scoped to its owner.
func (s *partsService) getProject(userID, projectID string) (*models.Project, error) {
	var project models.Project
	if err := s.db.Where("id = ? AND user_id = ?", projectID, userID).First(&project).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrProjectNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &project, nil
}

func document(plan *models.PartsPlan) *PlanDocument {
	return &PlanDocument{
		Categories:  plan.Categories,
		GeneratedAt: plan.GeneratedAt,
	}
}

// GetPlan returns the project's category list and last-generated
// timestamp. A project with no plan yet returns an empty category list,
// signaling the caller to trigger generation.
func (s *partsService) GetPlan(userID, projectID string) (*PlanDocument, error) {
	if _, err := s.getProject(userID, projectID); err != nil {
		return nil, err
	}
	plan, err := s.store.read(userID, projectID)
	if err != nil {
		return nil, err
	}
	return document(plan), nil
}

// GenerateCategories runs the full pipeline: plan categories, discover
// candidates for each in sequence, and replace the project's category
// list wholesale. An aborted request discards the partial result; no
// partially assembled category set is ever persisted.
func (s *partsService) GenerateCategories(ctx context.Context, userID, projectID, currency string) (*PlanDocument, error) {
	project, err := s.getProject(userID, projectID)
	if err != nil {
		return nil, err
	}
	if currency == "" {
		currency = project.Currency
	}

	specs := s.planner.Plan(ctx, *project)

	now := time.Now().UTC()
	categories := make([]models.Category, 0, len(specs))
	for _, spec := range specs {
		if ctx.Err() != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, ctx.Err())
		}

		suggestions := s.discoverer.Discover(ctx, spec, *project, currency)
		for i := range suggestions {
			suggestions[i].ID = uuid.New()
			suggestions[i].Status = models.StatusPending
			suggestions[i].Owned = false
		}

		categories = append(categories, models.Category{
			ID:          uuid.New(),
			Name:        spec.Name,
			Description: spec.Description,
			AIGenerated: true,
			SearchTerms: spec.SearchTerms,
			Suggestions: suggestions,
			UserItems:   []models.UserItem{},
			CreatedAt:   now,
			UpdatedAt:   now,
		})
	}

	if ctx.Err() != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, ctx.Err())
	}

	plan, err := s.store.read(userID, projectID)
	if err != nil {
		return nil, err
	}
	plan.Categories = categories
	plan.GeneratedAt = &now
	if err := s.store.writeAll(plan); err != nil {
		return nil, err
	}

	logger.Get().Infow("category plan generated",
		"project_id", projectID,
		"categories", len(categories),
	)
	return document(plan), nil
}

// ReplaceCategories validates and persists a caller-supplied category
// list verbatim, replacing the stored one.
func (s *partsService) ReplaceCategories(userID, projectID string, categories []models.Category) (*PlanDocument, error) {
	if _, err := s.getProject(userID, projectID); err != nil {
		return nil, err
	}
	if err := lifecycle.ValidateCategories(categories); err != nil {
		return nil, err
	}

	plan, err := s.store.read(userID, projectID)
	if err != nil {
		return nil, err
	}
	plan.Categories = categories
	if err := s.store.writeAll(plan); err != nil {
		return nil, err
	}
	return document(plan), nil
}

// AddCategory appends an empty user-authored category scaffold.
func (s *partsService) AddCategory(userID, projectID, name, description string) (*PlanDocument, error) {
	if _, err := s.getProject(userID, projectID); err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category name is required")
	}

	plan, err := s.store.read(userID, projectID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	plan.Categories = append(plan.Categories, models.Category{
		ID:          uuid.New(),
		Name:        name,
		Description: description,
		AIGenerated: false,
		SearchTerms: []string{},
		Suggestions: []models.Suggestion{},
		UserItems:   []models.UserItem{},
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err := s.store.writeAll(plan); err != nil {
		return nil, err
	}
	return document(plan), nil
}

// ApplySuggestionAction runs one lifecycle operation and persists the
// mutated document. On a persistence failure the mutation is lost and the
// caller must re-fetch; the next read returns the last stored state.
func (s *partsService) ApplySuggestionAction(userID, projectID, categoryID, suggestionID, action string) (*PlanDocument, error) {
	if _, err := s.getProject(userID, projectID); err != nil {
		return nil, err
	}
	plan, err := s.store.read(userID, projectID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	var cats []models.Category
	switch action {
	case ActionAccept:
		cats, err = lifecycle.Accept(plan.Categories, categoryID, suggestionID, now)
	case ActionDismiss:
		cats, err = lifecycle.Dismiss(plan.Categories, categoryID, suggestionID, now)
	case ActionRestore:
		cats, err = lifecycle.Restore(plan.Categories, categoryID, suggestionID, now)
	case ActionToggleOwned:
		cats, err = lifecycle.ToggleOwned(plan.Categories, categoryID, suggestionID, now)
	case ActionRemove:
		cats, err = lifecycle.Remove(plan.Categories, categoryID, suggestionID, now)
	default:
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "unknown suggestion action")
	}
	if err != nil {
		return nil, err
	}

	plan.Categories = cats
	if err := s.store.writeAll(plan); err != nil {
		return nil, err
	}
	return document(plan), nil
}

// AddCustomItem appends a user checklist item to a category.
func (s *partsService) AddCustomItem(userID, projectID, categoryID, title string) (*PlanDocument, error) {
	return s.applyItemOp(userID, projectID, func(cats []models.Category, now time.Time) ([]models.Category, error) {
		return lifecycle.AddCustomItem(cats, categoryID, title, now)
	})
}

// ToggleCustomItem flips a user checklist item's done flag.
func (s *partsService) ToggleCustomItem(userID, projectID, categoryID, itemID string) (*PlanDocument, error) {
	return s.applyItemOp(userID, projectID, func(cats []models.Category, now time.Time) ([]models.Category, error) {
		return lifecycle.ToggleCustomItem(cats, categoryID, itemID, now)
	})
}

// RemoveCustomItem deletes a user checklist item.
func (s *partsService) RemoveCustomItem(userID, projectID, categoryID, itemID string) (*PlanDocument, error) {
	return s.applyItemOp(userID, projectID, func(cats []models.Category, now time.Time) ([]models.Category, error) {
		return lifecycle.RemoveCustomItem(cats, categoryID, itemID, now)
	})
}

func (s *partsService) applyItemOp(userID, projectID string, op func([]models.Category, time.Time) ([]models.Category, error)) (*PlanDocument, error) {
	if _, err := s.getProject(userID, projectID); err != nil {
		return nil, err
	}
	plan, err := s.store.read(userID, projectID)
	if err != nil {
		return nil, err
	}

	cats, err := op(plan.Categories, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	plan.Categories = cats
	if err := s.store.writeAll(plan); err != nil {
		return nil, err
	}
	return document(plan), nil
}

// GetRecommendations returns the legacy flat recommendation list and its
// index-to-action selection map.
func (s *partsService) GetRecommendations(userID, projectID string) ([]models.Recommendation, models.SelectionMap, error) {
	if _, err := s.getProject(userID, projectID); err != nil {
		return nil, nil, err
	}
	plan, err := s.store.read(userID, projectID)
	if err != nil {
		return nil, nil, err
	}
	return plan.Recommendations, plan.Selections, nil
}

// SelectPart applies a legacy index-addressed selection action and keeps
// the Selected Parts aggregate in step with it.
func (s *partsService) SelectPart(userID, projectID string, index int, action string) (models.SelectionMap, error) {
	if _, err := s.getProject(userID, projectID); err != nil {
		return nil, err
	}
	plan, err := s.store.read(userID, projectID)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(plan.Recommendations) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "part index out of range")
	}

	rec := plan.Recommendations[index]
	key := strconv.Itoa(index)
	now := time.Now().UTC()

	switch action {
	case models.SelectActionAccept:
		plan.Selections[key] = models.SelectActionAccept
		plan.Categories = lifecycle.MirrorTitle(plan.Categories, rec.Title, now)
	case models.SelectActionReject:
		plan.Selections[key] = models.SelectActionReject
		plan.Categories = lifecycle.UnmirrorTitle(plan.Categories, rec.Title, now)
	case models.SelectActionRemove:
		delete(plan.Selections, key)
		plan.Categories = lifecycle.UnmirrorTitle(plan.Categories, rec.Title, now)
	default:
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "unknown selection action")
	}

	if err := s.store.writeAll(plan); err != nil {
		return nil, err
	}
	return plan.Selections, nil
}

// RegeneratePart replaces one legacy recommendation with a fresh
// candidate that avoids the rejected part's title. Any selection recorded
// for the slot is cleared, since it referred to the old part.
func (s *partsService) RegeneratePart(ctx context.Context, userID, projectID string, index int, rejectedTitle string) (*models.Recommendation, error) {
	project, err := s.getProject(userID, projectID)
	if err != nil {
		return nil, err
	}
	plan, err := s.store.read(userID, projectID)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(plan.Recommendations) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "part index out of range")
	}

	old := plan.Recommendations[index]
	if rejectedTitle == "" {
		rejectedTitle = old.Title
	}

	replacement := s.discoverer.Regenerate(ctx, *project, old.Category, nil, rejectedTitle)

	now := time.Now().UTC()
	rec := models.Recommendation{
		Title:       replacement.Title,
		Description: replacement.Description,
		Supplier:    replacement.Supplier,
		SupplierURL: replacement.SupplierURL,
		Price:       replacement.Price,
		Currency:    replacement.Currency,
		Category:    old.Category,
	}
	plan.Recommendations[index] = rec
	delete(plan.Selections, strconv.Itoa(index))
	plan.Categories = lifecycle.UnmirrorTitle(plan.Categories, old.Title, now)

	if err := s.store.writeAll(plan); err != nil {
		return nil, err
	}
	return &rec, nil
}
