package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "bompilot/internal/errors"
	"bompilot/internal/models"
)

// partsStore is the persistence layer for the per-project plan document.
// All writes replace the document wholesale; there is no incremental
// primitive. Reads and writes are scoped to the owning user, so a write
// against someone else's project fails without mutating state.
type partsStore struct {
	db *gorm.DB
}

// read loads the plan document for a project. A project with no stored
// plan yet is valid: it yields an empty, unsaved document, signaling the
// caller that category assembly has not run.
func (st *partsStore) read(userID, projectID string) (*models.PartsPlan, error) {
	var plan models.PartsPlan
	err := st.db.Where("project_id = ? AND user_id = ?", projectID, userID).First(&plan).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &models.PartsPlan{
				UserID:          userID,
				ProjectID:       projectID,
				Categories:      models.CategoryList{},
				Recommendations: models.RecommendationList{},
				Selections:      models.SelectionMap{},
			}, nil
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if plan.Categories == nil {
		plan.Categories = models.CategoryList{}
	}
	if plan.Recommendations == nil {
		plan.Recommendations = models.RecommendationList{}
	}
	if plan.Selections == nil {
		plan.Selections = models.SelectionMap{}
	}
	return &plan, nil
}

// writeAll persists the full document. Failures surface as
// PERSISTENCE_FAILED; the caller must re-read ground truth rather than
// trust its optimistic in-memory mutation.
func (st *partsStore) writeAll(plan *models.PartsPlan) error {
	if plan.ID == "" {
		if err := st.db.Create(plan).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrPersistenceFailed, err)
		}
		return nil
	}

	updates := map[string]interface{}{
		"categories":      plan.Categories,
		"generated_at":    plan.GeneratedAt,
		"recommendations": plan.Recommendations,
		"selections":      plan.Selections,
	}
	res := st.db.Model(&models.PartsPlan{}).
		Where("id = ? AND user_id = ?", plan.ID, plan.UserID).
		Updates(updates)
	if res.Error != nil {
		return apperrors.Wrap(apperrors.ErrPersistenceFailed, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.WithMessage(apperrors.ErrPersistenceFailed, "plan document no longer exists")
	}
	return nil
}
