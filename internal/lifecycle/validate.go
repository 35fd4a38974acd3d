package lifecycle

import (
	"fmt"

	apperrors "bompilot/internal/errors"
	"bompilot/internal/models"
)

// ValidateCategories checks the shape of a client-supplied category list
// before it is persisted verbatim. It guards required ids, legal status
// and confidence values, and the single-aggregate invariant.
func ValidateCategories(cats []models.Category) error {
	if len(cats) == 0 {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "categories array must not be empty")
	}

	selectedParts := 0
	for i, cat := range cats {
		if cat.ID == "" {
			return apperrors.WithMessage(apperrors.ErrInvalidInput, fmt.Sprintf("category %d is missing an id", i))
		}
		if cat.Name == "" {
			return apperrors.WithMessage(apperrors.ErrInvalidInput, fmt.Sprintf("category %s is missing a name", cat.ID))
		}
		if cat.Name == models.SelectedPartsName {
			selectedParts++
		}

		for j, s := range cat.Suggestions {
			if s.ID == "" {
				return apperrors.WithMessage(apperrors.ErrInvalidInput, fmt.Sprintf("suggestion %d in category %s is missing an id", j, cat.Name))
			}
			switch s.Status {
			case models.StatusPending, models.StatusAccepted, models.StatusDismissed:
			default:
				return apperrors.WithMessage(apperrors.ErrInvalidInput, fmt.Sprintf("suggestion %s has unknown status %q", s.ID, s.Status))
			}
			switch s.Confidence {
			case models.ConfidenceLive, models.ConfidenceSample, "":
			default:
				return apperrors.WithMessage(apperrors.ErrInvalidInput, fmt.Sprintf("suggestion %s has unknown confidence %q", s.ID, s.Confidence))
			}
		}

		for j, item := range cat.UserItems {
			if item.ID == "" {
				return apperrors.WithMessage(apperrors.ErrInvalidInput, fmt.Sprintf("item %d in category %s is missing an id", j, cat.Name))
			}
		}
	}

	if selectedParts > 1 {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "at most one Selected Parts category may exist")
	}
	return nil
}
