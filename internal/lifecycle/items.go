package lifecycle

import (
	"strings"
	"time"

	apperrors "bompilot/internal/errors"
	"bompilot/internal/models"
	"bompilot/internal/uuid"
)

// AddCustomItem appends a user-authored checklist entry to a category.
// Custom items never interact with suggestions.
func AddCustomItem(cats []models.Category, categoryID, title string, now time.Time) ([]models.Category, error) {
	if strings.TrimSpace(title) == "" {
		return cats, apperrors.WithMessage(apperrors.ErrInvalidInput, "item title is required")
	}

	ci := categoryIndex(cats, categoryID)
	if ci < 0 {
		return cats, apperrors.ErrCategoryNotFound
	}

	cats[ci].UserItems = append(cats[ci].UserItems, models.UserItem{
		ID:        uuid.New(),
		Title:     strings.TrimSpace(title),
		CreatedAt: now,
	})
	cats[ci].UpdatedAt = now
	return cats, nil
}

// ToggleCustomItem flips an item's done flag.
func ToggleCustomItem(cats []models.Category, categoryID, itemID string, now time.Time) ([]models.Category, error) {
	ci := categoryIndex(cats, categoryID)
	if ci < 0 {
		return cats, apperrors.ErrCategoryNotFound
	}

	for i := range cats[ci].UserItems {
		if cats[ci].UserItems[i].ID == itemID {
			cats[ci].UserItems[i].Done = !cats[ci].UserItems[i].Done
			cats[ci].UpdatedAt = now
			return cats, nil
		}
	}
	return cats, apperrors.ErrItemNotFound
}

// RemoveCustomItem deletes a user item outright.
func RemoveCustomItem(cats []models.Category, categoryID, itemID string, now time.Time) ([]models.Category, error) {
	ci := categoryIndex(cats, categoryID)
	if ci < 0 {
		return cats, apperrors.ErrCategoryNotFound
	}

	items := cats[ci].UserItems
	for i := range items {
		if items[i].ID == itemID {
			cats[ci].UserItems = append(items[:i], items[i+1:]...)
			cats[ci].UpdatedAt = now
			return cats, nil
		}
	}
	return cats, apperrors.ErrItemNotFound
}

func categoryIndex(cats []models.Category, categoryID string) int {
	for i := range cats {
		if cats[i].ID == categoryID {
			return i
		}
	}
	return -1
}
