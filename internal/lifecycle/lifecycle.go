// Package lifecycle implements the suggestion state machine and the
// Selected Parts aggregate as pure functions over a project's category
// list. Persistence is the caller's concern: every mutation here is
// applied optimistically and must be followed by a document write, with
// a re-read on write failure.
//
// State machine per suggestion:
//
//	pending → accepted
//	pending → dismissed
//	dismissed → pending   (restore)
//
// There is no direct dismissed → accepted transition; a dismissed
// suggestion must be restored first. Owned is an independent boolean on
// accepted suggestions, not a status.
package lifecycle

import (
	"strings"
	"time"

	apperrors "bompilot/internal/errors"
	"bompilot/internal/models"
	"bompilot/internal/uuid"
)

// Accept marks a suggestion accepted and mirrors it into the Selected
// Parts aggregate, creating the aggregate on first use. Accepting an
// already-accepted suggestion is a no-op. Accepting a dismissed
// suggestion is rejected: it must be restored to pending first.
func Accept(cats []models.Category, categoryID, suggestionID string, now time.Time) ([]models.Category, error) {
	ci, si, err := locate(cats, categoryID, suggestionID)
	if err != nil {
		return cats, err
	}

	s := &cats[ci].Suggestions[si]
	switch s.Status {
	case models.StatusDismissed:
		return cats, apperrors.WithMessage(apperrors.ErrInvalidTransition, "a dismissed suggestion must be restored before acceptance")
	case models.StatusAccepted:
		// Idempotent; the title-dedupe below keeps the mirror single.
	default:
		s.Status = models.StatusAccepted
		cats[ci].UpdatedAt = now
	}

	cats, ai := ensureSelectedParts(cats, now)
	if !hasItemTitled(cats[ai].UserItems, cats[ci].Suggestions[si].Title) {
		cats[ai].UserItems = append(cats[ai].UserItems, models.UserItem{
			ID:        uuid.New(),
			Title:     cats[ci].Suggestions[si].Title,
			CreatedAt: now,
		})
		cats[ai].UpdatedAt = now
	}

	return cats, nil
}

// Dismiss marks a pending suggestion dismissed. Dismissing an accepted
// suggestion is rejected; Remove is the way out of the accepted state.
func Dismiss(cats []models.Category, categoryID, suggestionID string, now time.Time) ([]models.Category, error) {
	ci, si, err := locate(cats, categoryID, suggestionID)
	if err != nil {
		return cats, err
	}

	s := &cats[ci].Suggestions[si]
	switch s.Status {
	case models.StatusAccepted:
		return cats, apperrors.WithMessage(apperrors.ErrInvalidTransition, "an accepted suggestion cannot be dismissed; remove it instead")
	case models.StatusDismissed:
		return cats, nil
	}

	s.Status = models.StatusDismissed
	cats[ci].UpdatedAt = now
	return cats, nil
}

// Restore returns a dismissed suggestion to pending.
func Restore(cats []models.Category, categoryID, suggestionID string, now time.Time) ([]models.Category, error) {
	ci, si, err := locate(cats, categoryID, suggestionID)
	if err != nil {
		return cats, err
	}

	s := &cats[ci].Suggestions[si]
	switch s.Status {
	case models.StatusAccepted:
		return cats, apperrors.WithMessage(apperrors.ErrInvalidTransition, "only dismissed suggestions can be restored")
	case models.StatusPending:
		return cats, nil
	}

	s.Status = models.StatusPending
	cats[ci].UpdatedAt = now
	return cats, nil
}

// ToggleOwned flips the owned flag of an accepted suggestion. On any
// other status it is a deliberate no-op guard rather than an error.
func ToggleOwned(cats []models.Category, categoryID, suggestionID string, now time.Time) ([]models.Category, error) {
	ci, si, err := locate(cats, categoryID, suggestionID)
	if err != nil {
		return cats, err
	}

	s := &cats[ci].Suggestions[si]
	if s.Status != models.StatusAccepted {
		return cats, nil
	}

	s.Owned = !s.Owned
	cats[ci].UpdatedAt = now
	return cats, nil
}

// Remove clears a suggestion's selection state (back to pending, not
// owned) and deletes its title-matched mirror from the Selected Parts
// aggregate, if present.
func Remove(cats []models.Category, categoryID, suggestionID string, now time.Time) ([]models.Category, error) {
	ci, si, err := locate(cats, categoryID, suggestionID)
	if err != nil {
		return cats, err
	}

	s := &cats[ci].Suggestions[si]
	title := s.Title
	s.Status = models.StatusPending
	s.Owned = false
	cats[ci].UpdatedAt = now

	return UnmirrorTitle(cats, title, now), nil
}

// ensureSelectedParts finds the aggregate category by name, creating it
// once if absent. Never duplicated: find-by-name wins over create.
func ensureSelectedParts(cats []models.Category, now time.Time) ([]models.Category, int) {
	if i := findSelectedParts(cats); i >= 0 {
		return cats, i
	}

	cats = append(cats, models.Category{
		ID:          uuid.New(),
		Name:        models.SelectedPartsName,
		Description: "Parts you have chosen for this project",
		AIGenerated: false,
		SearchTerms: []string{},
		Suggestions: []models.Suggestion{},
		UserItems:   []models.UserItem{},
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	return cats, len(cats) - 1
}

func findSelectedParts(cats []models.Category) int {
	for i := range cats {
		if cats[i].Name == models.SelectedPartsName {
			return i
		}
	}
	return -1
}

func hasItemTitled(items []models.UserItem, title string) bool {
	for _, item := range items {
		if strings.EqualFold(item.Title, title) {
			return true
		}
	}
	return false
}

// locate resolves a category and suggestion by id.
func locate(cats []models.Category, categoryID, suggestionID string) (int, int, error) {
	ci := -1
	for i := range cats {
		if cats[i].ID == categoryID {
			ci = i
			break
		}
	}
	if ci < 0 {
		return 0, 0, apperrors.ErrCategoryNotFound
	}
	for i := range cats[ci].Suggestions {
		if cats[ci].Suggestions[i].ID == suggestionID {
			return ci, i, nil
		}
	}
	return 0, 0, apperrors.ErrSuggestionNotFound
}
