package lifecycle

import (
	"strings"
	"time"

	"bompilot/internal/models"
	"bompilot/internal/uuid"
)

// MirrorTitle appends a title-deduped checklist entry to the Selected
// Parts aggregate, creating the aggregate if needed. Used by the legacy
// flat-recommendation flow, which addresses parts by index rather than
// suggestion id.
func MirrorTitle(cats []models.Category, title string, now time.Time) []models.Category {
	cats, ai := ensureSelectedParts(cats, now)
	if !hasItemTitled(cats[ai].UserItems, title) {
		cats[ai].UserItems = append(cats[ai].UserItems, models.UserItem{
			ID:        uuid.New(),
			Title:     title,
			CreatedAt: now,
		})
		cats[ai].UpdatedAt = now
	}
	return cats
}

// UnmirrorTitle deletes the aggregate entry matching title, if present.
func UnmirrorTitle(cats []models.Category, title string, now time.Time) []models.Category {
	ai := findSelectedParts(cats)
	if ai < 0 {
		return cats
	}
	items := cats[ai].UserItems
	for i, item := range items {
		if strings.EqualFold(item.Title, title) {
			cats[ai].UserItems = append(items[:i], items[i+1:]...)
			cats[ai].UpdatedAt = now
			break
		}
	}
	return cats
}
