package services

import (
	"context"
	"testing"

	"bompilot/internal/models"
	"bompilot/internal/testutil"

	"gorm.io/gorm"
)

func seedLegacyPlan(t *testing.T, db *gorm.DB, userID, projectID string) *models.PartsPlan {
	t.Helper()
	priceA, priceB := 6.90, 1.20
	plan := &models.PartsPlan{
		UserID:    userID,
		ProjectID: projectID,
		Recommendations: models.RecommendationList{
			{Title: "ESP32-S3-WROOM-1", Supplier: "mouser.com", Price: &priceA, Currency: "USD", Category: "Connectivity"},
			{Title: "AMS1117-3.3", Supplier: "lcsc.com", Price: &priceB, Currency: "USD", Category: "Power"},
		},
		Selections: models.SelectionMap{},
	}
	if err := db.Create(plan).Error; err != nil {
		t.Fatalf("failed to seed legacy plan: %v", err)
	}
	return plan
}

func TestSelectPart(t *testing.T) {
	setup := func(t *testing.T) (PartsServicer, *gorm.DB, *models.User, *models.Project) {
		db := testutil.SetupTestDB(t)
		t.Cleanup(func() { testutil.TeardownTestDB(t, db) })
		user := testutil.CreateTestUser(t, db)
		project := testutil.CreateTestProject(t, db, user.ID)
		seedLegacyPlan(t, db, user.ID, project.ID)
		return NewPartsService(db, twoSpecPlanner(), twoCategoryDiscoverer()), db, user, project
	}

	t.Run("accept_records_and_mirrors", func(t *testing.T) {
		svc, _, user, project := setup(t)

		selections, err := svc.SelectPart(user.ID, project.ID, 0, models.SelectActionAccept)
		testutil.AssertNoError(t, err)
		if selections["0"] != models.SelectActionAccept {
			t.Errorf("selection not recorded: %v", selections)
		}

		stored, err := svc.GetPlan(user.ID, project.ID)
		testutil.AssertNoError(t, err)
		var mirrored bool
		for _, c := range stored.Categories {
			if c.Name == models.SelectedPartsName {
				for _, item := range c.UserItems {
					if item.Title == "ESP32-S3-WROOM-1" {
						mirrored = true
					}
				}
			}
		}
		if !mirrored {
			t.Error("accepted legacy part not mirrored into the aggregate")
		}
	})

	t.Run("remove_clears_selection_and_mirror", func(t *testing.T) {
		svc, _, user, project := setup(t)

		_, err := svc.SelectPart(user.ID, project.ID, 0, models.SelectActionAccept)
		testutil.AssertNoError(t, err)
		selections, err := svc.SelectPart(user.ID, project.ID, 0, models.SelectActionRemove)
		testutil.AssertNoError(t, err)

		if _, ok := selections["0"]; ok {
			t.Error("remove should delete the selection entry")
		}

		stored, err := svc.GetPlan(user.ID, project.ID)
		testutil.AssertNoError(t, err)
		for _, c := range stored.Categories {
			if c.Name == models.SelectedPartsName && len(c.UserItems) != 0 {
				t.Errorf("mirror should be gone, got %+v", c.UserItems)
			}
		}
	})

	t.Run("reject_records_action", func(t *testing.T) {
		svc, _, user, project := setup(t)

		selections, err := svc.SelectPart(user.ID, project.ID, 1, models.SelectActionReject)
		testutil.AssertNoError(t, err)
		if selections["1"] != models.SelectActionReject {
			t.Errorf("selection not recorded: %v", selections)
		}
	})

	t.Run("index_out_of_range", func(t *testing.T) {
		svc, _, user, project := setup(t)

		_, err := svc.SelectPart(user.ID, project.ID, 7, models.SelectActionAccept)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("unknown_action", func(t *testing.T) {
		svc, _, user, project := setup(t)

		_, err := svc.SelectPart(user.ID, project.ID, 0, "maybe")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestRegeneratePart(t *testing.T) {
	setup := func(t *testing.T, replacement models.Suggestion) (PartsServicer, *models.User, *models.Project) {
		db := testutil.SetupTestDB(t)
		t.Cleanup(func() { testutil.TeardownTestDB(t, db) })
		user := testutil.CreateTestUser(t, db)
		project := testutil.CreateTestProject(t, db, user.ID)
		seedLegacyPlan(t, db, user.ID, project.ID)
		disc := twoCategoryDiscoverer()
		disc.replacement = replacement
		return NewPartsService(db, twoSpecPlanner(), disc), user, project
	}

	t.Run("replaces_slot_and_clears_selection", func(t *testing.T) {
		price := 2.10
		svc, user, project := setup(t, models.Suggestion{
			Title:      "ESP32-C3-MINI-1",
			Supplier:   "digikey.com",
			Price:      &price,
			Currency:   "USD",
			Confidence: models.ConfidenceSample,
			Source:     models.SourceRecommendation,
		})

		_, err := svc.SelectPart(user.ID, project.ID, 0, models.SelectActionAccept)
		testutil.AssertNoError(t, err)

		rec, err := svc.RegeneratePart(context.Background(), user.ID, project.ID, 0, "ESP32-S3-WROOM-1")
		testutil.AssertNoError(t, err)
		if rec.Title != "ESP32-C3-MINI-1" {
			t.Errorf("expected replacement part, got %q", rec.Title)
		}
		if rec.Category != "Connectivity" {
			t.Errorf("replacement should keep the slot's category, got %q", rec.Category)
		}

		recs, selections, err := svc.GetRecommendations(user.ID, project.ID)
		testutil.AssertNoError(t, err)
		if recs[0].Title != "ESP32-C3-MINI-1" {
			t.Errorf("slot 0 not replaced: %q", recs[0].Title)
		}
		if _, ok := selections["0"]; ok {
			t.Error("stale selection should be cleared for the replaced slot")
		}
	})

	t.Run("index_out_of_range", func(t *testing.T) {
		svc, user, project := setup(t, models.Suggestion{Title: "anything"})

		_, err := svc.RegeneratePart(context.Background(), user.ID, project.ID, 9, "")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}
