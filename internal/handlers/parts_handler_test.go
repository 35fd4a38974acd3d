package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	apperrors "bompilot/internal/errors"
	"bompilot/internal/models"
	"bompilot/internal/services"
)

// --- mock parts service ---

type mockPartsService struct {
	getPlanFn               func(userID, projectID string) (*services.PlanDocument, error)
	generateCategoriesFn    func(ctx context.Context, userID, projectID, currency string) (*services.PlanDocument, error)
	replaceCategoriesFn     func(userID, projectID string, categories []models.Category) (*services.PlanDocument, error)
	addCategoryFn           func(userID, projectID, name, description string) (*services.PlanDocument, error)
	applySuggestionActionFn func(userID, projectID, categoryID, suggestionID, action string) (*services.PlanDocument, error)
	getRecommendationsFn    func(userID, projectID string) ([]models.Recommendation, models.SelectionMap, error)
	selectPartFn            func(userID, projectID string, index int, action string) (models.SelectionMap, error)
	regeneratePartFn        func(ctx context.Context, userID, projectID string, index int, rejectedTitle string) (*models.Recommendation, error)
}

func emptyDoc() *services.PlanDocument {
	return &services.PlanDocument{Categories: []models.Category{}}
}

func (m *mockPartsService) GetPlan(userID, projectID string) (*services.PlanDocument, error) {
	if m.getPlanFn != nil {
		return m.getPlanFn(userID, projectID)
	}
	return emptyDoc(), nil
}

func (m *mockPartsService) GenerateCategories(ctx context.Context, userID, projectID, currency string) (*services.PlanDocument, error) {
	if m.generateCategoriesFn != nil {
		return m.generateCategoriesFn(ctx, userID, projectID, currency)
	}
	return emptyDoc(), nil
}

func (m *mockPartsService) ReplaceCategories(userID, projectID string, categories []models.Category) (*services.PlanDocument, error) {
	if m.replaceCategoriesFn != nil {
		return m.replaceCategoriesFn(userID, projectID, categories)
	}
	return emptyDoc(), nil
}

func (m *mockPartsService) AddCategory(userID, projectID, name, description string) (*services.PlanDocument, error) {
	if m.addCategoryFn != nil {
		return m.addCategoryFn(userID, projectID, name, description)
	}
	return emptyDoc(), nil
}

func (m *mockPartsService) ApplySuggestionAction(userID, projectID, categoryID, suggestionID, action string) (*services.PlanDocument, error) {
	if m.applySuggestionActionFn != nil {
		return m.applySuggestionActionFn(userID, projectID, categoryID, suggestionID, action)
	}
	return emptyDoc(), nil
}

func (m *mockPartsService) AddCustomItem(userID, projectID, categoryID, title string) (*services.PlanDocument, error) {
	return emptyDoc(), nil
}

func (m *mockPartsService) ToggleCustomItem(userID, projectID, categoryID, itemID string) (*services.PlanDocument, error) {
	return emptyDoc(), nil
}

func (m *mockPartsService) RemoveCustomItem(userID, projectID, categoryID, itemID string) (*services.PlanDocument, error) {
	return emptyDoc(), nil
}

func (m *mockPartsService) GetRecommendations(userID, projectID string) ([]models.Recommendation, models.SelectionMap, error) {
	if m.getRecommendationsFn != nil {
		return m.getRecommendationsFn(userID, projectID)
	}
	return []models.Recommendation{}, models.SelectionMap{}, nil
}

func (m *mockPartsService) SelectPart(userID, projectID string, index int, action string) (models.SelectionMap, error) {
	if m.selectPartFn != nil {
		return m.selectPartFn(userID, projectID, index, action)
	}
	return models.SelectionMap{}, nil
}

func (m *mockPartsService) RegeneratePart(ctx context.Context, userID, projectID string, index int, rejectedTitle string) (*models.Recommendation, error) {
	if m.regeneratePartFn != nil {
		return m.regeneratePartFn(ctx, userID, projectID, index, rejectedTitle)
	}
	return &models.Recommendation{}, nil
}

var _ services.PartsServicer = (*mockPartsService)(nil)

func setupPartsRouter(handler *PartsHandler) *gin.Engine {
	r := gin.New()
	auth := r.Group("", injectUserID("user-1"))
	auth.GET("/projects/:id/parts/categories", handler.GetCategories)
	auth.POST("/projects/:id/parts/categories", handler.GenerateCategories)
	auth.PATCH("/projects/:id/parts/categories", handler.ReplaceCategories)
	auth.POST("/projects/:id/parts/categories/add", handler.AddCategory)
	auth.POST("/projects/:id/parts/categories/:categoryId/suggestions/:suggestionId", handler.SuggestionAction)
	auth.GET("/parts/recommendations", handler.GetRecommendations)
	auth.POST("/parts/select", handler.SelectPart)
	auth.POST("/parts/regenerate", handler.RegeneratePart)
	return r
}

// --- tests ---

func TestPartsHandler_GetCategories(t *testing.T) {
	t.Run("returns plan document", func(t *testing.T) {
		svc := &mockPartsService{
			getPlanFn: func(userID, projectID string) (*services.PlanDocument, error) {
				if userID != "user-1" || projectID != "proj-1" {
					t.Errorf("unexpected args: %s %s", userID, projectID)
				}
				return &services.PlanDocument{Categories: []models.Category{{ID: "c1", Name: "Power"}}}, nil
			},
		}
		r := setupPartsRouter(NewPartsHandler(svc))

		rec := doRequest(r, "GET", "/projects/proj-1/parts/categories", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		cats := result["categories"].([]interface{})
		if len(cats) != 1 {
			t.Fatalf("expected 1 category, got %d", len(cats))
		}
	})

	t.Run("returns 404 for missing project", func(t *testing.T) {
		svc := &mockPartsService{
			getPlanFn: func(_, _ string) (*services.PlanDocument, error) {
				return nil, apperrors.ErrProjectNotFound
			},
		}
		r := setupPartsRouter(NewPartsHandler(svc))

		rec := doRequest(r, "GET", "/projects/nope/parts/categories", "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "PROJECT_NOT_FOUND")
	})
}

func TestPartsHandler_GenerateCategories(t *testing.T) {
	t.Run("passes currency through", func(t *testing.T) {
		var gotCurrency string
		svc := &mockPartsService{
			generateCategoriesFn: func(_ context.Context, _, _, currency string) (*services.PlanDocument, error) {
				gotCurrency = currency
				return &services.PlanDocument{Categories: []models.Category{{ID: "c1"}}}, nil
			},
		}
		r := setupPartsRouter(NewPartsHandler(svc))

		rec := doRequest(r, "POST", "/projects/proj-1/parts/categories", `{"currency":"EUR"}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if gotCurrency != "EUR" {
			t.Errorf("expected EUR, got %q", gotCurrency)
		}
	})

	t.Run("rejects unknown currency", func(t *testing.T) {
		r := setupPartsRouter(NewPartsHandler(&mockPartsService{}))

		rec := doRequest(r, "POST", "/projects/proj-1/parts/categories", `{"currency":"BTC"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("surfaces persistence failures", func(t *testing.T) {
		svc := &mockPartsService{
			generateCategoriesFn: func(_ context.Context, _, _, _ string) (*services.PlanDocument, error) {
				return nil, apperrors.ErrPersistenceFailed
			},
		}
		r := setupPartsRouter(NewPartsHandler(svc))

		rec := doRequest(r, "POST", "/projects/proj-1/parts/categories", `{}`)

		if rec.Code != apperrors.ErrPersistenceFailed.StatusCode {
			t.Fatalf("expected %d, got %d", apperrors.ErrPersistenceFailed.StatusCode, rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "PERSISTENCE_FAILED")
	})
}

func TestPartsHandler_ReplaceCategories(t *testing.T) {
	t.Run("returns success true", func(t *testing.T) {
		r := setupPartsRouter(NewPartsHandler(&mockPartsService{}))

		rec := doRequest(r, "PATCH", "/projects/proj-1/parts/categories",
			`{"categories":[{"id":"c1","name":"Power","suggestions":[],"userItems":[]}]}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		if result["success"] != true {
			t.Error("expected success true")
		}
	})

	t.Run("requires categories field", func(t *testing.T) {
		r := setupPartsRouter(NewPartsHandler(&mockPartsService{}))

		rec := doRequest(r, "PATCH", "/projects/proj-1/parts/categories", `{}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestPartsHandler_SuggestionAction(t *testing.T) {
	t.Run("routes action to service", func(t *testing.T) {
		var gotAction string
		svc := &mockPartsService{
			applySuggestionActionFn: func(_, _, categoryID, suggestionID, action string) (*services.PlanDocument, error) {
				if categoryID != "cat-1" || suggestionID != "sug-1" {
					t.Errorf("unexpected ids: %s %s", categoryID, suggestionID)
				}
				gotAction = action
				return emptyDoc(), nil
			},
		}
		r := setupPartsRouter(NewPartsHandler(svc))

		rec := doRequest(r, "POST", "/projects/proj-1/parts/categories/cat-1/suggestions/sug-1",
			`{"action":"accept"}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if gotAction != "accept" {
			t.Errorf("expected accept, got %q", gotAction)
		}
	})

	t.Run("rejects unknown action at binding", func(t *testing.T) {
		r := setupPartsRouter(NewPartsHandler(&mockPartsService{}))

		rec := doRequest(r, "POST", "/projects/proj-1/parts/categories/cat-1/suggestions/sug-1",
			`{"action":"promote"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("maps invalid transition to 400", func(t *testing.T) {
		svc := &mockPartsService{
			applySuggestionActionFn: func(_, _, _, _, _ string) (*services.PlanDocument, error) {
				return nil, apperrors.ErrInvalidTransition
			},
		}
		r := setupPartsRouter(NewPartsHandler(svc))

		rec := doRequest(r, "POST", "/projects/proj-1/parts/categories/cat-1/suggestions/sug-1",
			`{"action":"accept"}`)

		if rec.Code != apperrors.ErrInvalidTransition.StatusCode {
			t.Fatalf("expected %d, got %d", apperrors.ErrInvalidTransition.StatusCode, rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_TRANSITION")
	})
}

func TestPartsHandler_GetRecommendations(t *testing.T) {
	t.Run("returns recommendations and selections", func(t *testing.T) {
		svc := &mockPartsService{
			getRecommendationsFn: func(_, projectID string) ([]models.Recommendation, models.SelectionMap, error) {
				if projectID != "proj-1" {
					t.Errorf("unexpected project id %q", projectID)
				}
				return []models.Recommendation{{Title: "ESP32-S3-WROOM-1"}}, models.SelectionMap{"0": "accept"}, nil
			},
		}
		r := setupPartsRouter(NewPartsHandler(svc))

		rec := doRequest(r, "GET", "/parts/recommendations?projectId=proj-1", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		recs := result["recommendations"].([]interface{})
		if len(recs) != 1 {
			t.Fatalf("expected 1 recommendation, got %d", len(recs))
		}
	})

	t.Run("requires project id", func(t *testing.T) {
		r := setupPartsRouter(NewPartsHandler(&mockPartsService{}))

		rec := doRequest(r, "GET", "/parts/recommendations", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})
}

func TestPartsHandler_SelectPart(t *testing.T) {
	t.Run("returns selections", func(t *testing.T) {
		svc := &mockPartsService{
			selectPartFn: func(_, projectID string, index int, action string) (models.SelectionMap, error) {
				if projectID != "proj-1" || index != 2 || action != "accept" {
					t.Errorf("unexpected args: %s %d %s", projectID, index, action)
				}
				return models.SelectionMap{"2": "accept"}, nil
			},
		}
		r := setupPartsRouter(NewPartsHandler(svc))

		rec := doRequest(r, "POST", "/parts/select",
			`{"projectId":"proj-1","partIndex":2,"action":"accept"}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		selections := result["selections"].(map[string]interface{})
		if selections["2"] != "accept" {
			t.Errorf("unexpected selections: %v", selections)
		}
	})

	t.Run("rejects unknown action", func(t *testing.T) {
		r := setupPartsRouter(NewPartsHandler(&mockPartsService{}))

		rec := doRequest(r, "POST", "/parts/select",
			`{"projectId":"proj-1","partIndex":0,"action":"dismiss"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestPartsHandler_RegeneratePart(t *testing.T) {
	svc := &mockPartsService{
		regeneratePartFn: func(_ context.Context, _, _ string, index int, rejectedTitle string) (*models.Recommendation, error) {
			if rejectedTitle != "ESP32-S3-WROOM-1" {
				t.Errorf("unexpected rejected title %q", rejectedTitle)
			}
			return &models.Recommendation{Title: "ESP32-C3-MINI-1"}, nil
		},
	}
	r := setupPartsRouter(NewPartsHandler(svc))

	rec := doRequest(r, "POST", "/parts/regenerate",
		`{"projectId":"proj-1","partIndex":1,"rejectedPart":{"title":"ESP32-S3-WROOM-1"}}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	part := result["part"].(map[string]interface{})
	if part["title"] != "ESP32-C3-MINI-1" {
		t.Errorf("unexpected part: %v", part)
	}
	if result["partIndex"] != float64(1) {
		t.Errorf("unexpected partIndex: %v", result["partIndex"])
	}
}
