package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "bompilot/internal/errors"
	"bompilot/internal/models"
	"bompilot/internal/services"
)

// PartsHandler handles parts planning requests
type PartsHandler struct {
	partsService services.PartsServicer
}

// NewPartsHandler creates a new PartsHandler
func NewPartsHandler(partsService services.PartsServicer) *PartsHandler {
	return &PartsHandler{partsService: partsService}
}

// GenerateCategoriesRequest represents the category generation payload
type GenerateCategoriesRequest struct {
	Currency string `json:"currency" binding:"omitempty,iso4217"`
}

// ReplaceCategoriesRequest represents the bulk category update payload
type ReplaceCategoriesRequest struct {
	Categories []models.Category `json:"categories" binding:"required"`
}

// AddCategoryRequest represents the category scaffold payload
type AddCategoryRequest struct {
	Name        string `json:"name" binding:"required,max=200"`
	Description string `json:"description" binding:"max=2000"`
}

// SuggestionActionRequest represents a lifecycle action payload
type SuggestionActionRequest struct {
	Action string `json:"action" binding:"required,suggestion_action"`
}

// AddItemRequest represents the custom item payload
type AddItemRequest struct {
	Title string `json:"title" binding:"required,max=300"`
}

// SelectPartRequest represents the legacy selection payload
type SelectPartRequest struct {
	ProjectID string `json:"projectId" binding:"required"`
	PartIndex int    `json:"partIndex" binding:"min=0"`
	Action    string `json:"action" binding:"required,select_action"`
}

// RejectedPart carries the part being replaced in a regeneration request
type RejectedPart struct {
	Title string `json:"title"`
}

// RegeneratePartRequest represents the legacy regeneration payload
type RegeneratePartRequest struct {
	ProjectID    string       `json:"projectId" binding:"required"`
	PartIndex    int          `json:"partIndex" binding:"min=0"`
	RejectedPart RejectedPart `json:"rejectedPart"`
}

// GetCategories returns the project's parts plan
// @Summary     Get part categories
// @Description Get the project's category list and last-generated timestamp
// @Tags        parts
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Project ID"
// @Success     200 {object} services.PlanDocument "Plan document"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /projects/{id}/parts/categories [get]
func (h *PartsHandler) GetCategories(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	doc, err := h.partsService.GetPlan(userID, c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"categories":  doc.Categories,
		"generatedAt": doc.GeneratedAt,
	})
}

// GenerateCategories runs the full planning pipeline
// @Summary     Generate part categories
// @Description Plan categories and discover candidate parts, replacing the stored plan
// @Tags        parts
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Project ID"
// @Param       request body GenerateCategoriesRequest true "Generation options"
// @Success     200 {object} services.PlanDocument "Generated plan"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Not found"
// @Failure     502 {object} ErrorResponse "Persistence failed"
// @Router      /projects/{id}/parts/categories [post]
func (h *PartsHandler) GenerateCategories(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req GenerateCategoriesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	doc, err := h.partsService.GenerateCategories(c.Request.Context(), userID, c.Param("id"), req.Currency)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"categories": doc.Categories})
}

// ReplaceCategories persists a caller-supplied category list
// @Summary     Replace part categories
// @Description Validate and persist the given category list verbatim
// @Tags        parts
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Project ID"
// @Param       request body ReplaceCategoriesRequest true "Full category list"
// @Success     200 {object} map[string]bool "Persisted"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /projects/{id}/parts/categories [patch]
func (h *PartsHandler) ReplaceCategories(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req ReplaceCategoriesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	if _, err := h.partsService.ReplaceCategories(userID, c.Param("id"), req.Categories); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// AddCategory appends an empty category scaffold
// @Summary     Add a category
// @Description Append a user-authored category with no suggestions
// @Tags        parts
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Project ID"
// @Param       request body AddCategoryRequest true "Category data"
// @Success     201 {object} services.PlanDocument "Updated plan"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /projects/{id}/parts/categories/add [post]
func (h *PartsHandler) AddCategory(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req AddCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	doc, err := h.partsService.AddCategory(userID, c.Param("id"), req.Name, req.Description)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"categories": doc.Categories})
}

// SuggestionAction applies a lifecycle action to a suggestion
// @Summary     Apply a suggestion action
// @Description Accept, dismiss, restore, toggle-owned, or remove a suggestion
// @Tags        parts
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Project ID"
// @Param       categoryId path string true "Category ID"
// @Param       suggestionId path string true "Suggestion ID"
// @Param       request body SuggestionActionRequest true "Action"
// @Success     200 {object} services.PlanDocument "Updated plan"
// @Failure     400 {object} ErrorResponse "Invalid action or transition"
// @Failure     404 {object} ErrorResponse "Not found"
// @Failure     502 {object} ErrorResponse "Persistence failed"
// @Router      /projects/{id}/parts/categories/{categoryId}/suggestions/{suggestionId} [post]
func (h *PartsHandler) SuggestionAction(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req SuggestionActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	doc, err := h.partsService.ApplySuggestionAction(userID, c.Param("id"), c.Param("categoryId"), c.Param("suggestionId"), req.Action)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"categories": doc.Categories})
}

// AddCustomItem appends a checklist item to a category
// @Summary     Add a custom item
// @Tags        parts
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Project ID"
// @Param       categoryId path string true "Category ID"
// @Param       request body AddItemRequest true "Item data"
// @Success     201 {object} services.PlanDocument "Updated plan"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /projects/{id}/parts/categories/{categoryId}/items [post]
func (h *PartsHandler) AddCustomItem(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	doc, err := h.partsService.AddCustomItem(userID, c.Param("id"), c.Param("categoryId"), req.Title)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"categories": doc.Categories})
}

// ToggleCustomItem flips a checklist item's done flag
// @Summary     Toggle a custom item
// @Tags        parts
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Project ID"
// @Param       categoryId path string true "Category ID"
// @Param       itemId path string true "Item ID"
// @Success     200 {object} services.PlanDocument "Updated plan"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /projects/{id}/parts/categories/{categoryId}/items/{itemId} [patch]
func (h *PartsHandler) ToggleCustomItem(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	doc, err := h.partsService.ToggleCustomItem(userID, c.Param("id"), c.Param("categoryId"), c.Param("itemId"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"categories": doc.Categories})
}

// RemoveCustomItem deletes a checklist item
// @Summary     Remove a custom item
// @Tags        parts
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Project ID"
// @Param       categoryId path string true "Category ID"
// @Param       itemId path string true "Item ID"
// @Success     200 {object} services.PlanDocument "Updated plan"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /projects/{id}/parts/categories/{categoryId}/items/{itemId} [delete]
func (h *PartsHandler) RemoveCustomItem(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	doc, err := h.partsService.RemoveCustomItem(userID, c.Param("id"), c.Param("categoryId"), c.Param("itemId"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"categories": doc.Categories})
}

// GetRecommendations returns the legacy flat recommendation list
// @Summary     Get legacy recommendations
// @Description Get the project's flat recommendation list and selection map
// @Tags        parts
// @Produce     json
// @Security    BearerAuth
// @Param       projectId query string true "Project ID"
// @Success     200 {object} map[string]interface{} "Recommendations"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /parts/recommendations [get]
func (h *PartsHandler) GetRecommendations(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	projectID := c.Query("projectId")
	if projectID == "" {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "projectId is required"))
		return
	}

	recs, selections, err := h.partsService.GetRecommendations(userID, projectID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"recommendations": recs, "selections": selections})
}

// SelectPart applies a legacy index-addressed selection
// @Summary     Select a legacy part
// @Description Apply accept, reject, or remove to a flat recommendation by index
// @Tags        parts
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body SelectPartRequest true "Selection"
// @Success     200 {object} map[string]interface{} "Updated selections"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /parts/select [post]
func (h *PartsHandler) SelectPart(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req SelectPartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	selections, err := h.partsService.SelectPart(userID, req.ProjectID, req.PartIndex, req.Action)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "selections": selections})
}

// RegeneratePart replaces a legacy recommendation slot
// @Summary     Regenerate a legacy part
// @Description Replace one flat recommendation with a fresh candidate avoiding the rejected part
// @Tags        parts
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body RegeneratePartRequest true "Regeneration request"
// @Success     200 {object} map[string]interface{} "Replacement part"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /parts/regenerate [post]
func (h *PartsHandler) RegeneratePart(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req RegeneratePartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	part, err := h.partsService.RegeneratePart(c.Request.Context(), userID, req.ProjectID, req.PartIndex, req.RejectedPart.Title)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "part": part, "partIndex": req.PartIndex})
}
