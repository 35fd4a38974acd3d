package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "bompilot/internal/errors"
	"bompilot/internal/models"
	"bompilot/internal/pagination"
	"bompilot/internal/services"
)

// ProjectHandler handles project-related requests
type ProjectHandler struct {
	projectService services.ProjectServicer
}

// NewProjectHandler creates a new ProjectHandler
func NewProjectHandler(projectService services.ProjectServicer) *ProjectHandler {
	return &ProjectHandler{projectService: projectService}
}

// CreateProjectRequest represents the project creation payload
type CreateProjectRequest struct {
	Name       string   `json:"name" binding:"required,max=200"`
	Type       string   `json:"type" binding:"required,project_type"`
	Summary    string   `json:"summary" binding:"max=2000"`
	Complexity int      `json:"complexity" binding:"omitempty,min=1,max=10"`
	Budget     *float64 `json:"budget" binding:"omitempty,min=0"`
	Currency   string   `json:"currency" binding:"omitempty,iso4217"`
}

// UpdateProjectRequest represents the project update payload
type UpdateProjectRequest struct {
	Name       string   `json:"name" binding:"omitempty,max=200"`
	Summary    string   `json:"summary" binding:"omitempty,max=2000"`
	Complexity *int     `json:"complexity" binding:"omitempty,min=1,max=10"`
	Budget     *float64 `json:"budget" binding:"omitempty,min=0"`
	Currency   string   `json:"currency" binding:"omitempty,iso4217"`
}

// CreateProject handles project creation
// @Summary     Create a project
// @Description Create a new hardware project for the authenticated user
// @Tags        projects
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateProjectRequest true "Project data"
// @Success     201 {object} models.Project "Project created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /projects [post]
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}
	if req.Complexity == 0 {
		req.Complexity = 5
	}

	project, err := h.projectService.CreateProject(userID, req.Name, models.ProjectType(req.Type), req.Summary, req.Complexity, req.Budget, req.Currency)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, project)
}

// GetUserProjects lists the user's projects
// @Summary     List projects
// @Description Get a paginated list of the authenticated user's projects
// @Tags        projects
// @Produce     json
// @Security    BearerAuth
// @Param       page query int false "Page number"
// @Param       page_size query int false "Page size"
// @Success     200 {object} pagination.PageResponse[models.Project] "Projects"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /projects [get]
func (h *ProjectHandler) GetUserProjects(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.projectService.GetUserProjects(userID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetProjectByID returns a single project
// @Summary     Get a project
// @Description Get one of the authenticated user's projects by ID
// @Tags        projects
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Project ID"
// @Success     200 {object} models.Project "Project"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /projects/{id} [get]
func (h *ProjectHandler) GetProjectByID(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	project, err := h.projectService.GetProjectByID(userID, c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, project)
}

// UpdateProject updates a project
// @Summary     Update a project
// @Description Update an existing project's editable fields
// @Tags        projects
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Project ID"
// @Param       request body UpdateProjectRequest true "Fields to update"
// @Success     200 {object} models.Project "Updated project"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /projects/{id} [put]
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	project, err := h.projectService.UpdateProject(userID, c.Param("id"), req.Name, req.Summary, req.Complexity, req.Budget, req.Currency)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, project)
}

// DeleteProject deletes a project
// @Summary     Delete a project
// @Description Delete a project and its parts plan
// @Tags        projects
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Project ID"
// @Success     200 {object} map[string]bool "Deleted"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /projects/{id} [delete]
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.projectService.DeleteProject(userID, c.Param("id")); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
