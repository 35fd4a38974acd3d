package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	apperrors "bompilot/internal/errors"
	"bompilot/internal/models"
	"bompilot/internal/pagination"
)

// projectService handles project-related business logic.
type projectService struct {
	db *gorm.DB
}

// NewProjectService creates a new ProjectServicer.
func NewProjectService(db *gorm.DB) ProjectServicer {
	return &projectService{db: db}
}

// CreateProject creates a new project for a user.
func (s *projectService) CreateProject(userID, name string, projectType models.ProjectType, summary string, complexity int, budget *float64, currency string) (*models.Project, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "project name is required")
	}
	if complexity < 1 || complexity > 10 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "complexity must be between 1 and 10")
	}
	if budget != nil && *budget < 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "budget cannot be negative")
	}
	if currency == "" {
		currency = "USD"
	}

	project := &models.Project{
		UserID:     userID,
		Name:       name,
		Type:       projectType,
		Summary:    summary,
		Complexity: complexity,
		Budget:     budget,
		Currency:   strings.ToUpper(currency),
	}

	if err := s.db.Create(project).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return project, nil
}

// GetUserProjects retrieves a paginated list of projects for a user.
func (s *projectService) GetUserProjects(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.Project], error) {
	page.Defaults()

	var totalItems int64
	base := s.db.Model(&models.Project{}).Where("user_id = ?", userID)
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var projects []models.Project
	if err := base.Order("created_at DESC").Scopes(pagination.Paginate(page)).Find(&projects).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(projects, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetProjectByID retrieves a project by ID for a specific user.
func (s *projectService) GetProjectByID(userID, projectID string) (*models.Project, error) {
	var project models.Project
	if err := s.db.Where("id = ? AND user_id = ?", projectID, userID).First(&project).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrProjectNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &project, nil
}

// UpdateProject updates an existing project. Empty or nil fields are left
// untouched; the project type is immutable after creation.
func (s *projectService) UpdateProject(userID, projectID, name, summary string, complexity *int, budget *float64, currency string) (*models.Project, error) {
	project, err := s.GetProjectByID(userID, projectID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if name = strings.TrimSpace(name); name != "" {
		updates["name"] = name
	}
	if summary != "" {
		updates["summary"] = summary
	}
	if complexity != nil {
		if *complexity < 1 || *complexity > 10 {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "complexity must be between 1 and 10")
		}
		updates["complexity"] = *complexity
	}
	if budget != nil {
		if *budget < 0 {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "budget cannot be negative")
		}
		updates["budget"] = *budget
	}
	if currency != "" {
		updates["currency"] = strings.ToUpper(currency)
	}

	if len(updates) > 0 {
		if err := s.db.Model(project).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}
	return project, nil
}

// DeleteProject soft-deletes a project and its parts plan.
func (s *projectService) DeleteProject(userID, projectID string) error {
	project, err := s.GetProjectByID(userID, projectID)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", projectID).Delete(&models.PartsPlan{}).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := tx.Delete(project).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
}
