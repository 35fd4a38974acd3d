package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"bompilot/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a hashed password and unique email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	email := fmt.Sprintf("user%d@test.com", nextID())
	return CreateTestUserWithEmail(t, db, email)
}

// CreateTestUserWithEmail creates a user with the given email.
func CreateTestUserWithEmail(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Email:    email,
		Password: string(hash),
		IsActive: true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestProject creates a PCB project for the given user.
func CreateTestProject(t *testing.T, db *gorm.DB, userID string) *models.Project {
	t.Helper()
	return CreateTestProjectOfType(t, db, userID, models.ProjectTypePCB)
}

// CreateTestProjectOfType creates a project of the given type.
func CreateTestProjectOfType(t *testing.T, db *gorm.DB, userID string, projectType models.ProjectType) *models.Project {
	t.Helper()

	budget := 150.0
	project := &models.Project{
		UserID:     userID,
		Name:       fmt.Sprintf("Test Project %d", nextID()),
		Type:       projectType,
		Summary:    "Environmental sensor node",
		Complexity: 5,
		Budget:     &budget,
		Currency:   "USD",
	}
	if err := db.Create(project).Error; err != nil {
		t.Fatalf("failed to create test project: %v", err)
	}
	return project
}

// CreateTestPlan stores a parts plan document for the given project.
func CreateTestPlan(t *testing.T, db *gorm.DB, userID, projectID string, categories []models.Category) *models.PartsPlan {
	t.Helper()

	now := time.Now().UTC()
	plan := &models.PartsPlan{
		UserID:      userID,
		ProjectID:   projectID,
		Categories:  categories,
		GeneratedAt: &now,
	}
	if err := db.Create(plan).Error; err != nil {
		t.Fatalf("failed to create test plan: %v", err)
	}
	return plan
}

// TestSuggestion returns a pending suggestion with a unique id and title.
func TestSuggestion() models.Suggestion {
	n := nextID()
	price := 4.50
	return models.Suggestion{
		ID:          fmt.Sprintf("sug-%d", n),
		Title:       fmt.Sprintf("Test Part %d", n),
		Description: "A part used in tests",
		Supplier:    "mouser.com",
		Price:       &price,
		Currency:    "USD",
		Status:      models.StatusPending,
		Confidence:  models.ConfidenceSample,
		Source:      models.SourceSampleDataset,
	}
}

// TestCategory returns a category holding the given suggestions.
func TestCategory(name string, suggestions ...models.Suggestion) models.Category {
	now := time.Now().UTC()
	return models.Category{
		ID:          fmt.Sprintf("cat-%d", nextID()),
		Name:        name,
		Description: "Category used in tests",
		SearchTerms: []string{name},
		Suggestions: suggestions,
		UserItems:   []models.UserItem{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
