package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"bompilot/internal/config"
	"bompilot/internal/database"
	"bompilot/internal/discovery"
	"bompilot/internal/handlers"
	"bompilot/internal/llm"
	"bompilot/internal/logger"
	"bompilot/internal/middleware"
	"bompilot/internal/planner"
	"bompilot/internal/search"
	"bompilot/internal/services"
	"bompilot/internal/validator"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "bompilot/internal/docs" // Import swagger docs
)

// @title           Bompilot API
// @version         1.0
// @description     Bompilot plans the bill of materials for hardware projects: it proposes part categories, sources candidate parts, and tracks the user's purchasing checklist.

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

// searchAdapter bridges the concrete search client to discovery's
// collaborator interface.
type searchAdapter struct {
	client *search.Client
}

func (a searchAdapter) Search(ctx context.Context, query string) ([]discovery.Snippet, error) {
	snippets, err := a.client.Search(ctx, query)
	if err != nil {
		return nil, err
	}
	out := make([]discovery.Snippet, len(snippets))
	for i, s := range snippets {
		out[i] = discovery.Snippet{Title: s.Title, URL: s.URL, Text: s.Text}
	}
	return out, nil
}

func run() error {
	log := logger.Get()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Register custom binding validators
	validator.Register()

	// Create database manager and run migrations
	dbManager, err := database.NewManager(appConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}
	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Pipeline collaborators. A missing search credential disables the
	// live tier; discovery then serves the sample catalog.
	llmClient := llm.NewAnthropicClient(appConfig.AnthropicAPIKey, appConfig.AnthropicModel, &http.Client{Timeout: appConfig.PlannerTimeout})

	var searcher discovery.Searcher
	if appConfig.SearchClientID != "" {
		searchClient := search.NewClient(appConfig.SearchBaseURL, appConfig.SearchClientID, appConfig.SearchClientSecret, appConfig.SearchTimeout, nil)
		searcher = searchAdapter{client: searchClient}
	} else {
		log.Warn("SEARCH_CLIENT_ID not set; live part search disabled")
	}

	categoryPlanner := planner.New(llmClient)
	discoverer := discovery.New(searcher, llmClient)

	// Initialize services
	db := dbManager.DB()
	userService := services.NewUserService(db)
	projectService := services.NewProjectService(db)
	partsService := services.NewPartsService(db, categoryPlanner, discoverer)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService)
	projectHandler := handlers.NewProjectHandler(projectService)
	partsHandler := handlers.NewPartsHandler(partsService)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 group
	v1 := router.Group("/api/v1")

	// Public routes
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.Refresh)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	// User profile
	protected.GET("/profile", authHandler.GetProfile)

	// Project routes
	projects := protected.Group("/projects")
	projects.POST("", projectHandler.CreateProject)
	projects.GET("", projectHandler.GetUserProjects)
	projects.GET("/:id", projectHandler.GetProjectByID)
	projects.PUT("/:id", projectHandler.UpdateProject)
	projects.DELETE("/:id", projectHandler.DeleteProject)

	// Parts planning routes
	projects.GET("/:id/parts/categories", partsHandler.GetCategories)
	projects.POST("/:id/parts/categories", partsHandler.GenerateCategories)
	projects.PATCH("/:id/parts/categories", partsHandler.ReplaceCategories)
	projects.POST("/:id/parts/categories/add", partsHandler.AddCategory)
	projects.POST("/:id/parts/categories/:categoryId/suggestions/:suggestionId", partsHandler.SuggestionAction)
	projects.POST("/:id/parts/categories/:categoryId/items", partsHandler.AddCustomItem)
	projects.PATCH("/:id/parts/categories/:categoryId/items/:itemId", partsHandler.ToggleCustomItem)
	projects.DELETE("/:id/parts/categories/:categoryId/items/:itemId", partsHandler.RemoveCustomItem)

	// Legacy flat-recommendation routes
	parts := protected.Group("/parts")
	parts.GET("/recommendations", partsHandler.GetRecommendations)
	parts.POST("/select", partsHandler.SelectPart)
	parts.POST("/regenerate", partsHandler.RegeneratePart)

	log.Infof("Starting Bompilot backend server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
