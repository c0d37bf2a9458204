package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"research-blog-backend/internal/shared/middleware"
	"research-blog-backend/internal/shared/response"
	"research-blog-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.ClientIP(),
		middleware.Logger(),
		middleware.CORS(c.Config.HTTP.AllowedOrigins),
		middleware.Timeout(c.Config.HTTP.RequestTimeout),
	)

	protect := middleware.Protect(c.JWTManager, c.UserRepo, c.Revocations)
	admin := middleware.AdminOnly()

	api := router.Group("/api")
	{
		api.GET("", livenessHandler)
		api.GET("/health", healthCheckHandler(c))

		setupAuthRoutes(api, c, protect, admin)
		setupAuthorRoutes(api, c, protect, admin)
		setupTeamRoutes(api, c, protect, admin)
		setupPostRoutes(api, c, protect, admin)
	}

	router.NoRoute(func(ctx *gin.Context) {
		response.Abort(ctx, http.StatusNotFound, "Route not found")
	})

	return router
}

// ========================================
// AUTH ROUTES
// ========================================
func setupAuthRoutes(api *gin.RouterGroup, c *container.Container, protect, admin gin.HandlerFunc) {
	auth := api.Group("/auth")
	{
		auth.POST("/register", c.AuthHandler.Register)
		auth.POST("/login", c.AuthHandler.Login)
		auth.GET("/logout", protect, c.AuthHandler.Logout)
		auth.GET("/me", protect, c.AuthHandler.GetMe)

		// Admin user management
		auth.GET("/users", protect, admin, c.UserHandler.ListUsers)
		auth.GET("/user/:id", protect, admin, c.UserHandler.GetUser)
		auth.PUT("/user/:id", protect, admin, c.UserHandler.UpdateUser)
		auth.DELETE("/user/:id", protect, admin, c.UserHandler.DeleteUser)
	}
}

// ========================================
// AUTHOR ROUTES
// ========================================
func setupAuthorRoutes(api *gin.RouterGroup, c *container.Container, protect, admin gin.HandlerFunc) {
	authors := api.Group("/author")
	{
		authors.GET("", c.AuthorHandler.List)
		authors.GET("/:id", c.AuthorHandler.GetByID)

		authors.POST("", protect, admin, c.AuthorHandler.Create)
		authors.PUT("/:id", protect, admin, c.AuthorHandler.Update)
		authors.DELETE("/:id", protect, admin, c.AuthorHandler.Delete)
		authors.PUT("/:id/image", protect, admin, c.AuthorHandler.UploadImage)
	}
}

// ========================================
// TEAM ROUTES
// ========================================
func setupTeamRoutes(api *gin.RouterGroup, c *container.Container, protect, admin gin.HandlerFunc) {
	teams := api.Group("/team")
	{
		teams.GET("", c.TeamHandler.List)
		teams.GET("/:id", c.TeamHandler.GetByID)

		teams.POST("", protect, admin, c.TeamHandler.Create)
		teams.PUT("/:id", protect, admin, c.TeamHandler.Update)
		teams.DELETE("/:id", protect, admin, c.TeamHandler.Delete)
		teams.PUT("/:id/image", protect, admin, c.TeamHandler.UploadImage)
	}
}

// ========================================
// POST ROUTES
// ========================================
func setupPostRoutes(api *gin.RouterGroup, c *container.Container, protect, admin gin.HandlerFunc) {
	posts := api.Group("/post")
	{
		posts.GET("", c.PostHandler.List)
		posts.GET("/export", protect, admin, c.PostHandler.Export)
		posts.GET("/user/:id", c.PostHandler.ListByOwner)
		posts.GET("/:id", c.PostHandler.GetByID)

		posts.POST("", protect, admin, c.PostHandler.Create)
		posts.PUT("/:id", protect, admin, c.PostHandler.Update)
		posts.DELETE("/:id", protect, admin, c.PostHandler.Delete)
		posts.PUT("/:id/cover", protect, admin, c.PostHandler.UploadCover)
	}
}

// ========================================
// HEALTH
// ========================================

func livenessHandler(ctx *gin.Context) {
	response.Success(ctx, http.StatusOK, gin.H{"message": "Research blog API is running"})
}

// healthCheckHandler answers 503 only when the database is down.
func healthCheckHandler(c *container.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		status, healthy := c.Health(ctx.Request.Context())
		if !healthy {
			ctx.JSON(http.StatusServiceUnavailable, response.Response{Success: false, Data: status, Error: "Service unavailable"})
			return
		}
		response.Success(ctx, http.StatusOK, status)
	}
}
