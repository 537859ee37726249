package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/vinealis/vinea-backend/internal/handler"
	"github.com/vinealis/vinea-backend/internal/middleware"
	"github.com/vinealis/vinea-backend/pkg/jwt"
)

// Setup configures all API routes
func Setup(
	router *gin.Engine,
	pageHandler *handler.PageHandler,
	overrideHandler *handler.OverrideHandler,
	themeHandler *handler.ThemeHandler,
	auditHandler *handler.AuditHandler,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	imageHandler *handler.ImageHandler,
	jwtManager *jwt.Manager,
	redisClient *redis.Client,
	cacheCfg middleware.CacheConfig,
) {
	api := router.Group("/api/v1")

	authRequired := middleware.JWTAuth(jwtManager)
	cached := middleware.Cache(redisClient, cacheCfg)

	// Authentication endpoints
	auth := api.Group("/auth")
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.RefreshToken)
	auth.POST("/logout", authRequired, authHandler.Logout)
	auth.GET("/me", authRequired, authHandler.GetCurrentUser)

	// Pages and versions
	pages := api.Group("/pages")
	pages.GET("", pageHandler.ListPages)
	pages.POST("", authRequired, middleware.RequireAdmin(), pageHandler.CreatePage)
	pages.GET("/:route", pageHandler.GetPage)
	pages.DELETE("/:route", authRequired, middleware.RequireAdmin(), pageHandler.DeletePage)

	// Resolved content for the public site (cached)
	pages.GET("/:route/content", cached, pageHandler.GetPageContent)

	pages.GET("/:route/versions", authRequired, middleware.RequireEditor(), pageHandler.ListVersions)
	pages.POST("/:route/versions", authRequired, middleware.RequireEditor(), pageHandler.SaveDraftVersion)
	pages.POST("/:route/publish", authRequired, middleware.RequireEditor(), pageHandler.Publish)
	pages.DELETE("/:route/draft", authRequired, middleware.RequireEditor(), pageHandler.DiscardDraft)

	// Content block overrides
	pages.GET("/:route/blocks", cached, overrideHandler.GetPublishedBlocks)
	pages.POST("/:route/blocks", authRequired, middleware.RequireEditor(), overrideHandler.SaveDraft)
	pages.GET("/:route/blocks/:key/history", authRequired, middleware.RequireEditor(), overrideHandler.GetHistory)

	overrides := api.Group("/overrides", authRequired, middleware.RequireEditor())
	overrides.POST("/:id/publish", overrideHandler.PublishDraft)
	overrides.POST("/:id/revert", overrideHandler.Revert)

	// Theme tokens
	theme := api.Group("/theme")
	theme.GET("", cached, themeHandler.GetTheme)
	theme.GET("/defaults", authRequired, middleware.RequireEditor(), themeHandler.ListDefaults)
	theme.GET("/overrides", authRequired, middleware.RequireEditor(), themeHandler.ListOverrides)
	theme.PUT("/overrides/:default_id", authRequired, middleware.RequireEditor(), themeHandler.SaveOverride)
	theme.DELETE("/overrides/:default_id", authRequired, middleware.RequireEditor(), themeHandler.DeleteOverride)

	// Audit log (admin only)
	api.GET("/audit", authRequired, middleware.RequireAdmin(), auditHandler.ListLogs)

	// Account management (admin only)
	users := api.Group("/users", authRequired, middleware.RequireAdmin())
	users.GET("", userHandler.ListUsers)
	users.GET("/roles", userHandler.ListRoles)
	users.GET("/:id", userHandler.GetUser)
	users.POST("", userHandler.CreateUser)
	users.PUT("/:id", userHandler.UpdateUser)
	users.DELETE("/:id", userHandler.DeleteUser)

	// Media
	images := api.Group("/images", authRequired, middleware.RequireEditor())
	images.POST("", imageHandler.Upload)
	images.GET("", imageHandler.ListImages)
	images.DELETE("/:id", imageHandler.DeleteImage)
}
