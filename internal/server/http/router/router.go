package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/polkiloo/identity/internal/server/http/handlers"
	"github.com/polkiloo/identity/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.IdentityFacade, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	authHandler := handlers.NewAuthHandler(facade)
	profileHandler := handlers.NewProfileHandler(facade)
	adminHandler := handlers.NewAdminHandler(facade)

	api := engine.Group("/api")
	auth := api.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/verify/confirm", profileHandler.ConfirmVerification)

	protected := auth.Group("")
	protected.Use(middleware.AuthRequired(facade))
	protected.GET("/me", authHandler.Me)
	protected.POST("/change-password", authHandler.ChangePassword)
	protected.PUT("/profile", profileHandler.Update)
	protected.POST("/verify/request", profileHandler.RequestVerification)

	admin := protected.Group("/admin")
	admin.Use(middleware.AdminRequired())
	admin.POST("/reset-password", adminHandler.ResetPassword)

	return engine
}
