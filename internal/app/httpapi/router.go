// Package httpapi exposes the application services over a REST API.
package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	app "github.com/golden-burguer/appcore/internal/app"
	"github.com/golden-burguer/appcore/internal/app/metrics"
	"github.com/golden-burguer/appcore/pkg/logger"
)

// NewRouter builds the gin engine exposing the core REST API.
func NewRouter(application *app.Application, log *logger.Logger) *gin.Engine {
	if log == nil {
		log = logger.NewDefault("httpapi")
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), RequestID(), Metrics())

	h := &handler{app: application, log: log}

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	auth := router.Group("/auth")
	{
		auth.POST("/register", h.register)
		auth.POST("/login", h.login)
		auth.POST("/logout", h.logout)
		auth.GET("/session", h.session)
	}

	catalog := router.Group("/catalog")
	{
		catalog.GET("", h.catalogState)
		catalog.POST("/products/:id/favorite", h.toggleFavorite)
	}

	cartGroup := router.Group("/cart")
	{
		cartGroup.GET("", h.cart)
		cartGroup.POST("/items", h.addToCart)
		cartGroup.POST("/items/:id/increase", h.increaseQuantity)
		cartGroup.POST("/items/:id/decrease", h.decreaseQuantity)
		cartGroup.DELETE("", h.clearCart)
	}

	profileGroup := router.Group("/profile")
	{
		profileGroup.GET("", h.profile)
		profileGroup.PUT("", h.saveProfile)
	}

	prefs := router.Group("/preferences")
	{
		prefs.GET("/dark-mode", h.darkMode)
		prefs.PUT("/dark-mode", h.setDarkMode)
	}

	return router
}
