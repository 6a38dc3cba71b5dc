package routes

import (
	"payhook_backend/internal/handlers"
	"payhook_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers all HTTP routes.
func RegisterRoutes(ginRouter *gin.Engine, appHandlers *handlers.AppHandlers) {
	// Health endpoints live on the root, outside the API prefix.
	appHandlers.HealthHandler.RegisterRoutes(ginRouter)

	api := ginRouter.Group("/api")
	{
		appHandlers.WebhookHandler.RegisterRoutes(api)
	}

	// Unknown paths get the standard JSON error body instead of gin's
	// plain-text default.
	ginRouter.NoRoute(func(c *gin.Context) {
		apperrors.HandleError(c, apperrors.ErrRouteNotFound)
	})
}
