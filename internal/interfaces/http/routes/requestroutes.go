package routes

import (
	"github.com/gin-gonic/gin"

	requesthandlers "skynet/internal/interfaces/http/handlers/request"
)

type RequestRouteConfig struct {
	RequestHandler *requesthandlers.RequestHandler
}

func SetupRequestRoutes(engine *gin.Engine, config *RequestRouteConfig) {
	requests := engine.Group("/requests")
	{
		// IMPORTANT: Register specific paths BEFORE parameterized paths to avoid route conflicts

		// Collection operations (no ID parameter)
		requests.POST("",
			config.RequestHandler.CreateRequest)
		requests.GET("",
			config.RequestHandler.ListRequests)

		// Specific paths (must come BEFORE /:id to avoid conflicts)
		requests.GET("/by-ticket/:ticket",
			config.RequestHandler.GetRequestByTicket)

		// Generic parameterized routes (must come LAST)
		requests.GET("/:id",
			config.RequestHandler.GetRequest)
		requests.DELETE("/:id",
			config.RequestHandler.DeleteRequest)
	}
}
