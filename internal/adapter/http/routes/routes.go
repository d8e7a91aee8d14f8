package routes

import (
	"github.com/gin-gonic/gin"

	"userapp/internal/adapter/http/handler"
	"userapp/internal/adapter/http/middleware"
	. "userapp/pkg/config"
	. "userapp/pkg/middlewares"
	. "userapp/pkg/tracing"
)

type HandlersConfig struct {
	UserHandler *handler.UserHandler
	DemoHandler *handler.DemoHandler
}

func SetupRouter(handlers HandlersConfig, metrics *AppMetrics, logger *AppLogger) *gin.Engine {
	return SetupRouterWithConfig(handlers, metrics, logger, GetDefaultConfig())
}

func SetupRouterWithConfig(handlers HandlersConfig, metrics *AppMetrics, logger *AppLogger, config *AppConfig) *gin.Engine {
	if gin.Mode() == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	SetupGinMiddlewareWithConfig(router, "userapp", metrics, logger, config)

	router.Use(gin.Recovery())
	router.Use(corsMiddleware())
	router.Use(middleware.RequestIDMiddleware())

	setupRoutes(router, handlers)

	return router
}

func setupRoutes(router *gin.Engine, handlers HandlersConfig) {
	if handlers.DemoHandler != nil {
		router.GET("/", handlers.DemoHandler.Root)
		router.POST("/add", handlers.DemoHandler.AddNumbers)
	}

	if handlers.UserHandler != nil {
		users := router.Group("/api/users")
		{
			users.POST("", handlers.UserHandler.CreateUser)
			users.GET("", handlers.UserHandler.GetAllUsers)
			users.GET("/:id", handlers.UserHandler.GetUserByID)
			users.PUT("/:id", handlers.UserHandler.UpdateUser)
			users.DELETE("/:id", handlers.UserHandler.DeleteUser)
		}
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

// SetupRouterForTests wires routes without telemetry middleware.
func SetupRouterForTests(handlers HandlersConfig) *gin.Engine {
	gin.SetMode(gin.TestMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(corsMiddleware())
	router.Use(middleware.RequestIDMiddleware())

	setupRoutes(router, handlers)

	return router
}
