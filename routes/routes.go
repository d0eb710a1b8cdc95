package routes

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"backend/config"
	"backend/controllers"
	"backend/middlewares"
	"backend/services"
)

func SetupRouter() *gin.Engine {
	r := gin.Default()
	r.Use(cors.Default())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	hub := services.NewRealtimeHub()
	services.InitAlertDeps(config.DB, hub)

	logSvc := services.NewLogService(config.DB)
	insightSvc := services.NewInsightService(config.DB)
	foodSvc := services.NewSpoonacularService()
	coachSvc := services.NewCoachService(services.NewFeatherlessService())

	logCtl := controllers.NewLogController(logSvc)
	aiCtl := controllers.NewAIController(coachSvc, foodSvc, insightSvc, logSvc)
	rtCtl := controllers.NewRealtimeController(hub)

	// Public auth routes
	auth := r.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)
	}

	// Protected child profile routes
	children := r.Group("/children")
	children.Use(middlewares.AuthMiddleware())
	{
		children.POST("", controllers.CreateChild)
		children.GET("", controllers.ListChildren)
	}

	// Protected daily log routes
	logs := r.Group("/logs")
	logs.Use(middlewares.AuthMiddleware())
	{
		logs.POST("", logCtl.CreateDailyLog)
		logs.GET("", logCtl.ListDailyLogs)
	}

	// Protected AI / insight routes
	ai := r.Group("/ai")
	ai.Use(middlewares.AuthMiddleware())
	{
		ai.GET("/nutrition/search", aiCtl.NutritionSearch)
		ai.POST("/coach", aiCtl.CoachMessage)
		ai.POST("/chat", aiCtl.Chat)
		ai.GET("/summary", aiCtl.Summary)
		ai.GET("/daily-insight", aiCtl.DailyInsight)
		ai.GET("/recommendations", aiCtl.Recommendations)
	}

	// Realtime alerts over websocket
	realtime := r.Group("/realtime")
	realtime.Use(middlewares.AuthMiddleware())
	{
		realtime.GET("/alerts", rtCtl.AlertsWS)
	}

	return r
}
