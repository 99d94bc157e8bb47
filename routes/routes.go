package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/stylu-app/backend/config"
	"github.com/stylu-app/backend/controllers"
	"github.com/stylu-app/backend/middlewares"
)

func SetupRouter(
	cfg *config.Config,
	calendar *controllers.CalendarController,
	outfits *controllers.OutfitController,
	push *controllers.PushController,
	notifications *controllers.NotificationController,
) *gin.Engine {
	r := gin.Default()
	r.Use(middlewares.CORS(cfg.AllowedOrigins))

	api := r.Group("/api")

	// Public routes. The notification save authenticates as the service,
	// not the caller: it has to succeed for logged-out users.
	api.GET("/user/test", controllers.Test)
	api.POST("/notifications", notifications.Save)

	authed := api.Group("")
	authed.Use(middlewares.SupabaseAuth(cfg.SupabaseURL, cfg.SupabaseJWTSecret))
	{
		authed.GET("/user/profile", controllers.Profile)

		calendarGroup := authed.Group("/calendar")
		{
			calendarGroup.POST("/schedule", calendar.Schedule)
			calendarGroup.GET("/scheduled", calendar.Scheduled)
			calendarGroup.PUT("/schedule/:id", calendar.Update)
			calendarGroup.DELETE("/schedule/:id", calendar.Delete)
			calendarGroup.GET("/debug/check-schedules", calendar.CheckSchedules)
		}

		outfitGroup := authed.Group("/outfits")
		{
			outfitGroup.GET("", outfits.List)
			outfitGroup.POST("", outfits.Create)
			outfitGroup.PUT("/:id", outfits.Update)
			outfitGroup.GET("/:id/items", outfits.Items)
			outfitGroup.DELETE("/:id", outfits.Delete)
		}

		pushGroup := authed.Group("/push")
		{
			pushGroup.POST("/register", push.Register)
			pushGroup.POST("/unregister", push.Unregister)
			pushGroup.POST("/send", push.Send)
			pushGroup.POST("/send-to-topic", push.SendToTopic)
		}
	}

	return r
}
