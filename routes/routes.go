package routes

import (
	"github.com/aurahealth/aura-backend/controllers"
	"github.com/aurahealth/aura-backend/libs"
	"github.com/gin-gonic/gin"
)

type Handlers struct {
	Auth     *controllers.AuthHandler
	Chat     *controllers.ChatHandler
	Mood     *controllers.MoodHandler
	Activity *controllers.ActivityHandler
}

func InitRoutes(router *gin.Engine, h Handlers, jwtSecret string) {
	router.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	router.POST("/auth/register", h.Auth.Register)
	router.POST("/auth/login", h.Auth.Login)

	authed := router.Group("/")
	authed.Use(libs.JWTMiddleware(jwtSecret))
	{
		authed.POST("/auth/logout", h.Auth.Logout)
		authed.GET("/auth/me", h.Auth.Me)

		chat := authed.Group("/chat")
		{
			chat.GET("/sessions", h.Chat.GetSessions)
			chat.POST("/sessions", h.Chat.CreateSession)
			chat.GET("/sessions/:sessionId", h.Chat.GetSession)
			chat.POST("/sessions/:sessionId/messages", h.Chat.SendMessage)
			chat.GET("/sessions/:sessionId/history", h.Chat.GetHistory)
		}

		api := authed.Group("/api")
		{
			api.POST("/mood", h.Mood.CreateMood)

			activity := api.Group("/activity")
			{
				activity.POST("/log", h.Activity.LogActivity)
				activity.GET("/upcoming", h.Activity.GetUpcomingActivities)
				activity.GET("/history", h.Activity.GetActivityHistory)
				activity.GET("/stats", h.Activity.GetActivityStats)
				activity.PATCH("/:activityId/status", h.Activity.UpdateActivityStatus)
			}
		}
	}
}
