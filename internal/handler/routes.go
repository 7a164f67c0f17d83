package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/yourusername/pylearn-api/internal/middleware"
)

// RegisterRoutes регистрирует HTTP и WebSocket маршруты.
// rateLimiter может быть nil, тогда создание сессий не ограничивается.
func RegisterRoutes(
	router *gin.Engine,
	gameHandler *GameHandler,
	leaderboardHandler *LeaderboardHandler,
	wsHandler *WSHandler,
	rateLimiter *middleware.RateLimiter,
	sessionsPerMinute int,
) {
	api := router.Group("/api")
	{
		api.GET("/difficulties", gameHandler.GetDifficulties)

		api.POST("/sessions",
			rateLimiter.Limit(middleware.SessionCreateRateLimitConfig(sessionsPerMinute)),
			gameHandler.CreateSession,
		)
		sessions := api.Group("/sessions/:id", middleware.ExtractSessionID("id"))
		{
			sessions.GET("", gameHandler.GetSession)
			sessions.DELETE("", gameHandler.DeleteSession)
			sessions.PUT("/player", gameHandler.SetPlayer)
			sessions.PUT("/difficulty", gameHandler.SetDifficulty)
			sessions.POST("/start", gameHandler.StartGame)
			sessions.POST("/answer", gameHandler.SubmitAnswer)
			sessions.POST("/next", gameHandler.NextQuestion)
			sessions.POST("/reset", gameHandler.ResetGame)
		}

		leaderboard := api.Group("/leaderboard")
		{
			leaderboard.GET("", leaderboardHandler.GetLeaderboard)
			leaderboard.DELETE("", leaderboardHandler.ClearLeaderboard)
			leaderboard.GET("/export", leaderboardHandler.ExportLeaderboard)
			leaderboard.DELETE("/:index", middleware.ExtractIndexParam("index", middleware.IndexKey), leaderboardHandler.RemoveScore)
		}
	}

	router.GET("/ws", wsHandler.HandleConnection)
}
