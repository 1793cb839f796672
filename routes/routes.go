package routes

import (
	"homework-tracker-api/controllers"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(router *gin.Engine) {
	// API v1 group
	v1 := router.Group("/api/v1")
	{
		// Health check
		v1.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"status":  "ok",
				"message": "Homework Tracker API is running",
			})
		})

		// Homework deadlines
		deadlines := v1.Group("/deadlines")
		{
			deadlines.POST("", controllers.SetDeadline)
			deadlines.GET("", controllers.GetDeadlines)
			deadlines.POST("/bulk-status", controllers.GetBulkStatus)
			deadlines.GET("/:homework_id/:group_id", controllers.GetDeadline)
			deadlines.GET("/:homework_id/:group_id/status", controllers.GetDeadlineStatus)
		}

		// Group views
		groups := v1.Group("/groups")
		{
			groups.GET("/:group_id/upcoming-deadlines", controllers.GetUpcomingDeadlines)
			groups.POST("/:group_id/deadline-digest", controllers.SendDeadlineDigest)
		}

		// Checked submissions
		checked := v1.Group("/checked-submissions")
		{
			checked.POST("", controllers.MoveToChecked)
			checked.GET("", controllers.GetCheckedSubmissions)
			checked.POST("/:id/recheck", controllers.RecheckSubmission)
			checked.POST("/purge", controllers.PurgeCheckedSubmissions)
		}
	}

	// 404 catch-all
	router.NoRoute(func(c *gin.Context) {
		c.JSON(404, gin.H{
			"success": false,
			"error":   "Route not found",
		})
	})
}
