package routes

import (
	"campus-sos-be/config"
	"campus-sos-be/controllers"
	"campus-sos-be/middlewares"

	"github.com/gin-gonic/gin"
)

// IssueRoutes sets up the issue routes
func IssueRoutes(r *gin.Engine) {
	issues := r.Group("/api/issues")
	{
		issues.GET("", middlewares.OptionalAuthMiddleware(), controllers.GetAllIssues)
		issues.POST("",
			middlewares.AuthMiddleware(),
			middlewares.IssueRateLimiter(config.App.DailyIssueLimit),
			controllers.CreateIssue)
		issues.GET("/me", middlewares.AuthMiddleware(), controllers.GetMyIssues)
		issues.GET("/:id", middlewares.OptionalAuthMiddleware(), controllers.GetIssue)
		issues.POST("/:id/upvote", middlewares.AuthMiddleware(), controllers.ToggleUpvote)
		issues.PATCH("/:id/tags", middlewares.AuthMiddleware(), controllers.UpdateTags)
		issues.PATCH("/:id/status", middlewares.AuthMiddleware(), controllers.UpdateStatus)
	}
}
