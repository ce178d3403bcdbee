package routes

import (
	"campus-sos-be/controllers"
	"campus-sos-be/middlewares"

	"github.com/gin-gonic/gin"
)

// UserRoutes sets up the profile and leaderboard routes
func UserRoutes(r *gin.Engine) {
	r.GET("/api/users/me/:id", middlewares.AuthMiddleware(), controllers.GetProfile)
	r.GET("/api/leaderboard", controllers.GetLeaderboard)
}
