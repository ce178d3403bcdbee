package routes

import (
	"campus-sos-be/controllers"
	"campus-sos-be/middlewares"

	"github.com/gin-gonic/gin"
)

// UploadRoutes sets up the image upload route
func UploadRoutes(r *gin.Engine) {
	r.POST("/api/uploads/image", middlewares.AuthMiddleware(), controllers.UploadImage)
}
