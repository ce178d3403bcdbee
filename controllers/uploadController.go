package controllers

import (
	"context"
	"net/http"
	"time"

	"campus-sos-be/services"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// UploadImage stores a multipart image in the external image store and
// returns the hosted URL plus metadata
func UploadImage(c *gin.Context) {
	if services.Uploader == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "image uploads are not configured"})
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
		return
	}

	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read uploaded image"})
		return
	}
	defer src.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	uploaded, err := services.Uploader.Upload(ctx, src)
	if err != nil {
		log.Error().Err(err).Msg("image upload failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, uploaded)
}
