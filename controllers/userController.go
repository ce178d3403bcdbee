package controllers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"campus-sos-be/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GetProfile retrieves a user's public profile along with their five
// most recent reports
func GetProfile(c *gin.Context) {
	profileID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var user models.User
	if err := userCollection().FindOne(ctx, bson.M{"_id": profileID}).Decode(&user); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	findOptions := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(5)

	cursor, err := issueCollection().Find(ctx, bson.M{"reporter": profileID}, findOptions)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve recent reports"})
		return
	}
	defer cursor.Close(ctx)

	var recent []models.Issue
	if err := cursor.All(ctx, &recent); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode recent reports"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":          user.Summary(),
		"recentReports": recent,
	})
}

// GetLeaderboard returns users ranked by points, admins excluded.
// A timeframe query parameter is accepted for frontend compatibility
// but not honored; no server variant ever implemented it.
func GetLeaderboard(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit < 1 || limit > 100 {
		limit = 10
	}
	_ = c.Query("timeframe")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	findOptions := options.Find().
		SetSort(bson.D{{Key: "points", Value: -1}}).
		SetLimit(int64(limit)).
		SetProjection(bson.M{
			"name":             1,
			"avatar":           1,
			"points":           1,
			"reportsSubmitted": 1,
		})

	cursor, err := userCollection().Find(ctx, bson.M{"role": bson.M{"$ne": models.RoleAdmin}}, findOptions)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve leaderboard"})
		return
	}
	defer cursor.Close(ctx)

	type leaderboardEntry struct {
		ID               primitive.ObjectID `bson:"_id" json:"id"`
		Name             string             `bson:"name" json:"name"`
		Avatar           string             `bson:"avatar,omitempty" json:"avatar,omitempty"`
		Points           int                `bson:"points" json:"points"`
		ReportsSubmitted int                `bson:"reportsSubmitted" json:"reportsSubmitted"`
	}

	entries := []leaderboardEntry{}
	if err := cursor.All(ctx, &entries); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode leaderboard"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"leaderboard": entries})
}
