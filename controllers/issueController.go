package controllers

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"campus-sos-be/config"
	"campus-sos-be/models"
	"campus-sos-be/services"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const earthRadiusKm = 6378.1

func issueCollection() *mongo.Collection {
	return config.GetCollection("issues")
}

func userCollection() *mongo.Collection {
	return config.GetCollection("users")
}

// currentUser returns the authenticated caller's id, or false when the
// request carries no identity.
func currentUser(c *gin.Context) (primitive.ObjectID, bool) {
	userIDVal, exists := c.Get("user_id")
	if !exists {
		return primitive.NilObjectID, false
	}
	userID, ok := userIDVal.(string)
	if !ok {
		return primitive.NilObjectID, false
	}
	objID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return primitive.NilObjectID, false
	}
	return objID, true
}

func currentRole(c *gin.Context) models.UserRole {
	roleVal, _ := c.Get("role")
	role, _ := roleVal.(string)
	return models.NormalizeRole(role)
}

// canManageStatus: admins, the assigned admin, and the reporter may
// transition an issue's status.
func canManageStatus(role models.UserRole, userID primitive.ObjectID, issue *models.Issue) bool {
	if role == models.RoleAdmin {
		return true
	}
	if issue.AssignedAdmin != nil && *issue.AssignedAdmin == userID {
		return true
	}
	return issue.Reporter == userID
}

// canEditTags: admins and the reporter may replace an issue's tags.
func canEditTags(role models.UserRole, userID primitive.ObjectID, issue *models.Issue) bool {
	return role == models.RoleAdmin || issue.Reporter == userID
}

// shouldAwardResolution: points are granted only on the transition into
// Resolved from a non-Resolved state, and never after resolvedAt has been
// set, so a Resolved -> Open -> Resolved round trip cannot double-award.
func shouldAwardResolution(prev, next models.IssueStatus, resolvedAt *time.Time) bool {
	return next == models.StatusResolved && prev != models.StatusResolved && resolvedAt == nil
}

// upvoteToggleUpdate decides the toggle direction: remove the caller when
// already in the upvote set, add them otherwise.
func upvoteToggleUpdate(issue *models.Issue, userID primitive.ObjectID) (bson.M, bool) {
	if issue.HasUpvoted(userID) {
		return bson.M{"$pull": bson.M{"upvotes": userID}}, false
	}
	return bson.M{"$addToSet": bson.M{"upvotes": userID}}, true
}

func totalPages(total int64, limit int) int {
	return int((total + int64(limit) - 1) / int64(limit))
}

var sortableFields = map[string]bool{
	"createdAt": true,
	"updatedAt": true,
	"severity":  true,
	"status":    true,
	"title":     true,
}

// reporterSummary resolves the reporter reference into a public projection.
// The cache avoids repeated lookups within a single listing.
func reporterSummary(ctx context.Context, cache map[primitive.ObjectID]gin.H, id primitive.ObjectID) gin.H {
	if summary, ok := cache[id]; ok {
		return summary
	}

	summary := gin.H{"id": id}
	var reporter models.User
	if err := userCollection().FindOne(ctx, bson.M{"_id": id}).Decode(&reporter); err == nil {
		summary["name"] = reporter.Name
		summary["email"] = reporter.Email
		summary["avatar"] = reporter.Avatar
		summary["points"] = reporter.Points
	}

	cache[id] = summary
	return summary
}

func issueResponse(ctx context.Context, cache map[primitive.ObjectID]gin.H, issue *models.Issue, viewer *primitive.ObjectID) gin.H {
	userHasVoted := false
	if viewer != nil {
		userHasVoted = issue.HasUpvoted(*viewer)
	}

	return gin.H{
		"id":            issue.ID,
		"title":         issue.Title,
		"description":   issue.Description,
		"reporter":      reporterSummary(ctx, cache, issue.Reporter),
		"imageUrl":      issue.ImageURL,
		"location":      issue.Location,
		"tags":          issue.Tags,
		"severity":      issue.Severity,
		"status":        issue.Status,
		"votes":         len(issue.Upvotes),
		"userHasVoted":  userHasVoted,
		"assignedAdmin": issue.AssignedAdmin,
		"resolvedAt":    issue.ResolvedAt,
		"createdAt":     issue.CreatedAt,
		"updatedAt":     issue.UpdatedAt,
	}
}

type createIssueInput struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Lng         *float64 `json:"lng"`
	Lat         *float64 `json:"lat"`
	Tags        []string `json:"tags"`
	Severity    string   `json:"severity"`
	ImageURL    string   `json:"imageUrl"`
}

func bindCreateIssueInput(c *gin.Context) (*createIssueInput, error) {
	contentType := c.GetHeader("Content-Type")
	if !strings.HasPrefix(contentType, "multipart/form-data") {
		var input createIssueInput
		if err := c.ShouldBindJSON(&input); err != nil {
			return nil, err
		}
		return &input, nil
	}

	input := createIssueInput{
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
		Tags:        c.PostFormArray("tags"),
		Severity:    c.PostForm("severity"),
		ImageURL:    c.PostForm("imageUrl"),
	}
	if lng, err := strconv.ParseFloat(c.PostForm("lng"), 64); err == nil {
		input.Lng = &lng
	}
	if lat, err := strconv.ParseFloat(c.PostForm("lat"), 64); err == nil {
		input.Lat = &lat
	}
	return &input, nil
}

// CreateIssue handles the creation of a new issue report
func CreateIssue(c *gin.Context) {
	reporterID, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	input, err := bindCreateIssueInput(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if strings.TrimSpace(input.Title) == "" || input.Lng == nil || input.Lat == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Title and coordinates (lng, lat) are required"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	imageURL := strings.TrimSpace(input.ImageURL)
	if file, err := c.FormFile("image"); err == nil && file != nil {
		if services.Uploader == nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "image uploads are not configured"})
			return
		}
		src, err := file.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read uploaded image"})
			return
		}
		defer src.Close()

		uploaded, err := services.Uploader.Upload(ctx, src)
		if err != nil {
			log.Error().Err(err).Msg("image upload failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		imageURL = uploaded.URL
	}

	tags := models.SanitizeTags(input.Tags)

	if services.Validator != nil {
		verdict, err := services.Validator.Check(ctx, services.ValidationRequest{
			Description: input.Description,
			ImageURL:    imageURL,
			AllowedTags: models.KnownTags(),
		})
		if err != nil {
			log.Error().Err(err).Msg("content validation failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if !verdict.Allowed {
			reason := "content not allowed"
			if verdict.Reason != nil && *verdict.Reason != "" {
				reason = *verdict.Reason
			}
			c.JSON(http.StatusBadRequest, gin.H{"error": reason})
			return
		}
		if len(tags) == 0 {
			tags = models.SanitizeTags(verdict.SuggestedTags)
		}
	}

	issue := models.Issue{
		ID:          primitive.NewObjectID(),
		Title:       input.Title,
		Description: input.Description,
		Reporter:    reporterID,
		Location:    models.NewGeoPoint(*input.Lng, *input.Lat),
		Tags:        tags,
		Severity:    models.NormalizeSeverity(input.Severity),
		Status:      models.StatusOpen,
		Upvotes:     []primitive.ObjectID{},
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	if imageURL != "" {
		issue.ImageURL = &imageURL
	}

	if _, err := issueCollection().InsertOne(ctx, issue); err != nil {
		log.Error().Err(err).Msg("failed to create issue")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create issue"})
		return
	}

	if _, err := userCollection().UpdateByID(ctx, reporterID, bson.M{"$inc": bson.M{"reportsSubmitted": 1}}); err != nil {
		log.Error().Err(err).Str("reporter", reporterID.Hex()).Msg("failed to increment reportsSubmitted")
	}

	c.JSON(http.StatusCreated, issue)
}

// GetAllIssues handles listing with filters, text search, geo radius,
// pagination, and sorting
func GetAllIssues(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	status := c.Query("status")
	tag := c.Query("tag")
	query := c.Query("q")
	severity := c.Query("severity")
	sortBy := c.Query("sortBy")
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	filter := bson.M{}

	if normalized, ok := models.NormalizeStatus(status); ok {
		filter["status"] = normalized
	}
	if models.KnownTag(tag) {
		filter["tags"] = tag
	}
	if parsed, ok := models.ParseSeverity(severity); ok {
		filter["severity"] = parsed
	}

	var geoCenter *models.GeoPoint
	var radiusKm float64
	lng, lngErr := strconv.ParseFloat(c.Query("lng"), 64)
	lat, latErr := strconv.ParseFloat(c.Query("lat"), 64)
	radius, radiusErr := strconv.ParseFloat(c.Query("radiusKm"), 64)
	if lngErr == nil && latErr == nil && radiusErr == nil && radius > 0 {
		center := models.NewGeoPoint(lng, lat)
		geoCenter = &center
		radiusKm = radius
	}

	if query != "" {
		if geoCenter != nil {
			// $text cannot be combined with $nearSphere in a single query;
			// fall back to a case-insensitive regex when both are present.
			filter["$or"] = []bson.M{
				{"title": bson.M{"$regex": query, "$options": "i"}},
				{"description": bson.M{"$regex": query, "$options": "i"}},
			}
		} else {
			filter["$text"] = bson.M{"$search": query}
		}
	}

	// $nearSphere is rejected inside count queries, so counting uses an
	// equivalent $geoWithin sphere cap.
	countFilter := filter
	if geoCenter != nil {
		countFilter = bson.M{}
		for k, v := range filter {
			countFilter[k] = v
		}
		countFilter["location"] = bson.M{
			"$geoWithin": bson.M{
				"$centerSphere": bson.A{
					bson.A{geoCenter.Coordinates[0], geoCenter.Coordinates[1]},
					radiusKm / earthRadiusKm,
				},
			},
		}
		filter["location"] = bson.M{
			"$nearSphere": bson.M{
				"$geometry":    geoCenter,
				"$maxDistance": radiusKm * 1000,
			},
		}
	}

	totalCount, err := issueCollection().CountDocuments(ctx, countFilter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count issues")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count issues"})
		return
	}

	skip := (page - 1) * limit
	findOptions := options.Find().
		SetSkip(int64(skip)).
		SetLimit(int64(limit))

	switch {
	case sortBy != "" && sortableFields[sortBy]:
		findOptions.SetSort(bson.D{{Key: sortBy, Value: -1}})
	case geoCenter != nil:
		// nearest-first: $nearSphere already orders by distance
	default:
		findOptions.SetSort(bson.D{{Key: "createdAt", Value: -1}})
	}

	cursor, err := issueCollection().Find(ctx, filter, findOptions)
	if err != nil {
		log.Error().Err(err).Msg("failed to retrieve issues")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve issues"})
		return
	}
	defer cursor.Close(ctx)

	var issues []models.Issue
	if err := cursor.All(ctx, &issues); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode issues"})
		return
	}

	var viewer *primitive.ObjectID
	if viewerID, ok := currentUser(c); ok {
		viewer = &viewerID
	}

	cache := map[primitive.ObjectID]gin.H{}
	results := make([]gin.H, 0, len(issues))
	for i := range issues {
		results = append(results, issueResponse(ctx, cache, &issues[i], viewer))
	}

	c.JSON(http.StatusOK, gin.H{
		"issues":      results,
		"totalIssues": totalCount,
		"totalPages":  totalPages(totalCount, limit),
		"currentPage": page,
	})
}

// GetIssue retrieves a single issue by its ID
func GetIssue(c *gin.Context) {
	issueID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid issue ID"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var issue models.Issue
	if err := issueCollection().FindOne(ctx, bson.M{"_id": issueID}).Decode(&issue); err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Issue not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve issue"})
		}
		return
	}

	var viewer *primitive.ObjectID
	if viewerID, ok := currentUser(c); ok {
		viewer = &viewerID
	}

	cache := map[primitive.ObjectID]gin.H{}
	c.JSON(http.StatusOK, issueResponse(ctx, cache, &issue, viewer))
}

// GetMyIssues retrieves the issues reported by the authenticated user
func GetMyIssues(c *gin.Context) {
	reporterID, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := issueCollection().Find(ctx, bson.M{"reporter": reporterID}, findOptions)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve issues"})
		return
	}
	defer cursor.Close(ctx)

	var issues []models.Issue
	if err := cursor.All(ctx, &issues); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode issues"})
		return
	}

	cache := map[primitive.ObjectID]gin.H{}
	results := make([]gin.H, 0, len(issues))
	for i := range issues {
		results = append(results, issueResponse(ctx, cache, &issues[i], &reporterID))
	}

	c.JSON(http.StatusOK, results)
}

// ToggleUpvote adds the caller to the issue's upvote set, or removes
// them when already present
func ToggleUpvote(c *gin.Context) {
	issueID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid issue ID"})
		return
	}

	userID, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var issue models.Issue
	if err := issueCollection().FindOne(ctx, bson.M{"_id": issueID}).Decode(&issue); err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Issue not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve issue"})
		}
		return
	}

	// Read-then-write toggle: two racing requests from the same user can
	// lose an update. Known gap, not fixed at the application layer.
	update, voted := upvoteToggleUpdate(&issue, userID)

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated models.Issue
	if err := issueCollection().FindOneAndUpdate(ctx, bson.M{"_id": issueID}, update, opts).Decode(&updated); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to toggle upvote"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"voted":        voted,
		"votes":        len(updated.Upvotes),
		"userHasVoted": voted,
	})
}

// UpdateStatus transitions an issue's status and awards points to the
// reporter on the first transition into Resolved
func UpdateStatus(c *gin.Context) {
	issueID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid issue ID"})
		return
	}

	userID, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var input struct {
		Status        string `json:"status" binding:"required"`
		AssignedAdmin string `json:"assignedAdmin"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var issue models.Issue
	if err := issueCollection().FindOne(ctx, bson.M{"_id": issueID}).Decode(&issue); err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Issue not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve issue"})
		}
		return
	}

	if !canManageStatus(currentRole(c), userID, &issue) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You are not authorized to update this issue's status"})
		return
	}

	newStatus, ok := models.NormalizeStatus(input.Status)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
		return
	}

	update := bson.M{
		"status":    newStatus,
		"updatedAt": time.Now(),
	}
	if input.AssignedAdmin != "" {
		if adminID, err := primitive.ObjectIDFromHex(input.AssignedAdmin); err == nil {
			update["assignedAdmin"] = adminID
		}
	}

	award := 0
	if shouldAwardResolution(issue.Status, newStatus, issue.ResolvedAt) {
		update["resolvedAt"] = time.Now()
		award = models.ResolutionAward(issue.Tags, issue.Severity)
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated models.Issue
	if err := issueCollection().FindOneAndUpdate(ctx, bson.M{"_id": issueID}, bson.M{"$set": update}, opts).Decode(&updated); err != nil {
		log.Error().Err(err).Msg("failed to update issue status")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update issue status"})
		return
	}

	if award > 0 {
		// Second write against the user store; not transactional with the
		// status write. The $inc itself is atomic.
		inc := bson.M{"$inc": bson.M{"points": award, "issuesResolved": 1}}
		if _, err := userCollection().UpdateByID(ctx, issue.Reporter, inc); err != nil {
			log.Error().Err(err).
				Str("reporter", issue.Reporter.Hex()).
				Int("points", award).
				Msg("failed to award resolution points")
		}
	}

	cache := map[primitive.ObjectID]gin.H{}
	c.JSON(http.StatusOK, issueResponse(ctx, cache, &updated, &userID))
}

// UpdateTags replaces an issue's tag list wholesale
func UpdateTags(c *gin.Context) {
	issueID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid issue ID"})
		return
	}

	userID, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var input struct {
		Tags []string `json:"tags"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || input.Tags == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "tags must be an array of strings"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var issue models.Issue
	if err := issueCollection().FindOne(ctx, bson.M{"_id": issueID}).Decode(&issue); err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Issue not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve issue"})
		}
		return
	}

	if !canEditTags(currentRole(c), userID, &issue) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You are not authorized to update this issue's tags"})
		return
	}

	update := bson.M{
		"tags":      models.SanitizeTags(input.Tags),
		"updatedAt": time.Now(),
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated models.Issue
	if err := issueCollection().FindOneAndUpdate(ctx, bson.M{"_id": issueID}, bson.M{"$set": update}, opts).Decode(&updated); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update issue tags"})
		return
	}

	cache := map[primitive.ObjectID]gin.H{}
	c.JSON(http.StatusOK, issueResponse(ctx, cache, &updated, &userID))
}
