package controllers

import (
	"testing"
	"time"

	"campus-sos-be/models"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCanManageStatus(t *testing.T) {
	reporter := primitive.NewObjectID()
	assigned := primitive.NewObjectID()
	stranger := primitive.NewObjectID()

	issue := models.Issue{
		Reporter:      reporter,
		AssignedAdmin: &assigned,
	}

	assert.True(t, canManageStatus(models.RoleAdmin, stranger, &issue), "any admin may transition")
	assert.True(t, canManageStatus(models.RoleUser, assigned, &issue), "assigned admin may transition")
	assert.True(t, canManageStatus(models.RoleUser, reporter, &issue), "reporter may transition")
	assert.False(t, canManageStatus(models.RoleUser, stranger, &issue), "strangers may not")

	unassigned := models.Issue{Reporter: reporter}
	assert.False(t, canManageStatus(models.RoleUser, assigned, &unassigned))
}

func TestCanEditTags(t *testing.T) {
	reporter := primitive.NewObjectID()
	assigned := primitive.NewObjectID()
	stranger := primitive.NewObjectID()

	issue := models.Issue{
		Reporter:      reporter,
		AssignedAdmin: &assigned,
	}

	assert.True(t, canEditTags(models.RoleAdmin, stranger, &issue))
	assert.True(t, canEditTags(models.RoleUser, reporter, &issue))
	assert.False(t, canEditTags(models.RoleUser, assigned, &issue), "assignment alone grants no tag rights")
	assert.False(t, canEditTags(models.RoleUser, stranger, &issue))
}

func TestShouldAwardResolution(t *testing.T) {
	resolvedAt := time.Now()

	tests := []struct {
		name       string
		prev       models.IssueStatus
		next       models.IssueStatus
		resolvedAt *time.Time
		want       bool
	}{
		{"open to resolved", models.StatusOpen, models.StatusResolved, nil, true},
		{"in progress to resolved", models.StatusInProgress, models.StatusResolved, nil, true},
		{"already resolved", models.StatusResolved, models.StatusResolved, &resolvedAt, false},
		{"resolved back to open", models.StatusResolved, models.StatusOpen, &resolvedAt, false},
		{"re-resolving after a round trip", models.StatusOpen, models.StatusResolved, &resolvedAt, false},
		{"open to in progress", models.StatusOpen, models.StatusInProgress, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, shouldAwardResolution(tt.prev, tt.next, tt.resolvedAt))
		})
	}
}

func TestUpvoteToggleRoundTrip(t *testing.T) {
	voter := primitive.NewObjectID()
	issue := models.Issue{Upvotes: []primitive.ObjectID{}}

	// first toggle adds the voter
	update, voted := upvoteToggleUpdate(&issue, voter)
	assert.True(t, voted)
	assert.Equal(t, bson.M{"$addToSet": bson.M{"upvotes": voter}}, update)

	// second toggle, with the voter now present, removes them again
	issue.Upvotes = append(issue.Upvotes, voter)
	update, voted = upvoteToggleUpdate(&issue, voter)
	assert.False(t, voted)
	assert.Equal(t, bson.M{"$pull": bson.M{"upvotes": voter}}, update)

	// a different user is unaffected by the existing membership
	other := primitive.NewObjectID()
	update, voted = upvoteToggleUpdate(&issue, other)
	assert.True(t, voted)
	assert.Equal(t, bson.M{"$addToSet": bson.M{"upvotes": other}}, update)
}

func TestTotalPages(t *testing.T) {
	tests := []struct {
		total int64
		limit int
		want  int
	}{
		{0, 10, 0},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{99, 10, 10},
		{100, 10, 10},
		{101, 10, 11},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, totalPages(tt.total, tt.limit))
	}
}

func TestSortableFields(t *testing.T) {
	assert.True(t, sortableFields["createdAt"])
	assert.True(t, sortableFields["severity"])
	assert.False(t, sortableFields["password"])
	assert.False(t, sortableFields["$where"])
}
