package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestNormalizeStatus(t *testing.T) {
	tests := []struct {
		in     string
		want   IssueStatus
		wantOK bool
	}{
		{"open", StatusOpen, true},
		{"Open", StatusOpen, true},
		{"OPEN", StatusOpen, true},
		{"in progress", StatusInProgress, true},
		{"inprogress", StatusInProgress, true},
		{"InProgress", StatusInProgress, true},
		{"in-progress", StatusInProgress, true},
		{"progress", StatusInProgress, true},
		{"  In Progress  ", StatusInProgress, true},
		{"resolved", StatusResolved, true},
		{"Resolved", StatusResolved, true},
		{"closed", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := NormalizeStatus(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseSeverity(t *testing.T) {
	tests := []struct {
		in     string
		want   IssueSeverity
		wantOK bool
	}{
		{"critical", SeverityCritical, true},
		{"High", SeverityHigh, true},
		{"MEDIUM", SeverityMedium, true},
		{"low", SeverityLow, true},
		{" Low ", SeverityLow, true},
		{"bogus", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseSeverity(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeSeverity(t *testing.T) {
	assert.Equal(t, SeverityCritical, NormalizeSeverity("critical"))
	assert.Equal(t, SeverityHigh, NormalizeSeverity("High"))
	assert.Equal(t, SeverityMedium, NormalizeSeverity("MEDIUM"))
	assert.Equal(t, SeverityLow, NormalizeSeverity("low"))
	assert.Equal(t, SeverityLow, NormalizeSeverity(""))
	assert.Equal(t, SeverityLow, NormalizeSeverity("bogus"))
}

func TestHasUpvoted(t *testing.T) {
	voter := primitive.NewObjectID()
	other := primitive.NewObjectID()

	issue := Issue{Upvotes: []primitive.ObjectID{voter}}
	assert.True(t, issue.HasUpvoted(voter))
	assert.False(t, issue.HasUpvoted(other))

	empty := Issue{}
	assert.False(t, empty.HasUpvoted(voter))
}

func TestNewGeoPoint(t *testing.T) {
	p := NewGeoPoint(77.59, 12.97)
	assert.Equal(t, "Point", p.Type)
	assert.Equal(t, [2]float64{77.59, 12.97}, p.Coordinates)
}

func TestNormalizeRole(t *testing.T) {
	assert.Equal(t, RoleAdmin, NormalizeRole("admin"))
	assert.Equal(t, RoleAdmin, NormalizeRole("Admin"))
	assert.Equal(t, RoleUser, NormalizeRole("user"))
	assert.Equal(t, RoleUser, NormalizeRole(""))
	assert.Equal(t, RoleUser, NormalizeRole("superadmin"))
}
