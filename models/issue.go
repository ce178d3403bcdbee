package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// IssueSeverity enum
type IssueSeverity string

const (
	SeverityLow      IssueSeverity = "Low"
	SeverityMedium   IssueSeverity = "Medium"
	SeverityHigh     IssueSeverity = "High"
	SeverityCritical IssueSeverity = "Critical"
)

// IssueStatus enum
type IssueStatus string

const (
	StatusOpen       IssueStatus = "Open"
	StatusInProgress IssueStatus = "In Progress"
	StatusResolved   IssueStatus = "Resolved"
)

// GeoPoint is a GeoJSON point, coordinates ordered [longitude, latitude].
type GeoPoint struct {
	Type        string     `bson:"type" json:"type"`
	Coordinates [2]float64 `bson:"coordinates" json:"coordinates"`
}

func NewGeoPoint(lng, lat float64) GeoPoint {
	return GeoPoint{Type: "Point", Coordinates: [2]float64{lng, lat}}
}

// Issue represents a campus problem reported by a user
type Issue struct {
	ID            primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Title         string               `bson:"title" json:"title"`
	Description   string               `bson:"description" json:"description"`
	Reporter      primitive.ObjectID   `bson:"reporter" json:"reporter"`
	ImageURL      *string              `bson:"imageUrl,omitempty" json:"imageUrl,omitempty"`
	Location      GeoPoint             `bson:"location" json:"location"`
	Tags          []string             `bson:"tags" json:"tags"`
	Severity      IssueSeverity        `bson:"severity" json:"severity"`
	Status        IssueStatus          `bson:"status" json:"status"`
	Upvotes       []primitive.ObjectID `bson:"upvotes" json:"upvotes"`
	AssignedAdmin *primitive.ObjectID  `bson:"assignedAdmin,omitempty" json:"assignedAdmin,omitempty"`
	ResolvedAt    *time.Time           `bson:"resolvedAt,omitempty" json:"resolvedAt,omitempty"`
	CreatedAt     time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time            `bson:"updatedAt" json:"updatedAt"`
}

// HasUpvoted reports whether the user is in the upvote set.
func (i *Issue) HasUpvoted(userID primitive.ObjectID) bool {
	for _, id := range i.Upvotes {
		if id == userID {
			return true
		}
	}
	return false
}

// NormalizeStatus maps loose client input ("in progress", "inprogress",
// "progress", any casing) onto the canonical three-value enum.
func NormalizeStatus(raw string) (IssueStatus, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "open":
		return StatusOpen, true
	case "in progress", "inprogress", "in-progress", "progress":
		return StatusInProgress, true
	case "resolved":
		return StatusResolved, true
	default:
		return "", false
	}
}

// ParseSeverity maps raw input onto the severity enum case-insensitively,
// reporting failure for unrecognized values.
func ParseSeverity(raw string) (IssueSeverity, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "critical":
		return SeverityCritical, true
	case "high":
		return SeverityHigh, true
	case "medium":
		return SeverityMedium, true
	case "low":
		return SeverityLow, true
	default:
		return "", false
	}
}

// NormalizeSeverity maps raw input onto the severity enum, defaulting to Low.
func NormalizeSeverity(raw string) IssueSeverity {
	if severity, ok := ParseSeverity(raw); ok {
		return severity
	}
	return SeverityLow
}
