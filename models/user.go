package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

// UserRole enum
type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleAdmin UserRole = "admin"
)

// NormalizeRole maps a raw role string onto the two-value enum,
// defaulting to RoleUser.
func NormalizeRole(raw string) UserRole {
	if strings.EqualFold(strings.TrimSpace(raw), string(RoleAdmin)) {
		return RoleAdmin
	}
	return RoleUser
}

type User struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name             string             `bson:"name" json:"name"`
	Email            string             `bson:"email" json:"email"`
	Password         string             `bson:"password,omitempty" json:"-"`
	Avatar           string             `bson:"avatar,omitempty" json:"avatar,omitempty"`
	Role             UserRole           `bson:"role" json:"role"`
	Points           int                `bson:"points" json:"points"`
	ReportsSubmitted int                `bson:"reportsSubmitted" json:"reportsSubmitted"`
	IssuesResolved   int                `bson:"issuesResolved" json:"issuesResolved"`
	CreatedAt        time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time          `bson:"updatedAt" json:"updatedAt"`
}

func (u *User) HashPassword() error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashed)
	return nil
}

func (u *User) ComparePassword(candidate string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(candidate))
	return err == nil
}

// Summary is the public projection returned by auth and leaderboard routes.
func (u *User) Summary() map[string]interface{} {
	return map[string]interface{}{
		"id":               u.ID,
		"name":             u.Name,
		"email":            u.Email,
		"avatar":           u.Avatar,
		"role":             u.Role,
		"points":           u.Points,
		"reportsSubmitted": u.ReportsSubmitted,
		"issuesResolved":   u.IssuesResolved,
		"createdAt":        u.CreatedAt,
	}
}
