package authUtils

import (
	"time"

	"campus-sos-be/config"

	"github.com/dgrijalva/jwt-go"
)

// GenerateToken signs a JWT carrying the user id and the normalized role.
func GenerateToken(userID, role string) (string, error) {
	expiry := time.Duration(config.App.JWTExpiryHours) * time.Hour

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"role":    role,
		"exp":     time.Now().Add(expiry).Unix(),
	})

	return token.SignedString([]byte(config.App.JWTSecret))
}
