package middlewares

import (
	"fmt"
	"net/http"
	"strings"

	"campus-sos-be/config"
	"campus-sos-be/models"

	"github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"
)

func parseBearerToken(c *gin.Context) (jwt.MapClaims, error) {
	authHeader := c.Request.Header.Get("Authorization")
	if authHeader == "" {
		return nil, fmt.Errorf("no authorization token provided")
	}

	// Extracting token from "Bearer <token>" format
	tokenString := authHeader
	if strings.HasPrefix(authHeader, "Bearer ") {
		tokenString = authHeader[7:]
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(config.App.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("invalid authorization token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("invalid token claims")
	}
	if _, exists := claims["user_id"]; !exists {
		return nil, fmt.Errorf("invalid token claims")
	}

	return claims, nil
}

func setIdentity(c *gin.Context, claims jwt.MapClaims) {
	c.Set("user_id", claims["user_id"])
	role := ""
	if r, ok := claims["role"].(string); ok {
		role = r
	}
	c.Set("role", string(models.NormalizeRole(role)))
}

// AuthMiddleware rejects requests without a valid bearer token and puts
// the caller's id and normalized role into the request context.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := parseBearerToken(c)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			c.Abort()
			return
		}

		setIdentity(c, claims)
		c.Next()
	}
}

// OptionalAuthMiddleware attaches the caller's identity when a valid
// token is present and lets the request through either way.
func OptionalAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims, err := parseBearerToken(c); err == nil {
			setIdentity(c, claims)
		}
		c.Next()
	}
}
