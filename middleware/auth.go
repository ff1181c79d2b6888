package middleware

import (
	"errors"
	"net/http"
	"os"
	"strings"

	"github.com/Harshalp4/GreenEpicure/models"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

func jwtSecret() []byte { return []byte(os.Getenv("JWT_SECRET")) }

// parseToken validates a bearer token and returns the owner ID and role
// ("user" or "guest") it carries.
func parseToken(header string) (string, string, error) {
	tokenString := strings.TrimPrefix(header, "Bearer ")
	if tokenString == "" {
		return "", "", errors.New("authorization header is missing")
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid token signing method")
		}
		return jwtSecret(), nil
	})
	if err != nil || !token.Valid {
		return "", "", errors.New("invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", "", errors.New("invalid token claims")
	}
	userID, _ := claims["user_id"].(string)
	if userID == "" {
		return "", "", errors.New("invalid token claims")
	}
	role, _ := claims["role"].(string)
	return userID, role, nil
}

// RequireUser rejects the request with 401 unless a valid bearer token is
// presented. Guest tokens pass too: a guest owns a cart the same way a
// registered user does.
func RequireUser(c *gin.Context) {
	userID, role, err := parseToken(c.GetHeader("Authorization"))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		c.Abort()
		return
	}
	c.Set("user_id", userID)
	c.Set("role", role)
	c.Next()
}

// OptionalUser sets user_id when a valid token is presented but lets
// anonymous requests through. Storefront listings use it for tier pricing.
func OptionalUser(c *gin.Context) {
	if userID, role, err := parseToken(c.GetHeader("Authorization")); err == nil {
		c.Set("user_id", userID)
		c.Set("role", role)
	}
	c.Next()
}

// RequireAdmin gates the back office: 401 without identity, 403 without the
// admin flag on the caller's profile.
func RequireAdmin(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _, err := parseToken(c.GetHeader("Authorization"))
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}

		var profile models.Profile
		if err := db.First(&profile, "id = ?", userID).Error; err != nil || !profile.IsAdmin {
			c.JSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			c.Abort()
			return
		}

		c.Set("user_id", userID)
		c.Set("is_admin", true)
		c.Next()
	}
}
