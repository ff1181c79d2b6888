package auth

import (
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/Harshalp4/GreenEpicure/models"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type RegisterRequest struct {
	Email        string `json:"email" binding:"required,email"`
	Password     string `json:"password" binding:"required,min=6"`
	FullName     string `json:"full_name" binding:"required"`
	Phone        string `json:"phone" binding:"required"`
	UserType     string `json:"user_type"`
	BusinessName string `json:"business_name"`
	GSTNumber    string `json:"gst_number"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	GuestID  string `json:"guest_id"`
}

// POST /auth/register
func Register(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Email, password, full name, and phone are required"})
			return
		}

		userType := models.UserTypeB2C
		if req.UserType != "" {
			userType = models.UserType(req.UserType)
			if userType != models.UserTypeB2C && userType != models.UserTypeB2B {
				c.JSON(http.StatusBadRequest, gin.H{"error": "user_type must be b2c or b2b"})
				return
			}
		}
		if userType == models.UserTypeB2B && (req.BusinessName == "" || req.GSTNumber == "") {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Business name and GST number are required for B2B accounts"})
			return
		}

		var existing models.Profile
		err := db.Where("email = ?", req.Email).First(&existing).Error
		if err == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "An account with this email already exists"})
			return
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
			return
		}

		// IsAdmin is deliberately not taken from the request. Admins are
		// promoted directly in the database.
		profile := models.Profile{
			Email:        req.Email,
			PasswordHash: string(hash),
			FullName:     req.FullName,
			Phone:        req.Phone,
			UserType:     userType,
			BusinessName: req.BusinessName,
			GSTNumber:    req.GSTNumber,
		}
		if userType != models.UserTypeB2B {
			profile.BusinessName = ""
			profile.GSTNumber = ""
		}

		if err := db.Create(&profile).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		token, err := issueToken(profile.ID, "user", 7*24*time.Hour)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Token generation failed"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"message": "Registration successful",
			"user":    profile,
			"token":   token,
		})
	}
}

// POST /auth/login
func Login(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Email and password are required"})
			return
		}

		var profile models.Profile
		if err := db.Where("email = ?", req.Email).First(&profile).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
			return
		}
		if err := bcrypt.CompareHashAndPassword([]byte(profile.PasswordHash), []byte(req.Password)); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
			return
		}

		// Adopt any cart the shopper built before logging in.
		mergeStatus := "no-guest-cart"
		if req.GuestID != "" {
			if err := mergeGuestCart(db, req.GuestID, profile.ID); err != nil {
				mergeStatus = "merge-failed"
			} else {
				mergeStatus = "merged"
			}
		}

		token, err := issueToken(profile.ID, "user", 7*24*time.Hour)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Token generation failed"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message":      "Login successful",
			"user":         profile,
			"token":        token,
			"merge_status": mergeStatus,
		})
	}
}

// GET /auth/me
func Me(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := c.Get("user_id")

		var profile models.Profile
		if err := db.First(&profile, "id = ?", userID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
			return
		}

		var addresses []models.Address
		if err := db.Where("user_id = ?", userID).
			Order("is_default DESC, created_at DESC").
			Find(&addresses).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"user": profile, "addresses": addresses})
	}
}

// POST /auth/guest
func CreateGuestUser(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		guest := models.GuestUser{
			ID:        "guest_" + randomHex(16),
			ExpiresAt: time.Now().Add(24 * time.Hour),
		}
		if err := db.Create(&guest).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create guest"})
			return
		}

		token, err := issueToken(guest.ID, "guest", 24*time.Hour)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Token generation failed"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"guest_id":   guest.ID,
			"token":      token,
			"expires_at": guest.ExpiresAt,
		})
	}
}

// mergeGuestCart folds a guest's cart lines into the user's cart, summing
// quantities on lines the user already has, then discards the guest identity.
func mergeGuestCart(db *gorm.DB, guestID, userID string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var guestItems []models.CartItem
		if err := tx.Where("user_id = ?", guestID).Find(&guestItems).Error; err != nil {
			return err
		}

		for _, gi := range guestItems {
			var existing models.CartItem
			err := tx.Where("user_id = ? AND product_id = ?", userID, gi.ProductID).
				First(&existing).Error
			switch {
			case err == nil:
				existing.Quantity += gi.Quantity
				if err := tx.Save(&existing).Error; err != nil {
					return err
				}
				if err := tx.Delete(&gi).Error; err != nil {
					return err
				}
			case errors.Is(err, gorm.ErrRecordNotFound):
				if err := tx.Model(&models.CartItem{}).Where("id = ?", gi.ID).
					Update("user_id", userID).Error; err != nil {
					return err
				}
			default:
				return err
			}
		}

		return tx.Delete(&models.GuestUser{}, "id = ?", guestID).Error
	})
}

func issueToken(userID, role string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"role":    role,
		"exp":     time.Now().Add(ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}
