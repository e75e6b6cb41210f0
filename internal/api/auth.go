package api

import (
	"errors"                      // Error inspection
	"net/http"                    // HTTP status codes
	"tokenestate/internal/domain" // Importing domain models
	"tokenestate/internal/utils"  // Token and wallet helpers

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
	"gorm.io/gorm"               // GORM ORM library
)

// RegisterRequest is the public self-registration payload. A client-supplied
// role is ignored: registration always yields the user role, and only an
// admin can escalate it afterwards.
type RegisterRequest struct {
	Wallet string `json:"wallet" binding:"required"` // Wallet address, becomes the bearer credential
	Name   string `json:"name"`                      // Optional display name
	Role   string `json:"role"`                      // Ignored on purpose
}

// LoginRequest is the compatibility login payload
type LoginRequest struct {
	Wallet string `json:"wallet" binding:"required"` // Wallet address to exchange for a session token
}

// HealthHandler reports liveness
func HealthHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "API is running"})
	}
}

// RegisterHandler creates a user from a wallet address. Public endpoint.
func RegisterHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		wallet, err := utils.NormalizeWallet(req.Wallet)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		user := domain.User{Wallet: wallet, Name: req.Name, Role: domain.RoleUser}
		if err := db.Create(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				c.JSON(http.StatusConflict, gin.H{"error": "Wallet already registered"})
				return
			}
			policyError(c, err)
			return
		}
		logrus.WithFields(logrus.Fields{
			"user_id": user.ID,
			"wallet":  user.Wallet,
		}).Info("User registered")
		c.JSON(http.StatusCreated, gin.H{"user": user})
	}
}

// LoginHandler exchanges a known wallet address for a short-lived session
// token. The raw wallet is itself a valid bearer credential; this route
// exists for clients that prefer expiring tokens.
func LoginHandler(db *gorm.DB, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		wallet, err := utils.NormalizeWallet(req.Wallet)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		var user domain.User
		if err := db.Where("wallet = ?", wallet).First(&user).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unknown wallet"})
			return
		}
		token, err := utils.GenerateJWT(user.Wallet, jwtSecret)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
	}
}
