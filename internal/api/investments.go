package api

import (
	"errors"                      // Error inspection
	"net/http"                    // HTTP status codes
	"tokenestate/internal/domain" // Importing domain models
	"tokenestate/internal/middleware"
	"tokenestate/internal/policy" // Policy core

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/google/uuid"     // UUID parsing
	"github.com/sirupsen/logrus" // Logging library
	"gorm.io/gorm"               // GORM ORM library
)

// CreateInvestmentRequest is the stake-creation payload. A client-supplied
// investor id is ignored: the investor is always the authenticated caller.
type CreateInvestmentRequest struct {
	PropertyID uuid.UUID `json:"property_id" binding:"required"`
	AmountETH  float64   `json:"amount_eth" binding:"required,gt=0"`
	Shares     int       `json:"shares" binding:"required,gt=0"`
	TxHash     string    `json:"tx_hash" binding:"required"`
	UserID     string    `json:"user_id"` // Ignored on purpose
}

// UpdateInvestmentRequest carries the editable fields of a stake; investor
// and property are immutable after create
type UpdateInvestmentRequest struct {
	AmountETH float64 `json:"amount_eth" binding:"required,gt=0"`
	Shares    int     `json:"shares" binding:"required,gt=0"`
	TxHash    string  `json:"tx_hash" binding:"required"`
}

// ListInvestmentsHandler lists the investments visible to the caller's role
func ListInvestmentsHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ident, ok := middleware.CurrentIdentity(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		page, pageSize, offset := pagination(c)
		var total int64
		if err := db.Model(&domain.Investment{}).Scopes(policy.InvestmentScope(ident)).Count(&total).Error; err != nil {
			policyError(c, err)
			return
		}
		var investments []domain.Investment
		if err := db.Scopes(policy.InvestmentScope(ident)).
			Order("created_at desc").
			Offset(offset).
			Limit(pageSize).
			Find(&investments).Error; err != nil {
			policyError(c, err)
			return
		}
		totalPages := (int(total) + pageSize - 1) / pageSize // Calculate total pages
		c.JSON(http.StatusOK, gin.H{
			"investments": investments,
			"page":        page,
			"page_size":   pageSize,
			"total":       total,
			"total_pages": totalPages,
		})
	}
}

// GetInvestmentHandler returns a single investment if it is visible to the
// caller
func GetInvestmentHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ident, ok := middleware.CurrentIdentity(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid investment id"})
			return
		}
		inv, err := policy.FindInvestment(db, ident, id)
		if err != nil {
			policyError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"investment": inv})
	}
}

// CreateInvestmentHandler records a stake in a validated property for the
// authenticated caller. Any role may invest.
func CreateInvestmentHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ident, ok := middleware.CurrentIdentity(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		var req CreateInvestmentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		inv := domain.Investment{
			PropertyID: req.PropertyID,
			AmountETH:  req.AmountETH,
			Shares:     req.Shares,
			TxHash:     req.TxHash,
		}
		// CreateInvestment forces the investor to the caller and checks the
		// property status inside the insert transaction
		if err := policy.CreateInvestment(db, ident, &inv); err != nil {
			policyError(c, err)
			return
		}
		logrus.WithFields(logrus.Fields{
			"investment_id": inv.ID,
			"property_id":   inv.PropertyID,
			"user_id":       inv.UserID,
			"amount_eth":    inv.AmountETH,
			"shares":        inv.Shares,
		}).Info("Investment created")
		c.JSON(http.StatusCreated, gin.H{"investment": inv})
	}
}

// UpdateInvestmentHandler edits a stake. Owner or admin only.
func UpdateInvestmentHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ident, ok := middleware.CurrentIdentity(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid investment id"})
			return
		}
		inv, err := policy.FindInvestment(db, ident, id)
		if err != nil {
			policyError(c, err)
			return
		}
		if err := policy.CanModifyInvestment(ident, inv); err != nil {
			policyError(c, err)
			return
		}
		var req UpdateInvestmentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		inv.AmountETH = req.AmountETH
		inv.Shares = req.Shares
		inv.TxHash = req.TxHash
		if err := db.Save(inv).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				c.JSON(http.StatusConflict, gin.H{"error": "Transaction hash already recorded"})
				return
			}
			policyError(c, err)
			return
		}
		logrus.WithFields(logrus.Fields{
			"investment_id": inv.ID,
			"user_id":       ident.UserID,
		}).Info("Investment updated")
		c.JSON(http.StatusOK, gin.H{"investment": inv})
	}
}

// DeleteInvestmentHandler removes a stake. Owner or admin only.
func DeleteInvestmentHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ident, ok := middleware.CurrentIdentity(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid investment id"})
			return
		}
		inv, err := policy.FindInvestment(db, ident, id)
		if err != nil {
			policyError(c, err)
			return
		}
		if err := policy.CanModifyInvestment(ident, inv); err != nil {
			policyError(c, err)
			return
		}
		if err := db.Delete(inv).Error; err != nil {
			policyError(c, err)
			return
		}
		logrus.WithFields(logrus.Fields{
			"investment_id": inv.ID,
			"user_id":       ident.UserID,
		}).Info("Investment deleted")
		c.JSON(http.StatusOK, gin.H{"message": "Investment deleted"})
	}
}
