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

// CreatePropertyRequest carries the client-settable fields of a listing.
// Status and creator are server-forced and deliberately absent.
type CreatePropertyRequest struct {
	OnchainID   string   `json:"onchain_id" binding:"required"` // On-chain reference, unique
	Name        string   `json:"name" binding:"required"`
	Location    string   `json:"location" binding:"required"`
	Category    string   `json:"category" binding:"required"`
	Description string   `json:"description"`
	TotalPrice  float64  `json:"total_price" binding:"omitempty,gt=0"`
	TokenPrice  float64  `json:"token_price" binding:"omitempty,gt=0"`
	AnnualYield float64  `json:"annual_yield" binding:"omitempty,gte=0"`
	ImageURL    string   `json:"image_url"`
	Documents   []string `json:"documents"`
	Status      string   `json:"status"` // Ignored on purpose: new listings are always pending
}

// UpdatePropertyRequest carries the editable fields of a listing. The
// on-chain reference is immutable after create and status has its own route.
type UpdatePropertyRequest struct {
	Name        string   `json:"name" binding:"required"`
	Location    string   `json:"location" binding:"required"`
	Category    string   `json:"category" binding:"required"`
	Description string   `json:"description"`
	TotalPrice  float64  `json:"total_price" binding:"omitempty,gt=0"`
	TokenPrice  float64  `json:"token_price" binding:"omitempty,gt=0"`
	AnnualYield float64  `json:"annual_yield" binding:"omitempty,gte=0"`
	ImageURL    string   `json:"image_url"`
	Documents   []string `json:"documents"`
}

// UpdateStatusRequest is the admin status-change payload
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"` // pending, validated or rejected
}

// PublicPropertiesHandler lists validated properties without authentication
func PublicPropertiesHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var properties []domain.Property
		// nil identity: the unauthenticated scope, validated rows only
		if err := db.Scopes(policy.PropertyScope(nil)).Order("created_at desc").Find(&properties).Error; err != nil {
			policyError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"properties": properties, "count": len(properties)})
	}
}

// ListPropertiesHandler lists the properties visible to the caller's role
func ListPropertiesHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ident, ok := middleware.CurrentIdentity(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		page, pageSize, offset := pagination(c)
		var total int64
		if err := db.Model(&domain.Property{}).Scopes(policy.PropertyScope(ident)).Count(&total).Error; err != nil {
			policyError(c, err)
			return
		}
		var properties []domain.Property
		if err := db.Scopes(policy.PropertyScope(ident)).
			Order("created_at desc").
			Offset(offset).
			Limit(pageSize).
			Find(&properties).Error; err != nil {
			policyError(c, err)
			return
		}
		totalPages := (int(total) + pageSize - 1) / pageSize // Calculate total pages
		c.JSON(http.StatusOK, gin.H{
			"properties":  properties,
			"page":        page,
			"page_size":   pageSize,
			"total":       total,
			"total_pages": totalPages,
		})
	}
}

// GetPropertyHandler returns a single property if it is visible to the caller
func GetPropertyHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ident, ok := middleware.CurrentIdentity(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid property id"})
			return
		}
		prop, err := policy.FindProperty(db, ident, id)
		if err != nil {
			policyError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"property": prop})
	}
}

// CreatePropertyHandler creates a listing. Manager and admin only; the new
// row is always pending and owned by the caller regardless of client input.
func CreatePropertyHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ident, ok := middleware.CurrentIdentity(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		if err := policy.CanCreateProperty(ident); err != nil {
			policyError(c, err)
			return
		}
		var req CreatePropertyRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		prop := domain.Property{
			OnchainID:   req.OnchainID,
			Name:        req.Name,
			Location:    req.Location,
			Category:    req.Category,
			Description: req.Description,
			TotalPrice:  req.TotalPrice,
			TokenPrice:  req.TokenPrice,
			AnnualYield: req.AnnualYield,
			ImageURL:    req.ImageURL,
			Documents:   req.Documents,
			CreatedBy:   ident.UserID,         // Creator is the caller, never client input
			Status:      domain.StatusPending, // New listings always start pending
		}
		if err := db.Create(&prop).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				c.JSON(http.StatusConflict, gin.H{"error": "On-chain reference already registered"})
				return
			}
			policyError(c, err)
			return
		}
		logrus.WithFields(logrus.Fields{
			"property_id": prop.ID,
			"created_by":  ident.UserID,
			"onchain_id":  prop.OnchainID,
		}).Info("Property created")
		c.JSON(http.StatusCreated, gin.H{"property": prop})
	}
}

// UpdatePropertyHandler edits the descriptive and financial fields of a
// listing. Validated rows are editable by admin only; status never changes
// through this route.
func UpdatePropertyHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ident, ok := middleware.CurrentIdentity(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid property id"})
			return
		}
		// Fetch through the visibility scope first, so rows the caller cannot
		// see 404 before any role check can leak their existence
		prop, err := policy.FindProperty(db, ident, id)
		if err != nil {
			policyError(c, err)
			return
		}
		if err := policy.CanUpdateProperty(ident, prop); err != nil {
			policyError(c, err)
			return
		}
		var req UpdatePropertyRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		// Apply the editable fields only; status, creator and on-chain
		// reference stay as fetched
		prop.Name = req.Name
		prop.Location = req.Location
		prop.Category = req.Category
		prop.Description = req.Description
		prop.TotalPrice = req.TotalPrice
		prop.TokenPrice = req.TokenPrice
		prop.AnnualYield = req.AnnualYield
		prop.ImageURL = req.ImageURL
		prop.Documents = req.Documents
		if err := db.Save(prop).Error; err != nil {
			policyError(c, err)
			return
		}
		logrus.WithFields(logrus.Fields{
			"property_id": prop.ID,
			"user_id":     ident.UserID,
		}).Info("Property updated")
		c.JSON(http.StatusOK, gin.H{"property": prop})
	}
}

// UpdatePropertyStatusHandler changes a listing's validation status. Admin
// only; any of the three statuses may be set from any other.
func UpdatePropertyStatusHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ident, ok := middleware.CurrentIdentity(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid property id"})
			return
		}
		var req UpdateStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		prop, err := policy.FindProperty(db, ident, id)
		if err != nil {
			policyError(c, err)
			return
		}
		if err := policy.ChangeStatus(ident, prop, req.Status); err != nil {
			policyError(c, err)
			return
		}
		if err := db.Save(prop).Error; err != nil {
			policyError(c, err)
			return
		}
		logrus.WithFields(logrus.Fields{
			"property_id": prop.ID,
			"status":      prop.Status,
			"admin_id":    ident.UserID,
		}).Info("Property status changed")
		c.JSON(http.StatusOK, gin.H{"property": prop})
	}
}

// DeletePropertyHandler removes a listing. Admin only, and never a validated
// one.
func DeletePropertyHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ident, ok := middleware.CurrentIdentity(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid property id"})
			return
		}
		prop, err := policy.FindProperty(db, ident, id)
		if err != nil {
			policyError(c, err)
			return
		}
		if err := policy.CanDeleteProperty(ident, prop); err != nil {
			policyError(c, err)
			return
		}
		if err := db.Delete(prop).Error; err != nil {
			policyError(c, err)
			return
		}
		logrus.WithFields(logrus.Fields{
			"property_id": prop.ID,
			"admin_id":    ident.UserID,
		}).Info("Property deleted")
		c.JSON(http.StatusOK, gin.H{"message": "Property deleted"})
	}
}
