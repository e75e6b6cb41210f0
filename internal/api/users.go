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

// UpdateRoleRequest is the admin role-change payload
type UpdateRoleRequest struct {
	Role string `json:"role" binding:"required"` // Target role: user, manager or admin
}

// ListUsersHandler returns all users, paginated. Admin only.
func ListUsersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ident, ok := middleware.CurrentIdentity(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		if err := policy.CanListUsers(ident); err != nil {
			policyError(c, err)
			return
		}
		page, pageSize, offset := pagination(c)
		var total int64
		if err := db.Model(&domain.User{}).Count(&total).Error; err != nil {
			policyError(c, err)
			return
		}
		var users []domain.User
		if err := db.Order("created_at desc").Offset(offset).Limit(pageSize).Find(&users).Error; err != nil {
			policyError(c, err)
			return
		}
		totalPages := (int(total) + pageSize - 1) / pageSize // Calculate total pages
		c.JSON(http.StatusOK, gin.H{
			"users":       users,
			"page":        page,
			"page_size":   pageSize,
			"total":       total,
			"total_pages": totalPages,
		})
	}
}

// UpdateUserRoleHandler changes a user's role. Admin only; an admin cannot
// change their own role.
func UpdateUserRoleHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ident, ok := middleware.CurrentIdentity(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		targetID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user id"})
			return
		}
		var req UpdateRoleRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		var target domain.User
		if err := db.Where("id = ?", targetID).First(&target).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
				return
			}
			policyError(c, err)
			return
		}
		if err := policy.ChangeRole(ident, &target, req.Role); err != nil {
			policyError(c, err)
			return
		}
		if err := db.Model(&target).Update("role", target.Role).Error; err != nil {
			policyError(c, err)
			return
		}
		logrus.WithFields(logrus.Fields{
			"admin_id": ident.UserID,
			"user_id":  target.ID,
			"role":     target.Role,
		}).Info("User role changed")
		c.JSON(http.StatusOK, gin.H{"user": target})
	}
}
