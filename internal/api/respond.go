package api

import (
	"net/http"                    // HTTP status codes
	"strconv"                     // String conversion
	"tokenestate/internal/policy" // Policy core

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// policyError writes the JSON error response for a failed policy decision.
// Anything that is not a known policy error is a store failure: logged, and
// surfaced as a generic 500.
func policyError(c *gin.Context, err error) {
	status := policy.HTTPStatus(err)
	if status == http.StatusInternalServerError {
		logrus.WithFields(logrus.Fields{
			"path":  c.FullPath(),
			"error": err.Error(),
		}).Error("Request failed")
		c.JSON(status, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// pagination reads page/page_size query params with the usual bounds
func pagination(c *gin.Context) (page, pageSize, offset int) {
	page = 1      // Default page
	pageSize = 20 // Default page size
	if p := c.Query("page"); p != "" {
		if v, err := strconv.Atoi(p); err == nil && v > 0 {
			page = v
		}
	}
	if ps := c.Query("page_size"); ps != "" {
		if v, err := strconv.Atoi(ps); err == nil && v > 0 && v <= 100 {
			pageSize = v
		}
	}
	return page, pageSize, (page - 1) * pageSize
}
