package handlers

import (
	"net/http"
	"strconv"

	"stayhub/models"

	"github.com/gin-gonic/gin"
)

// defaultPageSize bounds listing queries when the client sends none.
const defaultPageSize = 20

// parsePage reads page/size query params with sane bounds.
func parsePage(c *gin.Context) (page, size int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "0"))
	size, _ = strconv.Atoi(c.DefaultQuery("size", strconv.Itoa(defaultPageSize)))
	if page < 0 {
		page = 0
	}
	if size <= 0 || size > 100 {
		size = defaultPageSize
	}
	return page, size
}

// currentUserID returns the authenticated user's ID set by the auth
// middleware, aborting with 401 when missing.
func currentUserID(c *gin.Context) (string, bool) {
	val, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return "", false
	}
	id, ok := val.(string)
	if !ok || id == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return "", false
	}
	return id, true
}

// currentUser returns the authenticated user set by the auth middleware.
func currentUser(c *gin.Context) (*models.User, bool) {
	val, exists := c.Get("currentUser")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return nil, false
	}
	user, ok := val.(*models.User)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return nil, false
	}
	return user, true
}
