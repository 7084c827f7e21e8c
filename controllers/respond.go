package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mariemanaya/product-service/repositories"
	"github.com/mariemanaya/product-service/services"
)

// respondError maps pipeline errors onto HTTP statuses. Conflicts and
// rate-limit retries are absorbed before this point and never show up
// here.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrProductNotFound), errors.Is(err, repositories.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrInvalidAction):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrUpstream):
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// requireUID reads the uid query parameter on endpoints that need one.
func requireUID(c *gin.Context) (string, bool) {
	uid := c.Query("uid")
	if uid == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "uid is required"})
		return "", false
	}
	return uid, true
}
