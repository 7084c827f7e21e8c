package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mariemanaya/product-service/services"
)

type FavoriteController struct {
	favorites *services.FavoriteService
}

func NewFavoriteController(favorites *services.FavoriteService) *FavoriteController {
	return &FavoriteController{favorites: favorites}
}

type toggleRequest struct {
	UID       string `json:"uid" binding:"required"`
	ProductID string `json:"product_id" binding:"required"`
}

// POST /favorites/toggle  { "uid": "...", "product_id": "..." }
func (fc *FavoriteController) Toggle(c *gin.Context) {
	var req toggleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "uid and product_id are required"})
		return
	}

	action, err := fc.favorites.Toggle(c.Request.Context(), req.UID, req.ProductID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"action": action})
}

// GET /favorites?uid=
func (fc *FavoriteController) List(c *gin.Context) {
	uid, ok := requireUID(c)
	if !ok {
		return
	}
	out, err := fc.favorites.List(c.Request.Context(), uid)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}
