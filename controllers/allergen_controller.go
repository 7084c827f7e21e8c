package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mariemanaya/product-service/services"
)

type AllergenController struct {
	allergens *services.AllergenService
}

func NewAllergenController(allergens *services.AllergenService) *AllergenController {
	return &AllergenController{allergens: allergens}
}

type allergenRequest struct {
	UID       string   `json:"uid" binding:"required"`
	Allergens []string `json:"allergens" binding:"required"`
}

// POST /users/allergens  { "uid": "...", "allergens": ["..."] }
// Replaces the whole profile.
func (ac *AllergenController) Update(c *gin.Context) {
	var req allergenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "uid and allergens are required"})
		return
	}

	profile, err := ac.allergens.Update(c.Request.Context(), req.UID, req.Allergens)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// GET /users/:uid/allergens
func (ac *AllergenController) Get(c *gin.Context) {
	allergens, err := ac.allergens.Get(c.Request.Context(), c.Param("uid"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"uid": c.Param("uid"), "allergens": allergens})
}

// DELETE /users/:uid/allergens
func (ac *AllergenController) Delete(c *gin.Context) {
	if err := ac.allergens.Clear(c.Request.Context(), c.Param("uid")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cleared": c.Param("uid")})
}
