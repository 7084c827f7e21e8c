package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mariemanaya/product-service/models"
	"github.com/mariemanaya/product-service/services"
)

type HistoryController struct {
	history *services.HistoryService
}

func NewHistoryController(history *services.HistoryService) *HistoryController {
	return &HistoryController{history: history}
}

type historyRequest struct {
	UID       string `json:"uid" binding:"required"`
	ProductID string `json:"product_id" binding:"required"`
}

// POST /products/scan  { "uid": "...", "product_id": "..." }
func (hc *HistoryController) Scan(c *gin.Context) {
	hc.record(c, models.ActionScan)
}

// POST /products/view  { "uid": "...", "product_id": "..." }
func (hc *HistoryController) View(c *gin.Context) {
	hc.record(c, models.ActionView)
}

func (hc *HistoryController) record(c *gin.Context, action string) {
	var req historyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "uid and product_id are required"})
		return
	}

	entry, err := hc.history.RecordAction(c.Request.Context(), req.UID, req.ProductID, action)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

// GET /products/history?uid=
func (hc *HistoryController) List(c *gin.Context) {
	uid, ok := requireUID(c)
	if !ok {
		return
	}
	items, err := hc.history.List(c.Request.Context(), uid)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// DELETE /products/history/:id
func (hc *HistoryController) Delete(c *gin.Context) {
	if err := hc.history.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": c.Param("id")})
}

// DELETE /products/history/uid?uid=
func (hc *HistoryController) Clear(c *gin.Context) {
	uid, ok := requireUID(c)
	if !ok {
		return
	}
	count, err := hc.history.Clear(c.Request.Context(), uid)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted_count": count})
}
