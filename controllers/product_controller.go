package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mariemanaya/product-service/models"
	"github.com/mariemanaya/product-service/services"
)

type ProductController struct {
	products *services.ProductService
	enrich   *services.EnrichmentService
}

func NewProductController(products *services.ProductService, enrich *services.EnrichmentService) *ProductController {
	return &ProductController{products: products, enrich: enrich}
}

// GET /products/:code?uid=
// uid is optional; without it the product comes back unannotated.
func (pc *ProductController) GetProduct(c *gin.Context) {
	product, err := pc.products.Resolve(c.Request.Context(), c.Param("code"))
	if err != nil {
		respondError(c, err)
		return
	}

	annotated, err := pc.enrich.Annotate(c.Request.Context(), []models.Product{*product}, c.Query("uid"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, annotated[0])
}

// GET /products/search/:name?uid=
func (pc *ProductController) SearchProducts(c *gin.Context) {
	results, err := pc.products.Search(c.Request.Context(), c.Param("name"))
	if err != nil {
		respondError(c, err)
		return
	}

	annotated, err := pc.enrich.Annotate(c.Request.Context(), results, c.Query("uid"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, annotated)
}
