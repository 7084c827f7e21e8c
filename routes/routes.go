package routes

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mariemanaya/product-service/controllers"
	"github.com/mariemanaya/product-service/middlewares"
)

type Controllers struct {
	Products  *controllers.ProductController
	History   *controllers.HistoryController
	Favorites *controllers.FavoriteController
	Allergens *controllers.AllergenController
}

func SetupRouter(c Controllers, log *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middlewares.RequestLogger(log))
	r.Use(cors.Default())

	products := r.Group("/products")
	{
		products.GET("/search/:name", c.Products.SearchProducts)
		products.POST("/scan", c.History.Scan)
		products.POST("/view", c.History.View)
		products.GET("/history", c.History.List)
		// the static segment must be registered before the wildcard delete
		products.DELETE("/history/uid", c.History.Clear)
		products.DELETE("/history/:id", c.History.Delete)
		products.GET("/:code", c.Products.GetProduct)
	}

	favorites := r.Group("/favorites")
	{
		favorites.POST("/toggle", c.Favorites.Toggle)
		favorites.GET("", c.Favorites.List)
	}

	users := r.Group("/users")
	{
		users.POST("/allergens", c.Allergens.Update)
		users.GET("/:uid/allergens", c.Allergens.Get)
		users.DELETE("/:uid/allergens", c.Allergens.Delete)
	}

	return r
}
