package main

import (
	"log"
	"os"

	"go.uber.org/zap"

	"github.com/mariemanaya/product-service/config"
	"github.com/mariemanaya/product-service/controllers"
	"github.com/mariemanaya/product-service/repositories"
	"github.com/mariemanaya/product-service/routes"
	"github.com/mariemanaya/product-service/services"
	"github.com/mariemanaya/product-service/utils"
)

func main() {
	cfg := config.Load()

	logger, err := utils.NewLogger(os.Getenv("GIN_MODE"))
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer logger.Sync()

	db, err := config.ConnectDB(cfg)
	if err != nil {
		logger.Fatal("database init failed", zap.Error(err))
	}

	productRepo := repositories.NewProductRepository(db)
	historyRepo := repositories.NewHistoryRepository(db)
	favoriteRepo := repositories.NewFavoriteRepository(db)
	allergenRepo := repositories.NewAllergenRepository(db)

	off := services.NewOpenFoodFactsService(cfg.OffBaseURL, cfg.OffUserAgent)
	productSvc := services.NewProductService(productRepo, off, logger)
	enrichSvc := services.NewEnrichmentService(favoriteRepo, allergenRepo)
	historySvc := services.NewHistoryService(historyRepo, productRepo, productSvc, logger)
	favoriteSvc := services.NewFavoriteService(favoriteRepo, productRepo)
	allergenSvc := services.NewAllergenService(allergenRepo)

	r := routes.SetupRouter(routes.Controllers{
		Products:  controllers.NewProductController(productSvc, enrichSvc),
		History:   controllers.NewHistoryController(historySvc),
		Favorites: controllers.NewFavoriteController(favoriteSvc),
		Allergens: controllers.NewAllergenController(allergenSvc),
	}, logger)

	logger.Info("listening", zap.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
