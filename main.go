package main

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	apiv1 "github.com/Y4SHVINE/smart-product-assistant/internal/api/v1"
	"github.com/Y4SHVINE/smart-product-assistant/internal/config"
	"github.com/Y4SHVINE/smart-product-assistant/internal/db"
	"github.com/Y4SHVINE/smart-product-assistant/internal/llm"
	"github.com/Y4SHVINE/smart-product-assistant/internal/repository"
	"github.com/Y4SHVINE/smart-product-assistant/internal/service"
	"github.com/Y4SHVINE/smart-product-assistant/pkg/middleware"
)

func main() {
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatal("Config load failed: ", err)
	}

	pool, err := db.Connect(context.Background(), cfg.Database.URL)
	if err != nil {
		log.Fatal("DB connection failed: ", err)
	}
	defer pool.Close()

	recommender, err := llm.NewClient(llm.Config{
		APIKey:  cfg.OpenAI.APIKey(),
		BaseURL: cfg.OpenAI.BaseURL,
		Model:   cfg.OpenAI.Model,
		Timeout: cfg.OpenAI.Timeout(),
	})
	if err != nil {
		log.Fatal("Recommendation client init failed: ", err)
	}

	products := repository.NewProductRepository(pool)
	categories := repository.NewCategoryRepository(pool)
	searchService := service.NewSearchService(products, recommender)
	authService := service.NewAuthService(cfg.Auth.URL, cfg.Auth.ServiceKey())

	r := gin.Default()
	r.SetTrustedProxies(nil)
	r.Use(middleware.CORS())
	r.Use(middleware.RequestID())

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Smart Product Assistant API is Healthy"})
	})

	authMiddleware := middleware.NewAuthMiddleware(authService)
	api := r.Group("/api")
	api.Use(authMiddleware.RequireAuth())
	apiv1.RegisterRoutes(api,
		apiv1.NewProductHandler(products, searchService),
		apiv1.NewCategoryHandler(categories),
	)

	if err := r.Run(":" + cfg.Server.Port); err != nil {
		log.Fatal("Server stopped: ", err)
	}
}
