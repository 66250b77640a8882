package v1

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the catalog API on rg. Every route behind rg is
// expected to sit behind the bearer-token middleware; the health check lives
// outside this group.
func RegisterRoutes(rg *gin.RouterGroup, products *ProductHandler, categories *CategoryHandler) {
	p := rg.Group("/products")
	{
		p.GET("", products.List)
		p.GET("/:id", products.Get)
		p.POST("/search", products.Search)
		p.POST("/upload", products.Upload)
		p.POST("", products.Create)
		p.PUT("/:id", products.Update)
		p.DELETE("/:id", products.Delete)
	}

	c := rg.Group("/categories")
	{
		c.GET("", categories.List)
		c.GET("/:id", categories.Get)
		c.POST("", categories.Create)
		c.PUT("/:id", categories.Update)
		c.DELETE("/:id", categories.Delete)
	}
}
