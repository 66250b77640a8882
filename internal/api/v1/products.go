package v1

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"github.com/Y4SHVINE/smart-product-assistant/internal/model"
)

// ProductStore is the persistence surface the product handlers need.
type ProductStore interface {
	List(ctx context.Context) ([]model.Product, error)
	Get(ctx context.Context, id int64) (*model.Product, error)
	Create(ctx context.Context, in model.ProductInput) (*model.Product, error)
	Update(ctx context.Context, id int64, in model.ProductInput) (*model.Product, error)
	Delete(ctx context.Context, id int64) error
}

// Searcher runs the AI-assisted product search pipeline.
type Searcher interface {
	Search(ctx context.Context, query string) ([]model.SearchResult, error)
}

type ProductHandler struct {
	store    ProductStore
	searcher Searcher
}

func NewProductHandler(store ProductStore, searcher Searcher) *ProductHandler {
	return &ProductHandler{store: store, searcher: searcher}
}

func (h *ProductHandler) List(c *gin.Context) {
	products, err := h.store.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *ProductHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product id"})
		return
	}

	product, err := h.store.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

type searchRequest struct {
	Query string `json:"query"`
}

// Search accepts {"query": string} and returns the recommended subset of the
// catalog in the order the recommendation service ranked it.
func (h *ProductHandler) Search(c *gin.Context) {
	var req searchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Search query is required"})
		return
	}

	results, err := h.searcher.Search(c.Request.Context(), req.Query)
	if err != nil {
		if errors.Is(err, model.ErrInvalidRequest) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Search query is required"})
			return
		}
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, results)
}

func (h *ProductHandler) Create(c *gin.Context) {
	var in model.ProductInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product, err := h.store.Create(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, product)
}

func (h *ProductHandler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product id"})
		return
	}

	var in model.ProductInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product, err := h.store.Update(c.Request.Context(), id, in)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product id"})
		return
	}

	if err := h.store.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Upload bulk-imports products from an Excel sheet named "Products" with the
// columns name, description, price, image_url, category_id. Rows that fail
// validation are skipped and counted rather than aborting the import.
func (h *ProductHandler) Upload(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File is required"})
		return
	}

	f, err := file.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to open uploaded file"})
		return
	}
	defer f.Close()

	xlsx, err := excelize.OpenReader(f)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid Excel file"})
		return
	}
	defer xlsx.Close()

	rows, err := xlsx.GetRows("Products")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Sheet 'Products' not found"})
		return
	}

	imported, skipped := 0, 0
	for i, row := range rows {
		if i == 0 {
			continue // header
		}
		if len(row) < 5 {
			skipped++
			continue
		}

		price, err := strconv.ParseFloat(row[2], 64)
		if err != nil || price < 0 {
			skipped++
			continue
		}
		categoryID, err := strconv.ParseInt(row[4], 10, 64)
		if err != nil {
			skipped++
			continue
		}

		in := model.ProductInput{
			Name:        row[0],
			Description: row[1],
			Price:       price,
			ImageURL:    row[3],
			CategoryID:  categoryID,
		}
		if in.Name == "" {
			skipped++
			continue
		}

		if _, err := h.store.Create(c.Request.Context(), in); err != nil {
			skipped++
			continue
		}
		imported++
	}

	c.JSON(http.StatusOK, gin.H{"imported": imported, "skipped": skipped})
}
