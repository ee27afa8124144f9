package http

import (
	"errors"
	"math/rand"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/scoopscore/backend/internal/domain"
	"github.com/scoopscore/backend/internal/usecase"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	catalog *usecase.CatalogService
}

// NewHandler creates a new HTTP handler
func NewHandler(catalog *usecase.CatalogService) *Handler {
	return &Handler{catalog: catalog}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "scoopscore-backend",
		"version": "1.0.0",
	})
}

// ListProducts returns the rated, grouped product list for a category.
// GET /api/v1/products/:category?mode=onetime|subscription&sort=value|price-asc|price-desc|popular
func (h *Handler) ListProducts(c *gin.Context) {
	category, err := domain.ParseCategory(c.Param("category"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	mode, err := domain.ParsePricingMode(c.Query("mode"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Random display order is a presentation concern; it shuffles the served
	// view here and never reaches the rating engine.
	shuffle := c.Query("sort") == "random"
	sortQuery := c.Query("sort")
	if shuffle {
		sortQuery = ""
	}

	sortMode, err := usecase.ParseSortMode(sortQuery)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown sort mode"})
		return
	}

	products, err := h.catalog.GetProducts(c.Request.Context(), category, mode, sortMode)
	if err != nil {
		if errors.Is(err, domain.ErrCatalogUnavailable) {
			c.JSON(http.StatusBadGateway, gin.H{"error": "catalog temporarily unavailable"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	sortLabel := string(sortMode)
	if shuffle {
		rand.Shuffle(len(products), func(i, j int) {
			products[i], products[j] = products[j], products[i]
		})
		sortLabel = "random"
	}

	productListRequests.WithLabelValues(string(category), string(mode)).Inc()

	c.JSON(http.StatusOK, gin.H{
		"category": category,
		"mode":     mode,
		"sort":     sortLabel,
		"count":    len(products),
		"products": products,
	})
}

// clickRequest is the body of POST /api/v1/products/click.
type clickRequest struct {
	Key string `json:"key" binding:"required"`
}

// RegisterClick records a product card click for popularity sorting.
func (h *Handler) RegisterClick(c *gin.Context) {
	var req clickRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "key is required"})
		return
	}

	total, err := h.catalog.RegisterClick(c.Request.Context(), req.Key)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidRequest) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "key is required"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	clickEvents.Inc()

	c.JSON(http.StatusOK, gin.H{
		"key":    req.Key,
		"clicks": total,
	})
}
