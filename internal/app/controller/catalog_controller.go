package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/cetakindo/printshop-backend/internal/app/pricing"
	"github.com/cetakindo/printshop-backend/internal/app/service"
	apperrors "github.com/cetakindo/printshop-backend/internal/errors"
	"github.com/cetakindo/printshop-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type CatalogController struct {
	catalogService service.CatalogService
}

func NewCatalogController(catalogService service.CatalogService) *CatalogController {
	return &CatalogController{
		catalogService: catalogService,
	}
}

type QuoteRequest struct {
	Selected  pricing.SelectedOptions `json:"selected_options"`
	Quantity  int                     `json:"quantity"`
	CutWidth  float64                 `json:"cut_width"`
	CutHeight float64                 `json:"cut_height"`
	SizeUnit  string                  `json:"size_unit"`
}

// GetProducts returns the product catalog
// GET /api/v1/products
func (ctrl *CatalogController) GetProducts(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	products, err := ctrl.catalogService.ListProducts()
	if err != nil {
		log.Error("Failed to fetch products", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to fetch products",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"products": products,
		"count":    len(products),
	})
}

// GetProductByID returns one product with its variant tree and roll options
// GET /api/v1/products/:id
func (ctrl *CatalogController) GetProductByID(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	product, err := ctrl.catalogService.GetProductDetail(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Product not found",
			})
			return
		}
		log.Error("Failed to fetch product", err, map[string]interface{}{
			"product_id": id,
		})
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to fetch product",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"product": product,
	})
}

// QuotePrice returns the storefront estimate for one configuration
// POST /api/v1/products/:id/quote
func (ctrl *CatalogController) QuotePrice(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	var size *pricing.CutSize
	if req.CutWidth > 0 || req.CutHeight > 0 {
		unit := pricing.UnitInch
		if req.SizeUnit == string(pricing.UnitFoot) {
			unit = pricing.UnitFoot
		}
		size = &pricing.CutSize{Width: req.CutWidth, Height: req.CutHeight, Unit: unit}
	}

	quote, err := ctrl.catalogService.QuotePrice(c.Request.Context(), id, req.Selected, size, req.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProductNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Product not found",
			})
		case errors.Is(err, pricing.ErrMissingSize):
			apperrors.RespondWithError(c, http.StatusBadRequest, apperrors.PricingMissingSize,
				"A cut size is required to price this product")
		case errors.Is(err, pricing.ErrCutExceedsRoll):
			apperrors.RespondWithError(c, http.StatusBadRequest, apperrors.PricingCutExceedsRoll,
				"The requested cut does not fit the roll width")
		default:
			log.Error("Failed to quote price", err, map[string]interface{}{
				"product_id": id,
			})
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to quote price",
			})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"quote": quote,
	})
}

// GetProductRolls returns the roll options for a product
// GET /api/v1/products/:id/rolls
func (ctrl *CatalogController) GetProductRolls(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	rolls, err := ctrl.catalogService.ListProductRolls(id)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Product not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to fetch roll options",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"rolls": rolls,
		"count": len(rolls),
	})
}

// UpdateProduct applies a staff edit to a product and invalidates its
// cached snapshot
// PUT /api/v1/admin/products/:id
func (ctrl *CatalogController) UpdateProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input service.UpdateProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request body",
			"code":  apperrors.ValidationInvalidInput,
		})
		return
	}

	product, err := ctrl.catalogService.UpdateProduct(c.Request.Context(), id, input)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Product not found",
				"code":  apperrors.CatalogProductNotFound,
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to update product",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"product": product,
	})
}

// GetDesigns returns the design gallery
// GET /api/v1/designs
func (ctrl *CatalogController) GetDesigns(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	designs, err := ctrl.catalogService.ListDesigns()
	if err != nil {
		log.Error("Failed to fetch designs", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to fetch designs",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"designs": designs,
		"count":   len(designs),
	})
}

// parseIDParam parses a numeric path parameter, responding 400 on failure.
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid " + name,
		})
		return 0, false
	}
	return uint(id), true
}
