package controller

import (
	"errors"
	"net/http"

	"github.com/cetakindo/printshop-backend/internal/app/pricing"
	"github.com/cetakindo/printshop-backend/internal/app/service"
	apperrors "github.com/cetakindo/printshop-backend/internal/errors"
	"github.com/cetakindo/printshop-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type CartController struct {
	cartService service.CartService
}

func NewCartController(cartService service.CartService) *CartController {
	return &CartController{
		cartService: cartService,
	}
}

// GetCart returns the user's cart with computed prices
// GET /api/v1/cart
func (ctrl *CartController) GetCart(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User not authenticated",
		})
		return
	}

	cart, err := ctrl.cartService.GetUserCart(userID)
	if err != nil {
		log.Error("Failed to fetch cart", err, map[string]interface{}{
			"user_id": userID,
		})
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to fetch cart",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"cart": cart,
	})
}

// AddToCart adds a configured line to the cart
// POST /api/v1/cart/items
func (ctrl *CartController) AddToCart(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User not authenticated",
		})
		return
	}

	var req service.AddToCartInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	item, err := ctrl.cartService.AddToCart(userID, req)
	if err != nil {
		ctrl.respondCartError(c, err, userID)
		return
	}

	log.Info("Cart item added", map[string]interface{}{
		"user_id":      userID,
		"cart_item_id": item.ID,
	})
	c.JSON(http.StatusCreated, gin.H{
		"item": item,
	})
}

// UpdateCartItem patches a cart line
// PUT /api/v1/cart/items/:id
func (ctrl *CartController) UpdateCartItem(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User not authenticated",
		})
		return
	}

	itemID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req service.UpdateCartInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	item, err := ctrl.cartService.UpdateCartItem(userID, itemID, req)
	if err != nil {
		ctrl.respondCartError(c, err, userID)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"item": item,
	})
}

// RemoveFromCart deletes a cart line
// DELETE /api/v1/cart/items/:id
func (ctrl *CartController) RemoveFromCart(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User not authenticated",
		})
		return
	}

	itemID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := ctrl.cartService.RemoveFromCart(userID, itemID); err != nil {
		ctrl.respondCartError(c, err, userID)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Item removed from cart",
	})
}

// ClearCart empties the user's cart
// DELETE /api/v1/cart
func (ctrl *CartController) ClearCart(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User not authenticated",
		})
		return
	}

	if err := ctrl.cartService.ClearCart(userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to clear cart",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart cleared",
	})
}

func (ctrl *CartController) respondCartError(c *gin.Context, err error, userID uint) {
	log := middleware.GetLoggerFromContext(c)

	switch {
	case errors.Is(err, service.ErrProductNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Product not found",
		})
	case errors.Is(err, service.ErrCartItemNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Cart item not found",
		})
	case errors.Is(err, service.ErrNotCartOwner):
		c.JSON(http.StatusForbidden, gin.H{
			"error": "Cart item does not belong to you",
		})
	case errors.Is(err, service.ErrDesignNotFound):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "One or more selected designs do not exist",
		})
	case errors.Is(err, pricing.ErrMissingSize):
		apperrors.RespondWithError(c, http.StatusBadRequest, apperrors.PricingMissingSize,
			"A cut size is required for this product")
	case errors.Is(err, pricing.ErrCutExceedsRoll):
		apperrors.RespondWithError(c, http.StatusBadRequest, apperrors.PricingCutExceedsRoll,
			"The requested cut does not fit the roll width")
	default:
		log.Error("Cart operation failed", err, map[string]interface{}{
			"user_id": userID,
		})
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Cart operation failed",
		})
	}
}
