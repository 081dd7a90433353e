package controller

import (
	"errors"
	"net/http"

	"github.com/cetakindo/printshop-backend/internal/app/model"
	"github.com/cetakindo/printshop-backend/internal/app/service"
	"github.com/cetakindo/printshop-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type OrderController struct {
	orderService service.OrderService
}

func NewOrderController(orderService service.OrderService) *OrderController {
	return &OrderController{
		orderService: orderService,
	}
}

type CreateOrderRequest struct {
	Intent string `json:"intent"`
}

// GetOrders returns the user's orders
// GET /api/v1/orders
func (ctrl *OrderController) GetOrders(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User not authenticated",
		})
		return
	}

	orders, err := ctrl.orderService.GetUserOrders(userID)
	if err != nil {
		log.Error("Failed to fetch orders", err, map[string]interface{}{
			"user_id": userID,
		})
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to fetch orders",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"orders": orders,
		"count":  len(orders),
	})
}

// GetOrderByID returns one of the user's orders
// GET /api/v1/orders/:id
func (ctrl *OrderController) GetOrderByID(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User not authenticated",
		})
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	order, err := ctrl.orderService.GetUserOrder(userID, id)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Order not found",
			})
		case errors.Is(err, service.ErrNotOrderOwner):
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Order does not belong to you",
			})
		default:
			log.Error("Failed to fetch order", err, map[string]interface{}{
				"user_id":  userID,
				"order_id": id,
			})
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to fetch order",
			})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"order": order,
	})
}

// CreateOrder turns the user's cart into an order or quote request
// POST /api/v1/orders
func (ctrl *OrderController) CreateOrder(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User not authenticated",
		})
		return
	}

	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	intent := model.IntentCart
	if req.Intent == string(model.IntentQuote) {
		intent = model.IntentQuote
	}

	order, err := ctrl.orderService.CreateOrderFromCart(userID, intent)
	if err != nil {
		if errors.Is(err, service.ErrEmptyCart) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Cart is empty",
			})
			return
		}
		log.Error("Failed to create order", err, map[string]interface{}{
			"user_id": userID,
		})
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to create order",
		})
		return
	}

	log.Info("Order created", map[string]interface{}{
		"user_id":      userID,
		"order_id":     order.ID,
		"order_number": order.OrderNumber,
	})
	c.JSON(http.StatusCreated, gin.H{
		"order": order,
	})
}
