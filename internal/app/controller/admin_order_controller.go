package controller

import (
	"errors"
	"net/http"

	"github.com/cetakindo/printshop-backend/internal/app/pricing"
	"github.com/cetakindo/printshop-backend/internal/app/service"
	apperrors "github.com/cetakindo/printshop-backend/internal/errors"
	"github.com/cetakindo/printshop-backend/internal/middleware"
	ws "github.com/cetakindo/printshop-backend/internal/websocket"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Cross-origin admin frontends are allowed; auth happens via the token
	// the middleware already validated before the upgrade.
	CheckOrigin: func(r *http.Request) bool { return true },
}

type AdminOrderController struct {
	orderService  service.OrderService
	reportService service.ReportService
	hub           *ws.Hub
}

func NewAdminOrderController(orderService service.OrderService, reportService service.ReportService, hub *ws.Hub) *AdminOrderController {
	return &AdminOrderController{
		orderService:  orderService,
		reportService: reportService,
		hub:           hub,
	}
}

type UnlockRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// ListOrders returns all orders
// GET /api/v1/admin/orders
func (ctrl *AdminOrderController) ListOrders(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	orders, err := ctrl.orderService.ListOrders()
	if err != nil {
		log.Error("Failed to list orders", err)
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

// GetOrder returns one order with its items and lock state
// GET /api/v1/admin/orders/:id
func (ctrl *AdminOrderController) GetOrder(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	order, err := ctrl.orderService.GetOrder(id)
	if err != nil {
		ctrl.respondOrderError(c, err, id)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"order": order,
	})
}

// AddItem appends a priced line to an order
// POST /api/v1/admin/orders/:id/items
func (ctrl *AdminOrderController) AddItem(c *gin.Context) {
	actorID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req service.OrderItemInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	order, err := ctrl.orderService.AddItem(actorID, id, req)
	if err != nil {
		ctrl.respondOrderError(c, err, id)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"order": order,
	})
}

// UpdateItem replaces a line's configuration and reprices it
// PUT /api/v1/admin/orders/:id/items/:itemId
func (ctrl *AdminOrderController) UpdateItem(c *gin.Context) {
	actorID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	itemID, ok := parseIDParam(c, "itemId")
	if !ok {
		return
	}

	var req service.OrderItemInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	order, err := ctrl.orderService.UpdateItem(actorID, id, itemID, req)
	if err != nil {
		ctrl.respondOrderError(c, err, id)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"order": order,
	})
}

// RemoveItem deletes a line
// DELETE /api/v1/admin/orders/:id/items/:itemId
func (ctrl *AdminOrderController) RemoveItem(c *gin.Context) {
	actorID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	itemID, ok := parseIDParam(c, "itemId")
	if !ok {
		return
	}

	order, err := ctrl.orderService.RemoveItem(actorID, id, itemID)
	if err != nil {
		ctrl.respondOrderError(c, err, id)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"order": order,
	})
}

// DuplicateItem clones a line within the order
// POST /api/v1/admin/orders/:id/items/:itemId/duplicate
func (ctrl *AdminOrderController) DuplicateItem(c *gin.Context) {
	actorID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	itemID, ok := parseIDParam(c, "itemId")
	if !ok {
		return
	}

	order, err := ctrl.orderService.DuplicateItem(actorID, id, itemID)
	if err != nil {
		ctrl.respondOrderError(c, err, id)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"order": order,
	})
}

// SetAdjustments replaces the order's discount, tax and shipping rules
// PUT /api/v1/admin/orders/:id/adjustments
func (ctrl *AdminOrderController) SetAdjustments(c *gin.Context) {
	actorID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req service.AdjustmentsInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	order, err := ctrl.orderService.SetAdjustments(actorID, id, req)
	if err != nil {
		ctrl.respondOrderError(c, err, id)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"order": order,
	})
}

// Lock freezes the order's items for production
// POST /api/v1/admin/orders/:id/lock
func (ctrl *AdminOrderController) Lock(c *gin.Context) {
	actorID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	order, err := ctrl.orderService.Lock(actorID, id)
	if err != nil {
		ctrl.respondOrderError(c, err, id)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"order": order,
	})
}

// Unlock reopens a locked order; a reason is mandatory
// POST /api/v1/admin/orders/:id/unlock
func (ctrl *AdminOrderController) Unlock(c *gin.Context) {
	actorID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req UnlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.RespondWithError(c, http.StatusBadRequest, apperrors.OrderUnlockReasonRequired,
			"A reason is required to unlock an order")
		return
	}

	order, err := ctrl.orderService.Unlock(actorID, id, req.Reason)
	if err != nil {
		ctrl.respondOrderError(c, err, id)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"order": order,
	})
}

// GetLockEvents returns the order's lock audit trail
// GET /api/v1/admin/orders/:id/lock-events
func (ctrl *AdminOrderController) GetLockEvents(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	events, err := ctrl.orderService.GetLockEvents(id)
	if err != nil {
		ctrl.respondOrderError(c, err, id)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"events": events,
		"count":  len(events),
	})
}

// Export renders the order as an XLSX production sheet
// GET /api/v1/admin/orders/:id/export
func (ctrl *AdminOrderController) Export(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	payload, filename, err := ctrl.reportService.ExportOrder(id)
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		log.Error("Failed to export order", err, map[string]interface{}{
			"order_id": id,
		})
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to export order",
		})
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", payload)
}

// Events upgrades the connection to a websocket that streams order state
// changes to the editor session
// GET /api/v1/admin/orders/:id/events
func (ctrl *AdminOrderController) Events(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	actorID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if _, err := ctrl.orderService.GetOrder(id); err != nil {
		ctrl.respondOrderError(c, err, id)
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error("Failed to upgrade websocket", err, map[string]interface{}{
			"order_id": id,
		})
		return
	}

	client := &ws.Client{
		Hub:     ctrl.hub,
		Conn:    &ws.Conn{Conn: conn},
		UserID:  actorID,
		OrderID: id,
		Send:    make(chan []byte, 64),
	}
	ctrl.hub.Register(client)

	go client.WritePump()
	go client.ReadPump()
}

func (ctrl *AdminOrderController) respondOrderError(c *gin.Context, err error, orderID uint) {
	log := middleware.GetLoggerFromContext(c)

	switch {
	case errors.Is(err, service.ErrOrderNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
	case errors.Is(err, service.ErrOrderItemNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Order item not found"})
	case errors.Is(err, service.ErrOrderLocked):
		apperrors.RespondWithError(c, http.StatusConflict, apperrors.OrderLocked,
			"Order items are locked for production")
	case errors.Is(err, service.ErrOrderAlreadyLocked):
		apperrors.RespondWithError(c, http.StatusConflict, apperrors.OrderAlreadyLocked,
			"Order items are already locked")
	case errors.Is(err, service.ErrOrderNotLocked):
		apperrors.RespondWithError(c, http.StatusConflict, apperrors.OrderNotLocked,
			"Order items are not locked")
	case errors.Is(err, service.ErrUnlockReasonRequired):
		apperrors.RespondWithError(c, http.StatusBadRequest, apperrors.OrderUnlockReasonRequired,
			"A reason is required to unlock an order")
	case errors.Is(err, service.ErrProductNotFound):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Product not found"})
	case errors.Is(err, service.ErrRollNotFound):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Roll option not found"})
	case errors.Is(err, service.ErrRollRequired):
		c.JSON(http.StatusBadRequest, gin.H{"error": "A roll must be assigned to price this line"})
	case errors.Is(err, pricing.ErrMissingSize):
		apperrors.RespondWithError(c, http.StatusBadRequest, apperrors.PricingMissingSize,
			"A cut size is required to price this line")
	case errors.Is(err, pricing.ErrCutExceedsRoll):
		apperrors.RespondWithError(c, http.StatusBadRequest, apperrors.PricingCutExceedsRoll,
			"The requested cut does not fit the roll width")
	default:
		log.Error("Order operation failed", err, map[string]interface{}{
			"order_id": orderID,
		})
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Order operation failed",
		})
	}
}
