package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cetakindo/printshop-backend/internal/app/model"
	"github.com/cetakindo/printshop-backend/internal/app/pricing"
	"github.com/cetakindo/printshop-backend/internal/app/repository"
	"github.com/cetakindo/printshop-backend/pkg/logger"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrOrderNotFound        = errors.New("order not found")
	ErrOrderItemNotFound    = errors.New("order item not found")
	ErrOrderLocked          = errors.New("order items are locked")
	ErrOrderAlreadyLocked   = errors.New("order items are already locked")
	ErrOrderNotLocked       = errors.New("order items are not locked")
	ErrUnlockReasonRequired = errors.New("unlock reason is required")
	ErrNotOrderOwner        = errors.New("order does not belong to user")
	ErrEmptyCart            = errors.New("cart is empty")
	ErrRollRequired         = errors.New("roll option is required for roll-priced lines")
)

// OrderItemInput is one line as entered in the admin order editor. For
// standard lines UnitPrice overrides the catalog base price when positive;
// for roll lines the price is always derived from the production figures.
type OrderItemInput struct {
	ProductID          uint                    `json:"product_id" binding:"required"`
	Description        string                  `json:"description"`
	Quantity           int                     `json:"quantity"`
	Unit               string                  `json:"unit"`
	UnitPrice          float64                 `json:"unit_price"`
	Selected           pricing.SelectedOptions `json:"selected_options"`
	IsRoll             bool                    `json:"is_roll"`
	RollID             *uint                   `json:"roll_id"`
	CutWidthIn         float64                 `json:"cut_width_in"`
	CutHeightIn        float64                 `json:"cut_height_in"`
	OffcutPricePerSqFt *float64                `json:"offcut_price_per_sqft"`
}

// AdjustmentsInput carries the order-level discount, tax and shipping rules.
type AdjustmentsInput struct {
	DiscountMode   string  `json:"discount_mode"`
	DiscountValue  float64 `json:"discount_value"`
	TaxMode        string  `json:"tax_mode"`
	TaxValue       float64 `json:"tax_value"`
	ShippingAmount float64 `json:"shipping_amount"`
}

// OrderEventBroadcaster pushes order state changes to connected admin
// editors. A nil broadcaster is valid and simply drops events.
type OrderEventBroadcaster interface {
	BroadcastOrderEvent(orderID uint, event interface{})
}

// OrderEvent is the payload sent to the order editor channel after every
// mutation, so every widget converges on the same authoritative state.
type OrderEvent struct {
	Type           string     `json:"type"`
	OrderID        uint       `json:"order_id"`
	Subtotal       float64    `json:"subtotal"`
	DiscountAmount float64    `json:"discount_amount"`
	TaxAmount      float64    `json:"tax_amount"`
	GrandTotal     float64    `json:"grand_total"`
	IsItemsLocked  bool       `json:"is_items_locked"`
	LockedAt       *time.Time `json:"locked_at,omitempty"`
	LockedTotal    *float64   `json:"locked_total,omitempty"`
}

type OrderService interface {
	CreateOrderFromCart(userID uint, intent model.CartIntent) (*model.Order, error)
	GetUserOrders(userID uint) ([]model.Order, error)
	GetUserOrder(userID, orderID uint) (*model.Order, error)
	GetOrder(orderID uint) (*model.Order, error)
	ListOrders() ([]model.Order, error)

	AddItem(actorID, orderID uint, input OrderItemInput) (*model.Order, error)
	UpdateItem(actorID, orderID, itemID uint, input OrderItemInput) (*model.Order, error)
	RemoveItem(actorID, orderID, itemID uint) (*model.Order, error)
	DuplicateItem(actorID, orderID, itemID uint) (*model.Order, error)
	SetAdjustments(actorID, orderID uint, input AdjustmentsInput) (*model.Order, error)

	Lock(actorID, orderID uint) (*model.Order, error)
	Unlock(actorID, orderID uint, reason string) (*model.Order, error)
	GetLockEvents(orderID uint) ([]model.OrderLockEvent, error)
}

type orderService struct {
	db          *gorm.DB
	orderRepo   repository.OrderRepository
	cartRepo    repository.CartRepository
	broadcaster OrderEventBroadcaster
}

func NewOrderService(
	db *gorm.DB,
	orderRepo repository.OrderRepository,
	cartRepo repository.CartRepository,
	broadcaster OrderEventBroadcaster,
) OrderService {
	return &orderService{
		db:          db,
		orderRepo:   orderRepo,
		cartRepo:    cartRepo,
		broadcaster: broadcaster,
	}
}

// CreateOrderFromCart turns the user's cart lines with the given intent into
// an order. Every line is repriced against the current catalog at this
// moment; stored cart rows never carry prices. Roll lines enter as storefront
// estimates with their cut recorded in inches; the authoritative production
// price is set later in the admin editor once a roll is assigned.
func (s *orderService) CreateOrderFromCart(userID uint, intent model.CartIntent) (*model.Order, error) {
	items, err := s.cartRepo.FindByUserID(userID)
	if err != nil {
		return nil, err
	}

	selected := make([]model.CartItem, 0, len(items))
	for _, item := range items {
		if item.Intent == intent {
			selected = append(selected, item)
		}
	}
	if len(selected) == 0 {
		logger.Warn("Checkout with empty cart", map[string]interface{}{
			"user_id": userID,
			"intent":  string(intent),
		})
		return nil, ErrEmptyCart
	}

	status := model.OrderStatusPending
	if intent == model.IntentQuote {
		status = model.OrderStatusDraft
	}

	tx := s.db.Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	txOrders := repository.NewOrderRepository(tx)
	order := &model.Order{
		OrderNumber:  newOrderNumber(),
		UserID:       userID,
		Status:       status,
		DiscountMode: string(pricing.ModeNone),
		TaxMode:      string(pricing.ModeNone),
	}
	if err := txOrders.Create(order); err != nil {
		tx.Rollback()
		return nil, err
	}

	var lineTotals []float64
	for _, cartItem := range selected {
		orderItem, err := s.orderItemFromCart(tx, order.ID, cartItem)
		if err != nil {
			tx.Rollback()
			return nil, err
		}
		if err := tx.Create(orderItem).Error; err != nil {
			tx.Rollback()
			return nil, err
		}
		lineTotals = append(lineTotals, orderItem.LineTotal)
	}

	order.ApplyTotals(pricing.ComputeTotals(lineTotals, order.TotalsInput()))
	if err := txOrders.Update(order); err != nil {
		tx.Rollback()
		return nil, err
	}

	for _, cartItem := range selected {
		if err := tx.Delete(&model.CartItem{}, cartItem.ID).Error; err != nil {
			tx.Rollback()
			return nil, err
		}
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	logger.Info("Order created from cart", map[string]interface{}{
		"user_id":      userID,
		"order_id":     order.ID,
		"order_number": order.OrderNumber,
		"intent":       string(intent),
		"items":        len(selected),
		"grand_total":  order.GrandTotal,
	})
	return s.orderRepo.FindByID(order.ID)
}

func (s *orderService) GetUserOrders(userID uint) ([]model.Order, error) {
	return s.orderRepo.FindByUserID(userID)
}

func (s *orderService) GetUserOrder(userID, orderID uint) (*model.Order, error) {
	order, err := s.GetOrder(orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		logger.Warn("Order ownership check failed", map[string]interface{}{
			"user_id":  userID,
			"order_id": orderID,
			"owner_id": order.UserID,
		})
		return nil, ErrNotOrderOwner
	}
	return order, nil
}

func (s *orderService) GetOrder(orderID uint) (*model.Order, error) {
	order, err := s.orderRepo.FindByID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return order, nil
}

func (s *orderService) ListOrders() ([]model.Order, error) {
	return s.orderRepo.FindAll()
}

func (s *orderService) AddItem(actorID, orderID uint, input OrderItemInput) (*model.Order, error) {
	order, err := s.mutateItems(orderID, func(tx *gorm.DB, order *model.Order) error {
		item, err := s.priceOrderItem(tx, order.ID, input)
		if err != nil {
			return err
		}
		return tx.Create(item).Error
	})
	if err != nil {
		return nil, err
	}
	logger.Info("Order item added", map[string]interface{}{
		"actor_id":    actorID,
		"order_id":    orderID,
		"grand_total": order.GrandTotal,
	})
	s.broadcast("item_added", order)
	return order, nil
}

func (s *orderService) UpdateItem(actorID, orderID, itemID uint, input OrderItemInput) (*model.Order, error) {
	order, err := s.mutateItems(orderID, func(tx *gorm.DB, order *model.Order) error {
		var existing model.OrderItem
		if err := tx.Where("order_id = ?", order.ID).First(&existing, itemID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOrderItemNotFound
			}
			return err
		}
		item, err := s.priceOrderItem(tx, order.ID, input)
		if err != nil {
			return err
		}
		item.ID = existing.ID
		item.CreatedAt = existing.CreatedAt
		return tx.Save(item).Error
	})
	if err != nil {
		return nil, err
	}
	logger.Info("Order item updated", map[string]interface{}{
		"actor_id":      actorID,
		"order_id":      orderID,
		"order_item_id": itemID,
		"grand_total":   order.GrandTotal,
	})
	s.broadcast("item_updated", order)
	return order, nil
}

func (s *orderService) RemoveItem(actorID, orderID, itemID uint) (*model.Order, error) {
	order, err := s.mutateItems(orderID, func(tx *gorm.DB, order *model.Order) error {
		result := tx.Where("order_id = ?", order.ID).Delete(&model.OrderItem{}, itemID)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrOrderItemNotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	logger.Info("Order item removed", map[string]interface{}{
		"actor_id":      actorID,
		"order_id":      orderID,
		"order_item_id": itemID,
		"grand_total":   order.GrandTotal,
	})
	s.broadcast("item_removed", order)
	return order, nil
}

// DuplicateItem clones a line as-is, including its production figures. The
// copy is repriced along with everything else when totals are recomputed.
func (s *orderService) DuplicateItem(actorID, orderID, itemID uint) (*model.Order, error) {
	order, err := s.mutateItems(orderID, func(tx *gorm.DB, order *model.Order) error {
		var existing model.OrderItem
		if err := tx.Where("order_id = ?", order.ID).First(&existing, itemID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOrderItemNotFound
			}
			return err
		}
		clone := existing
		clone.ID = 0
		clone.CreatedAt = time.Time{}
		clone.UpdatedAt = time.Time{}
		return tx.Create(&clone).Error
	})
	if err != nil {
		return nil, err
	}
	logger.Info("Order item duplicated", map[string]interface{}{
		"actor_id":      actorID,
		"order_id":      orderID,
		"order_item_id": itemID,
	})
	s.broadcast("item_duplicated", order)
	return order, nil
}

// SetAdjustments replaces the order-level rules and recomputes totals.
// Adjustments feed the grand total, so they go through the same lock gate
// as item edits.
func (s *orderService) SetAdjustments(actorID, orderID uint, input AdjustmentsInput) (*model.Order, error) {
	order, err := s.mutateItems(orderID, func(tx *gorm.DB, order *model.Order) error {
		order.DiscountMode = normalizeMode(input.DiscountMode)
		order.DiscountValue = input.DiscountValue
		order.TaxMode = normalizeMode(input.TaxMode)
		order.TaxValue = input.TaxValue
		order.ShippingAmount = input.ShippingAmount
		return nil
	})
	if err != nil {
		return nil, err
	}
	logger.Info("Order adjustments updated", map[string]interface{}{
		"actor_id":    actorID,
		"order_id":    orderID,
		"grand_total": order.GrandTotal,
	})
	s.broadcast("adjustments_updated", order)
	return order, nil
}

// Lock freezes the order's items for production. The current grand total is
// snapshotted and an audit event is appended. Locking an already locked
// order fails rather than silently re-locking.
func (s *orderService) Lock(actorID, orderID uint) (*model.Order, error) {
	tx := s.db.Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	var order model.Order
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&order, orderID).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	if order.IsItemsLocked {
		tx.Rollback()
		return nil, ErrOrderAlreadyLocked
	}

	now := time.Now()
	total := order.GrandTotal
	order.IsItemsLocked = true
	order.LockedAt = &now
	order.LockedTotal = &total
	order.Status = model.OrderStatusProduction

	txOrders := repository.NewOrderRepository(tx)
	if err := txOrders.Update(&order); err != nil {
		tx.Rollback()
		return nil, err
	}
	event := &model.OrderLockEvent{
		EventID: uuid.NewString(),
		OrderID: order.ID,
		Action:  model.LockActionLock,
		ActorID: actorID,
		Total:   total,
	}
	if err := txOrders.CreateLockEvent(event); err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	logger.Info("Order items locked", map[string]interface{}{
		"actor_id":     actorID,
		"order_id":     orderID,
		"locked_total": total,
	})
	full, err := s.orderRepo.FindByID(orderID)
	if err != nil {
		return nil, err
	}
	s.broadcast("locked", full)
	return full, nil
}

// Unlock reopens a locked order for editing. A reason is mandatory and is
// recorded on the audit event; the original LockedAt and LockedTotal stay on
// the order so the lock history remains legible.
func (s *orderService) Unlock(actorID, orderID uint, reason string) (*model.Order, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, ErrUnlockReasonRequired
	}

	tx := s.db.Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	var order model.Order
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&order, orderID).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	if !order.IsItemsLocked {
		tx.Rollback()
		return nil, ErrOrderNotLocked
	}

	order.IsItemsLocked = false
	order.Status = model.OrderStatusPending
	txOrders := repository.NewOrderRepository(tx)
	if err := txOrders.Update(&order); err != nil {
		tx.Rollback()
		return nil, err
	}
	event := &model.OrderLockEvent{
		EventID: uuid.NewString(),
		OrderID: order.ID,
		Action:  model.LockActionUnlock,
		ActorID: actorID,
		Reason:  strings.TrimSpace(reason),
		Total:   order.GrandTotal,
	}
	if err := txOrders.CreateLockEvent(event); err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	logger.Info("Order items unlocked", map[string]interface{}{
		"actor_id": actorID,
		"order_id": orderID,
		"reason":   strings.TrimSpace(reason),
	})
	full, err := s.orderRepo.FindByID(orderID)
	if err != nil {
		return nil, err
	}
	s.broadcast("unlocked", full)
	return full, nil
}

func (s *orderService) GetLockEvents(orderID uint) ([]model.OrderLockEvent, error) {
	if _, err := s.GetOrder(orderID); err != nil {
		return nil, err
	}
	return s.orderRepo.FindLockEvents(orderID)
}

// mutateItems runs an item-level edit inside a transaction. The order row is
// re-read under a row lock first, so two concurrent edits serialize and a
// lock flipped by another session is always seen before the edit applies.
// After the edit, totals are recomputed whole from all surviving lines.
func (s *orderService) mutateItems(orderID uint, fn func(tx *gorm.DB, order *model.Order) error) (*model.Order, error) {
	tx := s.db.Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	var order model.Order
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&order, orderID).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	if order.IsItemsLocked {
		tx.Rollback()
		logger.Warn("Mutation rejected on locked order", map[string]interface{}{
			"order_id": orderID,
		})
		return nil, ErrOrderLocked
	}

	if err := fn(tx, &order); err != nil {
		tx.Rollback()
		return nil, err
	}

	var items []model.OrderItem
	if err := tx.Where("order_id = ?", order.ID).Order("id ASC").Find(&items).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	lineTotals := make([]float64, 0, len(items))
	for _, item := range items {
		lineTotals = append(lineTotals, item.LineTotal)
	}
	order.ApplyTotals(pricing.ComputeTotals(lineTotals, order.TotalsInput()))

	if err := repository.NewOrderRepository(tx).Update(&order); err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	return s.orderRepo.FindByID(order.ID)
}

// priceOrderItem builds a fully priced order line from editor input. Roll
// lines are priced from the assigned roll's fixed width: the fixed band at
// the product rate plus the offcut band at its own rate, with variant
// adjustments applied once per unit on top. The catalog is read through tx
// so the line prices against the same snapshot the transaction commits with.
func (s *orderService) priceOrderItem(tx *gorm.DB, orderID uint, input OrderItemInput) (*model.OrderItem, error) {
	product, err := repository.NewProductRepository(tx).FindByIDWithVariants(input.ProductID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	snapshot := product.CatalogSnapshot()
	adjustment := pricing.VariantAdjustment(snapshot.VariantGroups, input.Selected)

	quantity := pricing.NormalizeQuantity(input.Quantity)
	item := &model.OrderItem{
		OrderID:     orderID,
		ProductID:   input.ProductID,
		Description: input.Description,
		Quantity:    quantity,
		Unit:        input.Unit,
	}
	if item.Description == "" {
		item.Description = product.Name
	}
	if item.Unit == "" {
		item.Unit = "pcs"
	}
	if len(input.Selected) > 0 {
		payload, err := json.Marshal(input.Selected)
		if err != nil {
			return nil, err
		}
		item.OptionSnapshot = string(payload)
	}

	if input.IsRoll || snapshot.PricingMethod == pricing.MethodRoll {
		if input.RollID == nil {
			return nil, ErrRollRequired
		}
		var roll model.RollOption
		if err := tx.First(&roll, *input.RollID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrRollNotFound
			}
			return nil, err
		}

		result, err := pricing.CalculateRollCut(roll.RollWidthFt, input.CutWidthIn, input.CutHeightIn)
		if err != nil {
			return nil, err
		}
		offcutRate := roll.OffcutPricePerSqFt
		if input.OffcutPricePerSqFt != nil {
			offcutRate = *input.OffcutPricePerSqFt
		}

		unitPrice := result.FixedAreaFt2*product.PricePerSqFt + result.OffcutAreaFt2*offcutRate + adjustment
		if unitPrice < 0 {
			unitPrice = 0
		}

		item.IsRoll = true
		item.RollID = input.RollID
		item.CutWidthIn = input.CutWidthIn
		item.CutHeightIn = input.CutHeightIn
		item.OffcutPricePerSqFt = offcutRate
		item.FixedAreaFt2 = result.FixedAreaFt2
		item.OffcutAreaFt2 = result.OffcutAreaFt2
		item.OffcutWidthIn = result.OffcutWidthIn
		item.UnitPrice = unitPrice
	} else {
		base := product.Price
		if input.UnitPrice > 0 {
			base = input.UnitPrice
		}
		unitPrice := base + adjustment
		if unitPrice < 0 {
			unitPrice = 0
		}
		item.UnitPrice = unitPrice
	}

	item.LineTotal = pricing.ComputeLine(item.UnitPrice, quantity)
	return item, nil
}

// orderItemFromCart reprices one cart line for checkout, reading the catalog
// through the checkout transaction.
func (s *orderService) orderItemFromCart(tx *gorm.DB, orderID uint, cartItem model.CartItem) (*model.OrderItem, error) {
	product, err := repository.NewProductRepository(tx).FindByIDWithVariants(cartItem.ProductID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	snapshot := product.CatalogSnapshot()

	size := sizeFromInput(cartItem.CutWidth, cartItem.CutHeight, cartItem.SizeUnit)
	unitPrice, err := pricing.ResolveUnitPrice(snapshot, cartItem.Selections(), size)
	if err != nil {
		return nil, err
	}

	quantity := pricing.DeriveQuantity(
		pricing.QuantitySource(cartItem.QuantitySource),
		len(cartItem.GalleryDesigns()),
		cartItem.Quantity,
	)

	item := &model.OrderItem{
		OrderID:        orderID,
		ProductID:      cartItem.ProductID,
		Description:    product.Name,
		Quantity:       quantity,
		Unit:           "pcs",
		UnitPrice:      unitPrice,
		LineTotal:      pricing.ComputeLine(unitPrice, quantity),
		OptionSnapshot: cartItem.SelectedOptions,
	}
	if snapshot.PricingMethod == pricing.MethodRoll && size != nil {
		item.IsRoll = true
		item.CutWidthIn = toInches(size.Width, size.Unit)
		item.CutHeightIn = toInches(size.Height, size.Unit)
	}
	return item, nil
}

func (s *orderService) broadcast(eventType string, order *model.Order) {
	if s.broadcaster == nil || order == nil {
		return
	}
	s.broadcaster.BroadcastOrderEvent(order.ID, OrderEvent{
		Type:           eventType,
		OrderID:        order.ID,
		Subtotal:       order.Subtotal,
		DiscountAmount: order.DiscountAmount,
		TaxAmount:      order.TaxAmount,
		GrandTotal:     order.GrandTotal,
		IsItemsLocked:  order.IsItemsLocked,
		LockedAt:       order.LockedAt,
		LockedTotal:    order.LockedTotal,
	})
}

func newOrderNumber() string {
	return fmt.Sprintf("PO-%s", strings.ToUpper(uuid.NewString()[:8]))
}

func normalizeMode(mode string) string {
	switch pricing.AdjustmentMode(mode) {
	case pricing.ModeFixed, pricing.ModePercent:
		return mode
	default:
		return string(pricing.ModeNone)
	}
}

func toInches(v float64, unit pricing.SizeUnit) float64 {
	if unit == pricing.UnitFoot {
		return v * 12
	}
	return v
}
