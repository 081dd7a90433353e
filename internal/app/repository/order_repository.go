package repository

import (
	"github.com/cetakindo/printshop-backend/internal/app/model"
	"github.com/cetakindo/printshop-backend/pkg/logger"
	"gorm.io/gorm"
)

type OrderRepository interface {
	Create(order *model.Order) error
	FindByID(id uint) (*model.Order, error)
	FindByUserID(userID uint) ([]model.Order, error)
	FindAll() ([]model.Order, error)
	Update(order *model.Order) error
	CreateLockEvent(event *model.OrderLockEvent) error
	FindLockEvents(orderID uint) ([]model.OrderLockEvent, error)
}

type orderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) Create(order *model.Order) error {
	if err := r.db.Create(order).Error; err != nil {
		logger.Error("Failed to create order in database", err, map[string]interface{}{
			"user_id": order.UserID,
		})
		return err
	}

	logger.Debug("Order created in database", map[string]interface{}{
		"order_id":     order.ID,
		"order_number": order.OrderNumber,
	})
	return nil
}

func (r *orderRepository) FindByID(id uint) (*model.Order, error) {
	var order model.Order
	err := r.db.
		Preload("OrderItems", func(db *gorm.DB) *gorm.DB {
			return db.Order("id ASC")
		}).
		Preload("OrderItems.Product").
		Preload("OrderItems.Roll").
		Preload("User").
		First(&order, id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) FindByUserID(userID uint) ([]model.Order, error) {
	var orders []model.Order
	err := r.db.Where("user_id = ?", userID).
		Preload("OrderItems").
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		logger.Error("Failed to find orders by user ID in database", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}
	return orders, nil
}

func (r *orderRepository) FindAll() ([]model.Order, error) {
	var orders []model.Order
	err := r.db.
		Preload("OrderItems").
		Preload("User").
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		logger.Error("Failed to find orders in database", err)
		return nil, err
	}
	return orders, nil
}

func (r *orderRepository) Update(order *model.Order) error {
	if err := r.db.Save(order).Error; err != nil {
		logger.Error("Failed to update order in database", err, map[string]interface{}{
			"order_id": order.ID,
		})
		return err
	}
	return nil
}

func (r *orderRepository) CreateLockEvent(event *model.OrderLockEvent) error {
	if err := r.db.Create(event).Error; err != nil {
		logger.Error("Failed to create order lock event in database", err, map[string]interface{}{
			"order_id": event.OrderID,
			"action":   event.Action,
		})
		return err
	}
	return nil
}

func (r *orderRepository) FindLockEvents(orderID uint) ([]model.OrderLockEvent, error) {
	var events []model.OrderLockEvent
	err := r.db.Where("order_id = ?", orderID).
		Preload("Actor").
		Order("created_at ASC, id ASC").
		Find(&events).Error
	if err != nil {
		logger.Error("Failed to find order lock events in database", err, map[string]interface{}{
			"order_id": orderID,
		})
		return nil, err
	}
	return events, nil
}
