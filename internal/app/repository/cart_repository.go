package repository

import (
	"time"

	"github.com/cetakindo/printshop-backend/internal/app/model"
	"github.com/cetakindo/printshop-backend/pkg/logger"
	"gorm.io/gorm"
)

type CartRepository interface {
	Create(cartItem *model.CartItem) error
	FindByUserID(userID uint) ([]model.CartItem, error)
	FindByID(id uint) (*model.CartItem, error)
	Update(cartItem *model.CartItem) error
	Delete(id uint) error
	DeleteByUserID(userID uint) error
	DeleteStale(olderThan time.Time) (int64, error)
}

type cartRepository struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) CartRepository {
	return &cartRepository{db: db}
}

func (r *cartRepository) Create(cartItem *model.CartItem) error {
	if err := r.db.Create(cartItem).Error; err != nil {
		logger.Error("Failed to create cart item in database", err, map[string]interface{}{
			"user_id":    cartItem.UserID,
			"product_id": cartItem.ProductID,
		})
		return err
	}

	logger.Debug("Cart item created in database", map[string]interface{}{
		"cart_item_id": cartItem.ID,
		"user_id":      cartItem.UserID,
		"product_id":   cartItem.ProductID,
	})
	return nil
}

func (r *cartRepository) FindByUserID(userID uint) ([]model.CartItem, error) {
	var cartItems []model.CartItem
	err := r.db.Where("user_id = ?", userID).
		Preload("Product").
		Order("created_at ASC").
		Find(&cartItems).Error
	if err != nil {
		logger.Error("Failed to find cart items by user ID in database", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}
	return cartItems, nil
}

func (r *cartRepository) FindByID(id uint) (*model.CartItem, error) {
	var cartItem model.CartItem
	if err := r.db.Preload("Product").First(&cartItem, id).Error; err != nil {
		return nil, err
	}
	return &cartItem, nil
}

func (r *cartRepository) Update(cartItem *model.CartItem) error {
	if err := r.db.Save(cartItem).Error; err != nil {
		logger.Error("Failed to update cart item in database", err, map[string]interface{}{
			"cart_item_id": cartItem.ID,
		})
		return err
	}
	return nil
}

func (r *cartRepository) Delete(id uint) error {
	if err := r.db.Delete(&model.CartItem{}, id).Error; err != nil {
		logger.Error("Failed to delete cart item from database", err, map[string]interface{}{
			"cart_item_id": id,
		})
		return err
	}
	return nil
}

func (r *cartRepository) DeleteByUserID(userID uint) error {
	if err := r.db.Where("user_id = ?", userID).Delete(&model.CartItem{}).Error; err != nil {
		logger.Error("Failed to delete cart items by user ID from database", err, map[string]interface{}{
			"user_id": userID,
		})
		return err
	}
	return nil
}

// DeleteStale removes cart items untouched since olderThan, returning the
// number of rows removed. Used by the nightly cleanup job.
func (r *cartRepository) DeleteStale(olderThan time.Time) (int64, error) {
	result := r.db.Where("updated_at < ?", olderThan).Delete(&model.CartItem{})
	if result.Error != nil {
		logger.Error("Failed to delete stale cart items from database", result.Error, map[string]interface{}{
			"older_than": olderThan,
		})
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
