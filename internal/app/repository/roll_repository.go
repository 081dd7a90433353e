package repository

import (
	"github.com/cetakindo/printshop-backend/internal/app/model"
	"github.com/cetakindo/printshop-backend/pkg/logger"
	"gorm.io/gorm"
)

type RollOptionRepository interface {
	Create(roll *model.RollOption) error
	FindByID(id uint) (*model.RollOption, error)
	FindByProductID(productID uint) ([]model.RollOption, error)
	Update(roll *model.RollOption) error
	Delete(id uint) error
}

type rollOptionRepository struct {
	db *gorm.DB
}

func NewRollOptionRepository(db *gorm.DB) RollOptionRepository {
	return &rollOptionRepository{db: db}
}

func (r *rollOptionRepository) Create(roll *model.RollOption) error {
	if err := r.db.Create(roll).Error; err != nil {
		logger.Error("Failed to create roll option in database", err, map[string]interface{}{
			"product_id": roll.ProductID,
			"roll_type":  roll.RollType,
		})
		return err
	}
	return nil
}

func (r *rollOptionRepository) FindByID(id uint) (*model.RollOption, error) {
	var roll model.RollOption
	if err := r.db.First(&roll, id).Error; err != nil {
		return nil, err
	}
	return &roll, nil
}

func (r *rollOptionRepository) FindByProductID(productID uint) ([]model.RollOption, error) {
	var rolls []model.RollOption
	err := r.db.Where("product_id = ?", productID).Order("roll_width_ft ASC").Find(&rolls).Error
	if err != nil {
		logger.Error("Failed to find roll options in database", err, map[string]interface{}{
			"product_id": productID,
		})
		return nil, err
	}
	return rolls, nil
}

func (r *rollOptionRepository) Update(roll *model.RollOption) error {
	if err := r.db.Save(roll).Error; err != nil {
		logger.Error("Failed to update roll option in database", err, map[string]interface{}{
			"roll_id": roll.ID,
		})
		return err
	}
	return nil
}

func (r *rollOptionRepository) Delete(id uint) error {
	if err := r.db.Delete(&model.RollOption{}, id).Error; err != nil {
		logger.Error("Failed to delete roll option from database", err, map[string]interface{}{
			"roll_id": id,
		})
		return err
	}
	return nil
}
