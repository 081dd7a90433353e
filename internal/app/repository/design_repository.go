package repository

import (
	"github.com/cetakindo/printshop-backend/internal/app/model"
	"gorm.io/gorm"
)

type DesignRepository interface {
	FindAll() ([]model.Design, error)
	FindByIDs(ids []uint) ([]model.Design, error)
}

type designRepository struct {
	db *gorm.DB
}

func NewDesignRepository(db *gorm.DB) DesignRepository {
	return &designRepository{db: db}
}

func (r *designRepository) FindAll() ([]model.Design, error) {
	var designs []model.Design
	err := r.db.Where("is_active = ?", true).Order("created_at DESC").Find(&designs).Error
	if err != nil {
		return nil, err
	}
	return designs, nil
}

func (r *designRepository) FindByIDs(ids []uint) ([]model.Design, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var designs []model.Design
	err := r.db.Where("id IN ?", ids).Find(&designs).Error
	if err != nil {
		return nil, err
	}
	return designs, nil
}
