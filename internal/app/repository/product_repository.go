package repository

import (
	"github.com/cetakindo/printshop-backend/internal/app/model"
	"github.com/cetakindo/printshop-backend/pkg/logger"
	"gorm.io/gorm"
)

type ProductRepository interface {
	Create(product *model.Product) error
	FindAll() ([]model.Product, error)
	FindByID(id uint) (*model.Product, error)
	FindByIDWithVariants(id uint) (*model.Product, error)
	Update(product *model.Product) error
	Delete(id uint) error
}

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

// variantPreloads loads the full variant tree: top-level groups, their
// options, and one level of subgroups under each option. Matches the nesting
// depth the pricing core resolves.
func variantPreloads(db *gorm.DB) *gorm.DB {
	return db.
		Preload("VariantGroups", func(db *gorm.DB) *gorm.DB {
			return db.Where("parent_option_id IS NULL").Order("position ASC")
		}).
		Preload("VariantGroups.Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Preload("VariantGroups.Options.Subgroups", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Preload("VariantGroups.Options.Subgroups.Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Preload("RollOptions")
}

func (r *productRepository) Create(product *model.Product) error {
	if err := r.db.Create(product).Error; err != nil {
		logger.Error("Failed to create product in database", err, map[string]interface{}{
			"name": product.Name,
		})
		return err
	}

	logger.Debug("Product created in database", map[string]interface{}{
		"product_id": product.ID,
		"name":       product.Name,
	})
	return nil
}

func (r *productRepository) FindAll() ([]model.Product, error) {
	var products []model.Product
	err := r.db.Where("is_active = ?", true).Order("name ASC").Find(&products).Error
	if err != nil {
		logger.Error("Failed to find products in database", err)
		return nil, err
	}

	logger.Debug("Products found in database", map[string]interface{}{
		"count": len(products),
	})
	return products, nil
}

func (r *productRepository) FindByID(id uint) (*model.Product, error) {
	var product model.Product
	if err := r.db.First(&product, id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) FindByIDWithVariants(id uint) (*model.Product, error) {
	logger.Debug("Finding product with variant tree in database", map[string]interface{}{
		"product_id": id,
	})

	var product model.Product
	if err := variantPreloads(r.db).First(&product, id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) Update(product *model.Product) error {
	if err := r.db.Save(product).Error; err != nil {
		logger.Error("Failed to update product in database", err, map[string]interface{}{
			"product_id": product.ID,
		})
		return err
	}
	return nil
}

func (r *productRepository) Delete(id uint) error {
	if err := r.db.Delete(&model.Product{}, id).Error; err != nil {
		logger.Error("Failed to delete product from database", err, map[string]interface{}{
			"product_id": id,
		})
		return err
	}
	return nil
}
