package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/cetakindo/printshop-backend/internal/app/model"
	"github.com/cetakindo/printshop-backend/internal/app/pricing"
	"github.com/cetakindo/printshop-backend/internal/app/repository"
	"github.com/cetakindo/printshop-backend/pkg/logger"
	"github.com/cetakindo/printshop-backend/pkg/redis"
	"gorm.io/gorm"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrRollNotFound    = errors.New("roll option not found")
)

// LineQuote is the storefront price estimate for one configured line.
// Estimate is true for roll products, whose production price is computed
// against the roll's fixed width and may diverge from this figure.
type LineQuote struct {
	UnitPrice float64 `json:"unit_price"`
	Quantity  int     `json:"quantity"`
	LineTotal float64 `json:"line_total"`
	Estimate  bool    `json:"estimate"`
}

// UpdateProductInput carries the fields staff may change on a product. Nil
// pointers leave the stored value untouched.
type UpdateProductInput struct {
	Name         *string  `json:"name"`
	Description  *string  `json:"description"`
	Price        *float64 `json:"price"`
	PricePerSqFt *float64 `json:"price_per_sqft"`
	ImageURL     *string  `json:"image_url"`
	IsActive     *bool    `json:"is_active"`
}

type CatalogService interface {
	ListProducts() ([]model.Product, error)
	GetProductDetail(ctx context.Context, id uint) (*model.Product, error)
	ListDesigns() ([]model.Design, error)
	ListProductRolls(productID uint) ([]model.RollOption, error)
	QuotePrice(ctx context.Context, productID uint, selected pricing.SelectedOptions, size *pricing.CutSize, quantity int) (*LineQuote, error)
	UpdateProduct(ctx context.Context, id uint, input UpdateProductInput) (*model.Product, error)
	InvalidateProduct(ctx context.Context, id uint)
}

type catalogService struct {
	productRepo repository.ProductRepository
	rollRepo    repository.RollOptionRepository
	designRepo  repository.DesignRepository
	snapshotTTL time.Duration
}

func NewCatalogService(
	productRepo repository.ProductRepository,
	rollRepo repository.RollOptionRepository,
	designRepo repository.DesignRepository,
	snapshotTTL time.Duration,
) CatalogService {
	if snapshotTTL <= 0 {
		snapshotTTL = 10 * time.Minute
	}
	return &catalogService{
		productRepo: productRepo,
		rollRepo:    rollRepo,
		designRepo:  designRepo,
		snapshotTTL: snapshotTTL,
	}
}

func (s *catalogService) ListProducts() ([]model.Product, error) {
	products, err := s.productRepo.FindAll()
	if err != nil {
		logger.Error("Failed to list products", err)
		return nil, err
	}
	return products, nil
}

// GetProductDetail returns a product with its full variant tree and roll
// options. Details are served from the redis snapshot cache when possible;
// the database is the fallback and the cache is repopulated on miss.
func (s *catalogService) GetProductDetail(ctx context.Context, id uint) (*model.Product, error) {
	if payload, err := redis.GetProductSnapshot(ctx, id); err == nil && payload != nil {
		var cached model.Product
		if err := json.Unmarshal(payload, &cached); err == nil {
			logger.Debug("Product detail served from cache", map[string]interface{}{
				"product_id": id,
			})
			return &cached, nil
		}
		// Corrupt cache entry; fall through to the database.
		redis.InvalidateProductSnapshot(ctx, id)
	}

	product, err := s.productRepo.FindByIDWithVariants(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Product not found", map[string]interface{}{
				"product_id": id,
			})
			return nil, ErrProductNotFound
		}
		logger.Error("Failed to fetch product detail", err, map[string]interface{}{
			"product_id": id,
		})
		return nil, err
	}

	if payload, err := json.Marshal(product); err == nil {
		redis.CacheProductSnapshot(ctx, id, payload, s.snapshotTTL)
	}

	return product, nil
}

// ListProductRolls returns the rolls a roll-priced product can be cut from,
// for the editor's roll picker.
func (s *catalogService) ListProductRolls(productID uint) ([]model.RollOption, error) {
	if _, err := s.productRepo.FindByID(productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return s.rollRepo.FindByProductID(productID)
}

func (s *catalogService) ListDesigns() ([]model.Design, error) {
	designs, err := s.designRepo.FindAll()
	if err != nil {
		logger.Error("Failed to list designs", err)
		return nil, err
	}
	return designs, nil
}

// QuotePrice computes the storefront estimate for one configuration. Roll
// products without a positive size return pricing.ErrMissingSize; the caller
// must block submission rather than show a zero price.
func (s *catalogService) QuotePrice(ctx context.Context, productID uint, selected pricing.SelectedOptions, size *pricing.CutSize, quantity int) (*LineQuote, error) {
	product, err := s.GetProductDetail(ctx, productID)
	if err != nil {
		return nil, err
	}

	snapshot := product.CatalogSnapshot()
	unitPrice, err := pricing.ResolveUnitPrice(snapshot, selected, size)
	if err != nil {
		logger.Warn("Quote blocked: size missing for roll product", map[string]interface{}{
			"product_id": productID,
		})
		return nil, err
	}

	qty := pricing.NormalizeQuantity(quantity)
	quote := &LineQuote{
		UnitPrice: unitPrice,
		Quantity:  qty,
		LineTotal: pricing.ComputeLine(unitPrice, qty),
		Estimate:  snapshot.PricingMethod == pricing.MethodRoll,
	}

	logger.Debug("Price quoted", map[string]interface{}{
		"product_id": productID,
		"unit_price": quote.UnitPrice,
		"line_total": quote.LineTotal,
		"estimate":   quote.Estimate,
	})
	return quote, nil
}

// UpdateProduct applies a partial update and drops the cached snapshot so
// the next read reprices against the new catalog data.
func (s *catalogService) UpdateProduct(ctx context.Context, id uint, input UpdateProductInput) (*model.Product, error) {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	if input.Name != nil {
		product.Name = *input.Name
	}
	if input.Description != nil {
		product.Description = *input.Description
	}
	if input.Price != nil {
		product.Price = *input.Price
	}
	if input.PricePerSqFt != nil {
		product.PricePerSqFt = *input.PricePerSqFt
	}
	if input.ImageURL != nil {
		product.ImageURL = *input.ImageURL
	}
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}

	if err := s.productRepo.Update(product); err != nil {
		logger.Error("Failed to update product", err, map[string]interface{}{
			"product_id": id,
		})
		return nil, err
	}

	s.InvalidateProduct(ctx, id)

	logger.Info("Product updated", map[string]interface{}{
		"product_id": id,
	})
	return s.productRepo.FindByIDWithVariants(id)
}

// InvalidateProduct drops the cached snapshot after a catalog write.
func (s *catalogService) InvalidateProduct(ctx context.Context, id uint) {
	redis.InvalidateProductSnapshot(ctx, id)
}
