package service

import (
	"context"
	"testing"
	"time"

	"github.com/cetakindo/printshop-backend/internal/app/model"
	"github.com/cetakindo/printshop-backend/internal/app/pricing"
	"github.com/cetakindo/printshop-backend/internal/app/repository"
	"github.com/cetakindo/printshop-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupCatalogServiceTest(t *testing.T) (CatalogService, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	productRepo := repository.NewProductRepository(testDB)
	rollRepo := repository.NewRollOptionRepository(testDB)
	designRepo := repository.NewDesignRepository(testDB)
	catalogService := NewCatalogService(productRepo, rollRepo, designRepo, time.Minute)

	return catalogService, testDB
}

func createBannerProduct(t *testing.T, testDB *gorm.DB) *model.Product {
	product := &model.Product{
		Name:          "Vinyl Banner",
		PricingMethod: model.PricingRoll,
		PricePerSqFt:  10,
		IsActive:      true,
	}
	require.NoError(t, testDB.Create(product).Error)

	group := &model.VariantGroup{ProductID: &product.ID, Name: "Material"}
	require.NoError(t, testDB.Create(group).Error)

	vinyl := &model.VariantOption{GroupID: group.ID, Value: "Vinyl", PriceAdjustment: 5}
	require.NoError(t, testDB.Create(vinyl).Error)
	mesh := &model.VariantOption{GroupID: group.ID, Value: "Mesh", PriceAdjustment: -2}
	require.NoError(t, testDB.Create(mesh).Error)

	lamination := &model.VariantGroup{ParentOptionID: &vinyl.ID, Name: "Lamination"}
	require.NoError(t, testDB.Create(lamination).Error)
	matte := &model.VariantOption{GroupID: lamination.ID, Value: "Matte", PriceAdjustment: 3}
	require.NoError(t, testDB.Create(matte).Error)

	return product
}

func TestCatalogService_GetProductDetail_VariantTree(t *testing.T) {
	catalogService, testDB := setupCatalogServiceTest(t)
	product := createBannerProduct(t, testDB)

	detail, err := catalogService.GetProductDetail(context.Background(), product.ID)
	require.NoError(t, err)
	require.Len(t, detail.VariantGroups, 1)
	require.Len(t, detail.VariantGroups[0].Options, 2)
	assert.Len(t, detail.VariantGroups[0].Options[0].Subgroups, 1)
}

func TestCatalogService_GetProductDetail_NotFound(t *testing.T) {
	catalogService, _ := setupCatalogServiceTest(t)

	_, err := catalogService.GetProductDetail(context.Background(), 9999)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestCatalogService_QuotePrice_Standard(t *testing.T) {
	catalogService, testDB := setupCatalogServiceTest(t)

	product := &model.Product{
		Name:          "Stickers",
		PricingMethod: model.PricingStandard,
		Price:         100,
		IsActive:      true,
	}
	require.NoError(t, testDB.Create(product).Error)

	quote, err := catalogService.QuotePrice(context.Background(), product.ID, nil, nil, 5)
	require.NoError(t, err)
	assert.Equal(t, float64(100), quote.UnitPrice)
	assert.Equal(t, 5, quote.Quantity)
	assert.Equal(t, float64(500), quote.LineTotal)
	assert.False(t, quote.Estimate)
}

func TestCatalogService_QuotePrice_RollWithAdjustments(t *testing.T) {
	catalogService, testDB := setupCatalogServiceTest(t)
	product := createBannerProduct(t, testDB)

	detail, err := catalogService.GetProductDetail(context.Background(), product.ID)
	require.NoError(t, err)
	vinylID := detail.VariantGroups[0].Options[0].ID
	matteID := detail.VariantGroups[0].Options[0].Subgroups[0].Options[0].ID

	selected := pricing.SelectedOptions{
		"Material": {
			ID: vinylID,
			Sub: map[string]pricing.OptionChoice{
				"Lamination": {ID: matteID},
			},
		},
	}
	size := &pricing.CutSize{Width: 24, Height: 36, Unit: pricing.UnitInch}

	quote, err := catalogService.QuotePrice(context.Background(), product.ID, selected, size, 1)
	require.NoError(t, err)
	// 6 ft2 at 10, plus 5 for vinyl and 3 for matte, once per unit.
	assert.Equal(t, float64(68), quote.UnitPrice)
	assert.True(t, quote.Estimate)
}

func TestCatalogService_QuotePrice_RollMissingSize(t *testing.T) {
	catalogService, testDB := setupCatalogServiceTest(t)
	product := createBannerProduct(t, testDB)

	_, err := catalogService.QuotePrice(context.Background(), product.ID, nil, nil, 1)
	assert.ErrorIs(t, err, pricing.ErrMissingSize)
}

func TestCatalogService_QuotePrice_StaleSelectionIgnored(t *testing.T) {
	catalogService, testDB := setupCatalogServiceTest(t)

	product := &model.Product{
		Name:          "Posters",
		PricingMethod: model.PricingStandard,
		Price:         50,
		IsActive:      true,
	}
	require.NoError(t, testDB.Create(product).Error)

	selected := pricing.SelectedOptions{
		"Finish": {ID: 777, Value: "Gone"},
	}
	quote, err := catalogService.QuotePrice(context.Background(), product.ID, selected, nil, 2)
	require.NoError(t, err)
	assert.Equal(t, float64(50), quote.UnitPrice)
}

func TestCatalogService_ListProductRolls(t *testing.T) {
	catalogService, testDB := setupCatalogServiceTest(t)
	product := createBannerProduct(t, testDB)

	roll := &model.RollOption{
		ProductID:   product.ID,
		RollType:    "Glossy 3ft",
		RollWidthFt: 3,
	}
	require.NoError(t, testDB.Create(roll).Error)

	rolls, err := catalogService.ListProductRolls(product.ID)
	require.NoError(t, err)
	require.Len(t, rolls, 1)
	assert.Equal(t, float64(3), rolls[0].RollWidthFt)

	_, err = catalogService.ListProductRolls(9999)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestCatalogService_ListDesigns(t *testing.T) {
	catalogService, testDB := setupCatalogServiceTest(t)
	createDesigns(t, testDB, 3)

	designs, err := catalogService.ListDesigns()
	require.NoError(t, err)
	assert.Len(t, designs, 3)
}

func TestCatalogService_UpdateProduct_PartialFields(t *testing.T) {
	catalogService, testDB := setupCatalogServiceTest(t)
	product := createBannerProduct(t, testDB)

	newRate := 12.5
	updated, err := catalogService.UpdateProduct(context.Background(), product.ID, UpdateProductInput{
		PricePerSqFt: &newRate,
	})
	require.NoError(t, err)
	assert.Equal(t, 12.5, updated.PricePerSqFt)
	assert.Equal(t, "Vinyl Banner", updated.Name)

	// Quotes after the update must use the new rate.
	size := &pricing.CutSize{Width: 1, Height: 2, Unit: pricing.UnitFoot}
	quote, err := catalogService.QuotePrice(context.Background(), product.ID, nil, size, 1)
	require.NoError(t, err)
	assert.Equal(t, 2*12.5, quote.UnitPrice)
}

func TestCatalogService_UpdateProduct_NotFound(t *testing.T) {
	catalogService, _ := setupCatalogServiceTest(t)

	name := "Ghost"
	_, err := catalogService.UpdateProduct(context.Background(), 9999, UpdateProductInput{Name: &name})
	assert.ErrorIs(t, err, ErrProductNotFound)
}
