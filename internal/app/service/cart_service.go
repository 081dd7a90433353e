package service

import (
	"errors"

	"github.com/cetakindo/printshop-backend/internal/app/model"
	"github.com/cetakindo/printshop-backend/internal/app/pricing"
	"github.com/cetakindo/printshop-backend/internal/app/repository"
	"github.com/cetakindo/printshop-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrCartItemNotFound = errors.New("cart item not found")
	ErrNotCartOwner     = errors.New("cart item does not belong to user")
	ErrDesignNotFound   = errors.New("design not found")
)

type AddToCartInput struct {
	ProductID      uint                    `json:"product_id" binding:"required"`
	Quantity       interface{}             `json:"quantity"`
	QuantitySource string                  `json:"quantity_source"`
	DesignIDs      []uint                  `json:"design_ids"`
	Selected       pricing.SelectedOptions `json:"selected_options"`
	CutWidth       float64                 `json:"cut_width"`
	CutHeight      float64                 `json:"cut_height"`
	SizeUnit       string                  `json:"size_unit"`
	Intent         string                  `json:"intent"`
}

type UpdateCartInput struct {
	Quantity       interface{}              `json:"quantity"`
	QuantitySource *string                  `json:"quantity_source"`
	DesignIDs      *[]uint                  `json:"design_ids"`
	Selected       *pricing.SelectedOptions `json:"selected_options"`
	CutWidth       *float64                 `json:"cut_width"`
	CutHeight      *float64                 `json:"cut_height"`
	SizeUnit       *string                  `json:"size_unit"`
}

// PricedCartItem decorates a stored cart item with the prices computed for
// the current catalog state. Prices are never stored on the cart row.
type PricedCartItem struct {
	model.CartItem
	UnitPrice float64 `json:"unit_price"`
	LineTotal float64 `json:"line_total"`
	Estimate  bool    `json:"estimate"`
}

type PricedCart struct {
	Items []PricedCartItem `json:"items"`
	Total float64          `json:"total"`
}

type CartService interface {
	AddToCart(userID uint, input AddToCartInput) (*model.CartItem, error)
	UpdateCartItem(userID, itemID uint, input UpdateCartInput) (*model.CartItem, error)
	RemoveFromCart(userID, itemID uint) error
	ClearCart(userID uint) error
	GetUserCart(userID uint) (*PricedCart, error)
}

type cartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	designRepo  repository.DesignRepository
}

func NewCartService(
	cartRepo repository.CartRepository,
	productRepo repository.ProductRepository,
	designRepo repository.DesignRepository,
) CartService {
	return &cartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		designRepo:  designRepo,
	}
}

func (s *cartService) AddToCart(userID uint, input AddToCartInput) (*model.CartItem, error) {
	product, err := s.productRepo.FindByIDWithVariants(input.ProductID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Add to cart failed: product not found", map[string]interface{}{
				"user_id":    userID,
				"product_id": input.ProductID,
			})
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	snapshot := product.CatalogSnapshot()

	if len(input.DesignIDs) > 0 {
		if err := s.verifyDesigns(input.DesignIDs); err != nil {
			return nil, err
		}
	}

	source := pricing.QuantitySource(input.QuantitySource)
	if source != pricing.SourceGallery {
		source = pricing.SourceManual
	}
	quantity := pricing.DeriveQuantity(source, len(input.DesignIDs), pricing.ResolveQuantity(input.Quantity))

	selected := pruneSelections(snapshot, input.Selected)
	size := sizeFromInput(input.CutWidth, input.CutHeight, input.SizeUnit)

	// Roll products must carry a usable size before the line enters the cart.
	if _, err := pricing.ResolveUnitPrice(snapshot, selected, size); err != nil {
		logger.Warn("Add to cart blocked", map[string]interface{}{
			"user_id":    userID,
			"product_id": input.ProductID,
			"error":      err.Error(),
		})
		return nil, err
	}

	intent := model.IntentCart
	if input.Intent == string(model.IntentQuote) {
		intent = model.IntentQuote
	}

	item := &model.CartItem{
		UserID:         userID,
		ProductID:      input.ProductID,
		Quantity:       quantity,
		QuantitySource: string(source),
		CutWidth:       input.CutWidth,
		CutHeight:      input.CutHeight,
		SizeUnit:       input.SizeUnit,
		Intent:         intent,
	}
	if err := item.SetSelections(selected); err != nil {
		return nil, err
	}
	if err := item.SetGalleryDesigns(input.DesignIDs); err != nil {
		return nil, err
	}

	if err := s.cartRepo.Create(item); err != nil {
		logger.Error("Failed to add cart item", err, map[string]interface{}{
			"user_id":    userID,
			"product_id": input.ProductID,
		})
		return nil, err
	}

	logger.Info("Item added to cart", map[string]interface{}{
		"user_id":      userID,
		"cart_item_id": item.ID,
		"product_id":   input.ProductID,
		"quantity":     quantity,
		"source":       string(source),
	})
	return item, nil
}

func (s *cartService) UpdateCartItem(userID, itemID uint, input UpdateCartInput) (*model.CartItem, error) {
	item, err := s.ownedItem(userID, itemID)
	if err != nil {
		return nil, err
	}

	product, err := s.productRepo.FindByIDWithVariants(item.ProductID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	snapshot := product.CatalogSnapshot()

	if input.DesignIDs != nil {
		if len(*input.DesignIDs) > 0 {
			if err := s.verifyDesigns(*input.DesignIDs); err != nil {
				return nil, err
			}
		}
		if err := item.SetGalleryDesigns(*input.DesignIDs); err != nil {
			return nil, err
		}
	}

	if input.QuantitySource != nil && *input.QuantitySource != item.QuantitySource {
		// Switching the quantity source resets the quantity; a gallery count
		// must never linger as a manual value or vice versa.
		item.QuantitySource = *input.QuantitySource
		item.Quantity = 1
		if item.QuantitySource == string(pricing.SourceManual) {
			if err := item.SetGalleryDesigns(nil); err != nil {
				return nil, err
			}
		}
	}

	if input.Quantity != nil {
		item.Quantity = pricing.ResolveQuantity(input.Quantity)
	}
	if item.QuantitySource == string(pricing.SourceGallery) {
		item.Quantity = pricing.DeriveQuantity(pricing.SourceGallery, len(item.GalleryDesigns()), item.Quantity)
	}

	if input.Selected != nil {
		selected := pruneSelections(snapshot, *input.Selected)
		if err := item.SetSelections(selected); err != nil {
			return nil, err
		}
	}
	if input.CutWidth != nil {
		item.CutWidth = *input.CutWidth
	}
	if input.CutHeight != nil {
		item.CutHeight = *input.CutHeight
	}
	if input.SizeUnit != nil {
		item.SizeUnit = *input.SizeUnit
	}

	size := sizeFromInput(item.CutWidth, item.CutHeight, item.SizeUnit)
	if _, err := pricing.ResolveUnitPrice(snapshot, item.Selections(), size); err != nil {
		return nil, err
	}

	if err := s.cartRepo.Update(item); err != nil {
		logger.Error("Failed to update cart item", err, map[string]interface{}{
			"user_id":      userID,
			"cart_item_id": itemID,
		})
		return nil, err
	}

	logger.Info("Cart item updated", map[string]interface{}{
		"user_id":      userID,
		"cart_item_id": itemID,
		"quantity":     item.Quantity,
		"source":       item.QuantitySource,
	})
	return item, nil
}

func (s *cartService) RemoveFromCart(userID, itemID uint) error {
	if _, err := s.ownedItem(userID, itemID); err != nil {
		return err
	}
	if err := s.cartRepo.Delete(itemID); err != nil {
		logger.Error("Failed to remove cart item", err, map[string]interface{}{
			"user_id":      userID,
			"cart_item_id": itemID,
		})
		return err
	}
	logger.Info("Cart item removed", map[string]interface{}{
		"user_id":      userID,
		"cart_item_id": itemID,
	})
	return nil
}

func (s *cartService) ClearCart(userID uint) error {
	if err := s.cartRepo.DeleteByUserID(userID); err != nil {
		logger.Error("Failed to clear cart", err, map[string]interface{}{
			"user_id": userID,
		})
		return err
	}
	return nil
}

// GetUserCart reprices every line against the current catalog. Items whose
// product has gone missing are skipped rather than failing the whole cart.
func (s *cartService) GetUserCart(userID uint) (*PricedCart, error) {
	items, err := s.cartRepo.FindByUserID(userID)
	if err != nil {
		return nil, err
	}

	cart := &PricedCart{Items: make([]PricedCartItem, 0, len(items))}
	for _, item := range items {
		product, err := s.productRepo.FindByIDWithVariants(item.ProductID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				logger.Warn("Cart references missing product", map[string]interface{}{
					"user_id":      userID,
					"cart_item_id": item.ID,
					"product_id":   item.ProductID,
				})
				continue
			}
			return nil, err
		}
		snapshot := product.CatalogSnapshot()

		size := sizeFromInput(item.CutWidth, item.CutHeight, item.SizeUnit)
		unitPrice, err := pricing.ResolveUnitPrice(snapshot, item.Selections(), size)
		if err != nil {
			// The add path blocks sizeless roll lines, but the catalog may
			// have changed under a stored item. Surface it unpriced.
			cart.Items = append(cart.Items, PricedCartItem{CartItem: item, Estimate: true})
			continue
		}

		priced := PricedCartItem{
			CartItem:  item,
			UnitPrice: unitPrice,
			LineTotal: pricing.ComputeLine(unitPrice, item.Quantity),
			Estimate:  snapshot.PricingMethod == pricing.MethodRoll,
		}
		cart.Items = append(cart.Items, priced)
		cart.Total += priced.LineTotal
	}
	return cart, nil
}

func (s *cartService) ownedItem(userID, itemID uint) (*model.CartItem, error) {
	item, err := s.cartRepo.FindByID(itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCartItemNotFound
		}
		return nil, err
	}
	if item.UserID != userID {
		logger.Warn("Cart item ownership check failed", map[string]interface{}{
			"user_id":      userID,
			"cart_item_id": itemID,
			"owner_id":     item.UserID,
		})
		return nil, ErrNotCartOwner
	}
	return item, nil
}

func (s *cartService) verifyDesigns(ids []uint) error {
	designs, err := s.designRepo.FindByIDs(ids)
	if err != nil {
		return err
	}
	if len(designs) != len(ids) {
		return ErrDesignNotFound
	}
	return nil
}

// pruneSelections drops sub-choices that do not belong to the subgroups of
// the chosen parent option, so a stale sub-choice can never ride along with
// a newly picked parent.
func pruneSelections(product pricing.CatalogProduct, selected pricing.SelectedOptions) pricing.SelectedOptions {
	if len(selected) == 0 {
		return selected
	}
	pruned := make(pricing.SelectedOptions, len(selected))
	for groupName, choice := range selected {
		group, ok := findGroup(product.VariantGroups, groupName)
		if !ok {
			pruned[groupName] = choice
			continue
		}
		parent, ok := findOption(group, choice)
		if !ok || len(choice.Sub) == 0 {
			choice.Sub = nil
			pruned[groupName] = choice
			continue
		}
		kept := make(map[string]pricing.OptionChoice)
		for subName, subChoice := range choice.Sub {
			for _, subgroup := range parent.Subgroups {
				if subgroup.Name == subName {
					kept[subName] = subChoice
					break
				}
			}
		}
		if len(kept) == 0 {
			kept = nil
		}
		choice.Sub = kept
		pruned[groupName] = choice
	}
	return pruned
}

func findGroup(groups []pricing.VariantGroup, name string) (pricing.VariantGroup, bool) {
	for _, g := range groups {
		if g.Name == name {
			return g, true
		}
	}
	return pricing.VariantGroup{}, false
}

// findOption matches by ID first and falls back to value, mirroring how the
// pricing core resolves choices, so pruning never drops a selection the core
// would still price.
func findOption(group pricing.VariantGroup, choice pricing.OptionChoice) (pricing.VariantOption, bool) {
	if choice.ID != 0 {
		for _, opt := range group.Options {
			if opt.ID == choice.ID {
				return opt, true
			}
		}
	}
	if choice.Value != "" {
		for _, opt := range group.Options {
			if opt.Value == choice.Value {
				return opt, true
			}
		}
	}
	return pricing.VariantOption{}, false
}

func sizeFromInput(width, height float64, unit string) *pricing.CutSize {
	if width <= 0 && height <= 0 {
		return nil
	}
	u := pricing.UnitInch
	if unit == string(pricing.UnitFoot) {
		u = pricing.UnitFoot
	}
	return &pricing.CutSize{Width: width, Height: height, Unit: u}
}
