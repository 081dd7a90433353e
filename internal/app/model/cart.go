package model

import (
	"encoding/json"
	"time"

	"github.com/cetakindo/printshop-backend/internal/app/pricing"
	"gorm.io/gorm"
)

type CartIntent string

const (
	IntentCart  CartIntent = "cart"
	IntentQuote CartIntent = "quote"
)

type CartItem struct {
	ID             uint       `gorm:"primarykey" json:"id"`
	UserID         uint       `gorm:"not null;index" json:"user_id"`
	ProductID      uint       `gorm:"not null;index" json:"product_id"`
	Quantity       int        `gorm:"not null;default:1" json:"quantity"`
	QuantitySource string     `gorm:"type:varchar(20);default:'manual'" json:"quantity_source"`
	// SelectedOptions serializes pricing.SelectedOptions as JSON text.
	SelectedOptions string     `gorm:"type:text" json:"selected_options"`
	// DesignIDs serializes the gallery selection as a JSON array of IDs.
	DesignIDs       string     `gorm:"type:text" json:"design_ids"`
	CutWidth        float64    `gorm:"default:0" json:"cut_width"`
	CutHeight       float64    `gorm:"default:0" json:"cut_height"`
	SizeUnit        string     `gorm:"type:varchar(5);default:'in'" json:"size_unit"`
	Intent          CartIntent `gorm:"type:varchar(10);default:'cart'" json:"intent"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`

	Product Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

func (CartItem) TableName() string {
	return "cart_items"
}

// Selections decodes the stored option selections. A corrupt or empty column
// decodes to nil, which the pricing core treats as "no selections".
func (c *CartItem) Selections() pricing.SelectedOptions {
	if c.SelectedOptions == "" {
		return nil
	}
	var selected pricing.SelectedOptions
	if err := json.Unmarshal([]byte(c.SelectedOptions), &selected); err != nil {
		return nil
	}
	return selected
}

// SetSelections stores option selections as JSON text.
func (c *CartItem) SetSelections(selected pricing.SelectedOptions) error {
	if len(selected) == 0 {
		c.SelectedOptions = ""
		return nil
	}
	raw, err := json.Marshal(selected)
	if err != nil {
		return err
	}
	c.SelectedOptions = string(raw)
	return nil
}

// GalleryDesigns decodes the stored gallery selection.
func (c *CartItem) GalleryDesigns() []uint {
	if c.DesignIDs == "" {
		return nil
	}
	var ids []uint
	if err := json.Unmarshal([]byte(c.DesignIDs), &ids); err != nil {
		return nil
	}
	return ids
}

// SetGalleryDesigns stores the gallery selection as JSON text.
func (c *CartItem) SetGalleryDesigns(ids []uint) error {
	if len(ids) == 0 {
		c.DesignIDs = ""
		return nil
	}
	raw, err := json.Marshal(ids)
	if err != nil {
		return err
	}
	c.DesignIDs = string(raw)
	return nil
}
