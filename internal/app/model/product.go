package model

import (
	"time"

	"github.com/cetakindo/printshop-backend/internal/app/pricing"
	"gorm.io/gorm"
)

type PricingMethod string

const (
	PricingStandard PricingMethod = "standard"
	PricingRoll     PricingMethod = "roll"
)

type Product struct {
	ID            uint           `gorm:"primarykey" json:"id"`
	Name          string         `gorm:"not null" json:"name"`
	Description   string         `gorm:"type:text" json:"description"`
	PricingMethod PricingMethod  `gorm:"type:varchar(20);default:'standard'" json:"pricing_method"`
	Price         float64        `gorm:"default:0" json:"price"`            // standard unit price
	PricePerSqFt  float64        `gorm:"default:0" json:"price_per_sqft"`   // roll running rate
	ImageURL      string         `json:"image_url"`
	IsActive      bool           `gorm:"default:true" json:"is_active"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	VariantGroups []VariantGroup `gorm:"foreignKey:ProductID" json:"variant_groups,omitempty"`
	RollOptions   []RollOption   `gorm:"foreignKey:ProductID" json:"roll_options,omitempty"`
	OrderItems    []OrderItem    `gorm:"foreignKey:ProductID" json:"-"`
	CartItems     []CartItem     `gorm:"foreignKey:ProductID" json:"-"`
}

func (Product) TableName() string {
	return "products"
}

// CatalogSnapshot flattens the loaded variant tree into the plain structure
// the pricing core computes against. VariantGroups and their Options (with
// one level of Subgroups.Options) must be preloaded.
func (p *Product) CatalogSnapshot() pricing.CatalogProduct {
	snapshot := pricing.CatalogProduct{
		ID:            p.ID,
		PricingMethod: pricing.PricingMethod(p.PricingMethod),
		Price:         p.Price,
		PricePerSqFt:  p.PricePerSqFt,
	}
	for _, group := range p.VariantGroups {
		snapshot.VariantGroups = append(snapshot.VariantGroups, group.toPricing())
	}
	return snapshot
}
