package model

import (
	"time"

	"github.com/cetakindo/printshop-backend/internal/app/pricing"
	"gorm.io/gorm"
)

// VariantGroup is a named set of mutually exclusive options. Top-level groups
// carry a ProductID; subgroups carry the ParentOptionID of the option that
// makes them eligible.
type VariantGroup struct {
	ID             uint           `gorm:"primarykey" json:"id"`
	ProductID      *uint          `gorm:"index" json:"product_id,omitempty"`
	ParentOptionID *uint          `gorm:"index" json:"parent_option_id,omitempty"`
	Name           string         `gorm:"not null" json:"name"`
	Position       int            `gorm:"default:0" json:"position"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`

	Options []VariantOption `gorm:"foreignKey:GroupID" json:"options,omitempty"`
}

func (VariantGroup) TableName() string {
	return "variant_groups"
}

type VariantOption struct {
	ID              uint           `gorm:"primarykey" json:"id"`
	GroupID         uint           `gorm:"index;not null" json:"group_id"`
	Value           string         `gorm:"not null" json:"value"`
	Label           string         `json:"label"`
	PriceAdjustment float64        `gorm:"default:0" json:"price_adjustment"` // signed, once per unit
	Position        int            `gorm:"default:0" json:"position"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`

	Subgroups []VariantGroup `gorm:"foreignKey:ParentOptionID" json:"subgroups,omitempty"`
}

func (VariantOption) TableName() string {
	return "variant_options"
}

func (g VariantGroup) toPricing() pricing.VariantGroup {
	out := pricing.VariantGroup{Name: g.Name}
	for _, opt := range g.Options {
		po := pricing.VariantOption{
			ID:              opt.ID,
			Value:           opt.Value,
			PriceAdjustment: opt.PriceAdjustment,
		}
		for _, sub := range opt.Subgroups {
			po.Subgroups = append(po.Subgroups, sub.toPricing())
		}
		out.Options = append(out.Options, po)
	}
	return out
}
