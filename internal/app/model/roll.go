package model

import (
	"time"

	"gorm.io/gorm"
)

// RollOption is one roll type a roll-priced product can be cut from.
type RollOption struct {
	ID                 uint           `gorm:"primarykey" json:"id"`
	ProductID          uint           `gorm:"index;not null" json:"product_id"`
	RollType           string         `gorm:"not null" json:"roll_type"`
	RollWidthFt        float64        `gorm:"not null" json:"roll_width_ft"`
	OffcutPricePerSqFt float64        `gorm:"default:0" json:"offcut_price_per_sqft"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`

	Product Product `gorm:"foreignKey:ProductID" json:"-"`
}

func (RollOption) TableName() string {
	return "roll_options"
}
