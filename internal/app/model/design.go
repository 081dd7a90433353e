package model

import (
	"time"

	"gorm.io/gorm"
)

// Design is a gallery entry customers can attach to a line. Uploading and
// browsing designs is handled elsewhere; this table only anchors the IDs a
// cart line references so gallery-derived quantities stay resolvable.
type Design struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	Title     string         `gorm:"not null" json:"title"`
	ImageURL  string         `json:"image_url"`
	IsActive  bool           `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Design) TableName() string {
	return "designs"
}
