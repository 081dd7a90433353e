package model

import (
	"time"

	"github.com/cetakindo/printshop-backend/internal/app/pricing"
	"gorm.io/gorm"
)

type OrderStatus string

const (
	OrderStatusDraft      OrderStatus = "draft"      // quote requested, not confirmed
	OrderStatusPending    OrderStatus = "pending"    // placed, awaiting production
	OrderStatusProduction OrderStatus = "production" // in production, items locked
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

type Order struct {
	ID          uint        `gorm:"primarykey" json:"id"`
	OrderNumber string      `gorm:"type:varchar(40);uniqueIndex" json:"order_number"`
	UserID      uint        `gorm:"not null;index" json:"user_id"`
	Status      OrderStatus `gorm:"type:varchar(20);default:'pending'" json:"status"`

	// Order-level adjustment rules, folded over the line totals.
	DiscountMode   string  `gorm:"type:varchar(10);default:'none'" json:"discount_mode"`
	DiscountValue  float64 `gorm:"default:0" json:"discount_value"`
	TaxMode        string  `gorm:"type:varchar(10);default:'none'" json:"tax_mode"`
	TaxValue       float64 `gorm:"default:0" json:"tax_value"`
	ShippingAmount float64 `gorm:"default:0" json:"shipping_amount"`

	// Computed totals, always rewritten whole from the line totals.
	Subtotal       float64 `gorm:"default:0" json:"subtotal"`
	DiscountAmount float64 `gorm:"default:0" json:"discount_amount"`
	TaxAmount      float64 `gorm:"default:0" json:"tax_amount"`
	GrandTotal     float64 `gorm:"default:0" json:"grand_total"`

	// Item lock: once production begins the lines freeze, and the grand
	// total at that moment is snapshotted for audit.
	IsItemsLocked bool       `gorm:"default:false" json:"is_items_locked"`
	LockedAt      *time.Time `json:"locked_at,omitempty"`
	LockedTotal   *float64   `json:"locked_total,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	User       User             `gorm:"foreignKey:UserID" json:"user,omitempty"`
	OrderItems []OrderItem      `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"order_items,omitempty"`
	LockEvents []OrderLockEvent `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"lock_events,omitempty"`
}

func (Order) TableName() string {
	return "orders"
}

// TotalsInput maps the stored rule columns to the pricing core's input.
func (o *Order) TotalsInput() pricing.TotalsInput {
	return pricing.TotalsInput{
		Discount:       pricing.Rule{Mode: pricing.AdjustmentMode(o.DiscountMode), Value: o.DiscountValue},
		Tax:            pricing.Rule{Mode: pricing.AdjustmentMode(o.TaxMode), Value: o.TaxValue},
		ShippingAmount: o.ShippingAmount,
	}
}

// ApplyTotals writes a computed totals breakdown back onto the order.
func (o *Order) ApplyTotals(t pricing.Totals) {
	o.Subtotal = t.Subtotal
	o.DiscountAmount = t.DiscountAmount
	o.TaxAmount = t.TaxAmount
	o.GrandTotal = t.GrandTotal
}

type OrderItem struct {
	ID          uint    `gorm:"primarykey" json:"id"`
	OrderID     uint    `gorm:"not null;index" json:"order_id"`
	ProductID   uint    `gorm:"not null;index" json:"product_id"`
	Description string  `gorm:"type:text" json:"description"`
	Quantity    int     `gorm:"not null;default:1" json:"quantity"`
	Unit        string  `gorm:"type:varchar(20);default:'pcs'" json:"unit"`
	UnitPrice   float64 `gorm:"not null" json:"unit_price"`
	LineTotal   float64 `gorm:"not null" json:"line_total"`
	// OptionSnapshot freezes the resolved selections as JSON at pricing time.
	OptionSnapshot string `gorm:"type:text" json:"option_snapshot"`

	// Roll production figures; zero-valued for standard lines.
	IsRoll             bool    `gorm:"default:false" json:"is_roll"`
	RollID             *uint   `gorm:"index" json:"roll_id,omitempty"`
	CutWidthIn         float64 `gorm:"default:0" json:"cut_width_in"`
	CutHeightIn        float64 `gorm:"default:0" json:"cut_height_in"`
	OffcutPricePerSqFt float64 `gorm:"default:0" json:"offcut_price_per_sqft"`
	FixedAreaFt2       float64 `gorm:"default:0" json:"fixed_area_ft2"`
	OffcutAreaFt2      float64 `gorm:"default:0" json:"offcut_area_ft2"`
	OffcutWidthIn      float64 `gorm:"default:0" json:"offcut_width_in"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Order   Order      `gorm:"foreignKey:OrderID" json:"-"`
	Product Product    `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Roll    *RollOption `gorm:"foreignKey:RollID" json:"roll,omitempty"`
}

func (OrderItem) TableName() string {
	return "order_items"
}
