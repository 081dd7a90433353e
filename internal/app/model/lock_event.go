package model

import "time"

type LockAction string

const (
	LockActionLock   LockAction = "lock"
	LockActionUnlock LockAction = "unlock"
)

// OrderLockEvent is one entry of an order's lock audit trail: who flipped the
// gate, when, why, and the grand total at that moment. Events are append-only;
// unlocking never erases the lock history.
type OrderLockEvent struct {
	ID        uint       `gorm:"primarykey" json:"id"`
	EventID   string     `gorm:"type:varchar(36);uniqueIndex" json:"event_id"`
	OrderID   uint       `gorm:"not null;index" json:"order_id"`
	Action    LockAction `gorm:"type:varchar(10);not null" json:"action"`
	ActorID   uint       `gorm:"not null" json:"actor_id"`
	Reason    string     `gorm:"type:text" json:"reason"`
	Total     float64    `gorm:"not null" json:"total"`
	CreatedAt time.Time  `json:"created_at"`

	Order Order `gorm:"foreignKey:OrderID" json:"-"`
	Actor User  `gorm:"foreignKey:ActorID" json:"actor,omitempty"`
}

func (OrderLockEvent) TableName() string {
	return "order_lock_events"
}
