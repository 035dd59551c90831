package models

import "time"

type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderPaid      OrderStatus = "paid"
	OrderCancelled OrderStatus = "cancelled"
)

// Order composition may only change while pending. Once the order leaves
// pending its breakdown fields are frozen: later edits to service prices
// or promotion rules never alter a completed order's historical total.
type Order struct {
	ID            uint        `gorm:"primaryKey" json:"id"`
	Ref           string      `gorm:"type:uuid;uniqueIndex;not null" json:"ref"`
	CustomerID    uint        `gorm:"not null;index" json:"customer_id"`
	PaymentMethod string      `gorm:"type:varchar(30)" json:"payment_method"`
	// EventCode is the promotion code the guest handed in with the order,
	// if any; matched exactly against event-type promotions.
	EventCode string      `gorm:"type:varchar(40)" json:"event_code,omitempty"`
	Status    OrderStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`

	Subtotal       float64 `json:"subtotal"`
	PromotionID    *uint   `json:"promotion_id,omitempty"`
	DiscountAmount float64 `json:"discount_amount"`
	FinalTotal     float64 `json:"final_total"`

	// FinalizationRef is the one-time marker stamped when the order leaves
	// pending; a non-empty value means the breakdown above is frozen.
	FinalizationRef string     `gorm:"type:uuid" json:"finalization_ref,omitempty"`
	FinalizedAt     *time.Time `json:"finalized_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Lines    []OrderLine `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"lines,omitempty"`
	Customer *Customer   `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
}

// Frozen reports whether the order composition can no longer change.
func (o *Order) Frozen() bool {
	return o.Status != OrderPending
}

// OrderLine's detail columns depend on the referenced service type:
// Weight for per_unit services, PackageOption for selectable ones.
// FreeGrant lines are added by a free-service promotion at zero price.
type OrderLine struct {
	ID            uint     `gorm:"primaryKey" json:"id"`
	OrderID       uint     `gorm:"not null;index" json:"order_id"`
	ServiceID     uint     `gorm:"not null" json:"service_id"`
	Quantity      int      `gorm:"not null" json:"quantity"`
	Weight        *float64 `json:"weight,omitempty"`
	PackageOption *string  `json:"package_option,omitempty"`

	UnitPrice float64 `json:"unit_price"`
	LineTotal float64 `json:"line_total"`
	FreeGrant bool    `gorm:"not null;default:false" json:"free_grant"`

	Service *Service `gorm:"foreignKey:ServiceID" json:"service,omitempty"`
}
