package models

import "time"

type PromotionType string

const (
	PromotionBirthday   PromotionType = "birthday"
	PromotionEvent      PromotionType = "event"
	PromotionMembership PromotionType = "membership"
)

// Promotion rows carry the discount mechanism as nullable columns, but
// exactly one of DiscountPercent, DiscountAmount or the free-service pair
// may be set. That invariant is enforced at save time (see
// service.DiscountFromPromotion), so readers may assume it holds.
type Promotion struct {
	ID     uint          `gorm:"primaryKey" json:"id"`
	Name   string        `gorm:"not null" json:"name"`
	Type   PromotionType `gorm:"type:varchar(20);not null" json:"type"`
	Active bool          `gorm:"not null;default:true" json:"active"`

	DiscountPercent *float64 `json:"discount_percent,omitempty"`
	DiscountAmount  *float64 `json:"discount_amount,omitempty"`
	FreeServiceID   *uint    `json:"free_service_id,omitempty"`
	FreeServiceQty  *int     `json:"free_service_qty,omitempty"`

	// Type-specific eligibility parameters.
	BirthdayDaysBefore int    `json:"birthday_days_before,omitempty"`
	MembershipTier     string `gorm:"type:varchar(20)" json:"membership_tier,omitempty"`
	EventCode          string `gorm:"type:varchar(40)" json:"event_code,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// EligibleServices scopes the promotion to orders containing at least
	// one of these services. Empty means service-independent.
	EligibleServices []Service `gorm:"many2many:promotion_eligible_services" json:"eligible_services,omitempty"`
}

// AppliesToService reports whether the promotion's service scope admits
// the given service. An empty scope admits every service.
func (p *Promotion) AppliesToService(serviceID uint) bool {
	if len(p.EligibleServices) == 0 {
		return true
	}
	for i := range p.EligibleServices {
		if p.EligibleServices[i].ID == serviceID {
			return true
		}
	}
	return false
}
