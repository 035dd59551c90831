package dto

import (
	"time"

	"github.com/hoteldesk/frontdesk/internal/models"
	"github.com/hoteldesk/frontdesk/internal/service"
)

// DateLayout is the wire format for stay dates. Stays are whole days;
// times of day never enter availability math.
const DateLayout = "2006-01-02"

func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

type CreateBookingRequest struct {
	RoomID     uint   `json:"room_id"`
	CustomerID uint   `json:"customer_id"`
	Checkin    string `json:"checkin"`
	Checkout   string `json:"checkout"`
}

type RescheduleBookingRequest struct {
	Checkin  string `json:"checkin"`
	Checkout string `json:"checkout"`
}

type OrderLineRequest struct {
	ServiceID uint     `json:"service_id"`
	Quantity  int      `json:"quantity"`
	Weight    *float64 `json:"weight,omitempty"`
	Package   *string  `json:"package,omitempty"`
}

func (r OrderLineRequest) ToInput() service.LineInput {
	return service.LineInput{
		ServiceID: r.ServiceID,
		Quantity:  r.Quantity,
		Detail:    service.LineDetail{Weight: r.Weight, Package: r.Package},
	}
}

type CreateOrderRequest struct {
	CustomerID    uint               `json:"customer_id"`
	PaymentMethod string             `json:"payment_method"`
	EventCode     string             `json:"event_code"`
	Lines         []OrderLineRequest `json:"lines"`
}

type ReplaceLinesRequest struct {
	Lines []OrderLineRequest `json:"lines"`
}

type PriceLineRequest struct {
	ServiceID uint     `json:"service_id"`
	Quantity  int      `json:"quantity"`
	Weight    *float64 `json:"weight,omitempty"`
	Package   *string  `json:"package,omitempty"`
}

type PromotionPreviewRequest struct {
	EventCode string `json:"event_code"`
}

type FinalizeOrderRequest struct {
	EventCode string `json:"event_code"`
}

type CreateRoomRequest struct {
	RoomNumber string `json:"room_number"`
	RoomTypeID uint   `json:"room_type_id"`
}

type UpdateRoomStatusRequest struct {
	Status models.RoomStatus `json:"status"`
}

type CreateRoomTypeRequest struct {
	Name         string  `json:"name"`
	Capacity     int     `json:"capacity"`
	NightlyPrice float64 `json:"nightly_price"`
}

type ServiceOptionRequest struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

type CreateServiceRequest struct {
	Name            string                 `json:"name"`
	Type            models.ServiceType     `json:"type"`
	FulfillmentType models.FulfillmentType `json:"fulfillment_type"`
	Price           float64                `json:"price"`
	UnitName        string                 `json:"unit_name"`
	Options         []ServiceOptionRequest `json:"options"`
}

type CreateCustomerRequest struct {
	FullName       string `json:"full_name"`
	Phone          string `json:"phone"`
	Email          string `json:"email"`
	BirthDate      string `json:"birth_date"`
	MembershipTier string `json:"membership_tier"`
}

type CreatePromotionRequest struct {
	Name   string               `json:"name"`
	Type   models.PromotionType `json:"type"`
	Active *bool                `json:"active"`

	DiscountPercent *float64 `json:"discount_percent,omitempty"`
	DiscountAmount  *float64 `json:"discount_amount,omitempty"`
	FreeServiceID   *uint    `json:"free_service_id,omitempty"`
	FreeServiceQty  *int     `json:"free_service_qty,omitempty"`

	BirthdayDaysBefore int    `json:"birthday_days_before,omitempty"`
	MembershipTier     string `json:"membership_tier,omitempty"`
	EventCode          string `json:"event_code,omitempty"`

	EligibleServiceIDs []uint `json:"eligible_service_ids,omitempty"`
}

func (r CreatePromotionRequest) ToModel() *models.Promotion {
	active := true
	if r.Active != nil {
		active = *r.Active
	}
	p := &models.Promotion{
		Name:               r.Name,
		Type:               r.Type,
		Active:             active,
		DiscountPercent:    r.DiscountPercent,
		DiscountAmount:     r.DiscountAmount,
		FreeServiceID:      r.FreeServiceID,
		FreeServiceQty:     r.FreeServiceQty,
		BirthdayDaysBefore: r.BirthdayDaysBefore,
		MembershipTier:     r.MembershipTier,
		EventCode:          r.EventCode,
	}
	for _, id := range r.EligibleServiceIDs {
		p.EligibleServices = append(p.EligibleServices, models.Service{ID: id})
	}
	return p
}

type SetPromotionActiveRequest struct {
	Active bool `json:"active"`
}
