package dto

import (
	"time"

	"github.com/hoteldesk/frontdesk/internal/models"
	"github.com/hoteldesk/frontdesk/internal/service"
)

type ErrorResponse struct {
	Message string `json:"message"`
}

type BookingResponse struct {
	ID         uint                 `json:"id"`
	Ref        string               `json:"ref"`
	RoomID     uint                 `json:"room_id"`
	CustomerID uint                 `json:"customer_id"`
	Checkin    string               `json:"checkin"`
	Checkout   string               `json:"checkout"`
	Status     models.BookingStatus `json:"status"`
	CreatedAt  time.Time            `json:"created_at"`
}

func ToBookingResponse(b *models.Booking) BookingResponse {
	return BookingResponse{
		ID:         b.ID,
		Ref:        b.Ref,
		RoomID:     b.RoomID,
		CustomerID: b.CustomerID,
		Checkin:    b.Checkin.Format(DateLayout),
		Checkout:   b.Checkout.Format(DateLayout),
		Status:     b.Status,
		CreatedAt:  b.CreatedAt,
	}
}

type OrderLineResponse struct {
	ID            uint     `json:"id"`
	ServiceID     uint     `json:"service_id"`
	Quantity      int      `json:"quantity"`
	Weight        *float64 `json:"weight,omitempty"`
	PackageOption *string  `json:"package_option,omitempty"`
	UnitPrice     float64  `json:"unit_price"`
	LineTotal     float64  `json:"line_total"`
	FreeGrant     bool     `json:"free_grant"`
}

type OrderResponse struct {
	ID             uint                `json:"id"`
	Ref            string              `json:"ref"`
	CustomerID     uint                `json:"customer_id"`
	PaymentMethod  string              `json:"payment_method"`
	EventCode      string              `json:"event_code,omitempty"`
	Status         models.OrderStatus  `json:"status"`
	Subtotal       float64             `json:"subtotal"`
	PromotionID    *uint               `json:"promotion_id,omitempty"`
	DiscountAmount float64             `json:"discount_amount"`
	FinalTotal     float64             `json:"final_total"`
	FinalizedAt    *time.Time          `json:"finalized_at,omitempty"`
	Lines          []OrderLineResponse `json:"lines"`
	CreatedAt      time.Time           `json:"created_at"`
}

func ToOrderResponse(o *models.Order) OrderResponse {
	lines := make([]OrderLineResponse, len(o.Lines))
	for i, l := range o.Lines {
		lines[i] = OrderLineResponse{
			ID:            l.ID,
			ServiceID:     l.ServiceID,
			Quantity:      l.Quantity,
			Weight:        l.Weight,
			PackageOption: l.PackageOption,
			UnitPrice:     l.UnitPrice,
			LineTotal:     l.LineTotal,
			FreeGrant:     l.FreeGrant,
		}
	}
	return OrderResponse{
		ID:             o.ID,
		Ref:            o.Ref,
		CustomerID:     o.CustomerID,
		PaymentMethod:  o.PaymentMethod,
		EventCode:      o.EventCode,
		Status:         o.Status,
		Subtotal:       o.Subtotal,
		PromotionID:    o.PromotionID,
		DiscountAmount: o.DiscountAmount,
		FinalTotal:     o.FinalTotal,
		FinalizedAt:    o.FinalizedAt,
		Lines:          lines,
		CreatedAt:      o.CreatedAt,
	}
}

// PromotionPreviewResponse reports what finalization would apply right
// now; nothing is persisted by a preview.
type PromotionPreviewResponse struct {
	PromotionID   *uint               `json:"promotion_id,omitempty"`
	PromotionName string              `json:"promotion_name,omitempty"`
	Discount      float64             `json:"discount"`
	FreeLines     []OrderLineResponse `json:"free_lines,omitempty"`
}

func ToPromotionPreviewResponse(res *service.EvalResult) PromotionPreviewResponse {
	if res == nil {
		return PromotionPreviewResponse{}
	}
	out := PromotionPreviewResponse{
		PromotionName: res.Promotion.Name,
		Discount:      res.Discount,
	}
	id := res.Promotion.ID
	out.PromotionID = &id
	for _, l := range res.FreeLines {
		out.FreeLines = append(out.FreeLines, OrderLineResponse{
			ServiceID: l.ServiceID,
			Quantity:  l.Quantity,
			FreeGrant: true,
		})
	}
	return out
}
