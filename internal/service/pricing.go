package service

import (
	"context"
	"errors"

	"github.com/hoteldesk/frontdesk/internal/models"
	"github.com/hoteldesk/frontdesk/internal/repository"
	"gorm.io/gorm"
)

// LineDetail carries the per-type detail payload of an order line:
// Weight for per_unit services, Package for selectable ones. Fixed
// services take no detail.
type LineDetail struct {
	Weight  *float64 `json:"weight,omitempty"`
	Package *string  `json:"package,omitempty"`
}

type LinePrice struct {
	UnitPrice float64 `json:"unit_price"`
	LineTotal float64 `json:"line_total"`
}

// PriceLine resolves a service, quantity and detail into a line price.
// It is pure: no side effects, identical output for identical input, so
// a draft order can be re-priced as often as the user edits it.
func PriceLine(svc *models.Service, quantity int, detail LineDetail) (LinePrice, error) {
	if quantity < 1 {
		return LinePrice{}, ErrInvalidQuantity
	}

	switch svc.Type {
	case models.ServiceFixed:
		return LinePrice{
			UnitPrice: svc.Price,
			LineTotal: svc.Price * float64(quantity),
		}, nil

	case models.ServicePerUnit:
		// Quantity and weight are orthogonal: quantity counts instances of
		// the service, weight measures each instance. Neither defaults
		// silently; the caller must state the weight.
		if detail.Weight == nil || *detail.Weight < 0 {
			return LinePrice{}, ErrInvalidWeight
		}
		return LinePrice{
			UnitPrice: svc.Price,
			LineTotal: svc.Price * *detail.Weight * float64(quantity),
		}, nil

	case models.ServiceSelectable:
		// The chosen option must exist right now. A stale client that
		// loaded the service list before an options edit gets a retryable
		// validation error, not a crash.
		if detail.Package == nil {
			return LinePrice{}, ErrUnknownOption
		}
		opt := svc.OptionByName(*detail.Package)
		if opt == nil {
			return LinePrice{}, ErrUnknownOption
		}
		return LinePrice{
			UnitPrice: opt.Price,
			LineTotal: opt.Price * float64(quantity),
		}, nil
	}

	return LinePrice{}, ErrServiceNotFound
}

type PricingService interface {
	PriceOrderLine(ctx context.Context, serviceID uint, quantity int, detail LineDetail) (LinePrice, error)
}

type pricingService struct {
	services repository.ServiceRepository
}

func NewPricingService(services repository.ServiceRepository) PricingService {
	return &pricingService{services: services}
}

func (s *pricingService) PriceOrderLine(ctx context.Context, serviceID uint, quantity int, detail LineDetail) (LinePrice, error) {
	svc, err := s.services.FindByID(ctx, serviceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LinePrice{}, ErrServiceNotFound
		}
		return LinePrice{}, err
	}
	return PriceLine(svc, quantity, detail)
}
