package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/hoteldesk/frontdesk/internal/metrics"
	"github.com/hoteldesk/frontdesk/internal/models"
	"github.com/hoteldesk/frontdesk/internal/repository"
	"gorm.io/gorm"
)

// LineInput is one requested order line before pricing.
type LineInput struct {
	ServiceID uint
	Quantity  int
	Detail    LineDetail
}

type OrderService interface {
	CreateOrder(ctx context.Context, customerID uint, paymentMethod, eventCode string, lines []LineInput) (*models.Order, error)
	GetOrder(ctx context.Context, orderID uint) (*models.Order, error)
	// ReplaceLines swaps the draft's composition; rejected once the order
	// has left pending.
	ReplaceLines(ctx context.Context, orderID uint, lines []LineInput) (*models.Order, error)
	// PreviewPromotion evaluates promotions against the current draft
	// without committing anything.
	PreviewPromotion(ctx context.Context, orderID uint, eventCode string) (*EvalResult, error)
	// Finalize freezes the order's breakdown and marks it paid. Calling
	// it again returns the already-persisted breakdown unchanged.
	Finalize(ctx context.Context, orderID uint, eventCode string) (*models.Order, error)
	Cancel(ctx context.Context, orderID uint) (*models.Order, error)
	ListByCustomer(ctx context.Context, customerID uint) ([]models.Order, error)
}

type orderService struct {
	orders     repository.OrderRepository
	services   repository.ServiceRepository
	customers  repository.CustomerRepository
	promotions repository.PromotionRepository
	publisher  EventPublisher
	now        func() time.Time
}

func NewOrderService(
	orders repository.OrderRepository,
	services repository.ServiceRepository,
	customers repository.CustomerRepository,
	promotions repository.PromotionRepository,
	publisher EventPublisher,
) OrderService {
	return &orderService{
		orders:     orders,
		services:   services,
		customers:  customers,
		promotions: promotions,
		publisher:  publisher,
		now:        time.Now,
	}
}

func (s *orderService) CreateOrder(ctx context.Context, customerID uint, paymentMethod, eventCode string, inputs []LineInput) (*models.Order, error) {
	if _, err := s.customers.FindByID(ctx, customerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}

	lines, subtotal, err := s.priceInputs(ctx, inputs)
	if err != nil {
		return nil, err
	}

	order := &models.Order{
		Ref:           uuid.NewString(),
		CustomerID:    customerID,
		PaymentMethod: paymentMethod,
		EventCode:     eventCode,
		Status:        models.OrderPending,
		Subtotal:      subtotal,
		FinalTotal:    subtotal,
		Lines:         lines,
	}
	if err := s.orders.Create(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

func (s *orderService) GetOrder(ctx context.Context, orderID uint) (*models.Order, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return order, nil
}

func (s *orderService) ReplaceLines(ctx context.Context, orderID uint, inputs []LineInput) (*models.Order, error) {
	lines, subtotal, err := s.priceInputs(ctx, inputs)
	if err != nil {
		return nil, err
	}

	var order *models.Order
	err = s.orders.Transaction(ctx, func(tx *gorm.DB) error {
		o, err := s.orders.FindByIDForUpdate(ctx, tx, orderID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOrderNotFound
			}
			return err
		}
		if o.Frozen() {
			return ErrOrderFrozen
		}
		if err := s.orders.ReplaceLines(ctx, tx, o.ID, lines); err != nil {
			return err
		}
		o.Subtotal = subtotal
		o.FinalTotal = subtotal
		if err := s.orders.SaveBreakdown(ctx, tx, o); err != nil {
			return err
		}
		o.Lines = lines
		order = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (s *orderService) PreviewPromotion(ctx context.Context, orderID uint, eventCode string) (*EvalResult, error) {
	order, err := s.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if eventCode == "" {
		eventCode = order.EventCode
	}
	in, err := s.evalInput(ctx, order, order.Lines, order.Subtotal, eventCode)
	if err != nil {
		return nil, err
	}
	return EvaluatePromotions(in)
}

// Finalize re-prices the draft from the current catalog, applies the
// winning promotion and persists the frozen breakdown in one
// transaction. The order-row lock plus the finalization marker make
// retries return the identical breakdown instead of applying the
// promotion twice. Any error leaves the order pending and untouched.
func (s *orderService) Finalize(ctx context.Context, orderID uint, eventCode string) (*models.Order, error) {
	var (
		order   *models.Order
		applied *models.Promotion
		fresh   bool
	)
	err := s.orders.Transaction(ctx, func(tx *gorm.DB) error {
		o, err := s.orders.FindByIDForUpdate(ctx, tx, orderID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOrderNotFound
			}
			return err
		}
		if o.Status == models.OrderCancelled {
			return ErrOrderFrozen
		}
		if o.FinalizationRef != "" {
			// Already finalized: success-equivalent, return the stored
			// breakdown untouched.
			order = o
			return nil
		}

		code := eventCode
		if code == "" {
			code = o.EventCode
		}

		lines, subtotal, err := s.repriceLines(ctx, o.Lines)
		if err != nil {
			return err
		}

		in, err := s.evalInput(ctx, o, lines, subtotal, code)
		if err != nil {
			return err
		}
		eval, err := EvaluatePromotions(in)
		if err != nil {
			return err
		}

		var (
			discount float64
			promoID  *uint
		)
		if eval != nil {
			discount = eval.Discount
			id := eval.Promotion.ID
			promoID = &id
			applied = eval.Promotion
			lines = append(lines, eval.FreeLines...)
		}

		if err := s.orders.ReplaceLines(ctx, tx, o.ID, lines); err != nil {
			return err
		}

		now := s.now()
		o.Subtotal = subtotal
		o.PromotionID = promoID
		o.DiscountAmount = discount
		o.FinalTotal = finalTotal(subtotal, discount)
		o.FinalizationRef = uuid.NewString()
		o.FinalizedAt = &now
		o.Status = models.OrderPaid
		if err := s.orders.SaveBreakdown(ctx, tx, o); err != nil {
			return err
		}
		o.Lines = lines
		order = o
		fresh = true
		return nil
	})
	if err != nil {
		return nil, err
	}

	if fresh {
		metrics.IncOrderFinalized()
		if applied != nil {
			metrics.IncPromotionApplied(string(applied.Type))
		}
		if s.publisher != nil {
			_ = s.publisher.Publish("order.finalized", order)
		}
	}
	return order, nil
}

func (s *orderService) Cancel(ctx context.Context, orderID uint) (*models.Order, error) {
	var order *models.Order
	err := s.orders.Transaction(ctx, func(tx *gorm.DB) error {
		o, err := s.orders.FindByIDForUpdate(ctx, tx, orderID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOrderNotFound
			}
			return err
		}
		if o.Frozen() {
			return ErrOrderFrozen
		}
		if err := s.orders.UpdateStatus(ctx, tx, o.ID, models.OrderCancelled); err != nil {
			return err
		}
		o.Status = models.OrderCancelled
		order = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (s *orderService) ListByCustomer(ctx context.Context, customerID uint) ([]models.Order, error) {
	return s.orders.ListByCustomer(ctx, customerID)
}

// finalTotal clamps the discounted subtotal at zero; no discount
// mechanism may drive a total negative.
func finalTotal(subtotal, discount float64) float64 {
	t := subtotal - discount
	if t < 0 {
		return 0
	}
	return t
}

// priceInputs prices requested lines against the current catalog.
func (s *orderService) priceInputs(ctx context.Context, inputs []LineInput) ([]models.OrderLine, float64, error) {
	ids := make([]uint, 0, len(inputs))
	for _, in := range inputs {
		ids = append(ids, in.ServiceID)
	}
	services, err := s.services.FindByIDs(ctx, ids)
	if err != nil {
		return nil, 0, err
	}

	lines := make([]models.OrderLine, 0, len(inputs))
	var subtotal float64
	for _, in := range inputs {
		svc, ok := services[in.ServiceID]
		if !ok {
			return nil, 0, ErrServiceNotFound
		}
		price, err := PriceLine(svc, in.Quantity, in.Detail)
		if err != nil {
			return nil, 0, err
		}
		lines = append(lines, models.OrderLine{
			ServiceID:     in.ServiceID,
			Quantity:      in.Quantity,
			Weight:        in.Detail.Weight,
			PackageOption: in.Detail.Package,
			UnitPrice:     price.UnitPrice,
			LineTotal:     price.LineTotal,
		})
		subtotal += price.LineTotal
	}
	return lines, subtotal, nil
}

// repriceLines re-runs the pricing catalog over stored draft lines so a
// finalized breakdown reflects the catalog at finalization time.
func (s *orderService) repriceLines(ctx context.Context, stored []models.OrderLine) ([]models.OrderLine, float64, error) {
	inputs := make([]LineInput, 0, len(stored))
	for _, l := range stored {
		if l.FreeGrant {
			continue
		}
		inputs = append(inputs, LineInput{
			ServiceID: l.ServiceID,
			Quantity:  l.Quantity,
			Detail:    LineDetail{Weight: l.Weight, Package: l.PackageOption},
		})
	}
	return s.priceInputs(ctx, inputs)
}

// evalInput assembles the pure snapshot promotion evaluation reads.
func (s *orderService) evalInput(ctx context.Context, order *models.Order, lines []models.OrderLine, subtotal float64, eventCode string) (EvalInput, error) {
	customer, err := s.customers.FindByID(ctx, order.CustomerID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return EvalInput{}, err
	}

	promos, err := s.promotions.ListActive(ctx)
	if err != nil {
		return EvalInput{}, err
	}

	// Services referenced by the order plus any free-service grants, so
	// grant values are comparable during selection.
	idSet := make(map[uint]struct{})
	for _, l := range lines {
		idSet[l.ServiceID] = struct{}{}
	}
	for _, p := range promos {
		if p.FreeServiceID != nil {
			idSet[*p.FreeServiceID] = struct{}{}
		}
	}
	ids := make([]uint, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}
	services, err := s.services.FindByIDs(ctx, ids)
	if err != nil {
		return EvalInput{}, err
	}

	return EvalInput{
		Customer:   customer,
		Lines:      lines,
		Subtotal:   subtotal,
		OrderDate:  s.now(),
		EventCode:  eventCode,
		Promotions: promos,
		Services:   services,
	}, nil
}
