package service

import (
	"context"
	"errors"
	"time"

	"github.com/hoteldesk/frontdesk/internal/models"
	"github.com/hoteldesk/frontdesk/internal/repository"
	"gorm.io/gorm"
)

type discountKind int

const (
	discountPercent discountKind = iota + 1
	discountFlat
	discountFreeService
)

// Discount is the tagged form of a promotion's mechanism. Only the three
// constructors can build one, so a value always carries exactly one
// mechanism even though the promotion row stores them as nullable columns.
type Discount struct {
	kind          discountKind
	percent       float64
	amount        float64
	freeServiceID uint
	freeQty       int
}

func PercentDiscount(percent float64) Discount {
	return Discount{kind: discountPercent, percent: percent}
}

func AmountDiscount(amount float64) Discount {
	return Discount{kind: discountFlat, amount: amount}
}

func FreeServiceDiscount(serviceID uint, qty int) Discount {
	return Discount{kind: discountFreeService, freeServiceID: serviceID, freeQty: qty}
}

// DiscountFromPromotion converts a stored promotion into its tagged
// discount. It fails with ErrInvalidPromotionConfig unless exactly one
// mechanism is set; promotion save paths run this as their validation.
func DiscountFromPromotion(p *models.Promotion) (Discount, error) {
	var (
		d   Discount
		set int
	)
	if p.DiscountPercent != nil {
		d = PercentDiscount(*p.DiscountPercent)
		set++
	}
	if p.DiscountAmount != nil {
		d = AmountDiscount(*p.DiscountAmount)
		set++
	}
	if p.FreeServiceID != nil {
		qty := 1
		if p.FreeServiceQty != nil {
			qty = *p.FreeServiceQty
		}
		d = FreeServiceDiscount(*p.FreeServiceID, qty)
		set++
	}
	if set != 1 {
		return Discount{}, ErrInvalidPromotionConfig
	}
	if d.kind == discountPercent && (d.percent < 0 || d.percent > 100) {
		return Discount{}, ErrInvalidPromotionConfig
	}
	if d.kind == discountFlat && d.amount < 0 {
		return Discount{}, ErrInvalidPromotionConfig
	}
	if d.kind == discountFreeService && d.freeQty < 1 {
		return Discount{}, ErrInvalidPromotionConfig
	}
	return d, nil
}

// SubtotalReduction is the amount this discount subtracts from the given
// subtotal. A flat amount is capped at the subtotal so a total can never
// go negative; a free-service grant subtracts nothing.
func (d Discount) SubtotalReduction(subtotal float64) float64 {
	switch d.kind {
	case discountPercent:
		return subtotal * d.percent / 100
	case discountFlat:
		if d.amount > subtotal {
			return subtotal
		}
		return d.amount
	}
	return 0
}

// comparableValue ranks discounts against each other when several
// promotions are eligible. Free-service grants are valued at the granted
// service's current catalog price.
func (d Discount) comparableValue(subtotal float64, services map[uint]*models.Service) float64 {
	if d.kind == discountFreeService {
		if svc, ok := services[d.freeServiceID]; ok {
			return svc.Price * float64(d.freeQty)
		}
		return 0
	}
	return d.SubtotalReduction(subtotal)
}

// FreeGrant returns the granted service and quantity for free-service
// discounts, and ok=false for the other mechanisms.
func (d Discount) FreeGrant() (serviceID uint, qty int, ok bool) {
	if d.kind != discountFreeService {
		return 0, 0, false
	}
	return d.freeServiceID, d.freeQty, true
}

// EvalInput is a snapshot of everything promotion evaluation reads. The
// evaluation itself is pure, so it can run concurrently and repeatedly
// over drafts without locking.
type EvalInput struct {
	Customer   *models.Customer
	Lines      []models.OrderLine
	Subtotal   float64
	OrderDate  time.Time
	EventCode  string
	Promotions []models.Promotion
	Services   map[uint]*models.Service
}

type EvalResult struct {
	Promotion *models.Promotion
	// Discount is the amount subtracted from the subtotal. Zero for
	// free-service promotions, which grant FreeLines instead.
	Discount  float64
	FreeLines []models.OrderLine
}

// EvaluatePromotions picks the single promotion to apply, or nil when
// none is eligible (a common, non-error outcome).
//
// Selection policy: an explicit event-code match always wins, since the
// guest is invoking it by name. Otherwise the promotion with the largest
// discount value under the current subtotal wins, ties broken by lowest
// promotion id. The policy is deterministic by construction; changing it
// means changing pickBest below.
func EvaluatePromotions(in EvalInput) (*EvalResult, error) {
	best := pickBest(in)
	if best == nil {
		return nil, nil
	}

	d, err := DiscountFromPromotion(best)
	if err != nil {
		return nil, err
	}

	res := &EvalResult{Promotion: best, Discount: d.SubtotalReduction(in.Subtotal)}
	if serviceID, qty, ok := d.FreeGrant(); ok {
		res.FreeLines = append(res.FreeLines, models.OrderLine{
			ServiceID: serviceID,
			Quantity:  qty,
			UnitPrice: 0,
			LineTotal: 0,
			FreeGrant: true,
		})
	}
	return res, nil
}

func pickBest(in EvalInput) *models.Promotion {
	var (
		best       *models.Promotion
		bestValue  float64
		bestByCode bool
	)
	for i := range in.Promotions {
		p := &in.Promotions[i]
		if !eligible(p, in) {
			continue
		}
		d, err := DiscountFromPromotion(p)
		if err != nil {
			// Misconfigured rows are skipped rather than failing the
			// order; save-time validation should have caught them.
			continue
		}
		value := d.comparableValue(in.Subtotal, in.Services)
		byCode := p.Type == models.PromotionEvent

		switch {
		case best == nil:
		case byCode && !bestByCode:
		case bestByCode && !byCode:
			continue
		case value > bestValue:
		case value == bestValue && p.ID < best.ID:
		default:
			continue
		}
		best, bestValue, bestByCode = p, value, byCode
	}
	return best
}

func eligible(p *models.Promotion, in EvalInput) bool {
	if !p.Active {
		return false
	}

	switch p.Type {
	case models.PromotionBirthday:
		if in.Customer == nil || !birthdayWithin(in.Customer.BirthDate, in.OrderDate, p.BirthdayDaysBefore) {
			return false
		}
	case models.PromotionMembership:
		if in.Customer == nil || p.MembershipTier == "" || in.Customer.MembershipTier != p.MembershipTier {
			return false
		}
	case models.PromotionEvent:
		if in.EventCode == "" || in.EventCode != p.EventCode {
			return false
		}
	default:
		return false
	}

	if len(p.EligibleServices) == 0 {
		return true
	}
	for i := range in.Lines {
		if in.Lines[i].FreeGrant {
			continue
		}
		if p.AppliesToService(in.Lines[i].ServiceID) {
			return true
		}
	}
	return false
}

// birthdayWithin reports whether the next month/day occurrence of birth,
// counted from the order date, lands within daysBefore days (inclusive,
// day 0 being the order date itself). Feb 29 birthdays normalize to
// Mar 1 in non-leap years via time.Date.
func birthdayWithin(birth, on time.Time, daysBefore int) bool {
	if birth.IsZero() || daysBefore < 0 {
		return false
	}
	on = time.Date(on.Year(), on.Month(), on.Day(), 0, 0, 0, 0, time.UTC)
	next := time.Date(on.Year(), birth.Month(), birth.Day(), 0, 0, 0, 0, time.UTC)
	if next.Before(on) {
		next = time.Date(on.Year()+1, birth.Month(), birth.Day(), 0, 0, 0, 0, time.UTC)
	}
	days := int(next.Sub(on).Hours() / 24)
	return days <= daysBefore
}

type PromotionService interface {
	Create(ctx context.Context, promo *models.Promotion) error
	Update(ctx context.Context, promo *models.Promotion) error
	Get(ctx context.Context, id uint) (*models.Promotion, error)
	List(ctx context.Context) ([]models.Promotion, error)
	SetActive(ctx context.Context, id uint, active bool) error
}

type promotionService struct {
	promotions repository.PromotionRepository
}

func NewPromotionService(promotions repository.PromotionRepository) PromotionService {
	return &promotionService{promotions: promotions}
}

func (s *promotionService) Create(ctx context.Context, promo *models.Promotion) error {
	if _, err := DiscountFromPromotion(promo); err != nil {
		return err
	}
	return s.promotions.Create(ctx, promo)
}

func (s *promotionService) Update(ctx context.Context, promo *models.Promotion) error {
	if _, err := DiscountFromPromotion(promo); err != nil {
		return err
	}
	return s.promotions.Update(ctx, promo)
}

func (s *promotionService) Get(ctx context.Context, id uint) (*models.Promotion, error) {
	promo, err := s.promotions.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPromotionNotFound
		}
		return nil, err
	}
	return promo, nil
}

func (s *promotionService) List(ctx context.Context) ([]models.Promotion, error) {
	return s.promotions.List(ctx)
}

func (s *promotionService) SetActive(ctx context.Context, id uint, active bool) error {
	return s.promotions.SetActive(ctx, id, active)
}
