package service

import (
	"testing"
	"time"

	"github.com/hoteldesk/frontdesk/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uintPtr(u uint) *uint { return &u }
func intPtr(i int) *int { return &i }

func date(d string) time.Time {
	t, err := time.Parse("2006-01-02", d)
	if err != nil {
		panic(err)
	}
	return t
}

func TestDiscountFromPromotion_ExactlyOneMechanism(t *testing.T) {
	_, err := DiscountFromPromotion(&models.Promotion{Name: "empty"})
	assert.ErrorIs(t, err, ErrInvalidPromotionConfig)

	_, err = DiscountFromPromotion(&models.Promotion{
		DiscountPercent: floatPtr(10),
		DiscountAmount:  floatPtr(50000),
	})
	assert.ErrorIs(t, err, ErrInvalidPromotionConfig)

	_, err = DiscountFromPromotion(&models.Promotion{
		DiscountAmount: floatPtr(50000),
		FreeServiceID:  uintPtr(1),
	})
	assert.ErrorIs(t, err, ErrInvalidPromotionConfig)

	d, err := DiscountFromPromotion(&models.Promotion{DiscountPercent: floatPtr(10)})
	require.NoError(t, err)
	assert.Equal(t, 10000.0, d.SubtotalReduction(100000))
}

func TestDiscountFromPromotion_RejectsBadValues(t *testing.T) {
	_, err := DiscountFromPromotion(&models.Promotion{DiscountPercent: floatPtr(130)})
	assert.ErrorIs(t, err, ErrInvalidPromotionConfig)

	_, err = DiscountFromPromotion(&models.Promotion{DiscountAmount: floatPtr(-5)})
	assert.ErrorIs(t, err, ErrInvalidPromotionConfig)

	_, err = DiscountFromPromotion(&models.Promotion{FreeServiceID: uintPtr(1), FreeServiceQty: intPtr(0)})
	assert.ErrorIs(t, err, ErrInvalidPromotionConfig)
}

func TestDiscount_AmountCappedAtSubtotal(t *testing.T) {
	d := AmountDiscount(500000)
	assert.Equal(t, 120000.0, d.SubtotalReduction(120000))
	assert.Equal(t, 500000.0, d.SubtotalReduction(900000))
}

func TestBirthdayWithin(t *testing.T) {
	birth := date("1990-09-20")

	assert.True(t, birthdayWithin(birth, date("2025-09-20"), 0))   // on the day
	assert.True(t, birthdayWithin(birth, date("2025-09-13"), 7))   // window edge
	assert.False(t, birthdayWithin(birth, date("2025-09-12"), 7))  // one day early
	assert.False(t, birthdayWithin(birth, date("2025-09-21"), 7))  // already past this year

	// Year wrap: birthday in early January seen from late December.
	janBirth := date("1988-01-02")
	assert.True(t, birthdayWithin(janBirth, date("2025-12-28"), 7))
	assert.False(t, birthdayWithin(janBirth, date("2025-12-20"), 7))
}

// Scenario from the front desk: Spa fixed at 180,000, quantity 2,
// Birthday10 at 10% with the customer's birthday inside the window.
func TestEvaluatePromotions_BirthdayPercent(t *testing.T) {
	customer := &models.Customer{ID: 1, BirthDate: date("1990-09-20")}
	lines := []models.OrderLine{{ServiceID: 1, Quantity: 2, LineTotal: 360000}}
	promos := []models.Promotion{{
		ID: 1, Name: "Birthday10", Type: models.PromotionBirthday, Active: true,
		DiscountPercent: floatPtr(10), BirthdayDaysBefore: 7,
	}}

	res, err := EvaluatePromotions(EvalInput{
		Customer:   customer,
		Lines:      lines,
		Subtotal:   360000,
		OrderDate:  date("2025-09-18"),
		Promotions: promos,
	})
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Equal(t, uint(1), res.Promotion.ID)
	assert.Equal(t, 36000.0, res.Discount)
	assert.Empty(t, res.FreeLines)
}

func TestEvaluatePromotions_NoneEligibleIsNil(t *testing.T) {
	customer := &models.Customer{ID: 1, BirthDate: date("1990-03-01")}
	promos := []models.Promotion{{
		ID: 1, Type: models.PromotionBirthday, Active: true,
		DiscountPercent: floatPtr(10), BirthdayDaysBefore: 3,
	}}

	res, err := EvaluatePromotions(EvalInput{
		Customer:   customer,
		Subtotal:   100000,
		OrderDate:  date("2025-09-18"),
		Promotions: promos,
	})
	require.NoError(t, err)
	assert.Nil(t, res)
}

func TestEvaluatePromotions_MembershipTier(t *testing.T) {
	gold := &models.Customer{ID: 1, MembershipTier: "gold"}
	promos := []models.Promotion{{
		ID: 2, Type: models.PromotionMembership, Active: true,
		DiscountAmount: floatPtr(25000), MembershipTier: "gold",
	}}

	res, err := EvaluatePromotions(EvalInput{
		Customer: gold, Subtotal: 200000, OrderDate: date("2025-09-18"), Promotions: promos,
	})
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Equal(t, 25000.0, res.Discount)

	silver := &models.Customer{ID: 2, MembershipTier: "silver"}
	res, err = EvaluatePromotions(EvalInput{
		Customer: silver, Subtotal: 200000, OrderDate: date("2025-09-18"), Promotions: promos,
	})
	require.NoError(t, err)
	assert.Nil(t, res)
}

func TestEvaluatePromotions_EventCodeBeatsLargerDiscount(t *testing.T) {
	customer := &models.Customer{ID: 1, MembershipTier: "gold"}
	promos := []models.Promotion{
		{
			ID: 1, Type: models.PromotionMembership, Active: true,
			DiscountPercent: floatPtr(50), MembershipTier: "gold",
		},
		{
			ID: 2, Type: models.PromotionEvent, Active: true,
			DiscountPercent: floatPtr(5), EventCode: "SUMMER24",
		},
	}

	// Guest explicitly invoked the code; it wins despite the smaller value.
	res, err := EvaluatePromotions(EvalInput{
		Customer: customer, Subtotal: 100000, OrderDate: date("2025-09-18"),
		EventCode: "SUMMER24", Promotions: promos,
	})
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Equal(t, uint(2), res.Promotion.ID)
	assert.Equal(t, 5000.0, res.Discount)

	// Without the code, the larger membership discount applies.
	res, err = EvaluatePromotions(EvalInput{
		Customer: customer, Subtotal: 100000, OrderDate: date("2025-09-18"), Promotions: promos,
	})
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Equal(t, uint(1), res.Promotion.ID)
}

func TestEvaluatePromotions_LargestDiscountThenLowestID(t *testing.T) {
	customer := &models.Customer{ID: 1, MembershipTier: "gold"}
	promos := []models.Promotion{
		{ID: 3, Type: models.PromotionMembership, Active: true, DiscountPercent: floatPtr(10), MembershipTier: "gold"},
		{ID: 5, Type: models.PromotionMembership, Active: true, DiscountPercent: floatPtr(20), MembershipTier: "gold"},
		{ID: 8, Type: models.PromotionMembership, Active: true, DiscountPercent: floatPtr(20), MembershipTier: "gold"},
	}

	res, err := EvaluatePromotions(EvalInput{
		Customer: customer, Subtotal: 100000, OrderDate: date("2025-09-18"), Promotions: promos,
	})
	require.NoError(t, err)
	require.NotNil(t, res)
	// 20% beats 10%; of the two 20% promotions the earlier-created wins.
	assert.Equal(t, uint(5), res.Promotion.ID)
}

func TestEvaluatePromotions_ServiceScope(t *testing.T) {
	customer := &models.Customer{ID: 1, MembershipTier: "gold"}
	scoped := models.Promotion{
		ID: 1, Type: models.PromotionMembership, Active: true,
		DiscountPercent: floatPtr(10), MembershipTier: "gold",
		EligibleServices: []models.Service{{ID: 42}},
	}

	res, err := EvaluatePromotions(EvalInput{
		Customer:   customer,
		Lines:      []models.OrderLine{{ServiceID: 7, Quantity: 1, LineTotal: 50000}},
		Subtotal:   50000,
		OrderDate:  date("2025-09-18"),
		Promotions: []models.Promotion{scoped},
	})
	require.NoError(t, err)
	assert.Nil(t, res)

	res, err = EvaluatePromotions(EvalInput{
		Customer:   customer,
		Lines:      []models.OrderLine{{ServiceID: 42, Quantity: 1, LineTotal: 50000}},
		Subtotal:   50000,
		OrderDate:  date("2025-09-18"),
		Promotions: []models.Promotion{scoped},
	})
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Equal(t, uint(1), res.Promotion.ID)
}

func TestEvaluatePromotions_FreeServiceGrant(t *testing.T) {
	customer := &models.Customer{ID: 1, MembershipTier: "gold"}
	promos := []models.Promotion{{
		ID: 1, Type: models.PromotionMembership, Active: true,
		FreeServiceID: uintPtr(9), FreeServiceQty: intPtr(2), MembershipTier: "gold",
	}}

	res, err := EvaluatePromotions(EvalInput{
		Customer:   customer,
		Subtotal:   150000,
		OrderDate:  date("2025-09-18"),
		Promotions: promos,
		Services:   map[uint]*models.Service{9: {ID: 9, Type: models.ServiceFixed, Price: 30000}},
	})
	require.NoError(t, err)
	require.NotNil(t, res)
	// Grants add zero-price lines; nothing is subtracted from the subtotal.
	assert.Equal(t, 0.0, res.Discount)
	require.Len(t, res.FreeLines, 1)
	assert.Equal(t, uint(9), res.FreeLines[0].ServiceID)
	assert.Equal(t, 2, res.FreeLines[0].Quantity)
	assert.True(t, res.FreeLines[0].FreeGrant)
	assert.Equal(t, 0.0, res.FreeLines[0].LineTotal)
}

func TestEvaluatePromotions_InactiveSkipped(t *testing.T) {
	customer := &models.Customer{ID: 1, MembershipTier: "gold"}
	promos := []models.Promotion{{
		ID: 1, Type: models.PromotionMembership, Active: false,
		DiscountPercent: floatPtr(10), MembershipTier: "gold",
	}}

	res, err := EvaluatePromotions(EvalInput{
		Customer: customer, Subtotal: 100000, OrderDate: date("2025-09-18"), Promotions: promos,
	})
	require.NoError(t, err)
	assert.Nil(t, res)
}
