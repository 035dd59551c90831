package repository

import (
	"context"

	"github.com/hoteldesk/frontdesk/internal/models"
	"gorm.io/gorm"
)

type OrderRepository interface {
	Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error
	Create(ctx context.Context, order *models.Order) error
	FindByID(ctx context.Context, id uint) (*models.Order, error)
	FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Order, error)
	ReplaceLines(ctx context.Context, tx *gorm.DB, orderID uint, lines []models.OrderLine) error
	AppendLines(ctx context.Context, tx *gorm.DB, orderID uint, lines []models.OrderLine) error
	SaveBreakdown(ctx context.Context, tx *gorm.DB, order *models.Order) error
	UpdateStatus(ctx context.Context, tx *gorm.DB, id uint, status models.OrderStatus) error
	ListByCustomer(ctx context.Context, customerID uint) ([]models.Order, error)
}

type orderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}

func (r *orderRepository) Create(ctx context.Context, order *models.Order) error {
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *orderRepository) FindByID(ctx context.Context, id uint) (*models.Order, error) {
	var order models.Order
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		First(&order, id).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// FindByIDForUpdate locks the order row for the duration of the
// transaction. Finalization relies on this to stay idempotent under
// concurrent retries.
func (r *orderRepository) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Order, error) {
	var order models.Order
	if err := tx.WithContext(ctx).
		Set("gorm:query_option", "FOR UPDATE").
		First(&order, id).Error; err != nil {
		return nil, err
	}
	if err := tx.WithContext(ctx).Where("order_id = ?", id).Order("id ASC").Find(&order.Lines).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) ReplaceLines(ctx context.Context, tx *gorm.DB, orderID uint, lines []models.OrderLine) error {
	if err := tx.WithContext(ctx).Where("order_id = ?", orderID).Delete(&models.OrderLine{}).Error; err != nil {
		return err
	}
	return r.AppendLines(ctx, tx, orderID, lines)
}

func (r *orderRepository) AppendLines(ctx context.Context, tx *gorm.DB, orderID uint, lines []models.OrderLine) error {
	if len(lines) == 0 {
		return nil
	}
	for i := range lines {
		lines[i].OrderID = orderID
		lines[i].ID = 0
	}
	return tx.WithContext(ctx).Create(&lines).Error
}

func (r *orderRepository) SaveBreakdown(ctx context.Context, tx *gorm.DB, order *models.Order) error {
	return tx.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ?", order.ID).
		Updates(map[string]interface{}{
			"subtotal":         order.Subtotal,
			"promotion_id":     order.PromotionID,
			"discount_amount":  order.DiscountAmount,
			"final_total":      order.FinalTotal,
			"finalization_ref": order.FinalizationRef,
			"finalized_at":     order.FinalizedAt,
			"status":           order.Status,
		}).Error
}

func (r *orderRepository) UpdateStatus(ctx context.Context, tx *gorm.DB, id uint, status models.OrderStatus) error {
	return tx.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *orderRepository) ListByCustomer(ctx context.Context, customerID uint) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.WithContext(ctx).
		Preload("Lines").
		Where("customer_id = ?", customerID).
		Order("id DESC").
		Find(&orders).Error
	return orders, err
}
