package repository

import (
	"context"

	"github.com/hoteldesk/frontdesk/internal/models"
	"gorm.io/gorm"
)

type PromotionRepository interface {
	Create(ctx context.Context, promo *models.Promotion) error
	Update(ctx context.Context, promo *models.Promotion) error
	FindByID(ctx context.Context, id uint) (*models.Promotion, error)
	List(ctx context.Context) ([]models.Promotion, error)
	// ListActive returns active promotions ordered by id so evaluation
	// tie-breaks are stable and auditable.
	ListActive(ctx context.Context) ([]models.Promotion, error)
	SetActive(ctx context.Context, id uint, active bool) error
}

type promotionRepository struct {
	db *gorm.DB
}

func NewPromotionRepository(db *gorm.DB) PromotionRepository {
	return &promotionRepository{db: db}
}

func (r *promotionRepository) Create(ctx context.Context, promo *models.Promotion) error {
	return r.db.WithContext(ctx).Create(promo).Error
}

func (r *promotionRepository) Update(ctx context.Context, promo *models.Promotion) error {
	return r.db.WithContext(ctx).
		Session(&gorm.Session{FullSaveAssociations: true}).
		Save(promo).Error
}

func (r *promotionRepository) FindByID(ctx context.Context, id uint) (*models.Promotion, error) {
	var promo models.Promotion
	if err := r.db.WithContext(ctx).Preload("EligibleServices").First(&promo, id).Error; err != nil {
		return nil, err
	}
	return &promo, nil
}

func (r *promotionRepository) List(ctx context.Context) ([]models.Promotion, error) {
	var promos []models.Promotion
	err := r.db.WithContext(ctx).Preload("EligibleServices").Order("id ASC").Find(&promos).Error
	return promos, err
}

func (r *promotionRepository) ListActive(ctx context.Context) ([]models.Promotion, error) {
	var promos []models.Promotion
	err := r.db.WithContext(ctx).
		Preload("EligibleServices").
		Where("active = ?", true).
		Order("id ASC").
		Find(&promos).Error
	return promos, err
}

func (r *promotionRepository) SetActive(ctx context.Context, id uint, active bool) error {
	return r.db.WithContext(ctx).
		Model(&models.Promotion{}).
		Where("id = ?", id).
		Update("active", active).Error
}
