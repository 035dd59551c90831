package repository

import (
	"context"

	"github.com/hoteldesk/frontdesk/internal/models"
	"gorm.io/gorm"
)

type ServiceRepository interface {
	Create(ctx context.Context, svc *models.Service) error
	Update(ctx context.Context, svc *models.Service) error
	FindByID(ctx context.Context, id uint) (*models.Service, error)
	// FindByIDs loads the given services keyed by id; missing ids are
	// simply absent from the map.
	FindByIDs(ctx context.Context, ids []uint) (map[uint]*models.Service, error)
	List(ctx context.Context) ([]models.Service, error)
	ReplaceOptions(ctx context.Context, serviceID uint, options []models.ServiceOption) error
}

type serviceRepository struct {
	db *gorm.DB
}

func NewServiceRepository(db *gorm.DB) ServiceRepository {
	return &serviceRepository{db: db}
}

func (r *serviceRepository) Create(ctx context.Context, svc *models.Service) error {
	return r.db.WithContext(ctx).Create(svc).Error
}

func (r *serviceRepository) Update(ctx context.Context, svc *models.Service) error {
	return r.db.WithContext(ctx).Save(svc).Error
}

func (r *serviceRepository) FindByID(ctx context.Context, id uint) (*models.Service, error) {
	var svc models.Service
	if err := r.db.WithContext(ctx).Preload("Options").First(&svc, id).Error; err != nil {
		return nil, err
	}
	return &svc, nil
}

func (r *serviceRepository) FindByIDs(ctx context.Context, ids []uint) (map[uint]*models.Service, error) {
	out := make(map[uint]*models.Service, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var services []models.Service
	if err := r.db.WithContext(ctx).Preload("Options").Where("id IN ?", ids).Find(&services).Error; err != nil {
		return nil, err
	}
	for i := range services {
		out[services[i].ID] = &services[i]
	}
	return out, nil
}

func (r *serviceRepository) List(ctx context.Context) ([]models.Service, error) {
	var services []models.Service
	err := r.db.WithContext(ctx).Preload("Options").Order("id ASC").Find(&services).Error
	return services, err
}

// ReplaceOptions swaps a selectable service's option set in one
// transaction. Existing order lines keep their stored prices; drafts
// referencing a removed option fail validation on the next pricing pass.
func (r *serviceRepository) ReplaceOptions(ctx context.Context, serviceID uint, options []models.ServiceOption) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("service_id = ?", serviceID).Delete(&models.ServiceOption{}).Error; err != nil {
			return err
		}
		for i := range options {
			options[i].ServiceID = serviceID
			options[i].ID = 0
		}
		if len(options) == 0 {
			return nil
		}
		return tx.Create(&options).Error
	})
}
