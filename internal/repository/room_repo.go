package repository

import (
	"context"

	"github.com/hoteldesk/frontdesk/internal/models"
	"gorm.io/gorm"
)

type RoomRepository interface {
	Create(ctx context.Context, room *models.Room) error
	Update(ctx context.Context, room *models.Room) error
	FindByID(ctx context.Context, id uint) (*models.Room, error)
	FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Room, error)
	List(ctx context.Context) ([]models.Room, error)
	// ListBookable returns rooms not under maintenance, optionally filtered
	// by room type, ordered by room number. The ordering is what keeps
	// availability results stable across the steps of a booking flow.
	ListBookable(ctx context.Context, roomTypeID *uint) ([]models.Room, error)
	UpdateStatus(ctx context.Context, id uint, status models.RoomStatus) error
}

type roomRepository struct {
	db *gorm.DB
}

func NewRoomRepository(db *gorm.DB) RoomRepository {
	return &roomRepository{db: db}
}

func (r *roomRepository) Create(ctx context.Context, room *models.Room) error {
	return r.db.WithContext(ctx).Create(room).Error
}

func (r *roomRepository) Update(ctx context.Context, room *models.Room) error {
	return r.db.WithContext(ctx).Save(room).Error
}

func (r *roomRepository) FindByID(ctx context.Context, id uint) (*models.Room, error) {
	var room models.Room
	if err := r.db.WithContext(ctx).Preload("RoomType").First(&room, id).Error; err != nil {
		return nil, err
	}
	return &room, nil
}

// FindByIDForUpdate acquires a row-level lock on the room within the given
// transaction, serializing concurrent booking attempts for it.
func (r *roomRepository) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Room, error) {
	var room models.Room
	if err := tx.WithContext(ctx).
		Set("gorm:query_option", "FOR UPDATE").
		First(&room, id).Error; err != nil {
		return nil, err
	}
	return &room, nil
}

func (r *roomRepository) List(ctx context.Context) ([]models.Room, error) {
	var rooms []models.Room
	err := r.db.WithContext(ctx).Preload("RoomType").Order("room_number ASC").Find(&rooms).Error
	return rooms, err
}

func (r *roomRepository) ListBookable(ctx context.Context, roomTypeID *uint) ([]models.Room, error) {
	q := r.db.WithContext(ctx).Preload("RoomType").
		Where("status <> ?", models.RoomMaintenance)
	if roomTypeID != nil {
		q = q.Where("room_type_id = ?", *roomTypeID)
	}
	var rooms []models.Room
	err := q.Order("room_number ASC").Find(&rooms).Error
	return rooms, err
}

func (r *roomRepository) UpdateStatus(ctx context.Context, id uint, status models.RoomStatus) error {
	return r.db.WithContext(ctx).
		Model(&models.Room{}).
		Where("id = ?", id).
		Update("status", status).Error
}

type RoomTypeRepository interface {
	Create(ctx context.Context, rt *models.RoomType) error
	FindByID(ctx context.Context, id uint) (*models.RoomType, error)
	List(ctx context.Context) ([]models.RoomType, error)
}

type roomTypeRepository struct {
	db *gorm.DB
}

func NewRoomTypeRepository(db *gorm.DB) RoomTypeRepository {
	return &roomTypeRepository{db: db}
}

func (r *roomTypeRepository) Create(ctx context.Context, rt *models.RoomType) error {
	return r.db.WithContext(ctx).Create(rt).Error
}

func (r *roomTypeRepository) FindByID(ctx context.Context, id uint) (*models.RoomType, error) {
	var rt models.RoomType
	if err := r.db.WithContext(ctx).First(&rt, id).Error; err != nil {
		return nil, err
	}
	return &rt, nil
}

func (r *roomTypeRepository) List(ctx context.Context) ([]models.RoomType, error) {
	var types []models.RoomType
	err := r.db.WithContext(ctx).Order("id ASC").Find(&types).Error
	return types, err
}
