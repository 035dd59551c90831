package repository

import (
	"context"
	"time"

	"github.com/hoteldesk/frontdesk/internal/models"
	"gorm.io/gorm"
)

type BookingRepository interface {
	Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error
	Create(ctx context.Context, tx *gorm.DB, booking *models.Booking) error
	FindByID(ctx context.Context, id uint) (*models.Booking, error)
	FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Booking, error)
	// CountOverlapping counts active bookings on the room whose half-open
	// interval overlaps [checkin, checkout), excluding the given booking id
	// (0 excludes nothing).
	CountOverlapping(ctx context.Context, tx *gorm.DB, roomID uint, checkin, checkout time.Time, excludeID uint) (int64, error)
	UpdateStatus(ctx context.Context, tx *gorm.DB, id uint, status models.BookingStatus) error
	UpdateDates(ctx context.Context, tx *gorm.DB, id uint, checkin, checkout time.Time) error
	ListActive(ctx context.Context) ([]models.Booking, error)
	ListByCustomer(ctx context.Context, customerID uint) ([]models.Booking, error)
}

type bookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) BookingRepository {
	return &bookingRepository{db: db}
}

func (r *bookingRepository) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}

func (r *bookingRepository) Create(ctx context.Context, tx *gorm.DB, booking *models.Booking) error {
	return tx.WithContext(ctx).Create(booking).Error
}

func (r *bookingRepository) FindByID(ctx context.Context, id uint) (*models.Booking, error) {
	var booking models.Booking
	if err := r.db.WithContext(ctx).Preload("Room").First(&booking, id).Error; err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Booking, error) {
	var booking models.Booking
	if err := tx.WithContext(ctx).
		Set("gorm:query_option", "FOR UPDATE").
		First(&booking, id).Error; err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) CountOverlapping(ctx context.Context, tx *gorm.DB, roomID uint, checkin, checkout time.Time, excludeID uint) (int64, error) {
	var count int64
	q := tx.WithContext(ctx).
		Model(&models.Booking{}).
		Where("room_id = ? AND status IN ?", roomID,
			[]models.BookingStatus{models.BookingReserved, models.BookingCheckedIn}).
		Where("checkin < ? AND ? < checkout", checkout, checkin)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	err := q.Count(&count).Error
	return count, err
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, tx *gorm.DB, id uint, status models.BookingStatus) error {
	return tx.WithContext(ctx).
		Model(&models.Booking{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *bookingRepository) UpdateDates(ctx context.Context, tx *gorm.DB, id uint, checkin, checkout time.Time) error {
	return tx.WithContext(ctx).
		Model(&models.Booking{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"checkin": checkin, "checkout": checkout}).Error
}

// ListActive returns every booking that currently occupies its room
// interval; used to hydrate the interval index at startup.
func (r *bookingRepository) ListActive(ctx context.Context) ([]models.Booking, error) {
	var bookings []models.Booking
	err := r.db.WithContext(ctx).
		Where("status IN ?", []models.BookingStatus{models.BookingReserved, models.BookingCheckedIn}).
		Order("id ASC").
		Find(&bookings).Error
	return bookings, err
}

func (r *bookingRepository) ListByCustomer(ctx context.Context, customerID uint) ([]models.Booking, error) {
	var bookings []models.Booking
	err := r.db.WithContext(ctx).
		Preload("Room").
		Where("customer_id = ?", customerID).
		Order("id DESC").
		Find(&bookings).Error
	return bookings, err
}
