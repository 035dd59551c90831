package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/hoteldesk/frontdesk/internal/cache"
	"github.com/hoteldesk/frontdesk/internal/interval"
	"github.com/hoteldesk/frontdesk/internal/metrics"
	"github.com/hoteldesk/frontdesk/internal/models"
	"github.com/hoteldesk/frontdesk/internal/repository"
	"gorm.io/gorm"
)

// EventPublisher pushes domain events to the message broker. Satisfied
// by *rabbitmq.Publisher; a nil value disables publishing.
type EventPublisher interface {
	Publish(routingKey string, payload any) error
}

type BookingService interface {
	CreateBooking(ctx context.Context, roomID, customerID uint, checkin, checkout time.Time) (*models.Booking, error)
	Reschedule(ctx context.Context, bookingID uint, checkin, checkout time.Time) (*models.Booking, error)
	CheckIn(ctx context.Context, bookingID uint) (*models.Booking, error)
	CheckOut(ctx context.Context, bookingID uint) (*models.Booking, error)
	Cancel(ctx context.Context, bookingID uint) (*models.Booking, error)
	GetBooking(ctx context.Context, bookingID uint) (*models.Booking, error)
	ListByCustomer(ctx context.Context, customerID uint) ([]models.Booking, error)
}

type bookingService struct {
	bookings  repository.BookingRepository
	rooms     repository.RoomRepository
	idx       *interval.Index
	cache     *cache.Availability
	publisher EventPublisher
}

func NewBookingService(
	bookings repository.BookingRepository,
	rooms repository.RoomRepository,
	idx *interval.Index,
	c *cache.Availability,
	publisher EventPublisher,
) BookingService {
	return &bookingService{
		bookings:  bookings,
		rooms:     rooms,
		idx:       idx,
		cache:     c,
		publisher: publisher,
	}
}

// HydrateIndex loads every active booking interval into the index. Run
// once at startup before the service takes traffic.
func HydrateIndex(ctx context.Context, bookings repository.BookingRepository, idx *interval.Index) error {
	active, err := bookings.ListActive(ctx)
	if err != nil {
		return err
	}
	for _, b := range active {
		idx.Insert(b.ID, b.RoomID, b.Checkin, b.Checkout)
	}
	return nil
}

// CreateBooking reserves a room for [checkin, checkout). The overlap
// check and insert run as one atomic unit: the room's index gate
// serializes requests in this process, the FOR UPDATE row lock plus the
// exclusion constraint serialize across processes. Losing either race
// surfaces as ErrRoomConflict.
func (s *bookingService) CreateBooking(ctx context.Context, roomID, customerID uint, checkin, checkout time.Time) (*models.Booking, error) {
	if !checkin.Before(checkout) {
		return nil, ErrInvalidDateRange
	}

	var booking *models.Booking
	err := s.idx.WithRoomLock(roomID, func() error {
		err := s.bookings.Transaction(ctx, func(tx *gorm.DB) error {
			room, err := s.rooms.FindByIDForUpdate(ctx, tx, roomID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrRoomNotFound
				}
				return err
			}
			if room.Status == models.RoomMaintenance {
				return ErrRoomUnderMaintenance
			}

			n, err := s.bookings.CountOverlapping(ctx, tx, roomID, checkin, checkout, 0)
			if err != nil {
				return err
			}
			if n > 0 || s.idx.QueryOverlap(roomID, checkin, checkout, 0) {
				return ErrRoomConflict
			}

			booking = &models.Booking{
				Ref:        uuid.NewString(),
				RoomID:     roomID,
				CustomerID: customerID,
				Checkin:    checkin,
				Checkout:   checkout,
				Status:     models.BookingReserved,
			}
			return s.bookings.Create(ctx, tx, booking)
		})
		if err == nil {
			s.idx.Insert(booking.ID, roomID, checkin, checkout)
		}
		return err
	})
	if err != nil {
		if errors.Is(err, ErrRoomConflict) {
			metrics.IncBookingConflict()
		}
		return nil, err
	}

	s.cache.Invalidate(ctx)
	metrics.IncBookingCreated(string(booking.Status))
	s.publish("booking.created", booking)
	return booking, nil
}

// Reschedule moves a booking to new dates, re-validating the window
// against the index while excluding the booking's own prior interval.
func (s *bookingService) Reschedule(ctx context.Context, bookingID uint, checkin, checkout time.Time) (*models.Booking, error) {
	if !checkin.Before(checkout) {
		return nil, ErrInvalidDateRange
	}

	booking, err := s.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !booking.Status.Occupies() {
		return nil, ErrInvalidTransition
	}

	err = s.idx.WithRoomLock(booking.RoomID, func() error {
		err := s.bookings.Transaction(ctx, func(tx *gorm.DB) error {
			if _, err := s.rooms.FindByIDForUpdate(ctx, tx, booking.RoomID); err != nil {
				return err
			}
			n, err := s.bookings.CountOverlapping(ctx, tx, booking.RoomID, checkin, checkout, booking.ID)
			if err != nil {
				return err
			}
			if n > 0 || s.idx.QueryOverlap(booking.RoomID, checkin, checkout, booking.ID) {
				return ErrRoomConflict
			}
			return s.bookings.UpdateDates(ctx, tx, booking.ID, checkin, checkout)
		})
		if err == nil {
			s.idx.Replace(booking.ID, booking.RoomID, checkin, checkout)
		}
		return err
	})
	if err != nil {
		if errors.Is(err, ErrRoomConflict) {
			metrics.IncBookingConflict()
		}
		return nil, err
	}

	booking.Checkin, booking.Checkout = checkin, checkout
	s.cache.Invalidate(ctx)
	return booking, nil
}

func (s *bookingService) CheckIn(ctx context.Context, bookingID uint) (*models.Booking, error) {
	booking, err := s.transition(ctx, bookingID, models.BookingReserved, models.BookingCheckedIn)
	if err != nil {
		return nil, err
	}
	// Display aid only; availability still comes from the index.
	_ = s.rooms.UpdateStatus(ctx, booking.RoomID, models.RoomOccupied)
	return booking, nil
}

func (s *bookingService) CheckOut(ctx context.Context, bookingID uint) (*models.Booking, error) {
	booking, err := s.transition(ctx, bookingID, models.BookingCheckedIn, models.BookingCheckedOut)
	if err != nil {
		return nil, err
	}
	s.idx.Remove(booking.ID)
	s.cache.Invalidate(ctx)
	_ = s.rooms.UpdateStatus(ctx, booking.RoomID, models.RoomAvailable)
	return booking, nil
}

// Cancel frees the booking's interval immediately.
func (s *bookingService) Cancel(ctx context.Context, bookingID uint) (*models.Booking, error) {
	var booking *models.Booking
	err := s.bookings.Transaction(ctx, func(tx *gorm.DB) error {
		b, err := s.bookings.FindByIDForUpdate(ctx, tx, bookingID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBookingNotFound
			}
			return err
		}
		if !b.Status.Occupies() {
			return ErrInvalidTransition
		}
		if err := s.bookings.UpdateStatus(ctx, tx, b.ID, models.BookingCancelled); err != nil {
			return err
		}
		b.Status = models.BookingCancelled
		booking = b
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.idx.Remove(booking.ID)
	s.cache.Invalidate(ctx)
	metrics.IncBookingCancelled()
	s.publish("booking.cancelled", booking)
	return booking, nil
}

func (s *bookingService) GetBooking(ctx context.Context, bookingID uint) (*models.Booking, error) {
	booking, err := s.bookings.FindByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return booking, nil
}

func (s *bookingService) ListByCustomer(ctx context.Context, customerID uint) ([]models.Booking, error) {
	return s.bookings.ListByCustomer(ctx, customerID)
}

func (s *bookingService) transition(ctx context.Context, bookingID uint, from, to models.BookingStatus) (*models.Booking, error) {
	var booking *models.Booking
	err := s.bookings.Transaction(ctx, func(tx *gorm.DB) error {
		b, err := s.bookings.FindByIDForUpdate(ctx, tx, bookingID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBookingNotFound
			}
			return err
		}
		if b.Status != from {
			return ErrInvalidTransition
		}
		if err := s.bookings.UpdateStatus(ctx, tx, b.ID, to); err != nil {
			return err
		}
		b.Status = to
		booking = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	return booking, nil
}

func (s *bookingService) publish(routingKey string, payload any) {
	if s.publisher == nil {
		return
	}
	_ = s.publisher.Publish(routingKey, payload)
}
