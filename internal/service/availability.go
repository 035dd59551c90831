package service

import (
	"context"
	"time"

	"github.com/hoteldesk/frontdesk/internal/cache"
	"github.com/hoteldesk/frontdesk/internal/interval"
	"github.com/hoteldesk/frontdesk/internal/models"
	"github.com/hoteldesk/frontdesk/internal/repository"
)

type AvailabilityService interface {
	// FindAvailableRooms returns the rooms free for the half-open stay
	// window [checkin, checkout), optionally narrowed to one room type.
	// An empty result is a valid answer, not an error.
	FindAvailableRooms(ctx context.Context, checkin, checkout time.Time, roomTypeID *uint) ([]models.Room, error)
}

type availabilityService struct {
	rooms repository.RoomRepository
	idx   *interval.Index
	cache *cache.Availability
}

func NewAvailabilityService(rooms repository.RoomRepository, idx *interval.Index, c *cache.Availability) AvailabilityService {
	return &availabilityService{rooms: rooms, idx: idx, cache: c}
}

func (s *availabilityService) FindAvailableRooms(ctx context.Context, checkin, checkout time.Time, roomTypeID *uint) ([]models.Room, error) {
	if !checkin.Before(checkout) {
		return nil, ErrInvalidDateRange
	}

	if rooms, ok := s.cache.Get(ctx, checkin, checkout, roomTypeID); ok {
		return rooms, nil
	}

	// ListBookable already excludes maintenance rooms and orders by room
	// number, so the result is stable between the date-selection and
	// room-selection steps of one booking flow.
	candidates, err := s.rooms.ListBookable(ctx, roomTypeID)
	if err != nil {
		return nil, err
	}

	available := make([]models.Room, 0, len(candidates))
	for _, room := range candidates {
		if s.idx.QueryOverlap(room.ID, checkin, checkout, 0) {
			continue
		}
		available = append(available, room)
	}

	s.cache.Set(ctx, checkin, checkout, roomTypeID, available)
	return available, nil
}
