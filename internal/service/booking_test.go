package service

import (
	"context"
	"sync"
	"testing"

	"github.com/hoteldesk/frontdesk/internal/interval"
	"github.com/hoteldesk/frontdesk/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBookingFixture(rooms ...*models.Room) (BookingService, *mockBookingRepo, *interval.Index) {
	if len(rooms) == 0 {
		rooms = []*models.Room{{ID: 1, RoomNumber: "101", Status: models.RoomAvailable}}
	}
	repo := newMockBookingRepo()
	idx := interval.New()
	svc := NewBookingService(repo, newMockRoomRepo(rooms...), idx, nil, nil)
	return svc, repo, idx
}

func TestCreateBooking_Success(t *testing.T) {
	svc, _, idx := newBookingFixture()

	booking, err := svc.CreateBooking(context.Background(), 1, 7, date("2025-09-10"), date("2025-09-12"))
	require.NoError(t, err)
	assert.NotZero(t, booking.ID)
	assert.NotEmpty(t, booking.Ref)
	assert.Equal(t, models.BookingReserved, booking.Status)
	assert.Equal(t, 1, idx.Len())
}

func TestCreateBooking_InvalidDates(t *testing.T) {
	svc, _, _ := newBookingFixture()

	_, err := svc.CreateBooking(context.Background(), 1, 7, date("2025-09-12"), date("2025-09-12"))
	assert.ErrorIs(t, err, ErrInvalidDateRange)

	_, err = svc.CreateBooking(context.Background(), 1, 7, date("2025-09-14"), date("2025-09-12"))
	assert.ErrorIs(t, err, ErrInvalidDateRange)
}

func TestCreateBooking_RoomNotFound(t *testing.T) {
	svc, _, _ := newBookingFixture()

	_, err := svc.CreateBooking(context.Background(), 99, 7, date("2025-09-10"), date("2025-09-12"))
	assert.ErrorIs(t, err, ErrRoomNotFound)
}

func TestCreateBooking_MaintenanceRejected(t *testing.T) {
	svc, _, _ := newBookingFixture(&models.Room{ID: 1, RoomNumber: "101", Status: models.RoomMaintenance})

	_, err := svc.CreateBooking(context.Background(), 1, 7, date("2025-09-10"), date("2025-09-12"))
	assert.ErrorIs(t, err, ErrRoomUnderMaintenance)
}

func TestCreateBooking_Conflict(t *testing.T) {
	svc, _, _ := newBookingFixture()

	_, err := svc.CreateBooking(context.Background(), 1, 7, date("2025-09-10"), date("2025-09-12"))
	require.NoError(t, err)

	_, err = svc.CreateBooking(context.Background(), 1, 8, date("2025-09-11"), date("2025-09-13"))
	assert.ErrorIs(t, err, ErrRoomConflict)

	// Back-to-back stay on the checkout day is fine.
	_, err = svc.CreateBooking(context.Background(), 1, 8, date("2025-09-12"), date("2025-09-14"))
	assert.NoError(t, err)
}

// Two simultaneous requests for the same room and window: exactly one
// gets the booking, the other loses the race with ErrRoomConflict.
func TestCreateBooking_ConcurrentRace(t *testing.T) {
	svc, _, idx := newBookingFixture()

	const attempts = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		wins      int
		conflicts int
	)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(customerID uint) {
			defer wg.Done()
			_, err := svc.CreateBooking(context.Background(), 1, customerID, date("2025-09-10"), date("2025-09-12"))
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				wins++
			case assert.ErrorIs(t, err, ErrRoomConflict):
				conflicts++
			}
		}(uint(i + 1))
	}
	wg.Wait()

	assert.Equal(t, 1, wins)
	assert.Equal(t, attempts-1, conflicts)
	assert.Equal(t, 1, idx.Len())
}

func TestCancel_FreesInterval(t *testing.T) {
	svc, _, idx := newBookingFixture()

	booking, err := svc.CreateBooking(context.Background(), 1, 7, date("2025-09-10"), date("2025-09-12"))
	require.NoError(t, err)

	cancelled, err := svc.Cancel(context.Background(), booking.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingCancelled, cancelled.Status)
	assert.Equal(t, 0, idx.Len())

	// The window is reusable immediately.
	_, err = svc.CreateBooking(context.Background(), 1, 8, date("2025-09-10"), date("2025-09-12"))
	assert.NoError(t, err)
}

func TestCancel_AlreadyCancelled(t *testing.T) {
	svc, _, _ := newBookingFixture()

	booking, err := svc.CreateBooking(context.Background(), 1, 7, date("2025-09-10"), date("2025-09-12"))
	require.NoError(t, err)

	_, err = svc.Cancel(context.Background(), booking.ID)
	require.NoError(t, err)

	_, err = svc.Cancel(context.Background(), booking.ID)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestReschedule_ExcludesOwnInterval(t *testing.T) {
	svc, repo, _ := newBookingFixture()

	booking, err := svc.CreateBooking(context.Background(), 1, 7, date("2025-09-10"), date("2025-09-12"))
	require.NoError(t, err)

	// Shifting by one day overlaps the booking's own old window, which
	// must not count against it.
	moved, err := svc.Reschedule(context.Background(), booking.ID, date("2025-09-11"), date("2025-09-13"))
	require.NoError(t, err)
	assert.Equal(t, date("2025-09-11"), moved.Checkin)
	assert.Equal(t, date("2025-09-13"), moved.Checkout)

	stored, err := repo.FindByID(context.Background(), booking.ID)
	require.NoError(t, err)
	assert.Equal(t, date("2025-09-11"), stored.Checkin)
}

func TestReschedule_ConflictWithOtherBooking(t *testing.T) {
	svc, _, _ := newBookingFixture()

	first, err := svc.CreateBooking(context.Background(), 1, 7, date("2025-09-10"), date("2025-09-12"))
	require.NoError(t, err)
	_, err = svc.CreateBooking(context.Background(), 1, 8, date("2025-09-15"), date("2025-09-17"))
	require.NoError(t, err)

	_, err = svc.Reschedule(context.Background(), first.ID, date("2025-09-14"), date("2025-09-16"))
	assert.ErrorIs(t, err, ErrRoomConflict)
}

func TestCheckInCheckOut_Lifecycle(t *testing.T) {
	svc, _, idx := newBookingFixture()

	booking, err := svc.CreateBooking(context.Background(), 1, 7, date("2025-09-10"), date("2025-09-12"))
	require.NoError(t, err)

	// Cannot check out before checking in.
	_, err = svc.CheckOut(context.Background(), booking.ID)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	in, err := svc.CheckIn(context.Background(), booking.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingCheckedIn, in.Status)
	// Occupied bookings still hold their interval.
	assert.Equal(t, 1, idx.Len())

	out, err := svc.CheckOut(context.Background(), booking.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingCheckedOut, out.Status)
	assert.Equal(t, 0, idx.Len())

	_, err = svc.CheckIn(context.Background(), booking.ID)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestHydrateIndex(t *testing.T) {
	repo := newMockBookingRepo()
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, nil, &models.Booking{RoomID: 1, Checkin: date("2025-09-10"), Checkout: date("2025-09-12"), Status: models.BookingReserved}))
	require.NoError(t, repo.Create(ctx, nil, &models.Booking{RoomID: 2, Checkin: date("2025-09-11"), Checkout: date("2025-09-15"), Status: models.BookingCheckedIn}))
	require.NoError(t, repo.Create(ctx, nil, &models.Booking{RoomID: 1, Checkin: date("2025-08-01"), Checkout: date("2025-08-03"), Status: models.BookingCancelled}))

	idx := interval.New()
	require.NoError(t, HydrateIndex(ctx, repo, idx))

	assert.Equal(t, 2, idx.Len())
	assert.True(t, idx.QueryOverlap(1, date("2025-09-11"), date("2025-09-13"), 0))
	assert.False(t, idx.QueryOverlap(1, date("2025-08-01"), date("2025-08-03"), 0))
}
