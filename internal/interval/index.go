// Package interval tracks, per room, the date ranges occupied by active
// bookings and answers overlap queries against them. All intervals are
// half-open [start, end): a booking checking out on day X never blocks
// one checking in on day X.
package interval

import (
	"sort"
	"sync"
	"time"
)

type entry struct {
	bookingID uint
	start     time.Time
	end       time.Time
}

// roomSet holds one room's intervals sorted by start. Stored intervals
// never overlap each other, so their ends are sorted too and an overlap
// query can stop scanning as soon as an end falls at or before the
// query start.
type roomSet struct {
	mu   sync.RWMutex // guards ivs
	gate sync.Mutex   // serializes check-then-insert sequences for the room
	ivs  []entry
}

// Index is safe for concurrent use. Reads run under per-room read locks;
// a booking writer wraps its whole check-then-insert sequence in
// WithRoomLock so two concurrent requests for the same room cannot both
// pass the overlap check.
type Index struct {
	mu        sync.RWMutex
	rooms     map[uint]*roomSet
	byBooking map[uint]uint // bookingID -> roomID
}

func New() *Index {
	return &Index{
		rooms:     make(map[uint]*roomSet),
		byBooking: make(map[uint]uint),
	}
}

func (x *Index) room(roomID uint) *roomSet {
	x.mu.RLock()
	rs, ok := x.rooms[roomID]
	x.mu.RUnlock()
	if ok {
		return rs
	}
	x.mu.Lock()
	defer x.mu.Unlock()
	if rs, ok = x.rooms[roomID]; !ok {
		rs = &roomSet{}
		x.rooms[roomID] = rs
	}
	return rs
}

// WithRoomLock runs fn while holding the room's reservation gate. Queries
// and inserts for the same room made inside fn are thereby atomic as a
// unit with respect to other WithRoomLock callers.
func (x *Index) WithRoomLock(roomID uint, fn func() error) error {
	rs := x.room(roomID)
	rs.gate.Lock()
	defer rs.gate.Unlock()
	return fn()
}

// QueryOverlap reports whether [start, end) overlaps any stored interval
// for the room, ignoring the interval owned by excludeBookingID (pass 0
// to exclude nothing). Cost is O(log n + k) for n intervals and k
// overlapping candidates.
func (x *Index) QueryOverlap(roomID uint, start, end time.Time, excludeBookingID uint) bool {
	rs := x.room(roomID)
	rs.mu.RLock()
	defer rs.mu.RUnlock()

	// First interval starting at or after the query end; everything from
	// there on begins too late to overlap.
	hi := sort.Search(len(rs.ivs), func(i int) bool {
		return !rs.ivs[i].start.Before(end)
	})
	for i := hi - 1; i >= 0 && rs.ivs[i].end.After(start); i-- {
		if rs.ivs[i].bookingID != excludeBookingID {
			return true
		}
	}
	return false
}

// Insert records the booking's interval. The caller is responsible for
// having established, under WithRoomLock, that it does not overlap.
func (x *Index) Insert(bookingID, roomID uint, start, end time.Time) {
	rs := x.room(roomID)
	rs.mu.Lock()
	pos := sort.Search(len(rs.ivs), func(i int) bool {
		return rs.ivs[i].start.After(start)
	})
	rs.ivs = append(rs.ivs, entry{})
	copy(rs.ivs[pos+1:], rs.ivs[pos:])
	rs.ivs[pos] = entry{bookingID: bookingID, start: start, end: end}
	rs.mu.Unlock()

	x.mu.Lock()
	x.byBooking[bookingID] = roomID
	x.mu.Unlock()
}

// Remove drops the booking's interval, freeing the range immediately.
// Removing an unknown booking is a no-op.
func (x *Index) Remove(bookingID uint) {
	x.mu.Lock()
	roomID, ok := x.byBooking[bookingID]
	if ok {
		delete(x.byBooking, bookingID)
	}
	x.mu.Unlock()
	if !ok {
		return
	}

	rs := x.room(roomID)
	rs.mu.Lock()
	defer rs.mu.Unlock()
	for i := range rs.ivs {
		if rs.ivs[i].bookingID == bookingID {
			rs.ivs = append(rs.ivs[:i], rs.ivs[i+1:]...)
			return
		}
	}
}

// Replace atomically swaps a booking's interval for a new range on the
// same room, used when a booking's dates are edited.
func (x *Index) Replace(bookingID, roomID uint, start, end time.Time) {
	x.Remove(bookingID)
	x.Insert(bookingID, roomID, start, end)
}

// Len returns the number of tracked intervals across all rooms.
func (x *Index) Len() int {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return len(x.byBooking)
}
