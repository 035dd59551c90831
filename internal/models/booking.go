package models

import "time"

type BookingStatus string

const (
	BookingReserved   BookingStatus = "reserved"
	BookingCheckedIn  BookingStatus = "checked_in"
	BookingCheckedOut BookingStatus = "checked_out"
	BookingCancelled  BookingStatus = "cancelled"
)

// Occupies reports whether a booking in this status holds its room
// interval. Cancelled and checked-out bookings free the interval.
func (s BookingStatus) Occupies() bool {
	return s == BookingReserved || s == BookingCheckedIn
}

// Booking holds a half-open stay interval [Checkin, Checkout): the
// checkout day itself is not occupied, so same-day turnover is allowed.
type Booking struct {
	ID         uint          `gorm:"primaryKey" json:"id"`
	Ref        string        `gorm:"type:uuid;uniqueIndex;not null" json:"ref"`
	RoomID     uint          `gorm:"not null;index" json:"room_id"`
	CustomerID uint          `gorm:"not null;index" json:"customer_id"`
	Checkin    time.Time     `gorm:"not null" json:"checkin"`
	Checkout   time.Time     `gorm:"not null" json:"checkout"`
	Status     BookingStatus `gorm:"type:varchar(20);not null;default:'reserved'" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Room     *Room     `gorm:"foreignKey:RoomID" json:"room,omitempty"`
	Customer *Customer `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
}
