package models

import "time"

type RoomStatus string

const (
	RoomAvailable   RoomStatus = "available"
	RoomOccupied    RoomStatus = "occupied"
	RoomMaintenance RoomStatus = "maintenance"
)

// RoomType groups rooms that share capacity and nightly price.
type RoomType struct {
	ID           uint    `gorm:"primaryKey" json:"id"`
	Name         string  `gorm:"uniqueIndex;not null" json:"name"`
	Capacity     int     `gorm:"not null" json:"capacity"`
	NightlyPrice float64 `gorm:"not null" json:"nightly_price"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Room's Status is a front-desk display aid only. Whether a room is free
// for a date range is decided by the interval index over its bookings,
// never by this flag.
type Room struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	RoomNumber string     `gorm:"uniqueIndex;not null" json:"room_number"`
	RoomTypeID uint       `gorm:"not null;index" json:"room_type_id"`
	Status     RoomStatus `gorm:"type:varchar(20);not null;default:'available'" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	RoomType *RoomType `gorm:"foreignKey:RoomTypeID" json:"room_type,omitempty"`
}
