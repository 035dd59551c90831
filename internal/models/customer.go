package models

import "time"

type Customer struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	FullName       string    `gorm:"not null" json:"full_name"`
	Phone          string    `json:"phone"`
	Email          string    `json:"email"`
	BirthDate      time.Time `json:"birth_date"`
	MembershipTier string    `gorm:"type:varchar(20)" json:"membership_tier"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
