package models

import "time"

type ServiceType string

const (
	// ServiceFixed has one flat price per unit ordered.
	ServiceFixed ServiceType = "fixed"
	// ServicePerUnit is priced per measured unit (e.g. per kg of laundry);
	// the caller supplies the measured amount with each order line.
	ServicePerUnit ServiceType = "per_unit"
	// ServiceSelectable carries named package options, each with its own
	// price; the caller must choose exactly one.
	ServiceSelectable ServiceType = "selectable"
)

type FulfillmentType string

const (
	FulfillmentDirect        FulfillmentType = "direct"
	FulfillmentStaffAssisted FulfillmentType = "staff_assisted"
)

// Service is an ancillary offering (spa, laundry, airport pickup...).
// FulfillmentType routes the work operationally and never affects price.
type Service struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	Name            string          `gorm:"not null" json:"name"`
	Type            ServiceType     `gorm:"type:varchar(20);not null" json:"type"`
	FulfillmentType FulfillmentType `gorm:"type:varchar(20);not null;default:'direct'" json:"fulfillment_type"`

	// Price is the flat price for fixed services and the per-unit price for
	// per_unit services. Selectable services are priced by their options.
	Price    float64 `json:"price"`
	UnitName string  `json:"unit_name,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Options []ServiceOption `gorm:"foreignKey:ServiceID;constraint:OnDelete:CASCADE" json:"options,omitempty"`
}

type ServiceOption struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	ServiceID uint    `gorm:"not null;index" json:"service_id"`
	Name      string  `gorm:"not null" json:"name"`
	Price     float64 `gorm:"not null" json:"price"`
}

// OptionByName returns the currently configured option with the given
// name, or nil when no such option exists.
func (s *Service) OptionByName(name string) *ServiceOption {
	for i := range s.Options {
		if s.Options[i].Name == name {
			return &s.Options[i]
		}
	}
	return nil
}
