package models

import "time"

type TableStatus string

const (
	TableAvailable TableStatus = "available"
	TableOccupied  TableStatus = "occupied"
	TableReserved  TableStatus = "reserved"
)

// Reservation is present on a table iff its status is reserved.
type Reservation struct {
	Name  string    `json:"name"`
	Time  time.Time `json:"time"`
	Phone string    `json:"phone"`
}

type Table struct {
	ID           string       `gorm:"primaryKey;size:64" json:"id"`
	RestaurantID string       `gorm:"size:64;index;not null" json:"restaurantId"`
	Number       int          `gorm:"not null" json:"number"`
	Capacity     int          `gorm:"not null" json:"capacity"`
	Status       TableStatus  `gorm:"size:20;not null" json:"status"`
	Reservation  *Reservation `gorm:"serializer:json" json:"reservation,omitempty"`
	CreatedAt    time.Time    `json:"-"`
	UpdatedAt    time.Time    `json:"-"`
}
