package models

import "time"

type MenuItem struct {
	ID           string    `gorm:"primaryKey;size:64" json:"id"`
	RestaurantID string    `gorm:"size:64;index;not null" json:"restaurantId"`
	Name         string    `gorm:"size:100;not null" json:"name"`
	Description  string    `gorm:"size:500" json:"description"`
	Price        float64   `gorm:"not null" json:"price"`
	Category     string    `gorm:"size:100;index;not null" json:"category"`
	Image        string    `gorm:"size:500" json:"image"`
	CreatedAt    time.Time `json:"-"`
	UpdatedAt    time.Time `json:"-"`
}
