package models

import "time"

// User is a restaurant owner account. Users are seeded from fixtures and are
// read-only at runtime.
type User struct {
	ID           string    `gorm:"primaryKey;size:64" json:"id"`
	Name         string    `gorm:"size:100;not null" json:"name"`
	Email        string    `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	RestaurantID string    `gorm:"size:64;index;not null" json:"restaurantId"`
	CreatedAt    time.Time `json:"-"`
}
