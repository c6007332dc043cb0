package models

import "time"

type Restaurant struct {
	ID        string    `gorm:"primaryKey;size:64" json:"id"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	Address   string    `gorm:"size:255" json:"address"`
	Phone     string    `gorm:"size:50" json:"phone"`
	Logo      string    `gorm:"size:255" json:"logo"`
	OwnerID   string    `gorm:"size:64" json:"ownerId"`
	Code      string    `gorm:"size:50;uniqueIndex;not null" json:"code"` // case-sensitive join code
	CreatedAt time.Time `json:"-"`
}
