package models

import "time"

type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderPreparing OrderStatus = "preparing"
	OrderReady     OrderStatus = "ready"
	OrderServed    OrderStatus = "served"
	OrderPaid      OrderStatus = "paid"
)

type Order struct {
	ID           string      `gorm:"primaryKey;size:64" json:"id"`
	RestaurantID string      `gorm:"size:64;index;not null" json:"restaurantId"`
	TableID      string      `gorm:"size:64;index;not null" json:"tableId"`
	Items        []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	Status       OrderStatus `gorm:"size:20;index;not null" json:"status"`
	TotalAmount  float64     `gorm:"not null" json:"totalAmount"` // fixed at creation
	CreatedAt    time.Time   `json:"createdAt"`
	UpdatedAt    time.Time   `json:"-"`
}

// OrderItem copies the menu item's name and price at the time of ordering.
type OrderItem struct {
	ID         string  `gorm:"primaryKey;size:64" json:"id"`
	OrderID    string  `gorm:"size:64;index;not null" json:"-"`
	Position   int     `gorm:"not null" json:"-"`
	MenuItemID string  `gorm:"size:64;not null" json:"menuItemId"`
	Name       string  `gorm:"size:100;not null" json:"name"`
	Price      float64 `gorm:"not null" json:"price"`
	Quantity   int     `gorm:"not null" json:"quantity"`
}
