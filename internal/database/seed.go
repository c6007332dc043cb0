package database

import (
	"fmt"
	"time"

	"restaurant-hub/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type fixtureUser struct {
	ID           string
	Name         string
	Email        string
	Password     string
	RestaurantID string
}

var fixtureUsers = []fixtureUser{
	{ID: "user1", Name: "Italian Restaurant Owner", Email: "italian@example.com", Password: "password123", RestaurantID: "rest1"},
	{ID: "user2", Name: "Sushi Restaurant Owner", Email: "sushi@example.com", Password: "password123", RestaurantID: "rest2"},
}

var fixtureRestaurants = []models.Restaurant{
	{ID: "rest1", Name: "Bella Italia", Address: "123 Italian Street, Foodville", Phone: "555-123-4567", Logo: "https://picsum.photos/seed/italian/200", OwnerID: "user1", Code: "ITALIA123"},
	{ID: "rest2", Name: "Sushi Paradise", Address: "456 Japanese Avenue, Foodville", Phone: "555-987-6543", Logo: "https://picsum.photos/seed/sushi/200", OwnerID: "user2", Code: "SUSHI456"},
}

var fixtureMenuItems = []models.MenuItem{
	{ID: "item1", RestaurantID: "rest1", Name: "Margherita Pizza", Description: "Classic pizza with tomato sauce, mozzarella, and basil", Price: 12.99, Category: "Pizza", Image: "https://picsum.photos/seed/pizza1/300/200"},
	{ID: "item2", RestaurantID: "rest1", Name: "Spaghetti Carbonara", Description: "Pasta with eggs, cheese, pancetta, and black pepper", Price: 14.99, Category: "Pasta", Image: "https://picsum.photos/seed/pasta1/300/200"},
	{ID: "item3", RestaurantID: "rest1", Name: "Tiramisu", Description: "Coffee-flavored Italian dessert", Price: 7.99, Category: "Dessert", Image: "https://picsum.photos/seed/dessert1/300/200"},
	{ID: "item4", RestaurantID: "rest1", Name: "Caprese Salad", Description: "Salad with tomatoes, mozzarella, and basil", Price: 9.99, Category: "Appetizer", Image: "https://picsum.photos/seed/salad1/300/200"},
	{ID: "item5", RestaurantID: "rest2", Name: "California Roll", Description: "Crab, avocado, and cucumber roll", Price: 8.99, Category: "Maki", Image: "https://picsum.photos/seed/sushi1/300/200"},
	{ID: "item6", RestaurantID: "rest2", Name: "Salmon Nigiri", Description: "Fresh salmon over pressed rice", Price: 5.99, Category: "Nigiri", Image: "https://picsum.photos/seed/salmon1/300/200"},
	{ID: "item7", RestaurantID: "rest2", Name: "Miso Soup", Description: "Traditional Japanese soup with tofu and seaweed", Price: 3.99, Category: "Soup", Image: "https://picsum.photos/seed/soup1/300/200"},
	{ID: "item8", RestaurantID: "rest2", Name: "Green Tea Ice Cream", Description: "Refreshing green tea flavored ice cream", Price: 4.99, Category: "Dessert", Image: "https://picsum.photos/seed/icecream1/300/200"},
}

func fixtureTables() []models.Table {
	return []models.Table{
		{ID: "table1", RestaurantID: "rest1", Number: 1, Capacity: 2, Status: models.TableAvailable},
		{ID: "table2", RestaurantID: "rest1", Number: 2, Capacity: 4, Status: models.TableOccupied},
		{ID: "table3", RestaurantID: "rest1", Number: 3, Capacity: 6, Status: models.TableReserved, Reservation: &models.Reservation{
			Name: "Smith Family", Time: fixtureTime("2023-06-15T19:00:00"), Phone: "555-111-2222",
		}},
		{ID: "table4", RestaurantID: "rest1", Number: 4, Capacity: 4, Status: models.TableAvailable},
		{ID: "table5", RestaurantID: "rest2", Number: 1, Capacity: 2, Status: models.TableOccupied},
		{ID: "table6", RestaurantID: "rest2", Number: 2, Capacity: 4, Status: models.TableAvailable},
		{ID: "table7", RestaurantID: "rest2", Number: 3, Capacity: 8, Status: models.TableReserved, Reservation: &models.Reservation{
			Name: "Johnson Party", Time: fixtureTime("2023-06-16T20:00:00"), Phone: "555-333-4444",
		}},
		{ID: "table8", RestaurantID: "rest2", Number: 4, Capacity: 4, Status: models.TableAvailable},
	}
}

func fixtureOrders() []models.Order {
	return []models.Order{
		{ID: "order1", RestaurantID: "rest1", TableID: "table2", Status: models.OrderPreparing, TotalAmount: 27.98, CreatedAt: fixtureTime("2023-06-15T18:30:00"), Items: []models.OrderItem{
			{ID: "orderItem1", Position: 0, MenuItemID: "item1", Name: "Margherita Pizza", Price: 12.99, Quantity: 1},
			{ID: "orderItem2", Position: 1, MenuItemID: "item2", Name: "Spaghetti Carbonara", Price: 14.99, Quantity: 1},
		}},
		{ID: "order2", RestaurantID: "rest1", TableID: "table4", Status: models.OrderPending, TotalAmount: 9.99, CreatedAt: fixtureTime("2023-06-15T18:45:00"), Items: []models.OrderItem{
			{ID: "orderItem3", Position: 0, MenuItemID: "item4", Name: "Caprese Salad", Price: 9.99, Quantity: 1},
		}},
		{ID: "order3", RestaurantID: "rest2", TableID: "table5", Status: models.OrderServed, TotalAmount: 25.96, CreatedAt: fixtureTime("2023-06-15T19:00:00"), Items: []models.OrderItem{
			{ID: "orderItem4", Position: 0, MenuItemID: "item5", Name: "California Roll", Price: 8.99, Quantity: 2},
			{ID: "orderItem5", Position: 1, MenuItemID: "item7", Name: "Miso Soup", Price: 3.99, Quantity: 2},
		}},
		{ID: "order4", RestaurantID: "rest2", TableID: "table6", Status: models.OrderReady, TotalAmount: 23.96, CreatedAt: fixtureTime("2023-06-15T19:15:00"), Items: []models.OrderItem{
			{ID: "orderItem6", Position: 0, MenuItemID: "item6", Name: "Salmon Nigiri", Price: 5.99, Quantity: 4},
		}},
	}
}

func fixtureTime(v string) time.Time {
	t, err := time.ParseInLocation("2006-01-02T15:04:05", v, time.Local)
	if err != nil {
		panic(err)
	}
	return t
}

// Seed loads the fixtures. Records that already exist are left alone, so
// seeding twice is harmless.
func Seed(db *gorm.DB, bcryptCost int) error {
	return db.Transaction(func(tx *gorm.DB) error {
		for _, r := range fixtureRestaurants {
			if err := tx.Where(models.Restaurant{ID: r.ID}).FirstOrCreate(&r).Error; err != nil {
				return fmt.Errorf("restaurant %s: %w", r.ID, err)
			}
		}

		for _, u := range fixtureUsers {
			var count int64
			if err := tx.Model(&models.User{}).Where("id = ?", u.ID).Count(&count).Error; err != nil {
				return fmt.Errorf("user %s: %w", u.ID, err)
			}
			if count > 0 {
				continue
			}
			hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcryptCost)
			if err != nil {
				return fmt.Errorf("user %s: hash password: %w", u.ID, err)
			}
			user := models.User{
				ID:           u.ID,
				Name:         u.Name,
				Email:        u.Email,
				PasswordHash: string(hash),
				RestaurantID: u.RestaurantID,
			}
			if err := tx.Create(&user).Error; err != nil {
				return fmt.Errorf("user %s: %w", u.ID, err)
			}
		}

		for _, m := range fixtureMenuItems {
			if err := tx.Where(models.MenuItem{ID: m.ID}).FirstOrCreate(&m).Error; err != nil {
				return fmt.Errorf("menu item %s: %w", m.ID, err)
			}
		}

		for _, t := range fixtureTables() {
			if err := tx.Where(models.Table{ID: t.ID}).FirstOrCreate(&t).Error; err != nil {
				return fmt.Errorf("table %s: %w", t.ID, err)
			}
		}

		for _, o := range fixtureOrders() {
			if err := tx.Where(models.Order{ID: o.ID}).FirstOrCreate(&o).Error; err != nil {
				return fmt.Errorf("order %s: %w", o.ID, err)
			}
		}
		return nil
	})
}
