package store

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"restaurant-hub/internal/models"
	"restaurant-hub/internal/status"
	"restaurant-hub/internal/validation"

	"gorm.io/gorm"
)

// OrderLine is one requested menu item of a new order.
type OrderLine struct {
	MenuItemID string `json:"menu_item_id"`
	Quantity   int    `json:"quantity"`
}

func withItems(db *gorm.DB) *gorm.DB {
	return db.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("position asc")
	})
}

// ListOrders returns the restaurant's orders, oldest first. An empty filter
// returns every status.
func (s *Store) ListOrders(restaurantID string, filter models.OrderStatus) ([]models.Order, error) {
	q := withItems(s.db).Where("restaurant_id = ?", restaurantID)
	if filter != "" {
		q = q.Where("status = ?", filter)
	}

	var orders []models.Order
	if err := q.Order("created_at asc, id asc").Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

func (s *Store) GetOrder(restaurantID, id string) (*models.Order, error) {
	return getOrder(s.db, restaurantID, id)
}

func getOrder(db *gorm.DB, restaurantID, id string) (*models.Order, error) {
	var o models.Order
	if err := withItems(db).Where("restaurant_id = ? AND id = ?", restaurantID, id).First(&o).Error; err != nil {
		return nil, notFound(err, "order")
	}
	return &o, nil
}

// CreateOrder places a pending order for a table. Names and prices are
// copied from the restaurant's menu; the total is fixed here and never
// recomputed.
func (s *Store) CreateOrder(restaurantID, tableID string, lines []OrderLine) (*models.Order, error) {
	var created *models.Order
	err := s.db.Transaction(func(tx *gorm.DB) error {
		errs := validation.New()

		if tableID == "" {
			errs.Add("table_id", "Table is required")
		} else if _, err := getTable(tx, restaurantID, tableID); err != nil {
			if !isNotFound(err) {
				return err
			}
			errs.Add("table_id", "Table not found")
		}
		if len(lines) == 0 {
			errs.Add("items", "At least one item is required")
		}

		order := models.Order{
			ID:           NewID("order"),
			RestaurantID: restaurantID,
			TableID:      tableID,
			Status:       models.OrderPending,
		}

		var total float64
		for i, line := range lines {
			field := "items[" + strconv.Itoa(i) + "]"
			if line.Quantity < 1 {
				errs.Add(field+".quantity", "Quantity must be at least 1")
				continue
			}
			var item models.MenuItem
			if err := tx.Where("restaurant_id = ? AND id = ?", restaurantID, line.MenuItemID).First(&item).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					errs.Add(field+".menu_item_id", "Menu item not found")
					continue
				}
				return fmt.Errorf("create order: %w", err)
			}
			order.Items = append(order.Items, models.OrderItem{
				ID:         NewID("orderItem"),
				Position:   i,
				MenuItemID: item.ID,
				Name:       item.Name,
				Price:      item.Price,
				Quantity:   line.Quantity,
			})
			total += item.Price * float64(line.Quantity)
		}

		if err := errs.Err(); err != nil {
			return err
		}

		order.TotalAmount = math.Round(total*100) / 100
		if err := tx.Create(&order).Error; err != nil {
			return fmt.Errorf("create order: %w", err)
		}
		created = &order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// TransitionOrder moves an order to the target status if that is the legal
// successor of its current one. The write is guarded on the status that was
// validated, so a concurrent change yields ErrStatusConflict.
func (s *Store) TransitionOrder(restaurantID, id string, to models.OrderStatus) (before, after *models.Order, err error) {
	o, err := getOrder(s.db, restaurantID, id)
	if err != nil {
		return nil, nil, err
	}
	if err := status.ValidateOrderTransition(o.Status, to); err != nil {
		return nil, nil, err
	}

	res := s.db.Model(&models.Order{}).
		Where("restaurant_id = ? AND id = ? AND status = ?", restaurantID, id, o.Status).
		Update("status", to)
	if res.Error != nil {
		return nil, nil, fmt.Errorf("update order: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, nil, ErrStatusConflict
	}

	updated, err := getOrder(s.db, restaurantID, id)
	if err != nil {
		return nil, nil, err
	}
	return o, updated, nil
}

// AdvanceOrder applies the single forward action offered for the order.
func (s *Store) AdvanceOrder(restaurantID, id string) (before, after *models.Order, err error) {
	o, err := getOrder(s.db, restaurantID, id)
	if err != nil {
		return nil, nil, err
	}
	next, ok := status.NextOrderStatus(o.Status)
	if !ok {
		return nil, nil, &status.TransitionError{Entity: "order", From: string(o.Status), To: "", Err: status.ErrIllegalTransition}
	}
	return s.TransitionOrder(restaurantID, id, next)
}

// PopularItem is a menu item ranked by quantity ordered.
type PopularItem struct {
	MenuItemID string `json:"menu_item_id"`
	Name       string `json:"name"`
	Quantity   int    `json:"quantity"`
}

// PopularMenuItems ranks the restaurant's current menu items by ordered
// quantity, ties broken by name.
func (s *Store) PopularMenuItems(restaurantID string, limit int) ([]PopularItem, error) {
	items := make([]PopularItem, 0, limit)
	err := s.db.Table("menu_items").
		Select("menu_items.id AS menu_item_id, menu_items.name AS name, COALESCE(SUM(order_items.quantity), 0) AS quantity").
		Joins("LEFT JOIN order_items ON order_items.menu_item_id = menu_items.id").
		Where("menu_items.restaurant_id = ?", restaurantID).
		Group("menu_items.id, menu_items.name").
		Order("quantity desc, name asc").
		Limit(limit).
		Scan(&items).Error
	if err != nil {
		return nil, fmt.Errorf("popular menu items: %w", err)
	}
	return items, nil
}
