package store

import (
	"fmt"

	"restaurant-hub/internal/models"
)

func (s *Store) ListMenuItems(restaurantID string) ([]models.MenuItem, error) {
	var items []models.MenuItem
	if err := s.db.Where("restaurant_id = ?", restaurantID).
		Order("created_at asc, id asc").
		Find(&items).Error; err != nil {
		return nil, fmt.Errorf("list menu items: %w", err)
	}
	return items, nil
}

func (s *Store) GetMenuItem(restaurantID, id string) (*models.MenuItem, error) {
	var item models.MenuItem
	if err := s.db.Where("restaurant_id = ? AND id = ?", restaurantID, id).First(&item).Error; err != nil {
		return nil, notFound(err, "menu item")
	}
	return &item, nil
}

func (s *Store) CreateMenuItem(item *models.MenuItem) error {
	if item.ID == "" {
		item.ID = NewID("item")
	}
	if err := s.db.Create(item).Error; err != nil {
		return fmt.Errorf("create menu item: %w", err)
	}
	return nil
}

// UpdateMenuItem writes item back if it exists within its restaurant.
func (s *Store) UpdateMenuItem(item *models.MenuItem) error {
	res := s.db.Model(&models.MenuItem{}).
		Where("restaurant_id = ? AND id = ?", item.RestaurantID, item.ID).
		Updates(map[string]interface{}{
			"name":        item.Name,
			"description": item.Description,
			"price":       item.Price,
			"category":    item.Category,
			"image":       item.Image,
		})
	if res.Error != nil {
		return fmt.Errorf("update menu item: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("menu item: %w", ErrNotFound)
	}
	return nil
}

// DeleteMenuItem removes the item and returns what was removed.
func (s *Store) DeleteMenuItem(restaurantID, id string) (*models.MenuItem, error) {
	item, err := s.GetMenuItem(restaurantID, id)
	if err != nil {
		return nil, err
	}
	if err := s.db.Where("restaurant_id = ? AND id = ?", restaurantID, id).Delete(&models.MenuItem{}).Error; err != nil {
		return nil, fmt.Errorf("delete menu item: %w", err)
	}
	return item, nil
}

// Categories is the sorted set of category labels used by the restaurant's
// current menu. It is derived on every call, so a label disappears together
// with its last item.
func (s *Store) Categories(restaurantID string) ([]string, error) {
	categories := make([]string, 0)
	if err := s.db.Model(&models.MenuItem{}).
		Where("restaurant_id = ?", restaurantID).
		Distinct("category").
		Order("category asc").
		Pluck("category", &categories).Error; err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}
