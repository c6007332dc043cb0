package store

import (
	"fmt"

	"restaurant-hub/internal/models"
	"restaurant-hub/internal/status"

	"gorm.io/gorm"
)

func (s *Store) ListTables(restaurantID string) ([]models.Table, error) {
	var tables []models.Table
	if err := s.db.Where("restaurant_id = ?", restaurantID).
		Order("number asc").
		Find(&tables).Error; err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}
	return tables, nil
}

func (s *Store) GetTable(restaurantID, id string) (*models.Table, error) {
	return getTable(s.db, restaurantID, id)
}

func getTable(db *gorm.DB, restaurantID, id string) (*models.Table, error) {
	var t models.Table
	if err := db.Where("restaurant_id = ? AND id = ?", restaurantID, id).First(&t).Error; err != nil {
		return nil, notFound(err, "table")
	}
	return &t, nil
}

// CreateTable inserts t as an available table. The number must be unused
// within t's restaurant; other restaurants may use the same number.
func (s *Store) CreateTable(t *models.Table) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Table{}).
			Where("restaurant_id = ? AND number = ?", t.RestaurantID, t.Number).
			Count(&count).Error; err != nil {
			return fmt.Errorf("create table: %w", err)
		}
		if count > 0 {
			return ErrTableNumberTaken
		}

		if t.ID == "" {
			t.ID = NewID("table")
		}
		t.Status = models.TableAvailable
		t.Reservation = nil
		if err := tx.Create(t).Error; err != nil {
			return fmt.Errorf("create table: %w", err)
		}
		return nil
	})
}

// TransitionTable moves a table to the target status through the table state
// machine and returns the table before and after the change.
func (s *Store) TransitionTable(restaurantID, id string, to models.TableStatus, r *models.Reservation) (before, after *models.Table, err error) {
	err = s.db.Transaction(func(tx *gorm.DB) error {
		t, err := getTable(tx, restaurantID, id)
		if err != nil {
			return err
		}
		prev := *t

		if err := status.ApplyTableTransition(t, to, r); err != nil {
			return err
		}

		if err := tx.Save(t).Error; err != nil {
			return fmt.Errorf("update table: %w", err)
		}

		before, after = &prev, t
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return before, after, nil
}
