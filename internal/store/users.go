package store

import (
	"strings"

	"restaurant-hub/internal/models"
)

// FindUserByEmail matches email case-insensitively.
func (s *Store) FindUserByEmail(email string) (*models.User, error) {
	var u models.User
	err := s.db.Where("lower(email) = ?", strings.ToLower(strings.TrimSpace(email))).First(&u).Error
	if err != nil {
		return nil, notFound(err, "user")
	}
	return &u, nil
}

func (s *Store) FindUser(id string) (*models.User, error) {
	var u models.User
	if err := s.db.First(&u, "id = ?", id).Error; err != nil {
		return nil, notFound(err, "user")
	}
	return &u, nil
}

// FindRestaurantByCode matches the join code exactly, case included.
func (s *Store) FindRestaurantByCode(code string) (*models.Restaurant, error) {
	var r models.Restaurant
	if err := s.db.Where("code = ?", code).First(&r).Error; err != nil {
		return nil, notFound(err, "restaurant")
	}
	return &r, nil
}

func (s *Store) FindRestaurant(id string) (*models.Restaurant, error) {
	var r models.Restaurant
	if err := s.db.First(&r, "id = ?", id).Error; err != nil {
		return nil, notFound(err, "restaurant")
	}
	return &r, nil
}
