package audit

import (
	"encoding/json"
	"fmt"

	"restaurant-hub/internal/models"

	"gorm.io/gorm"
)

const (
	EntityMenuItem = "menu_item"
	EntityTable    = "table"
	EntityOrder    = "order"
)

type LogOptions struct {
	RestaurantID string
	UserID       string
	UserName     string
	EntityType   string
	EntityID     string
	Action       models.AuditAction
	Description  string
	Before       any
	After        any
}

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

func (s *Service) WriteLog(opts LogOptions) error {
	entry := models.AuditLog{
		RestaurantID: opts.RestaurantID,
		UserID:       opts.UserID,
		UserName:     opts.UserName,
		EntityType:   opts.EntityType,
		EntityID:     opts.EntityID,
		Action:       opts.Action,
		Description:  opts.Description,
		BeforeData:   snapshot(opts.Before),
		AfterData:    snapshot(opts.After),
	}

	if err := s.db.Create(&entry).Error; err != nil {
		return fmt.Errorf("write audit log: %w", err)
	}
	return nil
}

type Filter struct {
	EntityType string
	EntityID   string
	Limit      int
}

// List returns the restaurant's entries, newest first.
func (s *Service) List(restaurantID string, f Filter) ([]models.AuditLog, error) {
	q := s.db.Model(&models.AuditLog{}).Where("restaurant_id = ?", restaurantID)
	if f.EntityType != "" {
		q = q.Where("entity_type = ?", f.EntityType)
	}
	if f.EntityID != "" {
		q = q.Where("entity_id = ?", f.EntityID)
	}
	limit := f.Limit
	if limit <= 0 || limit > 500 {
		limit = 100
	}

	var logs []models.AuditLog
	if err := q.Order("id desc").Limit(limit).Find(&logs).Error; err != nil {
		return nil, fmt.Errorf("list audit logs: %w", err)
	}
	return logs, nil
}

// snapshot encodes v as JSON, "null" when absent or unencodable.
func snapshot(v any) string {
	if v == nil {
		return "null"
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "null"
	}
	return string(b)
}
