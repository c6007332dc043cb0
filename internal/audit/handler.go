package audit

import (
	"log/slog"
	"strconv"
	"time"

	"restaurant-hub/internal/auth"
	"restaurant-hub/internal/models"

	"github.com/gofiber/fiber/v2"
)

type AuditLogResponse struct {
	ID          uint               `json:"id"`
	CreatedAt   string             `json:"created_at"`
	UserID      string             `json:"user_id"`
	UserName    string             `json:"user_name"`
	EntityType  string             `json:"entity_type"`
	EntityID    string             `json:"entity_id"`
	Action      models.AuditAction `json:"action"`
	Description string             `json:"description"`
	BeforeData  string             `json:"before_data"`
	AfterData   string             `json:"after_data"`
}

// GET /api/audit-logs?entity_type=table&entity_id=table1&limit=50
func ListAuditLogsHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		restaurantID, err := auth.RestaurantScope(c)
		if err != nil {
			return err
		}

		f := Filter{
			EntityType: c.Query("entity_type"),
			EntityID:   c.Query("entity_id"),
		}
		if v := c.Query("limit"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n <= 0 {
				return fiber.NewError(fiber.StatusBadRequest, "limit must be a positive number")
			}
			f.Limit = n
		}

		logs, err := svc.List(restaurantID, f)
		if err != nil {
			return err
		}

		res := make([]AuditLogResponse, 0, len(logs))
		for _, l := range logs {
			res = append(res, AuditLogResponse{
				ID:          l.ID,
				CreatedAt:   l.CreatedAt.Format(time.RFC3339),
				UserID:      l.UserID,
				UserName:    l.UserName,
				EntityType:  l.EntityType,
				EntityID:    l.EntityID,
				Action:      l.Action,
				Description: l.Description,
				BeforeData:  l.BeforeData,
				AfterData:   l.AfterData,
			})
		}
		return c.JSON(res)
	}
}

// Record writes an entry attributed to the request's signed-in user. A failed
// write is logged and does not fail the request.
func Record(c *fiber.Ctx, svc *Service, log *slog.Logger, opts LogOptions) {
	if mgr, err := auth.Session(c); err == nil {
		if u := mgr.User(); u != nil {
			opts.UserID = u.ID
			opts.UserName = u.Name
			if opts.RestaurantID == "" {
				opts.RestaurantID = u.RestaurantID
			}
		}
	}
	if err := svc.WriteLog(opts); err != nil {
		log.Error("audit log write failed",
			"entity_type", opts.EntityType,
			"entity_id", opts.EntityID,
			"action", opts.Action,
			"error", err,
		)
	}
}
