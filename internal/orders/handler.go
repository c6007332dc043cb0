package orders

import (
	"fmt"
	"log/slog"
	"strings"

	"restaurant-hub/internal/audit"
	"restaurant-hub/internal/auth"
	"restaurant-hub/internal/models"
	"restaurant-hub/internal/status"
	"restaurant-hub/internal/store"
	"restaurant-hub/internal/validation"

	"github.com/gofiber/fiber/v2"
)

type CreateOrderRequest struct {
	TableID string            `json:"table_id"`
	Items   []store.OrderLine `json:"items"`
}

type UpdateStatusRequest struct {
	Status models.OrderStatus `json:"status"`
}

// OrderResponse carries the single next action the dashboard may offer.
type OrderResponse struct {
	models.Order
	TableNumber int                 `json:"tableNumber,omitempty"`
	NextStatus  *models.OrderStatus `json:"nextStatus"`
}

func toResponse(o models.Order, tableNumbers map[string]int) OrderResponse {
	res := OrderResponse{Order: o, TableNumber: tableNumbers[o.TableID]}
	if next, ok := status.NextOrderStatus(o.Status); ok {
		res.NextStatus = &next
	}
	return res
}

func tableNumbers(st *store.Store, restaurantID string) (map[string]int, error) {
	list, err := st.ListTables(restaurantID)
	if err != nil {
		return nil, err
	}
	m := make(map[string]int, len(list))
	for _, t := range list {
		m[t.ID] = t.Number
	}
	return m, nil
}

// GET /api/orders?status=pending ("all" or empty for every status)
func ListOrdersHandler(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		restaurantID, err := auth.RestaurantScope(c)
		if err != nil {
			return err
		}

		var filter models.OrderStatus
		if v := strings.ToLower(strings.TrimSpace(c.Query("status"))); v != "" && v != "all" {
			filter = models.OrderStatus(v)
			if !status.IsOrderStatus(filter) {
				return validation.Field("status", "Unknown order status")
			}
		}

		list, err := st.ListOrders(restaurantID, filter)
		if err != nil {
			return err
		}
		numbers, err := tableNumbers(st, restaurantID)
		if err != nil {
			return err
		}

		res := make([]OrderResponse, 0, len(list))
		for _, o := range list {
			res = append(res, toResponse(o, numbers))
		}
		return c.JSON(res)
	}
}

// GET /api/orders/:id
func GetOrderHandler(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		restaurantID, err := auth.RestaurantScope(c)
		if err != nil {
			return err
		}

		o, err := st.GetOrder(restaurantID, c.Params("id"))
		if err != nil {
			return err
		}
		numbers, err := tableNumbers(st, restaurantID)
		if err != nil {
			return err
		}
		return c.JSON(toResponse(*o, numbers))
	}
}

// POST /api/orders
func CreateOrderHandler(st *store.Store, al *audit.Service, log *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		restaurantID, err := auth.RestaurantScope(c)
		if err != nil {
			return err
		}

		var body CreateOrderRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		o, err := st.CreateOrder(restaurantID, strings.TrimSpace(body.TableID), body.Items)
		if err != nil {
			return err
		}

		audit.Record(c, al, log, audit.LogOptions{
			RestaurantID: restaurantID,
			EntityType:   audit.EntityOrder,
			EntityID:     o.ID,
			Action:       models.AuditActionCreate,
			Description:  fmt.Sprintf("Order placed for %.2f", o.TotalAmount),
			After:        o,
		})

		numbers, err := tableNumbers(st, restaurantID)
		if err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(toResponse(*o, numbers))
	}
}

// POST /api/orders/:id/advance
func AdvanceOrderHandler(st *store.Store, al *audit.Service, log *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		restaurantID, err := auth.RestaurantScope(c)
		if err != nil {
			return err
		}

		before, after, err := st.AdvanceOrder(restaurantID, c.Params("id"))
		if err != nil {
			return err
		}
		return respondTransition(c, st, al, log, restaurantID, before, after)
	}
}

// PUT /api/orders/:id/status
func UpdateOrderStatusHandler(st *store.Store, al *audit.Service, log *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		restaurantID, err := auth.RestaurantScope(c)
		if err != nil {
			return err
		}

		var body UpdateStatusRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		if body.Status == "" {
			return validation.Field("status", "Status is required")
		}
		if !status.IsOrderStatus(body.Status) {
			return validation.Field("status", "Unknown order status")
		}

		before, after, err := st.TransitionOrder(restaurantID, c.Params("id"), body.Status)
		if err != nil {
			return err
		}
		return respondTransition(c, st, al, log, restaurantID, before, after)
	}
}

func respondTransition(c *fiber.Ctx, st *store.Store, al *audit.Service, log *slog.Logger, restaurantID string, before, after *models.Order) error {
	audit.Record(c, al, log, audit.LogOptions{
		RestaurantID: restaurantID,
		EntityType:   audit.EntityOrder,
		EntityID:     after.ID,
		Action:       models.AuditActionStatus,
		Description:  fmt.Sprintf("Order %s: %s -> %s", after.ID, before.Status, after.Status),
		Before:       before,
		After:        after,
	})

	numbers, err := tableNumbers(st, restaurantID)
	if err != nil {
		return err
	}
	return c.JSON(toResponse(*after, numbers))
}
