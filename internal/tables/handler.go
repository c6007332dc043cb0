package tables

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"restaurant-hub/internal/audit"
	"restaurant-hub/internal/auth"
	"restaurant-hub/internal/models"
	"restaurant-hub/internal/status"
	"restaurant-hub/internal/store"
	"restaurant-hub/internal/validation"

	"github.com/gofiber/fiber/v2"
)

const maxCapacity = 20

type CreateTableRequest struct {
	Number   *int `json:"number"`
	Capacity *int `json:"capacity"`
}

type UpdateStatusRequest struct {
	Status      models.TableStatus       `json:"status"`
	Reservation *status.ReservationInput `json:"reservation"`
}

// TableResponse adds the actions the dashboard may offer for the table.
type TableResponse struct {
	models.Table
	Actions []models.TableStatus `json:"actions"`
}

func toResponse(t models.Table) TableResponse {
	return TableResponse{Table: t, Actions: status.TableActions(t.Status)}
}

// Clock is swapped in tests.
var Clock = time.Now

// GET /api/tables
func ListTablesHandler(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		restaurantID, err := auth.RestaurantScope(c)
		if err != nil {
			return err
		}

		list, err := st.ListTables(restaurantID)
		if err != nil {
			return err
		}

		res := make([]TableResponse, 0, len(list))
		for _, t := range list {
			res = append(res, toResponse(t))
		}
		return c.JSON(res)
	}
}

// POST /api/tables
func CreateTableHandler(st *store.Store, al *audit.Service, log *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		restaurantID, err := auth.RestaurantScope(c)
		if err != nil {
			return err
		}

		var body CreateTableRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		errs := validation.New()
		switch {
		case body.Number == nil:
			errs.Add("number", "Table number is required")
		case *body.Number < 1:
			errs.Add("number", "Table number must be at least 1")
		}
		switch {
		case body.Capacity == nil:
			errs.Add("capacity", "Capacity is required")
		case *body.Capacity < 1:
			errs.Add("capacity", "Capacity must be at least 1")
		case *body.Capacity > maxCapacity:
			errs.Add("capacity", "Capacity cannot exceed 20")
		}
		if err := errs.Err(); err != nil {
			return err
		}

		t := models.Table{
			RestaurantID: restaurantID,
			Number:       *body.Number,
			Capacity:     *body.Capacity,
		}
		if err := st.CreateTable(&t); err != nil {
			if errors.Is(err, store.ErrTableNumberTaken) {
				return validation.Field("number", "Table number already exists")
			}
			return err
		}

		audit.Record(c, al, log, audit.LogOptions{
			RestaurantID: restaurantID,
			EntityType:   audit.EntityTable,
			EntityID:     t.ID,
			Action:       models.AuditActionCreate,
			Description:  fmt.Sprintf("Table %d added", t.Number),
			After:        t,
		})

		return c.Status(fiber.StatusCreated).JSON(toResponse(t))
	}
}

// PUT /api/tables/:id/status
func UpdateTableStatusHandler(st *store.Store, al *audit.Service, log *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body UpdateStatusRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		if !status.IsTableStatus(body.Status) {
			return validation.Field("status", "Status must be one of available, occupied, reserved")
		}

		var reservation *models.Reservation
		if body.Status == models.TableReserved {
			if body.Reservation == nil {
				return validation.Field("reservation", "Reservation details are required")
			}
			r, err := status.ParseReservation(*body.Reservation, Clock(), time.Local)
			if err != nil {
				return err
			}
			reservation = r
		}

		return transition(c, st, al, log, body.Status, reservation)
	}
}

// POST /api/tables/:id/reservation
func ReserveTableHandler(st *store.Store, al *audit.Service, log *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body status.ReservationInput
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		r, err := status.ParseReservation(body, Clock(), time.Local)
		if err != nil {
			return err
		}
		return transition(c, st, al, log, models.TableReserved, r)
	}
}

func transition(c *fiber.Ctx, st *store.Store, al *audit.Service, log *slog.Logger, to models.TableStatus, r *models.Reservation) error {
	restaurantID, err := auth.RestaurantScope(c)
	if err != nil {
		return err
	}

	before, after, err := st.TransitionTable(restaurantID, c.Params("id"), to, r)
	if err != nil {
		return err
	}

	audit.Record(c, al, log, audit.LogOptions{
		RestaurantID: restaurantID,
		EntityType:   audit.EntityTable,
		EntityID:     after.ID,
		Action:       models.AuditActionStatus,
		Description:  fmt.Sprintf("Table %d: %s -> %s", after.Number, before.Status, after.Status),
		Before:       before,
		After:        after,
	})

	return c.JSON(toResponse(*after))
}
