package server

import (
	"errors"
	"log/slog"
	"strings"
	"time"

	"restaurant-hub/internal/audit"
	"restaurant-hub/internal/auth"
	"restaurant-hub/internal/config"
	"restaurant-hub/internal/dashboard"
	"restaurant-hub/internal/menu"
	"restaurant-hub/internal/orders"
	"restaurant-hub/internal/session"
	"restaurant-hub/internal/status"
	"restaurant-hub/internal/store"
	"restaurant-hub/internal/tables"
	"restaurant-hub/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

// Deps are the collaborators the HTTP layer is built from.
type Deps struct {
	Config *config.Config
	Store  *store.Store
	Tokens *auth.Tokens
	Audit  *audit.Service
	Log    *slog.Logger
}

func New(d Deps) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "restaurant-hub",
		ErrorHandler: errorHandler(d.Log),
	})

	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(requestLogger(d.Log))

	corsOrigins := strings.Split(d.Config.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	api := app.Group("/api")

	// Public
	api.Post("/auth/login", auth.LoginHandler(d.Store, d.Tokens, d.Config))
	api.Post("/auth/login/email", auth.EmailLoginHandler(d.Store, d.Tokens, d.Config))
	api.Get("/gate", auth.GateHandler(d.Store, d.Tokens, d.Config))

	// Protected
	protected := api.Group("")
	protected.Use(auth.SessionMiddleware(d.Store, d.Tokens, d.Config.LoginErrorMode))

	protected.Post("/auth/logout", auth.LogoutHandler())
	protected.Get("/auth/me", auth.MeHandler(d.Store))

	protected.Get("/dashboard", dashboard.SummaryHandler(d.Store))

	// Menu
	protected.Get("/menu-categories", menu.ListCategoriesHandler(d.Store))
	protected.Get("/menu-items", menu.ListMenuItemsHandler(d.Store))
	protected.Get("/menu-items/random-image", menu.RandomImageHandler())
	protected.Post("/menu-items", menu.CreateMenuItemHandler(d.Store, d.Audit, d.Log))
	protected.Post("/menu-items/import", menu.ImportMenuItemsHandler(d.Store, d.Audit, d.Log))
	protected.Put("/menu-items/:id", menu.UpdateMenuItemHandler(d.Store, d.Audit, d.Log))
	protected.Delete("/menu-items/:id", menu.DeleteMenuItemHandler(d.Store, d.Audit, d.Log))

	// Tables
	protected.Get("/tables", tables.ListTablesHandler(d.Store))
	protected.Post("/tables", tables.CreateTableHandler(d.Store, d.Audit, d.Log))
	protected.Put("/tables/:id/status", tables.UpdateTableStatusHandler(d.Store, d.Audit, d.Log))
	protected.Post("/tables/:id/reservation", tables.ReserveTableHandler(d.Store, d.Audit, d.Log))

	// Orders
	protected.Get("/orders", orders.ListOrdersHandler(d.Store))
	protected.Post("/orders", orders.CreateOrderHandler(d.Store, d.Audit, d.Log))
	protected.Get("/orders/:id", orders.GetOrderHandler(d.Store))
	protected.Post("/orders/:id/advance", orders.AdvanceOrderHandler(d.Store, d.Audit, d.Log))
	protected.Put("/orders/:id/status", orders.UpdateOrderStatusHandler(d.Store, d.Audit, d.Log))

	// Audit
	protected.Get("/audit-logs", audit.ListAuditLogsHandler(d.Audit))

	return app
}

func errorHandler(log *slog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var (
			fe    *fiber.Error
			authE *session.AuthError
			te    *status.TransitionError
		)

		if fields, ok := validation.As(err); ok {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"errors": fields})
		}

		switch {
		case errors.As(err, &authE):
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"errors": authE.Fields()})
		case errors.As(err, &te):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": te.Error()})
		case errors.Is(err, store.ErrStatusConflict):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, store.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		case errors.As(err, &fe):
			return c.Status(fe.Code).JSON(fiber.Map{"error": fe.Message})
		}

		log.Error("unexpected error",
			"method", c.Method(),
			"path", c.Path(),
			"error", err,
		)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Unexpected server error",
		})
	}
}

func requestLogger(log *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		code := c.Response().StatusCode()
		if err != nil {
			var fe *fiber.Error
			if errors.As(err, &fe) {
				code = fe.Code
			}
		}
		log.Debug("request",
			"request_id", c.Locals(requestid.ConfigDefault.ContextKey),
			"method", c.Method(),
			"path", c.Path(),
			"status", code,
			"duration", time.Since(start),
		)
		return err
	}
}
