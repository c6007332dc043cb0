package auth

import (
	"errors"
	"strings"
	"time"

	"restaurant-hub/internal/config"
	"restaurant-hub/internal/models"
	"restaurant-hub/internal/session"
	"restaurant-hub/internal/store"
	"restaurant-hub/internal/validation"

	"github.com/gofiber/fiber/v2"
)

type LoginRequest struct {
	RestaurantCode string `json:"restaurantCode"`
	Email          string `json:"email"`
	Password       string `json:"password"`
}

type LoginResponse struct {
	Token      string             `json:"token"`
	ExpiresAt  string             `json:"expires_at"`
	User       *models.User       `json:"user"`
	Restaurant *models.Restaurant `json:"restaurant,omitempty"`
}

type GateResponse struct {
	Path     string `json:"path"`
	Allowed  bool   `json:"allowed"`
	Redirect string `json:"redirect,omitempty"`
}

// POST /api/auth/login
func LoginHandler(st *store.Store, tokens *Tokens, cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body LoginRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if err := session.ValidateLoginForm(body.RestaurantCode, body.Email, body.Password, true); err != nil {
			return err
		}

		storage := tokens.Storage("")
		mgr := session.NewManager(st, storage, cfg.LoginErrorMode)
		if err := mgr.LoginWithRestaurantCode(body.RestaurantCode, strings.TrimSpace(body.Email), body.Password); err != nil {
			return err
		}

		return loginResponse(c, st, mgr, storage)
	}
}

// POST /api/auth/login/email signs in without a restaurant code; the session
// is scoped to the account's own restaurant.
func EmailLoginHandler(st *store.Store, tokens *Tokens, cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body LoginRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if err := session.ValidateLoginForm("", body.Email, body.Password, false); err != nil {
			return err
		}

		storage := tokens.Storage("")
		mgr := session.NewManager(st, storage, cfg.LoginErrorMode)
		if !mgr.Login(strings.TrimSpace(body.Email), body.Password) {
			return &session.AuthError{Field: validation.Root, Err: session.ErrInvalidCredentials}
		}

		return loginResponse(c, st, mgr, storage)
	}
}

func loginResponse(c *fiber.Ctx, st *store.Store, mgr *session.Manager, storage *TokenStorage) error {
	user := mgr.User()
	restaurant, err := st.FindRestaurant(user.RestaurantID)
	if err != nil {
		restaurant = nil
	}

	return c.JSON(LoginResponse{
		Token:      storage.Token(),
		ExpiresAt:  storage.ExpiresAt().UTC().Format(time.RFC3339),
		User:       user,
		Restaurant: restaurant,
	})
}

// POST /api/auth/logout
func LogoutHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		mgr, err := Session(c)
		if err != nil {
			return err
		}
		if err := mgr.Logout(); err != nil {
			return err
		}
		return c.JSON(fiber.Map{"redirect": session.LoginPath})
	}
}

// GET /api/auth/me
func MeHandler(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		mgr, err := Session(c)
		if err != nil {
			return err
		}
		user, err := st.FindUser(mgr.User().ID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fiber.NewError(fiber.StatusUnauthorized, "Account no longer exists")
			}
			return err
		}

		response := fiber.Map{"user": user}
		if restaurant, err := st.FindRestaurant(user.RestaurantID); err == nil {
			response["restaurant"] = restaurant
		}
		return c.JSON(response)
	}
}

// GET /api/gate?path=/dashboard
// Public: tells the dashboard whether a location may render for the caller.
func GateHandler(st *store.Store, tokens *Tokens, cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		path := c.Query("path", "/")

		mgr, _, err := restore(c, st, tokens, cfg.LoginErrorMode)
		if err != nil {
			// A broken or revoked token counts as signed out.
			mgr = session.NewManager(st, session.NewMemoryStorage(), cfg.LoginErrorMode)
		}

		redirect, allowed := mgr.Gate(path)
		return c.JSON(GateResponse{Path: path, Allowed: allowed, Redirect: redirect})
	}
}
