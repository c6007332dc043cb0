package auth

import (
	"strings"

	"restaurant-hub/internal/config"
	"restaurant-hub/internal/session"

	"github.com/gofiber/fiber/v2"
)

const (
	CtxSessionKey = "session"
	CtxStorageKey = "session_storage"
)

// bearerToken returns the token from the Authorization header, "" when the
// header is absent, or an error when it is malformed.
func bearerToken(c *fiber.Ctx) (string, error) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return "", nil
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" || strings.TrimSpace(parts[1]) == "" {
		return "", fiber.NewError(fiber.StatusUnauthorized, "Authorization header must be 'Bearer <token>'")
	}
	return strings.TrimSpace(parts[1]), nil
}

// restore builds the request's session context from its bearer token.
func restore(c *fiber.Ctx, dir session.Directory, tokens *Tokens, mode config.LoginErrorMode) (*session.Manager, *TokenStorage, error) {
	tokenStr, err := bearerToken(c)
	if err != nil {
		return nil, nil, err
	}

	storage := tokens.Storage(tokenStr)
	mgr := session.NewManager(dir, storage, mode)
	if err := mgr.Restore(); err != nil {
		return nil, nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid or expired token")
	}
	return mgr, storage, nil
}

// SessionMiddleware rejects requests without a live session and stores the
// session context in c.Locals for the handlers.
func SessionMiddleware(dir session.Directory, tokens *Tokens, mode config.LoginErrorMode) fiber.Handler {
	return func(c *fiber.Ctx) error {
		mgr, storage, err := restore(c, dir, tokens, mode)
		if err != nil {
			return err
		}
		if mgr.User() == nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Authorization header missing")
		}

		c.Locals(CtxSessionKey, mgr)
		c.Locals(CtxStorageKey, storage)
		return c.Next()
	}
}

// Session returns the request's session context set by SessionMiddleware.
func Session(c *fiber.Ctx) (*session.Manager, error) {
	mgr, ok := c.Locals(CtxSessionKey).(*session.Manager)
	if !ok || mgr == nil {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Session not found")
	}
	return mgr, nil
}

// RestaurantScope is the restaurant id every query of this request must be
// filtered by.
func RestaurantScope(c *fiber.Ctx) (string, error) {
	mgr, err := Session(c)
	if err != nil {
		return "", err
	}
	rid, ok := mgr.RestaurantID()
	if !ok {
		return "", fiber.NewError(fiber.StatusUnauthorized, "Session not found")
	}
	return rid, nil
}
