// Package session tracks who is signed in. A Manager is created per session
// context, restored from its Storage, and torn down with Logout.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"restaurant-hub/internal/config"
	"restaurant-hub/internal/models"
	"restaurant-hub/internal/store"
	"restaurant-hub/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

const (
	FieldRestaurantCode = "restaurantCode"
	FieldEmail          = "email"
	FieldPassword       = "password"

	LoginPath = "/login"
)

var (
	ErrInvalidRestaurantCode = errors.New("Invalid restaurant code")
	ErrInvalidCredentials    = errors.New("Invalid email or password for this restaurant")
	ErrRestaurantMismatch    = errors.New("This account does not belong to this restaurant")
)

// AuthError is a failed sign-in. Field is the form field the message belongs
// to, or validation.Root for form-level messages.
type AuthError struct {
	Field string
	Err   error
}

func (e *AuthError) Error() string { return e.Err.Error() }

func (e *AuthError) Unwrap() error { return e.Err }

// Fields renders the error the same way form validation errors are rendered.
func (e *AuthError) Fields() validation.Errors {
	return validation.Field(e.Field, e.Err.Error())
}

var emailPattern = regexp.MustCompile(`(?i)^[A-Z0-9._%+-]+@[A-Z0-9.-]+\.[A-Z]{2,}$`)

// Locations reachable without a session.
var publicPaths = map[string]bool{
	"/":       true,
	LoginPath: true,
}

// Directory resolves accounts and restaurants. *store.Store implements it.
type Directory interface {
	FindUserByEmail(email string) (*models.User, error)
	FindRestaurantByCode(code string) (*models.Restaurant, error)
}

var _ Directory = (*store.Store)(nil)

type Manager struct {
	dir     Directory
	storage Storage
	mode    config.LoginErrorMode
	user    *models.User
}

func NewManager(dir Directory, storage Storage, mode config.LoginErrorMode) *Manager {
	return &Manager{dir: dir, storage: storage, mode: mode}
}

// Restore loads the user record from storage, if there is one. A record that
// cannot be decoded is removed and the session stays signed out.
func (m *Manager) Restore() error {
	raw, ok, err := m.storage.Get(StorageKey)
	if err != nil {
		return fmt.Errorf("restore session: %w", err)
	}
	if !ok {
		m.user = nil
		return nil
	}

	var u models.User
	if err := json.Unmarshal(raw, &u); err != nil || u.ID == "" {
		m.user = nil
		if rmErr := m.storage.Remove(StorageKey); rmErr != nil {
			return fmt.Errorf("restore session: %w", rmErr)
		}
		return nil
	}
	m.user = &u
	return nil
}

// User returns a copy of the signed-in user, or nil.
func (m *Manager) User() *models.User {
	if m.user == nil {
		return nil
	}
	u := *m.user
	return &u
}

// RestaurantID is the session scope every data query is filtered by.
func (m *Manager) RestaurantID() (string, bool) {
	if m.user == nil {
		return "", false
	}
	return m.user.RestaurantID, true
}

// Login signs in by email (case-insensitive) and exact password. On failure
// the session is left as it was.
func (m *Manager) Login(email, password string) bool {
	u, ok := m.match(email, password)
	if !ok {
		return false
	}
	return m.persist(u) == nil
}

// LoginWithRestaurantCode resolves the restaurant by its exact join code and
// then requires the credentials to belong to one of its users.
func (m *Manager) LoginWithRestaurantCode(code, email, password string) error {
	restaurant, err := m.dir.FindRestaurantByCode(code)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return &AuthError{Field: FieldRestaurantCode, Err: ErrInvalidRestaurantCode}
		}
		return err
	}

	u, ok := m.match(email, password)
	if !ok {
		return &AuthError{Field: validation.Root, Err: ErrInvalidCredentials}
	}
	if u.RestaurantID != restaurant.ID {
		if m.mode == config.LoginErrorSpecific {
			return &AuthError{Field: FieldRestaurantCode, Err: ErrRestaurantMismatch}
		}
		return &AuthError{Field: validation.Root, Err: ErrInvalidCredentials}
	}

	return m.persist(u)
}

// Logout clears the session and its storage. It is safe to call when nobody
// is signed in.
func (m *Manager) Logout() error {
	m.user = nil
	if err := m.storage.Remove(StorageKey); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

// Gate decides whether path may be shown. Signed-out sessions are sent to the
// login page for anything but the public pages.
func (m *Manager) Gate(path string) (redirect string, allowed bool) {
	if m.user != nil || publicPaths[normalizePath(path)] {
		return "", true
	}
	return LoginPath, false
}

// ValidateLoginForm checks the sign-in form before any lookup happens.
func ValidateLoginForm(code, email, password string, requireCode bool) error {
	errs := validation.New()
	if requireCode && strings.TrimSpace(code) == "" {
		errs.Add(FieldRestaurantCode, "Restaurant code is required")
	}
	email = strings.TrimSpace(email)
	if email == "" {
		errs.Add(FieldEmail, "Email is required")
	} else if !emailPattern.MatchString(email) {
		errs.Add(FieldEmail, "Invalid email address")
	}
	if password == "" {
		errs.Add(FieldPassword, "Password is required")
	}
	return errs.Err()
}

func (m *Manager) match(email, password string) (*models.User, bool) {
	u, err := m.dir.FindUserByEmail(email)
	if err != nil {
		return nil, false
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, false
	}
	return u, true
}

func (m *Manager) persist(u *models.User) error {
	raw, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("persist session: %w", err)
	}
	if err := m.storage.Set(StorageKey, raw); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}
	m.user = u
	return nil
}

func normalizePath(p string) string {
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}
	if len(p) > 1 {
		p = strings.TrimRight(p, "/")
	}
	if p == "" {
		return "/"
	}
	return p
}
