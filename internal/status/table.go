package status

import (
	"regexp"
	"strings"
	"time"

	"restaurant-hub/internal/models"
	"restaurant-hub/internal/validation"
)

var tableTransitions = map[models.TableStatus][]models.TableStatus{
	models.TableAvailable: {models.TableOccupied, models.TableReserved},
	models.TableOccupied:  {models.TableAvailable},
	models.TableReserved:  {models.TableOccupied, models.TableAvailable},
}

var phonePattern = regexp.MustCompile(`^[0-9\-+\s()]{7,15}$`)

// Accepted reservation time layouts: the two datetime-local forms a browser
// sends, then RFC 3339.
var reservationLayouts = []string{
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
}

func IsTableStatus(s models.TableStatus) bool {
	_, ok := tableTransitions[s]
	return ok
}

// TableActions lists the statuses a table in state s can move to.
func TableActions(s models.TableStatus) []models.TableStatus {
	return append([]models.TableStatus(nil), tableTransitions[s]...)
}

func ValidateTableTransition(from, to models.TableStatus) error {
	if !IsTableStatus(from) || !IsTableStatus(to) {
		return &TransitionError{Entity: "table", From: string(from), To: string(to), Err: ErrUnknownStatus}
	}
	for _, allowed := range tableTransitions[from] {
		if allowed == to {
			return nil
		}
	}
	return &TransitionError{Entity: "table", From: string(from), To: string(to), Err: ErrIllegalTransition}
}

// ApplyTableTransition moves t to the target status. Reserving requires a
// reservation; every other target drops the current one. t is left untouched
// when an error is returned.
func ApplyTableTransition(t *models.Table, to models.TableStatus, r *models.Reservation) error {
	if err := ValidateTableTransition(t.Status, to); err != nil {
		return err
	}
	if to == models.TableReserved {
		if r == nil {
			return validation.Field("reservation", "Reservation details are required")
		}
		t.Status = to
		res := *r
		t.Reservation = &res
		return nil
	}
	t.Status = to
	t.Reservation = nil
	return nil
}

// ReservationInput is the raw reservation form.
type ReservationInput struct {
	Name  string `json:"name"`
	Time  string `json:"time"`
	Phone string `json:"phone"`
}

// ParseReservation validates in against the clock value now and returns the
// reservation to store.
func ParseReservation(in ReservationInput, now time.Time, loc *time.Location) (*models.Reservation, error) {
	errs := validation.New()

	name := strings.TrimSpace(in.Name)
	if name == "" {
		errs.Add("name", "Guest name is required")
	}

	var at time.Time
	raw := strings.TrimSpace(in.Time)
	if raw == "" {
		errs.Add("time", "Reservation time is required")
	} else if t, ok := parseReservationTime(raw, loc); !ok {
		errs.Add("time", "Reservation time is not a valid date")
	} else if !t.After(now) {
		errs.Add("time", "Reservation must be in the future")
	} else {
		at = t
	}

	phone := strings.TrimSpace(in.Phone)
	if phone == "" {
		errs.Add("phone", "Phone number is required")
	} else if !phonePattern.MatchString(phone) {
		errs.Add("phone", "Please enter a valid phone number")
	}

	if err := errs.Err(); err != nil {
		return nil, err
	}
	return &models.Reservation{Name: name, Time: at, Phone: phone}, nil
}

func parseReservationTime(v string, loc *time.Location) (time.Time, bool) {
	if loc == nil {
		loc = time.Local
	}
	for _, layout := range reservationLayouts {
		if t, err := time.ParseInLocation(layout, v, loc); err == nil {
			return t, true
		}
	}
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t, true
	}
	return time.Time{}, false
}
