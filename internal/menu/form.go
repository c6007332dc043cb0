package menu

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"restaurant-hub/internal/validation"

	"github.com/google/uuid"
)

var pricePattern = regexp.MustCompile(`^\d+(\.\d{1,2})?$`)

// PriceInput accepts a price sent either as a JSON number or a string and
// keeps its textual form for validation.
type PriceInput string

func (p *PriceInput) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*p = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*p = PriceInput(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*p = PriceInput(n.String())
	return nil
}

type MenuItemRequest struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Price       PriceInput `json:"price"`
	Category    string     `json:"category"`
	Image       string     `json:"image"`
}

// menuItemFields is a validated form.
type menuItemFields struct {
	Name        string
	Description string
	Price       float64
	Category    string
	Image       string
}

// validateMenuItem checks a create or update form. requireImage is false on
// create, where a missing image gets a placeholder.
func validateMenuItem(req MenuItemRequest, requireImage bool) (menuItemFields, error) {
	errs := validation.New()
	out := menuItemFields{
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
		Category:    strings.TrimSpace(req.Category),
		Image:       strings.TrimSpace(req.Image),
	}

	if out.Name == "" {
		errs.Add("name", "Name is required")
	}
	if out.Description == "" {
		errs.Add("description", "Description is required")
	}

	raw := strings.TrimSpace(string(req.Price))
	switch {
	case raw == "":
		errs.Add("price", "Price is required")
	case !pricePattern.MatchString(raw):
		errs.Add("price", "Price must be a valid number with up to 2 decimal places")
	default:
		price, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			errs.Add("price", "Price must be a valid number with up to 2 decimal places")
		} else if price < 0.01 {
			errs.Add("price", "Price must be greater than 0")
		} else {
			out.Price = price
		}
	}

	if out.Category == "" {
		errs.Add("category", "Category is required")
	}
	if out.Image == "" && requireImage {
		errs.Add("image", "Image URL is required")
	}

	if err := errs.Err(); err != nil {
		return menuItemFields{}, err
	}
	if out.Image == "" {
		out.Image = RandomImageURL("")
	}
	return out, nil
}

// RandomImageURL returns a placeholder picture URL. An empty seed picks a
// random one.
func RandomImageURL(seed string) string {
	seed = strings.TrimSpace(seed)
	if seed == "" {
		seed = strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	}
	return fmt.Sprintf("https://picsum.photos/seed/%s/300/200", url.PathEscape(seed))
}
