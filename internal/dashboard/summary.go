package dashboard

import (
	"math"

	"restaurant-hub/internal/auth"
	"restaurant-hub/internal/models"
	"restaurant-hub/internal/store"

	"github.com/gofiber/fiber/v2"
)

const popularLimit = 3

type Summary struct {
	Restaurant      *models.Restaurant  `json:"restaurant"`
	MenuItemCount   int                 `json:"menu_item_count"`
	TableCount      int                 `json:"table_count"`
	ActiveOrders    int                 `json:"active_orders"`
	AvailableTables int                 `json:"available_tables"`
	TotalRevenue    float64             `json:"total_revenue"`
	OrdersByStatus  map[string]int      `json:"orders_by_status"`
	PopularItems    []store.PopularItem `json:"popular_items"`
}

// BuildSummary computes the dashboard figures for one restaurant. Active
// orders are those not yet paid; revenue is the sum of order totals.
func BuildSummary(st *store.Store, restaurantID string) (*Summary, error) {
	restaurant, err := st.FindRestaurant(restaurantID)
	if err != nil {
		return nil, err
	}
	items, err := st.ListMenuItems(restaurantID)
	if err != nil {
		return nil, err
	}
	tables, err := st.ListTables(restaurantID)
	if err != nil {
		return nil, err
	}
	orders, err := st.ListOrders(restaurantID, "")
	if err != nil {
		return nil, err
	}
	popular, err := st.PopularMenuItems(restaurantID, popularLimit)
	if err != nil {
		return nil, err
	}

	s := &Summary{
		Restaurant:     restaurant,
		MenuItemCount:  len(items),
		TableCount:     len(tables),
		OrdersByStatus: make(map[string]int),
		PopularItems:   popular,
	}
	for _, t := range tables {
		if t.Status == models.TableAvailable {
			s.AvailableTables++
		}
	}
	var revenue float64
	for _, o := range orders {
		if o.Status != models.OrderPaid {
			s.ActiveOrders++
		}
		s.OrdersByStatus[string(o.Status)]++
		revenue += o.TotalAmount
	}
	s.TotalRevenue = math.Round(revenue*100) / 100
	return s, nil
}

// GET /api/dashboard
func SummaryHandler(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		restaurantID, err := auth.RestaurantScope(c)
		if err != nil {
			return err
		}

		s, err := BuildSummary(st, restaurantID)
		if err != nil {
			return err
		}
		return c.JSON(s)
	}
}
