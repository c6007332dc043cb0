package store_test

import (
	"testing"
	"time"

	"restaurant-hub/internal/models"
	"restaurant-hub/internal/status"
	"restaurant-hub/internal/store"
	"restaurant-hub/internal/testutil"
	"restaurant-hub/internal/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUsersAndRestaurants(t *testing.T) {
	st := testutil.NewStore(t)

	u, err := st.FindUserByEmail("Italian@Example.COM")
	require.NoError(t, err)
	assert.Equal(t, "user1", u.ID)
	assert.NotEmpty(t, u.PasswordHash)
	assert.NotEqual(t, "password123", u.PasswordHash)

	_, err = st.FindUserByEmail("ghost@example.com")
	assert.ErrorIs(t, err, store.ErrNotFound)

	r, err := st.FindRestaurantByCode("SUSHI456")
	require.NoError(t, err)
	assert.Equal(t, "rest2", r.ID)

	_, err = st.FindRestaurantByCode("sushi456")
	assert.ErrorIs(t, err, store.ErrNotFound, "codes are exact")
}

func TestMenuItemsAreScoped(t *testing.T) {
	st := testutil.NewStore(t)

	items, err := st.ListMenuItems("rest1")
	require.NoError(t, err)
	require.Len(t, items, 4)
	assert.Equal(t, "item1", items[0].ID)
	for _, it := range items {
		assert.Equal(t, "rest1", it.RestaurantID)
	}

	_, err = st.GetMenuItem("rest1", "item5")
	assert.ErrorIs(t, err, store.ErrNotFound)

	_, err = st.DeleteMenuItem("rest1", "item5")
	assert.ErrorIs(t, err, store.ErrNotFound)

	err = st.UpdateMenuItem(&models.MenuItem{ID: "item5", RestaurantID: "rest1", Name: "Hijack", Price: 1, Category: "X"})
	assert.ErrorIs(t, err, store.ErrNotFound)

	other, err := st.GetMenuItem("rest2", "item5")
	require.NoError(t, err)
	assert.Equal(t, "California Roll", other.Name)
}

func TestCategoriesFollowTheMenu(t *testing.T) {
	st := testutil.NewStore(t)

	cats, err := st.Categories("rest1")
	require.NoError(t, err)
	assert.Equal(t, []string{"Appetizer", "Dessert", "Pasta", "Pizza"}, cats)

	item := &models.MenuItem{RestaurantID: "rest1", Name: "Limonata", Description: "Lemon soda", Price: 3.5, Category: "Beverages"}
	require.NoError(t, st.CreateMenuItem(item))
	assert.Contains(t, item.ID, "item-")

	cats, err = st.Categories("rest1")
	require.NoError(t, err)
	assert.Equal(t, []string{"Appetizer", "Beverages", "Dessert", "Pasta", "Pizza"}, cats)

	// Another restaurant never sees it.
	cats, err = st.Categories("rest2")
	require.NoError(t, err)
	assert.NotContains(t, cats, "Beverages")

	// Renaming the only Appetizer moves the label.
	salad, err := st.GetMenuItem("rest1", "item4")
	require.NoError(t, err)
	salad.Category = "Salads"
	require.NoError(t, st.UpdateMenuItem(salad))

	cats, err = st.Categories("rest1")
	require.NoError(t, err)
	assert.Equal(t, []string{"Beverages", "Dessert", "Pasta", "Pizza", "Salads"}, cats)

	removed, err := st.DeleteMenuItem("rest1", item.ID)
	require.NoError(t, err)
	assert.Equal(t, "Limonata", removed.Name)

	cats, err = st.Categories("rest1")
	require.NoError(t, err)
	assert.NotContains(t, cats, "Beverages")
}

func TestCategoriesEmptyMenu(t *testing.T) {
	st := testutil.NewStore(t)

	for _, id := range []string{"item1", "item2", "item3", "item4"} {
		_, err := st.DeleteMenuItem("rest1", id)
		require.NoError(t, err)
	}
	cats, err := st.Categories("rest1")
	require.NoError(t, err)
	assert.NotNil(t, cats)
	assert.Empty(t, cats)
}

func TestCreateTable(t *testing.T) {
	st := testutil.NewStore(t)

	tbl := &models.Table{RestaurantID: "rest1", Number: 5, Capacity: 6, Status: models.TableReserved}
	require.NoError(t, st.CreateTable(tbl))
	assert.Equal(t, models.TableAvailable, tbl.Status, "new tables start available")
	assert.Nil(t, tbl.Reservation)

	err := st.CreateTable(&models.Table{RestaurantID: "rest1", Number: 5, Capacity: 2})
	assert.ErrorIs(t, err, store.ErrTableNumberTaken)

	require.NoError(t, st.CreateTable(&models.Table{RestaurantID: "rest2", Number: 5, Capacity: 2}), "numbers are per restaurant")

	tables, err := st.ListTables("rest1")
	require.NoError(t, err)
	require.Len(t, tables, 5)
	for i, tb := range tables {
		assert.Equal(t, i+1, tb.Number)
	}
}

func TestTransitionTable(t *testing.T) {
	st := testutil.NewStore(t)

	t.Run("cancel a reservation", func(t *testing.T) {
		before, after, err := st.TransitionTable("rest1", "table3", models.TableAvailable, nil)
		require.NoError(t, err)
		assert.Equal(t, models.TableReserved, before.Status)
		require.NotNil(t, before.Reservation)
		assert.Equal(t, "Smith Family", before.Reservation.Name)
		assert.Equal(t, models.TableAvailable, after.Status)
		assert.Nil(t, after.Reservation)

		stored, err := st.GetTable("rest1", "table3")
		require.NoError(t, err)
		assert.Equal(t, models.TableAvailable, stored.Status)
		assert.Nil(t, stored.Reservation)
	})

	t.Run("reserve and read back", func(t *testing.T) {
		when := time.Now().Add(48 * time.Hour).Truncate(time.Second)
		_, _, err := st.TransitionTable("rest1", "table1", models.TableReserved, &models.Reservation{Name: "Rossi", Time: when, Phone: "555-000-1111"})
		require.NoError(t, err)

		stored, err := st.GetTable("rest1", "table1")
		require.NoError(t, err)
		assert.Equal(t, models.TableReserved, stored.Status)
		require.NotNil(t, stored.Reservation)
		assert.Equal(t, "Rossi", stored.Reservation.Name)
		assert.True(t, when.Equal(stored.Reservation.Time))
	})

	t.Run("illegal move leaves the table alone", func(t *testing.T) {
		_, _, err := st.TransitionTable("rest1", "table2", models.TableReserved, &models.Reservation{Name: "X", Time: time.Now().Add(time.Hour), Phone: "5550001111"})
		assert.ErrorIs(t, err, status.ErrIllegalTransition)

		stored, err := st.GetTable("rest1", "table2")
		require.NoError(t, err)
		assert.Equal(t, models.TableOccupied, stored.Status)
		assert.Nil(t, stored.Reservation)
	})

	t.Run("other restaurant's table", func(t *testing.T) {
		_, _, err := st.TransitionTable("rest1", "table6", models.TableOccupied, nil)
		assert.ErrorIs(t, err, store.ErrNotFound)
	})
}

func TestCreateOrder(t *testing.T) {
	st := testutil.NewStore(t)

	order, err := st.CreateOrder("rest1", "table1", []store.OrderLine{
		{MenuItemID: "item1", Quantity: 2},
		{MenuItemID: "item3", Quantity: 1},
	})
	require.NoError(t, err)
	assert.Equal(t, models.OrderPending, order.Status)
	assert.Equal(t, 33.97, order.TotalAmount)
	require.Len(t, order.Items, 2)
	assert.Equal(t, "Margherita Pizza", order.Items[0].Name)
	assert.Equal(t, 12.99, order.Items[0].Price)

	// Repricing the menu does not touch placed orders.
	pizza, err := st.GetMenuItem("rest1", "item1")
	require.NoError(t, err)
	pizza.Price = 99
	require.NoError(t, st.UpdateMenuItem(pizza))

	stored, err := st.GetOrder("rest1", order.ID)
	require.NoError(t, err)
	assert.Equal(t, 33.97, stored.TotalAmount)
	assert.Equal(t, 12.99, stored.Items[0].Price)
	assert.Equal(t, "item1", stored.Items[0].MenuItemID)
	assert.Equal(t, "item3", stored.Items[1].MenuItemID)
}

func TestCreateOrderValidation(t *testing.T) {
	st := testutil.NewStore(t)

	_, err := st.CreateOrder("rest1", "", nil)
	fields, ok := validation.As(err)
	require.True(t, ok)
	assert.Equal(t, "Table is required", fields["table_id"])
	assert.Equal(t, "At least one item is required", fields["items"])

	_, err = st.CreateOrder("rest1", "table5", []store.OrderLine{
		{MenuItemID: "item5", Quantity: 1},
		{MenuItemID: "item1", Quantity: 0},
	})
	fields, ok = validation.As(err)
	require.True(t, ok)
	assert.Equal(t, "Table not found", fields["table_id"])
	assert.Equal(t, "Menu item not found", fields["items[0].menu_item_id"])
	assert.Equal(t, "Quantity must be at least 1", fields["items[1].quantity"])

	orders, err := st.ListOrders("rest1", "")
	require.NoError(t, err)
	assert.Len(t, orders, 2, "nothing written")
}

func TestOrderTransitions(t *testing.T) {
	st := testutil.NewStore(t)

	_, _, err := st.TransitionOrder("rest1", "order2", models.OrderPaid)
	assert.ErrorIs(t, err, status.ErrIllegalTransition)

	o, err := st.GetOrder("rest1", "order2")
	require.NoError(t, err)
	assert.Equal(t, models.OrderPending, o.Status)

	want := []models.OrderStatus{models.OrderPreparing, models.OrderReady, models.OrderServed, models.OrderPaid}
	for _, next := range want {
		before, after, err := st.AdvanceOrder("rest1", "order2")
		require.NoError(t, err)
		assert.NotEqual(t, before.Status, after.Status)
		assert.Equal(t, next, after.Status)
		assert.Equal(t, 9.99, after.TotalAmount)
	}

	_, _, err = st.AdvanceOrder("rest1", "order2")
	assert.ErrorIs(t, err, status.ErrIllegalTransition, "paid is terminal")

	_, _, err = st.AdvanceOrder("rest1", "order3")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestListOrders(t *testing.T) {
	st := testutil.NewStore(t)

	all, err := st.ListOrders("rest2", "")
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "order3", all[0].ID)
	require.Len(t, all[0].Items, 2)
	assert.Equal(t, "orderItem4", all[0].Items[0].ID)

	ready, err := st.ListOrders("rest2", models.OrderReady)
	require.NoError(t, err)
	require.Len(t, ready, 1)
	assert.Equal(t, "order4", ready[0].ID)

	none, err := st.ListOrders("rest1", models.OrderPaid)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestPopularMenuItems(t *testing.T) {
	st := testutil.NewStore(t)

	popular, err := st.PopularMenuItems("rest2", 3)
	require.NoError(t, err)
	require.Len(t, popular, 3)
	assert.Equal(t, "item6", popular[0].MenuItemID)
	assert.Equal(t, 4, popular[0].Quantity)
	assert.Equal(t, "California Roll", popular[1].Name)
	assert.Equal(t, "Miso Soup", popular[2].Name)
}
