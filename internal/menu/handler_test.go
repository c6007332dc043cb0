package menu_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"restaurant-hub/internal/menu"
	"restaurant-hub/internal/models"
	"restaurant-hub/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestListMenu(t *testing.T) {
	app := testutil.NewApp(t)
	token := app.LoginItalian(t)

	status, raw := app.Do(t, http.MethodGet, "/api/menu-items", token, nil)
	require.Equal(t, http.StatusOK, status)
	var items []models.MenuItem
	testutil.Decode(t, raw, &items)
	assert.Len(t, items, 4)

	status, raw = app.Do(t, http.MethodGet, "/api/menu-items?category=Pasta", token, nil)
	require.Equal(t, http.StatusOK, status)
	items = nil
	testutil.Decode(t, raw, &items)
	require.Len(t, items, 1)
	assert.Equal(t, "Spaghetti Carbonara", items[0].Name)

	status, raw = app.Do(t, http.MethodGet, "/api/menu-categories", token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `["Appetizer","Dessert","Pasta","Pizza"]`, string(raw))
}

func TestMenuItemLifecycle(t *testing.T) {
	app := testutil.NewApp(t)
	token := app.LoginItalian(t)

	status, raw := app.Do(t, http.MethodPost, "/api/menu-items", token, map[string]any{
		"name":        "Limonata",
		"description": "Sparkling lemon soda",
		"price":       "3.50",
		"category":    "Beverages",
	})
	require.Equal(t, http.StatusCreated, status, string(raw))
	var created models.MenuItem
	testutil.Decode(t, raw, &created)
	assert.Equal(t, "rest1", created.RestaurantID)
	assert.Equal(t, 3.5, created.Price)
	assert.NotEmpty(t, created.Image)

	_, raw = app.Do(t, http.MethodGet, "/api/menu-categories", token, nil)
	assert.JSONEq(t, `["Appetizer","Beverages","Dessert","Pasta","Pizza"]`, string(raw))

	status, raw = app.Do(t, http.MethodPut, "/api/menu-items/"+created.ID, token, map[string]any{
		"name":        "Limonata",
		"description": "Sparkling lemon soda",
		"price":       4,
		"category":    "Drinks",
		"image":       created.Image,
	})
	require.Equal(t, http.StatusOK, status, string(raw))
	var updated models.MenuItem
	testutil.Decode(t, raw, &updated)
	assert.Equal(t, 4.0, updated.Price)
	assert.Equal(t, "Drinks", updated.Category)

	status, _ = app.Do(t, http.MethodDelete, "/api/menu-items/"+created.ID, token, nil)
	assert.Equal(t, http.StatusNoContent, status)

	_, raw = app.Do(t, http.MethodGet, "/api/menu-categories", token, nil)
	assert.JSONEq(t, `["Appetizer","Dessert","Pasta","Pizza"]`, string(raw))

	status, _ = app.Do(t, http.MethodDelete, "/api/menu-items/"+created.ID, token, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestMenuItemValidation(t *testing.T) {
	app := testutil.NewApp(t)
	token := app.LoginItalian(t)

	status, raw := app.Do(t, http.MethodPost, "/api/menu-items", token, map[string]any{
		"name":     "Free lunch",
		"price":    "0",
		"category": "Specials",
	})
	require.Equal(t, http.StatusUnprocessableEntity, status)

	var res struct {
		Errors map[string]string `json:"errors"`
	}
	testutil.Decode(t, raw, &res)
	assert.Equal(t, "Description is required", res.Errors["description"])
	assert.Equal(t, "Price must be greater than 0", res.Errors["price"])

	status, _ = app.Do(t, http.MethodPut, "/api/menu-items/item1", token, map[string]any{
		"name":        "Margherita Pizza",
		"description": "Classic",
		"price":       12.99,
		"category":    "Pizza",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, status, "image is required on update")
}

func TestMenuIsScopedToTheSession(t *testing.T) {
	app := testutil.NewApp(t)
	token := app.LoginSushi(t)

	status, _ := app.Do(t, http.MethodPut, "/api/menu-items/item1", token, map[string]any{
		"name":        "Stolen Pizza",
		"description": "Not yours",
		"price":       1,
		"category":    "Pizza",
		"image":       "https://example.com/x.jpg",
	})
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = app.Do(t, http.MethodDelete, "/api/menu-items/item1", token, nil)
	assert.Equal(t, http.StatusNotFound, status)

	item, err := app.Store.GetMenuItem("rest1", "item1")
	require.NoError(t, err)
	assert.Equal(t, "Margherita Pizza", item.Name)
}

func TestRandomImage(t *testing.T) {
	app := testutil.NewApp(t)
	token := app.LoginItalian(t)

	status, raw := app.Do(t, http.MethodGet, "/api/menu-items/random-image?seed=pizza", token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"image":"https://picsum.photos/seed/pizza/300/200"}`, string(raw))
}

func menuWorkbook(t *testing.T, rows [][]any) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cellName, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cellName, &row))
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func TestReadMenuSheet(t *testing.T) {
	buf := menuWorkbook(t, [][]any{
		{"Name", "Description", "Price", "Category", "Image"},
		{"Bruschetta", "Grilled bread with tomato", "6.50", "Appetizer"},
		{"", "  ", ""},
		{"Panna Cotta", "Vanilla cream", "7", "Dessert", "https://example.com/pc.jpg"},
	})

	rows, err := menu.ReadMenuSheet(buf)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, 2, rows[0].Row)
	assert.Equal(t, "Bruschetta", rows[0].Request.Name)
	assert.Equal(t, menu.PriceInput("6.50"), rows[0].Request.Price)
	assert.Empty(t, rows[0].Request.Image)
	assert.Equal(t, 4, rows[1].Row)
	assert.Equal(t, "https://example.com/pc.jpg", rows[1].Request.Image)

	_, err = menu.ReadMenuSheet(bytes.NewReader([]byte("not a workbook")))
	assert.Error(t, err)
}

func TestImportMenuItems(t *testing.T) {
	app := testutil.NewApp(t)
	token := app.LoginItalian(t)

	sheet := menuWorkbook(t, [][]any{
		{"name", "description", "price", "category", "image"},
		{"Bruschetta", "Grilled bread with tomato", "6.50", "Appetizer"},
		{"Broken", "", "1.234", "Specials"},
		{"Espresso", "Short and strong", "2", "Beverages"},
	})

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("file", "menu.xlsx")
	require.NoError(t, err)
	_, err = part.Write(sheet.Bytes())
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/menu-items/import", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)

	status, raw := app.Send(t, req)
	require.Equal(t, http.StatusOK, status, string(raw))

	var res menu.ImportResult
	testutil.Decode(t, raw, &res)
	require.Len(t, res.Imported, 2)
	require.Len(t, res.Failed, 1)
	assert.Equal(t, 3, res.Failed[0].Row)
	assert.Equal(t, "Description is required", res.Failed[0].Errors["description"])

	cats, err := app.Store.Categories("rest1")
	require.NoError(t, err)
	assert.Contains(t, cats, "Beverages")
	assert.NotContains(t, cats, "Specials")
}

func TestImportRejectsOtherFiles(t *testing.T) {
	app := testutil.NewApp(t)
	token := app.LoginItalian(t)

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("file", "menu.csv")
	require.NoError(t, err)
	_, err = part.Write([]byte("name,price\n"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/menu-items/import", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)

	status, _ := app.Send(t, req)
	assert.Equal(t, http.StatusBadRequest, status)
}
