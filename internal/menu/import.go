package menu

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"restaurant-hub/internal/audit"
	"restaurant-hub/internal/auth"
	"restaurant-hub/internal/models"
	"restaurant-hub/internal/store"
	"restaurant-hub/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
)

// ImportRow is one spreadsheet row; Row is 1-based as shown in the sheet.
type ImportRow struct {
	Row     int
	Request MenuItemRequest
}

type ImportRowError struct {
	Row    int               `json:"row"`
	Errors validation.Errors `json:"errors"`
}

type ImportResult struct {
	Imported []models.MenuItem `json:"imported"`
	Failed   []ImportRowError  `json:"failed"`
}

// ReadMenuSheet reads rows of name, description, price, category, image from
// the first sheet. A header row starting with "name" is skipped, as are empty
// rows.
func ReadMenuSheet(r io.Reader) ([]ImportRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("read spreadsheet: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("read spreadsheet: no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}

	out := make([]ImportRow, 0, len(rows))
	for i, row := range rows {
		if i == 0 && len(row) > 0 && strings.EqualFold(strings.TrimSpace(row[0]), "name") {
			continue
		}
		if isBlank(row) {
			continue
		}
		out = append(out, ImportRow{
			Row: i + 1,
			Request: MenuItemRequest{
				Name:        cell(row, 0),
				Description: cell(row, 1),
				Price:       PriceInput(cell(row, 2)),
				Category:    cell(row, 3),
				Image:       cell(row, 4),
			},
		})
	}
	return out, nil
}

func cell(row []string, i int) string {
	if i < len(row) {
		return strings.TrimSpace(row[i])
	}
	return ""
}

func isBlank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// POST /api/menu-items/import (multipart, field "file")
func ImportMenuItemsHandler(st *store.Store, al *audit.Service, log *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		restaurantID, err := auth.RestaurantScope(c)
		if err != nil {
			return err
		}

		fileHeader, err := c.FormFile("file")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "File upload failed: "+err.Error())
		}
		if !strings.HasSuffix(strings.ToLower(fileHeader.Filename), ".xlsx") {
			return fiber.NewError(fiber.StatusBadRequest, "Only .xlsx files can be imported")
		}

		file, err := fileHeader.Open()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not open upload")
		}
		defer file.Close()

		rows, err := ReadMenuSheet(file)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if len(rows) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Spreadsheet has no menu rows")
		}

		result := ImportResult{
			Imported: make([]models.MenuItem, 0, len(rows)),
			Failed:   make([]ImportRowError, 0),
		}
		for _, row := range rows {
			fields, err := validateMenuItem(row.Request, false)
			if err != nil {
				errs, ok := validation.As(err)
				if !ok {
					return err
				}
				result.Failed = append(result.Failed, ImportRowError{Row: row.Row, Errors: errs})
				continue
			}

			item := models.MenuItem{
				RestaurantID: restaurantID,
				Name:         fields.Name,
				Description:  fields.Description,
				Price:        fields.Price,
				Category:     fields.Category,
				Image:        fields.Image,
			}
			if err := st.CreateMenuItem(&item); err != nil {
				return err
			}
			result.Imported = append(result.Imported, item)

			audit.Record(c, al, log, audit.LogOptions{
				RestaurantID: restaurantID,
				EntityType:   audit.EntityMenuItem,
				EntityID:     item.ID,
				Action:       models.AuditActionCreate,
				Description:  fmt.Sprintf("Menu item %q imported from %s row %d", item.Name, fileHeader.Filename, row.Row),
				After:        item,
			})
		}

		log.Info("menu import finished",
			"restaurant_id", restaurantID,
			"imported", len(result.Imported),
			"failed", len(result.Failed),
		)
		return c.JSON(result)
	}
}
