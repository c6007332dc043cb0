package menu

import (
	"fmt"
	"log/slog"

	"restaurant-hub/internal/audit"
	"restaurant-hub/internal/auth"
	"restaurant-hub/internal/models"
	"restaurant-hub/internal/store"

	"github.com/gofiber/fiber/v2"
)

// GET /api/menu-items
func ListMenuItemsHandler(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		restaurantID, err := auth.RestaurantScope(c)
		if err != nil {
			return err
		}

		items, err := st.ListMenuItems(restaurantID)
		if err != nil {
			return err
		}
		if category := c.Query("category"); category != "" {
			filtered := make([]models.MenuItem, 0, len(items))
			for _, it := range items {
				if it.Category == category {
					filtered = append(filtered, it)
				}
			}
			items = filtered
		}
		return c.JSON(items)
	}
}

// GET /api/menu-categories
func ListCategoriesHandler(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		restaurantID, err := auth.RestaurantScope(c)
		if err != nil {
			return err
		}

		categories, err := st.Categories(restaurantID)
		if err != nil {
			return err
		}
		return c.JSON(categories)
	}
}

// GET /api/menu-items/random-image?seed=...
func RandomImageHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"image": RandomImageURL(c.Query("seed"))})
	}
}

// POST /api/menu-items
func CreateMenuItemHandler(st *store.Store, al *audit.Service, log *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		restaurantID, err := auth.RestaurantScope(c)
		if err != nil {
			return err
		}

		var body MenuItemRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		fields, err := validateMenuItem(body, false)
		if err != nil {
			return err
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

		audit.Record(c, al, log, audit.LogOptions{
			RestaurantID: restaurantID,
			EntityType:   audit.EntityMenuItem,
			EntityID:     item.ID,
			Action:       models.AuditActionCreate,
			Description:  fmt.Sprintf("Menu item %q added", item.Name),
			After:        item,
		})

		return c.Status(fiber.StatusCreated).JSON(item)
	}
}

// PUT /api/menu-items/:id
func UpdateMenuItemHandler(st *store.Store, al *audit.Service, log *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		restaurantID, err := auth.RestaurantScope(c)
		if err != nil {
			return err
		}

		before, err := st.GetMenuItem(restaurantID, c.Params("id"))
		if err != nil {
			return err
		}

		var body MenuItemRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		fields, err := validateMenuItem(body, true)
		if err != nil {
			return err
		}

		item := *before
		item.Name = fields.Name
		item.Description = fields.Description
		item.Price = fields.Price
		item.Category = fields.Category
		item.Image = fields.Image
		if err := st.UpdateMenuItem(&item); err != nil {
			return err
		}

		audit.Record(c, al, log, audit.LogOptions{
			RestaurantID: restaurantID,
			EntityType:   audit.EntityMenuItem,
			EntityID:     item.ID,
			Action:       models.AuditActionUpdate,
			Description:  fmt.Sprintf("Menu item %q updated", item.Name),
			Before:       before,
			After:        item,
		})

		return c.JSON(item)
	}
}

// DELETE /api/menu-items/:id
func DeleteMenuItemHandler(st *store.Store, al *audit.Service, log *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		restaurantID, err := auth.RestaurantScope(c)
		if err != nil {
			return err
		}

		removed, err := st.DeleteMenuItem(restaurantID, c.Params("id"))
		if err != nil {
			return err
		}

		audit.Record(c, al, log, audit.LogOptions{
			RestaurantID: restaurantID,
			EntityType:   audit.EntityMenuItem,
			EntityID:     removed.ID,
			Action:       models.AuditActionDelete,
			Description:  fmt.Sprintf("Menu item %q deleted", removed.Name),
			Before:       removed,
		})

		return c.SendStatus(fiber.StatusNoContent)
	}
}
