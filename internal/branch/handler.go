package branch

import (
	"strings"

	"mktracker-backend/internal/database"
	"mktracker-backend/internal/filter"
	"mktracker-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type BranchRequest struct {
	Code     string `json:"code"`
	Name     string `json:"name"`
	Province string `json:"province"`
	Phone    string `json:"phone"`
	Type     string `json:"type"`
	Phase    string `json:"phase"`
	Zone     string `json:"zone"`
}

// GET /api/branches?search=&phase=
func ListHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var branches []models.Branch
		if err := database.DB.Order("created_at DESC").Find(&branches).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not load branches")
		}

		f := filter.FromQuery(c)
		out := make([]models.Branch, 0, len(branches))
		for _, b := range branches {
			if filter.MatchBranch(b, f) {
				out = append(out, b)
			}
		}
		return c.JSON(out)
	}
}

// POST /api/branches
func CreateHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body BranchRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		if strings.TrimSpace(body.Name) == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Branch name is required")
		}

		b := models.Branch{
			Code:     strings.TrimSpace(body.Code),
			Name:     strings.TrimSpace(body.Name),
			Province: body.Province,
			Phone:    body.Phone,
			Type:     body.Type,
			Phase:    body.Phase,
			Zone:     body.Zone,
		}
		if b.Phase == "" {
			b.Phase = "1"
		}
		if b.Zone == "" {
			b.Zone = models.ZoneBKK
		}

		if err := database.DB.Create(&b).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not create branch")
		}
		return c.Status(fiber.StatusCreated).JSON(b)
	}
}

// PUT /api/branches/:id — full replace.
func UpdateHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var b models.Branch
		if err := database.DB.First(&b, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Branch not found")
		}

		var body BranchRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		if strings.TrimSpace(body.Name) == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Branch name is required")
		}

		b.Code = strings.TrimSpace(body.Code)
		b.Name = strings.TrimSpace(body.Name)
		b.Province = body.Province
		b.Phone = body.Phone
		b.Type = body.Type
		b.Phase = body.Phase
		b.Zone = body.Zone

		if err := database.DB.Save(&b).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not update branch")
		}
		return c.JSON(b)
	}
}

// DELETE /api/branches/:id
//
// Records that reference the branch are left in place and show up as
// unresolved references afterwards.
func DeleteHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		res := database.DB.Delete(&models.Branch{}, "id = ?", id)
		if res.Error != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not delete branch")
		}
		if res.RowsAffected == 0 {
			return fiber.NewError(fiber.StatusNotFound, "Branch not found")
		}
		return c.JSON(fiber.Map{"success": true})
	}
}

// DELETE /api/branches
func ClearAllHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := database.DB.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.Branch{}).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not clear branches")
		}
		return c.JSON(fiber.Map{"success": true})
	}
}
