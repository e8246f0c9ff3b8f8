package sparepart

import (
	"strings"

	"mktracker-backend/internal/database"
	"mktracker-backend/internal/filter"
	"mktracker-backend/internal/importer"
	"mktracker-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type SparePartRequest struct {
	BranchID   string          `json:"branchId"`
	Date       string          `json:"date"`
	Device     string          `json:"device"`
	PartName   string          `json:"partName"`
	Qty        int             `json:"qty"`
	UnitPrice  decimal.Decimal `json:"unitPrice"`
	Technician string          `json:"technician"`
}

// GET /api/parts?search=&month=&year=&phase=&branch_id=&category=
func ListHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var parts []models.SparePart
		if err := database.DB.Order("created_at DESC").Find(&parts).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not load spare parts")
		}
		var branches []models.Branch
		if err := database.DB.Find(&branches).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not load branches")
		}
		idx := filter.IndexBranches(branches)

		f := filter.FromQuery(c)
		out := make([]models.SparePart, 0, len(parts))
		for _, p := range parts {
			if filter.MatchPart(p, f, idx) {
				out = append(out, p)
			}
		}
		return c.JSON(out)
	}
}

// POST /api/parts
//
// totalPrice is always derived as qty * unitPrice; the request cannot set it.
func CreateHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body SparePartRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		if err := validate(&body); err != nil {
			return err
		}

		p := models.SparePart{
			BranchID:   body.BranchID,
			Date:       importer.NormalizeDate(body.Date),
			Device:     strings.TrimSpace(body.Device),
			PartName:   strings.TrimSpace(body.PartName),
			Qty:        body.Qty,
			UnitPrice:  body.UnitPrice,
			Technician: body.Technician,
		}

		if err := database.DB.Create(&p).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not create spare part")
		}
		return c.Status(fiber.StatusCreated).JSON(p)
	}
}

// PUT /api/parts/:id — full replace.
func UpdateHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var p models.SparePart
		if err := database.DB.First(&p, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Spare part not found")
		}

		var body SparePartRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		if err := validate(&body); err != nil {
			return err
		}

		p.BranchID = body.BranchID
		p.Date = importer.NormalizeDate(body.Date)
		p.Device = strings.TrimSpace(body.Device)
		p.PartName = strings.TrimSpace(body.PartName)
		p.Qty = body.Qty
		p.UnitPrice = body.UnitPrice
		p.Technician = body.Technician

		if err := database.DB.Save(&p).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not update spare part")
		}
		return c.JSON(p)
	}
}

// DELETE /api/parts/:id
func DeleteHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		res := database.DB.Delete(&models.SparePart{}, "id = ?", c.Params("id"))
		if res.Error != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not delete spare part")
		}
		if res.RowsAffected == 0 {
			return fiber.NewError(fiber.StatusNotFound, "Spare part not found")
		}
		return c.JSON(fiber.Map{"success": true})
	}
}

// DELETE /api/parts
func ClearAllHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := database.DB.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.SparePart{}).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not clear spare parts")
		}
		return c.JSON(fiber.Map{"success": true})
	}
}

func validate(body *SparePartRequest) error {
	if strings.TrimSpace(body.PartName) == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Part name is required")
	}
	if body.Qty < 0 {
		return fiber.NewError(fiber.StatusBadRequest, "Quantity cannot be negative")
	}
	if body.UnitPrice.IsNegative() {
		return fiber.NewError(fiber.StatusBadRequest, "Unit price cannot be negative")
	}
	return nil
}
