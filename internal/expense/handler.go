package expense

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

type ExpenseRequest struct {
	BranchID   string          `json:"branchId"`
	Date       string          `json:"date"`
	Type       string          `json:"type"`
	Detail     string          `json:"detail"`
	Amount     decimal.Decimal `json:"amount"`
	Technician string          `json:"technician"`
}

// GET /api/expenses?search=&month=&year=&phase=&branch_id=&category=
func ListHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var expenses []models.Expense
		if err := database.DB.Order("created_at DESC").Find(&expenses).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not load expenses")
		}
		var branches []models.Branch
		if err := database.DB.Find(&branches).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not load branches")
		}
		idx := filter.IndexBranches(branches)

		f := filter.FromQuery(c)
		out := make([]models.Expense, 0, len(expenses))
		for _, e := range expenses {
			if filter.MatchExpense(e, f, idx) {
				out = append(out, e)
			}
		}
		return c.JSON(out)
	}
}

// POST /api/expenses
func CreateHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body ExpenseRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		if err := validate(&body); err != nil {
			return err
		}

		e := models.Expense{
			BranchID:   body.BranchID,
			Date:       importer.NormalizeDate(body.Date),
			Type:       strings.TrimSpace(body.Type),
			Detail:     body.Detail,
			Amount:     body.Amount,
			Technician: body.Technician,
		}

		if err := database.DB.Create(&e).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not create expense")
		}
		return c.Status(fiber.StatusCreated).JSON(e)
	}
}

// PUT /api/expenses/:id — full replace.
func UpdateHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var e models.Expense
		if err := database.DB.First(&e, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Expense not found")
		}

		var body ExpenseRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		if err := validate(&body); err != nil {
			return err
		}

		e.BranchID = body.BranchID
		e.Date = importer.NormalizeDate(body.Date)
		e.Type = strings.TrimSpace(body.Type)
		e.Detail = body.Detail
		e.Amount = body.Amount
		e.Technician = body.Technician

		if err := database.DB.Save(&e).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not update expense")
		}
		return c.JSON(e)
	}
}

// DELETE /api/expenses/:id
func DeleteHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		res := database.DB.Delete(&models.Expense{}, "id = ?", c.Params("id"))
		if res.Error != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not delete expense")
		}
		if res.RowsAffected == 0 {
			return fiber.NewError(fiber.StatusNotFound, "Expense not found")
		}
		return c.JSON(fiber.Map{"success": true})
	}
}

// DELETE /api/expenses
func ClearAllHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := database.DB.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.Expense{}).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not clear expenses")
		}
		return c.JSON(fiber.Map{"success": true})
	}
}

func validate(body *ExpenseRequest) error {
	if strings.TrimSpace(body.Type) == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Expense type is required")
	}
	if body.Amount.IsNegative() {
		return fiber.NewError(fiber.StatusBadRequest, "Amount cannot be negative")
	}
	return nil
}
