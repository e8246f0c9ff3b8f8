package machine

import (
	"strings"
	"time"

	"mktracker-backend/internal/database"
	"mktracker-backend/internal/filter"
	"mktracker-backend/internal/importer"
	"mktracker-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type MachineRequest struct {
	BranchID    string `json:"branchId"`
	Name        string `json:"name"`
	SN          string `json:"sn"`
	InstallDate string `json:"installDate"`
	POS         string `json:"pos"`
	Status      string `json:"status"`
	Remark      string `json:"remark"`
}

type MachineResponse struct {
	models.Machine
	Age string `json:"age"`
}

// GET /api/machines?search=&phase=&branch_id=
func ListHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var machines []models.Machine
		if err := database.DB.Order("created_at DESC").Find(&machines).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not load machines")
		}
		var branches []models.Branch
		if err := database.DB.Find(&branches).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not load branches")
		}
		idx := filter.IndexBranches(branches)

		f := filter.FromQuery(c)
		now := time.Now()
		out := make([]MachineResponse, 0, len(machines))
		for _, m := range machines {
			if filter.MatchMachine(m, f, idx) {
				out = append(out, MachineResponse{Machine: m, Age: AgeString(m.InstallDate, now)})
			}
		}
		return c.JSON(out)
	}
}

// POST /api/machines
func CreateHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body MachineRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		if strings.TrimSpace(body.Name) == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Machine name is required")
		}

		m := models.Machine{
			BranchID:    body.BranchID,
			Name:        strings.TrimSpace(body.Name),
			SN:          strings.TrimSpace(body.SN),
			InstallDate: importer.NormalizeDate(body.InstallDate),
			POS:         body.POS,
			Status:      body.Status,
			Remark:      body.Remark,
		}

		if err := database.DB.Create(&m).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not create machine")
		}
		return c.Status(fiber.StatusCreated).JSON(m)
	}
}

// PUT /api/machines/:id — full replace.
func UpdateHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var m models.Machine
		if err := database.DB.First(&m, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Machine not found")
		}

		var body MachineRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		if strings.TrimSpace(body.Name) == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Machine name is required")
		}

		m.BranchID = body.BranchID
		m.Name = strings.TrimSpace(body.Name)
		m.SN = strings.TrimSpace(body.SN)
		m.InstallDate = importer.NormalizeDate(body.InstallDate)
		m.POS = body.POS
		m.Status = body.Status
		m.Remark = body.Remark

		if err := database.DB.Save(&m).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not update machine")
		}
		return c.JSON(m)
	}
}

// DELETE /api/machines/:id
func DeleteHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		res := database.DB.Delete(&models.Machine{}, "id = ?", c.Params("id"))
		if res.Error != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not delete machine")
		}
		if res.RowsAffected == 0 {
			return fiber.NewError(fiber.StatusNotFound, "Machine not found")
		}
		return c.JSON(fiber.Map{"success": true})
	}
}

// DELETE /api/machines
func ClearAllHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := database.DB.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.Machine{}).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not clear machines")
		}
		return c.JSON(fiber.Map{"success": true})
	}
}
