package dashboard

import (
	"mktracker-backend/internal/database"
	"mktracker-backend/internal/filter"
	"mktracker-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GET /api/dashboard/stats?search=&month=&year=&phase=&branch_id=&category=
//
// Loads the latest snapshot of every collection, narrows expenses, parts and
// machines with the active filter set, and returns the derived metrics. The
// branch list stays unfiltered so counts and ranking labels cover the whole
// chain.
func StatsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		f := filter.FromQuery(c)

		var branches []models.Branch
		if err := database.DB.Find(&branches).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not load branches")
		}
		var machines []models.Machine
		if err := database.DB.Find(&machines).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not load machines")
		}
		var expenses []models.Expense
		if err := database.DB.Find(&expenses).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not load expenses")
		}
		var parts []models.SparePart
		if err := database.DB.Find(&parts).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not load spare parts")
		}

		idx := filter.IndexBranches(branches)

		filteredMachines := make([]models.Machine, 0, len(machines))
		for _, m := range machines {
			if filter.MatchMachine(m, f, idx) {
				filteredMachines = append(filteredMachines, m)
			}
		}
		filteredExpenses := make([]models.Expense, 0, len(expenses))
		for _, e := range expenses {
			if filter.MatchExpense(e, f, idx) {
				filteredExpenses = append(filteredExpenses, e)
			}
		}
		filteredParts := make([]models.SparePart, 0, len(parts))
		for _, p := range parts {
			if filter.MatchPart(p, f, idx) {
				filteredParts = append(filteredParts, p)
			}
		}

		return c.JSON(Compute(branches, filteredMachines, filteredExpenses, filteredParts))
	}
}
