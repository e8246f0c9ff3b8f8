package filter

import "github.com/gofiber/fiber/v2"

// FromQuery builds a filter state from list/export query params. Absent
// params default to the bypass sentinel so an unfiltered request is the
// identity filter.
func FromQuery(c *fiber.Ctx) Filters {
	return Filters{
		Search:   c.Query("search"),
		Month:    c.Query("month", All),
		Year:     c.Query("year", All),
		Phase:    c.Query("phase", All),
		BranchID: c.Query("branch_id", All),
		Category: c.Query("category", All),
	}
}
