package importer

import "mktracker-backend/internal/models"

// ResolveBranchID maps a loose branch reference from an imported sheet — the
// branch name, its code, or already the id — to the branch id. The first
// branch matching any of the three wins. An unmatched value passes through
// unchanged: the row stays importable and surfaces later as an unresolved
// reference instead of being dropped.
func ResolveBranchID(value string, branches []models.Branch) string {
	for _, b := range branches {
		if value == b.Name || value == b.Code || value == b.ID {
			return b.ID
		}
	}
	return value
}
