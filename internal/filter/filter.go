package filter

import (
	"strings"
	"time"

	"mktracker-backend/internal/models"
)

// All is the sentinel that disables a filter dimension.
const All = "All"

// Filters is one immutable filter state. Evaluation is pure: the same Filters
// value gives the same verdict for a record regardless of order or repetition,
// so callers re-run it freely on every state change. Active dimensions are
// AND-combined; the zero value (empty search, everything "All") matches every
// record.
type Filters struct {
	Search   string
	Month    string // "01".."12" or All
	Year     string // "2022".. or All
	Phase    string
	BranchID string
	Category string
}

// BranchIndex resolves branchId joins during matching. Lookups are defensive:
// a missing branch simply fails branch-joined dimensions.
type BranchIndex map[string]models.Branch

func IndexBranches(branches []models.Branch) BranchIndex {
	idx := make(BranchIndex, len(branches))
	for _, b := range branches {
		idx[b.ID] = b
	}
	return idx
}

// MatchBranch evaluates the dimensions that apply to a branch row: search on
// the branch name and the phase tag. Branches carry no date, branch or
// category dimension.
func MatchBranch(b models.Branch, f Filters) bool {
	if !searchMatches(f.Search, b.Name) {
		return false
	}
	if f.Phase != "" && f.Phase != All && b.Phase != f.Phase {
		return false
	}
	return true
}

// MatchMachine evaluates a machine against the filter set. The date dimension
// reads installDate; category does not apply to machines.
func MatchMachine(m models.Machine, f Filters, idx BranchIndex) bool {
	branch, joined := idx[m.BranchID]
	if !searchMatches(f.Search, m.Name, m.SN, branch.Name) {
		return false
	}
	if !matchesMonthYear(m.InstallDate, f) {
		return false
	}
	if !matchesPhase(branch, joined, f) {
		return false
	}
	return matchesBranch(m.BranchID, f)
}

// MatchExpense evaluates an expense. Category compares canonicalized labels,
// so the Thai and English spellings of one preset are the same category.
func MatchExpense(e models.Expense, f Filters, idx BranchIndex) bool {
	branch, joined := idx[e.BranchID]
	if !searchMatches(f.Search, e.Detail, branch.Name) {
		return false
	}
	if !matchesMonthYear(e.Date, f) {
		return false
	}
	if !matchesPhase(branch, joined, f) {
		return false
	}
	if !matchesBranch(e.BranchID, f) {
		return false
	}
	if f.Category != "" && f.Category != All {
		if models.CanonicalExpenseType(e.Type) != models.CanonicalExpenseType(f.Category) {
			return false
		}
	}
	return true
}

// MatchPart evaluates a spare-part line. The category dimension matches the
// repaired device.
func MatchPart(p models.SparePart, f Filters, idx BranchIndex) bool {
	branch, joined := idx[p.BranchID]
	if !searchMatches(f.Search, p.PartName, p.Device, branch.Name) {
		return false
	}
	if !matchesMonthYear(p.Date, f) {
		return false
	}
	if !matchesPhase(branch, joined, f) {
		return false
	}
	if !matchesBranch(p.BranchID, f) {
		return false
	}
	if f.Category != "" && f.Category != All && p.Device != f.Category {
		return false
	}
	return true
}

// searchMatches is the OR across a record's text fields: empty search is
// vacuously true, otherwise any single case-insensitive substring hit wins.
func searchMatches(search string, fields ...string) bool {
	if search == "" {
		return true
	}
	needle := strings.ToLower(search)
	for _, field := range fields {
		if field == "" {
			continue
		}
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

func matchesMonthYear(date string, f Filters) bool {
	monthActive := f.Month != "" && f.Month != All
	yearActive := f.Year != "" && f.Year != All
	if !monthActive && !yearActive {
		return true
	}
	m, y := MonthYear(date)
	if monthActive && m != f.Month {
		return false
	}
	if yearActive && y != f.Year {
		return false
	}
	return true
}

func matchesPhase(branch models.Branch, joined bool, f Filters) bool {
	if f.Phase == "" || f.Phase == All {
		return true
	}
	return joined && branch.Phase == f.Phase
}

func matchesBranch(branchID string, f Filters) bool {
	if f.BranchID == "" || f.BranchID == All {
		return true
	}
	return branchID == f.BranchID
}

var dateLayouts = []string{"2006-01-02", time.RFC3339, "2006-01-02 15:04:05"}

// MonthYear extracts the zero-padded month and four-digit year from a
// canonical date string. An unparseable date degrades to the current period
// instead of failing, mirroring the normalizer's fallback.
func MonthYear(date string) (month, year string) {
	t := time.Now()
	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, strings.TrimSpace(date)); err == nil {
			t = parsed
			break
		}
	}
	return t.Format("01"), t.Format("2006")
}
