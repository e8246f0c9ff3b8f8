package dashboard

import (
	"sort"

	"github.com/shopspring/decimal"

	"mktracker-backend/internal/filter"
	"mktracker-backend/internal/models"
)

const topN = 5

// BranchCost is one row of a top-N ranking, annotated with the branch's
// display label ("CODE Name"; placeholder when the branch id did not resolve).
type BranchCost struct {
	BranchID string          `json:"branchId"`
	Label    string          `json:"label"`
	Total    decimal.Decimal `json:"total"`
}

// MonthPoint is one bucket of the expense trend chart.
type MonthPoint struct {
	Month  string          `json:"month"` // "01".."12"
	Amount decimal.Decimal `json:"amount"`
}

// StatusBreakdown partitions machines by canonical status. The four counts
// always sum to the machine count; anything outside the three known label
// sets lands in Other.
type StatusBreakdown struct {
	Ready    int `json:"ready"`
	Repair   int `json:"repair"`
	Renovate int `json:"renovate"`
	Other    int `json:"other"`
}

// Stats is the full dashboard payload, computed over the already-filtered
// machine/expense/part snapshots.
type Stats struct {
	TotalExpenses   decimal.Decimal `json:"totalExpenses"`
	RepairCost      decimal.Decimal `json:"repairCost"`
	BranchCount     int             `json:"branchCount"`
	MachineCount    int             `json:"machineCount"`
	MonthlyExpenses []MonthPoint    `json:"monthlyExpenses"`
	MachineStatus   StatusBreakdown `json:"machineStatus"`
	TopExpenses     []BranchCost    `json:"topExpenses"`
	TopRepairCosts  []BranchCost    `json:"topRepairCosts"`
}

// Compute derives every dashboard metric in one pass over the filtered
// snapshots. Pure: no stored state, empty inputs give zero totals and empty
// rankings.
func Compute(branches []models.Branch, machines []models.Machine, expenses []models.Expense, parts []models.SparePart) Stats {
	idx := filter.IndexBranches(branches)
	return Stats{
		TotalExpenses:   TotalExpenses(expenses),
		RepairCost:      RepairCost(expenses, parts),
		BranchCount:     len(branches),
		MachineCount:    len(machines),
		MonthlyExpenses: MonthlySeries(expenses),
		MachineStatus:   MachineStatusBreakdown(machines),
		TopExpenses:     TopExpensesByBranch(expenses, idx),
		TopRepairCosts:  TopRepairCostsByBranch(expenses, parts, idx),
	}
}

// TotalExpenses sums expense amounts only. Parts cost is tracked separately
// and deliberately excluded here.
func TotalExpenses(expenses []models.Expense) decimal.Decimal {
	total := decimal.Zero
	for _, e := range expenses {
		total = total.Add(e.Amount)
	}
	return total
}

// RepairCost is the composite repair spend: repair/maintenance-typed expenses
// plus the total of ALL parts. Parts carry no category check on purpose —
// every spare-part line is repair work by definition in this business, even
// though the two halves of the sum are selected on different criteria. That
// conflation is the confirmed product rule, not an accident.
func RepairCost(expenses []models.Expense, parts []models.SparePart) decimal.Decimal {
	total := decimal.Zero
	for _, e := range expenses {
		if models.IsRepairExpenseType(e.Type) {
			total = total.Add(e.Amount)
		}
	}
	for _, p := range parts {
		total = total.Add(p.TotalPrice)
	}
	return total
}

// MonthlySeries buckets expense amounts into the twelve calendar months.
// Grouping is month-only: years collapse into the same bucket, matching the
// trend chart. The series follows TotalExpenses (expenses only, no parts).
func MonthlySeries(expenses []models.Expense) []MonthPoint {
	sums := make(map[string]decimal.Decimal, 12)
	for _, e := range expenses {
		m, _ := filter.MonthYear(e.Date)
		sums[m] = sums[m].Add(e.Amount)
	}

	points := make([]MonthPoint, 0, len(monthKeys))
	for _, key := range monthKeys {
		points = append(points, MonthPoint{Month: key, Amount: decimal.Zero.Add(sums[key])})
	}
	return points
}

var monthKeys = []string{"01", "02", "03", "04", "05", "06", "07", "08", "09", "10", "11", "12"}

// MachineStatusBreakdown counts machines per canonical status bucket.
func MachineStatusBreakdown(machines []models.Machine) StatusBreakdown {
	var b StatusBreakdown
	for _, m := range machines {
		switch models.CanonicalMachineStatus(m.Status) {
		case models.StatusReady:
			b.Ready++
		case models.StatusRepair:
			b.Repair++
		case models.StatusRenovate:
			b.Renovate++
		default:
			b.Other++
		}
	}
	return b
}

// TopExpensesByBranch ranks branches by summed expense amount, descending,
// first five only.
func TopExpensesByBranch(expenses []models.Expense, idx filter.BranchIndex) []BranchCost {
	ranking := newBranchRanking(idx)
	for _, e := range expenses {
		ranking.add(e.BranchID, e.Amount)
	}
	return ranking.top(topN)
}

// TopRepairCostsByBranch ranks branches by the repair composite: the union of
// repair/maintenance-typed expenses and all parts, grouped by branch. Ties
// keep encounter order (expenses first, then parts, each in input order).
func TopRepairCostsByBranch(expenses []models.Expense, parts []models.SparePart, idx filter.BranchIndex) []BranchCost {
	ranking := newBranchRanking(idx)
	for _, e := range expenses {
		if models.IsRepairExpenseType(e.Type) {
			ranking.add(e.BranchID, e.Amount)
		}
	}
	for _, p := range parts {
		ranking.add(p.BranchID, p.TotalPrice)
	}
	return ranking.top(topN)
}

// branchRanking accumulates per-branch sums while remembering first-seen
// order, so the final stable sort breaks ties by encounter order.
type branchRanking struct {
	idx    filter.BranchIndex
	totals map[string]decimal.Decimal
	order  []string
}

func newBranchRanking(idx filter.BranchIndex) *branchRanking {
	return &branchRanking{idx: idx, totals: make(map[string]decimal.Decimal)}
}

func (r *branchRanking) add(branchID string, amount decimal.Decimal) {
	if _, seen := r.totals[branchID]; !seen {
		r.order = append(r.order, branchID)
	}
	r.totals[branchID] = r.totals[branchID].Add(amount)
}

func (r *branchRanking) top(n int) []BranchCost {
	rows := make([]BranchCost, 0, len(r.order))
	for _, id := range r.order {
		rows = append(rows, BranchCost{
			BranchID: id,
			Label:    branchLabel(r.idx, id),
			Total:    r.totals[id],
		})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Total.GreaterThan(rows[j].Total)
	})
	if len(rows) > n {
		rows = rows[:n]
	}
	return rows
}

func branchLabel(idx filter.BranchIndex, branchID string) string {
	b, ok := idx[branchID]
	if !ok {
		return "N/A"
	}
	if b.Code == "" {
		return b.Name
	}
	return b.Code + " " + b.Name
}
