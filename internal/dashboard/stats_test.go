package dashboard

import (
	"fmt"
	"testing"

	"mktracker-backend/internal/filter"
	"mktracker-backend/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

var statBranches = []models.Branch{
	{ID: "b1", Code: "MK001", Name: "Central Ladprao"},
	{ID: "b2", Code: "MK002", Name: "Silom Complex"},
}

func TestComputeCompositeRepairCost(t *testing.T) {
	expenses := []models.Expense{
		{BranchID: "b1", Date: "2024-03-10", Type: "Repair", Amount: dec("100")},
		{BranchID: "b1", Date: "2024-03-12", Type: "Service", Amount: dec("50")},
	}
	parts := []models.SparePart{
		{BranchID: "b2", Date: "2024-03-20", TotalPrice: dec("250")},
	}

	s := Compute(statBranches, nil, expenses, parts)

	// Total counts expenses only; the repair composite adds every part.
	assert.Equal(t, "150", s.TotalExpenses.String())
	assert.Equal(t, "350", s.RepairCost.String())
	assert.Equal(t, 2, s.BranchCount)
	assert.Equal(t, 0, s.MachineCount)
}

func TestRepairCostThaiSpelling(t *testing.T) {
	expenses := []models.Expense{
		{Type: "ค่าซ่อมแซม", Amount: dec("10")},
		{Type: "ค่าบำรุงรักษา", Amount: dec("20")},
		{Type: "ค่าบริการ", Amount: dec("40")},
	}
	assert.Equal(t, "30", RepairCost(expenses, nil).String())
}

func TestComputeEmptyInputs(t *testing.T) {
	s := Compute(nil, nil, nil, nil)

	assert.True(t, s.TotalExpenses.IsZero())
	assert.True(t, s.RepairCost.IsZero())
	assert.Empty(t, s.TopExpenses)
	assert.Empty(t, s.TopRepairCosts)
	require.Len(t, s.MonthlyExpenses, 12)
	for _, p := range s.MonthlyExpenses {
		assert.True(t, p.Amount.IsZero())
	}
}

func TestMonthlySeriesCollapsesYears(t *testing.T) {
	expenses := []models.Expense{
		{Date: "2024-03-10", Amount: dec("100")},
		{Date: "2023-03-05", Amount: dec("40")},
		{Date: "2024-07-01", Amount: dec("5")},
	}

	points := MonthlySeries(expenses)
	require.Len(t, points, 12)
	assert.Equal(t, "03", points[2].Month)
	assert.Equal(t, "140", points[2].Amount.String())
	assert.Equal(t, "5", points[6].Amount.String())
	assert.True(t, points[0].Amount.IsZero())
}

func TestMachineStatusBreakdown(t *testing.T) {
	machines := []models.Machine{
		{Status: "พร้อมใช้งาน"},
		{Status: "Repair"},
		{Status: "mystery"},
	}

	b := MachineStatusBreakdown(machines)
	assert.Equal(t, 1, b.Ready)
	assert.Equal(t, 1, b.Repair)
	assert.Equal(t, 0, b.Renovate)
	assert.Equal(t, 1, b.Other)
	assert.Equal(t, len(machines), b.Ready+b.Repair+b.Renovate+b.Other)
}

func TestTopExpensesCapsAtFive(t *testing.T) {
	var branches []models.Branch
	var expenses []models.Expense
	for i := 1; i <= 7; i++ {
		id := fmt.Sprintf("b%d", i)
		branches = append(branches, models.Branch{ID: id, Code: fmt.Sprintf("MK%03d", i), Name: "Branch"})
		expenses = append(expenses, models.Expense{BranchID: id, Amount: decimal.NewFromInt(int64(i * 10))})
	}
	idx := filter.IndexBranches(branches)

	top := TopExpensesByBranch(expenses, idx)
	require.Len(t, top, 5)
	assert.Equal(t, "b7", top[0].BranchID)
	assert.Equal(t, "70", top[0].Total.String())
	for i := 1; i < len(top); i++ {
		assert.False(t, top[i].Total.GreaterThan(top[i-1].Total), "ranking must be descending")
	}
}

func TestTopExpensesTiesKeepEncounterOrder(t *testing.T) {
	expenses := []models.Expense{
		{BranchID: "b2", Amount: dec("100")},
		{BranchID: "b1", Amount: dec("100")},
	}
	idx := filter.IndexBranches(statBranches)

	top := TopExpensesByBranch(expenses, idx)
	require.Len(t, top, 2)
	assert.Equal(t, "b2", top[0].BranchID)
	assert.Equal(t, "b1", top[1].BranchID)
}

func TestTopRepairCostsUnionAndLabels(t *testing.T) {
	expenses := []models.Expense{
		{BranchID: "b1", Type: "Repair", Amount: dec("100")},
		{BranchID: "b1", Type: "Service", Amount: dec("999")}, // not repair-typed, excluded
	}
	parts := []models.SparePart{
		{BranchID: "ghost", TotalPrice: dec("300")},
	}
	idx := filter.IndexBranches(statBranches)

	top := TopRepairCostsByBranch(expenses, parts, idx)
	require.Len(t, top, 2)

	assert.Equal(t, "ghost", top[0].BranchID)
	assert.Equal(t, "N/A", top[0].Label, "unresolved branch keeps its row under a placeholder label")
	assert.Equal(t, "300", top[0].Total.String())

	assert.Equal(t, "MK001 Central Ladprao", top[1].Label)
	assert.Equal(t, "100", top[1].Total.String())
}
