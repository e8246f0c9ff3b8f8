package filter

import (
	"testing"
	"time"

	"mktracker-backend/internal/models"

	"github.com/stretchr/testify/assert"
)

var (
	central = models.Branch{ID: "b1", Code: "MK001", Name: "Central Ladprao", Phase: "1"}
	silom   = models.Branch{ID: "b2", Code: "MK002", Name: "Silom Complex", Phase: "2"}
	idx     = IndexBranches([]models.Branch{central, silom})
)

func TestZeroFiltersMatchEverything(t *testing.T) {
	f := Filters{}

	assert.True(t, MatchBranch(central, f))
	assert.True(t, MatchMachine(models.Machine{BranchID: "b1", Name: "POS"}, f, idx))
	assert.True(t, MatchExpense(models.Expense{BranchID: "b1", Date: "2024-01-10"}, f, idx))
	assert.True(t, MatchPart(models.SparePart{BranchID: "b2", PartName: "Coil"}, f, idx))
}

func TestAllSentinelDisablesDimension(t *testing.T) {
	f := Filters{Month: All, Year: All, Phase: All, BranchID: All, Category: All}
	assert.True(t, MatchExpense(models.Expense{BranchID: "b1", Date: "2024-01-10", Type: "Repair"}, f, idx))
}

func TestSearchJoinsBranchName(t *testing.T) {
	e := models.Expense{BranchID: "b1", Date: "2024-01-10", Detail: "compressor swap"}

	assert.True(t, MatchExpense(e, Filters{Search: "central"}, idx), "hits the joined branch name, case-insensitive")
	assert.True(t, MatchExpense(e, Filters{Search: "COMPRESSOR"}, idx))
	assert.False(t, MatchExpense(e, Filters{Search: "xyz"}, idx))
}

func TestSearchMachineFields(t *testing.T) {
	m := models.Machine{BranchID: "b2", Name: "KDS Screen", SN: "SN-778", InstallDate: "2023-06-01"}

	assert.True(t, MatchMachine(m, Filters{Search: "778"}, idx))
	assert.True(t, MatchMachine(m, Filters{Search: "silom"}, idx))
	assert.False(t, MatchMachine(m, Filters{Search: "ladprao"}, idx))
}

func TestMonthYearDimensions(t *testing.T) {
	e := models.Expense{BranchID: "b1", Date: "2024-03-15"}

	tests := []struct {
		name string
		f    Filters
		want bool
	}{
		{"matching month and year", Filters{Month: "03", Year: "2024"}, true},
		{"month only", Filters{Month: "03"}, true},
		{"wrong month", Filters{Month: "04", Year: "2024"}, false},
		{"wrong year", Filters{Month: "03", Year: "2023"}, false},
		{"year only", Filters{Year: "2024"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MatchExpense(e, tt.f, idx))
		})
	}
}

func TestPhaseRequiresJoin(t *testing.T) {
	atCentral := models.Machine{BranchID: "b1", Name: "POS"}
	orphan := models.Machine{BranchID: "ghost", Name: "POS"}

	assert.True(t, MatchMachine(atCentral, Filters{Phase: "1"}, idx))
	assert.False(t, MatchMachine(atCentral, Filters{Phase: "2"}, idx))
	assert.False(t, MatchMachine(orphan, Filters{Phase: "1"}, idx), "unresolved branch fails the phase dimension")
}

func TestBranchDimension(t *testing.T) {
	p := models.SparePart{BranchID: "b2", PartName: "Coil", Date: "2024-01-01"}

	assert.True(t, MatchPart(p, Filters{BranchID: "b2"}, idx))
	assert.False(t, MatchPart(p, Filters{BranchID: "b1"}, idx))
}

func TestExpenseCategoryCanonicalization(t *testing.T) {
	thai := models.Expense{BranchID: "b1", Date: "2024-01-10", Type: "ค่าซ่อมแซม"}
	english := models.Expense{BranchID: "b1", Date: "2024-01-10", Type: "Repair"}

	// Both spellings of the same preset fall in one category.
	assert.True(t, MatchExpense(thai, Filters{Category: "Repair"}, idx))
	assert.True(t, MatchExpense(english, Filters{Category: "ค่าซ่อมแซม"}, idx))
	assert.False(t, MatchExpense(thai, Filters{Category: "Service"}, idx))
}

func TestPartCategoryMatchesDevice(t *testing.T) {
	p := models.SparePart{BranchID: "b1", Device: "Hotpot", PartName: "Coil", Date: "2024-01-01"}

	assert.True(t, MatchPart(p, Filters{Category: "Hotpot"}, idx))
	assert.False(t, MatchPart(p, Filters{Category: "Fridge"}, idx))
}

func TestMonthYearFallbackToCurrentPeriod(t *testing.T) {
	m, y := MonthYear("not a date")
	now := time.Now()
	assert.Equal(t, now.Format("01"), m)
	assert.Equal(t, now.Format("2006"), y)
}

func TestMonthYearParsesCanonicalDate(t *testing.T) {
	m, y := MonthYear("2022-12-16")
	assert.Equal(t, "12", m)
	assert.Equal(t, "2022", y)
}
