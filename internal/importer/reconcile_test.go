package importer

import (
	"testing"

	"mktracker-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testBranches = []models.Branch{
	{ID: "b1", Code: "MK001", Name: "Central Ladprao"},
	{ID: "b2", Code: "MK002", Name: "Silom Complex"},
}

func TestResolveBranchID(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  string
	}{
		{"by name", "Central Ladprao", "b1"},
		{"by code", "MK002", "b2"},
		{"by id", "b1", "b1"},
		{"unmatched passes through", "MK999", "MK999"},
		{"empty passes through", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveBranchID(tt.value, testBranches))
		})
	}
}

func TestResolveBranchIDEmptyList(t *testing.T) {
	assert.Equal(t, "MK001", ResolveBranchID("MK001", nil))
}

func TestReconcileMachines(t *testing.T) {
	rows := []Row{
		{"branchId": "MK001", "name": "POS Terminal", "sn": "SN-1", "installDate": float64(44911), "status": "Ready"},
	}

	machines := ReconcileMachines(rows, testBranches)
	require.Len(t, machines, 1)
	assert.Equal(t, "b1", machines[0].BranchID)
	assert.Equal(t, "2022-12-16", machines[0].InstallDate)
	assert.Equal(t, "POS Terminal", machines[0].Name)
	assert.Equal(t, "SN-1", machines[0].SN)
}

func TestReconcileBranchesDefaults(t *testing.T) {
	rows := []Row{
		{"name": "New Branch"},
		{"name": "Upcountry Branch", "phase": "3", "zone": "UPC"},
	}

	branches := ReconcileBranches(rows)
	require.Len(t, branches, 2)

	assert.Equal(t, "1", branches[0].Phase)
	assert.Equal(t, models.ZoneBKK, branches[0].Zone)

	assert.Equal(t, "3", branches[1].Phase)
	assert.Equal(t, "UPC", branches[1].Zone)
}

func TestReconcilePartsRecomputesTotal(t *testing.T) {
	rows := []Row{
		// A totalPrice from the sheet must be ignored and recomputed.
		{"branchId": "b2", "device": "Hotpot", "partName": "Heating Coil", "qty": "3", "unitPrice": "150.50", "totalPrice": "1.00", "date": "16/12/2022"},
	}

	parts := ReconcileParts(rows, testBranches)
	require.Len(t, parts, 1)
	assert.Equal(t, "451.50", parts[0].TotalPrice.StringFixed(2))
	assert.Equal(t, 3, parts[0].Qty)
	assert.Equal(t, "2022-12-16", parts[0].Date)
}

func TestReconcileExpenseAmountWithThousandsSeparator(t *testing.T) {
	rows := []Row{
		{"branchId": "MK001", "date": "2024-01-15", "type": "Repair", "amount": "1,250.75"},
	}

	expenses := ReconcileExpenses(rows, testBranches)
	require.Len(t, expenses, 1)
	assert.Equal(t, "1250.75", expenses[0].Amount.StringFixed(2))
	assert.Equal(t, "b1", expenses[0].BranchID)
}

func TestReconcileUnknownKind(t *testing.T) {
	_, err := Reconcile("widgets", []Row{{"name": "x"}}, testBranches)
	assert.Error(t, err)
}

func TestUnresolvedBranchRefs(t *testing.T) {
	rec := Reconciled{
		Machines: []models.Machine{{BranchID: "b1"}, {BranchID: "MK999"}},
		Expenses: []models.Expense{{BranchID: "b2"}},
		Parts:    []models.SparePart{{BranchID: "nowhere"}},
	}
	assert.Equal(t, 2, UnresolvedBranchRefs(rec, testBranches))
}
