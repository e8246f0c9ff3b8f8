package importer

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"mktracker-backend/internal/models"
)

// Row is one raw spreadsheet record: cell values keyed by the header row.
type Row map[string]any

// Entity kinds accepted by the reconciler and the import/export endpoints.
const (
	KindBranches = "branches"
	KindMachines = "machines"
	KindExpenses = "expenses"
	KindParts    = "parts"
)

// Reconciled is the result of one reconciliation pass, ready for bulk insert.
// Exactly one of the slices is populated, matching the requested kind.
type Reconciled struct {
	Branches []models.Branch
	Machines []models.Machine
	Expenses []models.Expense
	Parts    []models.SparePart
}

// Count returns the number of reconciled records.
func (r Reconciled) Count() int {
	return len(r.Branches) + len(r.Machines) + len(r.Expenses) + len(r.Parts)
}

// Reconcile normalizes raw rows of the given kind into entity records:
// branch references are resolved, dates normalized, defaults filled and
// derived fields recomputed. It is one best-effort pass — a row is never
// rejected for missing optional fields. An unknown kind is a programming
// error in the caller and fails loudly.
func Reconcile(kind string, rows []Row, branches []models.Branch) (Reconciled, error) {
	switch kind {
	case KindBranches:
		return Reconciled{Branches: ReconcileBranches(rows)}, nil
	case KindMachines:
		return Reconciled{Machines: ReconcileMachines(rows, branches)}, nil
	case KindExpenses:
		return Reconciled{Expenses: ReconcileExpenses(rows, branches)}, nil
	case KindParts:
		return Reconciled{Parts: ReconcileParts(rows, branches)}, nil
	default:
		return Reconciled{}, fmt.Errorf("unknown import kind %q", kind)
	}
}

// ReconcileBranches fills the defaults a sparse branch sheet leaves out:
// phase 1, BKK zone.
func ReconcileBranches(rows []Row) []models.Branch {
	out := make([]models.Branch, 0, len(rows))
	for _, r := range rows {
		b := models.Branch{
			Code:     cellString(r, "code"),
			Name:     cellString(r, "name"),
			Province: cellString(r, "province"),
			Phone:    cellString(r, "phone"),
			Type:     cellString(r, "type"),
			Phase:    cellString(r, "phase"),
			Zone:     cellString(r, "zone"),
		}
		if b.Phase == "" {
			b.Phase = "1"
		}
		if b.Zone == "" {
			b.Zone = models.ZoneBKK
		}
		out = append(out, b)
	}
	return out
}

// ReconcileMachines resolves the branch reference and normalizes installDate.
func ReconcileMachines(rows []Row, branches []models.Branch) []models.Machine {
	out := make([]models.Machine, 0, len(rows))
	for _, r := range rows {
		out = append(out, models.Machine{
			BranchID:    ResolveBranchID(cellString(r, "branchId"), branches),
			Name:        cellString(r, "name"),
			SN:          cellString(r, "sn"),
			InstallDate: NormalizeDate(r["installDate"]),
			POS:         cellString(r, "pos"),
			Status:      cellString(r, "status"),
			Remark:      cellString(r, "remark"),
		})
	}
	return out
}

// ReconcileExpenses resolves the branch reference and normalizes the date.
func ReconcileExpenses(rows []Row, branches []models.Branch) []models.Expense {
	out := make([]models.Expense, 0, len(rows))
	for _, r := range rows {
		out = append(out, models.Expense{
			BranchID:   ResolveBranchID(cellString(r, "branchId"), branches),
			Date:       NormalizeDate(r["date"]),
			Type:       cellString(r, "type"),
			Detail:     cellString(r, "detail"),
			Amount:     cellDecimal(r, "amount"),
			Technician: cellString(r, "technician"),
		})
	}
	return out
}

// ReconcileParts resolves the branch reference, normalizes the date, and
// recomputes totalPrice from qty and unitPrice. A total present in the source
// sheet is never trusted.
func ReconcileParts(rows []Row, branches []models.Branch) []models.SparePart {
	out := make([]models.SparePart, 0, len(rows))
	for _, r := range rows {
		qty := cellInt(r, "qty")
		unitPrice := cellDecimal(r, "unitPrice")
		out = append(out, models.SparePart{
			BranchID:   ResolveBranchID(cellString(r, "branchId"), branches),
			Date:       NormalizeDate(r["date"]),
			Device:     cellString(r, "device"),
			PartName:   cellString(r, "partName"),
			Qty:        qty,
			UnitPrice:  unitPrice,
			TotalPrice: unitPrice.Mul(decimal.NewFromInt(int64(qty))),
			Technician: cellString(r, "technician"),
		})
	}
	return out
}

// UnresolvedBranchRefs counts reconciled records whose branch reference did
// not match any known branch. They import anyway (soft fail) but will not
// join to a branch until corrected.
func UnresolvedBranchRefs(rec Reconciled, branches []models.Branch) int {
	known := make(map[string]struct{}, len(branches))
	for _, b := range branches {
		known[b.ID] = struct{}{}
	}
	count := 0
	miss := func(id string) {
		if _, ok := known[id]; !ok {
			count++
		}
	}
	for _, m := range rec.Machines {
		miss(m.BranchID)
	}
	for _, e := range rec.Expenses {
		miss(e.BranchID)
	}
	for _, p := range rec.Parts {
		miss(p.BranchID)
	}
	return count
}

func cellString(r Row, key string) string {
	v, ok := r[key]
	if !ok || v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	default:
		return strings.TrimSpace(fmt.Sprint(t))
	}
}

func cellInt(r Row, key string) int {
	s := cellString(r, key)
	if s == "" {
		return 0
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	// Sheets hand integers over as "3.0" every now and then.
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int(f)
	}
	return 0
}

func cellDecimal(r Row, key string) decimal.Decimal {
	switch t := r[key].(type) {
	case float64:
		return decimal.NewFromFloat(t)
	case int:
		return decimal.NewFromInt(int64(t))
	}
	s := cellString(r, key)
	if s == "" {
		return decimal.Zero
	}
	s = strings.ReplaceAll(s, ",", "")
	if d, err := decimal.NewFromString(s); err == nil {
		return d
	}
	return decimal.Zero
}
