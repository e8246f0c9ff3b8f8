package models

// Expense categories and machine statuses arrive in two spellings: the Thai
// labels the field technicians use and the English ones the office uses. Each
// preset has one canonical tag here; every comparison in the filter and
// dashboard code goes through these lookups instead of matching both
// spellings ad hoc. A value outside the table is a custom entry and
// canonicalizes to itself.

// Canonical expense categories.
const (
	ExpenseMaintenance = "Maintenance"
	ExpenseRepair      = "Repair"
	ExpenseParts       = "Spare Parts"
	ExpenseService     = "Service"
	ExpenseOther       = "Other"
)

// Canonical machine statuses.
const (
	StatusReady          = "Ready"
	StatusRepair         = "Repair"
	StatusRenovate       = "Renovate"
	StatusDecommissioned = "Decommissioned"
)

var expenseTypeSynonyms = map[string]string{
	"Maintenance":       ExpenseMaintenance,
	"ค่าบำรุงรักษา":     ExpenseMaintenance,
	"Repair":            ExpenseRepair,
	"ค่าซ่อมแซม":        ExpenseRepair,
	"Spare Parts":       ExpenseParts,
	"ค่าอะไหล่":         ExpenseParts,
	"Service":           ExpenseService,
	"ค่าบริการ":         ExpenseService,
	"Other":             ExpenseOther,
	"ค่าใช้จ่ายอื่น ๆ":  ExpenseOther,
}

var machineStatusSynonyms = map[string]string{
	"Ready":           StatusReady,
	"พร้อมใช้งาน":     StatusReady,
	"Repair":          StatusRepair,
	"รอซ่อม":          StatusRepair,
	"Renovate":        StatusRenovate,
	"Cancel":          StatusDecommissioned,
	"ยกเลิกการใช้งาน": StatusDecommissioned,
}

// CanonicalExpenseType maps either spelling of a preset category to its
// canonical tag. Custom categories come back unchanged.
func CanonicalExpenseType(s string) string {
	if c, ok := expenseTypeSynonyms[s]; ok {
		return c
	}
	return s
}

// IsRepairExpenseType reports whether an expense category counts toward the
// repair-cost composite (repair and maintenance, either spelling).
func IsRepairExpenseType(s string) bool {
	c := CanonicalExpenseType(s)
	return c == ExpenseRepair || c == ExpenseMaintenance
}

// CanonicalMachineStatus maps either spelling of a preset status to its
// canonical tag. Custom statuses come back unchanged.
func CanonicalMachineStatus(s string) string {
	if c, ok := machineStatusSynonyms[s]; ok {
		return c
	}
	return s
}
