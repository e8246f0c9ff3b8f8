package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanonicalExpenseType(t *testing.T) {
	assert.Equal(t, ExpenseRepair, CanonicalExpenseType("ค่าซ่อมแซม"))
	assert.Equal(t, ExpenseRepair, CanonicalExpenseType("Repair"))
	assert.Equal(t, ExpenseMaintenance, CanonicalExpenseType("ค่าบำรุงรักษา"))
	assert.Equal(t, "Landscaping", CanonicalExpenseType("Landscaping"), "custom categories pass through")
}

func TestIsRepairExpenseType(t *testing.T) {
	assert.True(t, IsRepairExpenseType("Repair"))
	assert.True(t, IsRepairExpenseType("ค่าซ่อมแซม"))
	assert.True(t, IsRepairExpenseType("Maintenance"))
	assert.True(t, IsRepairExpenseType("ค่าบำรุงรักษา"))
	assert.False(t, IsRepairExpenseType("Service"))
	assert.False(t, IsRepairExpenseType("ค่าอะไหล่"))
}

func TestCanonicalMachineStatus(t *testing.T) {
	assert.Equal(t, StatusReady, CanonicalMachineStatus("พร้อมใช้งาน"))
	assert.Equal(t, StatusRepair, CanonicalMachineStatus("รอซ่อม"))
	assert.Equal(t, StatusDecommissioned, CanonicalMachineStatus("ยกเลิกการใช้งาน"))
	assert.Equal(t, "mystery", CanonicalMachineStatus("mystery"))
}
