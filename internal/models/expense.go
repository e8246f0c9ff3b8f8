package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Expense is a recorded maintenance/repair/service cost attributed to a
// branch. Type holds either a preset category (Thai or English spelling, see
// labels.go) or a custom string.
type Expense struct {
	ID         string          `gorm:"type:uuid;primaryKey" json:"id"`
	BranchID   string          `gorm:"size:64;index" json:"branchId"`
	Date       string          `gorm:"size:10;index" json:"date"` // canonical YYYY-MM-DD
	Type       string          `gorm:"size:100" json:"type"`
	Detail     string          `gorm:"size:500" json:"detail"`
	Amount     decimal.Decimal `gorm:"type:numeric(12,2)" json:"amount"`
	Technician string          `gorm:"size:100" json:"technician"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  time.Time       `json:"updatedAt"`
}

func (e *Expense) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}
