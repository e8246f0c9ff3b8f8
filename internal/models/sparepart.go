package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SparePart is a repair line item: one replaced part with quantity and cost.
type SparePart struct {
	ID         string          `gorm:"type:uuid;primaryKey" json:"id"`
	BranchID   string          `gorm:"size:64;index" json:"branchId"`
	Date       string          `gorm:"size:10;index" json:"date"` // canonical YYYY-MM-DD
	Device     string          `gorm:"size:100" json:"device"`    // repaired device, free text when "Other"
	PartName   string          `gorm:"size:200" json:"partName"`
	Qty        int             `json:"qty"`
	UnitPrice  decimal.Decimal `gorm:"type:numeric(12,2)" json:"unitPrice"`
	TotalPrice decimal.Decimal `gorm:"type:numeric(12,2)" json:"totalPrice"`
	Technician string          `gorm:"size:100" json:"technician"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  time.Time       `json:"updatedAt"`
}

func (p *SparePart) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// BeforeSave keeps the invariant totalPrice == qty * unitPrice on every write.
// A total supplied by the caller (or an imported sheet) is never trusted.
func (p *SparePart) BeforeSave(tx *gorm.DB) error {
	p.TotalPrice = p.UnitPrice.Mul(decimal.NewFromInt(int64(p.Qty)))
	return nil
}
