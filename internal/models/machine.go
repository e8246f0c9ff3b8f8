package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Machine is a POS or kitchen-display asset installed at a branch. BranchID is
// a soft reference; an unresolved id keeps the record but drops it from
// branch-joined filters.
type Machine struct {
	ID          string    `gorm:"type:uuid;primaryKey" json:"id"`
	BranchID    string    `gorm:"size:64;index" json:"branchId"`
	Name        string    `gorm:"size:100" json:"name"` // asset model, free text when "Other"
	SN          string    `gorm:"size:100;column:sn" json:"sn"`
	InstallDate string    `gorm:"size:10" json:"installDate"` // canonical YYYY-MM-DD
	POS         string    `gorm:"size:50;column:pos" json:"pos"`
	Status      string    `gorm:"size:50" json:"status"`
	Remark      string    `gorm:"size:500" json:"remark"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (m *Machine) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}
