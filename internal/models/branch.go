package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Branch zones. BKK covers the Bangkok metro area, UPC everything upcountry.
const (
	ZoneBKK = "BKK"
	ZoneUPC = "UPC"
)

// Branch is a physical restaurant location. Every other entity references a
// branch by id; the reference is a lookup key, not ownership, so deleting a
// branch never cascades.
type Branch struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	Code      string    `gorm:"size:20;index" json:"code"`
	Name      string    `gorm:"size:200;not null" json:"name"`
	Province  string    `gorm:"size:100" json:"province"`
	Phone     string    `gorm:"size:50" json:"phone"`
	Type      string    `gorm:"size:100" json:"type"` // sub-brand, free text when "Other"
	Phase     string    `gorm:"size:20" json:"phase"` // 1..8, Renovate, Closed or custom
	Zone      string    `gorm:"size:10" json:"zone"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (b *Branch) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}
