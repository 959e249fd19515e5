package employmenttype

import (
	"time"

	"github.com/google/uuid"
)

const (
	PayCadenceDaily   = "daily"
	PayCadenceMonthly = "monthly"
)

type EmploymentType struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name          string
	Description   string
	PayCadence    string
	ContractTerms string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (EmploymentType) TableName() string {
	return "employment_types"
}
