package models

import (
	"time"

	"github.com/opius2017/Finmfb-sub006/internal/types"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ApplicationStatus is the lifecycle state of a queued application.
type ApplicationStatus string

const (
	ApplicationStatusPending   ApplicationStatus = "PENDING"
	ApplicationStatusAdmitted  ApplicationStatus = "ADMITTED"
	ApplicationStatusExpired   ApplicationStatus = "EXPIRED"
	ApplicationStatusCancelled ApplicationStatus = "CANCELLED"
)

// QueuedApplication is a disbursement request parked because the month's
// capacity was exhausted when it arrived. Pending applications are released
// in arrival order when capacity frees up; applications still pending when
// their month closes are expired.
type QueuedApplication struct {
	DefaultModel
	Month           types.Month       `json:"month" gorm:"index" example:"2025-01"`                        // The month the request was made for
	RequestedAmount decimal.Decimal   `json:"requestedAmount" gorm:"type:DECIMAL(20,8)" example:"1500000"` // The amount that could not be admitted
	EnqueuedAt      time.Time         `json:"enqueuedAt" example:"2025-01-14T09:12:03Z"`                   // Arrival time, determines the queue order
	Status          ApplicationStatus `json:"status" example:"PENDING"`                                    // Lifecycle state
	Note            string            `json:"note,omitempty" example:"Branch 14, walk-in"`                 // Free-form annotation
}

func (a *QueuedApplication) BeforeSave(_ *gorm.DB) error {
	if !a.RequestedAmount.IsPositive() {
		return ErrAmountNotPositive
	}

	return nil
}

func (a *QueuedApplication) BeforeCreate(tx *gorm.DB) error {
	_ = a.DefaultModel.BeforeCreate(tx)

	if a.Status == "" {
		a.Status = ApplicationStatusPending
	}

	return nil
}
