package models

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrProductAmountRangeInvalid = errors.New("the product minimum amount can not be larger than its maximum amount")
	ErrProductTenorRangeInvalid  = errors.New("the product minimum tenor can not be larger than its maximum tenor")
	ErrProductRateNegative       = errors.New("the product interest rate must not be negative")
)

// LoanProduct carries the bounds a disbursement candidate is evaluated
// against: amount range, tenor range and the annual interest rate.
type LoanProduct struct {
	DefaultModel
	Name               string          `json:"name" gorm:"uniqueIndex" example:"SME Working Capital"`     // Name of the product
	MinAmount          decimal.Decimal `json:"minAmount" gorm:"type:DECIMAL(20,8)" example:"100000"`      // Smallest amount the product allows
	MaxAmount          decimal.Decimal `json:"maxAmount" gorm:"type:DECIMAL(20,8)" example:"5000000"`     // Largest amount the product allows
	MinTenorMonths     int             `json:"minTenorMonths" example:"6"`                                // Shortest tenor in months
	MaxTenorMonths     int             `json:"maxTenorMonths" example:"36"`                               // Longest tenor in months
	AnnualInterestRate decimal.Decimal `json:"annualInterestRate" gorm:"type:DECIMAL(20,8)" example:"20"` // Annual rate in percent
	Archived           bool            `json:"archived" example:"false" default:"false"`                  // Is the product archived?
}

func (p *LoanProduct) BeforeSave(_ *gorm.DB) error {
	p.Name = strings.TrimSpace(p.Name)

	if p.MinAmount.GreaterThan(p.MaxAmount) {
		return ErrProductAmountRangeInvalid
	}

	if p.MinTenorMonths > p.MaxTenorMonths {
		return ErrProductTenorRangeInvalid
	}

	if p.AnnualInterestRate.IsNegative() {
		return ErrProductRateNegative
	}

	return nil
}
