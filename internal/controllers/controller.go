// Package controllers implements the HTTP layer on top of the ledger,
// eligibility and amortization packages.
package controllers

import (
	"github.com/opius2017/Finmfb-sub006/internal/config"
	"github.com/opius2017/Finmfb-sub006/internal/eligibility"
	"github.com/opius2017/Finmfb-sub006/internal/ledger"
	"github.com/opius2017/Finmfb-sub006/internal/models"
	"github.com/shopspring/decimal"
)

// Controller holds the domain services the handlers dispatch to.
type Controller struct {
	Ledger    *ledger.Ledger
	Evaluator *eligibility.Evaluator
}

// NewController wires the domain services from the configuration and the
// global database connection.
func NewController(cfg config.Config) Controller {
	var policy ledger.RolloverPolicy = ledger.ResetPolicy{Baseline: cfg.DefaultMonthlyMaximum}
	if cfg.RolloverPolicy == "carry-over" {
		policy = ledger.CarryOverPolicy{Baseline: cfg.DefaultMonthlyMaximum}
	}

	return Controller{
		Ledger: ledger.New(models.DB, ledger.Config{
			SystemCap:      cfg.SystemCap,
			DefaultMaximum: cfg.DefaultMonthlyMaximum,
			Policy:         policy,
		}),
		Evaluator: eligibility.NewEvaluator(eligibility.Policy{
			MaxDebtServiceRatio: cfg.MaxDebtServiceRatio,
			ExistingDebtFactor:  cfg.ExistingDebtFactor,
		}),
	}
}

// limitsFromProduct converts a stored loan product into evaluation limits.
func limitsFromProduct(product models.LoanProduct) eligibility.Limits {
	return eligibility.Limits{
		MinAmount:          product.MinAmount,
		MaxAmount:          product.MaxAmount,
		MinTenorMonths:     product.MinTenorMonths,
		MaxTenorMonths:     product.MaxTenorMonths,
		AnnualInterestRate: product.AnnualInterestRate,
	}
}

// parseAmountQuery parses a decimal query string value.
func parseAmountQuery(value string) (decimal.Decimal, bool) {
	amount, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, false
	}

	return amount, true
}
