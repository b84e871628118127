package models

import "errors"

var (
	ErrGeneral          = errors.New("an error occurred on the server during your request")
	ErrResourceNotFound = errors.New("there is no")
)

// Threshold errors
var (
	ErrAmountNotPositive       = errors.New("the amount must be larger than zero")
	ErrMaximumNotPositive      = errors.New("the maximum amount must be larger than zero")
	ErrMaximumBelowAllocated   = errors.New("the maximum amount can not be lowered below the capital already allocated for the month")
	ErrMaximumExceedsSystemCap = errors.New("the maximum amount can not exceed the system wide cap")
	ErrMonthClosed             = errors.New("the month has already been closed by rollover and can not be changed")
)

// Queued application errors
var (
	ErrApplicationNotPending = errors.New("only pending applications can change state")
)

// Loan product errors
var (
	ErrProductNameNotUnique = errors.New("the loan product name is already in use")
	ErrProductArchived      = errors.New("the loan product is archived and can not be used for new disbursements")
)
