package httputil

import "errors"

var (
	ErrInvalidBody      = errors.New("the body of your request contains invalid or un-parseable data. Please check and try again")
	ErrRequestBodyEmpty = errors.New("the request body must not be empty")
	ErrInvalidUUID      = errors.New("the specified resource ID is not a valid UUID")
	ErrInvalidMonth     = errors.New("the month must be specified as YYYY-MM")
	ErrInvalidAmount    = errors.New("the amount must be a decimal number")
	ErrInvalidYear      = errors.New("the year must be a four digit number")
	ErrLimitsMissing    = errors.New("either a productId or inline limits must be provided")
)
