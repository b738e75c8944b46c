package domain

import "errors"

var (
	ErrInvalidPeriodicity = errors.New("invalid periodicity")

	ErrInvalidTerm = errors.New("invalid term")

	ErrInvalidRate = errors.New("invalid rate")

	ErrInvalidAmount = errors.New("invalid amount")

	// ErrOutstandingDue blocks principal reduction while a due balance remains.
	ErrOutstandingDue = errors.New("outstanding due balance must be paid first")

	ErrLoanRetired = errors.New("loan has no remaining periods")
)
