package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrInvalidTransition indicates a decision attempted from a terminal state,
// or by a reviewer role not authorized for the record's current state.
var ErrInvalidTransition = errors.New("invalid status transition")

// ErrInvalidDecision indicates a malformed decision: a rejection without a
// reason, or an approval without a non-negative approved amount.
var ErrInvalidDecision = errors.New("invalid decision")

// ErrInvalidBreakdownLine indicates a breakdown line with a negative quantity or unit cost.
var ErrInvalidBreakdownLine = errors.New("invalid breakdown line")
