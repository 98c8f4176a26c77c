package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Library usage errors
const (
	// ErrCodeAlreadyDriven indicates a single-pass driver was run a second time.
	ErrCodeAlreadyDriven ErrorCode = "ALREADY_DRIVEN"
	// ErrCodePanic indicates a spawned computation panicked.
	ErrCodePanic ErrorCode = "PANIC"
)

// Validation errors
const (
	// ErrCodeInvalidInput indicates the input is invalid.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
)

// Internal errors
const (
	// ErrCodeInternal indicates an unexpected internal failure.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
	// ErrCodeConfig indicates configuration could not be loaded.
	ErrCodeConfig ErrorCode = "CONFIG_ERROR"
)
