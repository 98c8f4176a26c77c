// Package errors provides the structured error type used across asyncext.
//
// Errors returned by user-supplied transformations and callbacks are never
// wrapped by the adapters or drivers; they reach the caller unchanged. AppError
// is reserved for failures that originate in the library itself (misuse of a
// driver, a recovered panic inside a spawned future) and for configuration and
// validation failures in the ambient packages.
package errors
