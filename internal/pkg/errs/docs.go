// Package errs provides standardized error types for the brokerage engine.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes several error types for common error scenarios:
//   - ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError: malformed input
//   - ObjectNotFoundError: an unknown identifier
//   - PreconditionFailedError: the target is not in the phase the operation requires
//   - ConflictError: a concurrent mutation lost a race
//   - StoreUnavailableError: the durability layer failed
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method returning the sentinel
//
// KindOf maps any error chain onto the taxonomy (Validation, Precondition,
// Conflict, NotFound, StoreUnavailable) so that adapters can render precise
// responses without inspecting messages.
package errs
