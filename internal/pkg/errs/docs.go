// Package errs provides standardized error types for the shipping application.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package defines a closed taxonomy of error kinds:
//   - ValueIsRequiredError / ValueIsInvalidError: validation failures that
//     never reach the store
//   - ObjectNotFoundError: a referenced entity is absent
//   - ConflictError: a state precondition was violated
//   - DependencyFailedError: an external collaborator failed
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g. ErrObjectNotFound)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method so errors.Is classifies against the sentinel
//
// Transport adapters map these kinds to response codes; anything outside the
// taxonomy is surfaced generically, so store- or runtime-specific error
// identifiers never cross the service boundary.
package errs
