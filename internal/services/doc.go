// Package services implements the business logic layer of histviz. It sits
// between the HTTP handlers and the dataset row source: it turns validated
// request contracts into summary queries, loads the dataset, runs the
// summary pipeline and maps domain failures onto API errors.
//
// # Services
//
//	- SummaryService: dataset listing, histogram and scatter summaries
//	- HealthService: health, readiness and liveness checks
//
// # Error Handling
//
// Services return *errors.APIError values for everything a client can fix
// (unknown dataset, unknown column, invalid option) so handlers can hand them
// straight to the RFC 7807 error handler. ErrEmptyResult is passed through
// unwrapped because it is a successful response shape, not a failure.
// Unexpected read failures are wrapped as storage AppErrors and surface as a
// generic 500.
package services
