package services

import "histviz/internal/summary"

// ErrEmptyResult is returned when filtering leaves nothing to summarize.
// Handlers answer it with the HTTP 200 error payload, not a problem.
var ErrEmptyResult = summary.ErrEmptyResult
