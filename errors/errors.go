package errors

import "errors"

// Inconceivable is raised (via panic) when a caller breaks a contract that
// earlier phases are meant to guarantee.
var Inconceivable = errors.New("inconceivable")
