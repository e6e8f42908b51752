package api

import "errors"

// errMissingActor only fires when a route skips the auth middleware;
// it maps to a 500 because that is a wiring mistake, not user input.
var errMissingActor = errors.New("authenticated actor missing from context")
