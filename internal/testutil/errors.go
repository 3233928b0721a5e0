package testutil

import "errors"

// ErrSimulated is returned by test doubles standing in for a failing map initializer
var ErrSimulated = errors.New("simulated error for testing")
