package io

import (
	"errors"

	"github.com/ezrec/cowlang/translate"
)

var f = translate.From

var (
	// Capability errors
	ErrClosed      = errors.New(f("capability closed"))
	ErrFull        = errors.New(f("output full"))
	ErrUnsupported = errors.New(f("operation unsupported"))
	ErrByteRange   = errors.New(f("value does not fit a byte"))
)

// ErrParseInt is integer input that is not a decimal number.
type ErrParseInt string

func (err ErrParseInt) Error() string {
	return f("'%v' is not an integer", string(err))
}

// ErrScript is a failure in a script capability function.
type ErrScript struct {
	Function string
	Err      error
}

func (err *ErrScript) Error() string {
	return f("%v() %v", err.Function, err.Err)
}

func (err *ErrScript) Unwrap() error {
	return err.Err
}
