package emulator

import (
	"errors"

	"github.com/ezrec/cowlang/cow"
	"github.com/ezrec/cowlang/translate"
)

var f = translate.From

var (
	ErrStepLimit = errors.New(f("step limit reached"))
)

// ErrRuntime indicates the location of a runtime error.
type ErrRuntime struct {
	Pc       int
	Opcode   cow.Opcode
	Position cow.Position // Line is 0 when the program has no source positions.
	Err      error
}

func (err *ErrRuntime) Error() string {
	if err.Position.Line > 0 {
		return f("line %d:%d %v %v", err.Position.Line, err.Position.Column, err.Opcode, err.Err)
	}
	return f("pc %d %v %v", err.Pc, err.Opcode, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}
