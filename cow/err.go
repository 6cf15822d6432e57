package cow

import (
	"errors"

	"github.com/ezrec/cowlang/translate"
)

var f = translate.From

var (
	// Evaluation errors
	ErrBeginlessJumpBackward = errors.New(f("beginless backward jump"))
	ErrEndlessJumpForward    = errors.New(f("endless forward jump"))
	ErrInvalidCommand        = errors.New(f("invalid command"))
	ErrRecursiveEval         = errors.New(f("recursive eval"))
	ErrUnwritableChar        = errors.New(f("unwritable char"))
	ErrCellRange             = errors.New(f("value exceeds cell width"))
	ErrEvalDepth             = errors.New(f("eval depth exceeded"))

	// Construction errors
	ErrCellBits  = errors.New(f("cell width unsupported"))
	ErrEvalLimit = errors.New(f("eval depth limit invalid"))
	ErrNoSource  = errors.New(f("source missing"))
	ErrNoSink    = errors.New(f("sink missing"))
)

// ErrIO wraps a failure reported by a host capability.
type ErrIO struct {
	Op  string
	Err error
}

func (err *ErrIO) Error() string {
	return f("%v: %v", err.Op, err.Err)
}

func (err *ErrIO) Unwrap() error {
	return err.Err
}

// ErrValue is an evaluation failure caused by a specific cell or input value.
type ErrValue struct {
	Value uint64
	Err   error
}

func (err *ErrValue) Error() string {
	return f("value %d: %v", err.Value, err.Err)
}

func (err *ErrValue) Unwrap() error {
	return err.Err
}
