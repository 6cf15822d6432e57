package cow

import (
	"unicode/utf8"

	"github.com/ezrec/cowlang/io"
)

const (
	EVAL_DEPTH_LIMIT = 16 // Default limit of nested evaluations per step.

	CELL_MAX_8  = uint32(0xff)       // Largest value of an 8-bit cell.
	CELL_MAX_32 = uint32(0xffffffff) // Largest value of a 32-bit cell.
)

// Option configures an Engine at construction.
type Option func(*Engine) error

// CellBits sets the cell width, either 8 or 32 bits. The default is 32.
func CellBits(bits int) Option {
	return func(eng *Engine) error {
		switch bits {
		case 8:
			eng.cellMax = CELL_MAX_8
		case 32:
			eng.cellMax = CELL_MAX_32
		default:
			return ErrCellBits
		}
		return nil
	}
}

// EvalDepth sets how deeply instructions may evaluate other instructions
// within one step. The default is EVAL_DEPTH_LIMIT.
func EvalDepth(limit int) Option {
	return func(eng *Engine) error {
		if limit < 1 {
			return ErrEvalLimit
		}
		eng.depthLimit = limit
		return nil
	}
}

// Engine executes a COW program.
type Engine struct {
	program *Program
	source  io.Source
	sink    io.Sink

	tape     Tape
	cursor   int
	pc       int
	register Register

	cellMax    uint32
	depthLimit int
}

// NewEngine creates an engine for a program, reading from source and
// writing to sink.
func NewEngine(program *Program, source io.Source, sink io.Sink, opts ...Option) (eng *Engine, err error) {
	if source == nil {
		err = ErrNoSource
		return
	}
	if sink == nil {
		err = ErrNoSink
		return
	}
	if program == nil {
		program = NewProgram()
	}

	eng = &Engine{
		program:    program,
		source:     source,
		sink:       sink,
		cellMax:    CELL_MAX_32,
		depthLimit: EVAL_DEPTH_LIMIT,
	}

	for _, opt := range opts {
		err = opt(eng)
		if err != nil {
			eng = nil
			return
		}
	}

	eng.Reset()

	return
}

// Reset the engine to its initial state, keeping the program and capabilities.
func (eng *Engine) Reset() {
	eng.tape.Reset()
	eng.cursor = 0
	eng.pc = 0
	eng.register.Reset()
}

// Tape returns a copy of the tape.
func (eng *Engine) Tape() []uint32 {
	return eng.tape.Snapshot()
}

// Cursor returns the index of the current cell.
func (eng *Engine) Cursor() int {
	return eng.cursor
}

// Program returns the program being executed.
func (eng *Engine) Program() *Program {
	return eng.program
}

// Pc returns the program counter.
func (eng *Engine) Pc() int {
	return eng.pc
}

// Current returns the opcode at the program counter.
func (eng *Engine) Current() (op Opcode, ok bool) {
	return eng.program.At(eng.pc)
}

// Value returns the current cell value.
func (eng *Engine) Value() uint32 {
	return eng.tape.Get(eng.cursor)
}

// Register returns the register contents, if any.
func (eng *Engine) Register() (value uint32, ok bool) {
	return eng.register.Peek()
}

// CellMax returns the largest value a cell can hold.
func (eng *Engine) CellMax() uint32 {
	return eng.cellMax
}

// Completed returns true once the program counter is past the program.
func (eng *Engine) Completed() bool {
	return eng.pc >= eng.program.Len()
}

// Advance executes the instruction at the program counter, then moves the
// program counter past it. On error the program counter is left on the
// failing instruction. Advancing a completed engine does nothing.
func (eng *Engine) Advance() (err error) {
	op, ok := eng.Current()
	if !ok {
		return
	}

	err = eng.evaluate(op, 0)
	if err != nil {
		return
	}

	eng.pc++

	return
}

// Run advances until the program completes, or the first error.
func (eng *Engine) Run() (err error) {
	for !eng.Completed() {
		err = eng.Advance()
		if err != nil {
			return
		}
	}

	return
}

func (eng *Engine) value() uint32 {
	return eng.tape.Get(eng.cursor)
}

func (eng *Engine) setValue(value uint32) {
	eng.tape.Set(eng.cursor, value)
}

// store sets the current cell to a value read from the source.
func (eng *Engine) store(value uint64) (err error) {
	if value > uint64(eng.cellMax) {
		err = &ErrValue{Value: value, Err: ErrCellRange}
		return
	}

	eng.setValue(uint32(value))
	return
}

// evaluate executes op at the current state. depth counts the evaluations
// already in progress for this step.
func (eng *Engine) evaluate(op Opcode, depth int) (err error) {
	if depth >= eng.depthLimit {
		err = ErrEvalDepth
		return
	}

	switch op {
	case OP_JUMP_BACKWARD:
		var pc int
		pc, err = eng.scanBackward()
		if err != nil {
			return
		}
		eng.pc = pc
		landed, _ := eng.program.At(pc)
		err = eng.evaluate(landed, depth+1)
	case OP_CURSOR_BACK:
		if eng.cursor > 0 {
			eng.cursor--
		}
	case OP_CURSOR_FORWARD:
		eng.cursor++
		eng.tape.Extend(eng.cursor)
	case OP_EVAL:
		value := eng.value()
		if value == uint32(OP_EVAL) {
			err = ErrRecursiveEval
			return
		}
		next, ok := OpcodeOf(value)
		if !ok {
			err = &ErrValue{Value: uint64(value), Err: ErrInvalidCommand}
			return
		}
		err = eng.evaluate(next, depth+1)
	case OP_CHAR_IO:
		value := eng.value()
		if value == 0 {
			var r rune
			r, err = eng.source.ReadChar()
			if err != nil {
				err = &ErrIO{Op: f("read char"), Err: err}
				return
			}
			if r < 0 {
				err = &ErrValue{Value: uint64(uint32(r)), Err: ErrCellRange}
				return
			}
			err = eng.store(uint64(r))
			return
		}
		if value > utf8.MaxRune || !utf8.ValidRune(rune(value)) {
			err = &ErrValue{Value: uint64(value), Err: ErrUnwritableChar}
			return
		}
		err = eng.sink.WriteChar(rune(value))
		if err != nil {
			err = &ErrIO{Op: f("write char"), Err: err}
		}
	case OP_DECREMENT:
		value := eng.value()
		if value > 0 {
			eng.setValue(value - 1)
		}
	case OP_INCREMENT:
		value := eng.value()
		if value < eng.cellMax {
			eng.setValue(value + 1)
		}
	case OP_JUMP_FORWARD:
		if eng.value() != 0 {
			return
		}
		var pc int
		pc, err = eng.scanForward()
		if err != nil {
			return
		}
		eng.pc = pc
	case OP_ZERO:
		eng.setValue(0)
	case OP_SWAP:
		eng.setValue(eng.register.Swap(eng.value()))
	case OP_INT_OUTPUT:
		err = eng.sink.WriteInt(eng.value())
		if err != nil {
			err = &ErrIO{Op: f("write int"), Err: err}
		}
	case OP_INT_INPUT:
		var value uint32
		value, err = eng.source.ReadInt()
		if err != nil {
			err = &ErrIO{Op: f("read int"), Err: err}
			return
		}
		err = eng.store(uint64(value))
	default:
		err = &ErrValue{Value: uint64(op), Err: ErrInvalidCommand}
	}

	return
}

// scanBackward finds the MOO matching the moo at the program counter.
// The instruction immediately before the moo is never examined.
func (eng *Engine) scanBackward() (pc int, err error) {
	pc = max(eng.pc-1, 0)

	for nest := 1; nest > 0; {
		if pc == 0 {
			err = ErrBeginlessJumpBackward
			return
		}
		pc--

		switch eng.program.opcodes[pc] {
		case OP_JUMP_BACKWARD:
			nest++
		case OP_JUMP_FORWARD:
			nest--
		}
	}

	return
}

// scanForward finds the moo matching the MOO at the program counter.
// The instruction immediately after the MOO is never examined, and a moo
// directly after a MOO closes two levels.
func (eng *Engine) scanForward() (pc int, err error) {
	ops := eng.program.opcodes
	pc = eng.pc + 1

	for nest := 1; nest > 0; {
		if pc >= len(ops) {
			err = ErrEndlessJumpForward
			return
		}

		prev := ops[pc]
		pc++
		if pc >= len(ops) {
			continue
		}

		switch ops[pc] {
		case OP_JUMP_BACKWARD:
			nest--
			if prev == OP_JUMP_FORWARD {
				nest--
			}
		case OP_JUMP_FORWARD:
			nest++
		}
	}

	return
}
