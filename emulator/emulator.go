// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package emulator drives a cow.Engine for a host: it counts steps, enforces
// a step limit, traces execution, and reports errors with their source line.
package emulator

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/ezrec/cowlang/cow"
	"github.com/ezrec/cowlang/io"
)

// Emulator state. Engine + step accounting.
type Emulator struct {
	Verbose bool         // If set, traces every step to Logger.
	Logger  *slog.Logger // Trace logger. slog.Default() if nil.
	Limit   int          // Maximum steps since reset, or 0 for no limit.

	*cow.Engine     // Reference to the engine.
	Steps       int // Steps executed since reset.
}

// NewEmulator creates a new emulator for a program.
func NewEmulator(program *cow.Program, source io.Source, sink io.Sink, opts ...cow.Option) (emu *Emulator, err error) {
	engine, err := cow.NewEngine(program, source, sink, opts...)
	if err != nil {
		return
	}

	emu = &Emulator{
		Engine: engine,
	}

	return
}

func (emu *Emulator) logger() *slog.Logger {
	if emu.Logger != nil {
		return emu.Logger
	}
	return slog.Default()
}

// Reset the engine and the step counter.
func (emu *Emulator) Reset() {
	emu.Engine.Reset()
	emu.Steps = 0

	if emu.Verbose {
		emu.logger().Debug("reset", "program", emu.Program().Len())
	}
}

// Position returns the source position of the current opcode.
func (emu *Emulator) Position() (pos cow.Position, ok bool) {
	return emu.Program().Position(emu.Pc())
}

// LineNo returns the current line number for the executing opcode, or 0.
func (emu *Emulator) LineNo() int {
	pos, _ := emu.Position()
	return pos.Line
}

// Tick performs a single step of the engine. done is set once the program
// has completed.
func (emu *Emulator) Tick() (done bool, err error) {
	if emu.Completed() {
		done = true
		return
	}

	pc := emu.Pc()
	op, _ := emu.Current()
	pos, _ := emu.Position()

	defer func() {
		if err != nil {
			err = &ErrRuntime{Pc: pc, Opcode: op, Position: pos, Err: err}
			if emu.Verbose {
				emu.logger().Debug("fault", "pc", pc, "op", op.String(), "line", pos.Line, "err", err)
			}
		}
	}()

	if emu.Limit > 0 && emu.Steps >= emu.Limit {
		err = ErrStepLimit
		return
	}

	if emu.Verbose {
		emu.logger().Debug("step",
			"pc", pc,
			"op", op.String(),
			"line", pos.Line,
			"cursor", emu.Cursor(),
			"value", emu.Value(),
		)
	}

	err = emu.Engine.Advance()
	if err != nil {
		return
	}

	emu.Steps++
	done = emu.Completed()

	return
}

// Run ticks until the program completes, or the first error.
func (emu *Emulator) Run() (err error) {
	for done := false; !done; {
		done, err = emu.Tick()
		if err != nil {
			return
		}
	}

	return
}

// String returns the current engine state as a string.
func (emu *Emulator) String() (text string) {
	regs := []string{"pc", "op", "cursor", "value", "reg", "tape", "steps"}

	for _, reg := range regs {
		var strval string
		switch reg {
		case "pc":
			strval = fmt.Sprintf("%04d", emu.Pc())
			if line := emu.LineNo(); line > 0 {
				strval += fmt.Sprintf(" (line %d)", line)
			}
		case "op":
			op, ok := emu.Current()
			if ok {
				strval = fmt.Sprintf("%v %v", op, op.Describe())
			} else {
				strval = "---"
			}
		case "cursor":
			strval = fmt.Sprintf("%d", emu.Cursor())
		case "value":
			strval = fmt.Sprintf("%d", emu.Value())
		case "reg":
			val, ok := emu.Register()
			if ok {
				strval = fmt.Sprintf("%d", val)
			} else {
				strval = "----"
			}
		case "tape":
			cells := emu.Tape()
			words := make([]string, len(cells))
			for n, cell := range cells {
				words[n] = fmt.Sprintf("%d", cell)
				if n == emu.Cursor() {
					words[n] = "*" + words[n]
				}
			}
			strval = "[" + strings.Join(words, " ") + "]"
		case "steps":
			strval = fmt.Sprintf("%d", emu.Steps)
		}
		text += fmt.Sprintf("% 6s: %v\n", reg, strval)
	}

	return
}
