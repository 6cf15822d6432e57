package cow

import (
	"io"
	"iter"
	"slices"
	"strings"

	"github.com/ezrec/cowlang/internal"
)

// Position is where an opcode was found in the program text.
type Position struct {
	Source int // Index of the reader passed to Parse.
	Line   int
	Column int
}

// Program is an immutable sequence of opcodes.
type Program struct {
	opcodes   []Opcode
	positions []Position
}

// NewProgram creates a program from opcodes, without source positions.
func NewProgram(opcodes ...Opcode) (prog *Program) {
	prog = &Program{
		opcodes: slices.Clone(opcodes),
	}

	return
}

// Parse reads program text from all of the readers, in order.
// Words that are not opcodes are skipped. Only read failures are errors.
func Parse(readers ...io.Reader) (prog *Program, err error) {
	seqs := make([]iter.Seq2[internal.Word, error], len(readers))
	for n, r := range readers {
		seqs[n] = internal.Words(n, r)
	}

	prog = &Program{}
	for word, werr := range internal.IterSeq2Concat(seqs...) {
		if werr != nil {
			err = werr
			return
		}
		op, ok := ParseOpcode(word.Text)
		if !ok {
			continue
		}
		prog.opcodes = append(prog.opcodes, op)
		prog.positions = append(prog.positions, Position{
			Source: word.Source,
			Line:   word.Line,
			Column: word.Column,
		})
	}

	return
}

// ParseString parses program text from a string.
func ParseString(text string) (prog *Program) {
	// A strings.Reader never fails.
	prog, _ = Parse(strings.NewReader(text))
	return
}

// Len returns the number of opcodes in the program.
func (prog *Program) Len() int {
	return len(prog.opcodes)
}

// At returns the opcode at pc.
func (prog *Program) At(pc int) (op Opcode, ok bool) {
	if pc < 0 || pc >= len(prog.opcodes) {
		return
	}

	return prog.opcodes[pc], true
}

// Opcodes returns a copy of the program's opcodes.
func (prog *Program) Opcodes() []Opcode {
	return slices.Clone(prog.opcodes)
}

// All returns an iterator over the program counters and opcodes.
func (prog *Program) All() iter.Seq2[int, Opcode] {
	return slices.All(prog.opcodes)
}

// Position returns the source position of the opcode at pc, if known.
func (prog *Program) Position(pc int) (pos Position, ok bool) {
	if pc < 0 || pc >= len(prog.positions) {
		return
	}

	return prog.positions[pc], true
}

// Equal returns true if both programs have the same opcodes.
func (prog *Program) Equal(other *Program) bool {
	return slices.Equal(prog.opcodes, other.opcodes)
}

// String returns the canonical program text.
func (prog *Program) String() string {
	words := make([]string, len(prog.opcodes))
	for n, op := range prog.opcodes {
		words[n] = op.String()
	}

	return strings.Join(words, " ")
}
