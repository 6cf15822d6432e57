package cow

import (
	"slices"
)

// Tape is the engine memory. It starts as a single zero cell and only ever
// grows to the right.
type Tape struct {
	Data []uint32
}

// Len returns the number of cells on the tape.
func (tape *Tape) Len() int {
	return len(tape.Data)
}

// Get returns the cell at index.
func (tape *Tape) Get(index int) uint32 {
	return tape.Data[index]
}

// Set stores value at index.
func (tape *Tape) Set(index int, value uint32) {
	tape.Data[index] = value
}

// Extend appends zero cells until index is on the tape.
func (tape *Tape) Extend(index int) {
	for index >= len(tape.Data) {
		tape.Data = append(tape.Data, 0)
	}
}

// Snapshot returns a copy of the tape cells.
func (tape *Tape) Snapshot() []uint32 {
	return slices.Clone(tape.Data)
}

// Reset the tape to a single zero cell.
func (tape *Tape) Reset() {
	if cap(tape.Data) > 0 {
		tape.Data = tape.Data[:1]
		tape.Data[0] = 0
	} else {
		tape.Data = []uint32{0}
	}
}

// Register holds at most one cell value.
type Register struct {
	value uint32
	full  bool
}

// Peek returns the register contents, if any.
func (reg *Register) Peek() (value uint32, ok bool) {
	return reg.value, reg.full
}

// Empty returns true if the register holds no value.
func (reg *Register) Empty() bool {
	return !reg.full
}

// Swap exchanges a cell value with the register, returning the new cell value.
//   - Empty register: the cell value is copied in, and the cell keeps its value.
//   - Full register: the register value is returned for the cell, and the
//     register is emptied.
func (reg *Register) Swap(cell uint32) uint32 {
	if !reg.full {
		reg.value = cell
		reg.full = true
		return cell
	}

	reg.full = false
	return reg.value
}

// Reset empties the register.
func (reg *Register) Reset() {
	reg.value = 0
	reg.full = false
}
