// Package io provides the I/O capabilities for the cowlang engine.
// The engine only talks to the outside world through a Source and a Sink.
// Implementations are provided for byte streams (Stream), in-memory buffers
// (Buffer), channel handshakes with another goroutine (Actor), and Starlark
// scripts (Script).
package io

import (
	"strconv"
)

// Source supplies input values to the engine. Reads may block.
type Source interface {
	// ReadChar reads one character code.
	ReadChar() (r rune, err error)
	// ReadInt reads one integer.
	ReadInt() (value uint32, err error)
}

// Sink accepts output values from the engine. Writes may block.
type Sink interface {
	// WriteChar writes one character code.
	WriteChar(r rune) error
	// WriteInt writes one integer.
	WriteInt(value uint32) error
}

// Capability is both a Source and a Sink.
type Capability interface {
	Source
	Sink
}

// Kind is the kind of value transferred by a capability.
type Kind int

const (
	KIND_CHAR = Kind(0) // char
	KIND_INT  = Kind(1) // int
)

func (kind Kind) String() string {
	switch kind {
	case KIND_CHAR:
		return "char"
	case KIND_INT:
		return "int"
	}
	return f("Kind(%d)", int(kind))
}

// Write is one value written to a Sink.
type Write struct {
	Kind  Kind
	Value uint32
}

// String renders the write as terminal text: a char as itself, an int as a
// decimal line.
func (wr Write) String() string {
	if wr.Kind == KIND_INT {
		return strconv.FormatUint(uint64(wr.Value), 10) + "\n"
	}
	return string(rune(wr.Value))
}
