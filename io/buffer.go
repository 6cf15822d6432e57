package io

import (
	"io"
	"strings"
)

// Buffer is an in-memory capability. Reads consume Input from the front,
// writes are appended to Output.
type Buffer struct {
	Capacity int // Maximum number of writes, or 0 for no limit.

	Input  []uint32
	Output []Write
}

var _ Capability = (*Buffer)(nil)

// Rewind clears both the pending input and the recorded output.
func (buf *Buffer) Rewind() {
	buf.Input = nil
	buf.Output = nil
}

// Push queues characters of text as input values.
func (buf *Buffer) Push(text string) {
	for _, r := range text {
		buf.Input = append(buf.Input, uint32(r))
	}
}

func (buf *Buffer) read() (value uint32, err error) {
	if len(buf.Input) == 0 {
		err = io.EOF
		return
	}

	value = buf.Input[0]
	buf.Input = buf.Input[1:]
	return
}

// ReadChar returns the next input value as a character code.
// io.EOF is returned when there is no input left.
func (buf *Buffer) ReadChar() (r rune, err error) {
	value, err := buf.read()
	r = rune(value)
	return
}

// ReadInt returns the next input value.
// io.EOF is returned when there is no input left.
func (buf *Buffer) ReadInt() (value uint32, err error) {
	return buf.read()
}

func (buf *Buffer) write(wr Write) (err error) {
	if buf.Capacity > 0 && len(buf.Output) >= buf.Capacity {
		err = ErrFull
		return
	}

	buf.Output = append(buf.Output, wr)
	return
}

// WriteChar records a character write.
func (buf *Buffer) WriteChar(r rune) error {
	return buf.write(Write{Kind: KIND_CHAR, Value: uint32(r)})
}

// WriteInt records an integer write.
func (buf *Buffer) WriteInt(value uint32) error {
	return buf.write(Write{Kind: KIND_INT, Value: value})
}

// String returns the recorded output as terminal text.
func (buf *Buffer) String() string {
	var sb strings.Builder
	for _, wr := range buf.Output {
		sb.WriteString(wr.String())
	}
	return sb.String()
}
