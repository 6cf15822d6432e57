package io

import (
	"bufio"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"
)

type flusher interface {
	Flush() error
}

// Stream is a capability over a byte stream, such as a terminal.
//
// Characters are UTF-8 runes. Integers are read as one decimal number per
// line, and written as a decimal number followed by a newline.
// In Bytes mode both characters and integers are single raw bytes.
type Stream struct {
	Input  io.Reader
	Output io.Writer
	Bytes  bool

	reader *bufio.Reader
}

var _ Capability = (*Stream)(nil)

// Rewind drops any buffered input, so that Input may be replaced.
func (st *Stream) Rewind() {
	st.reader = nil
}

func (st *Stream) input() *bufio.Reader {
	if st.reader == nil {
		if br, ok := st.Input.(*bufio.Reader); ok {
			st.reader = br
		} else {
			st.reader = bufio.NewReader(st.Input)
		}
	}
	return st.reader
}

// ReadChar reads a rune, or a byte in Bytes mode.
func (st *Stream) ReadChar() (r rune, err error) {
	in := st.input()
	if st.Bytes {
		var b byte
		b, err = in.ReadByte()
		r = rune(b)
		return
	}

	r, _, err = in.ReadRune()
	return
}

// ReadInt reads a decimal line, or a byte in Bytes mode.
func (st *Stream) ReadInt() (value uint32, err error) {
	in := st.input()
	if st.Bytes {
		var b byte
		b, err = in.ReadByte()
		value = uint32(b)
		return
	}

	line, err := in.ReadString('\n')
	if err == io.EOF && len(line) > 0 {
		err = nil
	}
	if err != nil {
		return
	}

	text := strings.TrimSpace(line)
	number, perr := strconv.ParseUint(text, 10, 32)
	if perr != nil {
		err = ErrParseInt(text)
		return
	}

	value = uint32(number)
	return
}

// WriteChar writes a rune as UTF-8, or a byte in Bytes mode.
func (st *Stream) WriteChar(r rune) (err error) {
	var buff []byte
	if st.Bytes {
		if r < 0 || r > 0xff {
			err = ErrByteRange
			return
		}
		buff = []byte{byte(r)}
	} else {
		buff = utf8.AppendRune(nil, r)
	}

	return st.write(buff)
}

// WriteInt writes a decimal line, or a byte in Bytes mode.
func (st *Stream) WriteInt(value uint32) (err error) {
	var buff []byte
	if st.Bytes {
		if value > 0xff {
			err = ErrByteRange
			return
		}
		buff = []byte{byte(value)}
	} else {
		buff = strconv.AppendUint(nil, uint64(value), 10)
		buff = append(buff, '\n')
	}

	return st.write(buff)
}

func (st *Stream) write(buff []byte) (err error) {
	_, err = st.Output.Write(buff)
	if err != nil {
		return
	}

	if fl, ok := st.Output.(flusher); ok {
		err = fl.Flush()
	}

	return
}
