package io

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
)

func TestStream_Read(t *testing.T) {
	assert := assert.New(t)

	st := &Stream{Input: strings.NewReader("hé12\n 7 \n99")}

	r, err := st.ReadChar()
	assert.NoError(err)
	assert.Equal('h', r)

	r, err = st.ReadChar()
	assert.NoError(err)
	assert.Equal('é', r)

	value, err := st.ReadInt()
	assert.NoError(err)
	assert.Equal(uint32(12), value)

	value, err = st.ReadInt()
	assert.NoError(err)
	assert.Equal(uint32(7), value)

	// Last line without a newline.
	value, err = st.ReadInt()
	assert.NoError(err)
	assert.Equal(uint32(99), value)

	_, err = st.ReadInt()
	assert.ErrorIs(err, io.EOF)

	_, err = st.ReadChar()
	assert.ErrorIs(err, io.EOF)
}

func TestStream_ReadIntInvalid(t *testing.T) {
	assert := assert.New(t)

	table := []string{"moo\n", "\n", "-1\n", "4294967296\n", "1 2\n"}

	for _, input := range table {
		st := &Stream{Input: strings.NewReader(input)}
		_, err := st.ReadInt()
		var perr ErrParseInt
		assert.True(errors.As(err, &perr), input)
		assert.Equal(strings.TrimSpace(input), string(perr))
	}
}

func TestStream_Write(t *testing.T) {
	assert := assert.New(t)

	out := &bytes.Buffer{}
	st := &Stream{Output: out}

	assert.NoError(st.WriteChar('H'))
	assert.NoError(st.WriteChar('€'))
	assert.NoError(st.WriteInt(1234))

	assert.Equal("H€1234\n", out.String())
}

func TestStream_Flush(t *testing.T) {
	assert := assert.New(t)

	out := &bytes.Buffer{}
	bw := bufio.NewWriter(out)
	st := &Stream{Output: bw}

	assert.NoError(st.WriteChar('x'))
	assert.Equal("x", out.String())
}

func TestStream_Bytes(t *testing.T) {
	assert := assert.New(t)

	out := &bytes.Buffer{}
	st := &Stream{Input: bytes.NewReader([]byte{0xc3, 0x07}), Output: out, Bytes: true}

	r, err := st.ReadChar()
	assert.NoError(err)
	assert.Equal(rune(0xc3), r)

	value, err := st.ReadInt()
	assert.NoError(err)
	assert.Equal(uint32(7), value)

	assert.NoError(st.WriteChar(0xe9))
	assert.NoError(st.WriteInt(42))
	assert.Equal([]byte{0xe9, 42}, out.Bytes())

	assert.ErrorIs(st.WriteChar('€'), ErrByteRange)
	assert.ErrorIs(st.WriteInt(256), ErrByteRange)
	assert.Equal(2, out.Len())
}

func TestStream_Rewind(t *testing.T) {
	assert := assert.New(t)

	st := &Stream{Input: strings.NewReader("ab")}
	r, err := st.ReadChar()
	assert.NoError(err)
	assert.Equal('a', r)

	st.Input = strings.NewReader("z")
	st.Rewind()

	r, err = st.ReadChar()
	assert.NoError(err)
	assert.Equal('z', r)
}

func TestStream_Errors(t *testing.T) {
	assert := assert.New(t)

	boom := errors.New("boom")

	st := &Stream{Input: iotest.ErrReader(boom), Output: &failWriter{err: boom}}

	_, err := st.ReadChar()
	assert.ErrorIs(err, boom)

	_, err = st.ReadInt()
	assert.ErrorIs(err, boom)

	assert.ErrorIs(st.WriteChar('x'), boom)
	assert.ErrorIs(st.WriteInt(1), boom)
}

type failWriter struct {
	err error
}

func (fw *failWriter) Write(p []byte) (int, error) {
	return 0, fw.err
}
