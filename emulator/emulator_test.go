package emulator

import (
	"bytes"
	"errors"
	"log/slog"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ezrec/cowlang/cow"
	"github.com/ezrec/cowlang/io"
)

func newEmulator(t *testing.T, program []string, buf *io.Buffer, opts ...cow.Option) *Emulator {
	prog, err := cow.Parse(strings.NewReader(strings.Join(program, "\n")))
	require.NoError(t, err)

	emu, err := NewEmulator(prog, buf, buf, opts...)
	require.NoError(t, err)

	return emu
}

func TestEmulator(t *testing.T) {
	assert := assert.New(t)

	emu := newEmulator(t, []string{"MoO"}, &io.Buffer{})

	assert.False(emu.Verbose)
	assert.NotNil(emu.Engine)
	assert.Equal(0, emu.Steps)

	_, err := NewEmulator(cow.NewProgram(), nil, &io.Buffer{})
	assert.ErrorIs(err, cow.ErrNoSource)
}

func TestEmulatorTick(t *testing.T) {
	assert := assert.New(t)

	program := []string{
		"MoO MoO",  // cell = 2
		"moO",      // next cell
		"MoO",      // cell = 1
		"mOo  OOM", // print 2
	}

	buf := &io.Buffer{}
	emu := newEmulator(t, program, buf)

	lines := []int{1, 1, 2, 3, 4, 4}
	for n, line := range lines {
		assert.Equal(line, emu.LineNo(), n)
		done, err := emu.Tick()
		assert.NoError(err)
		assert.Equal(n == len(lines)-1, done, n)
	}

	done, err := emu.Tick()
	assert.NoError(err)
	assert.True(done)
	assert.Equal(len(lines), emu.Steps)
	assert.Equal(0, emu.LineNo())
	assert.Equal("2\n", buf.String())
}

func TestEmulatorRuntimeError(t *testing.T) {
	assert := assert.New(t)

	program := []string{
		"MoO MoO MoO",
		"   mOO",
	}

	emu := newEmulator(t, program, &io.Buffer{})
	err := emu.Run()

	assert.ErrorIs(err, cow.ErrRecursiveEval)

	var rt *ErrRuntime
	assert.True(errors.As(err, &rt))
	assert.Equal(3, rt.Pc)
	assert.Equal(cow.OP_EVAL, rt.Opcode)
	assert.Equal(cow.Position{Source: 0, Line: 2, Column: 4}, rt.Position)
	assert.Equal("line 2:4 mOO recursive eval", err.Error())

	// Without source positions the program counter is reported.
	emu, err = NewEmulator(cow.NewProgram(cow.OP_JUMP_BACKWARD), &io.Buffer{}, &io.Buffer{})
	assert.NoError(err)
	err = emu.Run()
	assert.ErrorIs(err, cow.ErrBeginlessJumpBackward)
	assert.Equal("pc 0 moo beginless backward jump", err.Error())
}

func TestEmulatorLimit(t *testing.T) {
	assert := assert.New(t)

	// MOO with a non-zero cell never exits the loop.
	program := []string{
		"MoO",
		"MOO OOM OOM moo",
	}

	buf := &io.Buffer{}
	emu := newEmulator(t, program, buf)
	emu.Limit = 10

	err := emu.Run()
	assert.ErrorIs(err, ErrStepLimit)
	assert.Equal(10, emu.Steps)
	assert.NotEmpty(buf.Output)

	emu.Reset()
	assert.Equal(0, emu.Steps)
	assert.Equal(0, emu.Pc())
	assert.Equal([]uint32{0}, emu.Tape())
}

func TestEmulatorVerbose(t *testing.T) {
	assert := assert.New(t)

	trace := &bytes.Buffer{}

	emu := newEmulator(t, []string{"MoO moo"}, &io.Buffer{})
	emu.Verbose = true
	emu.Logger = slog.New(slog.NewTextHandler(trace, &slog.HandlerOptions{Level: slog.LevelDebug}))

	err := emu.Run()
	assert.Error(err)

	text := trace.String()
	assert.Contains(text, "msg=step pc=0 op=MoO line=1 cursor=0 value=0")
	assert.Contains(text, "msg=step pc=1 op=moo line=1 cursor=0 value=1")
	assert.Contains(text, "msg=fault pc=1 op=moo")
}

func TestEmulatorString(t *testing.T) {
	assert := assert.New(t)

	emu := newEmulator(t, []string{"MoO MMM moO", "MoO"}, &io.Buffer{})
	for range 3 {
		_, err := emu.Tick()
		assert.NoError(err)
	}

	expected := strings.Join([]string{
		"    pc: 0003 (line 2)",
		"    op: MoO increment cell",
		"cursor: 1",
		" value: 0",
		"   reg: 1",
		"  tape: [1 *0]",
		" steps: 3",
		"",
	}, "\n")

	assert.Equal(expected, emu.String())
}

func TestEmulatorDump(t *testing.T) {
	assert := assert.New(t)

	emu := newEmulator(t, []string{"MoO MMM moO"}, &io.Buffer{})
	assert.NoError(emu.Run())

	out := &bytes.Buffer{}
	assert.NoError(emu.Dump(out))

	expected := strings.Join([]string{
		"pc: 3",
		"cursor: 1",
		"value: 0",
		"register: 1",
		"tape: [1, 0]",
		"steps: 3",
		"completed: true",
		"",
	}, "\n")
	assert.Equal(expected, out.String())

	state := emu.State()
	assert.Equal("", state.Opcode)
	assert.True(state.Completed)
}

func TestEmulatorDump_Running(t *testing.T) {
	assert := assert.New(t)

	emu := newEmulator(t, []string{"moO", "OOM"}, &io.Buffer{})
	_, err := emu.Tick()
	assert.NoError(err)

	state := emu.State()
	assert.Equal(1, state.Pc)
	assert.Equal("OOM", state.Opcode)
	assert.Equal(2, state.Line)
	assert.Nil(state.Register)
	assert.False(state.Completed)

	out := &bytes.Buffer{}
	assert.NoError(emu.Dump(out))
	assert.Contains(out.String(), "register: null\n")
	assert.Contains(out.String(), "opcode: OOM\n")
}

func TestEmulatorHello(t *testing.T) {
	assert := assert.New(t)

	inf, err := os.Open("testdata/hello.cow")
	require.NoError(t, err)
	defer inf.Close()

	prog, err := cow.Parse(inf)
	require.NoError(t, err)

	out := &bytes.Buffer{}
	stream := &io.Stream{Output: out}

	emu, err := NewEmulator(prog, stream, stream)
	require.NoError(t, err)

	assert.NoError(emu.Run())
	assert.Equal("Hello, World!\n", out.String())
	assert.Equal(prog.Len(), emu.Steps)
}
