package io

import (
	"errors"
	"io"
	"unicode/utf8"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

var (
	errScriptValue = errors.New(f("returned an unusable value"))
)

// Script is a capability implemented by Starlark functions:
//
//	def read_char(n):  return "hello"[n]  # or a character code
//	def read_int(n):   return 42
//	def write_char(c): emit(c)            # c is a one character string
//	def write_int(v):  emit("%d\n" % v)
//
// n counts the earlier calls of the same function, since script globals are
// frozen once the script has run. The emit(text) builtin, and print(), write
// to Output.
//
// Functions the script does not define are forwarded to Fallback, or fail
// with ErrUnsupported when there is none.
type Script struct {
	Output   io.Writer
	Fallback Capability

	thread  *starlark.Thread
	globals starlark.StringDict
	calls   map[string]int
}

var _ Capability = (*Script)(nil)

// NewScript executes a Starlark script, and returns a capability for its
// functions. If src is nil the script is read from filename.
func NewScript(filename string, src any) (script *Script, err error) {
	script = &Script{
		calls: map[string]int{},
	}

	script.thread = &starlark.Thread{
		Name: "cowlang",
		Print: func(_ *starlark.Thread, msg string) {
			if script.Output != nil {
				io.WriteString(script.Output, msg+"\n")
			}
		},
	}

	predeclared := starlark.StringDict{
		"emit": starlark.NewBuiltin("emit", script.emit),
	}

	opts := syntax.FileOptions{}
	script.globals, err = starlark.ExecFileOptions(&opts, script.thread, filename, src, predeclared)
	if err != nil {
		script = nil
		return
	}

	return
}

func (script *Script) emit(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var text string
	err := starlark.UnpackPositionalArgs(fn.Name(), args, kwargs, 1, &text)
	if err != nil {
		return nil, err
	}

	if script.Output != nil {
		_, err = io.WriteString(script.Output, text)
		if err != nil {
			return nil, err
		}
	}

	return starlark.None, nil
}

// Defines returns true if the script defines a callable name.
func (script *Script) Defines(name string) bool {
	_, ok := script.globals[name].(starlark.Callable)
	return ok
}

func (script *Script) call(name string, args ...starlark.Value) (rc starlark.Value, err error) {
	fn, ok := script.globals[name].(starlark.Callable)
	if !ok {
		err = &ErrScript{Function: name, Err: ErrUnsupported}
		return
	}

	rc, err = starlark.Call(script.thread, fn, starlark.Tuple(args), nil)
	if err != nil {
		err = &ErrScript{Function: name, Err: err}
	}
	return
}

func (script *Script) read(name string) (value uint32, err error) {
	n := script.calls[name]
	script.calls[name] = n + 1

	rc, err := script.call(name, starlark.MakeInt(n))
	if err != nil {
		return
	}

	switch v := rc.(type) {
	case starlark.Int:
		i, ok := v.Int64()
		if ok && i >= 0 && i <= 0xffffffff {
			value = uint32(i)
			return
		}
	case starlark.String:
		r, size := utf8.DecodeRuneInString(string(v))
		if size > 0 && size == len(v) {
			value = uint32(r)
			return
		}
	}

	err = &ErrScript{Function: name, Err: errScriptValue}
	return
}

// ReadChar calls read_char(n).
func (script *Script) ReadChar() (r rune, err error) {
	if !script.Defines("read_char") && script.Fallback != nil {
		return script.Fallback.ReadChar()
	}

	value, err := script.read("read_char")
	r = rune(value)
	return
}

// ReadInt calls read_int(n).
func (script *Script) ReadInt() (value uint32, err error) {
	if !script.Defines("read_int") && script.Fallback != nil {
		return script.Fallback.ReadInt()
	}

	return script.read("read_int")
}

// WriteChar calls write_char(c).
func (script *Script) WriteChar(r rune) (err error) {
	if !script.Defines("write_char") && script.Fallback != nil {
		return script.Fallback.WriteChar(r)
	}

	_, err = script.call("write_char", starlark.String(string(r)))
	return
}

// WriteInt calls write_int(v).
func (script *Script) WriteInt(value uint32) (err error) {
	if !script.Defines("write_int") && script.Fallback != nil {
		return script.Fallback.WriteInt(value)
	}

	_, err = script.call("write_int", starlark.MakeUint64(uint64(value)))
	return
}
