package io

import (
	"sync"
)

const (
	ACTOR_OUTPUT_DEPTH = 256 // Writes buffered before WriteChar/WriteInt block.
)

type reply struct {
	value uint32
	err   error
}

// Request is a read pending on an Actor, waiting for the host to answer it.
type Request struct {
	Kind Kind

	response chan reply
}

// Reply answers the request with a value.
func (req Request) Reply(value uint32) {
	req.response <- reply{value: value}
}

// Fail answers the request with an error.
func (req Request) Fail(err error) {
	req.response <- reply{err: err}
}

// Actor is a capability for an engine running on its own goroutine, whose
// input is answered by another one (for example, an interactive front end).
//
// Each read is staged as a Request on Requests(), and blocks until the
// request is answered or the actor is closed. Writes are delivered on
// Writes().
type Actor struct {
	requests chan Request
	writes   chan Write
	done     chan struct{}
	once     sync.Once
}

var _ Capability = (*Actor)(nil)

// NewActor creates an open actor.
func NewActor() (actor *Actor) {
	actor = &Actor{
		requests: make(chan Request),
		writes:   make(chan Write, ACTOR_OUTPUT_DEPTH),
		done:     make(chan struct{}),
	}

	return
}

// Requests returns the channel of pending reads.
func (actor *Actor) Requests() <-chan Request {
	return actor.requests
}

// Writes returns the channel of values written by the engine.
func (actor *Actor) Writes() <-chan Write {
	return actor.writes
}

// Close aborts any blocked read or write with ErrClosed.
func (actor *Actor) Close() {
	actor.once.Do(func() {
		close(actor.done)
	})
}

func (actor *Actor) read(kind Kind) (value uint32, err error) {
	req := Request{
		Kind:     kind,
		response: make(chan reply, 1),
	}

	select {
	case actor.requests <- req:
	case <-actor.done:
		err = ErrClosed
		return
	}

	select {
	case rep := <-req.response:
		value, err = rep.value, rep.err
	case <-actor.done:
		err = ErrClosed
	}

	return
}

func (actor *Actor) write(wr Write) (err error) {
	select {
	case <-actor.done:
		err = ErrClosed
		return
	default:
	}

	select {
	case actor.writes <- wr:
	case <-actor.done:
		err = ErrClosed
	}

	return
}

// ReadChar stages a character request and waits for its reply.
func (actor *Actor) ReadChar() (r rune, err error) {
	value, err := actor.read(KIND_CHAR)
	r = rune(value)
	return
}

// ReadInt stages an integer request and waits for its reply.
func (actor *Actor) ReadInt() (value uint32, err error) {
	return actor.read(KIND_INT)
}

// WriteChar delivers a character write.
func (actor *Actor) WriteChar(r rune) error {
	return actor.write(Write{Kind: KIND_CHAR, Value: uint32(r)})
}

// WriteInt delivers an integer write.
func (actor *Actor) WriteInt(value uint32) error {
	return actor.write(Write{Kind: KIND_INT, Value: value})
}
