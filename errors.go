// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package decido

import (
	"errors"
	"fmt"

	pkgerrors "github.com/pkg/errors"
)

// Sentinel errors identifying the error categories from the engine's error
// handling design: invalid arguments and exhausted capacity are the only two
// conditions a caller can recover from; internal consistency violations are
// programming bugs and are only checked in debug builds (see log.go).
var (
	// ErrInvalidArgument is returned when a call receives a value outside its
	// documented domain (e.g. a negative variable count or an out of range
	// variable index); a bad node value gives ErrInvalidNode instead.
	ErrInvalidArgument = errors.New("decido: invalid argument")

	// ErrCapacityExhausted is returned when the node table cannot grow any
	// further (it has reached MaxNodeSize, or the id space itself is
	// exhausted) and garbage collection did not free enough nodes to satisfy
	// the request.
	ErrCapacityExhausted = errors.New("decido: node table capacity exhausted")

	// ErrConcurrentAccess names a reentrant or concurrent call on an engine
	// that is not protected by external synchronisation. No operation of this
	// package returns it: no access checker is wired in (see Config.CheckAccess).
	ErrConcurrentAccess = errors.New("decido: concurrent or reentrant access detected")

	// ErrInvalidNode is returned when a Node value does not name a live node
	// in the engine it is used with.
	ErrInvalidNode = errors.New("decido: invalid node reference")
)

// Error returns the error status of the engine, or the empty string if there
// has been no error since the engine was created or last cleared.
func (t *table) Error() string {
	if t.err == nil {
		return ""
	}
	return t.err.Error()
}

// Errored returns true if there was an error during a computation.
func (t *table) Errored() bool {
	return t.err != nil
}

// ClearError resets the error status, allowing the engine to be used again
// after a recoverable (category 1) failure.
func (t *table) ClearError() {
	t.err = nil
}

// seterror records a new error on the engine, wrapping it with pkg/errors so
// the failure keeps a stack trace and chains onto any error already present.
// It always returns invalidNode (-1) so call sites can use it as a
// single-expression int return in the internal recursion.
func (t *table) seterror(sentinel error, format string, args ...interface{}) int {
	wrapped := pkgerrors.Wrapf(sentinel, format, args...)
	if t.err != nil {
		t.err = pkgerrors.Wrap(t.err, wrapped.Error())
	} else {
		t.err = wrapped
	}
	if t.log != nil {
		t.log.Debug().Err(wrapped).Msg("operation failed")
	}
	return invalidNode
}

// checkconsistency panics with a descriptive message when a debug build
// detects an internal consistency violation (category 2 in the error
// handling design). In release builds the check is skipped entirely and the
// behaviour of continuing is undefined.
func checkconsistency(cond bool, format string, args ...interface{}) {
	if !debugBuild {
		return
	}
	if !cond {
		panic(fmt.Sprintf("decido: internal consistency violation: "+format, args...))
	}
}
