package packet

import (
	errors "golang.org/x/xerrors"
)

// Sentinel errors corresponding to the negative FCAP error codes in §6 of
// the protocol spec. Callers compare against these with errors.Is.
var (
	// ErrNoMemory means the output buffer or the packet's MTU budget is
	// exhausted (I3).
	ErrNoMemory = errors.New("fcap: no memory")

	// ErrInvalid means malformed input: wrong value size for a type, a
	// decode of a packet with the wrong version or a length mismatch, or a
	// duplicate key passed to AddKey. The wire protocol reserves a distinct
	// EEXIST code for the duplicate-key case, but the reference
	// implementation collapses it into EINVAL at the AddKey boundary, and
	// this implementation follows that behavior.
	ErrInvalid = errors.New("fcap: invalid")

	// ErrNoKey means GetKey/HasKey was asked for an absent key.
	ErrNoKey = errors.New("fcap: no such key")

	// ErrWrongType means a typed accessor was invoked on a KTV of a
	// different stored type.
	ErrWrongType = errors.New("fcap: wrong type")
)
