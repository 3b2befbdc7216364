// Copyright 2025 The pica200 Authors. All rights reserved.

package glctx

import "fmt"

// glError adapts an Enum error code to the error interface so internal
// operations can return ordinary Go errors while still carrying the
// exact code a caller's GetError should eventually surface. Veneer
// layers are expected to recover the code with AsEnum rather than
// string-matching Error().
type glError Enum

func errEnum(e Enum) error { return glError(e) }

func (e glError) Error() string {
	switch Enum(e) {
	case InvalidEnum:
		return errPrefix + "invalid enum"
	case InvalidValue:
		return errPrefix + "invalid value"
	case InvalidOperation:
		return errPrefix + "invalid operation"
	case OutOfMemory:
		return errPrefix + "out of memory"
	case InvalidFramebufferOperation:
		return errPrefix + "invalid framebuffer operation"
	default:
		return fmt.Sprintf(errPrefix+"error %#x", uint32(e))
	}
}

// AsEnum recovers the Enum error code from an error produced by this
// package, or (NoError, false) if err did not originate here.
func AsEnum(err error) (Enum, bool) {
	e, ok := err.(glError)
	return Enum(e), ok
}
