// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package qmdd

import (
	"fmt"
	"log"
)

// InvalidArgumentError is returned when an operation is called with an
// argument that is structurally wrong (e.g. a register index out of range,
// a radix outside [MinRadix, MaxRadix], or a mismatch in the number of
// registers between two operands).
type InvalidArgumentError struct {
	msg string
}

func (e *InvalidArgumentError) Error() string { return "invalid argument: " + e.msg }

// OutOfRangeError is returned when a path, index, or register lookup falls
// outside the bounds implied by the Package's radix table.
type OutOfRangeError struct {
	msg string
}

func (e *OutOfRangeError) Error() string { return "out of range: " + e.msg }

// AllocationError is returned when a table (scalar store or node unique
// table) cannot grow to satisfy a request, typically because a configured
// maximum size was reached.
type AllocationError struct {
	msg string
}

func (e *AllocationError) Error() string { return "allocation failed: " + e.msg }

// InvariantViolation is returned when an internal consistency check fails,
// such as a node built with the wrong number of children, or with a child
// that does not sit on the level directly below it.
type InvariantViolation struct {
	msg string
}

func (e *InvariantViolation) Error() string { return "invariant violation: " + e.msg }

func invalidArgument(format string, a ...interface{}) error {
	return &InvalidArgumentError{msg: fmt.Sprintf(format, a...)}
}

func outOfRange(format string, a ...interface{}) error {
	return &OutOfRangeError{msg: fmt.Sprintf(format, a...)}
}

func allocationError(format string, a ...interface{}) error {
	return &AllocationError{msg: fmt.Sprintf(format, a...)}
}

func invariantViolation(format string, a ...interface{}) error {
	return &InvariantViolation{msg: fmt.Sprintf(format, a...)}
}

// Error returns the error status of the Package, following rudd's pattern
// of threading a sticky error through deep recursive operations instead of
// plumbing an error return through every recursive call.
func (p *Package) Error() string {
	if p.err == nil {
		return ""
	}
	return p.err.Error()
}

// Errored reports whether a sticky error has been recorded since the last
// call that cleared it.
func (p *Package) Errored() bool {
	return p.err != nil
}

func (p *Package) seterror(err error) {
	if p.err != nil {
		p.err = fmt.Errorf("%w; %s", err, p.Error())
		return
	}
	p.err = err
	if _DEBUG {
		log.Println(p.err)
	}
}

func (p *Package) clearerror() {
	p.err = nil
}

// fail records err as the Package's sticky error (so Error()/Errored() see
// it even though this port's public operators already return err directly)
// and returns it unchanged, so call sites can write "return Edge{},
// p.fail(err)" at the exact points where rudd itself would call seterror
// deep inside a recursive operation it cannot cleanly thread an error
// return through.
func (p *Package) fail(err error) error {
	if err != nil {
		p.seterror(err)
	}
	return err
}
