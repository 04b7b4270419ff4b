package tablature

import (
	"errors"
	"fmt"
)

// Structural failures. Both are fatal for the tablature being parsed.
var (
	ErrInconsistentStructure = errors.New("inconsistent tablature structure")
	ErrInstrumentMismatch    = errors.New("instrument mismatch")
)

// StructureError reports a string group whose line count differs from the
// previous groups
type StructureError struct {
	Line int // 1-based line number where the offending group starts
	Want int
	Got  int
}

func (e *StructureError) Error() string {
	return fmt.Sprintf("inconsistent string count in file (line %d): group has %d strings, previous groups have %d",
		e.Line, e.Got, e.Want)
}

// Unwrap lets errors.Is match ErrInconsistentStructure
func (e *StructureError) Unwrap() error {
	return ErrInconsistentStructure
}

// InstrumentError reports a tuning whose string count differs from the tablature's
type InstrumentError struct {
	Tuning    int
	Tablature int
}

func (e *InstrumentError) Error() string {
	return fmt.Sprintf("wrong instrument (%d strings instead of %d)", e.Tuning, e.Tablature)
}

// Unwrap lets errors.Is match ErrInstrumentMismatch
func (e *InstrumentError) Unwrap() error {
	return ErrInstrumentMismatch
}
