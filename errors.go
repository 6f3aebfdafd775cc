package bitpack

import (
	"errors"
	"fmt"
)

// Sentinels for errors.Is. Each error type below matches exactly one of them.
var (
	ErrBufferTooSmall  = errors.New("buffer too small")
	ErrCannotParse     = errors.New("cannot parse")
	ErrIllegalArgument = errors.New("illegal argument")
)

// BufferTooSmallError is returned when a write or a copy would exceed the
// space available in a buffer.
type BufferTooSmallError struct {
	BufferDescription string
	AvailableBits     int
	OffsetBits        int
	RequiredBits      int
}

func (e *BufferTooSmallError) Error() string {
	return fmt.Sprintf("insufficient space in %s: available bits: %d (from offset %d), required bits: %d",
		e.BufferDescription, e.AvailableBits, e.OffsetBits, e.RequiredBits)
}

func (e *BufferTooSmallError) Is(target error) bool { return target == ErrBufferTooSmall }

// CannotParseError is returned for a malformed textual data length.
type CannotParseError struct {
	Input              string
	SourceDescription  string
	ExpectedFormat     string
	ProblemDescription string
	// TokenCount is only set when the input had the wrong number of tokens.
	TokenCount int
}

func (e *CannotParseError) Error() string {
	msg := fmt.Sprintf("couldn't parse %q from %s, expected %s", e.Input, e.SourceDescription, e.ExpectedFormat)
	if e.ProblemDescription != "" {
		msg += ", but " + e.ProblemDescription
	}
	return msg
}

func (e *CannotParseError) Is(target error) bool { return target == ErrCannotParse }

// IllegalArgumentError is returned for arguments of the wrong kind or out of
// range.
type IllegalArgumentError struct {
	ArgumentDescription  string
	PredicateDescription string
	ProvidedValue        interface{}
}

func (e *IllegalArgumentError) Error() string {
	return fmt.Sprintf("%s must be %s, but was: %v", e.ArgumentDescription, e.PredicateDescription, e.ProvidedValue)
}

func (e *IllegalArgumentError) Is(target error) bool { return target == ErrIllegalArgument }

// withArgument returns a copy of err relabeled for the named call-site
// argument. err itself is never modified.
func withArgument(err error, name string) error {
	var cp *CannotParseError
	if errors.As(err, &cp) {
		relabeled := *cp
		relabeled.SourceDescription = name + " argument"
		return &relabeled
	}
	var ia *IllegalArgumentError
	if errors.As(err, &ia) {
		relabeled := *ia
		relabeled.ArgumentDescription = "Argument " + name
		return &relabeled
	}
	return err
}
