package dom

import (
	"errors"
	"fmt"
)

var (
	// ErrInputTooLong is returned by Parse when the input cannot be addressed
	// with 32-bit offsets.
	ErrInputTooLong = errors.New("dom: input exceeds the 4 GiB limit")

	// ErrBadHandle is returned when a handle does not resolve in the
	// document, typically because it came from a different document.
	ErrBadHandle = errors.New("dom: handle does not resolve in this document")

	// ErrTypeMismatch is returned when an element operation is applied to a
	// text or markup-declaration node.
	ErrTypeMismatch = errors.New("dom: node is not an element")
)

// SelectorErrorKind classifies selector compilation failures.
type SelectorErrorKind uint8

const (
	// SelectorUnexpectedToken marks a byte that cannot start or continue a
	// selector token.
	SelectorUnexpectedToken SelectorErrorKind = iota
	// SelectorUnterminated marks an attribute bracket or quoted value with no
	// closing delimiter.
	SelectorUnterminated
	// SelectorEmpty marks a selector with no compound selectors.
	SelectorEmpty
	// SelectorUnsupportedCombinator marks a combinator other than descendant
	// whitespace.
	SelectorUnsupportedCombinator
)

func (k SelectorErrorKind) String() string {
	switch k {
	case SelectorUnexpectedToken:
		return "unexpected token"
	case SelectorUnterminated:
		return "unterminated"
	case SelectorEmpty:
		return "empty selector"
	case SelectorUnsupportedCombinator:
		return "unsupported combinator"
	}
	return "unknown"
}

// SelectorError reports why a selector failed to compile and where.
type SelectorError struct {
	Kind SelectorErrorKind
	Pos  int // byte offset into the selector source
}

func (e *SelectorError) Error() string {
	return fmt.Sprintf("dom: selector: %s at offset %d", e.Kind, e.Pos)
}

func (e *SelectorError) Is(target error) bool {
	var se *SelectorError
	if errors.As(target, &se) {
		return e.Kind == se.Kind
	}
	return false
}
