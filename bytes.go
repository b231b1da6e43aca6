package dom

import "bytes"

// Bytes is the character data of a node: either a window borrowed from the
// parsed input, or an owned buffer that replaced such a window after a
// mutation. The read API is the same for both representations.
type Bytes struct {
	raw   []byte
	owned bool
}

// borrowBytes wraps a window of the parsed input without copying.
func borrowBytes(b []byte) Bytes {
	return Bytes{raw: b}
}

// OwnBytes returns a Bytes holding its own copy of b, detached from any
// parsed input.
func OwnBytes(b []byte) Bytes {
	cp := make([]byte, len(b))
	copy(cp, b)
	return Bytes{raw: cp, owned: true}
}

// Raw returns the underlying bytes. The slice aliases either the parsed input
// or the owned buffer and must not be modified by the caller.
func (b Bytes) Raw() []byte { return b.raw }

// Len returns the length in bytes.
func (b Bytes) Len() int { return len(b.raw) }

// IsOwned reports whether the view was detached from the parsed input.
func (b Bytes) IsOwned() bool { return b.owned }

// Equal compares two views byte-wise.
func (b Bytes) Equal(other Bytes) bool { return bytes.Equal(b.raw, other.raw) }

func (b Bytes) String() string { return string(b.raw) }
