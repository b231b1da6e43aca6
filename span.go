package dom

// A Span marks a [Start, End) byte window of the parsed input. End is
// exclusive: for an element it is the byte just after the closing '>'.
type Span struct {
	Start uint32
	End   uint32
}

// Len returns the window length in bytes.
func (s Span) Len() int { return int(s.End) - int(s.Start) }

// Slice returns the window of input covered by the span.
func (s Span) Slice(input []byte) []byte { return input[s.Start:s.End] }
