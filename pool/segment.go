// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package pool

// DefaultSegmentSize is the capacity in bytes of a segment when no other size
// is specified.
const DefaultSegmentSize = 4096

// A Segment is a fixed-capacity block of bytes that is filled by appending
// and emptied all at once by Reset. Its capacity never changes, so slices
// returned by Append remain valid until the segment is reset.
type Segment struct {
	buf []byte
}

// NewSegment constructs an empty segment with the given capacity in bytes.
// If size ≤ 0, DefaultSegmentSize is used.
func NewSegment(size int) *Segment {
	if size <= 0 {
		size = DefaultSegmentSize
	}
	return &Segment{buf: make([]byte, 0, size)}
}

// Append copies text to the end of s and returns a slice of the copy.  If s
// does not have room for all of text, Append returns nil, false and s is not
// modified.
func (s *Segment) Append(text []byte) ([]byte, bool) {
	if len(text) > s.Avail() {
		return nil, false
	}
	p := len(s.buf)
	s.buf = append(s.buf, text...)
	return s.buf[p:len(s.buf):len(s.buf)], true
}

// Reset discards the contents of s. Slices previously returned by Append are
// invalidated, since their storage will be reused.
func (s *Segment) Reset() { s.buf = s.buf[:0] }

// Len reports the number of bytes currently used in s.
func (s *Segment) Len() int { return len(s.buf) }

// Cap reports the fixed capacity of s in bytes.
func (s *Segment) Cap() int { return cap(s.buf) }

// Avail reports the number of unused bytes remaining in s.
func (s *Segment) Avail() int { return cap(s.buf) - len(s.buf) }
