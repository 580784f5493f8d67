// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package lowjson

import (
	"fmt"

	"go4.org/mem"
)

// A Span describes a contiguous span of a source input.
type Span struct {
	Pos int // the start offset, 0-based
	End int // the end offset, 0-based (noninclusive)
}

// A LineCol describes the line number and column offset of a location in
// source text.
type LineCol struct {
	Line   int // line number, 1-based
	Column int // byte offset of column in line, 0-based
}

func (lc LineCol) String() string { return fmt.Sprintf("%d:%d", lc.Line, lc.Column) }

// Position returns the line and column of the given byte offset in text.
// Offsets outside text are clamped to its bounds.
func Position[T string | []byte](text T, offset int) LineCol {
	switch t := any(text).(type) {
	case string:
		return locate(mem.S(t), offset)
	case []byte:
		return locate(mem.B(t), offset)
	}
	panic("unreachable")
}

func locate(src mem.RO, offset int) LineCol {
	offset = min(max(offset, 0), src.Len())
	lc := LineCol{Line: 1}
	for {
		i := mem.IndexByte(src.SliceTo(offset), '\n')
		if i < 0 {
			lc.Column = offset
			return lc
		}
		lc.Line++
		src = src.SliceFrom(i + 1)
		offset -= i + 1
	}
}
