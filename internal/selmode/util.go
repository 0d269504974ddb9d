package selmode

import (
	"github.com/modaltree/structon/internal/rope"
	"github.com/modaltree/structon/internal/syntax"
)

func byteRangeOf(start, end rope.ByteOffset) syntax.ByteRange {
	return syntax.ByteRange{Start: uint32(start), End: uint32(end)}
}
