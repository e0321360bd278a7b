package ast

import "fmt"

// Position identifies a point in a source file. Both Line and Column are
// 1-based. A zero Position is not a valid location in any file.
type Position struct {
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Before reports whether p occurs strictly before other.
func (p Position) Before(other Position) bool {
	if p.Line != other.Line {
		return p.Line < other.Line
	}
	return p.Column < other.Column
}

// Range is a span of source text. Start is the position of the first
// character and End is the position just past the last one. Contains treats
// End as inclusive.
type Range struct {
	Start Position
	End   Position
}

func (r Range) String() string {
	return fmt.Sprintf("%s-%s", r.Start, r.End)
}

// Contains reports whether pos falls inside the range. The end position is
// treated as inclusive so that a cursor sitting immediately after the last
// character of an identifier still hits it.
func (r Range) Contains(pos Position) bool {
	if pos.Line < r.Start.Line || pos.Line > r.End.Line {
		return false
	}
	if pos.Line == r.Start.Line && pos.Column < r.Start.Column {
		return false
	}
	if pos.Line == r.End.Line && pos.Column > r.End.Column {
		return false
	}
	return true
}

// Location is a range within a named file.
type Location struct {
	Path  string
	Range Range
}
