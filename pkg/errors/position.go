package errors

import "photon/pkg/source"

// Position represents a specific location in the source code.
// Line and Column are 1-based (Column counts runes), StartPos and EndPos are
// 0-based byte offsets of the offending span, EndPos exclusive.
type Position struct {
	Line     int
	Column   int
	StartPos int
	EndPos   int
	Source   *source.SourceFile
}

// IsValid reports whether the position points at a real line.
func (p Position) IsValid() bool {
	return p.Line > 0
}
