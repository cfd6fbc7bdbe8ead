// Package source tracks positions within a YAML/JSON source buffer.
// The parser attaches one to each syntax error it reports; resolver
// and emitter errors carry no position.
package source

// ColumnAccuracy indicates how precisely a Position's column was
// determined.
type ColumnAccuracy int

const (
	// ColumnAccuracyExact indicates that column numbers are accurate.
	ColumnAccuracyExact ColumnAccuracy = 1
	// ColumnAccuracyApproximate indicates that column numbers are
	// approximate. The parser does not set ColumnAccuracy on the
	// positions it reports.
	ColumnAccuracyApproximate ColumnAccuracy = 2
)

// Position is a 1-indexed line/column pair in the source buffer.
type Position struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

func (p *Position) GetLine() int {
	return p.Line
}

func (p *Position) GetColumn() int {
	return p.Column
}

// Meta is the position an error points back at. The parser builds one
// for each syntax error it reports; parsed nodes and scalars do not
// carry a Meta.
type Meta struct {
	Position
	EndPosition    *Position       `json:"endPosition,omitempty"`
	ColumnAccuracy *ColumnAccuracy `json:"columnAccuracy,omitempty"`
}

// Range holds a start/end position pair, independent of any particular
// node's Meta.
type Range struct {
	Start *Position
	End   *Position
}

// PositionRange flattens a Meta into a Range-shaped view, primarily
// for error reporting.
type PositionRange struct {
	Line           *int
	Column         *int
	EndLine        *int
	EndColumn      *int
	ColumnAccuracy *ColumnAccuracy
}

// PositionRangeFromMeta extracts a PositionRange from a Meta, returning
// an empty PositionRange (all nil fields) when meta is nil.
func PositionRangeFromMeta(meta *Meta) *PositionRange {
	if meta == nil {
		return &PositionRange{}
	}

	pr := &PositionRange{
		Line:           &meta.Line,
		Column:         &meta.Column,
		ColumnAccuracy: meta.ColumnAccuracy,
	}

	if meta.EndPosition != nil {
		pr.EndLine = &meta.EndPosition.Line
		pr.EndColumn = &meta.EndPosition.Column
	}

	return pr
}

// LinePositions returns the byte offset of the start of each line in src,
// indexed from 0, followed by a final sentinel offset equal to len(src)
// so that the last line's length can always be computed. Line endings
// \n, \r\n and \r all count as a single newline for this purpose.
func LinePositions(src []byte) []int {
	positions := []int{0}
	for i := 0; i < len(src); i++ {
		switch src[i] {
		case '\n':
			positions = append(positions, i+1)
		case '\r':
			if i+1 >= len(src) || src[i+1] != '\n' {
				positions = append(positions, i+1)
			}
		}
	}
	if len(positions) == 0 || positions[len(positions)-1] != len(src) {
		positions = append(positions, len(src))
	}
	return positions
}

// PositionFromOffset returns the 1-indexed line/column of a byte offset
// into src, given the line table produced by LinePositions.
func PositionFromOffset(offset int, linePositions []int) Position {
	line := 0
	for i := 0; i < len(linePositions)-1; i++ {
		if offset < linePositions[i+1] {
			break
		}
		line = i + 1
	}
	if line >= len(linePositions)-1 && len(linePositions) > 1 {
		line = len(linePositions) - 2
	}
	if line < 0 {
		line = 0
	}
	column := offset - linePositions[line]
	return Position{
		Line:   line + 1,
		Column: column + 1,
	}
}
