package heatmap

import "math"

// Column names recognized by AdaptProbabilities
const (
	ColumnCellID = "cell_id"
	ColumnID     = "id"
	ColumnProb   = "prob"
)

// idColumns lists accepted id columns in priority order
var idColumns = []string{ColumnCellID, ColumnID}

// Table is a loosely typed probability source: named numeric columns of equal
// length, as produced by an external model or uploaded by a caller.
type Table struct {
	Columns map[string][]float64 `json:"columns"`
}

// NewTable builds a Table with cell_id and prob columns
func NewTable(ids []int, probs []float64) Table {
	idCol := make([]float64, len(ids))
	for i, id := range ids {
		idCol[i] = float64(id)
	}
	p := make([]float64, len(probs))
	copy(p, probs)
	return Table{Columns: map[string][]float64{ColumnCellID: idCol, ColumnProb: p}}
}

// ProbabilityRow is one cell's value
type ProbabilityRow struct {
	CellID int     `json:"cell_id"`
	Prob   float64 `json:"prob"`
}

// ProbabilityTable holds rows in source order under the canonical CellID
type ProbabilityTable []ProbabilityRow

// IDColumn reports which id column AdaptProbabilities would use
func (t Table) IDColumn() (string, bool) {
	for _, name := range idColumns {
		if _, ok := t.Columns[name]; ok {
			return name, true
		}
	}
	return "", false
}

// AdaptProbabilities converts t into a ProbabilityTable. The id is taken from
// cell_id when present, otherwise from id; values come from prob. It returns
// false when either column is missing, when lengths differ, or when an id is
// not an integer.
func AdaptProbabilities(t Table) (ProbabilityTable, bool) {
	idName, ok := t.IDColumn()
	if !ok {
		return nil, false
	}
	probs, ok := t.Columns[ColumnProb]
	if !ok {
		return nil, false
	}
	ids := t.Columns[idName]
	if len(ids) != len(probs) {
		return nil, false
	}

	out := make(ProbabilityTable, len(ids))
	for i, raw := range ids {
		if math.IsNaN(raw) || math.IsInf(raw, 0) || raw != math.Trunc(raw) {
			return nil, false
		}
		out[i] = ProbabilityRow{CellID: int(raw), Prob: probs[i]}
	}
	return out, true
}

// Filter returns the rows whose value is at least minProb
func (p ProbabilityTable) Filter(minProb float64) ProbabilityTable {
	out := make(ProbabilityTable, 0, len(p))
	for _, row := range p {
		if row.Prob >= minProb {
			out = append(out, row)
		}
	}
	return out
}
