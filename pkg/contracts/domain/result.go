package domain

// ParseResult is one loaded DTA file. A new result is built on every load;
// nothing is mutated after the loader returns it.
type ParseResult struct {
	Source       string  `json:"source"`
	Header       *Header `json:"-"`
	HeaderLength int64   `json:"header_length"`
	Timestamps   bool    `json:"timestamps"`
	Loaded       bool    `json:"loaded"`

	tables   []*Table
	ocvCurve *Table
}

// NewParseResult assembles a loaded result. ocv may be nil.
func NewParseResult(source string, header *Header, headerLength int64, tables []*Table, ocv *Table, timestamps bool) *ParseResult {
	if header == nil {
		header = NewHeader()
	}
	return &ParseResult{
		Source:       source,
		Header:       header,
		HeaderLength: headerLength,
		Timestamps:   timestamps,
		Loaded:       true,
		tables:       tables,
		ocvCurve:     ocv,
	}
}

// Curve returns the table at 0-based index i. An index outside the file
// yields a *CurveIndexError.
func (r *ParseResult) Curve(i int) (*Table, error) {
	if i < 0 || i >= len(r.tables) {
		return nil, &CurveIndexError{Index: i, Count: len(r.tables)}
	}
	return r.tables[i], nil
}

// Curves returns all tables in file order.
func (r *ParseResult) Curves() []*Table {
	out := make([]*Table, len(r.tables))
	copy(out, r.tables)
	return out
}

// CurveCount returns the number of tables.
func (r *ParseResult) CurveCount() int { return len(r.tables) }

// CurveIndices returns 0..CurveCount-1.
func (r *ParseResult) CurveIndices() []int {
	out := make([]int, len(r.tables))
	for i := range out {
		out[i] = i
	}
	return out
}

// CurveNumbers returns the 1-based curve numbers used in the file itself.
func (r *ParseResult) CurveNumbers() []int {
	out := make([]int, len(r.tables))
	for i := range out {
		out[i] = i + 1
	}
	return out
}

// ExperimentType returns the header TAG.
func (r *ParseResult) ExperimentType() (string, bool) {
	return r.Header.Text("TAG")
}

// OCV returns the open circuit potential recorded in the header (EOC).
func (r *ParseResult) OCV() (float64, bool) {
	return r.Header.Number("EOC")
}

// OCVCurve returns the open circuit voltage curve, or nil when the file has none.
// Older files embed it in the header as OCVCURVE; open circuit experiments
// use their first data table.
func (r *ParseResult) OCVCurve() *Table { return r.ocvCurve }

// WithOCVCurve returns a shallow copy of r whose OCV curve is t.
func (r *ParseResult) WithOCVCurve(t *Table) *ParseResult {
	cp := *r
	cp.ocvCurve = t
	return &cp
}
