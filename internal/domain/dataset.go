package domain

// Rejection and warning reason codes recorded in a LoadReport.
const (
	ReasonInvalidCreatedTimestamp  = "invalid_created_timestamp"
	ReasonInvalidResolvedTimestamp = "invalid_resolved_timestamp"
	ReasonNegativeResolution       = "negative_resolution_duration"
)

// RowProblem ties a reason code to the source data row it occurred on.
type RowProblem struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}

// LoadReport describes the structural outcome of a single load: how many
// rows were seen, which were rejected and why, and which expected columns
// the header did or did not carry.
type LoadReport struct {
	TotalRows      int          `json:"total_rows"`
	Accepted       int          `json:"accepted"`
	Rejected       []RowProblem `json:"rejected"`
	Warnings       []RowProblem `json:"warnings"`
	Columns        []string     `json:"columns"`
	MissingColumns []string     `json:"missing_columns"`
	ExtraColumns   []string     `json:"extra_columns"`
}

// Dataset is the immutable result of one upload: accepted records in input
// order plus the load report. It is replaced wholesale on a new upload and
// never mutated, so concurrent reads need no locking.
type Dataset struct {
	Records []*TicketRecord `json:"records"`
	Report  *LoadReport     `json:"report"`
}

// All returns a view over every record in the dataset.
func (d *Dataset) All() View {
	return View{Records: d.Records}
}

// View is an ordered, read-only subset of a dataset. It references the
// underlying records without copying them.
type View struct {
	Records []*TicketRecord
}

// Len reports the number of records in the view.
func (v View) Len() int {
	return len(v.Records)
}
