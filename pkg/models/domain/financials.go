package domain

// StatementKind identifies one of the financial statements served by the dashboard.
type StatementKind string

const (
	StatementIncome       StatementKind = "income"
	StatementBalanceSheet StatementKind = "balance-sheet"
	StatementCashFlow     StatementKind = "cash-flow"
)

// Mode selects how a metric is compared against the prior year.
type Mode string

const (
	// ModeAnnual compares the sum of all quarters of a year.
	ModeAnnual Mode = "annual"
	// ModeQuarterLatest compares the latest quarter of a year with the same quarter a year earlier.
	ModeQuarterLatest Mode = "quarter-latest"
)

// FinancialRow is one quarterly statement record. A field absent from Values is missing,
// which is not the same as zero.
type FinancialRow struct {
	Year    int
	Quarter int
	Values  map[string]float64
}

// Value returns the named field and whether it is present.
func (r FinancialRow) Value(field string) (float64, bool) {
	v, ok := r.Values[field]
	return v, ok
}

type MetricDefinition struct {
	Label string
	Field string
	Mode  Mode
}

// Cell is a single displayable number. Value is nil when the number is missing or undefined.
type Cell struct {
	Value   *float64
	Display string
}

type MetricRow struct {
	Label    string
	Field    string
	Mode     Mode
	Quarters [4]Cell // Q1..Q4
	Change   Cell    // YoY percentage
}

type KPI struct {
	Label  string
	Field  string
	Mode   Mode
	Value  Cell
	Change Cell
}

type StatementView struct {
	Symbol         string
	Kind           StatementKind
	Year           int
	AvailableYears []int
	Rows           []MetricRow
	KPIs           []KPI
	RejectedRows   int
}
