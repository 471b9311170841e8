package models

// Intent is the operation a question asks for.
type Intent string

const (
	IntentCount Intent = "count"
	IntentSum   Intent = "sum"
	IntentMean  Intent = "mean"
	IntentList  Intent = "list"
)

// CompareOp is a filter comparison operator.
type CompareOp string

const (
	OpEquals      CompareOp = "equals"
	OpNotEquals   CompareOp = "not_equals"
	OpGreaterThan CompareOp = "greater_than"
	OpLessThan    CompareOp = "less_than"
)

// FilterPredicate restricts rows before an operation runs. Column always
// names an existing original column; the extractor drops predicates whose
// column phrase does not resolve. Numeric predicates compare the parsed
// cell value, string predicates compare normalized text.
type FilterPredicate struct {
	Column   string    `json:"column"`
	Op       CompareOp `json:"op"`
	Value    string    `json:"value,omitempty"`
	Number   float64   `json:"number,omitempty"`
	IsNumber bool      `json:"is_number,omitempty"`
}

// ClarifyReason marks a query that could not be executed as asked and
// needs a clarification answer instead of a computed one.
type ClarifyReason string

const (
	// ClarifyNone means the query executed normally.
	ClarifyNone ClarifyReason = ""
	// ClarifyColumn means no target column could be identified.
	ClarifyColumn ClarifyReason = "column"
	// ClarifyQuestion means neither intent, column, nor filters were found.
	ClarifyQuestion ClarifyReason = "question"
)

// QueryResult is the ephemeral outcome of executing one question against a
// table. Exactly one of the payload groups is meaningful, according to
// Intent: Count for count, Value for sum/mean, Values or Rows for list.
type QueryResult struct {
	Intent      Intent
	Column      string
	FilterCount int
	MatchedRows int

	Count int

	Value         float64
	NoNumericData bool

	Values        []string
	DistinctTotal int

	Rows       [][]string
	RowColumns []string

	Clarify ClarifyReason
}
