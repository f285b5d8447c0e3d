package store

// Kind is the operation a Request performs.
type Kind int

const (
	KindSelect Kind = iota + 1
	KindInsert
	KindUpsert
	KindUpdate
	KindDelete
)

func (k Kind) String() string {
	switch k {
	case KindSelect:
		return "select"
	case KindInsert:
		return "insert"
	case KindUpsert:
		return "upsert"
	case KindUpdate:
		return "update"
	case KindDelete:
		return "delete"
	}
	return "unknown"
}

// Op is a predicate comparison.
type Op string

const (
	OpEq  Op = "eq"
	OpNeq Op = "neq"
	OpLt  Op = "lt"
	OpLte Op = "lte"
	OpGt  Op = "gt"
	OpGte Op = "gte"
)

type Predicate struct {
	Column string
	Op     Op
	Value  any
}

type Ordering struct {
	Column    string
	Ascending bool
}

// Request is the fully described operation a builder accumulates. It is
// interpreted by Store.Execute.
type Request struct {
	Kind       Kind
	Collection Collection

	// Columns projects select results. Empty or "*" keeps every field.
	Columns    []string
	Predicates []Predicate
	Order      *Ordering

	// Single narrows the returned data to the first record.
	Single bool
	// Returning asks update to return the updated records.
	Returning bool

	Rows    []Record
	Updates Record
}

// Result is the data an operation resolved to. For Single requests Data
// holds at most one record.
type Result struct {
	Data   []Record
	Single bool
}

// Row returns the first record, or nil when there is none.
func (r Result) Row() Record {
	if len(r.Data) == 0 {
		return nil
	}
	return r.Data[0]
}
