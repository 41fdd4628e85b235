package sorter

import (
	"errors"
	"time"
)

// FieldType is the comparison type of a sort field. TypeAuto is resolved to
// a concrete type per file before key construction.
type FieldType string

const (
	TypeAuto   FieldType = "auto"
	TypeText   FieldType = "text"
	TypeNumber FieldType = "number"
	TypeDate   FieldType = "date"
)

// Order is a sort direction.
type Order string

const (
	OrderAsc  Order = "asc"
	OrderDesc Order = "desc"
)

// FieldSpec names a column to sort by, its declared type, and direction.
// The configured list is order-significant: earlier entries take precedence
// in the composite sort key.
type FieldSpec struct {
	Name  string
	Type  FieldType
	Order Order
}

// Config holds everything one batch run needs.
type Config struct {
	InputDir   string
	OutputDir  string
	InputFiles []string // base names without the .csv extension
	Delimiter  rune
	Fields     []FieldSpec
	Order      Order // overall direction applied to the whole composite key
}

// FileResult tracks the outcome of sorting one file.
type FileResult struct {
	Name       string
	OutputPath string
	DataRows   int
	Duration   time.Duration
	Err        error
}

var (
	// ErrNoSortFields means no configured sort field is present in every
	// input file's header; the batch produces no output.
	ErrNoSortFields = errors.New("no common sort fields")

	// ErrFieldAbsent means a sort field was not found in a file's header at
	// sort time. Header reconciliation should make this unreachable.
	ErrFieldAbsent = errors.New("sort field not present in header")
)
