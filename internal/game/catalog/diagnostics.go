package catalog

import "fmt"

// Severity grades a diagnostic.
type Severity string

const (
	// SeverityInfo marks expected-but-noteworthy outcomes (e.g. a user
	// override shadowing a master row).
	SeverityInfo Severity = "info"
	// SeverityWarn marks data-quality problems that caused a row to be
	// dropped or a name to collide.
	SeverityWarn Severity = "warn"
)

// Diagnostic codes emitted by Build and ValidateUserCategory.
const (
	// CodeRowDropped: a row failed normalization and was excluded.
	CodeRowDropped = "row_dropped"
	// CodeDuplicateID: a second row with the same id inside one source was dropped.
	CodeDuplicateID = "duplicate_id"
	// CodeDuplicateName: a second row with the same name inside one source was dropped.
	CodeDuplicateName = "duplicate_name"
	// CodeOverride: a user row replaced a master row with the same id.
	CodeOverride = "override"
	// CodeNameShadowed: master and user define the same name under different
	// ids; name lookup resolves to the later entry.
	CodeNameShadowed = "name_shadowed"
	// CodeInvalidID: a user row carries a missing or non-positive id.
	CodeInvalidID = "invalid_id"
)

// Diagnostic is one structured finding from catalog construction or user-data
// validation. Diagnostics are returned with the build result, never logged
// as a side effect, so callers and tests can assert on exactly what happened.
type Diagnostic struct {
	Severity Severity
	Code     string
	Category string
	Source   Source
	RowID    int
	RowName  string
	Detail   string
}

// String renders the diagnostic for human-readable output.
func (d Diagnostic) String() string {
	return fmt.Sprintf("[%s] %s %s/%s id=%d name=%q: %s",
		d.Severity, d.Code, d.Source, d.Category, d.RowID, d.RowName, d.Detail)
}
