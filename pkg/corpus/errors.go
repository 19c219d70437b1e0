package corpus

import "fmt"

// LoadError reports that the dataset file could not be read or is not
// syntactically valid JSON. It wraps the underlying I/O or decode error.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load dataset %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// SchemaError reports a document that is well-formed JSON but does not match
// the corpus schema. EntryIndex is the position of the offending element in
// the data array (-1 when the violation is at the document level) and Field
// is the JSON path of the failing value within that element.
type SchemaError struct {
	Path       string
	EntryIndex int
	Field      string
	Message    string
}

func (e *SchemaError) Error() string {
	where := "document"
	if e.EntryIndex >= 0 {
		where = fmt.Sprintf("entry %d", e.EntryIndex)
		if e.Field != "" {
			where += ", field " + e.Field
		}
	}
	if e.Path != "" {
		return fmt.Sprintf("dataset %s: %s: %s", e.Path, where, e.Message)
	}
	return fmt.Sprintf("dataset: %s: %s", where, e.Message)
}
