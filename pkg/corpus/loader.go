package corpus

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

//go:embed schemas/dataset_schema.json
var datasetSchema string

// LoadDataset reads the dataset file at path, validates it against the
// corpus schema and returns the entries in document order. The whole load
// fails on the first violation; no partial dataset is returned.
func LoadDataset(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}

	entries, err := ParseDataset(data)
	if err != nil {
		if serr, ok := err.(*SchemaError); ok {
			serr.Path = path
			return nil, serr
		}
		return nil, &LoadError{Path: path, Err: err}
	}
	return entries, nil
}

// ParseDataset validates and decodes an in-memory dataset document. Both
// document shapes are accepted: the pandas table wrapper the corpus ships in
// and a bare array of entries.
func ParseDataset(data []byte) ([]Entry, error) {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	if err := validateDocument(raw); err != nil {
		return nil, err
	}

	// Schema validation passed, so the typed decode cannot fail on shape.
	switch raw.(type) {
	case []any:
		var entries []Entry
		if err := json.Unmarshal(data, &entries); err != nil {
			return nil, fmt.Errorf("failed to decode entries: %w", err)
		}
		return entries, nil
	default:
		var doc document
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to decode dataset document: %w", err)
		}
		return doc.Data, nil
	}
}

// validateDocument runs the embedded JSON schema over the decoded document
// and converts the first violation into a SchemaError.
func validateDocument(doc any) error {
	compiler := jsonschema.NewCompiler()

	var schemaDoc any
	if err := json.Unmarshal([]byte(datasetSchema), &schemaDoc); err != nil {
		return fmt.Errorf("failed to parse dataset schema: %w", err)
	}

	schemaURL := "http://knct.dev/dataset_schema.json"
	if err := compiler.AddResource(schemaURL, schemaDoc); err != nil {
		return fmt.Errorf("failed to add schema resource: %w", err)
	}

	schema, err := compiler.Compile(schemaURL)
	if err != nil {
		return fmt.Errorf("failed to compile dataset schema: %w", err)
	}

	if err := schema.Validate(doc); err != nil {
		if verr, ok := err.(*jsonschema.ValidationError); ok {
			return schemaErrorFromValidation(verr)
		}
		return err
	}
	return nil
}

// schemaErrorFromValidation picks the deepest cause of a validation error
// and maps its instance location onto an entry index and field path. The
// document may be a table wrapper, so a leading "data" segment is skipped.
func schemaErrorFromValidation(verr *jsonschema.ValidationError) *SchemaError {
	cause := deepestCause(verr)

	loc := cause.InstanceLocation
	if len(loc) > 0 && loc[0] == "data" {
		loc = loc[1:]
	}

	entryIndex := -1
	field := ""
	if len(loc) > 0 {
		if idx, err := strconv.Atoi(loc[0]); err == nil {
			entryIndex = idx
			field = strings.Join(loc[1:], ".")
		} else {
			field = strings.Join(loc, ".")
		}
	}

	return &SchemaError{
		EntryIndex: entryIndex,
		Field:      field,
		Message:    leafMessage(cause),
	}
}

// deepestCause walks the cause tree to the most specific violation. With a
// oneOf over the two accepted document shapes the causes from the branch
// that got furthest carry the longest instance locations.
func deepestCause(verr *jsonschema.ValidationError) *jsonschema.ValidationError {
	best := verr
	var walk func(v *jsonschema.ValidationError)
	walk = func(v *jsonschema.ValidationError) {
		if len(v.InstanceLocation) > len(best.InstanceLocation) {
			best = v
		}
		for _, c := range v.Causes {
			walk(c)
		}
	}
	walk(verr)
	return best
}

// leafMessage extracts the human-readable part of a single cause, dropping
// the "jsonschema validation failed" banner and location prefixes the
// library adds.
func leafMessage(cause *jsonschema.ValidationError) string {
	msg := cause.Error()
	lines := strings.Split(msg, "\n")
	var kept []string
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "jsonschema validation failed") {
			continue
		}
		line = strings.TrimPrefix(line, "- ")
		if at := strings.Index(line, "': "); at != -1 && strings.HasPrefix(line, "at '") {
			line = line[at+3:]
		}
		kept = append(kept, line)
	}
	if len(kept) == 0 {
		return "schema validation failed"
	}
	return strings.Join(kept, "; ")
}
