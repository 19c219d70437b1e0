// Package corpus loads and validates the K-NCT grammar-error correction
// dataset. The published file is a pandas table document with a "schema"
// header and a "data" array; a bare JSON array of entries is accepted too.
// Every entry is checked against an embedded JSON schema before it is
// decoded, so callers never see a record with missing or mistyped fields.
package corpus

// Entry is one validated corpus record: an error-annotated sentence paired
// with its corrected form and descriptive metadata. Entries are value types
// created once per load and never mutated.
type Entry struct {
	Index           int               `json:"index"`
	ErrorSentence   string            `json:"error_sentence"`
	CorrectSentence string            `json:"correct_sentence"`
	Domain          string            `json:"domain"`
	Style           string            `json:"style"`
	Syllables       int               `json:"syllable"`
	Phrases         int               `json:"phrase"`
	ErrorCount      int               `json:"number of error"`
	ErrorTypes      map[string]string `json:"error_type"`
}

// document is the pandas orient="table" wrapper the corpus ships in.
type document struct {
	Schema *tableSchema `json:"schema"`
	Data   []Entry      `json:"data"`
}

type tableSchema struct {
	Fields        []map[string]any `json:"fields"`
	PrimaryKey    []string         `json:"primaryKey"`
	PandasVersion string           `json:"pandas_version"`
}
