package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/goccy/go-yaml"

	"github.com/knct-dev/knct/pkg/console"
	"github.com/knct-dev/knct/pkg/corpus"
	"github.com/knct-dev/knct/pkg/tags"
)

// ParseResult is the parse output for one entry, emitted by the parse
// command in json/yaml mode.
type ParseResult struct {
	Index     int         `json:"index" yaml:"index"`
	CleanText string      `json:"clean_text" yaml:"clean_text"`
	Errors    []tags.Span `json:"errors" yaml:"errors"`
}

// ParseEntries parses the annotations of one entry (index >= 0) or every
// entry (index < 0) and emits the result in the requested format: "text",
// "json" or "yaml". In all-entries mode malformed annotations are reported
// as warnings and the remaining entries are still processed; a single-entry
// request fails on malformed input.
func ParseEntries(path string, index int, format string, verbose bool) error {
	entries, err := corpus.LoadDataset(path)
	if err != nil {
		return formatLoadFailure(err)
	}
	if verbose {
		fmt.Println(console.FormatInfoMessage(fmt.Sprintf("Loaded %d entries from %s", len(entries), console.ToRelativePath(path))))
	}

	if index >= 0 {
		entry, err := findEntry(entries, index)
		if err != nil {
			return err
		}
		clean, spans, err := tags.Parse(entry)
		if err != nil {
			return fmt.Errorf("entry %d: %w", entry.Index, err)
		}
		return emitResults([]ParseResult{{Index: entry.Index, CleanText: clean, Errors: spans}}, format)
	}

	var results []ParseResult
	failed := 0
	for _, entry := range entries {
		clean, spans, err := tags.Parse(entry)
		if err != nil {
			failed++
			fmt.Println(console.FormatWarningMessage(fmt.Sprintf("entry %d: %v", entry.Index, err)))
			continue
		}
		results = append(results, ParseResult{Index: entry.Index, CleanText: clean, Errors: spans})
	}

	if err := emitResults(results, format); err != nil {
		return err
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d entries had malformed annotations", failed, len(entries))
	}
	return nil
}

// findEntry looks an entry up by its dataset index field, not its position
// in the data array.
func findEntry(entries []corpus.Entry, index int) (corpus.Entry, error) {
	for _, entry := range entries {
		if entry.Index == index {
			return entry, nil
		}
	}
	return corpus.Entry{}, fmt.Errorf("no entry with index %d in dataset", index)
}

func emitResults(results []ParseResult, format string) error {
	switch format {
	case "json":
		out, err := json.MarshalIndent(results, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal results: %w", err)
		}
		fmt.Println(string(out))
	case "yaml":
		out, err := yaml.Marshal(results)
		if err != nil {
			return fmt.Errorf("failed to marshal results: %w", err)
		}
		fmt.Print(string(out))
	case "text", "":
		for _, result := range results {
			printResult(result)
		}
	default:
		return errors.New("unknown format: " + format + " (expected text, json or yaml)")
	}
	return nil
}

func printResult(result ParseResult) {
	fmt.Printf("entry %d: %s\n", result.Index, result.CleanText)
	if len(result.Errors) == 0 {
		fmt.Println(console.FormatInfoMessage("no annotated errors"))
		return
	}
	fmt.Print(spanTable(result.Errors))
}

func spanTable(spans []tags.Span) string {
	rows := make([][]string, 0, len(spans))
	for _, span := range spans {
		rows = append(rows, []string{
			span.Text,
			strconv.Itoa(span.Start),
			strconv.Itoa(span.End),
			span.Type,
		})
	}
	return console.RenderTable(console.TableConfig{
		Headers: []string{"Text", "Start", "End", "Type"},
		Rows:    rows,
	})
}
