package cli

import (
	"fmt"

	"github.com/knct-dev/knct/pkg/console"
	"github.com/knct-dev/knct/pkg/corpus"
	"github.com/knct-dev/knct/pkg/tags"
)

// ShowEntry prints one entry with its metadata, clean sentence and span
// table.
func ShowEntry(path string, index int, verbose bool) error {
	entries, err := corpus.LoadDataset(path)
	if err != nil {
		return formatLoadFailure(err)
	}

	entry, err := findEntry(entries, index)
	if err != nil {
		return err
	}

	clean, spans, parseErr := tags.Parse(entry)

	fmt.Println(console.FormatCountMessage(fmt.Sprintf("Entry %d (%s, %s)", entry.Index, entry.Domain, entry.Style)))
	fmt.Printf("  tagged:    %s\n", entry.ErrorSentence)
	if parseErr == nil {
		fmt.Printf("  clean:     %s\n", clean)
	}
	fmt.Printf("  corrected: %s\n", entry.CorrectSentence)
	if verbose {
		fmt.Printf("  syllables: %d, phrases: %d, errors: %d\n", entry.Syllables, entry.Phrases, entry.ErrorCount)
	}

	if parseErr != nil {
		return fmt.Errorf("entry %d: %w", entry.Index, parseErr)
	}

	if len(spans) > 0 {
		fmt.Print(spanTable(spans))
	}
	return nil
}
