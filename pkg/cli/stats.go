package cli

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/sourcegraph/conc/pool"

	"github.com/knct-dev/knct/pkg/console"
	"github.com/knct-dev/knct/pkg/constants"
	"github.com/knct-dev/knct/pkg/corpus"
	"github.com/knct-dev/knct/pkg/tags"
)

// DatasetStats aggregates parse results over a whole dataset.
type DatasetStats struct {
	Entries     int
	Spans       int
	ParseErrors int
	ByType      map[string]int
	ByDomain    map[string]int
	ByStyle     map[string]int
}

type entryStats struct {
	domain string
	style  string
	types  []string
	failed bool
}

// ShowStats parses every entry and prints aggregate counts by error type,
// domain and style.
func ShowStats(path string, verbose bool) error {
	entries, err := corpus.LoadDataset(path)
	if err != nil {
		return formatLoadFailure(err)
	}

	spinner := console.NewSpinner(fmt.Sprintf("Parsing %d entries...", len(entries)))
	spinner.Start()
	stats := CollectStats(entries)
	spinner.Stop()

	fmt.Println(console.FormatCountMessage(fmt.Sprintf("%d entries, %d annotated spans", stats.Entries, stats.Spans)))
	if stats.ParseErrors > 0 {
		fmt.Println(console.FormatWarningMessage(fmt.Sprintf("%d entries had malformed annotations", stats.ParseErrors)))
	}

	fmt.Print(countTable("Error types", stats.ByType))
	fmt.Print(countTable("Domains", stats.ByDomain))
	if verbose {
		fmt.Print(countTable("Styles", stats.ByStyle))
	}
	return nil
}

// CollectStats parses the entries on a bounded worker pool and aggregates
// the results. Entries are immutable, so the workers share nothing.
func CollectStats(entries []corpus.Entry) DatasetStats {
	p := pool.NewWithResults[entryStats]().WithMaxGoroutines(constants.MaxConcurrentParses)
	for _, entry := range entries {
		entry := entry
		p.Go(func() entryStats {
			st := entryStats{domain: entry.Domain, style: entry.Style}
			_, spans, err := tags.Parse(entry)
			if err != nil {
				st.failed = true
				return st
			}
			for _, span := range spans {
				st.types = append(st.types, span.Type)
			}
			return st
		})
	}

	stats := DatasetStats{
		Entries:  len(entries),
		ByType:   make(map[string]int),
		ByDomain: make(map[string]int),
		ByStyle:  make(map[string]int),
	}
	for _, st := range p.Wait() {
		stats.ByDomain[st.domain]++
		stats.ByStyle[st.style]++
		if st.failed {
			stats.ParseErrors++
			continue
		}
		stats.Spans += len(st.types)
		for _, label := range st.types {
			stats.ByType[label]++
		}
	}
	return stats
}

// countTable renders a count map as a table sorted by descending count,
// breaking ties by name.
func countTable(title string, counts map[string]int) string {
	if len(counts) == 0 {
		return ""
	}

	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if counts[names[i]] != counts[names[j]] {
			return counts[names[i]] > counts[names[j]]
		}
		return names[i] < names[j]
	})

	rows := make([][]string, 0, len(names))
	for _, name := range names {
		rows = append(rows, []string{name, strconv.Itoa(counts[name])})
	}
	return console.RenderTable(console.TableConfig{
		Title:   title,
		Headers: []string{"Name", "Count"},
		Rows:    rows,
	})
}
