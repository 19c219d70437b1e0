package cli

import (
	"strings"
	"testing"

	"github.com/knct-dev/knct/pkg/corpus"
)

func TestCollectStats(t *testing.T) {
	entries := []corpus.Entry{
		{
			Index:         0,
			ErrorSentence: "<e1>테스트</e1> <e2>문장</e2>",
			Domain:        "daily",
			Style:         "spoken",
			ErrorTypes:    map[string]string{"e1": "spacing", "e2": "spelling"},
		},
		{
			Index:         1,
			ErrorSentence: "<e1>늦게</e1> 일어났다",
			Domain:        "daily",
			Style:         "written",
			ErrorTypes:    map[string]string{"e1": "spacing"},
		},
		{
			Index:         2,
			ErrorSentence: "오류 없는 문장",
			Domain:        "news",
			Style:         "written",
		},
		{
			Index:         3,
			ErrorSentence: "<e1>닫히지 않음",
			Domain:        "news",
			Style:         "written",
		},
	}

	stats := CollectStats(entries)

	if stats.Entries != 4 {
		t.Errorf("Entries = %d, want 4", stats.Entries)
	}
	if stats.Spans != 3 {
		t.Errorf("Spans = %d, want 3", stats.Spans)
	}
	if stats.ParseErrors != 1 {
		t.Errorf("ParseErrors = %d, want 1", stats.ParseErrors)
	}
	if stats.ByType["spacing"] != 2 || stats.ByType["spelling"] != 1 {
		t.Errorf("ByType = %v", stats.ByType)
	}
	if stats.ByDomain["daily"] != 2 || stats.ByDomain["news"] != 2 {
		t.Errorf("ByDomain = %v", stats.ByDomain)
	}
	if stats.ByStyle["written"] != 3 || stats.ByStyle["spoken"] != 1 {
		t.Errorf("ByStyle = %v", stats.ByStyle)
	}
}

func TestCollectStatsEmpty(t *testing.T) {
	stats := CollectStats(nil)
	if stats.Entries != 0 || stats.Spans != 0 || stats.ParseErrors != 0 {
		t.Errorf("stats = %+v, want all zero", stats)
	}
}

func TestCountTable(t *testing.T) {
	out := countTable("Error types", map[string]int{"spacing": 2, "spelling": 5, "josa": 2})
	if out == "" {
		t.Fatal("expected table output")
	}
	// Sorted by count descending, ties by name
	wantOrder := []string{"spelling", "josa", "spacing"}
	last := -1
	for _, name := range wantOrder {
		idx := strings.Index(out, name)
		if idx < 0 {
			t.Fatalf("table output missing %q:\n%s", name, out)
		}
		if idx < last {
			t.Errorf("%q appears before expected position:\n%s", name, out)
		}
		last = idx
	}
}
