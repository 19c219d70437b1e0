package cli

import (
	"strings"
	"testing"

	"github.com/knct-dev/knct/pkg/corpus"
)

func TestFindEntry(t *testing.T) {
	entries := []corpus.Entry{
		{Index: 10},
		{Index: 25},
	}

	entry, err := findEntry(entries, 25)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if entry.Index != 25 {
		t.Errorf("Index = %d, want 25", entry.Index)
	}

	// Lookup is by the entry's index field, not array position
	if _, err := findEntry(entries, 1); err == nil {
		t.Error("expected error for index that is not in the dataset")
	}
}

func TestParseEntries(t *testing.T) {
	tests := []struct {
		name        string
		content     string
		index       int
		format      string
		wantErr     bool
		errContains string
	}{
		{
			name:    "single entry text output",
			content: validDatasetJSON,
			index:   0,
			format:  "text",
		},
		{
			name:    "all entries json output",
			content: validDatasetJSON,
			index:   -1,
			format:  "json",
		},
		{
			name:    "all entries yaml output",
			content: validDatasetJSON,
			index:   -1,
			format:  "yaml",
		},
		{
			name:        "unknown format",
			content:     validDatasetJSON,
			index:       -1,
			format:      "xml",
			wantErr:     true,
			errContains: "unknown format",
		},
		{
			name:        "index not in dataset",
			content:     validDatasetJSON,
			index:       99,
			format:      "text",
			wantErr:     true,
			errContains: "no entry with index 99",
		},
		{
			name: "single entry with malformed annotation fails",
			content: `[{
				"index": 0,
				"error_sentence": "<e1>닫히지 않음",
				"correct_sentence": "닫힘",
				"domain": "daily",
				"style": "spoken",
				"syllable": 6,
				"phrase": 2,
				"number of error": 1,
				"error_type": {"e1": "spelling"}
			}]`,
			index:       0,
			format:      "text",
			wantErr:     true,
			errContains: "never closed",
		},
		{
			name: "all entries mode skips malformed annotations",
			content: `[{
				"index": 0,
				"error_sentence": "<e1>닫히지 않음",
				"correct_sentence": "닫힘",
				"domain": "daily",
				"style": "spoken",
				"syllable": 6,
				"phrase": 2,
				"number of error": 1,
				"error_type": {"e1": "spelling"}
			}]`,
			index:       -1,
			format:      "text",
			wantErr:     true,
			errContains: "1 of 1 entries had malformed annotations",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeDataset(t, tt.content)
			err := ParseEntries(path, tt.index, tt.format, false)

			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				if tt.errContains != "" && !strings.Contains(err.Error(), tt.errContains) {
					t.Errorf("error %q does not contain %q", err.Error(), tt.errContains)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestShowEntry(t *testing.T) {
	path := writeDataset(t, validDatasetJSON)

	if err := ShowEntry(path, 0, true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := ShowEntry(path, 5, false); err == nil {
		t.Error("expected error for unknown index")
	}
}
