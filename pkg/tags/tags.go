// Package tags parses the inline error annotations embedded in K-NCT error
// sentences. An annotation has the form <eN>...</eN> where N is one or more
// decimal digits; the opening and closing tag of a span carry the same N.
// Parsing strips the markup and reports each annotated run of text as a Span
// with rune offsets into the stripped (clean) sentence.
package tags

import (
	"fmt"
	"unicode/utf8"

	"github.com/knct-dev/knct/pkg/corpus"
)

// Span is one annotated error region of the clean sentence. Start and End
// are half-open rune offsets into the clean text, so clean[Start:End] (on a
// rune slice) equals Text. Type is the label the entry's error_type table
// maps the tag name to, or the tag name itself when the table has no entry
// for it.
type Span struct {
	Text  string `json:"text" yaml:"text"`
	Start int    `json:"start" yaml:"start"`
	End   int    `json:"end" yaml:"end"`
	Type  string `json:"type" yaml:"type"`
}

// MalformedTagError reports annotation markup the parser cannot accept: a
// closing tag whose identifier does not match the innermost open tag, a
// closing tag with no open tag, or an opening tag left unclosed at the end
// of the sentence. Offset is the byte offset of the offending tag in the
// tagged sentence (len(sentence) for unclosed tags).
type MalformedTagError struct {
	Offset  int
	Tag     string
	Message string
}

func (e *MalformedTagError) Error() string {
	return fmt.Sprintf("malformed error tag %q at offset %d: %s", e.Tag, e.Offset, e.Message)
}

// Parse strips the error annotations from entry's error sentence and returns
// the clean sentence plus the annotated spans in the order their opening
// tags appear. Span types are resolved through the entry's error_type table.
func Parse(entry corpus.Entry) (string, []Span, error) {
	return ParseSentence(entry.ErrorSentence, entry.ErrorTypes)
}

// ParseSentence is the underlying pure parser. types maps tag names ("e1")
// to error-type labels and may be nil, in which case every span carries its
// tag name as the type. A sentence without annotations is returned unchanged
// with no spans.
func ParseSentence(sentence string, types map[string]string) (string, []Span, error) {
	type pending struct {
		name string
		idx  int // index into spans
	}

	var (
		clean []rune    // clean text accumulated so far
		spans []Span    // in opening-tag order; Text and End filled in on close
		open  []pending // tags opened but not yet closed
	)

	s := []byte(sentence)
	for i := 0; i < len(s); {
		if s[i] != '<' {
			r, size := utf8.DecodeRune(s[i:])
			clean = append(clean, r)
			i += size
			continue
		}

		if name, width, ok := matchOpenTag(s[i:]); ok {
			open = append(open, pending{name: name, idx: len(spans)})
			spans = append(spans, Span{Start: len(clean), Type: resolveType(name, types)})
			i += width
			continue
		}

		if name, width, ok := matchCloseTag(s[i:]); ok {
			if len(open) == 0 {
				return "", nil, &MalformedTagError{
					Offset:  i,
					Tag:     "</" + name + ">",
					Message: "closing tag without a matching opening tag",
				}
			}
			top := open[len(open)-1]
			if top.name != name {
				return "", nil, &MalformedTagError{
					Offset:  i,
					Tag:     "</" + name + ">",
					Message: fmt.Sprintf("expected closing tag for <%s>", top.name),
				}
			}
			open = open[:len(open)-1]
			spans[top.idx].End = len(clean)
			spans[top.idx].Text = string(clean[spans[top.idx].Start:spans[top.idx].End])
			i += width
			continue
		}

		// a '<' that does not start a well-formed tag is literal text
		clean = append(clean, '<')
		i++
	}

	if len(open) > 0 {
		return "", nil, &MalformedTagError{
			Offset:  len(s),
			Tag:     "<" + open[len(open)-1].name + ">",
			Message: "opening tag is never closed",
		}
	}

	return string(clean), spans, nil
}

// matchOpenTag reports whether b starts with an opening tag <e[0-9]+> and
// returns the tag name ("e1") and the tag's byte width.
func matchOpenTag(b []byte) (string, int, bool) {
	if len(b) < 4 || b[0] != '<' || b[1] != 'e' {
		return "", 0, false
	}
	j := 2
	for j < len(b) && b[j] >= '0' && b[j] <= '9' {
		j++
	}
	if j == 2 || j >= len(b) || b[j] != '>' {
		return "", 0, false
	}
	return string(b[1:j]), j + 1, true
}

// matchCloseTag reports whether b starts with a closing tag </e[0-9]+> and
// returns the tag name and the tag's byte width.
func matchCloseTag(b []byte) (string, int, bool) {
	if len(b) < 5 || b[0] != '<' || b[1] != '/' || b[2] != 'e' {
		return "", 0, false
	}
	j := 3
	for j < len(b) && b[j] >= '0' && b[j] <= '9' {
		j++
	}
	if j == 3 || j >= len(b) || b[j] != '>' {
		return "", 0, false
	}
	return string(b[2:j]), j + 1, true
}

func resolveType(name string, types map[string]string) string {
	if label, ok := types[name]; ok {
		return label
	}
	return name
}
