// Package ass reads and writes Advanced SubStation Alpha scripts as typed
// record sections.
package ass

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/hashicorp/go-multierror"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/dusk-indust/assmerge/internal/record"
)

// Section names handled by the merge.
const (
	ScriptInfo     = "Script Info"
	ProjectGarbage = "Aegisub Project Garbage"
	Styles         = "V4+ Styles"
	Events         = "Events"
	Extradata      = "Aegisub Extradata"
)

// Schemas maps each merged section to the schema of its lines.
var Schemas = map[string]*record.Schema{
	ScriptInfo:     record.KeyValueSchema,
	ProjectGarbage: record.KeyValueSchema,
	Styles:         record.StyleSchema,
	Events:         record.EventSchema,
	Extradata:      record.ExtradataSchema,
}

const maxLineSize = 16 << 20

var sectionHeader = regexp.MustCompile(`^\[(.*)\]$`)

// Document is a parsed script. Sections holds the records of every known
// section; other sections are only listed by name in Unknown.
type Document struct {
	Sections map[string][]*record.Record
	Unknown  []string

	skipped *multierror.Error
}

// NewDocument returns an empty document.
func NewDocument() *Document {
	return &Document{Sections: make(map[string][]*record.Record)}
}

// Section returns the records of a section, or nil.
func (d *Document) Section(name string) []*record.Record {
	return d.Sections[name]
}

// Warnings returns the lines skipped while parsing, or nil.
func (d *Document) Warnings() error {
	return d.skipped.ErrorOrNil()
}

// ParseFile parses the script at path.
func ParseFile(path string, src record.Provenance) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	doc, err := Parse(f, src)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return doc, nil
}

// Parse reads a script, tagging every record with src. A leading byte order
// mark is honoured and stripped. Input without a UTF-16 mark must be valid
// UTF-8. Lines that do not fit their section's schema are skipped and reported
// through Warnings; lines outside any section are ignored.
func Parse(r io.Reader, src record.Provenance) (*Document, error) {
	doc := NewDocument()

	sc := bufio.NewScanner(decode(r))
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	current := ""
	lineNo := 0
	for sc.Scan() {
		lineNo++
		raw := sc.Text()
		if lineNo == 1 {
			raw = strings.TrimPrefix(raw, utf8BOM)
		}
		if !utf8.ValidString(raw) {
			return nil, fmt.Errorf("line %d: invalid UTF-8", lineNo)
		}
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		if m := sectionHeader.FindStringSubmatch(line); m != nil {
			current = m[1]
			if _, known := Schemas[current]; !known && !slices.Contains(doc.Unknown, current) {
				doc.Unknown = append(doc.Unknown, current)
			}
			continue
		}

		schema, ok := Schemas[current]
		if !ok {
			continue
		}
		rec, err := ParseLine(schema, line, src)
		if err != nil {
			if !expectedSkip(line) {
				doc.skipped = multierror.Append(doc.skipped, fmt.Errorf("line %d [%s]: %w", lineNo, current, err))
			}
			continue
		}
		doc.Sections[current] = append(doc.Sections[current], rec)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return doc, nil
}

const utf8BOM = "\uFEFF"

// decode transcodes UTF-16 input, marked by its byte order mark, to UTF-8.
// Anything else is passed through untouched so invalid bytes reach the line
// check instead of being replaced.
func decode(r io.Reader) io.Reader {
	br := bufio.NewReader(r)
	mark, _ := br.Peek(2)
	if len(mark) == 2 && (mark[0] == 0xFF && mark[1] == 0xFE || mark[0] == 0xFE && mark[1] == 0xFF) {
		return transform.NewReader(br, unicode.BOMOverride(unicode.UTF8.NewDecoder()))
	}
	return br
}

// ParseLine splits "Type: v1,v2,..." into a record of the given schema. The
// last field absorbs any remaining commas.
func ParseLine(schema *record.Schema, line string, src record.Provenance) (*record.Record, error) {
	typ, rest, ok := strings.Cut(line, ": ")
	if !ok {
		return nil, fmt.Errorf("malformed line %q", line)
	}
	values := strings.SplitN(rest, ",", len(schema.Fields))
	return record.New(schema, typ, values, src)
}

// expectedSkip reports lines that are never merged and not worth a warning:
// the Format header of style and event sections, and ";" comments.
func expectedSkip(line string) bool {
	return strings.HasPrefix(line, "Format: ") || strings.HasPrefix(line, ";")
}
