// Package record models the typed lines of an ASS script: key/value entries,
// styles, events and extradata entries. Each kind has a fixed schema; a
// Record stores its values in schema order and exposes them by field name.
package record

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Provenance tags which script version a record came from. The values double
// as the owner prefixes used when disambiguating duplicate style names.
type Provenance string

const (
	Local    Provenance = "Own"
	Ancestor Provenance = "Parent"
	Remote   Provenance = "Other"
	Merged   Provenance = "?"
)

// Record is one typed line. Events additionally carry Extra, the extradata
// ids decoded from the "{=1=2}" prefix of their text.
type Record struct {
	Type   string
	Source Provenance
	Extra  []int

	schema *Schema
	values []string
}

// New builds a record of the given schema. values must hold one entry per
// schema field, in order.
func New(schema *Schema, typ string, values []string, src Provenance) (*Record, error) {
	if !schema.Accepts(typ) {
		return nil, fmt.Errorf("invalid %s line type %q", schema.Kind, typ)
	}
	if len(values) != len(schema.Fields) {
		return nil, fmt.Errorf("%s line has %d fields, want %d", schema.Kind, len(values), len(schema.Fields))
	}
	r := &Record{
		Type:   typ,
		Source: src,
		schema: schema,
		values: append([]string(nil), values...),
	}
	if schema.Kind == KindExtradata {
		id, err := strconv.Atoi(values[0])
		if err != nil {
			return nil, fmt.Errorf("extradata id %q: %w", values[0], err)
		}
		r.values[0] = strconv.Itoa(id)
	}
	if schema.Kind == KindEvent {
		r.setText(r.values[schema.index["Text"]])
	}
	return r, nil
}

// MustNew is New for statically known input; it panics on error.
func MustNew(schema *Schema, typ string, values []string, src Provenance) *Record {
	r, err := New(schema, typ, values, src)
	if err != nil {
		panic(err)
	}
	return r
}

// Schema returns the record's schema.
func (r *Record) Schema() *Schema { return r.schema }

// Kind returns the record's kind.
func (r *Record) Kind() Kind { return r.schema.Kind }

// Names returns TypeField followed by the schema fields.
func (r *Record) Names() []string {
	return append([]string{TypeField}, r.schema.Fields...)
}

// Get returns a field value by name. For events, "Text" includes the encoded
// extradata prefix, so comparisons see reference changes as text changes.
// Unknown names yield "".
func (r *Record) Get(name string) string {
	if name == TypeField {
		return r.Type
	}
	i, ok := r.schema.index[name]
	if !ok {
		return ""
	}
	if r.schema.Kind == KindEvent && name == "Text" {
		return encodeText(r.Extra, r.values[i])
	}
	return r.values[i]
}

// Set assigns a field value by name. Setting an event's "Text" decodes any
// extradata prefix into Extra. Unknown names are ignored.
func (r *Record) Set(name, value string) {
	if name == TypeField {
		r.Type = value
		return
	}
	i, ok := r.schema.index[name]
	if !ok {
		return
	}
	if r.schema.Kind == KindEvent && name == "Text" {
		r.setText(value)
		return
	}
	r.values[i] = value
}

// ID returns the numeric id of an extradata entry.
func (r *Record) ID() int {
	id, _ := strconv.Atoi(r.values[0])
	return id
}

// SetID rewrites the id of an extradata entry.
func (r *Record) SetID(id int) {
	r.values[0] = strconv.Itoa(id)
}

// Clone returns a deep copy.
func (r *Record) Clone() *Record {
	c := *r
	c.values = append([]string(nil), r.values...)
	if r.Extra != nil {
		c.Extra = append([]int(nil), r.Extra...)
	}
	return &c
}

// Equal reports whether both records share a kind and every field value,
// including the line type.
func (r *Record) Equal(o *Record) bool {
	if r == o {
		return true
	}
	if r == nil || o == nil || r.schema != o.schema {
		return false
	}
	for _, name := range r.Names() {
		if r.Get(name) != o.Get(name) {
			return false
		}
	}
	return true
}

// String formats the record as an ASS line.
func (r *Record) String() string {
	vals := make([]string, len(r.schema.Fields))
	for i, f := range r.schema.Fields {
		vals[i] = r.Get(f)
	}
	return r.Type + ": " + strings.Join(vals, ",")
}

var extraPrefix = regexp.MustCompile(`^\{((?:=\d+)+)\}(.*)$`)

func (r *Record) setText(text string) {
	i := r.schema.index["Text"]
	r.Extra = nil
	m := extraPrefix.FindStringSubmatch(text)
	if m == nil {
		r.values[i] = text
		return
	}
	for _, s := range strings.Split(m[1], "=")[1:] {
		n, err := strconv.Atoi(s)
		if err != nil {
			// Out of int range; keep the text verbatim.
			r.Extra = nil
			r.values[i] = text
			return
		}
		r.Extra = append(r.Extra, n)
	}
	r.values[i] = m[2]
}

func encodeText(extra []int, text string) string {
	if len(extra) == 0 {
		return text
	}
	var sb strings.Builder
	sb.WriteByte('{')
	for _, id := range extra {
		sb.WriteByte('=')
		sb.WriteString(strconv.Itoa(id))
	}
	sb.WriteByte('}')
	sb.WriteString(text)
	return sb.String()
}
