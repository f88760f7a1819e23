package record

// Kind identifies which fixed schema a Record follows.
type Kind int

const (
	KindKeyValue Kind = iota
	KindStyle
	KindEvent
	KindExtradata
)

func (k Kind) String() string {
	switch k {
	case KindKeyValue:
		return "keyvalue"
	case KindStyle:
		return "style"
	case KindEvent:
		return "event"
	case KindExtradata:
		return "extradata"
	default:
		return "unknown"
	}
}

// TypeField is the pseudo-field holding the line type (the text before ": ").
// It is merged and compared like any other field.
const TypeField = "Type"

// Schema is the static field layout of one record kind.
type Schema struct {
	Kind Kind

	// Fields lists field names in serialization order.
	Fields []string

	// ValidTypes restricts the line type. Nil accepts any type, which is how
	// key/value sections use the type as their key.
	ValidTypes []string

	index map[string]int
}

func newSchema(kind Kind, fields []string, validTypes ...string) *Schema {
	s := &Schema{Kind: kind, Fields: fields, index: make(map[string]int, len(fields))}
	if len(validTypes) > 0 {
		s.ValidTypes = validTypes
	}
	for i, f := range fields {
		s.index[f] = i
	}
	return s
}

// Per-kind schemas, matching the Aegisub ASS layout.
var (
	KeyValueSchema = newSchema(KindKeyValue, []string{"Value"})

	StyleSchema = newSchema(KindStyle, []string{
		"Name", "Fontname", "Fontsize", "PrimaryColour", "SecondaryColour",
		"OutlineColour", "BackColour", "Bold", "Italic", "Underline",
		"StrikeOut", "ScaleX", "ScaleY", "Spacing", "Angle", "BorderStyle",
		"Outline", "Shadow", "Alignment", "MarginL", "MarginR", "MarginV", "Encoding",
	}, "Style")

	EventSchema = newSchema(KindEvent, []string{
		"Layer", "Start", "End", "Style", "Name", "MarginL",
		"MarginR", "MarginV", "Effect", "Text",
	}, "Dialogue", "Comment")

	ExtradataSchema = newSchema(KindExtradata, []string{"Id", "Key", "Value"}, "Data")
)

// Has reports whether name is a schema field.
func (s *Schema) Has(name string) bool {
	_, ok := s.index[name]
	return ok
}

// Accepts reports whether typ is a valid line type for the schema.
func (s *Schema) Accepts(typ string) bool {
	if s.ValidTypes == nil {
		return true
	}
	for _, v := range s.ValidTypes {
		if v == typ {
			return true
		}
	}
	return false
}
