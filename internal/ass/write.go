package ass

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/dusk-indust/assmerge/internal/record"
)

// SectionLayout describes how one section is written.
type SectionLayout struct {
	Name string
	// Format writes a "Format:" header listing the schema fields.
	Format bool
	// OmitEmpty skips the section entirely when it has no records.
	OmitEmpty bool
}

// Layout is the section order of a written script. Sections not listed are
// not written.
var Layout = []SectionLayout{
	{Name: ScriptInfo},
	{Name: ProjectGarbage, OmitEmpty: true},
	{Name: Styles, Format: true},
	{Name: Events, Format: true},
	{Name: Extradata, OmitEmpty: true},
}

// Write serializes doc as UTF-8 with a byte order mark, which is what Aegisub
// writes.
func Write(w io.Writer, doc *Document) error {
	tw := transform.NewWriter(w, unicode.UTF8BOM.NewEncoder())
	bw := bufio.NewWriter(tw)

	first := true
	for _, sec := range Layout {
		records := doc.Section(sec.Name)
		if sec.OmitEmpty && len(records) == 0 {
			continue
		}
		if !first {
			bw.WriteString("\n")
		}
		first = false

		fmt.Fprintf(bw, "[%s]\n", sec.Name)
		if sec.Format {
			fmt.Fprintf(bw, "Format: %s\n", strings.Join(Schemas[sec.Name].Fields, ", "))
		}
		for _, r := range records {
			bw.WriteString(r.String())
			bw.WriteString("\n")
		}
	}

	if err := bw.Flush(); err != nil {
		return err
	}
	return tw.Close()
}

// WriteFile writes doc to path, replacing any existing file.
func WriteFile(path string, doc *Document) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Write(f, doc); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

// Lines renders records as ASS lines.
func Lines(records []*record.Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.String()
	}
	return out
}
