package conflict

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dusk-indust/assmerge/internal/diff3"
	"github.com/dusk-indust/assmerge/internal/record"
)

func ev(start, end, text string) *record.Record {
	return record.MustNew(record.EventSchema, "Dialogue",
		[]string{"0", start, end, "Default", "", "0", "0", "0", "", text}, record.Ancestor)
}

func style(name, colour string, src record.Provenance) *record.Record {
	values := []string{
		name, "Arial", "48", colour, "&H000000FF", "&H00000000", "&H00000000",
		"0", "0", "0", "0", "100", "100", "0", "0", "1", "2", "2", "2", "10", "10", "10", "1",
	}
	return record.MustNew(record.StyleSchema, "Style", values, src)
}

func texts(rs []*record.Record) []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = r.Get("Text")
	}
	return out
}

func TestNewMarkers(t *testing.T) {
	tests := []struct {
		name         string
		style        MarkerStyle
		width        int
		withAncestor bool
		want         Markers
	}{
		{
			name: "bars", style: StyleBar, width: 3,
			want: Markers{Ours: "<<<", Ancestor: "|||", Theirs: "===", End: ">>>"},
		},
		{
			name: "bars default width", style: StyleBar, width: 0,
			want: Markers{Ours: "<<<<<<<", Ancestor: "|||||||", Theirs: "=======", End: ">>>>>>>"},
		},
		{
			name: "descriptive", style: StyleDescriptive,
			want: Markers{
				Ours:     "Start of own hunk",
				Ancestor: "End of own hunk; Start of common ancestor's hunk",
				Theirs:   "End of own hunk; Start of other hunk",
				End:      "End of other hunk",
			},
		},
		{
			name: "descriptive with ancestor", style: StyleDescriptive, withAncestor: true,
			want: Markers{
				Ours:     "Start of own hunk",
				Ancestor: "End of own hunk; Start of common ancestor's hunk",
				Theirs:   "End of common ancestor's hunk; Start of other hunk",
				End:      "End of other hunk",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewMarkers(tt.style, tt.width, tt.withAncestor))
		})
	}
}

func TestParseMarkerStyle(t *testing.T) {
	s, err := ParseMarkerStyle("diff3")
	require.NoError(t, err)
	assert.Equal(t, StyleBar, s)

	_, err = ParseMarkerStyle("fancy")
	require.Error(t, err)
}

func TestMarkerEvent(t *testing.T) {
	r := MarkerEvent("<<<<<<<")
	assert.Equal(t, "Comment: 0,0:00:00.00,0:00:00.00,Default,,0,0,0,CONFLICT,<<<<<<<", r.String())
}

func TestSequential_ConflictBlock(t *testing.T) {
	e := ev("0:00:01.00", "0:00:02.00", "E")
	l := ev("0:00:03.00", "0:00:04.00", "L")
	r := ev("0:00:05.00", "0:00:06.00", "R")

	t.Run("two way", func(t *testing.T) {
		res := diff3.Merge([]*record.Record{l}, []*record.Record{e}, []*record.Record{r},
			Sequential(NewMarkers(StyleBar, 7, false), false))
		assert.True(t, res.Conflict)
		assert.Equal(t, []string{"<<<<<<<", "L", "=======", "R", ">>>>>>>"}, texts(res.Records))
	})

	t.Run("with ancestor", func(t *testing.T) {
		res := diff3.Merge([]*record.Record{l}, []*record.Record{e}, []*record.Record{r},
			Sequential(NewMarkers(StyleDescriptive, 0, true), true))
		assert.True(t, res.Conflict)
		assert.Equal(t, []string{
			"Start of own hunk", "L",
			"End of own hunk; Start of common ancestor's hunk", "E",
			"End of common ancestor's hunk; Start of other hunk", "R",
			"End of other hunk",
		}, texts(res.Records))
	})
}

func TestKeyedDuplicate_RenamesBothSides(t *testing.T) {
	name := func(r *record.Record) string { return r.Get("Name") }
	base := style("Default", "&H00FFFFFF", record.Ancestor)

	local := []*record.Record{base, style("Foo", "&H000000FF", record.Local)}
	remote := []*record.Record{base, style("Foo", "&H00FF0000", record.Remote)}
	ancestor := []*record.Record{base}

	res := diff3.Merge(local, ancestor, remote, KeyedDuplicate("Name"), name)
	assert.True(t, res.Conflict)
	require.Len(t, res.Records, 3)
	assert.Equal(t, "Default", res.Records[0].Get("Name"))
	assert.Equal(t, "Own$Foo", res.Records[1].Get("Name"))
	assert.Equal(t, "&H000000FF", res.Records[1].Get("PrimaryColour"))
	assert.Equal(t, "Other$Foo", res.Records[2].Get("Name"))
	assert.Equal(t, "&H00FF0000", res.Records[2].Get("PrimaryColour"))

	assert.Equal(t, "Foo", local[1].Get("Name"), "inputs are left untouched")
}

func TestKeyedDuplicate_SameStyleAddedTwiceIsClean(t *testing.T) {
	name := func(r *record.Record) string { return r.Get("Name") }
	foo := style("Foo", "&H000000FF", record.Local)

	res := diff3.Merge([]*record.Record{foo}, nil, []*record.Record{foo.Clone()}, KeyedDuplicate("Name"), name)
	assert.False(t, res.Conflict)
	require.Len(t, res.Records, 1)
	assert.Equal(t, "Foo", res.Records[0].Get("Name"))
}
