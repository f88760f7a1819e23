package export

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dusk-indust/assmerge/internal/orchestrator"
)

func sampleResult() *orchestrator.Result {
	return &orchestrator.Result{
		EventConflict:   true,
		PrunedExtradata: 2,
		Sections: []orchestrator.SectionResult{
			{Name: "Script Info", Records: 4},
			{Name: "Events", Records: 10, Conflict: true},
		},
	}
}

func TestBuildReport(t *testing.T) {
	files := Files{Local: "a.ass", Ancestor: "o.ass", Remote: "b.ass", Output: "out.ass"}
	var skipped *multierror.Error
	skipped = multierror.Append(skipped, errors.New("line 3 [Events]: bad"), errors.New("line 9 [Events]: worse"))

	report := BuildReport("run-1", files, sampleResult(), map[string]error{
		"b.ass": skipped.ErrorOrNil(),
		"a.ass": nil,
	})

	assert.Equal(t, "run-1", report.RunID)
	assert.NotEmpty(t, report.GeneratedAt)
	assert.Equal(t, files, report.Files)
	assert.True(t, report.Conflict)
	assert.True(t, report.EventConflict)
	assert.False(t, report.StyleConflict)
	assert.Equal(t, 2, report.PrunedExtradata)
	assert.Equal(t, []SectionReport{
		{Name: "Script Info", Records: 4},
		{Name: "Events", Records: 10, Conflict: true},
	}, report.Sections)
	assert.Equal(t, []FileWarning{
		{File: "b.ass", Message: "line 3 [Events]: bad"},
		{File: "b.ass", Message: "line 9 [Events]: worse"},
	}, report.Warnings)
}

func TestBuildReport_SamePathListedOnce(t *testing.T) {
	files := Files{Local: "x.ass", Ancestor: "x.ass", Remote: "x.ass"}
	report := BuildReport("run", files, sampleResult(), map[string]error{"x.ass": errors.New("oops")})
	assert.Len(t, report.Warnings, 1)
}

func TestFlatten(t *testing.T) {
	assert.Nil(t, Flatten(nil))
	assert.Equal(t, []string{"plain"}, Flatten(errors.New("plain")))
}

func TestWriteReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.json")
	report := BuildReport("run-2", Files{Local: "a", Ancestor: "o", Remote: "b"}, sampleResult(), nil)

	require.NoError(t, WriteReport(path, report))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "run-2", decoded["runId"])
	assert.Equal(t, true, decoded["conflict"])
	assert.NotContains(t, decoded, "warnings")
	files := decoded["files"].(map[string]any)
	assert.NotContains(t, files, "output")
}
