package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/samber/lo"

	"github.com/dusk-indust/assmerge/internal/orchestrator"
)

// MergeReport is the top-level JSON report of one merge run.
type MergeReport struct {
	RunID           string          `json:"runId"`
	GeneratedAt     string          `json:"generatedAt"`
	Files           Files           `json:"files"`
	Conflict        bool            `json:"conflict"`
	EventConflict   bool            `json:"eventConflict"`
	StyleConflict   bool            `json:"styleConflict"`
	PrunedExtradata int             `json:"prunedExtradata"`
	Sections        []SectionReport `json:"sections"`
	Warnings        []FileWarning   `json:"warnings,omitempty"`
}

// Files names the inputs and the output of a run. Output is empty when the
// merged script went to stdout.
type Files struct {
	Local    string `json:"local"`
	Ancestor string `json:"ancestor"`
	Remote   string `json:"remote"`
	Output   string `json:"output,omitempty"`
}

// SectionReport describes one merged section.
type SectionReport struct {
	Name     string `json:"name"`
	Records  int    `json:"records"`
	Conflict bool   `json:"conflict"`
}

// FileWarning is a line skipped while parsing one of the inputs.
type FileWarning struct {
	File    string `json:"file"`
	Message string `json:"message"`
}

// BuildReport assembles a MergeReport. warnings maps each input path to the
// error returned by its document's Warnings method; nil entries are ignored.
func BuildReport(runID string, files Files, res *orchestrator.Result, warnings map[string]error) *MergeReport {
	report := &MergeReport{
		RunID:           runID,
		GeneratedAt:     time.Now().UTC().Format(time.RFC3339),
		Files:           files,
		Conflict:        res.Conflict(),
		EventConflict:   res.EventConflict,
		StyleConflict:   res.StyleConflict,
		PrunedExtradata: res.PrunedExtradata,
		Sections: lo.Map(res.Sections, func(s orchestrator.SectionResult, _ int) SectionReport {
			return SectionReport{Name: s.Name, Records: s.Records, Conflict: s.Conflict}
		}),
	}

	for _, path := range lo.Uniq([]string{files.Local, files.Ancestor, files.Remote}) {
		for _, msg := range Flatten(warnings[path]) {
			report.Warnings = append(report.Warnings, FileWarning{File: path, Message: msg})
		}
	}
	return report
}

// Flatten splits an accumulated multierror into its messages.
func Flatten(err error) []string {
	if err == nil {
		return nil
	}
	var merr *multierror.Error
	if errors.As(err, &merr) {
		return lo.Map(merr.Errors, func(e error, _ int) string { return e.Error() })
	}
	return []string{err.Error()}
}

// WriteReport writes the report as indented JSON.
func WriteReport(path string, report *MergeReport) error {
	out, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal JSON: %w", err)
	}
	if err := os.WriteFile(path, append(out, '\n'), 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}
