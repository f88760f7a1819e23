package main

import (
	"github.com/spf13/cobra"

	"github.com/dusk-indust/assmerge/internal/config"
	"github.com/dusk-indust/assmerge/internal/orchestrator"
)

// cliFlags holds flags parsed from the command line.
type cliFlags struct {
	Output             string
	ConflictMarker     string
	ConflictMarkerSize int
	Diff3              bool
	ScriptInfo         string
	Verbose            bool
	Report             string
	ServeMCP           bool
	Version            bool
}

// applyProjectConfig fills every flag the user did not pass explicitly from
// assmerge.yml in dir, when present.
func (f *cliFlags) applyProjectConfig(cmd *cobra.Command, dir string) error {
	pc, err := config.Load(dir)
	if err != nil {
		return err
	}
	changed := cmd.Flags().Changed

	if pc.ConflictMarker != "" && !changed("conflict-marker") {
		f.ConflictMarker = pc.ConflictMarker
	}
	if pc.ConflictMarkerSize != 0 && !changed("conflict-marker-size") {
		f.ConflictMarkerSize = pc.ConflictMarkerSize
	}
	if pc.Diff3 && !changed("diff3") {
		f.Diff3 = true
	}
	if pc.ScriptInfo != "" && !changed("script-info") {
		f.ScriptInfo = pc.ScriptInfo
	}
	if pc.Verbose && !changed("verbose") {
		f.Verbose = true
	}
	return nil
}

func (f *cliFlags) options() orchestrator.Options {
	return orchestrator.Options{
		ConflictMarker:     f.ConflictMarker,
		ConflictMarkerSize: f.ConflictMarkerSize,
		Diff3:              f.Diff3,
		ScriptInfo:         f.ScriptInfo,
	}
}
