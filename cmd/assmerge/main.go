package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

// Exit statuses, matching what git expects from a merge driver.
const (
	exitClean    = 0
	exitConflict = 1
	exitError    = 2
)

// errConflict reports a merge that was written with conflicts.
var errConflict = errors.New("merge produced conflicts")

// version is set by goreleaser at build time.
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cmd := newRootCmd(stdout, stderr)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(ctx)
	switch {
	case err == nil:
		return exitClean
	case errors.Is(err, errConflict):
		return exitConflict
	default:
		fmt.Fprintf(stderr, "error: %v\n", err)
		return exitError
	}
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	var flags cliFlags

	cmd := &cobra.Command{
		Use:   "assmerge MYFILE OLDFILE YOURFILE",
		Short: "Three-way merge of Advanced SubStation Alpha subtitle scripts",
		Long: `assmerge merges two edited versions of an ASS subtitle script against their
common ancestor. It is meant to be used as a git merge driver:

  [merge "assmerge"]
      driver = assmerge %A %O %B -o %A

Exit status is 0 for a clean merge, 1 when the merged script contains
conflicts and 2 on errors.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args: func(cmd *cobra.Command, args []string) error {
			if flags.Version || flags.ServeMCP {
				return cobra.NoArgs(cmd, args)
			}
			return cobra.ExactArgs(3)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if flags.Version {
				fmt.Fprintln(stdout, version)
				return nil
			}
			if err := flags.applyProjectConfig(cmd, "."); err != nil {
				return err
			}
			if flags.ServeMCP {
				return serveMCP(cmd.Context(), flags, stderr)
			}
			return mergeFiles(cmd.Context(), flags, args, stdout, stderr)
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	f := cmd.Flags()
	f.StringVarP(&flags.Output, "output", "o", "", "write the merged script to this file instead of stdout")
	f.StringVar(&flags.ConflictMarker, "conflict-marker", "description", "type of conflict marker: diff3 or description")
	f.IntVar(&flags.ConflictMarkerSize, "conflict-marker-size", 7, "size of diff3-style conflict markers")
	f.BoolVar(&flags.Diff3, "diff3", false, "include the common ancestor's lines in conflict blocks")
	f.StringVar(&flags.ScriptInfo, "script-info", "ours", "side that wins Script Info collisions: ours or theirs")
	f.BoolVar(&flags.Verbose, "verbose", false, "enable verbose output")
	f.StringVar(&flags.Report, "report", "", "write a JSON merge report to this file")
	f.BoolVar(&flags.ServeMCP, "serve-mcp", false, "run as an MCP server on stdio")
	f.BoolVar(&flags.Version, "version", false, "print version and exit")

	return cmd
}
