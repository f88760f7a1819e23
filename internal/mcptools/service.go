package mcptools

import (
	"context"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/dusk-indust/assmerge/internal/ass"
	"github.com/dusk-indust/assmerge/internal/export"
	"github.com/dusk-indust/assmerge/internal/orchestrator"
)

// MergeService handles MCP tool calls for the server mode. Each call runs its
// own pipeline, so calls with different options do not interfere.
type MergeService struct {
	defaults orchestrator.Options
	log      *zap.Logger
}

// NewMergeService creates a MergeService. defaults fill in options a call
// leaves unset. A nil logger disables logging.
func NewMergeService(defaults orchestrator.Options, log *zap.Logger) *MergeService {
	if log == nil {
		log = zap.NewNop()
	}
	return &MergeService{defaults: defaults, log: log}
}

// MergeScripts merges three scripts from disk and writes the result.
// Conflicts are not errors: the merged script is written either way and the
// status says whether it needs attention.
func (s *MergeService) MergeScripts(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input MergeScriptsInput,
) (*mcp.CallToolResult, MergeScriptsOutput, error) {
	out := MergeScriptsOutput{Output: input.Output}
	if input.Local == "" || input.Ancestor == "" || input.Remote == "" || input.Output == "" {
		return nil, out, errors.New("local, ancestor, remote and output are required")
	}

	cfg, err := s.options(input).Config()
	if err != nil {
		return nil, out, fmt.Errorf("invalid options: %w", err)
	}

	failed := func(err error) (*mcp.CallToolResult, MergeScriptsOutput, error) {
		s.log.Warn("merge_scripts failed", zap.Error(err))
		out.Status = "failed"
		out.Message = err.Error()
		return nil, out, nil
	}

	scripts, err := orchestrator.LoadScripts(input.Local, input.Ancestor, input.Remote)
	if err != nil {
		return failed(err)
	}

	pipeline := orchestrator.NewPipeline(cfg, s.log)
	defer pipeline.Close()

	res, err := pipeline.Merge(ctx, scripts.Local, scripts.Ancestor, scripts.Remote)
	if err != nil {
		return failed(err)
	}
	if err := ass.WriteFile(input.Output, res.Document); err != nil {
		return failed(err)
	}

	out.Status = "clean"
	if res.Conflict() {
		out.Status = "conflict"
	}
	out.EventConflict = res.EventConflict
	out.StyleConflict = res.StyleConflict
	out.PrunedExtradata = res.PrunedExtradata

	warnings := scripts.Warnings()
	for _, path := range scripts.Paths() {
		for _, msg := range export.Flatten(warnings[path]) {
			out.Warnings = append(out.Warnings, path+": "+msg)
		}
	}
	return nil, out, nil
}

func (s *MergeService) options(input MergeScriptsInput) orchestrator.Options {
	opts := s.defaults
	if input.ConflictMarker != "" {
		opts.ConflictMarker = input.ConflictMarker
	}
	if input.ConflictMarkerSize != 0 {
		opts.ConflictMarkerSize = input.ConflictMarkerSize
	}
	if input.Diff3 {
		opts.Diff3 = true
	}
	if input.ScriptInfo != "" {
		opts.ScriptInfo = input.ScriptInfo
	}
	return opts
}
