package main

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/dusk-indust/assmerge/internal/ass"
	"github.com/dusk-indust/assmerge/internal/export"
	"github.com/dusk-indust/assmerge/internal/mcptools"
	"github.com/dusk-indust/assmerge/internal/orchestrator"
)

func mergeFiles(ctx context.Context, flags cliFlags, args []string, stdout, stderr io.Writer) error {
	runID := uuid.NewString()
	log := newLogger(stderr, flags.Verbose).With(zap.String("run_id", runID))
	defer log.Sync() //nolint:errcheck

	cfg, err := flags.options().Config()
	if err != nil {
		return err
	}

	scripts, err := orchestrator.LoadScripts(args[0], args[1], args[2])
	if err != nil {
		return err
	}
	warnings := scripts.Warnings()
	for _, path := range scripts.Paths() {
		if err := warnings[path]; err != nil {
			log.Warn("skipped malformed lines",
				zap.String("file", path),
				zap.Strings("lines", export.Flatten(err)))
		}
	}

	pipeline := orchestrator.NewPipeline(cfg, log)
	var printing sync.WaitGroup
	if flags.Verbose {
		events := pipeline.Progress()
		printing.Add(1)
		go func() {
			defer printing.Done()
			for ev := range events {
				fmt.Fprintln(stderr, orchestrator.FormatProgress(ev))
			}
		}()
	}

	res, err := pipeline.Merge(ctx, scripts.Local, scripts.Ancestor, scripts.Remote)
	pipeline.Close()
	printing.Wait()
	if err != nil {
		return fmt.Errorf("merge failed: %w", err)
	}

	if flags.Output != "" {
		err = ass.WriteFile(flags.Output, res.Document)
	} else {
		err = ass.Write(stdout, res.Document)
	}
	if err != nil {
		return fmt.Errorf("write merged script: %w", err)
	}

	if flags.Report != "" {
		files := export.Files{
			Local:    scripts.LocalPath,
			Ancestor: scripts.AncestorPath,
			Remote:   scripts.RemotePath,
			Output:   flags.Output,
		}
		report := export.BuildReport(runID, files, res, warnings)
		if err := export.WriteReport(flags.Report, report); err != nil {
			return err
		}
	}

	if res.Conflict() {
		log.Info("merged with conflicts",
			zap.Bool("events", res.EventConflict),
			zap.Bool("styles", res.StyleConflict))
		return errConflict
	}
	return nil
}

func serveMCP(ctx context.Context, flags cliFlags, stderr io.Writer) error {
	if _, err := flags.options().Config(); err != nil {
		return err
	}
	log := newLogger(stderr, flags.Verbose).With(zap.String("run_id", uuid.NewString()))
	defer log.Sync() //nolint:errcheck

	server := mcptools.NewMergeMCPServer(mcptools.NewMergeService(flags.options(), log))
	return mcptools.RunMCPServerStdio(ctx, server)
}

// newLogger builds a console logger on w. Only warnings and errors are shown
// unless verbose is set.
func newLogger(w io.Writer, verbose bool) *zap.Logger {
	level := zapcore.WarnLevel
	if verbose {
		level = zapcore.DebugLevel
	}
	enc := zap.NewDevelopmentEncoderConfig()
	enc.TimeKey = ""
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(enc), zapcore.AddSync(w), level)
	return zap.New(core)
}
