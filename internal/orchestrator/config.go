package orchestrator

import (
	"fmt"

	"github.com/dusk-indust/assmerge/internal/conflict"
	"github.com/dusk-indust/assmerge/internal/keyval"
)

// Config holds the options of one merge run.
type Config struct {
	// MarkerStyle selects bar or descriptive conflict markers for events.
	MarkerStyle conflict.MarkerStyle

	// MarkerWidth is the bar length; only used with conflict.StyleBar.
	MarkerWidth int

	// IncludeAncestor adds the common ancestor's lines to event conflict
	// blocks, like diff3 does.
	IncludeAncestor bool

	// MetadataPrecedence decides which side wins keys both sides changed in
	// [Script Info] and [Aegisub Project Garbage].
	MetadataPrecedence keyval.Precedence
}

// DefaultConfig returns the defaults used by the command line.
func DefaultConfig() Config {
	return Config{
		MarkerStyle:        conflict.StyleDescriptive,
		MarkerWidth:        conflict.DefaultMarkerWidth,
		MetadataPrecedence: keyval.Ours,
	}
}

// Validate checks that every option holds a known value.
func (c Config) Validate() error {
	if _, err := conflict.ParseMarkerStyle(string(c.MarkerStyle)); err != nil {
		return err
	}
	if c.MarkerWidth < 1 {
		return fmt.Errorf("conflict marker size must be positive, got %d", c.MarkerWidth)
	}
	if _, err := keyval.ParsePrecedence(string(c.MetadataPrecedence)); err != nil {
		return err
	}
	return nil
}

// Options are merge settings as supplied by users: flags, the project config
// file or an MCP call. Zero values select the defaults.
type Options struct {
	ConflictMarker     string
	ConflictMarkerSize int
	Diff3              bool
	ScriptInfo         string
}

// Config resolves the options against DefaultConfig and validates them.
func (o Options) Config() (Config, error) {
	cfg := DefaultConfig()
	if o.ConflictMarker != "" {
		style, err := conflict.ParseMarkerStyle(o.ConflictMarker)
		if err != nil {
			return Config{}, err
		}
		cfg.MarkerStyle = style
	}
	if o.ConflictMarkerSize != 0 {
		cfg.MarkerWidth = o.ConflictMarkerSize
	}
	cfg.IncludeAncestor = o.Diff3
	if o.ScriptInfo != "" {
		prefer, err := keyval.ParsePrecedence(o.ScriptInfo)
		if err != nil {
			return Config{}, err
		}
		cfg.MetadataPrecedence = prefer
	}
	return cfg, cfg.Validate()
}
