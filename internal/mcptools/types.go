package mcptools

// --- MCP Tool Types for the server mode (--serve-mcp) ---
// These tools let an editor or agent run a merge with structured arguments
// instead of shelling out to the merge driver.

// MergeScriptsInput is the input for the merge_scripts MCP tool.
type MergeScriptsInput struct {
	Local              string `json:"local" jsonschema:"path to our version of the script"`
	Ancestor           string `json:"ancestor" jsonschema:"path to the common ancestor"`
	Remote             string `json:"remote" jsonschema:"path to their version of the script"`
	Output             string `json:"output" jsonschema:"path the merged script is written to"`
	ConflictMarker     string `json:"conflictMarker,omitempty" jsonschema:"conflict marker style: diff3 or description"`
	ConflictMarkerSize int    `json:"conflictMarkerSize,omitempty" jsonschema:"bar length of diff3-style markers"`
	Diff3              bool   `json:"diff3,omitempty" jsonschema:"include the ancestor's lines in conflict blocks"`
	ScriptInfo         string `json:"scriptInfo,omitempty" jsonschema:"side that wins Script Info collisions: ours or theirs"`
}

// MergeScriptsOutput is the result of the merge_scripts MCP tool.
type MergeScriptsOutput struct {
	Output          string   `json:"output"`
	Status          string   `json:"status"` // "clean", "conflict" or "failed"
	EventConflict   bool     `json:"eventConflict"`
	StyleConflict   bool     `json:"styleConflict"`
	PrunedExtradata int      `json:"prunedExtradata"`
	Warnings        []string `json:"warnings,omitempty"`
	Message         string   `json:"message,omitempty"`
}
