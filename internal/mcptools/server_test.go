package mcptools

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dusk-indust/assmerge/internal/ass"
	"github.com/dusk-indust/assmerge/internal/orchestrator"
	"github.com/dusk-indust/assmerge/internal/record"
)

func event(start, end, text string) string {
	return "Dialogue: 0," + start + "," + end + ",Default,,0,0,0,," + text + "\n"
}

// writeInputs writes ancestor, local and remote scripts where local and
// remote replace the same event differently when conflicting is set.
func writeInputs(t *testing.T, conflicting bool) (local, ancestor, remote string) {
	t.Helper()
	dir := t.TempDir()
	write := func(name, body string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte("[Script Info]\nTitle: T\n\n[Events]\n"+body), 0o644))
		return path
	}

	base := event("0:00:01.00", "0:00:02.00", "Hello")
	ancestor = write("o.ass", base)
	if conflicting {
		local = write("a.ass", event("0:00:05.00", "0:00:06.00", "Mine"))
		remote = write("b.ass", event("0:00:07.00", "0:00:08.00", "Theirs"))
		return local, ancestor, remote
	}
	local = write("a.ass", event("0:00:01.00", "0:00:02.00", "Hello there"))
	remote = write("b.ass", base+"Dialogue: broken\n")
	return local, ancestor, remote
}

// setupServerClient wires an MCP server and client together using in-memory
// transports.
func setupServerClient(t *testing.T, defaults orchestrator.Options) *mcp.ClientSession {
	t.Helper()

	server := NewMergeMCPServer(NewMergeService(defaults, nil))
	st, ct := mcp.NewInMemoryTransports()

	ctx := context.Background()
	_, err := server.Connect(ctx, st, nil)
	require.NoError(t, err)

	client := mcp.NewClient(&mcp.Implementation{
		Name:    "test-client",
		Version: "1.0.0",
	}, nil)

	session, err := client.Connect(ctx, ct, nil)
	require.NoError(t, err)
	t.Cleanup(func() {
		session.Close()
	})
	return session
}

func TestMCPListTools(t *testing.T) {
	session := setupServerClient(t, orchestrator.Options{})

	result, err := session.ListTools(context.Background(), &mcp.ListToolsParams{})
	require.NoError(t, err)
	require.Len(t, result.Tools, 1)
	assert.Equal(t, "merge_scripts", result.Tools[0].Name)
}

func TestMCPMergeScripts_Clean(t *testing.T) {
	session := setupServerClient(t, orchestrator.Options{})
	local, ancestor, remote := writeInputs(t, false)
	output := filepath.Join(t.TempDir(), "merged.ass")

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name: "merge_scripts",
		Arguments: MergeScriptsInput{
			Local: local, Ancestor: ancestor, Remote: remote, Output: output,
		},
	})
	require.NoError(t, err)
	require.False(t, result.IsError)
	require.NotNil(t, result.StructuredContent)

	raw, err := json.Marshal(result.StructuredContent)
	require.NoError(t, err)
	var out MergeScriptsOutput
	require.NoError(t, json.Unmarshal(raw, &out))

	assert.Equal(t, "clean", out.Status)
	assert.Equal(t, output, out.Output)
	require.Len(t, out.Warnings, 1)
	assert.Contains(t, out.Warnings[0], remote)

	doc, err := ass.ParseFile(output, record.Merged)
	require.NoError(t, err)
	events := doc.Section(ass.Events)
	require.Len(t, events, 1)
	assert.Equal(t, "Hello there", events[0].Get("Text"))
}

func TestMergeService_ConflictUsesCallOptions(t *testing.T) {
	svc := NewMergeService(orchestrator.Options{ConflictMarker: "diff3"}, nil)
	local, ancestor, remote := writeInputs(t, true)
	output := filepath.Join(t.TempDir(), "merged.ass")

	_, out, err := svc.MergeScripts(context.Background(), nil, MergeScriptsInput{
		Local: local, Ancestor: ancestor, Remote: remote, Output: output,
		ConflictMarkerSize: 3, Diff3: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "conflict", out.Status)
	assert.True(t, out.EventConflict)
	assert.False(t, out.StyleConflict)

	doc, err := ass.ParseFile(output, record.Merged)
	require.NoError(t, err)
	var texts []string
	for _, ev := range doc.Section(ass.Events) {
		texts = append(texts, ev.Get("Text"))
	}
	assert.Equal(t, []string{"<<<", "Mine", "|||", "Hello", "===", "Theirs", ">>>"}, texts)
}

func TestMergeService_MissingArguments(t *testing.T) {
	svc := NewMergeService(orchestrator.Options{}, nil)

	_, _, err := svc.MergeScripts(context.Background(), nil, MergeScriptsInput{Local: "a.ass"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required")
}

func TestMergeService_InvalidOptions(t *testing.T) {
	svc := NewMergeService(orchestrator.Options{}, nil)

	_, _, err := svc.MergeScripts(context.Background(), nil, MergeScriptsInput{
		Local: "a", Ancestor: "o", Remote: "b", Output: "out", ScriptInfo: "mine",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid options")
}

func TestMergeService_MissingFileReportsFailure(t *testing.T) {
	svc := NewMergeService(orchestrator.Options{}, nil)
	dir := t.TempDir()

	_, out, err := svc.MergeScripts(context.Background(), nil, MergeScriptsInput{
		Local:    filepath.Join(dir, "a.ass"),
		Ancestor: filepath.Join(dir, "o.ass"),
		Remote:   filepath.Join(dir, "b.ass"),
		Output:   filepath.Join(dir, "out.ass"),
	})
	require.NoError(t, err)
	assert.Equal(t, "failed", out.Status)
	assert.NotEmpty(t, out.Message)
}
