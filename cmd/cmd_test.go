package cmd

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/aipalm/aipalm/internal/palm"
	"github.com/aipalm/aipalm/internal/store"
	"github.com/aipalm/aipalm/internal/wizard"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

// isolate points config, data and the LLM provider at test-local values.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	t.Setenv("AIPALM_DB", "")
	t.Setenv("AIPALM_LLM_PROVIDER", "mock")
	return dir
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() { rootCmd.SetArgs(nil) })
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func writeImage(t *testing.T, dir, name string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, pngHeader, 0o600))
	return p
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "aipalm "), out)
	assert.Contains(t, out, runtime.Version())
}

func TestScanSavesAndHistoryLists(t *testing.T) {
	dir := isolate(t)
	db := filepath.Join(dir, "cli.db")
	img := writeImage(t, dir, "palm.png")

	out, err := execute(t, "scan", "--db", db, "--hand", "left", "--lang", "es", img)
	require.NoError(t, err)
	assert.Contains(t, out, "Heart line:")

	out, err = execute(t, "history", "--db", db, "--full")
	require.NoError(t, err)
	assert.Contains(t, out, "left")
	assert.Contains(t, out, "es")
	assert.Contains(t, out, "heart:")

	out, err = execute(t, "reset", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "Removed 1 saved readings.")
}

func TestScanRejectsBadHand(t *testing.T) {
	isolate(t)
	_, err := execute(t, "scan", "--hand", "both", "x.png")
	assert.Error(t, err)
}

func TestChatOneShot(t *testing.T) {
	dir := isolate(t)
	out, err := execute(t, "chat", "--db", filepath.Join(dir, "chat.db"), "What", "now?")
	require.NoError(t, err)
	assert.NotEmpty(t, strings.TrimSpace(out))

	out, err = execute(t, "llm", "list", "--db", filepath.Join(dir, "chat.db"), "--purpose", "chat")
	require.NoError(t, err)
	assert.Contains(t, out, "No LLM events found.")
}

type countingAnalyzer struct {
	inFlight, peak atomic.Int32
	failOn         string
}

func (c *countingAnalyzer) Analyze(ctx context.Context, img palm.Image, lang string) (*palm.Reading, error) {
	n := c.inFlight.Add(1)
	defer c.inFlight.Add(-1)
	for {
		p := c.peak.Load()
		if n <= p || c.peak.CompareAndSwap(p, n) {
			break
		}
	}
	if lang == c.failOn {
		return nil, errors.New("gateway down")
	}
	return &palm.Reading{Summary: "ok " + lang}, nil
}

func TestBatchKeepsOrderAndLimit(t *testing.T) {
	dir := t.TempDir()
	paths := []string{
		writeImage(t, dir, "a.png"),
		filepath.Join(dir, "missing.png"),
		writeImage(t, dir, "c.png"),
		writeImage(t, dir, "d.png"),
	}
	st, err := store.Open(filepath.Join(dir, "batch.db"))
	require.NoError(t, err)
	defer st.Close()

	a := &countingAnalyzer{}
	b := batch{analyzer: a, readings: st.ReadingRepo(), logger: zap.NewNop(), hand: wizard.HandRight, lang: "en", limit: 2}
	results, err := b.run(context.Background(), paths)
	require.NoError(t, err)

	require.Len(t, results, 4)
	for i, p := range paths {
		assert.Equal(t, p, results[i].Path)
	}
	assert.Error(t, results[1].Err)
	assert.Equal(t, "ok en", results[3].Reading.Summary)
	assert.LessOrEqual(t, a.peak.Load(), int32(2))

	saved, err := st.ReadingRepo().List(context.Background(), store.QueryOpts{})
	require.NoError(t, err)
	assert.Len(t, saved, 3)

	var buf bytes.Buffer
	assert.Equal(t, 1, printResults(&buf, results))
}

func TestBatchAnalysisFailureDoesNotAbort(t *testing.T) {
	dir := t.TempDir()
	b := batch{analyzer: &countingAnalyzer{failOn: "fr"}, logger: zap.NewNop(), lang: "fr", limit: 1}
	results, err := b.run(context.Background(), []string{writeImage(t, dir, "a.png"), writeImage(t, dir, "b.png")})
	require.NoError(t, err)
	for _, r := range results {
		assert.EqualError(t, r.Err, "gateway down")
	}
}

func TestLLMInspection(t *testing.T) {
	dir := isolate(t)
	db := filepath.Join(dir, "llm.db")

	st, err := store.Open(db)
	require.NoError(t, err)
	ctx := context.Background()
	for _, ev := range []store.LLMRequestEventData{
		{Provider: "anthropic", Model: "claude-haiku-4-5", Purpose: "palm-analysis", InputTokens: 1200, OutputTokens: 300, LatencyMs: 900, Success: true, RequestBody: `{"images":1}`},
		{Provider: "openrouter", Model: "unknown/model", Purpose: "chat", InputTokens: 50, OutputTokens: 20, LatencyMs: 200, ErrorMessage: "rate limited"},
	} {
		require.NoError(t, st.EventRepo().AppendLLMRequest(ctx, ev))
	}
	require.NoError(t, st.Close())

	out, err := execute(t, "llm", "list", "--db", db, "--purpose", "palm-analysis")
	require.NoError(t, err)
	assert.Contains(t, out, "claude-haiku-4-5")
	assert.NotContains(t, out, "unknown/model")

	out, err = execute(t, "llm", "stats", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "palm-analysis")
	assert.Contains(t, out, "total (partial)")
	assert.Contains(t, out, "No pricing for: unknown/model")

	out, err = execute(t, "llm", "view", "--db", db, "1")
	require.NoError(t, err)
	assert.Contains(t, out, "anthropic")
	assert.Contains(t, out, "\"images\": 1")
	assert.Contains(t, out, "(not captured)")

	_, err = execute(t, "llm", "view", "--db", db, "99")
	assert.ErrorContains(t, err, "event 99 not found")
}
