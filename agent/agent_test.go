package agent

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/poiesic/sparta"
	"github.com/poiesic/sparta/dataset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAgent(t *testing.T, opts ...sparta.Option) *Agent {
	t.Helper()

	store, err := dataset.NewTestStore()
	require.NoError(t, err)
	data, err := json.Marshal(store.Records())
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "techniques.json")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	engine, err := sparta.New(context.Background(), path, opts...)
	require.NoError(t, err)
	t.Cleanup(func() { engine.Close() })

	agent, err := New(engine)
	require.NoError(t, err)
	return agent
}

func TestNew(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		agent := newTestAgent(t)
		assert.NotNil(t, agent)
	})

	t.Run("nil engine", func(t *testing.T) {
		_, err := New(nil)
		assert.Equal(t, ErrEngineRequired, err)
	})
}

func TestAnswerQuery(t *testing.T) {
	ctx := context.Background()
	agent := newTestAgent(t)

	t.Run("tactic query lists the tactic", func(t *testing.T) {
		answer, err := agent.AnswerQuery(ctx, "What are the reconnaissance techniques?")
		require.NoError(t, err)
		assert.Contains(t, answer, "### Reconnaissance Tactic")
		assert.Contains(t, answer, "REC-0005: Eavesdropping")
		assert.Contains(t, answer, "- REC-0005.02: Downlink Intercept")
		assert.NotContains(t, answer, "EX-0016")
	})

	t.Run("tactic routing is case-insensitive", func(t *testing.T) {
		answer, err := agent.AnswerQuery(ctx, "Tell me about INITIAL ACCESS")
		require.NoError(t, err)
		assert.Contains(t, answer, "### Initial Access Tactic")
		assert.Contains(t, answer, "IA-0001: Compromise Supply Chain")
	})

	t.Run("free-text query returns ranked results", func(t *testing.T) {
		answer, err := agent.AnswerQuery(ctx, "How can attackers jam satellite signals?")
		require.NoError(t, err)
		assert.Contains(t, answer, "**1. Jamming** (ID: EX-0016)")
		assert.Contains(t, answer, "Relevance Score:")
		assert.Contains(t, answer, "Tactic: Execution")
	})

	t.Run("zero matches yields no-results message", func(t *testing.T) {
		answer, err := agent.AnswerQuery(ctx, "quantum blockchain cooking")
		require.NoError(t, err)
		assert.Contains(t, answer, "No relevant techniques found")
	})

	t.Run("sub-technique results show the parent", func(t *testing.T) {
		answer, err := agent.AnswerQuery(ctx, "Uplink Jamming")
		require.NoError(t, err)
		assert.Contains(t, answer, "EX-0016.01")
		assert.Contains(t, answer, "Parent: Jamming")
	})
}

func TestSnippet(t *testing.T) {
	t.Run("short text unchanged", func(t *testing.T) {
		assert.Equal(t, "short", snippet("short"))
	})

	t.Run("long text truncated with ellipsis", func(t *testing.T) {
		long := make([]rune, snippetRuneMax+50)
		for i := range long {
			long[i] = 'x'
		}
		got := snippet(string(long))
		assert.Len(t, []rune(got), snippetRuneMax+3)
		assert.Equal(t, "...", got[len(got)-3:])
	})
}
