package assistant

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minjae/job-coach/internal/llm"
)

func fastEngineConfig() EngineConfig {
	return EngineConfig{
		PollInterval: time.Millisecond,
		PollTimeout:  250 * time.Millisecond,
	}
}

func newTestEngine(t *testing.T, client *fakeClient) *Engine {
	t.Helper()
	identity := NewIdentityStore(client, identityPath(t), "Devcorch")
	return NewEngine(client, identity, NewRegistry(client), fastEngineConfig())
}

func TestExecuteTurn_Success(t *testing.T) {
	client := newFakeClient()
	client.runStates = []llm.RunState{llm.RunStateQueued, llm.RunStateInProgress, llm.RunStateCompleted}
	client.replies = []llm.Reply{{
		Text: "강점은 명확합니다【4:0†source】.",
		Annotations: []llm.Annotation{
			{Text: "【4:0†source】", FileID: "file_guide"},
		},
	}}
	client.fileNames["file_guide"] = "coaching_guide.pdf"

	engine := newTestEngine(t, client)
	reply, err := engine.ExecuteTurn(context.Background(), "session-a", sampleRequest())
	require.NoError(t, err)

	assert.Equal(t, "강점은 명확합니다[0].\n\n[0] coaching_guide.pdf", reply)
	assert.Equal(t, 1, client.assistantCreates)
	assert.Equal(t, 1, client.threadCreates)
	assert.Len(t, client.runsStarted, 1)
	assert.Len(t, client.messages["thread_1"], 1)
}

func TestExecuteTurn_SessionAffinityAcrossTurns(t *testing.T) {
	client := newFakeClient()
	client.replies = []llm.Reply{{Text: "feedback"}}

	engine := newTestEngine(t, client)
	_, err := engine.ExecuteTurn(context.Background(), "session-a", sampleRequest())
	require.NoError(t, err)
	_, err = engine.ExecuteTurn(context.Background(), "session-a", sampleRequest())
	require.NoError(t, err)

	assert.Equal(t, 1, client.threadCreates, "both turns share one thread")
	assert.Len(t, client.messages["thread_1"], 2, "history grows by one message per turn")
	assert.Equal(t, []string{"thread_1", "thread_1"}, client.runsStarted)
}

func TestExecuteTurn_RunFailed(t *testing.T) {
	client := newFakeClient()
	client.runStates = []llm.RunState{llm.RunStateFailed}

	engine := newTestEngine(t, client)
	_, err := engine.ExecuteTurn(context.Background(), "session-a", sampleRequest())

	var notCompleted *RunNotCompletedError
	require.ErrorAs(t, err, &notCompleted)
	assert.Equal(t, llm.RunStateFailed, notCompleted.State)
}

func TestExecuteTurn_PollTimeout(t *testing.T) {
	client := newFakeClient()
	client.runStates = []llm.RunState{llm.RunStateInProgress}

	identity := NewIdentityStore(client, identityPath(t), "Devcorch")
	engine := NewEngine(client, identity, NewRegistry(client), EngineConfig{
		PollInterval: time.Millisecond,
		PollTimeout:  10 * time.Millisecond,
	})

	_, err := engine.ExecuteTurn(context.Background(), "session-a", sampleRequest())

	var timeout *PollTimeoutError
	require.ErrorAs(t, err, &timeout)
	assert.Equal(t, 10*time.Millisecond, timeout.Budget)
}

func TestExecuteTurn_MissingReply(t *testing.T) {
	client := newFakeClient()
	client.replies = nil

	engine := newTestEngine(t, client)
	_, err := engine.ExecuteTurn(context.Background(), "session-a", sampleRequest())

	var missing *MissingReplyError
	require.ErrorAs(t, err, &missing)
}

func TestExecuteTurn_EmptyReplyText(t *testing.T) {
	client := newFakeClient()
	client.replies = []llm.Reply{{Text: ""}}

	engine := newTestEngine(t, client)
	_, err := engine.ExecuteTurn(context.Background(), "session-a", sampleRequest())

	var missing *MissingReplyError
	require.ErrorAs(t, err, &missing)
}

func TestExecuteTurn_ContextCancelledWhilePolling(t *testing.T) {
	client := newFakeClient()
	client.runStates = []llm.RunState{llm.RunStateInProgress}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	engine := newTestEngine(t, client)
	_, err := engine.ExecuteTurn(ctx, "session-a", sampleRequest())
	require.ErrorIs(t, err, context.Canceled)
}

func TestExecuteTurn_ProviderErrorSurfaced(t *testing.T) {
	client := newFakeClient()
	client.startRunErr = errors.New("provider unavailable")

	engine := newTestEngine(t, client)
	_, err := engine.ExecuteTurn(context.Background(), "session-a", sampleRequest())
	require.ErrorContains(t, err, "provider unavailable")
}

func TestExecuteTurn_FootnotesSkipAnnotationsWithoutFile(t *testing.T) {
	client := newFakeClient()
	client.replies = []llm.Reply{{
		Text: "본문 marker-a marker-b",
		Annotations: []llm.Annotation{
			{Text: "marker-a"},
			{Text: "marker-b", FileID: "file_b"},
		},
	}}
	client.fileNames["file_b"] = "guide.txt"

	engine := newTestEngine(t, client)
	reply, err := engine.ExecuteTurn(context.Background(), "session-a", sampleRequest())
	require.NoError(t, err)

	assert.Equal(t, "본문 [0] [1]\n\n[1] guide.txt", reply)
}
