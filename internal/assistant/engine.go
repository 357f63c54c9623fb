package assistant

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/minjae/job-coach/internal/llm"
	"github.com/minjae/job-coach/internal/types"
)

const (
	// DefaultPollInterval is the delay between run status polls.
	DefaultPollInterval = 1 * time.Second
	// DefaultPollTimeout bounds how long one turn waits for its run to
	// reach a terminal state.
	DefaultPollTimeout = 2 * time.Minute
)

// EngineConfig tunes the turn execution engine.
type EngineConfig struct {
	PollInterval time.Duration
	PollTimeout  time.Duration
}

// Engine executes one coaching turn: it binds the session to its thread,
// appends the rendered feedback prompt as a user message, runs the
// assistant against the full thread history, waits for the run to finish,
// and returns the reply with citations rewritten to footnotes.
type Engine struct {
	client   llm.Client
	identity *IdentityStore
	registry *Registry
	config   EngineConfig
}

// NewEngine creates a turn execution engine. Zero config values fall back
// to the defaults.
func NewEngine(client llm.Client, identity *IdentityStore, registry *Registry, config EngineConfig) *Engine {
	if config.PollInterval <= 0 {
		config.PollInterval = DefaultPollInterval
	}
	if config.PollTimeout <= 0 {
		config.PollTimeout = DefaultPollTimeout
	}
	return &Engine{
		client:   client,
		identity: identity,
		registry: registry,
		config:   config,
	}
}

// ExecuteTurn runs one assistant turn for the session and returns the
// final reply text. Exactly one user message and one run are added to the
// session's thread per invocation; the thread history grows monotonically.
func (e *Engine) ExecuteTurn(ctx context.Context, sessionKey string, req types.FeedbackRequest) (string, error) {
	assistantID, err := e.identity.GetOrCreate(ctx)
	if err != nil {
		return "", err
	}

	threadID, err := e.registry.GetOrCreateThread(ctx, sessionKey)
	if err != nil {
		return "", err
	}

	message := RenderFeedbackPrompt(req)
	if err := e.client.AddUserMessage(ctx, threadID, message); err != nil {
		return "", err
	}

	runID, err := e.client.StartRun(ctx, threadID, assistantID)
	if err != nil {
		return "", err
	}

	state, err := e.awaitRun(ctx, threadID, runID)
	if err != nil {
		return "", err
	}
	if state != llm.RunStateCompleted {
		return "", &RunNotCompletedError{RunID: runID, State: state}
	}

	replies, err := e.client.RunReplies(ctx, threadID, runID)
	if err != nil {
		return "", err
	}
	if len(replies) == 0 || replies[0].Text == "" {
		return "", &MissingReplyError{RunID: runID}
	}

	return e.renderReply(ctx, replies[0])
}

// awaitRun polls the run at the configured interval until it reaches a
// terminal state or the poll budget is exhausted.
func (e *Engine) awaitRun(ctx context.Context, threadID, runID string) (llm.RunState, error) {
	deadline := time.Now().Add(e.config.PollTimeout)
	ticker := time.NewTicker(e.config.PollInterval)
	defer ticker.Stop()

	for {
		state, err := e.client.RunState(ctx, threadID, runID)
		if err != nil {
			return "", err
		}
		if state.Terminal() {
			return state, nil
		}
		if time.Now().After(deadline) {
			log.Printf("[assistant] run %s exceeded poll budget in state %q", runID, state)
			return "", &PollTimeoutError{RunID: runID, Budget: e.config.PollTimeout}
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-ticker.C:
		}
	}
}

// renderReply rewrites citation annotations in the reply body and appends
// one footnote per annotation that resolves to a file.
func (e *Engine) renderReply(ctx context.Context, reply llm.Reply) (string, error) {
	body := rewriteCitationBody(reply.Text, reply.Annotations)

	var footnotes []string
	for idx, ann := range reply.Annotations {
		if ann.FileID == "" {
			continue
		}
		name, err := e.client.FileName(ctx, ann.FileID)
		if err != nil {
			return "", err
		}
		footnotes = append(footnotes, fmt.Sprintf("[%d] %s", idx, name))
	}

	if len(footnotes) > 0 {
		body += "\n\n" + strings.Join(footnotes, "\n")
	}
	return body, nil
}
