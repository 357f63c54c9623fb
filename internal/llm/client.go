package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	openai "github.com/sashabaranov/go-openai"
)

// Client is an abstraction over the LLM provider. Every method maps to a
// single provider call; orchestration (polling, retries, identity
// lifecycle) lives in the callers.
type Client interface {
	// CreateAssistant creates a remote assistant and returns its id.
	CreateAssistant(ctx context.Context, name, instructions string) (string, error)
	// RetrieveAssistant verifies that an assistant id still exists
	// remotely. A missing assistant yields an error satisfying IsNotFound.
	RetrieveAssistant(ctx context.Context, assistantID string) error
	// DeleteAssistant removes the remote assistant.
	DeleteAssistant(ctx context.Context, assistantID string) error
	// CreateThread creates a new empty conversation thread.
	CreateThread(ctx context.Context) (string, error)
	// AddUserMessage appends a user turn to a thread.
	AddUserMessage(ctx context.Context, threadID, content string) error
	// StartRun starts executing the assistant against a thread and
	// returns the run id.
	StartRun(ctx context.Context, threadID, assistantID string) (string, error)
	// RunState reports the current lifecycle state of a run.
	RunState(ctx context.Context, threadID, runID string) (RunState, error)
	// RunReplies lists the assistant messages produced by one specific
	// run, newest first.
	RunReplies(ctx context.Context, threadID, runID string) ([]Reply, error)
	// FileName resolves a provider file id to its filename.
	FileName(ctx context.Context, fileID string) (string, error)
	// CompleteJSON performs a one-shot, non-conversational completion and
	// returns the raw text of the first choice.
	CompleteJSON(ctx context.Context, systemPrompt, userPrompt string) (string, error)
	// Close releases any resources held by the client.
	Close() error
}

// OpenAIClient implements Client on top of the OpenAI API.
type OpenAIClient struct {
	client *openai.Client
	config *Config
}

// NewOpenAIClient creates a new OpenAI-backed client.
func NewOpenAIClient(config *Config, apiKey string) (*OpenAIClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if config == nil {
		config = DefaultConfig()
	}

	return &OpenAIClient{
		client: openai.NewClient(apiKey),
		config: config,
	}, nil
}

// IsNotFound reports whether err is a provider "not found" response.
// Used by the identity store to soft-invalidate a stale assistant id.
func IsNotFound(err error) bool {
	var apiErr *openai.APIError
	return errors.As(err, &apiErr) && apiErr.HTTPStatusCode == http.StatusNotFound
}

// CreateAssistant creates a remote assistant with the configured model.
func (c *OpenAIClient) CreateAssistant(ctx context.Context, name, instructions string) (string, error) {
	assistant, err := c.client.CreateAssistant(ctx, openai.AssistantRequest{
		Model:        c.config.AssistantModel,
		Name:         &name,
		Instructions: &instructions,
	})
	if err != nil {
		return "", fmt.Errorf("failed to create assistant: %w", err)
	}
	return assistant.ID, nil
}

// RetrieveAssistant verifies the assistant exists remotely.
func (c *OpenAIClient) RetrieveAssistant(ctx context.Context, assistantID string) error {
	if _, err := c.client.RetrieveAssistant(ctx, assistantID); err != nil {
		return fmt.Errorf("failed to retrieve assistant %s: %w", assistantID, err)
	}
	return nil
}

// DeleteAssistant removes the remote assistant.
func (c *OpenAIClient) DeleteAssistant(ctx context.Context, assistantID string) error {
	if _, err := c.client.DeleteAssistant(ctx, assistantID); err != nil {
		return fmt.Errorf("failed to delete assistant %s: %w", assistantID, err)
	}
	return nil
}

// CreateThread creates a new empty thread.
func (c *OpenAIClient) CreateThread(ctx context.Context) (string, error) {
	thread, err := c.client.CreateThread(ctx, openai.ThreadRequest{})
	if err != nil {
		return "", fmt.Errorf("failed to create thread: %w", err)
	}
	return thread.ID, nil
}

// AddUserMessage appends a user turn to a thread.
func (c *OpenAIClient) AddUserMessage(ctx context.Context, threadID, content string) error {
	_, err := c.client.CreateMessage(ctx, threadID, openai.MessageRequest{
		Role:    openai.ChatMessageRoleUser,
		Content: content,
	})
	if err != nil {
		return fmt.Errorf("failed to append message to thread %s: %w", threadID, err)
	}
	return nil
}

// StartRun starts a run of the assistant against the thread.
func (c *OpenAIClient) StartRun(ctx context.Context, threadID, assistantID string) (string, error) {
	run, err := c.client.CreateRun(ctx, threadID, openai.RunRequest{
		AssistantID: assistantID,
	})
	if err != nil {
		return "", fmt.Errorf("failed to create run on thread %s: %w", threadID, err)
	}
	return run.ID, nil
}

// RunState reports the current state of a run.
func (c *OpenAIClient) RunState(ctx context.Context, threadID, runID string) (RunState, error) {
	run, err := c.client.RetrieveRun(ctx, threadID, runID)
	if err != nil {
		return "", fmt.Errorf("failed to retrieve run %s: %w", runID, err)
	}
	return mapRunStatus(run.Status), nil
}

// RunReplies lists assistant messages scoped to a single run.
func (c *OpenAIClient) RunReplies(ctx context.Context, threadID, runID string) ([]Reply, error) {
	list, err := c.client.ListMessage(ctx, threadID, nil, nil, nil, nil, &runID)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages for run %s: %w", runID, err)
	}

	replies := make([]Reply, 0, len(list.Messages))
	for _, msg := range list.Messages {
		reply, ok := reduceMessage(msg)
		if !ok {
			continue
		}
		replies = append(replies, reply)
	}
	return replies, nil
}

// FileName resolves a file id to its filename.
func (c *OpenAIClient) FileName(ctx context.Context, fileID string) (string, error) {
	file, err := c.client.GetFile(ctx, fileID)
	if err != nil {
		return "", fmt.Errorf("failed to retrieve file %s: %w", fileID, err)
	}
	return file.FileName, nil
}

// CompleteJSON performs a one-shot completion with the extraction model.
func (c *OpenAIClient) CompleteJSON(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.config.ExtractionModel,
		Temperature: c.config.Temperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to generate completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices in completion response")
	}
	return resp.Choices[0].Message.Content, nil
}

// Close releases resources held by the client. The OpenAI client holds no
// persistent connections, so this is a no-op kept for interface symmetry.
func (c *OpenAIClient) Close() error {
	return nil
}

// mapRunStatus converts a provider run status to a RunState. Transitional
// provider-only states (requires_action, cancelling, incomplete) collapse
// into in_progress; the engine only acts on terminal states.
func mapRunStatus(status openai.RunStatus) RunState {
	switch status {
	case openai.RunStatusQueued:
		return RunStateQueued
	case openai.RunStatusCompleted:
		return RunStateCompleted
	case openai.RunStatusFailed:
		return RunStateFailed
	case openai.RunStatusCancelled:
		return RunStateCancelled
	case openai.RunStatusExpired:
		return RunStateExpired
	default:
		return RunStateInProgress
	}
}

// messageAnnotation is the provider wire shape of one citation span.
// The SDK surfaces annotations as untyped values, so they are re-decoded
// into this struct at the boundary.
type messageAnnotation struct {
	Type         string `json:"type"`
	Text         string `json:"text"`
	FileCitation *struct {
		FileID string `json:"file_id"`
	} `json:"file_citation,omitempty"`
	FilePath *struct {
		FileID string `json:"file_id"`
	} `json:"file_path,omitempty"`
}

// reduceMessage extracts the first text content block of a message into a
// Reply. Messages without text content are skipped.
func reduceMessage(msg openai.Message) (Reply, bool) {
	for _, content := range msg.Content {
		if content.Text == nil {
			continue
		}

		reply := Reply{Text: content.Text.Value}
		for _, raw := range content.Text.Annotations {
			ann, err := decodeAnnotation(raw)
			if err != nil {
				continue
			}
			reply.Annotations = append(reply.Annotations, ann)
		}
		return reply, true
	}
	return Reply{}, false
}

// decodeAnnotation converts one untyped annotation value into the typed
// Annotation shape via a JSON round trip.
func decodeAnnotation(raw any) (Annotation, error) {
	data, err := json.Marshal(raw)
	if err != nil {
		return Annotation{}, err
	}

	var wire messageAnnotation
	if err := json.Unmarshal(data, &wire); err != nil {
		return Annotation{}, err
	}

	ann := Annotation{Text: wire.Text}
	switch {
	case wire.FileCitation != nil:
		ann.FileID = wire.FileCitation.FileID
	case wire.FilePath != nil:
		ann.FileID = wire.FilePath.FileID
	}
	return ann, nil
}
