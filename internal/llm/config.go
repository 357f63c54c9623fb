// Package llm provides the provider client abstraction for the job-coach
// service: the OpenAI Assistants surface (assistants, threads, runs,
// messages, files) used by the coaching conversation, and the one-shot
// chat-completion surface used by structured extraction.
package llm

import openai "github.com/sashabaranov/go-openai"

// Config holds the model configuration for the application.
type Config struct {
	// AssistantModel backs the remote coaching assistant.
	AssistantModel string
	// ExtractionModel backs the one-shot structured-extraction calls.
	ExtractionModel string
	// AssistantName is the display name used when creating the assistant.
	AssistantName string
	// Temperature applies to extraction calls only; assistant runs use
	// the temperature fixed at assistant creation time.
	Temperature float32
}

// DefaultConfig returns the default model configuration.
func DefaultConfig() *Config {
	return &Config{
		AssistantModel:  openai.GPT4oMini,
		ExtractionModel: openai.GPT4oMini,
		AssistantName:   "Devcorch",
		Temperature:     0.2,
	}
}
