package assistant

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"sync"

	"github.com/minjae/job-coach/internal/llm"
	"github.com/minjae/job-coach/internal/prompts"
)

const (
	// DefaultIdentityFile is the default path of the persisted assistant
	// id record, relative to the working directory.
	DefaultIdentityFile = ".assistant.id"

	// identityKey is the key name inside the identity record file.
	identityKey = "OPENAI_ASSISTANT_ID"
)

// IdentityStore maps the logical coaching-assistant role to a remote
// assistant id. The on-disk record is the sole source of truth for which
// remote assistant to use; it is written only on create.
type IdentityStore struct {
	client llm.Client
	path   string
	name   string

	// mu serializes get-or-create so a burst of first requests mints at
	// most one remote assistant in this process.
	mu sync.Mutex
}

// NewIdentityStore creates an identity store persisting to path. The name
// is used as the remote assistant display name on create.
func NewIdentityStore(client llm.Client, path, name string) *IdentityStore {
	if path == "" {
		path = DefaultIdentityFile
	}
	return &IdentityStore{client: client, path: path, name: name}
}

// Load reads the persisted assistant id. It returns false when the record
// is absent or malformed; both are treated as "no identity yet".
func (s *IdentityStore) Load() (string, bool) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return "", false
	}

	for _, line := range strings.Split(string(data), "\n") {
		if rest, ok := strings.CutPrefix(line, identityKey+"="); ok {
			id := strings.TrimSpace(rest)
			if id != "" {
				return id, true
			}
		}
	}
	return "", false
}

// Create mints a new remote assistant using the embedded instruction
// prompt and overwrites the persisted record with its id.
func (s *IdentityStore) Create(ctx context.Context) (string, error) {
	instructions := prompts.MustGet("assistant.json", "instructions")

	id, err := s.client.CreateAssistant(ctx, s.name, instructions)
	if err != nil {
		return "", err
	}

	record := fmt.Sprintf("%s=%s\n", identityKey, id)
	if err := os.WriteFile(s.path, []byte(record), 0o600); err != nil {
		return "", fmt.Errorf("failed to persist assistant id: %w", err)
	}

	log.Printf("[assistant] created assistant %s", id)
	return id, nil
}

// GetOrCreate returns a valid assistant id. A persisted id is verified
// remotely; a provider not-found response soft-invalidates the record and
// a fresh assistant is created. Any other provider error is fatal.
func (s *IdentityStore) GetOrCreate(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id, ok := s.Load(); ok {
		err := s.client.RetrieveAssistant(ctx, id)
		if err == nil {
			return id, nil
		}
		if !llm.IsNotFound(err) {
			return "", err
		}
		log.Printf("[assistant] persisted assistant %s no longer exists, recreating", id)
	}

	return s.Create(ctx)
}

// Delete removes the remote assistant and the persisted record. It is a
// no-op when no identity exists.
func (s *IdentityStore) Delete(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.Load()
	if !ok {
		return nil
	}

	if err := s.client.DeleteAssistant(ctx, id); err != nil {
		return err
	}
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove identity record: %w", err)
	}

	log.Printf("[assistant] deleted assistant %s", id)
	return nil
}
