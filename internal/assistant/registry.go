package assistant

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/minjae/job-coach/internal/llm"
)

// Registry owns the in-memory mapping from session keys to provider
// thread ids. Bindings live for the process lifetime: no TTL, no eviction,
// no persistence. A restart loses all of them, which callers accept by
// starting a fresh conversation.
type Registry struct {
	client llm.Client

	mu      sync.RWMutex
	threads map[string]string

	// group collapses concurrent first-requests for the same unseen key
	// into a single thread creation. Different keys never contend.
	group singleflight.Group
}

// NewRegistry creates an empty session registry.
func NewRegistry(client llm.Client) *Registry {
	return &Registry{
		client:  client,
		threads: make(map[string]string),
	}
}

// ResolveSessionKey returns the session key for a request: the cookie
// value when present, otherwise a freshly minted token. The second return
// reports whether a new key was minted.
func ResolveSessionKey(cookieValue string) (string, bool) {
	if cookieValue != "" {
		return cookieValue, false
	}
	return uuid.NewString(), true
}

// GetOrCreateThread returns the thread bound to sessionKey, creating it
// on first access. For a fixed key, concurrent first-accesses observe a
// single winning creation; no thread is ever created and dropped.
func (r *Registry) GetOrCreateThread(ctx context.Context, sessionKey string) (string, error) {
	r.mu.RLock()
	threadID, ok := r.threads[sessionKey]
	r.mu.RUnlock()
	if ok {
		return threadID, nil
	}

	v, err, _ := r.group.Do(sessionKey, func() (any, error) {
		// A losing racer may arrive after the winner stored the binding.
		r.mu.RLock()
		threadID, ok := r.threads[sessionKey]
		r.mu.RUnlock()
		if ok {
			return threadID, nil
		}

		threadID, err := r.client.CreateThread(ctx)
		if err != nil {
			return "", err
		}

		r.mu.Lock()
		r.threads[sessionKey] = threadID
		r.mu.Unlock()
		return threadID, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

// Len reports the number of active session bindings.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.threads)
}
