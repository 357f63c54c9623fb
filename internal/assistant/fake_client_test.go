package assistant

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/minjae/job-coach/internal/llm"
)

// fakeClient is a scriptable in-memory llm.Client used by the identity,
// registry and engine tests.
type fakeClient struct {
	mu sync.Mutex

	assistantCreates int
	retrieveErr      error
	deleteErr        error
	deletedIDs       []string

	threadCreates     int
	threadSeq         int
	createThreadErr   error
	createThreadDelay time.Duration

	// messages records appended user turns per thread, in order.
	messages      map[string][]string
	addMessageErr error

	runsStarted []string
	startRunErr error

	// runStates is the sequence of states reported by successive
	// RunState calls; the last entry repeats once exhausted.
	runStates   []llm.RunState
	runStateIdx int
	runStateErr error

	replies    []llm.Reply
	repliesErr error

	fileNames   map[string]string
	fileNameErr error
}

func newFakeClient() *fakeClient {
	return &fakeClient{
		messages:  make(map[string][]string),
		fileNames: make(map[string]string),
		runStates: []llm.RunState{llm.RunStateCompleted},
	}
}

func (f *fakeClient) CreateAssistant(_ context.Context, _, _ string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.assistantCreates++
	return fmt.Sprintf("asst_fake_%d", f.assistantCreates), nil
}

func (f *fakeClient) RetrieveAssistant(_ context.Context, _ string) error {
	return f.retrieveErr
}

func (f *fakeClient) DeleteAssistant(_ context.Context, assistantID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deletedIDs = append(f.deletedIDs, assistantID)
	return nil
}

func (f *fakeClient) CreateThread(_ context.Context) (string, error) {
	if f.createThreadErr != nil {
		return "", f.createThreadErr
	}
	// Widen the race window for concurrent first-access tests.
	time.Sleep(f.createThreadDelay)
	f.mu.Lock()
	defer f.mu.Unlock()
	f.threadCreates++
	f.threadSeq++
	return fmt.Sprintf("thread_%d", f.threadSeq), nil
}

func (f *fakeClient) AddUserMessage(_ context.Context, threadID, content string) error {
	if f.addMessageErr != nil {
		return f.addMessageErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.messages[threadID] = append(f.messages[threadID], content)
	return nil
}

func (f *fakeClient) StartRun(_ context.Context, threadID, _ string) (string, error) {
	if f.startRunErr != nil {
		return "", f.startRunErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.runsStarted = append(f.runsStarted, threadID)
	return fmt.Sprintf("run_%d", len(f.runsStarted)), nil
}

func (f *fakeClient) RunState(_ context.Context, _, _ string) (llm.RunState, error) {
	if f.runStateErr != nil {
		return "", f.runStateErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	state := f.runStates[f.runStateIdx]
	if f.runStateIdx < len(f.runStates)-1 {
		f.runStateIdx++
	}
	return state, nil
}

func (f *fakeClient) RunReplies(_ context.Context, _, _ string) ([]llm.Reply, error) {
	if f.repliesErr != nil {
		return nil, f.repliesErr
	}
	return f.replies, nil
}

func (f *fakeClient) FileName(_ context.Context, fileID string) (string, error) {
	if f.fileNameErr != nil {
		return "", f.fileNameErr
	}
	name, ok := f.fileNames[fileID]
	if !ok {
		return "", fmt.Errorf("unknown file %s", fileID)
	}
	return name, nil
}

func (f *fakeClient) CompleteJSON(_ context.Context, _, _ string) (string, error) {
	return "", fmt.Errorf("not implemented in fake")
}

func (f *fakeClient) Close() error { return nil }
