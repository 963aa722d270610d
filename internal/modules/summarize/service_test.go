package summarize

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/briefbox/brief-core/internal/config"
	"github.com/briefbox/brief-core/internal/models"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var testSummary = json.RawMessage(`{"1-reasoning":"r","2-mainPoints":["a"],"3-summaries":[{"3.1-mainPoint":"a","3.2-reasoningTraces":["t"],"3.3-synthesis":"s"}]}`)

type fakeStore struct {
	createErr error
	attachErr error
	onCreate  func()

	creates  atomic.Int32
	attaches atomic.Int32

	attachedID     string
	attachedResult json.RawMessage
}

func (f *fakeStore) Create(ctx context.Context, ownerID, text string) (*models.SummaryRequestModel, error) {
	f.creates.Add(1)
	if f.onCreate != nil {
		f.onCreate()
	}
	if f.createErr != nil {
		return nil, f.createErr
	}
	now := time.Now().UTC()
	return &models.SummaryRequestModel{
		ID:        "req-1",
		OwnerID:   ownerID,
		Text:      text,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func (f *fakeStore) AttachResult(ctx context.Context, ownerID, id string, result json.RawMessage) error {
	f.attaches.Add(1)
	if f.attachErr != nil {
		return f.attachErr
	}
	f.attachedID = id
	f.attachedResult = result
	return nil
}

type fakeGenerator struct {
	result     json.RawMessage
	err        error
	onGenerate func()

	calls atomic.Int32
}

func (f *fakeGenerator) Generate(ctx context.Context, text string) (json.RawMessage, error) {
	f.calls.Add(1)
	if f.onGenerate != nil {
		f.onGenerate()
	}
	return f.result, f.err
}

func newTestService(store Store, gen Generator) *Service {
	return NewService(store, gen, config.DefaultMaxTextChars, zap.NewNop())
}

func TestSubmit_Success(t *testing.T) {
	t.Parallel()

	store := &fakeStore{}
	gen := &fakeGenerator{result: testSummary}
	svc := newTestService(store, gen)

	result, err := svc.Submit(context.Background(), "owner-1", "some text")
	require.NoError(t, err)
	require.JSONEq(t, string(testSummary), string(result))

	require.EqualValues(t, 1, store.creates.Load())
	require.EqualValues(t, 1, store.attaches.Load())
	require.Equal(t, "req-1", store.attachedID)
	require.Equal(t, testSummary, store.attachedResult)
}

func TestSubmit_EmptyText(t *testing.T) {
	t.Parallel()

	store := &fakeStore{}
	gen := &fakeGenerator{result: testSummary}
	svc := newTestService(store, gen)

	_, err := svc.Submit(context.Background(), "owner-1", "")
	require.ErrorIs(t, err, ErrTextRequired)

	require.EqualValues(t, 0, store.creates.Load())
	require.EqualValues(t, 0, gen.calls.Load())
}

func TestSubmit_TextTooLong(t *testing.T) {
	t.Parallel()

	store := &fakeStore{}
	gen := &fakeGenerator{result: testSummary}
	svc := newTestService(store, gen)

	text := strings.Repeat("a", config.DefaultMaxTextChars+1)
	_, err := svc.Submit(context.Background(), "owner-1", text)
	require.ErrorIs(t, err, ErrTextTooLong)

	require.EqualValues(t, 0, store.creates.Load())
	require.EqualValues(t, 0, gen.calls.Load())
}

func TestSubmit_TextAtLimit(t *testing.T) {
	t.Parallel()

	store := &fakeStore{}
	gen := &fakeGenerator{result: testSummary}
	svc := newTestService(store, gen)

	text := strings.Repeat("a", config.DefaultMaxTextChars)
	_, err := svc.Submit(context.Background(), "owner-1", text)
	require.NoError(t, err)
}

func TestSubmit_GenerationFailure(t *testing.T) {
	t.Parallel()

	store := &fakeStore{}
	gen := &fakeGenerator{err: errors.New("model timeout")}
	svc := newTestService(store, gen)

	_, err := svc.Submit(context.Background(), "owner-1", "some text")
	require.ErrorIs(t, err, ErrGenerationFailed)

	// The pending record was still created and stays without a result.
	require.EqualValues(t, 1, store.creates.Load())
	require.EqualValues(t, 0, store.attaches.Load())
}

func TestSubmit_CreateFailure(t *testing.T) {
	t.Parallel()

	store := &fakeStore{createErr: errors.New("connection refused")}
	gen := &fakeGenerator{result: testSummary}
	svc := newTestService(store, gen)

	_, err := svc.Submit(context.Background(), "owner-1", "some text")
	require.ErrorIs(t, err, ErrPersistenceFailed)

	// Generation succeeded but the result had nowhere to go.
	require.EqualValues(t, 1, gen.calls.Load())
	require.EqualValues(t, 0, store.attaches.Load())
}

func TestSubmit_AttachFailureStillReturnsResult(t *testing.T) {
	t.Parallel()

	store := &fakeStore{attachErr: errors.New("connection reset")}
	gen := &fakeGenerator{result: testSummary}
	svc := newTestService(store, gen)

	result, err := svc.Submit(context.Background(), "owner-1", "some text")
	require.NoError(t, err)
	require.Equal(t, testSummary, result)

	require.EqualValues(t, 1, store.attaches.Load())
}

func TestSubmit_CreateAndGenerateRunConcurrently(t *testing.T) {
	t.Parallel()

	createStarted := make(chan struct{})
	generateStarted := make(chan struct{})

	store := &fakeStore{onCreate: func() {
		close(createStarted)
		<-generateStarted
	}}
	gen := &fakeGenerator{result: testSummary, onGenerate: func() {
		close(generateStarted)
		<-createStarted
	}}
	svc := newTestService(store, gen)

	done := make(chan error, 1)
	go func() {
		_, err := svc.Submit(context.Background(), "owner-1", "some text")
		done <- err
	}()

	// A sequential pipeline would deadlock on the handshake above.
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("create and generate did not run concurrently")
	}
}
