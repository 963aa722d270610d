package summarize

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/briefbox/brief-core/internal/models"
	"go.uber.org/zap"
)

// Validation failures, detected before any side effect.
var (
	ErrTextRequired = errors.New("text is required")
	ErrTextTooLong  = errors.New("text is too long")
)

// Downstream failures during the pipeline. Never retried within a
// request; the caller must resubmit.
var (
	ErrGenerationFailed  = errors.New("summary generation failed")
	ErrPersistenceFailed = errors.New("request persistence failed")
)

// Store is the subset of the request store the pipeline writes to.
type Store interface {
	Create(ctx context.Context, ownerID, text string) (*models.SummaryRequestModel, error)
	AttachResult(ctx context.Context, ownerID, id string, result json.RawMessage) error
}

// Generator produces a structured summary for a block of text. The
// payload is opaque JSON; the pipeline stores and returns it untouched.
type Generator interface {
	Generate(ctx context.Context, text string) (json.RawMessage, error)
}

// Service runs the create/generate/attach pipeline.
type Service struct {
	store        Store
	gen          Generator
	maxTextChars int
	log          *zap.Logger
}

func NewService(store Store, gen Generator, maxTextChars int, log *zap.Logger) *Service {
	return &Service{store: store, gen: gen, maxTextChars: maxTextChars, log: log}
}

type createOutcome struct {
	rec *models.SummaryRequestModel
	err error
}

type generateOutcome struct {
	result json.RawMessage
	err    error
}

// Submit validates the text, then starts the store create and the
// generation call concurrently and joins both. A record created for a
// failed generation stays permanently without a result; that state is
// valid and visible in history. A failed finalize write after a
// successful generation does not fail the call: the caller already has
// their summary, so the outcome depends only on generation.
func (s *Service) Submit(ctx context.Context, ownerID, text string) (json.RawMessage, error) {
	if text == "" {
		return nil, ErrTextRequired
	}
	if utf8.RuneCountInString(text) > s.maxTextChars {
		return nil, ErrTextTooLong
	}

	createCh := make(chan createOutcome, 1)
	generateCh := make(chan generateOutcome, 1)

	go func() {
		rec, err := s.store.Create(ctx, ownerID, text)
		createCh <- createOutcome{rec: rec, err: err}
	}()
	go func() {
		result, err := s.gen.Generate(ctx, text)
		generateCh <- generateOutcome{result: result, err: err}
	}()

	created := <-createCh
	generated := <-generateCh

	if generated.err != nil {
		s.log.Error("summary generation failed",
			zap.String("owner", ownerID),
			zap.Error(generated.err),
		)
		return nil, fmt.Errorf("%w: %v", ErrGenerationFailed, generated.err)
	}
	if created.err != nil {
		// Generation succeeded but there is no record to attach it to;
		// the result is discarded.
		s.log.Error("request record create failed",
			zap.String("owner", ownerID),
			zap.Error(created.err),
		)
		return nil, fmt.Errorf("%w: %v", ErrPersistenceFailed, created.err)
	}

	if err := s.store.AttachResult(ctx, ownerID, created.rec.ID, generated.result); err != nil {
		s.log.Error("result attach failed, record stays pending",
			zap.String("owner", ownerID),
			zap.String("id", created.rec.ID),
			zap.Error(err),
		)
	}

	return generated.result, nil
}
