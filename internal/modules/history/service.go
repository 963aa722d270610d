package history

import (
	"context"
	"errors"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/briefbox/brief-core/internal/models"
)

// Validation failures, detected before any store query.
var (
	ErrInvalidDay      = errors.New("invalid day")
	ErrInvalidTimezone = errors.New("invalid timezone")
)

var dayPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// Store is the subset of the request store the history engine reads from.
type Store interface {
	GetByID(ctx context.Context, ownerID, id string) (*models.SummaryRequestModel, error)
	QueryRange(ctx context.Context, ownerID string, start, end time.Time) ([]models.SummaryRequestEntry, error)
}

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// DayWindow converts a calendar day plus the caller's UTC offset in
// minutes into the UTC half-open interval [start, start+24h) that covers
// the caller's local day. An offset of -420 (UTC-7) maps 2024-03-15 to
// [2024-03-15T07:00Z, 2024-03-16T07:00Z).
func DayWindow(day string, utcOffsetMinutes int) (start, end time.Time, err error) {
	if !dayPattern.MatchString(day) {
		return time.Time{}, time.Time{}, ErrInvalidDay
	}
	midnight, parseErr := time.Parse("2006-01-02", day)
	if parseErr != nil {
		return time.Time{}, time.Time{}, ErrInvalidDay
	}
	start = midnight.Add(-time.Duration(utcOffsetMinutes) * time.Minute)
	return start, start.Add(24 * time.Hour), nil
}

// ListDay lists the owner's requests created during the given local day,
// newest first and without results.
func (s *Service) ListDay(ctx context.Context, ownerID, day, timezone string) ([]models.SummaryRequestEntry, error) {
	offset, err := strconv.Atoi(strings.TrimSpace(timezone))
	if err != nil {
		return nil, ErrInvalidTimezone
	}
	start, end, err := DayWindow(day, offset)
	if err != nil {
		return nil, err
	}
	return s.store.QueryRange(ctx, ownerID, start, end)
}

// GetDetail fetches one of the owner's requests, result included.
func (s *Service) GetDetail(ctx context.Context, ownerID, id string) (*models.SummaryRequestModel, error) {
	return s.store.GetByID(ctx, ownerID, id)
}
