package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/briefbox/brief-core/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ErrNotFound reports a record that does not exist in the caller's
// partition. Foreign-owned records look exactly the same as missing ones.
var ErrNotFound = errors.New("record not found")

// RequestStore persists summarization requests. Every operation is scoped
// to one owner; cross-owner access is structurally impossible.
type RequestStore struct {
	db *gorm.DB
}

func NewRequestStore(db *gorm.DB) *RequestStore {
	return &RequestStore{db: db}
}

// Create inserts a pending record without a result. The id and both
// timestamps are assigned here.
func (s *RequestStore) Create(ctx context.Context, ownerID, text string) (*models.SummaryRequestModel, error) {
	rec := &models.SummaryRequestModel{
		OwnerID: ownerID,
		Text:    text,
	}
	if err := s.db.WithContext(ctx).Create(rec).Error; err != nil {
		return nil, err
	}
	return rec, nil
}

// AttachResult finalizes a record with the generated summary. Only the
// result column and updated_at change; created_at stays as written.
func (s *RequestStore) AttachResult(ctx context.Context, ownerID, id string, result json.RawMessage) error {
	res := s.db.WithContext(ctx).
		Model(&models.SummaryRequestModel{}).
		Where("id = ? AND owner_id = ?", id, ownerID).
		Update("result", datatypes.JSON(result))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// GetByID fetches a single record, result included.
func (s *RequestStore) GetByID(ctx context.Context, ownerID, id string) (*models.SummaryRequestModel, error) {
	var rec models.SummaryRequestModel
	err := s.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", id, ownerID).
		First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &rec, nil
}

// QueryRange lists the owner's records created within the half-open
// interval [start, end), newest first, without the result column.
func (s *RequestStore) QueryRange(ctx context.Context, ownerID string, start, end time.Time) ([]models.SummaryRequestEntry, error) {
	entries := make([]models.SummaryRequestEntry, 0)
	err := s.db.WithContext(ctx).
		Model(&models.SummaryRequestModel{}).
		Select("id", "created_at", "updated_at").
		Where("owner_id = ? AND created_at >= ? AND created_at < ?", ownerID, start, end).
		Order("created_at DESC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}
