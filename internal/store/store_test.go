package store

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/briefbox/brief-core/internal/models"
)

func newTestStore(t *testing.T) (*RequestStore, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.SummaryRequestModel{}))

	return NewRequestStore(db), db
}

// seed inserts a record with a fixed creation time, bypassing the store
// so range tests control the clock.
func seed(t *testing.T, db *gorm.DB, id, ownerID string, createdAt time.Time) {
	t.Helper()
	rec := &models.SummaryRequestModel{
		ID:        id,
		OwnerID:   ownerID,
		Text:      "seeded",
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
	require.NoError(t, db.Create(rec).Error)
}

func TestCreate_AssignsIDAndTimestamps(t *testing.T) {
	st, _ := newTestStore(t)

	rec, err := st.Create(context.Background(), "owner-1", "some text")
	require.NoError(t, err)
	require.Len(t, rec.ID, 36, "uuid assigned")
	require.False(t, rec.CreatedAt.IsZero())
	require.False(t, rec.UpdatedAt.IsZero())
	require.Empty(t, rec.Result, "new records are pending")

	got, err := st.GetByID(context.Background(), "owner-1", rec.ID)
	require.NoError(t, err)
	require.Equal(t, "some text", got.Text)
	require.Empty(t, got.Result)
}

func TestAttachResult(t *testing.T) {
	st, _ := newTestStore(t)
	ctx := context.Background()

	rec, err := st.Create(ctx, "owner-1", "some text")
	require.NoError(t, err)
	created := rec.CreatedAt

	summary := json.RawMessage(`{"1-reasoning":"because"}`)
	require.NoError(t, st.AttachResult(ctx, "owner-1", rec.ID, summary))

	got, err := st.GetByID(ctx, "owner-1", rec.ID)
	require.NoError(t, err)
	require.JSONEq(t, string(summary), string(got.Result))
	require.True(t, got.CreatedAt.Equal(created), "created_at untouched by attach")
}

func TestAttachResult_UnknownRecord(t *testing.T) {
	st, _ := newTestStore(t)

	err := st.AttachResult(context.Background(), "owner-1", "no-such-id", json.RawMessage(`{}`))
	require.ErrorIs(t, err, ErrNotFound)
}

func TestAttachResult_ForeignOwner(t *testing.T) {
	st, _ := newTestStore(t)
	ctx := context.Background()

	rec, err := st.Create(ctx, "owner-1", "some text")
	require.NoError(t, err)

	err = st.AttachResult(ctx, "owner-2", rec.ID, json.RawMessage(`{}`))
	require.ErrorIs(t, err, ErrNotFound)

	got, err := st.GetByID(ctx, "owner-1", rec.ID)
	require.NoError(t, err)
	require.Empty(t, got.Result, "foreign attach left the record pending")
}

func TestGetByID_OwnerIsolation(t *testing.T) {
	st, _ := newTestStore(t)
	ctx := context.Background()

	rec, err := st.Create(ctx, "owner-1", "some text")
	require.NoError(t, err)

	_, err = st.GetByID(ctx, "owner-2", rec.ID)
	require.ErrorIs(t, err, ErrNotFound, "foreign records look missing")

	_, err = st.GetByID(ctx, "owner-1", "no-such-id")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestQueryRange(t *testing.T) {
	st, db := newTestStore(t)
	ctx := context.Background()

	start := time.Date(2024, 3, 15, 7, 0, 0, 0, time.UTC)
	end := start.Add(24 * time.Hour)

	seed(t, db, "at-start", "owner-1", start)
	seed(t, db, "midday", "owner-1", start.Add(12*time.Hour))
	seed(t, db, "last-second", "owner-1", end.Add(-time.Second))
	seed(t, db, "before", "owner-1", start.Add(-time.Second))
	seed(t, db, "at-end", "owner-1", end)
	seed(t, db, "foreign", "owner-2", start.Add(6*time.Hour))

	entries, err := st.QueryRange(ctx, "owner-1", start, end)
	require.NoError(t, err)

	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, e.ID)
	}
	require.Equal(t, []string{"last-second", "midday", "at-start"}, ids,
		"half-open window, newest first")
}

func TestQueryRange_EmptyIsNotNil(t *testing.T) {
	st, _ := newTestStore(t)

	start := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	entries, err := st.QueryRange(context.Background(), "owner-1", start, start.Add(24*time.Hour))
	require.NoError(t, err)
	require.NotNil(t, entries)
	require.Empty(t, entries)
}
