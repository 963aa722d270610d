package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SummaryRequestModel is one user submission and its eventual result.
// Result stays NULL until generation finishes; a row without a result is
// still a valid history entry. Rows are never deleted.
type SummaryRequestModel struct {
	ID        string         `json:"id"               gorm:"type:char(36);primaryKey"`
	OwnerID   string         `json:"-"                gorm:"type:varchar(128);not null;index:idx_owner_created,priority:1"`
	Text      string         `json:"text"             gorm:"type:longtext;not null"`
	Result    datatypes.JSON `json:"result,omitempty" gorm:"type:json"`
	CreatedAt time.Time      `json:"createdAt"        gorm:"index:idx_owner_created,priority:2"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

func (SummaryRequestModel) TableName() string { return "summary_requests" }

func (m *SummaryRequestModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	return nil
}

// SummaryRequestEntry is the result-less projection returned by range
// queries. The result column is never fetched for list views.
type SummaryRequestEntry struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
