package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// File keeps an uploaded attachment in the database when no bucket is configured.
type File struct {
	ID          uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	ObjectName  string `gorm:"type:text;not null;uniqueIndex" json:"objectName"`
	ContentType string `gorm:"type:text" json:"contentType"`
	Content     []byte `json:"-"`

	CreatedAt time.Time `json:"createdAt"`
}

// ArchivedApplication is the copy of a deleted application.
type ArchivedApplication struct {
	ID            uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	ApplicationID uuid.UUID      `gorm:"type:uuid;not null;index" json:"applicationId"`
	ProcessID     uuid.UUID      `gorm:"type:uuid;not null;index" json:"processId"`
	CandidateID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"candidateId"`
	Snapshot      datatypes.JSON `gorm:"type:jsonb;not null" json:"snapshot"`
	ArchivedBy    uuid.UUID      `gorm:"type:uuid;not null" json:"archivedBy"`
	ArchivedAt    time.Time      `gorm:"not null" json:"archivedAt"`
}
