package model

import (
	"time"

	"github.com/google/uuid"
)

// Application status
const (
	ApplicationStatusApplied    = "applied"
	ApplicationStatusInProgress = "in-progress"
	ApplicationStatusCompleted  = "completed"
	ApplicationStatusExpired    = "expired"
	ApplicationStatusRejected   = "rejected"
	ApplicationStatusBlocked    = "blocked"
)

// Round progress status
const (
	RoundStatusInProgress = "in-progress"
	RoundStatusSubmitted  = "submitted"
)

// ApplicationStatuses lists every status an admin may see on an application.
var ApplicationStatuses = []string{
	ApplicationStatusApplied,
	ApplicationStatusInProgress,
	ApplicationStatusCompleted,
	ApplicationStatusExpired,
	ApplicationStatusRejected,
	ApplicationStatusBlocked,
}

// Application is a candidate's live progress against one process.
type Application struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	ProcessID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_application_process_candidate" json:"processId"`
	Process     Process   `gorm:"foreignKey:ProcessID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
	CandidateID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_application_process_candidate;index" json:"candidateId"`
	Candidate   Candidate `gorm:"foreignKey:CandidateID;references:ID;constraint:OnDelete:CASCADE" json:"-"`

	Status            string  `gorm:"type:text;not null;default:'applied'" json:"status"`
	CurrentRoundIndex *int    `json:"currentRoundIndex"`
	CurrentRoundTitle *string `gorm:"type:text" json:"currentRoundTitle"`

	Rounds []RoundProgress `gorm:"foreignKey:ApplicationID;constraint:OnDelete:CASCADE" json:"rounds"`

	BlockedUntil *time.Time `json:"blockedUntil,omitempty"`
	BlockReason  *string    `gorm:"type:text" json:"blockReason,omitempty"`
	BlockedBy    *uuid.UUID `gorm:"type:uuid" json:"blockedBy,omitempty"`
	BlockedAt    *time.Time `json:"blockedAt,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Answer is the value given to one field.
// Value is a string, a list of strings or a file URL.
type Answer struct {
	FieldID string      `json:"fieldId"`
	Answer  interface{} `json:"answer"`
}

// RoundProgress is the per-round record of an application, unique by round id.
type RoundProgress struct {
	ID            uint      `gorm:"primaryKey;autoIncrement" json:"-"`
	ApplicationID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_round_progress_application_round" json:"-"`
	RoundID       string    `gorm:"type:text;not null;uniqueIndex:idx_round_progress_application_round" json:"roundId"`
	Status        string    `gorm:"type:text;not null" json:"status"`
	Answers       []Answer  `gorm:"type:jsonb;serializer:json" json:"answers"`

	Timeline     *string    `gorm:"type:text" json:"timeline"`
	TimelineDate *time.Time `json:"timelineDate"`

	UpdatedAt time.Time `json:"updatedAt"`
}

// RoundMap indexes the application's round progress by round id.
func (a *Application) RoundMap() map[string]*RoundProgress {
	m := make(map[string]*RoundProgress, len(a.Rounds))
	for i := range a.Rounds {
		m[a.Rounds[i].RoundID] = &a.Rounds[i]
	}
	return m
}

// IsBlockedAt reports whether the application carries a block that is still running.
func (a *Application) IsBlockedAt(now time.Time) bool {
	if a.Status != ApplicationStatusBlocked {
		return false
	}
	return a.BlockedUntil == nil || a.BlockedUntil.After(now)
}

// ClearBlock resets the block metadata and returns the application to in-progress.
func (a *Application) ClearBlock() {
	a.Status = ApplicationStatusInProgress
	a.BlockedUntil = nil
	a.BlockReason = nil
	a.BlockedBy = nil
	a.BlockedAt = nil
}
