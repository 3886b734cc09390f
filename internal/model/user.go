package model

import (
	"time"

	"github.com/google/uuid"
)

// Role names carried in access tokens
const (
	RoleAdmin     = "admin"
	RoleCandidate = "candidate"
)

// Candidate is a person applying to processes. IsBlocked is the login gate.
type Candidate struct {
	ID       uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Name     string    `gorm:"type:text;not null" json:"name"`
	Email    string    `gorm:"type:text;not null;uniqueIndex" json:"email"`
	Phone    *string   `gorm:"type:text" json:"phone,omitempty"`
	Password string    `gorm:"type:text;not null" json:"-"`

	IsBlocked     bool       `gorm:"not null;default:false" json:"isBlocked"`
	BlockedUntil  *time.Time `json:"blockedUntil,omitempty"`
	BlockedReason *string    `gorm:"type:text" json:"blockedReason,omitempty"`
	BlockedBy     *uuid.UUID `gorm:"type:uuid" json:"blockedBy,omitempty"`
	BlockedAt     *time.Time `json:"blockedAt,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BlockActiveAt reports whether the candidate is still blocked at now.
// A block without an end time never lapses.
func (c *Candidate) BlockActiveAt(now time.Time) bool {
	if !c.IsBlocked {
		return false
	}
	return c.BlockedUntil == nil || c.BlockedUntil.After(now)
}

// ClearBlock resets the block state.
func (c *Candidate) ClearBlock() {
	c.IsBlocked = false
	c.BlockedUntil = nil
	c.BlockedReason = nil
	c.BlockedBy = nil
	c.BlockedAt = nil
}

// Admin manages processes and candidates.
type Admin struct {
	ID       uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Name     string    `gorm:"type:text" json:"name"`
	Email    string    `gorm:"type:text;not null;uniqueIndex" json:"email"`
	Password string    `gorm:"type:text;not null" json:"-"`

	CreatedAt time.Time `json:"createdAt"`
}

// AdminContact is shown to blocked candidates so they can reach someone.
type AdminContact struct {
	ID    uint    `gorm:"primaryKey;autoIncrement" json:"-"`
	Name  string  `gorm:"type:text;not null" json:"name"`
	Email *string `gorm:"type:text" json:"email,omitempty"`
	Phone *string `gorm:"type:text" json:"phone,omitempty"`
}

// CommunityGroup is the group candidates join once they finish a process.
type CommunityGroup struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"-"`
	GroupLink string    `gorm:"type:text;not null" json:"groupLink"`
	UpdatedAt time.Time `json:"-"`
}
