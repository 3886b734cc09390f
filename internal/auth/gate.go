package auth

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"actualize-backend/internal/model"
	"actualize-backend/internal/progression"
)

// AccountBlockedCode is the error value of a blocked account response.
const AccountBlockedCode = "account_blocked"

// AccountBlockedResponse tells a blocked candidate why and for how long.
type AccountBlockedResponse struct {
	Error         string                     `json:"error"`
	Message       string                     `json:"message"`
	Reason        string                     `json:"reason"`
	BlockedUntil  *time.Time                 `json:"blockedUntil"`
	TimeRemaining *progression.TimeRemaining `json:"timeRemaining"`
	AdminContacts []model.AdminContact       `json:"adminContacts"`
}

// ContactSource lists who a blocked candidate may reach.
type ContactSource interface {
	AdminContacts(ctx context.Context) ([]model.AdminContact, error)
}

// BlockExpirer clears blocks that have run out.
type BlockExpirer interface {
	ExpireBlocks(ctx context.Context, candidateID uuid.UUID) (bool, error)
}

// Gate decides whether a candidate may log in or reach candidate routes.
type Gate struct {
	Expirer  BlockExpirer
	Contacts ContactSource
	// AutoHeal writes the cleared state back once a block has lapsed.
	AutoHeal bool
	Now      func() time.Time
}

// NewGate creates a Gate.
func NewGate(expirer BlockExpirer, contacts ContactSource, autoHeal bool) *Gate {
	return &Gate{Expirer: expirer, Contacts: contacts, AutoHeal: autoHeal, Now: time.Now}
}

// Check returns nil when the candidate may pass, or the payload to answer with.
// A lapsed block never stops the candidate, whether or not storage gets healed.
func (g *Gate) Check(ctx context.Context, c *model.Candidate) *AccountBlockedResponse {
	now := g.Now()
	if !c.IsBlocked {
		return nil
	}

	if !c.BlockActiveAt(now) {
		if g.AutoHeal && g.Expirer != nil {
			if _, err := g.Expirer.ExpireBlocks(ctx, c.ID); err != nil {
				log.Printf("failed to clear expired block of candidate %s: %v", c.ID, err)
			}
		}
		c.ClearBlock()
		return nil
	}

	resp := &AccountBlockedResponse{
		Error:         AccountBlockedCode,
		Message:       "Your account is blocked",
		BlockedUntil:  c.BlockedUntil,
		AdminContacts: []model.AdminContact{},
	}
	if c.BlockedReason != nil {
		resp.Reason = *c.BlockedReason
	}
	if c.BlockedUntil != nil {
		remaining := progression.ComputeTimeRemaining(*c.BlockedUntil, now)
		resp.TimeRemaining = &remaining
		resp.Message = fmt.Sprintf("Your account is blocked until %s", c.BlockedUntil.UTC().Format(time.RFC3339))
	}

	if g.Contacts != nil {
		contacts, err := g.Contacts.AdminContacts(ctx)
		if err != nil {
			log.Printf("failed to load admin contacts: %v", err)
		} else {
			resp.AdminContacts = contacts
		}
	}
	return resp
}
