package progression

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"actualize-backend/internal/apperror"
	"actualize-backend/internal/model"
)

// Block suspends the candidate behind an application for durationHours.
// The candidate row is written before the application row; if the second write
// fails the error is RetryRequired.
func (e *Engine) Block(ctx context.Context, applicationID uuid.UUID, durationHours float64, reason string, adminID uuid.UUID) (time.Time, error) {
	action := BlockAction{DurationHours: durationHours, Reason: reason}
	if err := action.Validate(); err != nil {
		return time.Time{}, err
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		reason = DefaultBlockReason
	}

	now := e.now().UTC()
	until := now.Add(time.Duration(durationHours * float64(time.Hour)))

	err := e.store.InTx(ctx, func(tx Tx) error {
		app, err := tx.LockApplication(applicationID)
		if err != nil {
			return err
		}
		candidate, err := tx.LockCandidate(app.CandidateID)
		if err != nil {
			return err
		}
		process, err := tx.Process(app.ProcessID)
		if err != nil {
			return err
		}

		if rp := CurrentRound(app, process); rp != nil && (rp.Timeline != nil || rp.TimelineDate != nil) {
			rp.Timeline = nil
			rp.TimelineDate = nil
			if err := tx.UpsertRound(app.ID, rp); err != nil {
				return err
			}
		}

		by := adminID
		candidate.IsBlocked = true
		candidate.BlockedUntil = &until
		candidate.BlockedReason = &reason
		candidate.BlockedBy = &by
		candidate.BlockedAt = &now
		if err := tx.SaveCandidate(candidate); err != nil {
			return err
		}

		app.Status = model.ApplicationStatusBlocked
		app.BlockedUntil = &until
		app.BlockReason = &reason
		app.BlockedBy = &by
		app.BlockedAt = &now
		if err := tx.SaveApplication(app); err != nil {
			log.Printf("block of candidate %s applied but application %s failed: %v", candidate.ID, app.ID, err)
			return retryRequired("Block", err)
		}
		return nil
	})
	if err != nil {
		return time.Time{}, err
	}

	log.Printf("application %s blocked until %s by admin %s", applicationID, until.Format(time.RFC3339), adminID)
	return until, nil
}

// Unblock lifts the suspension and puts the application back in progress.
// The application row is written before the candidate row; if the second write
// fails the error is RetryRequired.
func (e *Engine) Unblock(ctx context.Context, applicationID uuid.UUID) error {
	err := e.store.InTx(ctx, func(tx Tx) error {
		app, err := tx.LockApplication(applicationID)
		if err != nil {
			return err
		}
		candidate, err := tx.LockCandidate(app.CandidateID)
		if err != nil {
			return err
		}

		app.ClearBlock()
		if err := tx.SaveApplication(app); err != nil {
			return err
		}

		candidate.ClearBlock()
		if err := tx.SaveCandidate(candidate); err != nil {
			log.Printf("unblock of application %s applied but candidate %s failed: %v", app.ID, candidate.ID, err)
			return retryRequired("Unblock", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	log.Printf("application %s unblocked", applicationID)
	return nil
}

// UpdateStatus is the admin override of an application status.
// Blocking and unblocking have their own actions and are refused here.
func (e *Engine) UpdateStatus(ctx context.Context, applicationID uuid.UUID, status string) (*model.Application, error) {
	if err := (StatusAction{Status: status}).Validate(); err != nil {
		return nil, err
	}
	if status == model.ApplicationStatusBlocked {
		return nil, apperror.Validation("Use the blockCandidate action to block an application")
	}

	var updated *model.Application
	err := e.store.InTx(ctx, func(tx Tx) error {
		app, err := tx.LockApplication(applicationID)
		if err != nil {
			return err
		}
		if app.Status == model.ApplicationStatusBlocked {
			return apperror.Validation("Application is blocked, use the unblockCandidate action first")
		}
		app.Status = status
		if status == model.ApplicationStatusCompleted {
			app.CurrentRoundIndex = nil
			app.CurrentRoundTitle = nil
		}
		if err := tx.SaveApplication(app); err != nil {
			return err
		}
		updated = app
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// ExpireBlocks clears a candidate block whose end time has passed, together with
// every application of that candidate whose block has lapsed. It reports whether
// anything was cleared.
func (e *Engine) ExpireBlocks(ctx context.Context, candidateID uuid.UUID) (bool, error) {
	now := e.now()
	healed := false
	err := e.store.InTx(ctx, func(tx Tx) error {
		// applications before the candidate, the same order Block takes them in
		apps, err := tx.LockApplicationsByCandidate(candidateID)
		if err != nil {
			return err
		}
		candidate, err := tx.LockCandidate(candidateID)
		if err != nil {
			return err
		}
		if !candidate.IsBlocked || candidate.BlockActiveAt(now) {
			return nil
		}

		for i := range apps {
			app := &apps[i]
			if app.Status != model.ApplicationStatusBlocked || app.IsBlockedAt(now) {
				continue
			}
			app.ClearBlock()
			if err := tx.SaveApplication(app); err != nil {
				return err
			}
		}

		candidate.ClearBlock()
		if err := tx.SaveCandidate(candidate); err != nil {
			return retryRequired("Block expiry", err)
		}
		healed = true
		return nil
	})
	if err != nil {
		return false, err
	}
	if healed {
		log.Printf("expired block of candidate %s cleared", candidateID)
	}
	return healed, nil
}

// ActionResult is what an admin action produced.
type ActionResult struct {
	Message       string
	BlockedUntil  *time.Time
	DurationHours float64
	Application   *model.Application
}

// Apply runs an admin action against an application.
func (e *Engine) Apply(ctx context.Context, applicationID uuid.UUID, adminID uuid.UUID, action Action) (*ActionResult, error) {
	switch a := action.(type) {
	case BlockAction:
		until, err := e.Block(ctx, applicationID, a.DurationHours, a.Reason, adminID)
		if err != nil {
			return nil, err
		}
		return &ActionResult{
			Message:       "Candidate blocked until " + until.Format(time.RFC3339),
			BlockedUntil:  &until,
			DurationHours: a.DurationHours,
		}, nil
	case UnblockAction:
		if err := e.Unblock(ctx, applicationID); err != nil {
			return nil, err
		}
		return &ActionResult{Message: "Candidate unblocked successfully. Must set new timeline."}, nil
	case StatusAction:
		app, err := e.UpdateStatus(ctx, applicationID, a.Status)
		if err != nil {
			return nil, err
		}
		return &ActionResult{Message: "Application status updated to " + a.Status, Application: app}, nil
	default:
		return nil, apperror.Validation("No valid action provided")
	}
}
