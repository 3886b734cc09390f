// Package progression implements the state machine that moves a candidate's
// application through the rounds of a process, and the blocking rules around it.
package progression

import (
	"context"

	"github.com/google/uuid"

	"actualize-backend/internal/model"
)

// Store runs units of work against persistent storage.
// Every engine operation happens inside exactly one InTx call.
type Store interface {
	InTx(ctx context.Context, fn func(tx Tx) error) error
}

// Tx is the view of storage inside one unit of work. Lock* methods hold the
// row until the unit of work ends, so concurrent operations on the same
// application run one after another.
type Tx interface {
	// LockApplication loads the application with its round progress.
	LockApplication(id uuid.UUID) (*model.Application, error)
	// LockCandidate loads the candidate.
	LockCandidate(id uuid.UUID) (*model.Candidate, error)
	// LockApplicationsByCandidate loads every application of a candidate.
	LockApplicationsByCandidate(candidateID uuid.UUID) ([]model.Application, error)
	// FindApplication returns the application of candidateID for processID, or a NotFound error.
	FindApplication(candidateID, processID uuid.UUID) (*model.Application, error)
	// Process returns the process with rounds sorted by order.
	Process(id uuid.UUID) (*model.Process, error)

	// CreateApplication inserts app unless the candidate already has an application for
	// the process, and reports whether it inserted.
	CreateApplication(app *model.Application) (bool, error)
	// UpsertRound inserts or replaces the progress entry keyed by (applicationID, RoundID).
	UpsertRound(applicationID uuid.UUID, rp *model.RoundProgress) error
	// SaveApplication writes status, current round and block columns.
	SaveApplication(app *model.Application) error
	// SaveCandidate writes the block columns.
	SaveCandidate(c *model.Candidate) error
}
