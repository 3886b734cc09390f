package progression

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"actualize-backend/internal/apperror"
	"actualize-backend/internal/model"
)

// Engine applies candidate and admin operations to applications.
type Engine struct {
	store Store
	now   func() time.Time
}

// NewEngine creates an Engine on top of store.
func NewEngine(store Store) *Engine {
	return &Engine{store: store, now: time.Now}
}

// WithClock replaces the time source, for tests.
func (e *Engine) WithClock(now func() time.Time) *Engine {
	e.now = now
	return e
}

// Now returns the engine's current time.
func (e *Engine) Now() time.Time {
	return e.now()
}

// StartApplication returns the candidate's application for the process, creating it
// in the applied state on first contact. created is false when it already existed.
func (e *Engine) StartApplication(ctx context.Context, candidateID, processID uuid.UUID) (*model.Application, bool, error) {
	var (
		app     *model.Application
		created bool
	)
	err := e.store.InTx(ctx, func(tx Tx) error {
		process, err := tx.Process(processID)
		if err != nil {
			return err
		}
		if process.Status != model.ProcessStatusPublished {
			return apperror.NotFound("Process not found")
		}

		existing, err := tx.FindApplication(candidateID, processID)
		if err == nil {
			app = existing
			return nil
		}
		if !apperror.Is(err, apperror.CodeNotFound) {
			return err
		}

		app = &model.Application{
			ID:          uuid.New(),
			ProcessID:   processID,
			CandidateID: candidateID,
			Status:      model.ApplicationStatusApplied,
			Rounds:      []model.RoundProgress{},
		}
		if len(process.Rounds) > 0 {
			idx := 0
			title := process.Rounds[0].Title
			app.CurrentRoundIndex = &idx
			app.CurrentRoundTitle = &title
		}
		inserted, err := tx.CreateApplication(app)
		if err != nil {
			return err
		}
		if inserted {
			created = true
			return nil
		}

		// lost the race to a concurrent first call
		app, err = tx.FindApplication(candidateID, processID)
		return err
	})
	if err != nil {
		return nil, false, err
	}
	return app, created, nil
}

// candidateScope loads the application owned by candidateID together with its
// process and checks that roundID is one of the process rounds.
func (e *Engine) candidateScope(tx Tx, candidateID, applicationID uuid.UUID, roundID string) (*model.Application, *model.Process, int, error) {
	app, err := tx.LockApplication(applicationID)
	if err != nil {
		return nil, nil, -1, err
	}
	if app.CandidateID != candidateID {
		return nil, nil, -1, apperror.NotFound("Application not found")
	}
	if app.IsBlockedAt(e.now()) {
		return nil, nil, -1, apperror.NewError(apperror.CodeForbidden, "Application is blocked", nil)
	}

	process, err := tx.Process(app.ProcessID)
	if err != nil {
		return nil, nil, -1, err
	}

	idx := process.RoundIndex(roundID)
	if idx < 0 {
		log.Printf("round %s is not part of process %s (application %s)", roundID, process.ID, app.ID)
		return nil, nil, -1, apperror.NotFound("Round not found")
	}
	return app, process, idx, nil
}

// SubmitRound stores the answers of a round as submitted, then either completes the
// application or moves it to the first unsubmitted round in process order.
// It returns the index of that round, or nil when the application is completed.
func (e *Engine) SubmitRound(ctx context.Context, candidateID, applicationID uuid.UUID, roundID string, answers []model.Answer) (*int, error) {
	var next *int
	err := e.store.InTx(ctx, func(tx Tx) error {
		app, process, _, err := e.candidateScope(tx, candidateID, applicationID, roundID)
		if err != nil {
			return err
		}

		rp := findOrAppend(app, roundID)
		rp.Status = model.RoundStatusSubmitted
		rp.Answers = mergeAnswers(nil, answers)
		if err := tx.UpsertRound(app.ID, rp); err != nil {
			return err
		}

		next, err = e.advance(tx, app, process)
		return err
	})
	if err != nil {
		return nil, err
	}
	return next, nil
}

// advance recomputes completion and the current round after a submission.
func (e *Engine) advance(tx Tx, app *model.Application, process *model.Process) (*int, error) {
	if submittedCount(app, process) == len(process.Rounds) {
		app.Status = model.ApplicationStatusCompleted
		app.CurrentRoundIndex = nil
		app.CurrentRoundTitle = nil
		return nil, tx.SaveApplication(app)
	}

	idx := nextRound(app, process)
	round := process.Rounds[idx]
	roundID := round.ID.String()

	if rp, ok := app.RoundMap()[roundID]; !ok {
		created := findOrAppend(app, roundID)
		created.Status = model.RoundStatusInProgress
		if err := tx.UpsertRound(app.ID, created); err != nil {
			return nil, err
		}
	} else if rp.Status != model.RoundStatusInProgress && rp.Status != model.RoundStatusSubmitted {
		rp.Status = model.RoundStatusInProgress
		if err := tx.UpsertRound(app.ID, rp); err != nil {
			return nil, err
		}
	}

	title := round.Title
	app.CurrentRoundIndex = &idx
	app.CurrentRoundTitle = &title
	if app.Status == model.ApplicationStatusApplied {
		app.Status = model.ApplicationStatusInProgress
	}
	if err := tx.SaveApplication(app); err != nil {
		return nil, err
	}
	return &idx, nil
}

// AutosaveRound merges a partial set of answers into a round, keyed by field id.
// A submitted round stays submitted.
func (e *Engine) AutosaveRound(ctx context.Context, candidateID, applicationID uuid.UUID, roundID string, answers []model.Answer) (*model.RoundProgress, error) {
	var saved model.RoundProgress
	err := e.store.InTx(ctx, func(tx Tx) error {
		app, _, _, err := e.candidateScope(tx, candidateID, applicationID, roundID)
		if err != nil {
			return err
		}

		rp := findOrAppend(app, roundID)
		if rp.Status == "" {
			rp.Status = model.RoundStatusInProgress
		}
		rp.Answers = mergeAnswers(rp.Answers, answers)
		if err := tx.UpsertRound(app.ID, rp); err != nil {
			return err
		}
		saved = *rp
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &saved, nil
}

// SetTimeline records the candidate's own deadline for a round.
func (e *Engine) SetTimeline(ctx context.Context, candidateID, applicationID uuid.UUID, roundID string, label string, deadline time.Time) (*model.RoundProgress, error) {
	if !deadline.After(e.now()) {
		return nil, apperror.Validation("timelineDate must be in the future")
	}
	if label == "" {
		label = deadline.UTC().Format(time.RFC1123)
	}

	var saved model.RoundProgress
	err := e.store.InTx(ctx, func(tx Tx) error {
		app, _, _, err := e.candidateScope(tx, candidateID, applicationID, roundID)
		if err != nil {
			return err
		}

		rp := findOrAppend(app, roundID)
		if rp.Status == "" {
			rp.Status = model.RoundStatusInProgress
		}
		d := deadline.UTC()
		rp.Timeline = &label
		rp.TimelineDate = &d
		if err := tx.UpsertRound(app.ID, rp); err != nil {
			return err
		}
		saved = *rp
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &saved, nil
}

// findOrAppend returns the progress entry for roundID, appending an empty one if needed.
func findOrAppend(app *model.Application, roundID string) *model.RoundProgress {
	for i := range app.Rounds {
		if app.Rounds[i].RoundID == roundID {
			return &app.Rounds[i]
		}
	}
	app.Rounds = append(app.Rounds, model.RoundProgress{RoundID: roundID, Answers: []model.Answer{}})
	return &app.Rounds[len(app.Rounds)-1]
}

// mergeAnswers replaces entries of existing that share a field id with incoming and
// appends the rest. Within incoming the last entry for a field wins.
func mergeAnswers(existing, incoming []model.Answer) []model.Answer {
	out := make([]model.Answer, 0, len(existing)+len(incoming))
	pos := make(map[string]int, len(existing)+len(incoming))
	for _, a := range existing {
		if i, ok := pos[a.FieldID]; ok {
			out[i] = a
			continue
		}
		pos[a.FieldID] = len(out)
		out = append(out, a)
	}
	for _, a := range incoming {
		if i, ok := pos[a.FieldID]; ok {
			out[i] = a
			continue
		}
		pos[a.FieldID] = len(out)
		out = append(out, a)
	}
	return out
}

func retryRequired(op string, err error) error {
	return apperror.NewError(apperror.CodeRetryRequired,
		fmt.Sprintf("%s was only partially applied, retry the request", op), err).
		WithDetail("retry", true)
}
