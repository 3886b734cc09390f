package progression

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"actualize-backend/internal/apperror"
	"actualize-backend/internal/model"
)

// memStore is an in-memory Store. InTx serializes units of work and rolls
// back every change when fn fails.
type memStore struct {
	mu         sync.Mutex
	processes  map[uuid.UUID]model.Process
	apps       map[uuid.UUID]model.Application
	candidates map[uuid.UUID]model.Candidate

	failSaveApplication error
	failSaveCandidate   error
	writes              []string
	// missFind makes that many FindApplication calls miss, as if another caller
	// inserted the application after the lookup.
	missFind int
}

func newMemStore() *memStore {
	return &memStore{
		processes:  map[uuid.UUID]model.Process{},
		apps:       map[uuid.UUID]model.Application{},
		candidates: map[uuid.UUID]model.Candidate{},
	}
}

func (s *memStore) InTx(ctx context.Context, fn func(tx Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}

	apps := make(map[uuid.UUID]model.Application, len(s.apps))
	for k, v := range s.apps {
		apps[k] = copyApp(v)
	}
	candidates := make(map[uuid.UUID]model.Candidate, len(s.candidates))
	for k, v := range s.candidates {
		candidates[k] = v
	}

	if err := fn(&memTx{s: s}); err != nil {
		s.apps = apps
		s.candidates = candidates
		return err
	}
	return nil
}

func (s *memStore) app(id uuid.UUID) model.Application {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyApp(s.apps[id])
}

func (s *memStore) candidate(id uuid.UUID) model.Candidate {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.candidates[id]
}

func copyApp(a model.Application) model.Application {
	rounds := make([]model.RoundProgress, len(a.Rounds))
	for i, rp := range a.Rounds {
		rp.Answers = append([]model.Answer(nil), rp.Answers...)
		rounds[i] = rp
	}
	a.Rounds = rounds
	return a
}

type memTx struct {
	s *memStore
}

func (t *memTx) LockApplication(id uuid.UUID) (*model.Application, error) {
	app, ok := t.s.apps[id]
	if !ok {
		return nil, apperror.NotFound("Application not found")
	}
	cp := copyApp(app)
	return &cp, nil
}

func (t *memTx) LockCandidate(id uuid.UUID) (*model.Candidate, error) {
	c, ok := t.s.candidates[id]
	if !ok {
		return nil, apperror.NotFound("Candidate not found")
	}
	return &c, nil
}

func (t *memTx) LockApplicationsByCandidate(candidateID uuid.UUID) ([]model.Application, error) {
	var out []model.Application
	for _, a := range t.s.apps {
		if a.CandidateID == candidateID {
			out = append(out, copyApp(a))
		}
	}
	return out, nil
}

func (t *memTx) FindApplication(candidateID, processID uuid.UUID) (*model.Application, error) {
	if t.s.missFind > 0 {
		t.s.missFind--
		return nil, apperror.NotFound("Application not found")
	}
	for _, a := range t.s.apps {
		if a.CandidateID == candidateID && a.ProcessID == processID {
			cp := copyApp(a)
			return &cp, nil
		}
	}
	return nil, apperror.NotFound("Application not found")
}

func (t *memTx) Process(id uuid.UUID) (*model.Process, error) {
	p, ok := t.s.processes[id]
	if !ok {
		return nil, apperror.NotFound("Process not found")
	}
	p.Rounds = append([]model.Round(nil), p.Rounds...)
	p.SortRounds()
	return &p, nil
}

func (t *memTx) CreateApplication(app *model.Application) (bool, error) {
	for _, a := range t.s.apps {
		if a.CandidateID == app.CandidateID && a.ProcessID == app.ProcessID {
			return false, nil
		}
	}
	t.s.apps[app.ID] = copyApp(*app)
	return true, nil
}

func (t *memTx) UpsertRound(applicationID uuid.UUID, rp *model.RoundProgress) error {
	app, ok := t.s.apps[applicationID]
	if !ok {
		return apperror.NotFound("Application not found")
	}
	entry := *rp
	entry.Answers = append([]model.Answer(nil), rp.Answers...)
	for i := range app.Rounds {
		if app.Rounds[i].RoundID == rp.RoundID {
			app.Rounds[i] = entry
			t.s.apps[applicationID] = app
			return nil
		}
	}
	app.Rounds = append(app.Rounds, entry)
	t.s.apps[applicationID] = app
	return nil
}

func (t *memTx) SaveApplication(app *model.Application) error {
	t.s.writes = append(t.s.writes, "application")
	if t.s.failSaveApplication != nil {
		return t.s.failSaveApplication
	}
	stored := t.s.apps[app.ID]
	stored.Status = app.Status
	stored.CurrentRoundIndex = app.CurrentRoundIndex
	stored.CurrentRoundTitle = app.CurrentRoundTitle
	stored.BlockedUntil = app.BlockedUntil
	stored.BlockReason = app.BlockReason
	stored.BlockedBy = app.BlockedBy
	stored.BlockedAt = app.BlockedAt
	t.s.apps[app.ID] = stored
	return nil
}

func (t *memTx) SaveCandidate(c *model.Candidate) error {
	t.s.writes = append(t.s.writes, "candidate")
	if t.s.failSaveCandidate != nil {
		return t.s.failSaveCandidate
	}
	t.s.candidates[c.ID] = *c
	return nil
}
