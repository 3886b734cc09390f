package progression

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"actualize-backend/internal/apperror"
	"actualize-backend/internal/model"
)

var fixedNow = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

type fixture struct {
	store     *memStore
	engine    *Engine
	process   model.Process
	r1, r2    model.Round
	candidate model.Candidate
	app       model.Application
}

// newFixture seeds a published process with two rounds stored out of order,
// a candidate and an application in the applied state.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{store: newMemStore()}

	f.r1 = model.Round{ID: uuid.New(), Title: "Screening", Type: model.RoundTypeForm, Order: 1}
	f.r2 = model.Round{ID: uuid.New(), Title: "Assignment", Type: model.RoundTypeHybrid, Order: 2}
	f.process = model.Process{
		ID:     uuid.New(),
		Title:  "Backend hiring",
		Status: model.ProcessStatusPublished,
		Rounds: []model.Round{f.r2, f.r1},
	}
	f.store.processes[f.process.ID] = f.process

	f.candidate = model.Candidate{ID: uuid.New(), Name: "Ada", Email: "ada@example.com"}
	f.store.candidates[f.candidate.ID] = f.candidate

	f.app = model.Application{
		ID:          uuid.New(),
		ProcessID:   f.process.ID,
		CandidateID: f.candidate.ID,
		Status:      model.ApplicationStatusApplied,
	}
	f.store.apps[f.app.ID] = f.app

	f.engine = NewEngine(f.store).WithClock(func() time.Time { return fixedNow })
	return f
}

func (f *fixture) submit(t *testing.T, round model.Round, answers ...model.Answer) *int {
	t.Helper()
	next, err := f.engine.SubmitRound(context.Background(), f.candidate.ID, f.app.ID, round.ID.String(), answers)
	require.NoError(t, err)
	return next
}

func ans(field string, value interface{}) model.Answer {
	return model.Answer{FieldID: field, Answer: value}
}

func TestSubmitRound_OutOfOrderStillOffersFirstRound(t *testing.T) {
	f := newFixture(t)

	next := f.submit(t, f.r2, ans("f2", "done"))
	require.NotNil(t, next)
	assert.Equal(t, 0, *next)

	app := f.store.app(f.app.ID)
	assert.Equal(t, model.ApplicationStatusInProgress, app.Status)
	require.NotNil(t, app.CurrentRoundTitle)
	assert.Equal(t, "Screening", *app.CurrentRoundTitle)
	rounds := app.RoundMap()
	assert.Equal(t, model.RoundStatusSubmitted, rounds[f.r2.ID.String()].Status)
	assert.Equal(t, model.RoundStatusInProgress, rounds[f.r1.ID.String()].Status)

	next = f.submit(t, f.r1, ans("f1", "yes"))
	assert.Nil(t, next)

	app = f.store.app(f.app.ID)
	assert.Equal(t, model.ApplicationStatusCompleted, app.Status)
	assert.Nil(t, app.CurrentRoundIndex)
	assert.Nil(t, app.CurrentRoundTitle)
}

func TestSubmitRound_AdvancesWithoutTouchingAnswers(t *testing.T) {
	f := newFixture(t)

	_, err := f.engine.AutosaveRound(context.Background(), f.candidate.ID, f.app.ID, f.r2.ID.String(), []model.Answer{ans("draft", "keep me")})
	require.NoError(t, err)

	next := f.submit(t, f.r1, ans("f1", "yes"))
	require.NotNil(t, next)
	assert.Equal(t, 1, *next)

	stored := f.store.app(f.app.ID)
	r2 := stored.RoundMap()[f.r2.ID.String()]
	assert.Equal(t, model.RoundStatusInProgress, r2.Status)
	assert.Equal(t, []model.Answer{ans("draft", "keep me")}, r2.Answers)
}

func TestSubmitRound_ReplaysNeverRegressCompletion(t *testing.T) {
	f := newFixture(t)
	f.submit(t, f.r1, ans("f1", "a"))
	f.submit(t, f.r2, ans("f2", "b"))

	next := f.submit(t, f.r1, ans("f1", "again"))
	assert.Nil(t, next)

	app := f.store.app(f.app.ID)
	assert.Equal(t, model.ApplicationStatusCompleted, app.Status)
	assert.Len(t, app.Rounds, 2, "round entries stay unique by round id")
	assert.Equal(t, []model.Answer{ans("f1", "again")}, app.RoundMap()[f.r1.ID.String()].Answers)
}

func TestSubmitRound_ReplacesAnswers(t *testing.T) {
	f := newFixture(t)
	_, err := f.engine.AutosaveRound(context.Background(), f.candidate.ID, f.app.ID, f.r1.ID.String(), []model.Answer{ans("a", 1), ans("b", 2)})
	require.NoError(t, err)

	f.submit(t, f.r1, ans("b", "final"))

	stored := f.store.app(f.app.ID)
	assert.Equal(t, []model.Answer{ans("b", "final")}, stored.RoundMap()[f.r1.ID.String()].Answers)
}

func TestUnknownRoundIsNotFound(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	unknown := uuid.NewString()

	_, err := f.engine.SubmitRound(ctx, f.candidate.ID, f.app.ID, unknown, nil)
	assert.True(t, apperror.Is(err, apperror.CodeNotFound))

	_, err = f.engine.AutosaveRound(ctx, f.candidate.ID, f.app.ID, unknown, []model.Answer{ans("x", 1)})
	assert.True(t, apperror.Is(err, apperror.CodeNotFound))

	_, err = f.engine.SetTimeline(ctx, f.candidate.ID, f.app.ID, unknown, "", fixedNow.Add(time.Hour))
	assert.True(t, apperror.Is(err, apperror.CodeNotFound))

	assert.Empty(t, f.store.app(f.app.ID).Rounds)
}

func TestOtherCandidatesApplicationIsNotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.engine.SubmitRound(context.Background(), uuid.New(), f.app.ID, f.r1.ID.String(), nil)
	assert.True(t, apperror.Is(err, apperror.CodeNotFound))

	_, err = f.engine.SubmitRound(context.Background(), f.candidate.ID, uuid.New(), f.r1.ID.String(), nil)
	assert.True(t, apperror.Is(err, apperror.CodeNotFound))
}

func TestMissingProcessIsNotFound(t *testing.T) {
	f := newFixture(t)
	delete(f.store.processes, f.process.ID)

	_, err := f.engine.SubmitRound(context.Background(), f.candidate.ID, f.app.ID, f.r1.ID.String(), nil)
	assert.True(t, apperror.Is(err, apperror.CodeNotFound))
}

func TestAutosave_MergesByField(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	round := f.r1.ID.String()

	_, err := f.engine.AutosaveRound(ctx, f.candidate.ID, f.app.ID, round, []model.Answer{ans("A", "x")})
	require.NoError(t, err)
	rp, err := f.engine.AutosaveRound(ctx, f.candidate.ID, f.app.ID, round, []model.Answer{ans("B", "y")})
	require.NoError(t, err)

	assert.Equal(t, []model.Answer{ans("A", "x"), ans("B", "y")}, rp.Answers)
	assert.Equal(t, model.RoundStatusInProgress, rp.Status)

	rp, err = f.engine.AutosaveRound(ctx, f.candidate.ID, f.app.ID, round, []model.Answer{ans("A", "z"), ans("A", "last")})
	require.NoError(t, err)
	assert.Equal(t, []model.Answer{ans("A", "last"), ans("B", "y")}, rp.Answers)
}

func TestAutosave_IsIdempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	round := f.r1.ID.String()
	batch := []model.Answer{ans("A", "x"), ans("B", []string{"1", "2"})}

	_, err := f.engine.AutosaveRound(ctx, f.candidate.ID, f.app.ID, round, batch)
	require.NoError(t, err)
	once := f.store.app(f.app.ID)

	_, err = f.engine.AutosaveRound(ctx, f.candidate.ID, f.app.ID, round, batch)
	require.NoError(t, err)
	twice := f.store.app(f.app.ID)

	assert.Equal(t, once.Rounds, twice.Rounds)
}

func TestAutosave_KeepsSubmittedStatus(t *testing.T) {
	f := newFixture(t)
	f.submit(t, f.r1, ans("A", "x"))

	rp, err := f.engine.AutosaveRound(context.Background(), f.candidate.ID, f.app.ID, f.r1.ID.String(), []model.Answer{ans("B", "y")})
	require.NoError(t, err)

	assert.Equal(t, model.RoundStatusSubmitted, rp.Status)
	assert.Equal(t, []model.Answer{ans("A", "x"), ans("B", "y")}, rp.Answers)
}

func TestAutosave_ConcurrentFieldsAreNotLost(t *testing.T) {
	f := newFixture(t)
	round := f.r1.ID.String()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := f.engine.AutosaveRound(context.Background(), f.candidate.ID, f.app.ID, round,
				[]model.Answer{ans(fmt.Sprintf("F%d", i), i)})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	stored := f.store.app(f.app.ID)
	assert.Len(t, stored.RoundMap()[round].Answers, 20)
}

func TestSetTimeline(t *testing.T) {
	f := newFixture(t)
	deadline := fixedNow.Add(48 * time.Hour)

	rp, err := f.engine.SetTimeline(context.Background(), f.candidate.ID, f.app.ID, f.r1.ID.String(), "in two days", deadline)
	require.NoError(t, err)
	require.NotNil(t, rp.TimelineDate)
	assert.True(t, deadline.Equal(*rp.TimelineDate))
	assert.Equal(t, model.RoundStatusInProgress, rp.Status)

	_, err = f.engine.SetTimeline(context.Background(), f.candidate.ID, f.app.ID, f.r1.ID.String(), "", fixedNow.Add(-time.Minute))
	assert.True(t, apperror.Is(err, apperror.CodeValidation))
}

func TestStartApplication(t *testing.T) {
	f := newFixture(t)
	other := model.Candidate{ID: uuid.New(), Email: "bob@example.com"}
	f.store.candidates[other.ID] = other

	app, created, err := f.engine.StartApplication(context.Background(), other.ID, f.process.ID)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, model.ApplicationStatusApplied, app.Status)
	require.NotNil(t, app.CurrentRoundTitle)
	assert.Equal(t, "Screening", *app.CurrentRoundTitle)

	again, created, err := f.engine.StartApplication(context.Background(), other.ID, f.process.ID)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, app.ID, again.ID)

	draft := model.Process{ID: uuid.New(), Title: "Draft", Status: model.ProcessStatusDraft}
	f.store.processes[draft.ID] = draft
	_, _, err = f.engine.StartApplication(context.Background(), other.ID, draft.ID)
	assert.True(t, apperror.Is(err, apperror.CodeNotFound))
}

func TestStartApplication_ConcurrentFirstCallReturnsExisting(t *testing.T) {
	f := newFixture(t)
	other := model.Candidate{ID: uuid.New(), Email: "carol@example.com"}
	f.store.candidates[other.ID] = other

	first, created, err := f.engine.StartApplication(context.Background(), other.ID, f.process.ID)
	require.NoError(t, err)
	require.True(t, created)

	f.store.missFind = 1
	again, created, err := f.engine.StartApplication(context.Background(), other.ID, f.process.ID)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, again.ID)

	count := 0
	for _, a := range f.store.apps {
		if a.CandidateID == other.ID {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestBlock_ClearsOnlyCurrentRoundTimeline(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.engine.SetTimeline(ctx, f.candidate.ID, f.app.ID, f.r1.ID.String(), "r1", fixedNow.Add(time.Hour))
	require.NoError(t, err)
	_, err = f.engine.SetTimeline(ctx, f.candidate.ID, f.app.ID, f.r2.ID.String(), "r2", fixedNow.Add(time.Hour))
	require.NoError(t, err)
	f.submit(t, f.r1)

	admin := uuid.New()
	f.store.writes = nil
	until, err := f.engine.Block(ctx, f.app.ID, 24, "missed deadline", admin)
	require.NoError(t, err)
	assert.Equal(t, fixedNow.Add(24*time.Hour), until)
	assert.Equal(t, []string{"candidate", "application"}, f.store.writes)

	app := f.store.app(f.app.ID)
	rounds := app.RoundMap()
	assert.Nil(t, rounds[f.r2.ID.String()].Timeline)
	assert.Nil(t, rounds[f.r2.ID.String()].TimelineDate)
	assert.NotNil(t, rounds[f.r1.ID.String()].Timeline)

	cand := f.store.candidate(f.candidate.ID)
	assert.True(t, cand.IsBlocked)
	assert.Equal(t, model.ApplicationStatusBlocked, app.Status)
	assert.Equal(t, *cand.BlockedUntil, *app.BlockedUntil)
	assert.Equal(t, "missed deadline", *app.BlockReason)
	assert.Equal(t, admin, *cand.BlockedBy)
}

func TestBlock_DefaultReasonAndValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for _, hours := range []float64{0, -1, 720.5} {
		_, err := f.engine.Block(ctx, f.app.ID, hours, "", uuid.New())
		assert.True(t, apperror.Is(err, apperror.CodeValidation), "hours %v", hours)
	}

	_, err := f.engine.Block(ctx, f.app.ID, 720, "  ", uuid.New())
	require.NoError(t, err)
	assert.Equal(t, DefaultBlockReason, *f.store.candidate(f.candidate.ID).BlockedReason)
}

func TestBlock_PartialFailureIsRetryRequired(t *testing.T) {
	f := newFixture(t)
	f.store.failSaveApplication = errors.New("connection reset")

	_, err := f.engine.Block(context.Background(), f.app.ID, 12, "", uuid.New())
	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.CodeRetryRequired))
	appErr, _ := apperror.As(err)
	assert.Equal(t, true, appErr.Details["retry"])

	assert.False(t, f.store.candidate(f.candidate.ID).IsBlocked)
	assert.Equal(t, model.ApplicationStatusApplied, f.store.app(f.app.ID).Status)
}

func TestBlockedApplicationRefusesCandidateWrites(t *testing.T) {
	f := newFixture(t)
	_, err := f.engine.Block(context.Background(), f.app.ID, 1, "", uuid.New())
	require.NoError(t, err)

	_, err = f.engine.SubmitRound(context.Background(), f.candidate.ID, f.app.ID, f.r1.ID.String(), nil)
	assert.True(t, apperror.Is(err, apperror.CodeForbidden))
}

func TestUnblock_AlwaysReturnsToInProgress(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.submit(t, f.r1)
	f.submit(t, f.r2)
	_, err := f.engine.Block(ctx, f.app.ID, 5, "", uuid.New())
	require.NoError(t, err)

	f.store.writes = nil
	require.NoError(t, f.engine.Unblock(ctx, f.app.ID))
	assert.Equal(t, []string{"application", "candidate"}, f.store.writes)

	app := f.store.app(f.app.ID)
	cand := f.store.candidate(f.candidate.ID)
	assert.Equal(t, model.ApplicationStatusInProgress, app.Status)
	assert.Nil(t, app.BlockedUntil)
	assert.Nil(t, app.BlockReason)
	assert.False(t, cand.IsBlocked)
	assert.Nil(t, cand.BlockedUntil)
}

func TestUnblock_PartialFailureIsRetryRequired(t *testing.T) {
	f := newFixture(t)
	_, err := f.engine.Block(context.Background(), f.app.ID, 5, "", uuid.New())
	require.NoError(t, err)

	f.store.failSaveCandidate = errors.New("deadlock")
	err = f.engine.Unblock(context.Background(), f.app.ID)
	assert.True(t, apperror.Is(err, apperror.CodeRetryRequired))
	assert.Equal(t, model.ApplicationStatusBlocked, f.store.app(f.app.ID).Status)
}

func TestUpdateStatus(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.engine.UpdateStatus(ctx, f.app.ID, "archived")
	assert.True(t, apperror.Is(err, apperror.CodeValidation))

	_, err = f.engine.UpdateStatus(ctx, f.app.ID, model.ApplicationStatusBlocked)
	assert.True(t, apperror.Is(err, apperror.CodeValidation))

	app, err := f.engine.UpdateStatus(ctx, f.app.ID, model.ApplicationStatusRejected)
	require.NoError(t, err)
	assert.Equal(t, model.ApplicationStatusRejected, app.Status)

	_, err = f.engine.Block(ctx, f.app.ID, 5, "", uuid.New())
	require.NoError(t, err)
	_, err = f.engine.UpdateStatus(ctx, f.app.ID, model.ApplicationStatusExpired)
	assert.True(t, apperror.Is(err, apperror.CodeValidation))
}

func TestExpireBlocks(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.engine.Block(ctx, f.app.ID, 2, "", uuid.New())
	require.NoError(t, err)

	healed, err := f.engine.ExpireBlocks(ctx, f.candidate.ID)
	require.NoError(t, err)
	assert.False(t, healed, "block still running")
	assert.True(t, f.store.candidate(f.candidate.ID).IsBlocked)

	f.engine.WithClock(func() time.Time { return fixedNow.Add(3 * time.Hour) })
	healed, err = f.engine.ExpireBlocks(ctx, f.candidate.ID)
	require.NoError(t, err)
	assert.True(t, healed)
	assert.False(t, f.store.candidate(f.candidate.ID).IsBlocked)
	assert.Equal(t, model.ApplicationStatusInProgress, f.store.app(f.app.ID).Status)
}

func TestApplyDispatchesActions(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	res, err := f.engine.Apply(ctx, f.app.ID, uuid.New(), BlockAction{DurationHours: 24})
	require.NoError(t, err)
	require.NotNil(t, res.BlockedUntil)
	assert.Equal(t, "Candidate blocked until "+res.BlockedUntil.Format(time.RFC3339), res.Message)
	assert.Equal(t, float64(24), res.DurationHours)

	res, err = f.engine.Apply(ctx, f.app.ID, uuid.New(), UnblockAction{})
	require.NoError(t, err)
	assert.Equal(t, "Candidate unblocked successfully. Must set new timeline.", res.Message)

	res, err = f.engine.Apply(ctx, f.app.ID, uuid.New(), StatusAction{Status: model.ApplicationStatusExpired})
	require.NoError(t, err)
	assert.Equal(t, model.ApplicationStatusExpired, res.Application.Status)

	_, err = f.engine.Apply(ctx, f.app.ID, uuid.New(), SubmitAction{})
	assert.True(t, apperror.Is(err, apperror.CodeValidation))
}
