package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"actualize-backend/internal/apperror"
	"actualize-backend/internal/database"
	"actualize-backend/internal/model"
	"actualize-backend/internal/progression"
)

var testDB *database.DBinstanceStruct

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)

	teardown, db, err := database.GetTestDB()
	if err != nil {
		log.Fatalf("could not start postgres container: %v", err)
	}
	testDB = db

	code := m.Run()

	if teardown != nil {
		if err := teardown(context.Background()); err != nil {
			log.Fatalf("could not teardown postgres container: %v", err)
		}
	}
	os.Exit(code)
}

func newCandidate(t *testing.T) model.Candidate {
	t.Helper()
	c := model.Candidate{Name: "Repo Tester", Email: fmt.Sprintf("%s@example.com", uuid.NewString()), Password: "x"}
	require.NoError(t, testDB.Create(&c).Error)
	return c
}

func startApplication(t *testing.T, engine *progression.Engine, candidateID uuid.UUID) *model.Application {
	t.Helper()
	app, created, err := engine.StartApplication(context.Background(), candidateID, database.TestProcess.ID)
	require.NoError(t, err)
	require.True(t, created)
	return app
}

func roundID(i int) string {
	return database.TestProcess.Rounds[i].ID.String()
}

func TestStartApplicationIsIdempotent(t *testing.T) {
	engine := progression.NewEngine(NewStore(testDB))
	c := newCandidate(t)

	app := startApplication(t, engine, c.ID)
	again, created, err := engine.StartApplication(context.Background(), c.ID, database.TestProcess.ID)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, app.ID, again.ID)

	_, _, err = engine.StartApplication(context.Background(), c.ID, database.TestDraftProcess.ID)
	assert.True(t, apperror.Is(err, apperror.CodeNotFound))
}

func TestConcurrentStartApplicationIsIdempotent(t *testing.T) {
	engine := progression.NewEngine(NewStore(testDB))
	c := newCandidate(t)

	const callers = 8
	var wg sync.WaitGroup
	ids := make(chan uuid.UUID, callers)
	created := make(chan bool, callers)
	errs := make(chan error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			app, isNew, err := engine.StartApplication(context.Background(), c.ID, database.TestProcess.ID)
			errs <- err
			if err == nil {
				ids <- app.ID
				created <- isNew
			}
		}()
	}
	wg.Wait()
	close(errs)
	close(ids)
	close(created)

	for err := range errs {
		require.NoError(t, err)
	}
	seen := map[uuid.UUID]bool{}
	for id := range ids {
		seen[id] = true
	}
	assert.Len(t, seen, 1)
	newCount := 0
	for isNew := range created {
		if isNew {
			newCount++
		}
	}
	assert.Equal(t, 1, newCount)
}

func TestSubmitAndAutosavePersist(t *testing.T) {
	engine := progression.NewEngine(NewStore(testDB))
	c := newCandidate(t)
	app := startApplication(t, engine, c.ID)
	ctx := context.Background()

	_, err := engine.AutosaveRound(ctx, c.ID, app.ID, roundID(0), []model.Answer{{FieldID: "a", Answer: "draft"}})
	require.NoError(t, err)

	next, err := engine.SubmitRound(ctx, c.ID, app.ID, roundID(0), []model.Answer{{FieldID: "a", Answer: "final"}})
	require.NoError(t, err)
	require.NotNil(t, next)
	assert.Equal(t, 1, *next)

	stored, err := NewApplicationRepository(testDB).Get(ctx, app.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ApplicationStatusInProgress, stored.Status)
	assert.Equal(t, "Take-home", *stored.CurrentRoundTitle)

	rounds := stored.RoundMap()
	require.Contains(t, rounds, roundID(0))
	assert.Equal(t, model.RoundStatusSubmitted, rounds[roundID(0)].Status)
	assert.Equal(t, []model.Answer{{FieldID: "a", Answer: "final"}}, rounds[roundID(0)].Answers)
	assert.Equal(t, model.RoundStatusInProgress, rounds[roundID(1)].Status)

	var count int64
	require.NoError(t, testDB.Model(&model.RoundProgress{}).Where("application_id = ?", app.ID).Count(&count).Error)
	assert.Equal(t, int64(2), count)
}

func TestConcurrentAutosavesKeepEveryField(t *testing.T) {
	engine := progression.NewEngine(NewStore(testDB))
	c := newCandidate(t)
	app := startApplication(t, engine, c.ID)

	const writers = 8
	var wg sync.WaitGroup
	errs := make(chan error, writers)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := engine.AutosaveRound(context.Background(), c.ID, app.ID, roundID(1),
				[]model.Answer{{FieldID: fmt.Sprintf("f%d", i), Answer: "v"}})
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	stored, err := NewApplicationRepository(testDB).Get(context.Background(), app.ID)
	require.NoError(t, err)
	assert.Len(t, stored.RoundMap()[roundID(1)].Answers, writers)
}

func TestBlockAndUnblockPersistBothRecords(t *testing.T) {
	engine := progression.NewEngine(NewStore(testDB))
	c := newCandidate(t)
	app := startApplication(t, engine, c.ID)
	ctx := context.Background()

	_, err := engine.SetTimeline(ctx, c.ID, app.ID, roundID(0), "", time.Now().Add(time.Hour))
	require.NoError(t, err)

	until, err := engine.Block(ctx, app.ID, 2, "", database.TestAdmin.ID)
	require.NoError(t, err)

	var candidate model.Candidate
	require.NoError(t, testDB.First(&candidate, "id = ?", c.ID).Error)
	assert.True(t, candidate.IsBlocked)
	require.NotNil(t, candidate.BlockedUntil)
	assert.WithinDuration(t, until, *candidate.BlockedUntil, time.Second)

	stored, err := NewApplicationRepository(testDB).Get(ctx, app.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ApplicationStatusBlocked, stored.Status)
	assert.Equal(t, progression.DefaultBlockReason, *stored.BlockReason)
	assert.Nil(t, stored.RoundMap()[roundID(0)].TimelineDate)

	_, err = engine.AutosaveRound(ctx, c.ID, app.ID, roundID(0), []model.Answer{{FieldID: "a", Answer: "x"}})
	assert.True(t, apperror.Is(err, apperror.CodeForbidden))

	require.NoError(t, engine.Unblock(ctx, app.ID))
	require.NoError(t, testDB.First(&candidate, "id = ?", c.ID).Error)
	assert.False(t, candidate.IsBlocked)
	assert.Nil(t, candidate.BlockedUntil)

	stored, err = NewApplicationRepository(testDB).Get(ctx, app.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ApplicationStatusInProgress, stored.Status)
	assert.Nil(t, stored.BlockedBy)
}

func TestExpireBlocksHealsStorage(t *testing.T) {
	c := newCandidate(t)
	engine := progression.NewEngine(NewStore(testDB))
	app := startApplication(t, engine, c.ID)
	ctx := context.Background()

	_, err := engine.Block(ctx, app.ID, 1, "late", database.TestAdmin.ID)
	require.NoError(t, err)

	later := progression.NewEngine(NewStore(testDB)).WithClock(func() time.Time { return time.Now().Add(2 * time.Hour) })
	healed, err := later.ExpireBlocks(ctx, c.ID)
	require.NoError(t, err)
	assert.True(t, healed)

	var candidate model.Candidate
	require.NoError(t, testDB.First(&candidate, "id = ?", c.ID).Error)
	assert.False(t, candidate.IsBlocked)
}

func TestListByProcessAndArchive(t *testing.T) {
	engine := progression.NewEngine(NewStore(testDB))
	c := newCandidate(t)
	app := startApplication(t, engine, c.ID)
	repo := NewApplicationRepository(testDB)
	ctx := context.Background()

	apps, err := repo.ListByProcess(ctx, database.TestProcess.ID)
	require.NoError(t, err)
	found := false
	for _, a := range apps {
		if a.ID == app.ID {
			found = true
			assert.Equal(t, c.Email, a.Candidate.Email)
		}
	}
	assert.True(t, found)

	archived, err := repo.Archive(ctx, app.ID, database.TestAdmin.ID)
	require.NoError(t, err)
	assert.Equal(t, app.ID, archived.ApplicationID)

	var snapshot map[string]interface{}
	require.NoError(t, json.Unmarshal(archived.Snapshot, &snapshot))
	assert.Equal(t, app.ID.String(), snapshot["id"])

	_, err = repo.Get(ctx, app.ID)
	assert.True(t, apperror.Is(err, apperror.CodeNotFound))

	entries, err := repo.ListArchived(ctx, app.ID)
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	_, err = repo.Archive(ctx, app.ID, database.TestAdmin.ID)
	assert.True(t, apperror.Is(err, apperror.CodeNotFound))
}

func TestProcessRepository(t *testing.T) {
	repo := NewProcessRepository(testDB)
	ctx := context.Background()

	process, err := repo.GetPublished(ctx, database.TestProcess.ID)
	require.NoError(t, err)
	require.Len(t, process.Rounds, 3)
	assert.Equal(t, "Screening", process.Rounds[0].Title)
	assert.Equal(t, "Interview", process.Rounds[2].Title)

	_, err = repo.GetPublished(ctx, database.TestDraftProcess.ID)
	assert.True(t, apperror.Is(err, apperror.CodeNotFound))

	clone, err := repo.Clone(ctx, database.TestProcess.ID, database.TestAdmin.ID)
	require.NoError(t, err)
	assert.Equal(t, "Backend Engineer 2025 (Copy)", clone.Title)
	assert.Equal(t, model.ProcessStatusDraft, clone.Status)

	loaded, err := repo.Get(ctx, clone.ID)
	require.NoError(t, err)
	assert.Len(t, loaded.Rounds, 3)
	assert.Equal(t, database.TestProcess.ID, *loaded.ClonedFrom)

	bad := &model.Process{Title: "Broken", Status: model.ProcessStatusDraft, Rounds: []model.Round{{
		Title: "R", Type: model.RoundTypeForm, Order: 1,
		Fields: []model.Field{{Question: "Pick", SubType: model.FieldSingleChoice, Options: []string{"only"}}},
	}}}
	err = repo.Create(ctx, bad)
	assert.True(t, apperror.Is(err, apperror.CodeValidation))

	contacts, err := repo.AdminContacts(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, contacts)
	assert.Equal(t, "Hiring Desk", contacts[0].Name)
}

func TestHasCompletedAndCommunityGroup(t *testing.T) {
	engine := progression.NewEngine(NewStore(testDB))
	c := newCandidate(t)
	app := startApplication(t, engine, c.ID)
	repo := NewApplicationRepository(testDB)
	ctx := context.Background()

	done, err := repo.HasCompleted(ctx, c.ID)
	require.NoError(t, err)
	assert.False(t, done)

	for i := range database.TestProcess.Rounds {
		_, err := engine.SubmitRound(ctx, c.ID, app.ID, roundID(i), nil)
		require.NoError(t, err)
	}
	done, err = repo.HasCompleted(ctx, c.ID)
	require.NoError(t, err)
	assert.True(t, done)

	group, err := NewProcessRepository(testDB).CommunityGroup(ctx)
	require.NoError(t, err)
	assert.Equal(t, database.TestCommunity.GroupLink, group.GroupLink)
}
