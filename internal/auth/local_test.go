package auth

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"

	"actualize-backend/internal/database"
	"actualize-backend/internal/model"
	"actualize-backend/internal/progression"
	"actualize-backend/internal/repository"
	"actualize-backend/internal/utilities"
)

var testDB *database.DBinstanceStruct
var testTeardown func(context.Context, ...testcontainers.TerminateOption) error

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)

	var err error
	testTeardown, testDB, err = database.GetTestDB()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start test db: %v\n", err)
		os.Exit(1)
	}

	code := m.Run()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := testTeardown(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "teardown error: %v\n", err)
	}
	os.Exit(code)
}

func newHandler() *LocalAuthHandler {
	engine := progression.NewEngine(repository.NewStore(testDB))
	gate := NewGate(engine, repository.NewProcessRepository(testDB), true)
	return NewLocalAuthHandler(testDB, NewTestJWTService(), gate)
}

// Helper: validate access token in response and return claims.
func assertValidAccessToken(t *testing.T, resp map[string]interface{}, role string) *Claims {
	t.Helper()
	tokenStr, ok := resp["access_token"].(string)
	require.True(t, ok, "access_token not a string")
	claims, err := NewTestJWTService().Verify(tokenStr)
	require.NoError(t, err)
	assert.Equal(t, role, claims.Role)
	assert.NotEmpty(t, claims.Subject, "token subject empty")
	return claims
}

func seedBlockedCandidate(t *testing.T, until *time.Time) model.Candidate {
	t.Helper()
	hashed, err := utilities.HashPassword(database.TestSeedPassword)
	require.NoError(t, err)
	reason := "Missed deadline"
	now := time.Now()
	c := model.Candidate{
		Name:          "Blocked",
		Email:         fmt.Sprintf("blocked-%s@example.com", uuid.NewString()),
		Password:      hashed,
		IsBlocked:     true,
		BlockedUntil:  until,
		BlockedReason: &reason,
		BlockedAt:     &now,
	}
	require.NoError(t, testDB.Create(&c).Error)
	return c
}

func TestRegisterCandidate(t *testing.T) {
	handler := newHandler()

	payload := map[string]string{
		"name":     "New Candidate",
		"email":    "New.Candidate@Example.com",
		"password": "password123",
	}
	rec, resp, err := utilities.SimulateAPICall(handler.CandidateRegisterHandler, "/register", http.MethodPost, payload)
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, rec.Code, "unexpected status, body: %s", rec.Body.String())

	claims := assertValidAccessToken(t, resp, model.RoleCandidate)
	candidate := resp["candidate"].(map[string]interface{})
	assert.Equal(t, candidate["id"], claims.Subject)
	assert.Equal(t, "new.candidate@example.com", candidate["email"])
	assert.NotContains(t, candidate, "password")

	// same email again
	rec, resp, err = utilities.SimulateAPICall(handler.CandidateRegisterHandler, "/register", http.MethodPost, payload)
	require.NoError(t, err)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "Record already exists", resp["error"])
}

func TestRegisterCandidateValidation(t *testing.T) {
	handler := newHandler()

	cases := []map[string]string{
		{"name": "x", "email": "not-an-email", "password": "password123"},
		{"name": "x", "email": "short@example.com", "password": "short"},
		{"email": "noname@example.com", "password": "password123"},
	}
	for _, payload := range cases {
		rec, _, err := utilities.SimulateAPICall(handler.CandidateRegisterHandler, "/register", http.MethodPost, payload)
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, rec.Code, payload)
	}
}

func TestCandidateLogin(t *testing.T) {
	handler := newHandler()

	rec, resp, err := utilities.SimulateAPICall(handler.CandidateLoginHandler, "/login", http.MethodPost, map[string]string{
		"email":    database.TestCandidate1.Email,
		"password": database.TestSeedPassword,
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	claims := assertValidAccessToken(t, resp, model.RoleCandidate)
	assert.Equal(t, database.TestCandidate1.ID.String(), claims.Subject)
}

func TestCandidateLoginRejectsBadCredentials(t *testing.T) {
	handler := newHandler()

	for _, body := range []map[string]string{
		{"email": database.TestCandidate1.Email, "password": "wrong-password"},
		{"email": "nobody@example.com", "password": database.TestSeedPassword},
	} {
		rec, resp, err := utilities.SimulateAPICall(handler.CandidateLoginHandler, "/login", http.MethodPost, body)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "Email or password is incorrect", resp["error"])
	}

	rec, _, err := utilities.SimulateAPICall(handler.CandidateLoginHandler, "/login", http.MethodPost, map[string]string{})
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBlockedCandidateLogin(t *testing.T) {
	handler := newHandler()
	until := time.Now().Add(26 * time.Hour)
	c := seedBlockedCandidate(t, &until)

	rec, resp, err := utilities.SimulateAPICall(handler.CandidateLoginHandler, "/login", http.MethodPost, map[string]string{
		"email":    c.Email,
		"password": database.TestSeedPassword,
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, AccountBlockedCode, resp["error"])
	assert.Equal(t, "Missed deadline", resp["reason"])
	assert.NotEmpty(t, resp["blockedUntil"])

	remaining := resp["timeRemaining"].(map[string]interface{})
	assert.Equal(t, float64(1), remaining["days"])

	contacts := resp["adminContacts"].([]interface{})
	require.NotEmpty(t, contacts)
	assert.Equal(t, "Hiring Desk", contacts[0].(map[string]interface{})["name"])
	assert.NotContains(t, resp, "access_token")
}

func TestPermanentlyBlockedCandidateLogin(t *testing.T) {
	handler := newHandler()
	c := seedBlockedCandidate(t, nil)

	rec, resp, err := utilities.SimulateAPICall(handler.CandidateLoginHandler, "/login", http.MethodPost, map[string]string{
		"email":    c.Email,
		"password": database.TestSeedPassword,
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Nil(t, resp["timeRemaining"])
}

func TestLapsedBlockLetsCandidateInAndHeals(t *testing.T) {
	handler := newHandler()
	until := time.Now().Add(-time.Minute)
	c := seedBlockedCandidate(t, &until)

	rec, _, err := utilities.SimulateAPICall(handler.CandidateLoginHandler, "/login", http.MethodPost, map[string]string{
		"email":    c.Email,
		"password": database.TestSeedPassword,
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var stored model.Candidate
	require.NoError(t, testDB.First(&stored, "id = ?", c.ID).Error)
	assert.False(t, stored.IsBlocked)
	assert.Nil(t, stored.BlockedReason)
}

func TestLapsedBlockWithoutHealing(t *testing.T) {
	handler := newHandler()
	handler.Gate.AutoHeal = false
	until := time.Now().Add(-time.Minute)
	c := seedBlockedCandidate(t, &until)

	rec, _, err := utilities.SimulateAPICall(handler.CandidateLoginHandler, "/login", http.MethodPost, map[string]string{
		"email":    c.Email,
		"password": database.TestSeedPassword,
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	var stored model.Candidate
	require.NoError(t, testDB.First(&stored, "id = ?", c.ID).Error)
	assert.True(t, stored.IsBlocked)
}

func TestAdminLogin(t *testing.T) {
	handler := newHandler()

	rec, resp, err := utilities.SimulateAPICall(handler.AdminLoginHandler, "/login", http.MethodPost, map[string]string{
		"email":    database.TestAdmin.Email,
		"password": database.TestSeedPassword,
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assertValidAccessToken(t, resp, model.RoleAdmin)

	// candidates are not admins
	rec, _, err = utilities.SimulateAPICall(handler.AdminLoginHandler, "/login", http.MethodPost, map[string]string{
		"email":    database.TestCandidate1.Email,
		"password": database.TestSeedPassword,
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
