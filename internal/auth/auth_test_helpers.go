package auth

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"actualize-backend/internal/database"
	"actualize-backend/internal/utilities"
)

// TestIssuer is the issuer of tokens signed by NewTestJWTService.
const TestIssuer = "actualize-test"

// NewTestJWTService returns a JWTService with a fixed secret for tests.
func NewTestJWTService() *JWTService {
	return NewJWTService("test-secret-key", TestIssuer, time.Hour)
}

// GetAccessToken is a helper function to obtain a candidate access token by simulating a login API call.
// It returns the access token as a string and any error encountered during the process.
func GetAccessToken(
	t *testing.T,
	db *database.DBinstanceStruct,
	jwtService *JWTService,
	email string,
	password string,
) (string, error) {
	t.Helper()
	handler := NewLocalAuthHandler(db, jwtService, NewGate(nil, nil, false))
	return login(handler.CandidateLoginHandler, email, password)
}

// GetAdminAccessToken is GetAccessToken for admins.
func GetAdminAccessToken(
	t *testing.T,
	db *database.DBinstanceStruct,
	jwtService *JWTService,
	email string,
	password string,
) (string, error) {
	t.Helper()
	handler := NewLocalAuthHandler(db, jwtService, NewGate(nil, nil, false))
	return login(handler.AdminLoginHandler, email, password)
}

func login(handler func(*gin.Context), email, password string) (string, error) {
	rec, resp, err := utilities.SimulateAPICall(handler, "/login", http.MethodPost, map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return "", err
	}
	if rec.Code != http.StatusOK {
		return "", fmt.Errorf("login Failed: status %d, body: %s", rec.Code, rec.Body.String())
	}
	token, ok := resp["access_token"].(string)
	if !ok {
		return "", fmt.Errorf("login Failed: no access_token in response: %s", rec.Body.String())
	}
	return token, nil
}
