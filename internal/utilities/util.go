// Package utilities contain utility code that use across the package
package utilities

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"actualize-backend/internal/apperror"
	"actualize-backend/internal/model"
)

// ErrorResponse type for swagger docs
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse type for swagger docs
type MessageResponse struct {
	Message string `json:"message"`
}

// RetryResponse is returned when a multi-record write stopped half way
type RetryResponse struct {
	Error string `json:"error"`
	Retry bool   `json:"retry"`
}

// ExtractPrincipal extracts the authenticated principal from Gin context.
// It does not abort the request; it returns an error when missing or invalid.
func ExtractPrincipal(c *gin.Context) (model.Principal, error) {
	p, _ := c.Get("principal")
	if p == nil {
		return model.Principal{}, errors.New("User information not provided")
	}

	principal, ok := p.(model.Principal)
	if !ok {
		return model.Principal{}, errors.New("Failed to assert type")
	}
	return principal, nil
}

// RespondError writes err as JSON with the status its code maps to.
// Internal errors are logged and their cause is hidden from the client.
func RespondError(c *gin.Context, err error) {
	status := apperror.HTTPStatus(err)
	appErr, ok := apperror.As(err)
	if !ok || status == http.StatusInternalServerError && appErr.Code == apperror.CodeInternal {
		log.Printf("internal error on %s %s: %v", c.Request.Method, c.FullPath(), err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{Error: "Internal server error"})
		return
	}

	if retry, _ := appErr.Details["retry"].(bool); retry {
		log.Printf("partial write on %s %s: %v", c.Request.Method, c.FullPath(), appErr.Err)
		c.AbortWithStatusJSON(status, RetryResponse{Error: appErr.Message, Retry: true})
		return
	}

	c.AbortWithStatusJSON(status, ErrorResponse{Error: appErr.Message})
}

// HashPassword hashes password with bcrypt at the default cost.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// VerifyPassword reports whether password matches the bcrypt hash.
func VerifyPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// NormalizeEmail lowercases and trims an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// CreateAdmin creates an admin with the given name, email and password in the provided database.
func CreateAdmin(db *gorm.DB, name, email, password string) (*model.Admin, error) {
	hashedPassword, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	admin := model.Admin{
		Name:     name,
		Email:    NormalizeEmail(email),
		Password: hashedPassword,
	}
	if err := db.Create(&admin).Error; err != nil {
		return nil, err
	}
	log.Printf("Admin %s created", admin.Email)
	return &admin, nil
}
