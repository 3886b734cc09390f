package auth

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"actualize-backend/internal/database"
	"actualize-backend/internal/model"
	"actualize-backend/internal/utilities"
)

// LocalAuthHandler holds DB reference for handler methods.
type LocalAuthHandler struct {
	DB   *database.DBinstanceStruct
	JWT  *JWTService
	Gate *Gate
}

// NewLocalAuthHandler creates a new instance of LocalAuthHandler.
func NewLocalAuthHandler(db *database.DBinstanceStruct, jwtService *JWTService, gate *Gate) *LocalAuthHandler {
	return &LocalAuthHandler{
		DB:   db,
		JWT:  jwtService,
		Gate: gate,
	}
}

type registerInfo struct {
	Name     string  `json:"name" binding:"required"`
	Email    string  `json:"email" binding:"required,email"`
	Phone    *string `json:"phone"`
	Password string  `json:"password" binding:"required"`
}

type loginInfo struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// CandidateRegisterHandler creates a candidate account.
// @Summary Register a candidate
// @Description Email must not already exist and password must longer or equal to 8 characters long
// @Tags Auth
// @Accept json
// @Produce json
// @Param Info body registerInfo true "Candidate information"
// @Success 201 {object} model.CandidateLoginResponse
// @Failure 400 {object} utilities.ErrorResponse "Info provided not met the condition"
// @Failure 409 {object} utilities.ErrorResponse "Email already registered"
// @Failure 500 {object} utilities.ErrorResponse "Database or password hashing error"
// @Router /auth/candidate/register [post]
func (lh *LocalAuthHandler) CandidateRegisterHandler(c *gin.Context) {
	var info registerInfo

	if err := c.ShouldBindJSON(&info); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: "Name, a valid email and password must be provided",
		})
		return
	}

	if len(info.Password) < 8 {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: "Password should longer or equal to 8 characters",
		})
		return
	}

	hashedPassword, err := utilities.HashPassword(info.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed hash password: %s", err.Error()),
		})
		return
	}

	candidate := model.Candidate{
		Name:     strings.TrimSpace(info.Name),
		Email:    utilities.NormalizeEmail(info.Email),
		Phone:    info.Phone,
		Password: hashedPassword,
	}
	if err := lh.DB.WithContext(c.Request.Context()).Create(&candidate).Error; err != nil {
		err = database.TranslateError(err, "Candidate not found")
		LogAuthAttempt("warning", "Local", "Fail", candidate.Email, "register: "+err.Error())
		utilities.RespondError(c, err)
		return
	}

	accessToken, err := lh.JWT.Issue(model.Principal{ID: candidate.ID, Role: model.RoleCandidate})
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to generate access token: %s", err.Error()),
		})
		return
	}

	LogAuthAttempt("info", "Local", "Success", candidate.Email, "register")
	c.JSON(http.StatusCreated, model.CandidateLoginResponse{
		Candidate:   candidate,
		AccessToken: accessToken,
		Message:     "Registration successful",
	})
}

// CandidateLoginHandler handles candidate login by email and password.
// A blocked candidate gets the reason, the remaining time and who to contact.
// @Summary Candidate login
// @Description Email must exist and password match. Blocked candidates receive an account_blocked payload.
// @Tags Auth
// @Accept json
// @Produce json
// @Param Info body loginInfo true "Credentials for login"
// @Success 200 {object} model.CandidateLoginResponse
// @Failure 400 {object} utilities.ErrorResponse "Info provided not met the condition"
// @Failure 401 {object} utilities.ErrorResponse "Email not exist or password incorrect"
// @Failure 403 {object} AccountBlockedResponse "Account is blocked"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /auth/candidate/login [post]
func (lh *LocalAuthHandler) CandidateLoginHandler(c *gin.Context) {
	var info loginInfo

	if err := c.ShouldBindJSON(&info); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: "Email or password is not provided",
		})
		return
	}
	email := utilities.NormalizeEmail(info.Email)

	var candidate model.Candidate
	err := lh.DB.WithContext(c.Request.Context()).Where("email = ?", email).First(&candidate).Error

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		LogAuthAttempt("warning", "Local", "Fail", email, "unknown email")
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{
			Error: "Email or password is incorrect",
		})
		return

	case err == nil:
		// Do nothing

	default:
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Database error: %s", err.Error()),
		})
		return
	}

	if !utilities.VerifyPassword(candidate.Password, info.Password) {
		LogAuthAttempt("warning", "Local", "Fail", email, "wrong password")
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{
			Error: "Email or password is incorrect",
		})
		return
	}

	if blocked := lh.Gate.Check(c.Request.Context(), &candidate); blocked != nil {
		LogAuthAttempt("info", "Local", "Fail", email, "account blocked")
		c.JSON(http.StatusForbidden, blocked)
		return
	}

	accessToken, err := lh.JWT.Issue(model.Principal{ID: candidate.ID, Role: model.RoleCandidate})
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to generate access token: %s", err.Error()),
		})
		return
	}

	LogAuthAttempt("info", "Local", "Success", email, "")
	c.JSON(http.StatusOK, model.CandidateLoginResponse{
		Candidate:   candidate,
		AccessToken: accessToken,
	})
}

// AdminLoginHandler handles admin login by email and password.
// @Summary Admin login
// @Tags Auth
// @Accept json
// @Produce json
// @Param Info body loginInfo true "Credentials for login"
// @Success 200 {object} model.AdminLoginResponse
// @Failure 400 {object} utilities.ErrorResponse "Info provided not met the condition"
// @Failure 401 {object} utilities.ErrorResponse "Email not exist or password incorrect"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /auth/admin/login [post]
func (lh *LocalAuthHandler) AdminLoginHandler(c *gin.Context) {
	var info loginInfo

	if err := c.ShouldBindJSON(&info); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: "Email or password is not provided",
		})
		return
	}
	email := utilities.NormalizeEmail(info.Email)

	var admin model.Admin
	err := lh.DB.WithContext(c.Request.Context()).Where("email = ?", email).First(&admin).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			LogAuthAttempt("warning", "Admin", "Fail", email, "unknown email")
			c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{
				Error: "Email or password is incorrect",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Database error: %s", err.Error()),
		})
		return
	}

	if !utilities.VerifyPassword(admin.Password, info.Password) {
		LogAuthAttempt("warning", "Admin", "Fail", email, "wrong password")
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{
			Error: "Email or password is incorrect",
		})
		return
	}

	accessToken, err := lh.JWT.Issue(model.Principal{ID: admin.ID, Role: model.RoleAdmin})
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to generate access token: %s", err.Error()),
		})
		return
	}

	LogAuthAttempt("info", "Admin", "Success", email, "")
	c.JSON(http.StatusOK, model.AdminLoginResponse{
		Admin:       admin,
		AccessToken: accessToken,
	})
}
