// Package application provides HTTP handlers for candidates working through a hiring process.
package application

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"actualize-backend/internal/model"
	"actualize-backend/internal/progression"
	"actualize-backend/internal/repository"
	"actualize-backend/internal/upload"
	"actualize-backend/internal/utilities"
)

// ApplicationController handles candidate application endpoints
type ApplicationController struct {
	Engine       *progression.Engine
	Processes    *repository.ProcessRepository
	Applications *repository.ApplicationRepository
	Uploads      *upload.Coordinator
}

// NewApplicationController creates a new instance of ApplicationController.
func NewApplicationController(
	engine *progression.Engine,
	processes *repository.ProcessRepository,
	applications *repository.ApplicationRepository,
	uploads *upload.Coordinator,
) *ApplicationController {
	return &ApplicationController{
		Engine:       engine,
		Processes:    processes,
		Applications: applications,
		Uploads:      uploads,
	}
}

type startRequest struct {
	ProcessID string `json:"processId" binding:"required"`
}

// ApplicationResponse is a candidate's application with its derived progress.
type ApplicationResponse struct {
	Application *model.Application   `json:"application"`
	Progress    progression.Progress `json:"progress"`
}

// SubmitResponse type for swagger docs
type SubmitResponse struct {
	Success        bool `json:"success"`
	NextRoundIndex *int `json:"nextRoundIndex"`
}

// RoundResponse type for swagger docs
type RoundResponse struct {
	Success bool                 `json:"success"`
	Round   *model.RoundProgress `json:"round"`
}

type timelineRequest struct {
	Timeline     string    `json:"timeline"`
	TimelineDate time.Time `json:"timelineDate" binding:"required"`
}

// GetProcess returns a published process with its rounds in order.
// @Summary Get a published process
// @Tags Application
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path string true "Process ID"
// @Success 200 {object} model.Process
// @Failure 400 {object} utilities.ErrorResponse "Invalid process id"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} auth.AccountBlockedResponse "Account is blocked"
// @Failure 404 {object} utilities.ErrorResponse "Process not found"
// @Router /processes/{id} [get]
func (ac *ApplicationController) GetProcess(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Invalid process id"})
		return
	}

	process, err := ac.Processes.GetPublished(c.Request.Context(), id)
	if err != nil {
		utilities.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, process)
}

// StartApplication creates the candidate's application for a process, or returns the existing one.
// @Summary Start an application
// @Description Returns 201 with a new application, or 200 when the candidate already applied
// @Tags Application
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param body body startRequest true "Process to apply to"
// @Success 200 {object} model.Application "Existing application"
// @Success 201 {object} model.Application "Application created"
// @Failure 400 {object} utilities.ErrorResponse "Invalid request body"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} auth.AccountBlockedResponse "Account is blocked"
// @Failure 404 {object} utilities.ErrorResponse "Process not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /applications [post]
func (ac *ApplicationController) StartApplication(c *gin.Context) {
	principal, err := utilities.ExtractPrincipal(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	var req startRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "processId is required"})
		return
	}
	processID, err := uuid.Parse(req.ProcessID)
	if err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Invalid process id"})
		return
	}

	app, created, err := ac.Engine.StartApplication(c.Request.Context(), principal.ID, processID)
	if err != nil {
		utilities.RespondError(c, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, app)
}

// CommunityGroupResponse type for swagger docs
type CommunityGroupResponse struct {
	GroupLink string `json:"groupLink"`
}

// GetCommunityGroup returns the community group link once the candidate completed a process.
// @Summary Get the community group link
// @Description Only candidates with a completed application receive the link
// @Tags Application
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Success 200 {object} CommunityGroupResponse
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "No completed application"
// @Failure 404 {object} utilities.ErrorResponse "Community group not configured"
// @Router /candidate/community-group [get]
func (ac *ApplicationController) GetCommunityGroup(c *gin.Context) {
	principal, err := utilities.ExtractPrincipal(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	completed, err := ac.Applications.HasCompleted(c.Request.Context(), principal.ID)
	if err != nil {
		utilities.RespondError(c, err)
		return
	}
	if !completed {
		c.JSON(http.StatusForbidden, utilities.ErrorResponse{
			Error: "Complete all rounds to access the community group",
		})
		return
	}

	group, err := ac.Processes.CommunityGroup(c.Request.Context())
	if err != nil {
		utilities.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, CommunityGroupResponse{GroupLink: group.GroupLink})
}

// GetApplication returns the candidate's own application and progress.
// @Summary Get own application
// @Tags Application
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param appId path string true "Application ID"
// @Success 200 {object} ApplicationResponse
// @Failure 400 {object} utilities.ErrorResponse "Invalid application id"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} auth.AccountBlockedResponse "Account is blocked"
// @Failure 404 {object} utilities.ErrorResponse "Application not found"
// @Router /applications/{appId} [get]
func (ac *ApplicationController) GetApplication(c *gin.Context) {
	principal, err := utilities.ExtractPrincipal(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}
	appID, ok := parseAppID(c)
	if !ok {
		return
	}

	app, err := ac.Applications.Get(c.Request.Context(), appID)
	if err != nil {
		utilities.RespondError(c, err)
		return
	}
	if app.CandidateID != principal.ID {
		c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Application not found"})
		return
	}

	process, err := ac.Processes.Get(c.Request.Context(), app.ProcessID)
	if err != nil {
		utilities.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, ApplicationResponse{
		Application: app,
		Progress:    progression.ComputeProgress(app, process),
	})
}

// SubmitRound submits the answers of a round and moves the application on.
// Files are sent as multipart parts named file_{fieldId} next to an answers part holding JSON.
// @Summary Submit a round
// @Tags Application
// @Accept json,mpfd
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param appId path string true "Application ID"
// @Param roundId path string true "Round ID"
// @Param body body progression.SubmitAction true "Answers of the round"
// @Success 200 {object} SubmitResponse "nextRoundIndex is null once every round is submitted"
// @Failure 400 {object} utilities.ErrorResponse "Invalid answers"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Application is blocked"
// @Failure 404 {object} utilities.ErrorResponse "Application or round not found"
// @Failure 413 {object} utilities.ErrorResponse "Upload too large"
// @Failure 500 {object} utilities.RetryResponse "Partial write, retry"
// @Failure 502 {object} upload.UploadErrorResponse "Upload failed"
// @Router /applications/{appId}/round/{roundId} [post]
func (ac *ApplicationController) SubmitRound(c *gin.Context) {
	principal, err := utilities.ExtractPrincipal(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}
	appID, ok := parseAppID(c)
	if !ok {
		return
	}

	action, attachments, ok := bindSubmission(c)
	if !ok {
		return
	}
	if err := action.Validate(); err != nil {
		utilities.RespondError(c, err)
		return
	}

	var next *int
	err = ac.Uploads.Commit(c.Request.Context(), action.Answers, attachments, func(answers []model.Answer) error {
		var submitErr error
		next, submitErr = ac.Engine.SubmitRound(c.Request.Context(), principal.ID, appID, c.Param("roundId"), answers)
		return submitErr
	})
	if err != nil {
		var uploadErr *upload.UploadError
		if errors.As(err, &uploadErr) {
			c.JSON(http.StatusBadGateway, uploadErr.Response())
			return
		}
		utilities.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, SubmitResponse{Success: true, NextRoundIndex: next})
}

// AutosaveRound merges partial answers into a round without submitting it.
// @Summary Autosave a round
// @Tags Application
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param appId path string true "Application ID"
// @Param roundId path string true "Round ID"
// @Param body body progression.AutosaveAction true "Answers to merge"
// @Success 200 {object} RoundResponse
// @Failure 400 {object} utilities.ErrorResponse "Invalid answers"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Application is blocked"
// @Failure 404 {object} utilities.ErrorResponse "Application or round not found"
// @Router /applications/{appId}/round/{roundId} [patch]
func (ac *ApplicationController) AutosaveRound(c *gin.Context) {
	principal, err := utilities.ExtractPrincipal(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}
	appID, ok := parseAppID(c)
	if !ok {
		return
	}

	var action progression.AutosaveAction
	if err := c.ShouldBindJSON(&action); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Invalid request body"})
		return
	}
	if err := action.Validate(); err != nil {
		utilities.RespondError(c, err)
		return
	}

	round, err := ac.Engine.AutosaveRound(c.Request.Context(), principal.ID, appID, c.Param("roundId"), action.Answers)
	if err != nil {
		utilities.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, RoundResponse{Success: true, Round: round})
}

// SetTimeline stores the deadline a candidate commits to for a round.
// @Summary Set own round deadline
// @Tags Application
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param appId path string true "Application ID"
// @Param roundId path string true "Round ID"
// @Param body body timelineRequest true "Deadline in RFC3339"
// @Success 200 {object} RoundResponse
// @Failure 400 {object} utilities.ErrorResponse "Deadline missing or in the past"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Application is blocked"
// @Failure 404 {object} utilities.ErrorResponse "Application or round not found"
// @Router /applications/{appId}/round/{roundId}/timeline [put]
func (ac *ApplicationController) SetTimeline(c *gin.Context) {
	principal, err := utilities.ExtractPrincipal(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}
	appID, ok := parseAppID(c)
	if !ok {
		return
	}

	var req timelineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "timelineDate is required"})
		return
	}

	round, err := ac.Engine.SetTimeline(c.Request.Context(), principal.ID, appID, c.Param("roundId"), req.Timeline, req.TimelineDate)
	if err != nil {
		utilities.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, RoundResponse{Success: true, Round: round})
}

func parseAppID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("appId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Invalid application id"})
		return uuid.Nil, false
	}
	return id, true
}

// bindSubmission reads a submission sent either as JSON or as a multipart form.
func bindSubmission(c *gin.Context) (progression.SubmitAction, []upload.Attachment, bool) {
	var action progression.SubmitAction

	if c.ContentType() != gin.MIMEMultipartPOSTForm {
		if err := c.ShouldBindJSON(&action); err != nil {
			c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Invalid request body"})
			return action, nil, false
		}
		return action, nil, true
	}

	form, err := c.MultipartForm()
	if err != nil {
		var maxBytesError *http.MaxBytesError
		if errors.As(err, &maxBytesError) {
			c.JSON(http.StatusRequestEntityTooLarge, utilities.ErrorResponse{Error: "Upload too large"})
			return action, nil, false
		}
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Invalid multipart form"})
		return action, nil, false
	}

	if raw := form.Value["answers"]; len(raw) > 0 && raw[0] != "" {
		if err := json.Unmarshal([]byte(raw[0]), &action.Answers); err != nil {
			c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "answers must be a JSON array"})
			return action, nil, false
		}
	}

	attachments, err := upload.FromMultipart(form)
	if err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: err.Error()})
		return action, nil, false
	}
	return action, attachments, true
}
