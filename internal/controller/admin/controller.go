// Package admin provides HTTP handlers admins use to review and act on applications.
package admin

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"actualize-backend/internal/model"
	"actualize-backend/internal/progression"
	"actualize-backend/internal/repository"
	"actualize-backend/internal/utilities"
)

// AdminController handles admin application endpoints
type AdminController struct {
	Engine       *progression.Engine
	Processes    *repository.ProcessRepository
	Applications *repository.ApplicationRepository
}

// NewAdminController creates a new instance of AdminController.
func NewAdminController(
	engine *progression.Engine,
	processes *repository.ProcessRepository,
	applications *repository.ApplicationRepository,
) *AdminController {
	return &AdminController{
		Engine:       engine,
		Processes:    processes,
		Applications: applications,
	}
}

// ActionResponse type for swagger docs
type ActionResponse struct {
	Success            bool               `json:"success"`
	Message            string             `json:"message"`
	BlockedUntil       *time.Time         `json:"blockedUntil,omitempty"`
	BlockDurationHours *float64           `json:"blockDurationHours,omitempty"`
	Application        *model.Application `json:"application,omitempty"`
}

// ArchiveResponse type for swagger docs
type ArchiveResponse struct {
	Success bool                       `json:"success"`
	Message string                     `json:"message"`
	Archive *model.ArchivedApplication `json:"archive"`
}

// ApplicationListResponse type for swagger docs
type ApplicationListResponse struct {
	ProcessID    uuid.UUID             `json:"processId"`
	ProcessTitle string                `json:"processTitle"`
	Total        int                   `json:"total"`
	Applications []progression.Summary `json:"applications"`
}

// adminActionRequest documents the PATCH body. Only the fields of the chosen action are read.
type adminActionRequest struct {
	Action             string  `json:"action" example:"blockCandidate"`
	BlockDurationHours float64 `json:"blockDurationHours" example:"24"`
	Reason             string  `json:"reason"`
	Status             string  `json:"status" example:"rejected"`
}

// GetApplication returns an application with its candidate and derived progress.
// @Summary Get an application
// @Description Only admin can access this endpoint
// @Tags Admin
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param appId path string true "Application ID"
// @Success 200 {object} progression.Summary
// @Failure 400 {object} utilities.ErrorResponse "Invalid application id"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Do not logged in as admin"
// @Failure 404 {object} utilities.ErrorResponse "Application not found"
// @Router /admin/applications/{appId} [get]
func (ac *AdminController) GetApplication(c *gin.Context) {
	appID, ok := parseID(c, "appId", "Invalid application id")
	if !ok {
		return
	}

	app, err := ac.Applications.Get(c.Request.Context(), appID)
	if err != nil {
		utilities.RespondError(c, err)
		return
	}
	process, err := ac.Processes.Get(c.Request.Context(), app.ProcessID)
	if err != nil {
		utilities.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, progression.Summarize(app, process, ac.Engine.Now()))
}

// UpdateApplication blocks, unblocks or sets the status of an application.
// @Summary Act on an application
// @Description action is one of blockCandidate, unblockCandidate or status.
// @Description blockDurationHours defaults to 24 and must be at most 720. reason defaults to the missed timeline message.
// @Tags Admin
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param appId path string true "Application ID"
// @Param body body adminActionRequest true "Action to apply"
// @Success 200 {object} ActionResponse
// @Failure 400 {object} utilities.ErrorResponse "No valid action provided"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Do not logged in as admin"
// @Failure 404 {object} utilities.ErrorResponse "Application not found"
// @Failure 500 {object} utilities.RetryResponse "Partial write, retry"
// @Router /admin/applications/{appId} [patch]
func (ac *AdminController) UpdateApplication(c *gin.Context) {
	principal, err := utilities.ExtractPrincipal(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}
	appID, ok := parseID(c, "appId", "Invalid application id")
	if !ok {
		return
	}

	raw, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Invalid request body"})
		return
	}
	action, err := progression.DecodeAdminAction(raw)
	if err != nil {
		utilities.RespondError(c, err)
		return
	}

	result, err := ac.Engine.Apply(c.Request.Context(), appID, principal.ID, action)
	if err != nil {
		utilities.RespondError(c, err)
		return
	}
	log.Printf("admin %s applied %s to application %s", principal.ID, action.Kind(), appID)

	resp := ActionResponse{
		Success:      true,
		Message:      result.Message,
		BlockedUntil: result.BlockedUntil,
		Application:  result.Application,
	}
	if action.Kind() == progression.KindBlock {
		hours := result.DurationHours
		resp.BlockDurationHours = &hours
	}
	c.JSON(http.StatusOK, resp)
}

// ArchiveApplication keeps a snapshot of an application and deletes it.
// @Summary Archive and delete an application
// @Tags Admin
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param appId path string true "Application ID"
// @Success 200 {object} ArchiveResponse
// @Failure 400 {object} utilities.ErrorResponse "Invalid application id"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Do not logged in as admin"
// @Failure 404 {object} utilities.ErrorResponse "Application not found"
// @Router /admin/applications/{appId} [delete]
func (ac *AdminController) ArchiveApplication(c *gin.Context) {
	principal, err := utilities.ExtractPrincipal(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}
	appID, ok := parseID(c, "appId", "Invalid application id")
	if !ok {
		return
	}

	archive, err := ac.Applications.Archive(c.Request.Context(), appID, principal.ID)
	if err != nil {
		utilities.RespondError(c, err)
		return
	}
	log.Printf("admin %s archived application %s", principal.ID, appID)

	c.JSON(http.StatusOK, ArchiveResponse{
		Success: true,
		Message: "Application archived and deleted",
		Archive: archive,
	})
}

// ListApplications returns every application of a process with its derived progress.
// @Summary List applications of a process
// @Description Only admin can access this endpoint
// @Description If no status given, the server will return all applications
// @Tags Admin
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path string true "Process ID"
// @Param status query string false "Space separated statuses, case insensitive" example(blocked in-progress)
// @Success 200 {object} ApplicationListResponse
// @Failure 400 {object} utilities.ErrorResponse "Invalid process id"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Do not logged in as admin"
// @Failure 404 {object} utilities.ErrorResponse "Process not found"
// @Router /admin/processes/{id}/applications [get]
func (ac *AdminController) ListApplications(c *gin.Context) {
	processID, ok := parseID(c, "id", "Invalid process id")
	if !ok {
		return
	}

	process, err := ac.Processes.Get(c.Request.Context(), processID)
	if err != nil {
		utilities.RespondError(c, err)
		return
	}
	apps, err := ac.Applications.ListByProcess(c.Request.Context(), processID)
	if err != nil {
		utilities.RespondError(c, err)
		return
	}

	wanted := map[string]bool{}
	for _, s := range strings.Fields(c.Query("status")) {
		wanted[strings.ToLower(s)] = true
	}

	now := ac.Engine.Now()
	summaries := make([]progression.Summary, 0, len(apps))
	for i := range apps {
		if len(wanted) > 0 && !wanted[apps[i].Status] {
			continue
		}
		summaries = append(summaries, progression.Summarize(&apps[i], process, now))
	}

	c.JSON(http.StatusOK, ApplicationListResponse{
		ProcessID:    process.ID,
		ProcessTitle: process.Title,
		Total:        len(summaries),
		Applications: summaries,
	})
}

// CloneProcess copies a process and its rounds into a new draft.
// @Summary Clone a process
// @Tags Admin
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path string true "Process ID"
// @Success 201 {object} model.Process
// @Failure 400 {object} utilities.ErrorResponse "Invalid process id or process definition"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Do not logged in as admin"
// @Failure 404 {object} utilities.ErrorResponse "Process not found"
// @Router /admin/processes/{id}/clone [post]
func (ac *AdminController) CloneProcess(c *gin.Context) {
	principal, err := utilities.ExtractPrincipal(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}
	processID, ok := parseID(c, "id", "Invalid process id")
	if !ok {
		return
	}

	clone, err := ac.Processes.Clone(c.Request.Context(), processID, principal.ID)
	if err != nil {
		utilities.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, clone)
}

func parseID(c *gin.Context, param, message string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: message})
		return uuid.Nil, false
	}
	return id, true
}
