package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"actualize-backend/internal/database"
	"actualize-backend/internal/model"
)

// ApplicationRepository serves the read side of applications and their archive.
type ApplicationRepository struct {
	DB *database.DBinstanceStruct
}

// NewApplicationRepository creates an ApplicationRepository bound to db.
func NewApplicationRepository(db *database.DBinstanceStruct) *ApplicationRepository {
	return &ApplicationRepository{DB: db}
}

// Get loads an application with its round progress and candidate.
func (r *ApplicationRepository) Get(ctx context.Context, id uuid.UUID) (*model.Application, error) {
	var app model.Application
	err := r.DB.WithContext(ctx).
		Preload("Candidate").
		Preload("Rounds", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		First(&app, "id = ?", id).Error
	if err != nil {
		return nil, database.TranslateError(err, "Application not found")
	}
	return &app, nil
}

// HasCompleted reports whether the candidate completed any application.
func (r *ApplicationRepository) HasCompleted(ctx context.Context, candidateID uuid.UUID) (bool, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.Application{}).
		Where("candidate_id = ? AND status = ?", candidateID, model.ApplicationStatusCompleted).
		Count(&count).Error
	if err != nil {
		return false, database.TranslateError(err, "Application not found")
	}
	return count > 0, nil
}

// ListByProcess lists every application of a process, oldest first.
func (r *ApplicationRepository) ListByProcess(ctx context.Context, processID uuid.UUID) ([]model.Application, error) {
	apps := []model.Application{}
	err := r.DB.WithContext(ctx).
		Preload("Candidate").
		Preload("Rounds", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		Where("process_id = ?", processID).
		Order("created_at").
		Find(&apps).Error
	if err != nil {
		return nil, database.TranslateError(err, "Process not found")
	}
	return apps, nil
}

// Archive copies the application into archived_applications and deletes it, in one transaction.
func (r *ApplicationRepository) Archive(ctx context.Context, id uuid.UUID, adminID uuid.UUID) (*model.ArchivedApplication, error) {
	var archived *model.ArchivedApplication
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var app model.Application
		if err := tx.Preload("Rounds").First(&app, "id = ?", id).Error; err != nil {
			return err
		}

		snapshot, err := json.Marshal(app)
		if err != nil {
			return err
		}
		archived = &model.ArchivedApplication{
			ApplicationID: app.ID,
			ProcessID:     app.ProcessID,
			CandidateID:   app.CandidateID,
			Snapshot:      datatypes.JSON(snapshot),
			ArchivedBy:    adminID,
			ArchivedAt:    time.Now().UTC(),
		}
		if err := tx.Create(archived).Error; err != nil {
			return err
		}
		if err := tx.Where("application_id = ?", app.ID).Delete(&model.RoundProgress{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Application{}, "id = ?", app.ID).Error
	})
	if err != nil {
		return nil, database.TranslateError(err, "Application not found")
	}
	return archived, nil
}

// ListArchived returns the archive entries of an application id.
func (r *ApplicationRepository) ListArchived(ctx context.Context, applicationID uuid.UUID) ([]model.ArchivedApplication, error) {
	entries := []model.ArchivedApplication{}
	err := r.DB.WithContext(ctx).Where("application_id = ?", applicationID).Order("archived_at").Find(&entries).Error
	return entries, database.TranslateError(err, "Application not found")
}
