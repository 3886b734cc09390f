// Package repository implements persistence for processes and applications on top of gorm.
package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"actualize-backend/internal/database"
	"actualize-backend/internal/model"
	"actualize-backend/internal/progression"
)

// roundColumns are replaced when a round progress entry already exists
var roundColumns = []string{"status", "answers", "timeline", "timeline_date", "updated_at"}

// Store runs progression units of work inside postgres transactions.
type Store struct {
	DB *database.DBinstanceStruct
}

// NewStore creates a Store bound to db.
func NewStore(db *database.DBinstanceStruct) *Store {
	return &Store{DB: db}
}

// InTx runs fn in one transaction. The transaction rolls back when fn returns an error.
func (s *Store) InTx(ctx context.Context, fn func(tx progression.Tx) error) error {
	err := s.DB.WithContext(ctx).Transaction(func(db *gorm.DB) error {
		return fn(&gormTx{db: db})
	})
	if err != nil {
		return database.TranslateError(err, "Record not found")
	}
	return nil
}

type gormTx struct {
	db *gorm.DB
}

func (t *gormTx) locked() *gorm.DB {
	return t.db.Clauses(clause.Locking{Strength: "UPDATE"})
}

func (t *gormTx) LockApplication(id uuid.UUID) (*model.Application, error) {
	var app model.Application
	if err := t.locked().First(&app, "id = ?", id).Error; err != nil {
		return nil, database.TranslateError(err, "Application not found")
	}
	if err := t.loadRounds(&app); err != nil {
		return nil, err
	}
	return &app, nil
}

func (t *gormTx) LockCandidate(id uuid.UUID) (*model.Candidate, error) {
	var candidate model.Candidate
	if err := t.locked().First(&candidate, "id = ?", id).Error; err != nil {
		return nil, database.TranslateError(err, "Candidate not found")
	}
	return &candidate, nil
}

func (t *gormTx) LockApplicationsByCandidate(candidateID uuid.UUID) ([]model.Application, error) {
	var apps []model.Application
	if err := t.locked().Where("candidate_id = ?", candidateID).Order("created_at").Find(&apps).Error; err != nil {
		return nil, database.TranslateError(err, "Application not found")
	}
	for i := range apps {
		if err := t.loadRounds(&apps[i]); err != nil {
			return nil, err
		}
	}
	return apps, nil
}

func (t *gormTx) FindApplication(candidateID, processID uuid.UUID) (*model.Application, error) {
	var app model.Application
	err := t.db.Where("candidate_id = ? AND process_id = ?", candidateID, processID).First(&app).Error
	if err != nil {
		return nil, database.TranslateError(err, "Application not found")
	}
	if err := t.loadRounds(&app); err != nil {
		return nil, err
	}
	return &app, nil
}

func (t *gormTx) Process(id uuid.UUID) (*model.Process, error) {
	return loadProcess(t.db, id)
}

func (t *gormTx) CreateApplication(app *model.Application) (bool, error) {
	result := t.db.Omit(clause.Associations).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "process_id"}, {Name: "candidate_id"}},
			DoNothing: true,
		}).
		Create(app)
	if result.Error != nil {
		return false, database.TranslateError(result.Error, "Process not found")
	}
	if result.RowsAffected == 0 {
		return false, nil
	}
	for i := range app.Rounds {
		if err := t.UpsertRound(app.ID, &app.Rounds[i]); err != nil {
			return false, err
		}
	}
	return true, nil
}

func (t *gormTx) UpsertRound(applicationID uuid.UUID, rp *model.RoundProgress) error {
	rp.ApplicationID = applicationID
	rp.UpdatedAt = time.Now().UTC()
	row := *rp
	row.ID = 0
	err := t.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "application_id"}, {Name: "round_id"}},
		DoUpdates: clause.AssignmentColumns(roundColumns),
	}).Create(&row).Error
	if err != nil {
		return database.TranslateError(err, "Application not found")
	}
	rp.ID = row.ID
	return nil
}

func (t *gormTx) SaveApplication(app *model.Application) error {
	app.UpdatedAt = time.Now().UTC()
	res := t.db.Model(&model.Application{ID: app.ID}).Updates(map[string]interface{}{
		"status":              app.Status,
		"current_round_index": app.CurrentRoundIndex,
		"current_round_title": app.CurrentRoundTitle,
		"blocked_until":       app.BlockedUntil,
		"block_reason":        app.BlockReason,
		"blocked_by":          app.BlockedBy,
		"blocked_at":          app.BlockedAt,
		"updated_at":          app.UpdatedAt,
	})
	if res.Error != nil {
		return database.TranslateError(res.Error, "Application not found")
	}
	if res.RowsAffected == 0 {
		return database.TranslateError(gorm.ErrRecordNotFound, "Application not found")
	}
	return nil
}

func (t *gormTx) SaveCandidate(c *model.Candidate) error {
	c.UpdatedAt = time.Now().UTC()
	res := t.db.Model(&model.Candidate{ID: c.ID}).Updates(map[string]interface{}{
		"is_blocked":     c.IsBlocked,
		"blocked_until":  c.BlockedUntil,
		"blocked_reason": c.BlockedReason,
		"blocked_by":     c.BlockedBy,
		"blocked_at":     c.BlockedAt,
		"updated_at":     c.UpdatedAt,
	})
	if res.Error != nil {
		return database.TranslateError(res.Error, "Candidate not found")
	}
	if res.RowsAffected == 0 {
		return database.TranslateError(gorm.ErrRecordNotFound, "Candidate not found")
	}
	return nil
}

func (t *gormTx) loadRounds(app *model.Application) error {
	app.Rounds = []model.RoundProgress{}
	err := t.db.Where("application_id = ?", app.ID).Order("id").Find(&app.Rounds).Error
	return database.TranslateError(err, "Application not found")
}

// loadProcess loads a process with its rounds and fields in display order.
func loadProcess(db *gorm.DB, id uuid.UUID) (*model.Process, error) {
	var process model.Process
	if err := db.Preload("Rounds.Fields").First(&process, "id = ?", id).Error; err != nil {
		return nil, database.TranslateError(err, "Process not found")
	}
	process.SortRounds()
	return &process, nil
}
