package repository

import (
	"context"

	"github.com/google/uuid"

	"actualize-backend/internal/apperror"
	"actualize-backend/internal/database"
	"actualize-backend/internal/model"
)

// ProcessRepository reads and writes process definitions.
type ProcessRepository struct {
	DB *database.DBinstanceStruct
}

// NewProcessRepository creates a ProcessRepository bound to db.
func NewProcessRepository(db *database.DBinstanceStruct) *ProcessRepository {
	return &ProcessRepository{DB: db}
}

// Get loads a process with its rounds sorted, whatever its status.
func (r *ProcessRepository) Get(ctx context.Context, id uuid.UUID) (*model.Process, error) {
	return loadProcess(r.DB.WithContext(ctx), id)
}

// GetPublished loads a process a candidate is allowed to see.
func (r *ProcessRepository) GetPublished(ctx context.Context, id uuid.UUID) (*model.Process, error) {
	process, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if process.Status != model.ProcessStatusPublished {
		return nil, apperror.NotFound("Process not found")
	}
	return process, nil
}

// Create validates and stores a process with its rounds and fields.
func (r *ProcessRepository) Create(ctx context.Context, process *model.Process) error {
	if err := process.Validate(); err != nil {
		return apperror.NewError(apperror.CodeValidation, err.Error(), err)
	}
	if process.ID == uuid.Nil {
		process.ID = uuid.New()
	}
	for i := range process.Rounds {
		round := &process.Rounds[i]
		if round.ID == uuid.Nil {
			round.ID = uuid.New()
		}
		for j := range round.Fields {
			if round.Fields[j].ID == uuid.Nil {
				round.Fields[j].ID = uuid.New()
			}
		}
	}
	err := r.DB.WithContext(ctx).Create(process).Error
	return database.TranslateError(err, "Process not found")
}

// Clone copies the process into a new draft titled "<title> (Copy)".
func (r *ProcessRepository) Clone(ctx context.Context, id uuid.UUID, adminID uuid.UUID) (*model.Process, error) {
	source, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	clone := source.Clone("")
	clone.CreatedBy = &adminID
	if err := r.Create(ctx, &clone); err != nil {
		return nil, err
	}
	return &clone, nil
}

// AdminContacts lists the contacts shown to blocked candidates.
func (r *ProcessRepository) AdminContacts(ctx context.Context) ([]model.AdminContact, error) {
	contacts := []model.AdminContact{}
	err := r.DB.WithContext(ctx).Order("id").Find(&contacts).Error
	if err != nil {
		return nil, database.TranslateError(err, "Contact not found")
	}
	return contacts, nil
}

// CommunityGroup returns the group link offered to candidates who completed a process.
func (r *ProcessRepository) CommunityGroup(ctx context.Context) (*model.CommunityGroup, error) {
	var group model.CommunityGroup
	err := r.DB.WithContext(ctx).Order("id").First(&group).Error
	if err != nil {
		return nil, database.TranslateError(err, "Community group not configured")
	}
	return &group, nil
}
