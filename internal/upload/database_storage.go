package upload

import (
	"context"
	"fmt"
	"io"

	"gorm.io/gorm"

	"actualize-backend/internal/database"
	"actualize-backend/internal/model"
)

// FileRoute is the path attachments kept in the database are served from.
const FileRoute = "/api/v1/files/"

// DatabaseStorage keeps attachments in the files table when no bucket is configured.
type DatabaseStorage struct {
	DB *gorm.DB
}

// NewDatabaseStorage creates a DatabaseStorage.
func NewDatabaseStorage(db *gorm.DB) *DatabaseStorage {
	return &DatabaseStorage{DB: db}
}

// UploadFile stores data as a model.File and returns the route serving it.
func (s *DatabaseStorage) UploadFile(ctx context.Context, objectName, contentType string, data io.Reader) (string, error) {
	content, err := io.ReadAll(data)
	if err != nil {
		return "", fmt.Errorf("failed to read file: %v", err)
	}
	file := model.File{
		ObjectName:  objectName,
		ContentType: contentType,
		Content:     content,
	}
	if err := s.DB.WithContext(ctx).Create(&file).Error; err != nil {
		return "", database.TranslateError(err, "File not found")
	}
	return fmt.Sprintf("%s%d", FileRoute, file.ID), nil
}

// DeleteFile removes the file stored under objectName.
func (s *DatabaseStorage) DeleteFile(ctx context.Context, objectName string) error {
	err := s.DB.WithContext(ctx).Where("object_name = ?", objectName).Delete(&model.File{}).Error
	return database.TranslateError(err, "File not found")
}

// Get loads a stored file by id.
func (s *DatabaseStorage) Get(ctx context.Context, id uint) (*model.File, error) {
	var file model.File
	if err := s.DB.WithContext(ctx).First(&file, id).Error; err != nil {
		return nil, database.TranslateError(err, "File not found")
	}
	return &file, nil
}
