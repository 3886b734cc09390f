// Package upload stores the files attached to a round submission and turns them into answers.
package upload

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"actualize-backend/internal/model"
)

// Attachment categories, which are also the object name prefixes.
const (
	CategoryImage = "images"
	CategoryAudio = "audio"
	CategoryFile  = "files"
)

// FilePartPrefix is the multipart part name prefix of an attachment, followed by the field id.
const FilePartPrefix = "file_"

// StorageClient is where attachment bytes end up.
type StorageClient interface {
	UploadFile(ctx context.Context, objectName, contentType string, data io.Reader) (string, error)
	DeleteFile(ctx context.Context, objectName string) error
}

// Attachment is one file sent for a field.
type Attachment struct {
	FieldID     string
	Filename    string
	ContentType string
	Data        []byte
}

// UploadError names the attachment that could not be stored.
type UploadError struct {
	FieldID  string
	Filename string
	Err      error
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("failed to upload %s for field %s: %v", e.Filename, e.FieldID, e.Err)
}

func (e *UploadError) Unwrap() error {
	return e.Err
}

// UploadErrorResponse type for swagger docs
type UploadErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	File    string `json:"file"`
}

// Response builds the body sent to the client for e.
func (e *UploadError) Response() UploadErrorResponse {
	return UploadErrorResponse{
		Error:   "Upload failed",
		Message: e.Err.Error(),
		File:    e.Filename,
	}
}

// Classify picks the category of a file from its MIME type.
func Classify(contentType string) string {
	ct := strings.ToLower(strings.TrimSpace(contentType))
	switch {
	case strings.HasPrefix(ct, "image/"):
		return CategoryImage
	case strings.HasPrefix(ct, "audio/"):
		return CategoryAudio
	default:
		return CategoryFile
	}
}

// ObjectName returns a fresh object name for a file in its category.
func ObjectName(contentType, filename string) string {
	return fmt.Sprintf("%s/%s%s", Classify(contentType), uuid.NewString(), strings.ToLower(filepath.Ext(filename)))
}

// Coordinator uploads every attachment of a submission or none of them.
type Coordinator struct {
	Storage StorageClient
	Timeout time.Duration
}

// NewCoordinator creates a Coordinator. timeout bounds each single upload.
func NewCoordinator(storage StorageClient, timeout time.Duration) *Coordinator {
	return &Coordinator{Storage: storage, Timeout: timeout}
}

// Resolve uploads the attachments and puts their URLs into the answers of their fields,
// appending an answer when the field had none. When one upload fails, the objects
// already stored for this call are deleted and an *UploadError is returned.
func (co *Coordinator) Resolve(ctx context.Context, answers []model.Answer, attachments []Attachment) ([]model.Answer, error) {
	resolved, _, err := co.resolve(ctx, answers, attachments)
	return resolved, err
}

// Commit resolves the attachments and passes the answers to commit. When commit
// fails, every object stored for this call is deleted and commit's error is returned.
func (co *Coordinator) Commit(ctx context.Context, answers []model.Answer, attachments []Attachment, commit func([]model.Answer) error) error {
	resolved, stored, err := co.resolve(ctx, answers, attachments)
	if err != nil {
		return err
	}
	if err := commit(resolved); err != nil {
		co.cleanup(stored)
		return err
	}
	return nil
}

func (co *Coordinator) resolve(ctx context.Context, answers []model.Answer, attachments []Attachment) ([]model.Answer, []string, error) {
	if len(attachments) == 0 {
		return answers, nil, nil
	}

	resolved := make([]model.Answer, len(answers))
	copy(resolved, answers)

	var stored []string
	for _, a := range attachments {
		objectName := ObjectName(a.ContentType, a.Filename)
		url, err := co.upload(ctx, objectName, a)
		if err != nil {
			co.cleanup(stored)
			return nil, nil, &UploadError{FieldID: a.FieldID, Filename: a.Filename, Err: err}
		}
		stored = append(stored, objectName)
		resolved = setAnswer(resolved, a.FieldID, url)
	}
	return resolved, stored, nil
}

func (co *Coordinator) upload(ctx context.Context, objectName string, a Attachment) (string, error) {
	if co.Storage == nil {
		return "", fmt.Errorf("no storage configured")
	}
	if co.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, co.Timeout)
		defer cancel()
	}
	return co.Storage.UploadFile(ctx, objectName, a.ContentType, bytes.NewReader(a.Data))
}

// cleanup runs on its own context so a cancelled request still removes what it stored.
func (co *Coordinator) cleanup(objects []string) {
	for _, name := range objects {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := co.Storage.DeleteFile(ctx, name); err != nil {
			log.Printf("failed to delete orphaned upload %s: %v", name, err)
		}
		cancel()
	}
}

func setAnswer(answers []model.Answer, fieldID string, value string) []model.Answer {
	for i := range answers {
		if answers[i].FieldID == fieldID {
			answers[i].Answer = value
			return answers
		}
	}
	return append(answers, model.Answer{FieldID: fieldID, Answer: value})
}
