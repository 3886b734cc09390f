package upload

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"actualize-backend/internal/model"
)

type mockStorageClient struct {
	mu       sync.Mutex
	uploaded map[string][]byte
	types    map[string]string
	deleted  []string
	// failOn makes the upload of any object with this prefix fail.
	failOn    string
	uploadErr error
	delay     time.Duration
}

func newMockStorageClient() *mockStorageClient {
	return &mockStorageClient{
		uploaded: make(map[string][]byte),
		types:    make(map[string]string),
	}
}

func (m *mockStorageClient) UploadFile(ctx context.Context, objectName, contentType string, data io.Reader) (string, error) {
	if m.delay > 0 {
		select {
		case <-time.After(m.delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	if m.failOn != "" && strings.HasPrefix(objectName, m.failOn) {
		return "", m.uploadErr
	}
	buf, err := io.ReadAll(data)
	if err != nil {
		return "", err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.uploaded[objectName] = buf
	m.types[objectName] = contentType
	return "https://cdn.example.com/" + objectName, nil
}

func (m *mockStorageClient) DeleteFile(_ context.Context, objectName string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.uploaded, objectName)
	m.deleted = append(m.deleted, objectName)
	return nil
}

func TestClassify(t *testing.T) {
	cases := map[string]string{
		"image/png":       CategoryImage,
		"IMAGE/JPEG":      CategoryImage,
		"audio/mpeg":      CategoryAudio,
		"application/pdf": CategoryFile,
		"video/mp4":       CategoryFile,
		"":                CategoryFile,
	}
	for contentType, want := range cases {
		assert.Equal(t, want, Classify(contentType), contentType)
	}
}

func TestObjectNameKeepsExtension(t *testing.T) {
	name := ObjectName("application/pdf", "Resume.PDF")
	assert.True(t, strings.HasPrefix(name, CategoryFile+"/"))
	assert.True(t, strings.HasSuffix(name, ".pdf"))
	assert.NotEqual(t, name, ObjectName("application/pdf", "Resume.PDF"))
}

func TestResolveReplacesAndAppends(t *testing.T) {
	storage := newMockStorageClient()
	co := NewCoordinator(storage, time.Second)

	answers := []model.Answer{
		{FieldID: "cv", Answer: "placeholder"},
		{FieldID: "notes", Answer: "hello"},
	}
	resolved, err := co.Resolve(context.Background(), answers, []Attachment{
		{FieldID: "cv", Filename: "cv.pdf", ContentType: "application/pdf", Data: []byte("pdf")},
		{FieldID: "voice", Filename: "intro.mp3", ContentType: "audio/mpeg", Data: []byte("mp3")},
	})
	require.NoError(t, err)
	require.Len(t, resolved, 3)

	assert.True(t, strings.HasPrefix(resolved[0].Answer.(string), "https://cdn.example.com/files/"))
	assert.Equal(t, "hello", resolved[1].Answer)
	assert.Equal(t, "voice", resolved[2].FieldID)
	assert.True(t, strings.HasPrefix(resolved[2].Answer.(string), "https://cdn.example.com/audio/"))

	// the caller's slice is left untouched
	assert.Equal(t, "placeholder", answers[0].Answer)
	assert.Len(t, storage.uploaded, 2)
}

func TestResolveWithoutAttachments(t *testing.T) {
	co := NewCoordinator(nil, time.Second)
	answers := []model.Answer{{FieldID: "a", Answer: "b"}}

	resolved, err := co.Resolve(context.Background(), answers, nil)
	require.NoError(t, err)
	assert.Equal(t, answers, resolved)
}

func TestResolveFailureRemovesStoredObjects(t *testing.T) {
	storage := newMockStorageClient()
	storage.failOn = CategoryImage
	storage.uploadErr = errors.New("bucket unavailable")
	co := NewCoordinator(storage, time.Second)

	_, err := co.Resolve(context.Background(), nil, []Attachment{
		{FieldID: "doc", Filename: "doc.pdf", ContentType: "application/pdf", Data: []byte("a")},
		{FieldID: "photo", Filename: "me.png", ContentType: "image/png", Data: []byte("b")},
	})
	require.Error(t, err)

	var uploadErr *UploadError
	require.True(t, errors.As(err, &uploadErr))
	assert.Equal(t, "photo", uploadErr.FieldID)
	assert.Equal(t, "me.png", uploadErr.Filename)

	resp := uploadErr.Response()
	assert.Equal(t, "Upload failed", resp.Error)
	assert.Equal(t, "bucket unavailable", resp.Message)
	assert.Equal(t, "me.png", resp.File)

	assert.Empty(t, storage.uploaded)
	require.Len(t, storage.deleted, 1)
	assert.True(t, strings.HasPrefix(storage.deleted[0], CategoryFile+"/"))
}

func TestResolveAppliesPerFileTimeout(t *testing.T) {
	storage := newMockStorageClient()
	storage.delay = time.Second
	co := NewCoordinator(storage, 20*time.Millisecond)

	_, err := co.Resolve(context.Background(), nil, []Attachment{
		{FieldID: "slow", Filename: "big.bin", ContentType: "application/octet-stream", Data: []byte("x")},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}

func TestResolveWithoutStorage(t *testing.T) {
	co := NewCoordinator(nil, time.Second)
	_, err := co.Resolve(context.Background(), nil, []Attachment{{FieldID: "a", Filename: "a.txt"}})

	var uploadErr *UploadError
	require.True(t, errors.As(err, &uploadErr))
	assert.Equal(t, "a", uploadErr.FieldID)
}

func TestCommitKeepsUploadsOnSuccess(t *testing.T) {
	storage := newMockStorageClient()
	co := NewCoordinator(storage, time.Second)

	var got []model.Answer
	err := co.Commit(context.Background(), nil, []Attachment{
		{FieldID: "cv", Filename: "cv.pdf", ContentType: "application/pdf", Data: []byte("pdf")},
	}, func(answers []model.Answer) error {
		got = answers
		return nil
	})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Len(t, storage.uploaded, 1)
	assert.Empty(t, storage.deleted)
}

func TestCommitDeletesUploadsWhenCommitFails(t *testing.T) {
	storage := newMockStorageClient()
	co := NewCoordinator(storage, time.Second)
	rejected := errors.New("round not found")

	err := co.Commit(context.Background(), nil, []Attachment{
		{FieldID: "a", Filename: "a.png", ContentType: "image/png", Data: []byte("a")},
		{FieldID: "b", Filename: "b.mp3", ContentType: "audio/mpeg", Data: []byte("b")},
	}, func([]model.Answer) error { return rejected })

	assert.ErrorIs(t, err, rejected)
	assert.Empty(t, storage.uploaded)
	assert.Len(t, storage.deleted, 2)
}

func TestCommitSkipsCallbackWhenUploadFails(t *testing.T) {
	storage := newMockStorageClient()
	storage.failOn = CategoryImage
	storage.uploadErr = errors.New("bucket down")
	co := NewCoordinator(storage, time.Second)

	called := false
	err := co.Commit(context.Background(), nil, []Attachment{
		{FieldID: "a", Filename: "a.png", ContentType: "image/png", Data: []byte("a")},
	}, func([]model.Answer) error {
		called = true
		return nil
	})

	var uploadErr *UploadError
	require.True(t, errors.As(err, &uploadErr))
	assert.False(t, called)
}

func TestFromMultipart(t *testing.T) {
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="file_f1"; filename="photo.png"`)
	h.Set("Content-Type", "image/png")
	part, err := w.CreatePart(h)
	require.NoError(t, err)
	_, _ = part.Write([]byte("png-bytes"))

	plain, err := w.CreateFormFile("other", "ignored.txt")
	require.NoError(t, err)
	_, _ = plain.Write([]byte("nope"))

	require.NoError(t, w.WriteField("answers", "[]"))
	require.NoError(t, w.Close())

	req, _ := http.NewRequest(http.MethodPost, "/", body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))

	attachments, err := FromMultipart(req.MultipartForm)
	require.NoError(t, err)
	require.Len(t, attachments, 1)
	assert.Equal(t, "f1", attachments[0].FieldID)
	assert.Equal(t, "photo.png", attachments[0].Filename)
	assert.Equal(t, "image/png", attachments[0].ContentType)
	assert.Equal(t, []byte("png-bytes"), attachments[0].Data)

	none, err := FromMultipart(nil)
	require.NoError(t, err)
	assert.Empty(t, none)
}
