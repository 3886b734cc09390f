package upload

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

// CloudStorageClient keeps attachments in a Google Cloud Storage bucket.
type CloudStorageClient struct {
	BucketName string
	BaseURL    string
	Client     *storage.Client
}

// NewCloudStorageClient connects to GCS. An empty credentialsFile uses the default credentials.
func NewCloudStorageClient(ctx context.Context, bucketName, credentialsFile, baseURL string) (*CloudStorageClient, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create cloud storage client: %v", err)
	}
	return &CloudStorageClient{
		BucketName: bucketName,
		BaseURL:    strings.TrimRight(baseURL, "/"),
		Client:     client,
	}, nil
}

// UploadFile writes data to objectName and returns its public URL.
func (c *CloudStorageClient) UploadFile(ctx context.Context, objectName, contentType string, data io.Reader) (string, error) {
	wc := c.Client.Bucket(c.BucketName).Object(objectName).NewWriter(ctx)
	wc.ContentType = contentType
	if _, err := io.Copy(wc, data); err != nil {
		_ = wc.Close()
		return "", fmt.Errorf("failed to write data to object: %v", err)
	}
	if err := wc.Close(); err != nil {
		return "", fmt.Errorf("failed to close object writer: %v", err)
	}
	return c.URL(objectName), nil
}

// DeleteFile removes objectName. A missing object is not an error.
func (c *CloudStorageClient) DeleteFile(ctx context.Context, objectName string) error {
	err := c.Client.Bucket(c.BucketName).Object(objectName).Delete(ctx)
	if err != nil && !errors.Is(err, storage.ErrObjectNotExist) {
		return fmt.Errorf("failed to delete object: %v", err)
	}
	return nil
}

// URL is the public address of objectName.
func (c *CloudStorageClient) URL(objectName string) string {
	return fmt.Sprintf("%s/%s/%s", c.BaseURL, c.BucketName, objectName)
}

// Close releases the underlying client.
func (c *CloudStorageClient) Close() error {
	return c.Client.Close()
}
