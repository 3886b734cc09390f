package upload

import (
	"fmt"
	"io"
	"mime/multipart"
	"strings"
)

// FromMultipart reads every file part named file_{fieldId}.
func FromMultipart(form *multipart.Form) ([]Attachment, error) {
	if form == nil {
		return nil, nil
	}

	var attachments []Attachment
	for name, headers := range form.File {
		if !strings.HasPrefix(name, FilePartPrefix) || len(headers) == 0 {
			continue
		}
		fieldID := strings.TrimPrefix(name, FilePartPrefix)
		if fieldID == "" {
			continue
		}

		header := headers[0]
		data, err := readPart(header)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", header.Filename, err)
		}
		contentType := header.Header.Get("Content-Type")
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		attachments = append(attachments, Attachment{
			FieldID:     fieldID,
			Filename:    header.Filename,
			ContentType: contentType,
			Data:        data,
		})
	}
	return attachments, nil
}

func readPart(header *multipart.FileHeader) ([]byte, error) {
	f, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}
