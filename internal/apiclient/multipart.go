package apiclient

import (
	"bytes"
	"fmt"
	"mime/multipart"
)

// MultipartForm is the alternate body encoding for teacher create/update,
// which carry a CV PDF alongside the regular fields. Passing one to
// Client.Do bypasses JSON serialization entirely.
type MultipartForm struct {
	fields []field
	files  []filePart
}

type field struct {
	name, value string
}

type filePart struct {
	name, filename string
	content        []byte
}

// SetField adds a plain form field.
func (m *MultipartForm) SetField(name, value string) {
	m.fields = append(m.fields, field{name: name, value: value})
}

// SetFile adds a file part with the given field name and filename.
func (m *MultipartForm) SetFile(name, filename string, content []byte) {
	m.files = append(m.files, filePart{name: name, filename: filename, content: content})
}

// Encode renders the multipart body and returns it with its content type
// (including the boundary).
func (m *MultipartForm) Encode() (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, f := range m.fields {
		if err := w.WriteField(f.name, f.value); err != nil {
			return nil, "", fmt.Errorf("write field %s: %w", f.name, err)
		}
	}
	for _, f := range m.files {
		part, err := w.CreateFormFile(f.name, f.filename)
		if err != nil {
			return nil, "", fmt.Errorf("create file part %s: %w", f.name, err)
		}
		if _, err := part.Write(f.content); err != nil {
			return nil, "", fmt.Errorf("write file part %s: %w", f.name, err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("finalize multipart body: %w", err)
	}
	return &buf, w.FormDataContentType(), nil
}
