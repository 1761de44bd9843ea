package model

import (
	"strings"
	"time"
)

// StorageFile is a server-owned file entry; read-only on the client.
type StorageFile struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name"`
	Type      string    `json:"fileType"`
	Size      int64     `json:"fileSize"`
	URL       string    `json:"fileUrl,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// HasDownload reports whether a download link should be offered.
func (f StorageFile) HasDownload() bool {
	return f.URL != ""
}

// IsPDF reports whether the file type names a PDF.
func (f StorageFile) IsPDF() bool {
	return strings.Contains(strings.ToLower(f.Type), "pdf")
}
