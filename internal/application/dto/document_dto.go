package dto

import "time"

// DocumentResponse metadata de un documento subido.
type DocumentResponse struct {
	ID           string               `json:"id"`
	FileName     string               `json:"fileName"`
	FilePath     string               `json:"filePath"`
	MimeType     string               `json:"mimeType"`
	FileSize     int64                `json:"fileSize"`
	UploadedBy   string               `json:"uploadedBy"`
	UploaderRole string               `json:"uploaderRole"`
	Category     string               `json:"category"`
	Uploader     *UserSummaryResponse `json:"uploader,omitempty"`
	CreatedAt    time.Time            `json:"createdAt"`
	UpdatedAt    time.Time            `json:"updatedAt"`
}
