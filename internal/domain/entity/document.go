package entity

import "time"

// DefaultDocumentCategory se usa cuando la subida no indica categoría.
const DefaultDocumentCategory = "General"

// Document es la metadata de un archivo subido; el binario vive en el almacenamiento.
type Document struct {
	ID           string
	FileName     string // nombre original
	FilePath     string // localizador en el almacenamiento
	MimeType     string
	FileSize     int64
	UploadedBy   string
	UploaderRole string
	Category     string
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// Uploader se llena solo en listados (join con users).
	Uploader *UserSummary
}

// UserSummary datos mínimos de un usuario para respuestas embebidas.
type UserSummary struct {
	ID             string
	Name           string
	Email          string
	DocumentNumber string
	Role           string
}
