// Package upload define qué archivos acepta el portal y cómo se nombran en el almacenamiento.
package upload

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/jhoicas/intranet-api/internal/domain"
)

// DefaultMaxBytes límite de tamaño por archivo (5 MB).
const DefaultMaxBytes int64 = 5 * 1024 * 1024

// MIMEDocx tipo MIME de Word moderno.
const MIMEDocx = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

// IsAllowedMIME acepta PDF, Word (doc/docx) e imágenes.
func IsAllowedMIME(contentType string) bool {
	mime := strings.ToLower(strings.TrimSpace(contentType))
	if i := strings.IndexByte(mime, ';'); i >= 0 {
		mime = strings.TrimSpace(mime[:i])
	}
	switch mime {
	case "application/pdf", "application/msword", MIMEDocx:
		return true
	}
	return strings.HasPrefix(mime, "image/")
}

// Check valida tipo y tamaño antes de tocar el almacenamiento.
func Check(fileName, contentType string, size, maxBytes int64) error {
	if strings.TrimSpace(fileName) == "" {
		return fmt.Errorf("%w: archivo sin nombre", domain.ErrValidation)
	}
	if !IsAllowedMIME(contentType) {
		return fmt.Errorf("%w: %q (solo PDF, DOC/DOCX e imágenes)", domain.ErrFileNotAllowed, contentType)
	}
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	if size > maxBytes {
		return fmt.Errorf("%w: %d bytes (máximo %d)", domain.ErrFileTooLarge, size, maxBytes)
	}
	return nil
}

// ObjectKey construye el localizador "<prefix>-<unixMillis><ext>" conservando la extensión original.
func ObjectKey(prefix, fileName string, now time.Time) string {
	if prefix == "" {
		prefix = "unknown"
	}
	ext := strings.ToLower(filepath.Ext(filepath.Base(fileName)))
	return fmt.Sprintf("%s-%d%s", prefix, now.UnixMilli(), ext)
}
