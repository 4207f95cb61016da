package ports

import (
	"context"
	"io"
)

// StoredObject resultado de guardar un archivo.
type StoredObject struct {
	Key  string // localizador persistido en la metadata (Document.FilePath, Tool.FileURL)
	Size int64
}

// FileStorage define el puerto de salida para el binario de los archivos subidos.
// Adaptadores: disco local y S3. La metadata vive en Postgres; este puerto solo mueve bytes.
type FileStorage interface {
	// Save guarda r bajo key. contentType es informativo para backends que lo almacenan.
	Save(ctx context.Context, key string, r io.Reader, size int64, contentType string) (StoredObject, error)
	// Open devuelve el contenido; domain.ErrPhysicalFileMissing si el objeto no existe.
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	// Delete elimina el objeto. Un objeto inexistente no es error.
	Delete(ctx context.Context, key string) error
	// KeepsReplacedObjects es true cuando el backend es un servicio externo
	// y los objetos reemplazados no se liberan (la limpieza es manual).
	KeepsReplacedObjects() bool
}

// Upload archivo recibido en una petición multipart.
type Upload struct {
	FileName    string
	ContentType string
	Size        int64
	Body        io.Reader
}
