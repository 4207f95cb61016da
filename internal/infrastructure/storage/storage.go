package storage

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/jhoicas/intranet-api/internal/application/ports"
	"github.com/jhoicas/intranet-api/pkg/config"
)

// Drivers soportados (etiqueta de métricas).
const (
	StorageLocal = config.StorageLocal
	StorageS3    = config.StorageS3
)

// New elige el adaptador según STORAGE_DRIVER.
func New(cfg config.StorageConfig, log zerolog.Logger) (ports.FileStorage, error) {
	switch cfg.Driver {
	case StorageLocal:
		return NewLocal(cfg.LocalDir)
	case StorageS3:
		return NewS3(S3Config{
			Endpoint:  cfg.S3Endpoint,
			Region:    cfg.S3Region,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			Bucket:    cfg.S3Bucket,
		}, log)
	default:
		return nil, fmt.Errorf("storage: driver %q no soportado", cfg.Driver)
	}
}
