// Package storage implementa ports.FileStorage sobre disco local y sobre un servicio compatible con S3.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/jhoicas/intranet-api/internal/application/ports"
	"github.com/jhoicas/intranet-api/internal/domain"
	"github.com/jhoicas/intranet-api/internal/infrastructure/metrics"
)

var _ ports.FileStorage = (*Local)(nil)

// Local guarda los archivos bajo un directorio raíz. La clave es la ruta relativa.
type Local struct {
	root string
}

// NewLocal crea el directorio raíz si no existe.
func NewLocal(root string) (*Local, error) {
	if root == "" {
		root = "uploads"
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("storage: crear directorio %s: %w", root, err)
	}
	return &Local{root: root}, nil
}

// path resuelve key dentro de la raíz; rechaza rutas absolutas o que escapen con "..".
func (s *Local) path(key string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(key))
	if key == "" || !filepath.IsLocal(clean) {
		return "", fmt.Errorf("%w: clave de archivo inválida %q", domain.ErrValidation, key)
	}
	return filepath.Join(s.root, clean), nil
}

func (s *Local) Save(ctx context.Context, key string, r io.Reader, _ int64, _ string) (ports.StoredObject, error) {
	p, err := s.path(key)
	if err != nil {
		return ports.StoredObject{}, err
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		observe(StorageLocal, "save", err)
		return ports.StoredObject{}, fmt.Errorf("storage: crear directorio: %w", err)
	}
	f, err := os.Create(p)
	if err != nil {
		observe(StorageLocal, "save", err)
		return ports.StoredObject{}, fmt.Errorf("storage: crear %s: %w", key, err)
	}
	n, err := io.Copy(f, r)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(p)
		observe(StorageLocal, "save", err)
		return ports.StoredObject{}, fmt.Errorf("storage: escribir %s: %w", key, err)
	}
	observe(StorageLocal, "save", nil)
	return ports.StoredObject{Key: key, Size: n}, nil
}

func (s *Local) Open(_ context.Context, key string) (io.ReadCloser, error) {
	p, err := s.path(key)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(p)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			observe(StorageLocal, "open", nil)
			return nil, domain.ErrPhysicalFileMissing
		}
		observe(StorageLocal, "open", err)
		return nil, fmt.Errorf("storage: abrir %s: %w", key, err)
	}
	observe(StorageLocal, "open", nil)
	return f, nil
}

func (s *Local) Delete(_ context.Context, key string) error {
	p, err := s.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
		observe(StorageLocal, "delete", err)
		return fmt.Errorf("storage: borrar %s: %w", key, err)
	}
	observe(StorageLocal, "delete", nil)
	return nil
}

// KeepsReplacedObjects es false: en disco los reemplazos se borran.
func (s *Local) KeepsReplacedObjects() bool { return false }

func observe(driver, op string, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	metrics.StorageOperations.WithLabelValues(driver, op, status).Inc()
}
