package mocks

import (
	"bytes"
	"context"
	"io"
	"sync"
	"time"

	"github.com/jhoicas/intranet-api/internal/application/ports"
	"github.com/jhoicas/intranet-api/internal/domain"
)

// FileStorage almacenamiento de archivos en memoria.
type FileStorage struct {
	mu      sync.Mutex
	objects map[string][]byte

	// Keep valor devuelto por KeepsReplacedObjects.
	Keep bool

	SaveFunc   func(ctx context.Context, key string, r io.Reader, size int64, contentType string) (ports.StoredObject, error)
	DeleteFunc func(ctx context.Context, key string) error
}

func NewFileStorage() *FileStorage {
	return &FileStorage{objects: map[string][]byte{}}
}

func (s *FileStorage) Save(ctx context.Context, key string, r io.Reader, size int64, contentType string) (ports.StoredObject, error) {
	if s.SaveFunc != nil {
		return s.SaveFunc(ctx, key, r, size, contentType)
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return ports.StoredObject{}, err
	}
	s.Put(key, b)
	return ports.StoredObject{Key: key, Size: int64(len(b))}, nil
}

func (s *FileStorage) Open(_ context.Context, key string) (io.ReadCloser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.objects[key]
	if !ok {
		return nil, domain.ErrPhysicalFileMissing
	}
	return io.NopCloser(bytes.NewReader(b)), nil
}

func (s *FileStorage) Delete(ctx context.Context, key string) error {
	if s.DeleteFunc != nil {
		return s.DeleteFunc(ctx, key)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, key)
	return nil
}

func (s *FileStorage) KeepsReplacedObjects() bool { return s.Keep }

// Put agrega un objeto directamente (preparación de tests).
func (s *FileStorage) Put(key string, b []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[key] = b
}

// Has informa si el objeto existe.
func (s *FileStorage) Has(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.objects[key]
	return ok
}

// Len número de objetos almacenados.
func (s *FileStorage) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.objects)
}

// AuditRecorder captura las entradas registradas.
type AuditRecorder struct {
	mu      sync.Mutex
	entries []ports.AuditEntry
}

func (a *AuditRecorder) Record(_ context.Context, e ports.AuditEntry) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.entries = append(a.entries, e)
}

// Entries copia de las entradas registradas.
func (a *AuditRecorder) Entries() []ports.AuditEntry {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]ports.AuditEntry(nil), a.entries...)
}

// Actions tipos de acción registrados, en orden.
func (a *AuditRecorder) Actions() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]string, len(a.entries))
	for i, e := range a.entries {
		out[i] = e.Action
	}
	return out
}

// TokenRevoker lista de revocación en memoria.
type TokenRevoker struct {
	mu      sync.Mutex
	revoked map[string]time.Time

	RevokeFunc func(ctx context.Context, tokenID string, expiresAt time.Time) error
}

func (t *TokenRevoker) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error {
	if t.RevokeFunc != nil {
		return t.RevokeFunc(ctx, tokenID, expiresAt)
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.revoked == nil {
		t.revoked = map[string]time.Time{}
	}
	t.revoked[tokenID] = expiresAt
	return nil
}

func (t *TokenRevoker) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, ok := t.revoked[tokenID]
	return ok, nil
}
