package document_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/intranet-api/internal/application/document"
	"github.com/jhoicas/intranet-api/internal/application/ports"
	"github.com/jhoicas/intranet-api/internal/domain"
	"github.com/jhoicas/intranet-api/internal/domain/access"
	"github.com/jhoicas/intranet-api/internal/domain/entity"
	"github.com/jhoicas/intranet-api/internal/mocks"
)

var (
	talento  = access.Actor{ID: "tal-1", Role: entity.RoleTalento, DocumentNumber: "1020304050", IP: "10.0.0.3"}
	invitado = access.Actor{ID: "inv-1", Role: entity.RoleInvitado, DocumentNumber: "999", IP: "10.0.0.4"}
)

func file(name, mime, body string) *ports.Upload {
	return &ports.Upload{FileName: name, ContentType: mime, Size: int64(len(body)), Body: strings.NewReader(body)}
}

func TestUpload_GuardaArchivoYMetadata(t *testing.T) {
	repo := mocks.NewDocumentRepository()
	storage := mocks.NewFileStorage()
	audit := &mocks.AuditRecorder{}
	uc := document.NewUseCase(repo, storage, audit, zerolog.Nop(), 0)

	out, err := uc.Upload(context.Background(), invitado, file("Contrato.pdf", "application/pdf", "%PDF"), "")
	require.NoError(t, err)
	assert.Equal(t, entity.DefaultDocumentCategory, out.Category)
	assert.Equal(t, "Contrato.pdf", out.FileName)
	assert.True(t, strings.HasPrefix(out.FilePath, "999-"))
	assert.True(t, strings.HasSuffix(out.FilePath, ".pdf"))
	assert.Equal(t, int64(4), out.FileSize)
	assert.Equal(t, entity.RoleInvitado, out.UploaderRole)
	assert.True(t, storage.Has(out.FilePath))
	assert.Equal(t, 1, repo.Count())
	assert.Equal(t, []string{entity.ActionDocUpload}, audit.Actions())
}

func TestUpload_Validaciones(t *testing.T) {
	storage := mocks.NewFileStorage()
	uc := document.NewUseCase(mocks.NewDocumentRepository(), storage, &mocks.AuditRecorder{}, zerolog.Nop(), 10)

	_, err := uc.Upload(context.Background(), talento, nil, "")
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = uc.Upload(context.Background(), talento, file("a.zip", "application/zip", "PK"), "")
	assert.ErrorIs(t, err, domain.ErrFileNotAllowed)

	_, err = uc.Upload(context.Background(), talento, file("a.png", "image/png", "más de diez bytes"), "")
	assert.ErrorIs(t, err, domain.ErrFileTooLarge)

	assert.Zero(t, storage.Len())
}

func TestUpload_FalloDeMetadataBorraArchivo(t *testing.T) {
	repo := mocks.NewDocumentRepository()
	repo.CreateFunc = func(context.Context, *entity.Document) error { return errors.New("db caída") }
	storage := mocks.NewFileStorage()
	audit := &mocks.AuditRecorder{}
	uc := document.NewUseCase(repo, storage, audit, zerolog.Nop(), 0)

	_, err := uc.Upload(context.Background(), talento, file("a.pdf", "application/pdf", "%PDF"), "RRHH")
	require.Error(t, err)
	assert.Zero(t, storage.Len())
	assert.Empty(t, audit.Actions())
}

func TestList_RolesPermitidos(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	repo := mocks.NewDocumentRepository(
		&entity.Document{ID: "viejo", CreatedAt: base},
		&entity.Document{ID: "nuevo", CreatedAt: base.Add(time.Hour)},
	)
	uc := document.NewUseCase(repo, mocks.NewFileStorage(), &mocks.AuditRecorder{}, zerolog.Nop(), 0)

	_, err := uc.List(context.Background(), invitado)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	docs, err := uc.List(context.Background(), talento)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "nuevo", docs[0].ID)
}

func TestDownload(t *testing.T) {
	repo := mocks.NewDocumentRepository(
		&entity.Document{ID: "ok", FileName: "a.pdf", FilePath: "k-ok.pdf"},
		&entity.Document{ID: "roto", FileName: "b.pdf", FilePath: "k-roto.pdf"},
	)
	storage := mocks.NewFileStorage()
	storage.Put("k-ok.pdf", []byte("%PDF"))
	uc := document.NewUseCase(repo, storage, &mocks.AuditRecorder{}, zerolog.Nop(), 0)

	doc, rc, err := uc.Download(context.Background(), "ok")
	require.NoError(t, err)
	defer rc.Close()
	body, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "a.pdf", doc.FileName)
	assert.Equal(t, "%PDF", string(body))

	_, _, err = uc.Download(context.Background(), "roto")
	assert.ErrorIs(t, err, domain.ErrPhysicalFileMissing)

	_, _, err = uc.Download(context.Background(), "nada")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDelete_ArchivoFaltanteIgualEliminaYAudita(t *testing.T) {
	repo := mocks.NewDocumentRepository(&entity.Document{ID: "d1", FileName: "a.pdf", FilePath: "k-d1.pdf"})
	storage := mocks.NewFileStorage()
	storage.DeleteFunc = func(context.Context, string) error { return errors.New("permiso denegado") }
	audit := &mocks.AuditRecorder{}
	uc := document.NewUseCase(repo, storage, audit, zerolog.Nop(), 0)

	require.NoError(t, uc.Delete(context.Background(), talento, "d1"))
	assert.Zero(t, repo.Count())
	assert.Equal(t, []string{entity.ActionDocDelete}, audit.Actions())
}

func TestDelete_Permisos(t *testing.T) {
	repo := mocks.NewDocumentRepository(&entity.Document{ID: "d1"})
	uc := document.NewUseCase(repo, mocks.NewFileStorage(), &mocks.AuditRecorder{}, zerolog.Nop(), 0)

	assert.ErrorIs(t, uc.Delete(context.Background(), invitado, "d1"), domain.ErrForbidden)
	assert.Equal(t, 1, repo.Count())
	assert.ErrorIs(t, uc.Delete(context.Background(), talento, "otro"), domain.ErrNotFound)
}
