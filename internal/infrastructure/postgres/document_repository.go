package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/intranet-api/internal/domain"
	"github.com/jhoicas/intranet-api/internal/domain/entity"
	"github.com/jhoicas/intranet-api/internal/domain/repository"
)

var _ repository.DocumentRepository = (*DocumentRepo)(nil)

// DocumentRepo implementación de la metadata de documentos sobre PostgreSQL.
type DocumentRepo struct {
	pool *pgxpool.Pool
}

// NewDocumentRepository construye el adaptador de persistencia de documentos.
func NewDocumentRepository(pool *pgxpool.Pool) *DocumentRepo {
	return &DocumentRepo{pool: pool}
}

func (r *DocumentRepo) Create(ctx context.Context, d *entity.Document) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO documents (id, file_name, file_path, mime_type, file_size, uploaded_by, uploader_role, category, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		d.ID, d.FileName, d.FilePath, d.MimeType, d.FileSize, nullable(d.UploadedBy), d.UploaderRole,
		d.Category, d.CreatedAt, d.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert document: %w", err)
	}
	return nil
}

func (r *DocumentRepo) FindByID(ctx context.Context, id string) (*entity.Document, error) {
	var (
		d          entity.Document
		uploadedBy *string
	)
	err := r.pool.QueryRow(ctx, `
		SELECT id, file_name, file_path, mime_type, file_size, uploaded_by, uploader_role, category, created_at, updated_at
		FROM documents WHERE id = $1`, id,
	).Scan(&d.ID, &d.FileName, &d.FilePath, &d.MimeType, &d.FileSize, &uploadedBy, &d.UploaderRole,
		&d.Category, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get document: %w", err)
	}
	d.UploadedBy = deref(uploadedBy)
	return &d, nil
}

// List devuelve todos los documentos, más recientes primero, con el usuario que los subió.
func (r *DocumentRepo) List(ctx context.Context) ([]*entity.Document, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT d.id, d.file_name, d.file_path, d.mime_type, d.file_size, d.uploaded_by, d.uploader_role,
			d.category, d.created_at, d.updated_at,
			u.name, u.email, u.document_number, u.role
		FROM documents d
		LEFT JOIN users u ON u.id = d.uploaded_by
		ORDER BY d.created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	var out []*entity.Document
	for rows.Next() {
		var (
			d                          entity.Document
			uploadedBy                 *string
			name, email, docNum, role *string
		)
		if err := rows.Scan(&d.ID, &d.FileName, &d.FilePath, &d.MimeType, &d.FileSize, &uploadedBy,
			&d.UploaderRole, &d.Category, &d.CreatedAt, &d.UpdatedAt,
			&name, &email, &docNum, &role); err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		d.UploadedBy = deref(uploadedBy)
		if name != nil {
			d.Uploader = &entity.UserSummary{
				ID:             d.UploadedBy,
				Name:           *name,
				Email:          deref(email),
				DocumentNumber: deref(docNum),
				Role:           deref(role),
			}
		}
		out = append(out, &d)
	}
	return out, rows.Err()
}

func (r *DocumentRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM documents WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
