package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/intranet-api/internal/domain"
	"github.com/jhoicas/intranet-api/internal/domain/entity"
	"github.com/jhoicas/intranet-api/internal/domain/repository"
)

var _ repository.ToolRepository = (*ToolRepo)(nil)

const toolColumns = `id, title, description, section, category, allows_url, allows_file,
	url_value, file_url, original_file_name, created_by, created_at, updated_at`

// ToolRepo implementación del catálogo de herramientas sobre PostgreSQL.
type ToolRepo struct {
	pool *pgxpool.Pool
}

// NewToolRepository construye el adaptador de persistencia de herramientas.
func NewToolRepository(pool *pgxpool.Pool) *ToolRepo {
	return &ToolRepo{pool: pool}
}

func (r *ToolRepo) Create(ctx context.Context, t *entity.Tool) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO tools (`+toolColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		t.ID, t.Title, t.Description, t.Section, t.Category, t.Config.AllowsURL, t.Config.AllowsFile,
		t.URLValue, t.FileURL, t.OriginalFileName, nullable(t.CreatedBy), t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert tool: %w", err)
	}
	return nil
}

func (r *ToolRepo) FindByID(ctx context.Context, id string) (*entity.Tool, error) {
	t, err := scanTool(r.pool.QueryRow(ctx, `SELECT `+toolColumns+` FROM tools WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get tool: %w", err)
	}
	return t, nil
}

// ListBySection devuelve las herramientas de la sección, más recientes primero.
func (r *ToolRepo) ListBySection(ctx context.Context, section string) ([]*entity.Tool, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+toolColumns+` FROM tools WHERE section = $1 ORDER BY created_at DESC`, section)
	if err != nil {
		return nil, fmt.Errorf("list tools: %w", err)
	}
	defer rows.Close()

	var out []*entity.Tool
	for rows.Next() {
		t, err := scanTool(rows)
		if err != nil {
			return nil, fmt.Errorf("scan tool: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// Update sobrescribe los valores editables de la herramienta.
func (r *ToolRepo) Update(ctx context.Context, t *entity.Tool) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE tools SET title = $2, description = $3, category = $4, allows_url = $5, allows_file = $6,
			url_value = $7, file_url = $8, original_file_name = $9, updated_at = $10
		WHERE id = $1`,
		t.ID, t.Title, t.Description, t.Category, t.Config.AllowsURL, t.Config.AllowsFile,
		t.URLValue, t.FileURL, t.OriginalFileName, t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update tool: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrToolNotFound
	}
	return nil
}

func (r *ToolRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM tools WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete tool: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrToolNotFound
	}
	return nil
}

func scanTool(row pgx.Row) (*entity.Tool, error) {
	var (
		t         entity.Tool
		createdBy *string
	)
	err := row.Scan(
		&t.ID, &t.Title, &t.Description, &t.Section, &t.Category, &t.Config.AllowsURL, &t.Config.AllowsFile,
		&t.URLValue, &t.FileURL, &t.OriginalFileName, &createdBy, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	t.CreatedBy = deref(createdBy)
	return &t, nil
}
