package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/intranet-api/internal/domain"
	"github.com/jhoicas/intranet-api/internal/domain/entity"
	"github.com/jhoicas/intranet-api/internal/domain/repository"
)

var _ repository.ContentRepository = (*ContentRepo)(nil)

// ContentRepo guarda cada sección como un documento JSONB completo con sello de versión.
type ContentRepo struct {
	pool *pgxpool.Pool
}

// NewContentRepository construye el adaptador de persistencia de contenido.
func NewContentRepository(pool *pgxpool.Pool) *ContentRepo {
	return &ContentRepo{pool: pool}
}

// FindBySection devuelve (nil, nil) si la sección no tiene documento.
func (r *ContentRepo) FindBySection(ctx context.Context, section string) (*entity.Content, error) {
	var (
		raw     []byte
		version int64
	)
	err := r.pool.QueryRow(ctx,
		`SELECT document, version FROM section_contents WHERE section = $1`, section,
	).Scan(&raw, &version)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get content %s: %w", section, err)
	}
	var c entity.Content
	if err := json.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("decode content %s: %w", section, err)
	}
	c.Section = section
	c.Version = version
	return &c, nil
}

// Save inserta (Version == 0) o sobrescribe el documento completo si la versión coincide.
func (r *ContentRepo) Save(ctx context.Context, c *entity.Content) error {
	next := c.Version + 1
	doc := *c
	doc.Version = next
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode content %s: %w", c.Section, err)
	}

	if c.Version == 0 {
		tag, err := r.pool.Exec(ctx, `
			INSERT INTO section_contents (section, id, document, version, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (section) DO NOTHING`,
			c.Section, c.ID, raw, next, c.CreatedAt, c.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("insert content %s: %w", c.Section, err)
		}
		if tag.RowsAffected() == 0 {
			return domain.ErrVersionConflict
		}
		c.Version = next
		return nil
	}

	tag, err := r.pool.Exec(ctx, `
		UPDATE section_contents SET document = $2, version = $3, updated_at = $4
		WHERE section = $1 AND version = $5`,
		c.Section, raw, next, c.UpdatedAt, c.Version,
	)
	if err != nil {
		return fmt.Errorf("update content %s: %w", c.Section, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrVersionConflict
	}
	c.Version = next
	return nil
}
