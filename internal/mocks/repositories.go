// Package mocks contiene repositorios en memoria y dobles de puertos para tests.
// Cada doble acepta funciones opcionales (XxxFunc) para forzar errores o
// comportamientos puntuales; sin ellas se comporta como un almacén real en memoria.
package mocks

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"sync"

	"github.com/jhoicas/intranet-api/internal/domain"
	"github.com/jhoicas/intranet-api/internal/domain/entity"
)

// UserRepository repositorio de usuarios en memoria.
type UserRepository struct {
	mu    sync.Mutex
	users map[string]*entity.User

	CreateFunc func(ctx context.Context, user *entity.User) error
	UpdateFunc func(ctx context.Context, user *entity.User) error
}

func NewUserRepository(users ...*entity.User) *UserRepository {
	r := &UserRepository{users: map[string]*entity.User{}}
	for _, u := range users {
		cp := *u
		r.users[u.ID] = &cp
	}
	return r
}

func (r *UserRepository) Create(ctx context.Context, user *entity.User) error {
	if r.CreateFunc != nil {
		return r.CreateFunc(ctx, user)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if strings.EqualFold(u.Email, user.Email) || u.DocumentNumber == user.DocumentNumber {
			return domain.ErrDuplicateUser
		}
	}
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *UserRepository) FindByID(_ context.Context, id string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (r *UserRepository) FindByDocument(_ context.Context, documentNumber string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.DocumentNumber == documentNumber {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *UserRepository) ExistsByEmailOrDocument(_ context.Context, email, documentNumber string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) || u.DocumentNumber == documentNumber {
			return true, nil
		}
	}
	return false, nil
}

func (r *UserRepository) Update(ctx context.Context, user *entity.User) error {
	if r.UpdateFunc != nil {
		return r.UpdateFunc(ctx, user)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return domain.ErrUserNotFound
	}
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *UserRepository) List(_ context.Context) ([]*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.User, 0, len(r.users))
	for _, u := range r.users {
		cp := *u
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Count número de usuarios almacenados.
func (r *UserRepository) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.users)
}

// ContentRepository documentos de sección en memoria con control de versión.
type ContentRepository struct {
	mu   sync.Mutex
	docs map[string][]byte

	// Saves cuenta las escrituras exitosas.
	Saves int

	FindFunc func(ctx context.Context, section string) (*entity.Content, error)
	SaveFunc func(ctx context.Context, content *entity.Content) error
}

func NewContentRepository() *ContentRepository {
	return &ContentRepository{docs: map[string][]byte{}}
}

func (r *ContentRepository) FindBySection(ctx context.Context, section string) (*entity.Content, error) {
	if r.FindFunc != nil {
		return r.FindFunc(ctx, section)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	raw, ok := r.docs[section]
	if !ok {
		return nil, nil
	}
	var c entity.Content
	if err := json.Unmarshal(raw, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *ContentRepository) Save(ctx context.Context, content *entity.Content) error {
	if r.SaveFunc != nil {
		return r.SaveFunc(ctx, content)
	}
	return r.Store(content)
}

// Store aplica la semántica de versión de Save sin pasar por SaveFunc.
func (r *ContentRepository) Store(content *entity.Content) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if raw, ok := r.docs[content.Section]; ok {
		var stored entity.Content
		if err := json.Unmarshal(raw, &stored); err != nil {
			return err
		}
		if stored.Version != content.Version {
			return domain.ErrVersionConflict
		}
	} else if content.Version != 0 {
		return domain.ErrVersionConflict
	}
	content.Version++
	raw, err := json.Marshal(content)
	if err != nil {
		return err
	}
	r.docs[content.Section] = raw
	r.Saves++
	return nil
}

// ToolRepository catálogo de herramientas en memoria.
type ToolRepository struct {
	mu    sync.Mutex
	tools map[string]*entity.Tool

	UpdateFunc func(ctx context.Context, tool *entity.Tool) error
}

func NewToolRepository(tools ...*entity.Tool) *ToolRepository {
	r := &ToolRepository{tools: map[string]*entity.Tool{}}
	for _, t := range tools {
		cp := *t
		r.tools[t.ID] = &cp
	}
	return r
}

func (r *ToolRepository) Create(_ context.Context, tool *entity.Tool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *tool
	r.tools[tool.ID] = &cp
	return nil
}

func (r *ToolRepository) FindByID(_ context.Context, id string) (*entity.Tool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if t, ok := r.tools[id]; ok {
		cp := *t
		return &cp, nil
	}
	return nil, nil
}

func (r *ToolRepository) ListBySection(_ context.Context, section string) ([]*entity.Tool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Tool
	for _, t := range r.tools {
		if t.Section == section {
			cp := *t
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *ToolRepository) Update(ctx context.Context, tool *entity.Tool) error {
	if r.UpdateFunc != nil {
		return r.UpdateFunc(ctx, tool)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tools[tool.ID]; !ok {
		return domain.ErrToolNotFound
	}
	cp := *tool
	r.tools[tool.ID] = &cp
	return nil
}

func (r *ToolRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tools[id]; !ok {
		return domain.ErrToolNotFound
	}
	delete(r.tools, id)
	return nil
}

// DocumentRepository metadata de documentos en memoria.
type DocumentRepository struct {
	mu   sync.Mutex
	docs map[string]*entity.Document

	CreateFunc func(ctx context.Context, doc *entity.Document) error
}

func NewDocumentRepository(docs ...*entity.Document) *DocumentRepository {
	r := &DocumentRepository{docs: map[string]*entity.Document{}}
	for _, d := range docs {
		cp := *d
		r.docs[d.ID] = &cp
	}
	return r
}

func (r *DocumentRepository) Create(ctx context.Context, doc *entity.Document) error {
	if r.CreateFunc != nil {
		return r.CreateFunc(ctx, doc)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *doc
	r.docs[doc.ID] = &cp
	return nil
}

func (r *DocumentRepository) FindByID(_ context.Context, id string) (*entity.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if d, ok := r.docs[id]; ok {
		cp := *d
		return &cp, nil
	}
	return nil, nil
}

func (r *DocumentRepository) List(_ context.Context) ([]*entity.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.Document, 0, len(r.docs))
	for _, d := range r.docs {
		cp := *d
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *DocumentRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.docs[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.docs, id)
	return nil
}

// Count número de documentos almacenados.
func (r *DocumentRepository) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.docs)
}

// AuditLogRepository bitácora en memoria.
type AuditLogRepository struct {
	mu      sync.Mutex
	Entries []*entity.AuditLog

	AppendFunc func(ctx context.Context, entry *entity.AuditLog) error
}

func (r *AuditLogRepository) Append(ctx context.Context, entry *entity.AuditLog) error {
	if r.AppendFunc != nil {
		return r.AppendFunc(ctx, entry)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *entry
	r.Entries = append(r.Entries, &cp)
	return nil
}

func (r *AuditLogRepository) ListRecent(_ context.Context, limit int) ([]*entity.AuditLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.AuditLog, 0, limit)
	for i := len(r.Entries) - 1; i >= 0 && len(out) < limit; i-- {
		cp := *r.Entries[i]
		out = append(out, &cp)
	}
	return out, nil
}
