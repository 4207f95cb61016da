// Package content contiene las reglas de dominio del contenido por sección:
// herramientas por defecto, normalización de nombres y cálculo de diferencias para el historial.
package content

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/jhoicas/intranet-api/internal/domain/entity"
)

//go:embed defaults.yaml
var embeddedDefaults []byte

type defaultTool struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

type defaultsFile struct {
	Version  int                      `yaml:"version"`
	Sections map[string][]defaultTool `yaml:"sections"`
}

// Defaults es el catálogo versionado de herramientas iniciales por sección.
// Se construye una vez al arrancar y se inyecta en el pipeline de contenido.
type Defaults struct {
	Version int
	tools   map[string][]entity.ToolLink
}

// EmbeddedDefaults devuelve el catálogo compilado en el binario.
func EmbeddedDefaults() *Defaults {
	d, err := ParseDefaults(embeddedDefaults)
	if err != nil {
		panic("content: defaults.yaml embebido inválido: " + err.Error())
	}
	return d
}

// LoadDefaults lee el catálogo desde path; con path vacío usa el embebido.
func LoadDefaults(path string) (*Defaults, error) {
	if path == "" {
		return EmbeddedDefaults(), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("leer catálogo de herramientas: %w", err)
	}
	return ParseDefaults(raw)
}

// ParseDefaults valida y construye el catálogo desde YAML.
func ParseDefaults(raw []byte) (*Defaults, error) {
	var f defaultsFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse catálogo de herramientas: %w", err)
	}
	d := &Defaults{Version: f.Version, tools: make(map[string][]entity.ToolLink, len(f.Sections))}
	for section, list := range f.Sections {
		if !entity.IsValidSection(section) {
			return nil, fmt.Errorf("catálogo: sección desconocida %q", section)
		}
		links := make([]entity.ToolLink, 0, len(list))
		for i, t := range list {
			if t.Name == "" {
				return nil, fmt.Errorf("catálogo: %s[%d] sin nombre", section, i)
			}
			typ := t.Type
			if typ == "" {
				typ = entity.LinkTypeText
			}
			if !IsValidLinkType(typ) {
				return nil, fmt.Errorf("catálogo: %s[%d] tipo %q inválido", section, i, t.Type)
			}
			links = append(links, entity.ToolLink{Name: t.Name, Type: typ})
		}
		d.tools[section] = links
	}
	return d, nil
}

// ToolsFor devuelve una copia de las herramientas por defecto de section (URL vacía).
func (d *Defaults) ToolsFor(section string) []entity.ToolLink {
	src := d.tools[section]
	out := make([]entity.ToolLink, len(src))
	copy(out, src)
	return out
}

// IsValidLinkType indica si t es un tipo de enlace conocido.
func IsValidLinkType(t string) bool {
	switch t {
	case entity.LinkTypeDrive, entity.LinkTypeWhatsApp, entity.LinkTypeText:
		return true
	}
	return false
}

// New construye el documento inicial de una sección con sus herramientas por defecto.
func New(section string, d *Defaults, now time.Time) *entity.Content {
	return &entity.Content{
		ID:              uuid.New().String(),
		Section:         section,
		CorporateValues: []string{},
		Tools:           d.ToolsFor(section),
		History:         []entity.HistoryEntry{},
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// NeedsInitialization indica si c debe (re)inicializarse: no existe, o su lista de
// herramientas está vacía y el catálogo sí define herramientas para la sección.
func (d *Defaults) NeedsInitialization(c *entity.Content) bool {
	if c == nil {
		return true
	}
	return len(c.Tools) == 0 && len(d.tools[c.Section]) > 0
}

// MergeTools reemplaza la lista actual por la del catálogo conservando las URL
// de las herramientas cuyo nombre normalizado ya existía.
func MergeTools(current, defaults []entity.ToolLink) []entity.ToolLink {
	urls := make(map[string]string, len(current))
	for _, t := range current {
		urls[NormalizeToolName(t.Name)] = t.URL
	}
	out := make([]entity.ToolLink, len(defaults))
	for i, t := range defaults {
		t.URL = urls[NormalizeToolName(t.Name)]
		out[i] = t
	}
	return out
}
