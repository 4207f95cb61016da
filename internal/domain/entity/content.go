package entity

import "time"

// Secciones del portal (conjunto cerrado).
const (
	SectionAdmin          = "admin"
	SectionServicio       = "servicio"
	SectionTalento        = "talento"
	SectionOrganizacional = "organizacional"
)

// Sections lista las secciones conocidas en orden estable.
var Sections = []string{SectionAdmin, SectionServicio, SectionTalento, SectionOrganizacional}

// IsValidSection indica si s es una sección conocida.
func IsValidSection(s string) bool {
	for _, known := range Sections {
		if known == s {
			return true
		}
	}
	return false
}

// Tipos de enlace de una herramienta embebida.
const (
	LinkTypeDrive    = "drive"
	LinkTypeWhatsApp = "whatsapp"
	LinkTypeText     = "text"
)

// ToolLink es una herramienta embebida en el contenido de una sección.
type ToolLink struct {
	Name string `json:"name"`
	Type string `json:"type"`
	URL  string `json:"url"`
}

// HistoryEntry registra un cambio de campo. Inmutable una vez agregado.
type HistoryEntry struct {
	Field      string    `json:"field"`
	OldValue   string    `json:"oldValue"`
	NewValue   string    `json:"newValue"`
	ChangedBy  string    `json:"changedBy"`
	ChangeDate time.Time `json:"changeDate"`
}

// Content es el documento de una sección. Se persiste completo en cada escritura.
type Content struct {
	ID                string         `json:"id"`
	Section           string         `json:"section"`
	Mission           string         `json:"mission"`
	Vision            string         `json:"vision"`
	CorporateValues   []string       `json:"corporateValues"`
	Diagnostic        string         `json:"diagnostic"`
	SpecificObjective string         `json:"specificObjective"`
	Tools             []ToolLink     `json:"tools"`
	History           []HistoryEntry `json:"history"`
	Version           int64          `json:"version"`
	CreatedAt         time.Time      `json:"createdAt"`
	UpdatedAt         time.Time      `json:"updatedAt"`
}
