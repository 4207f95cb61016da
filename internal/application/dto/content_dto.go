package dto

import "time"

// UpdateToolURLRequest cuerpo de PUT /content/:section/tool/:toolName.
type UpdateToolURLRequest struct {
	URL string `json:"url"`
}

// ToolLinkResponse herramienta embebida en el contenido de una sección.
type ToolLinkResponse struct {
	Name string `json:"name"`
	Type string `json:"type"`
	URL  string `json:"url"`
}

// ContentResponse documento de una sección (sin historial).
type ContentResponse struct {
	ID                string             `json:"id"`
	Section           string             `json:"section"`
	Mission           string             `json:"mission"`
	Vision            string             `json:"vision"`
	CorporateValues   []string           `json:"corporateValues"`
	Diagnostic        string             `json:"diagnostic"`
	SpecificObjective string             `json:"specificObjective"`
	Tools             []ToolLinkResponse `json:"tools"`
	Version           int64              `json:"version"`
	UpdatedAt         time.Time          `json:"updatedAt"`
}

// HistoryEntryResponse cambio de un campo con el usuario que lo hizo resuelto cuando es posible.
type HistoryEntryResponse struct {
	Field      string               `json:"field"`
	OldValue   string               `json:"oldValue"`
	NewValue   string               `json:"newValue"`
	ChangedBy  string               `json:"changedBy"`
	ChangeDate time.Time            `json:"changeDate"`
	User       *UserSummaryResponse `json:"user,omitempty"`
}
