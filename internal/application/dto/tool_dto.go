package dto

import "time"

// CreateToolRequest entrada para registrar una herramienta en el catálogo.
type CreateToolRequest struct {
	Title       string            `json:"title" validate:"required,max=200"`
	Description string            `json:"description"`
	Section     string            `json:"section" validate:"required"`
	Category    string            `json:"category" validate:"required"`
	Config      ToolConfigRequest `json:"config"`
}

// ToolConfigRequest capacidades declaradas al crear la herramienta.
type ToolConfigRequest struct {
	AllowsURL  bool `json:"allowsUrl"`
	AllowsFile bool `json:"allowsFile"`
}

// ToolConfigResponse capacidades de una herramienta.
type ToolConfigResponse struct {
	AllowsURL  bool `json:"allowsUrl"`
	AllowsFile bool `json:"allowsFile"`
}

// ToolResponse herramienta del catálogo.
type ToolResponse struct {
	ID               string             `json:"id"`
	Title            string             `json:"title"`
	Description      string             `json:"description"`
	Section          string             `json:"section"`
	Category         string             `json:"category"`
	Config           ToolConfigResponse `json:"config"`
	URLValue         string             `json:"urlValue"`
	FileURL          string             `json:"fileUrl"`
	OriginalFileName string             `json:"originalFileName"`
	CreatedBy        string             `json:"createdBy"`
	CreatedAt        time.Time          `json:"createdAt"`
	UpdatedAt        time.Time          `json:"updatedAt"`
}

// ToolCategoryGroup herramientas de una categoría.
type ToolCategoryGroup struct {
	Category string         `json:"category"`
	Tools    []ToolResponse `json:"tools"`
}

// ToolsBySectionResponse salida de GET /tools/:section agrupada por categoría.
type ToolsBySectionResponse struct {
	Section    string              `json:"section"`
	Categories []ToolCategoryGroup `json:"categories"`
}
