package entity

import "time"

// ToolConfig define qué tipo de valor acepta una herramienta del catálogo.
type ToolConfig struct {
	AllowsURL  bool
	AllowsFile bool
}

// Tool es una herramienta configurable del catálogo (independiente de Content).
type Tool struct {
	ID               string
	Title            string
	Description      string
	Section          string
	Category         string // agrupación libre definida por el usuario
	Config           ToolConfig
	URLValue         string
	FileURL          string // localizador en el almacenamiento de archivos
	OriginalFileName string
	CreatedBy        string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
