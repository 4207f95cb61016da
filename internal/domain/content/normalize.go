package content

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jhoicas/intranet-api/internal/domain/entity"
)

// NormalizeToolName pasa a minúsculas y elimina todo espacio en blanco.
// "Marco Legal", "marco legal" y "MARCOLEGAL" producen la misma llave.
// Un Caser no es seguro entre goroutines, por eso se crea en cada llamada.
func NormalizeToolName(name string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, cases.Lower(language.Und).String(name))
}

// FindTool devuelve el índice de la herramienta cuyo nombre normalizado coincide, o -1.
func FindTool(tools []entity.ToolLink, name string) int {
	want := NormalizeToolName(name)
	for i, t := range tools {
		if NormalizeToolName(t.Name) == want {
			return i
		}
	}
	return -1
}
