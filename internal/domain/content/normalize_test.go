package content_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/intranet-api/internal/domain/content"
	"github.com/jhoicas/intranet-api/internal/domain/entity"
)

func TestNormalizeToolName(t *testing.T) {
	cases := map[string]string{
		"Marco Legal":          "marcolegal",
		"marco legal":          "marcolegal",
		"MARCOLEGAL":           "marcolegal",
		" Marco\tLegal \n":     "marcolegal",
		"Proceso de Inducción": "procesodeinducción",
	}
	for in, want := range cases {
		assert.Equal(t, want, content.NormalizeToolName(in), in)
	}
}

func TestFindTool_InsensibleAMayusculasYEspacios(t *testing.T) {
	tools := content.EmbeddedDefaults().ToolsFor(entity.SectionAdmin)

	for _, name := range []string{"Marco Legal", "marco legal", "MARCOLEGAL"} {
		assert.Equal(t, 0, content.FindTool(tools, name), name)
	}
	assert.Equal(t, -1, content.FindTool(tools, "Matriz BCG"))
}
