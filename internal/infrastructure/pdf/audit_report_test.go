package pdf

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/intranet-api/internal/application/dto"
)

func TestRenderAuditReport(t *testing.T) {
	g := NewAuditReportGenerator(nil)
	logs := []dto.AuditLogResponse{
		{
			ID: "1", UserRole: "admin", ActionType: "CONTENT_UPDATE",
			Description: "Actualizó la sección talento", IPAddress: "10.0.0.1",
			User:        &dto.UserSummaryResponse{ID: "u1", Name: "Ana"},
			CreatedAt:   time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
		},
		{
			ID: "2", ActionType: "LOGIN", Description: strings.Repeat("x", 200),
			CreatedAt: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC),
		},
	}

	out, err := g.RenderAuditReport(logs, time.Now())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestRenderAuditReport_SinRegistros(t *testing.T) {
	out, err := NewAuditReportGenerator(time.UTC).RenderAuditReport(nil, time.Now())
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}

func TestSplitEvery(t *testing.T) {
	assert.Equal(t, []string{"abc", "def", "g"}, splitEvery("abcdefg", 3))
	assert.Nil(t, splitEvery("", 3))
	assert.Equal(t, []string{"ñá", "é"}, splitEvery("ñáé", 2))
}
