package audit_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/intranet-api/internal/application/audit"
	"github.com/jhoicas/intranet-api/internal/application/dto"
	"github.com/jhoicas/intranet-api/internal/application/ports"
	"github.com/jhoicas/intranet-api/internal/domain"
	"github.com/jhoicas/intranet-api/internal/domain/access"
	"github.com/jhoicas/intranet-api/internal/domain/entity"
	"github.com/jhoicas/intranet-api/internal/mocks"
)

func newCounter() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{Name: "test_audit_failures_total"})
}

var admin = access.Actor{ID: "admin-1", Role: entity.RoleAdmin, IP: "10.0.0.1"}

func TestRecord_PersisteConRolEIP(t *testing.T) {
	repo := &mocks.AuditLogRepository{}
	rec := audit.NewRecorder(repo, zerolog.Nop(), newCounter(), nil)

	rec.Record(context.Background(), ports.AuditEntry{
		Actor:       admin,
		Action:      entity.ActionDocUpload,
		Description: "Subió informe.pdf",
		TargetID:    "doc-1",
	})

	require.Len(t, repo.Entries, 1)
	e := repo.Entries[0]
	assert.Equal(t, "admin-1", e.UserID)
	assert.Equal(t, entity.RoleAdmin, e.UserRole)
	assert.Equal(t, "10.0.0.1", e.IPAddress)
	assert.Equal(t, "doc-1", e.TargetID)
	assert.NotEmpty(t, e.ID)
}

func TestRecord_SinActorSeDescarta(t *testing.T) {
	repo := &mocks.AuditLogRepository{}
	rec := audit.NewRecorder(repo, zerolog.Nop(), newCounter(), nil)

	rec.Record(context.Background(), ports.AuditEntry{Action: entity.ActionDocDelete})
	assert.Empty(t, repo.Entries)

	// LOGIN y LOGOUT se registran aunque el actor no esté resuelto.
	rec.Record(context.Background(), ports.AuditEntry{Actor: access.Actor{IP: "1.2.3.4"}, Action: entity.ActionLogin})
	require.Len(t, repo.Entries, 1)
	assert.Equal(t, entity.ActionLogin, repo.Entries[0].ActionType)
}

func TestRecord_AccionDesconocidaSeDescarta(t *testing.T) {
	repo := &mocks.AuditLogRepository{}
	rec := audit.NewRecorder(repo, zerolog.Nop(), newCounter(), nil)

	rec.Record(context.Background(), ports.AuditEntry{Actor: admin, Action: "login"})
	assert.Empty(t, repo.Entries, "no se coerciona el tipo de acción")
}

func TestRecord_FalloDeEscrituraNoSePropaga(t *testing.T) {
	repo := &mocks.AuditLogRepository{
		AppendFunc: func(context.Context, *entity.AuditLog) error { return errors.New("db caída") },
	}
	failures := newCounter()
	rec := audit.NewRecorder(repo, zerolog.Nop(), failures, nil)

	assert.NotPanics(t, func() {
		rec.Record(context.Background(), ports.AuditEntry{Actor: admin, Action: entity.ActionRoleChange})
	})
	assert.Equal(t, 1.0, testutil.ToFloat64(failures))
}

func TestRecord_ContextoCanceladoIgualEscribe(t *testing.T) {
	repo := &mocks.AuditLogRepository{}
	rec := audit.NewRecorder(repo, zerolog.Nop(), newCounter(), nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var seen error
	repo.AppendFunc = func(ctx context.Context, _ *entity.AuditLog) error {
		seen = ctx.Err()
		return nil
	}
	rec.Record(ctx, ports.AuditEntry{Actor: admin, Action: entity.ActionLogout})
	assert.NoError(t, seen)
}

func TestParseAction(t *testing.T) {
	a, err := audit.ParseAction(" TOOL_CREATE ")
	require.NoError(t, err)
	assert.Equal(t, entity.ActionToolCreate, a)

	_, err = audit.ParseAction("DROP_TABLE")
	assert.ErrorIs(t, err, domain.ErrInvalidAction)
}

func TestList_MasRecientesPrimeroYLimite(t *testing.T) {
	repo := &mocks.AuditLogRepository{}
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < audit.RecentLimit+5; i++ {
		repo.Entries = append(repo.Entries, &entity.AuditLog{
			ID:         string(rune('a' + i%26)),
			ActionType: entity.ActionLogin,
			CreatedAt:  base.Add(time.Duration(i) * time.Minute),
		})
	}
	rec := audit.NewRecorder(repo, zerolog.Nop(), newCounter(), nil)

	logs, err := rec.List(context.Background())
	require.NoError(t, err)
	require.Len(t, logs, audit.RecentLimit)
	assert.True(t, logs[0].CreatedAt.After(logs[1].CreatedAt))
}

type fakeRenderer struct {
	got []dto.AuditLogResponse
}

func (f *fakeRenderer) RenderAuditReport(logs []dto.AuditLogResponse, _ time.Time) ([]byte, error) {
	f.got = logs
	return []byte("%PDF-"), nil
}

func TestReport_UsaLasMismasEntradas(t *testing.T) {
	repo := &mocks.AuditLogRepository{}
	repo.Entries = []*entity.AuditLog{{ID: "1", ActionType: entity.ActionLogin}}
	r := &fakeRenderer{}
	rec := audit.NewRecorder(repo, zerolog.Nop(), newCounter(), r)

	pdf, err := rec.Report(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-"), pdf)
	assert.Len(t, r.got, 1)
}

func TestReport_SinRenderer(t *testing.T) {
	rec := audit.NewRecorder(&mocks.AuditLogRepository{}, zerolog.Nop(), newCounter(), nil)
	_, err := rec.Report(context.Background())
	assert.Error(t, err)
}
