package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/intranet-api/internal/application/audit"
	"github.com/jhoicas/intranet-api/internal/application/auth"
	appcontent "github.com/jhoicas/intranet-api/internal/application/content"
	"github.com/jhoicas/intranet-api/internal/application/document"
	"github.com/jhoicas/intranet-api/internal/application/tool"
	"github.com/jhoicas/intranet-api/internal/application/usecase"
	"github.com/jhoicas/intranet-api/internal/domain/content"
	"github.com/jhoicas/intranet-api/internal/domain/entity"
	"github.com/jhoicas/intranet-api/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/intranet-api/internal/interfaces/http"
	"github.com/jhoicas/intranet-api/internal/mocks"
	pkgjwt "github.com/jhoicas/intranet-api/pkg/jwt"
)

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testIssuer    = "intranet-api-test"
	testExpMin    = 60
	testPassword  = "secreto123"
)

// server aplicación completa sobre repositorios en memoria.
type server struct {
	app       *fiber.App
	users     *mocks.UserRepository
	contents  *mocks.ContentRepository
	tools     *mocks.ToolRepository
	documents *mocks.DocumentRepository
	auditLogs *mocks.AuditLogRepository
	storage   *mocks.FileStorage
	revoker   *mocks.TokenRevoker
}

func newUser(t *testing.T, id, role, docNumber string) *entity.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	require.NoError(t, err)
	now := time.Now().UTC()
	return &entity.User{
		ID: id, Name: "Usuario " + role, Email: id + "@intranet.test",
		DocumentType: entity.DocumentTypeCC, DocumentNumber: docNumber,
		PasswordHash: string(hash), Role: role, CreatedAt: now, UpdatedAt: now,
	}
}

func newServer(t *testing.T) *server {
	t.Helper()
	s := &server{
		users: mocks.NewUserRepository(
			newUser(t, "admin-1", entity.RoleAdmin, "1000"),
			newUser(t, "admin-2", entity.RoleAdmin, "1001"),
			newUser(t, "talento-1", entity.RoleTalento, "2000"),
			newUser(t, "servicio-1", entity.RoleServicio, "3000"),
			newUser(t, "invitado-1", entity.RoleInvitado, "4000"),
		),
		contents:  mocks.NewContentRepository(),
		tools:     mocks.NewToolRepository(),
		documents: mocks.NewDocumentRepository(),
		auditLogs: &mocks.AuditLogRepository{},
		storage:   mocks.NewFileStorage(),
		revoker:   &mocks.TokenRevoker{},
	}

	log := zerolog.Nop()
	recorder := audit.NewRecorder(s.auditLogs, log, nil, pdf.NewAuditReportGenerator(time.UTC))
	authUC := auth.NewAuthUseCase(s.users, s.revoker, recorder,
		auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer}, true)

	s.app = fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler(log)})
	apphttp.Router(s.app, apphttp.RouterDeps{
		AuthUC:     authUC,
		UserUC:     usecase.NewUserUseCase(s.users, recorder),
		Content:    appcontent.NewPipeline(s.contents, s.users, content.EmbeddedDefaults(), recorder, log, nil),
		ToolUC:     tool.NewUseCase(s.tools, s.storage, recorder, log, 0),
		DocumentUC: document.NewUseCase(s.documents, s.storage, recorder, log, 0),
		Audit:      recorder,
		JWTSecret:  testJWTSecret,
		Log:        log,
	})
	return s
}

// bearer genera un token válido para el usuario.
func bearer(t *testing.T, userID, role string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, userID, role, testIssuer, testExpMin)
	require.NoError(t, err)
	return "Bearer " + tok.Value
}

func jsonRequest(t *testing.T, method, path string, body any) *http.Request {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req
}

func (s *server) do(t *testing.T, method, path, auth string, body any) *http.Response {
	t.Helper()
	req := jsonRequest(t, method, path, body)
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	return s.send(t, req)
}

func (s *server) send(t *testing.T, req *http.Request) *http.Response {
	t.Helper()
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

// multipartRequest arma un formulario con un archivo (content type explícito) y campos de texto.
func multipartRequest(t *testing.T, method, path, auth, fileName, contentType string, data []byte, fields map[string]string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if fileName != "" {
		h := textproto.MIMEHeader{}
		h.Set("Content-Disposition", `form-data; name="file"; filename="`+fileName+`"`)
		h.Set("Content-Type", contentType)
		part, err := w.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	return req
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}
