package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/intranet-api/internal/application/audit"
	"github.com/jhoicas/intranet-api/internal/application/auth"
	appcontent "github.com/jhoicas/intranet-api/internal/application/content"
	"github.com/jhoicas/intranet-api/internal/application/document"
	"github.com/jhoicas/intranet-api/internal/application/tool"
	"github.com/jhoicas/intranet-api/internal/application/usecase"
	"github.com/jhoicas/intranet-api/internal/domain/access"
	"github.com/jhoicas/intranet-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC     *auth.AuthUseCase
	UserUC     *usecase.UserUseCase
	Content    *appcontent.Pipeline
	ToolUC     *tool.UseCase
	DocumentUC *document.UseCase
	Audit      *audit.Recorder
	JWTSecret  string
	Health     map[string]Pinger
	Log        zerolog.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")
	api.Get("/health", Health(deps.Health))

	authHandler := NewAuthHandler(deps.AuthUC, deps.Log)
	requireAuth := AuthMiddleware(deps.JWTSecret, deps.UserUC, deps.AuthUC)
	adminOnly := RequireRole(entity.RoleAdmin)

	// Auth
	authGroup := api.Group("/auth")
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/register", requireAuth, adminOnly, authHandler.Register)
	authGroup.Post("/logout", requireAuth, authHandler.Logout)
	authGroup.Put("/change-password", requireAuth, authHandler.ChangePassword)

	// Contenido por sección
	contentHandler := NewContentHandler(deps.Content, deps.Log)
	content := api.Group("/content", requireAuth)
	content.Get("/:section/history", adminOnly, contentHandler.History)
	content.Get("/:section", contentHandler.Get)
	content.Put("/:section", RequireSectionEditor("section"), contentHandler.Update)
	content.Put("/:section/tool/:toolName", RequireSectionEditor("section"), contentHandler.UpdateTool)

	// Catálogo de herramientas (la sección se verifica en el caso de uso)
	toolHandler := NewToolHandler(deps.ToolUC, deps.Log)
	tools := api.Group("/tools", requireAuth)
	tools.Post("/", toolHandler.Create)
	tools.Get("/:section", toolHandler.ListBySection)
	tools.Put("/:id/data", toolHandler.UpdateData)
	tools.Delete("/:id", toolHandler.Delete)

	// Documentos
	documentHandler := NewDocumentHandler(deps.DocumentUC, deps.Log)
	documentRoles := RequireRole(access.DocumentRoles...)
	documents := api.Group("/documents", requireAuth)
	documents.Post("/", documentHandler.Upload)
	documents.Post("/upload", documentHandler.Upload)
	documents.Get("/", documentRoles, documentHandler.List)
	documents.Get("/:id/download", documentHandler.Download)
	documents.Delete("/:id", documentRoles, documentHandler.Delete)

	// Usuarios
	userHandler := NewUserHandler(deps.UserUC, deps.Log)
	users := api.Group("/users", requireAuth)
	users.Put("/change-password", authHandler.FirstLoginPassword)
	users.Get("/", adminOnly, userHandler.List)
	users.Put("/:id", adminOnly, userHandler.ChangeRole)

	// Auditoría
	auditHandler := NewAuditHandler(deps.Audit, deps.Log)
	auditGroup := api.Group("/audit", requireAuth, adminOnly)
	auditGroup.Get("/logs", auditHandler.List)
	auditGroup.Get("/logs/report.pdf", auditHandler.Report)
}
