package dto

import "github.com/jhoicas/intranet-api/internal/domain/entity"

// NewUserResponse convierte la entidad en respuesta sin exponer el hash.
func NewUserResponse(u *entity.User) *UserResponse {
	if u == nil {
		return nil
	}
	return &UserResponse{
		ID:                 u.ID,
		Name:               u.Name,
		Email:              u.Email,
		DocumentType:       u.DocumentType,
		DocumentNumber:     u.DocumentNumber,
		Position:           u.Position,
		Area:               u.Area,
		Role:               u.Role,
		MustChangePassword: u.MustChangePassword,
		CreatedAt:          u.CreatedAt,
		UpdatedAt:          u.UpdatedAt,
	}
}

// NewUserSummaryResponse convierte el resumen de usuario (nil si no hay).
func NewUserSummaryResponse(s *entity.UserSummary) *UserSummaryResponse {
	if s == nil {
		return nil
	}
	return &UserSummaryResponse{
		ID:             s.ID,
		Name:           s.Name,
		Email:          s.Email,
		DocumentNumber: s.DocumentNumber,
		Role:           s.Role,
	}
}

// NewContentResponse convierte el documento de sección omitiendo el historial.
func NewContentResponse(c *entity.Content) *ContentResponse {
	if c == nil {
		return nil
	}
	tools := make([]ToolLinkResponse, len(c.Tools))
	for i, t := range c.Tools {
		tools[i] = ToolLinkResponse{Name: t.Name, Type: t.Type, URL: t.URL}
	}
	values := c.CorporateValues
	if values == nil {
		values = []string{}
	}
	return &ContentResponse{
		ID:                c.ID,
		Section:           c.Section,
		Mission:           c.Mission,
		Vision:            c.Vision,
		CorporateValues:   values,
		Diagnostic:        c.Diagnostic,
		SpecificObjective: c.SpecificObjective,
		Tools:             tools,
		Version:           c.Version,
		UpdatedAt:         c.UpdatedAt,
	}
}

// NewToolResponse convierte una herramienta del catálogo.
func NewToolResponse(t *entity.Tool) ToolResponse {
	return ToolResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Section:     t.Section,
		Category:    t.Category,
		Config: ToolConfigResponse{
			AllowsURL:  t.Config.AllowsURL,
			AllowsFile: t.Config.AllowsFile,
		},
		URLValue:         t.URLValue,
		FileURL:          t.FileURL,
		OriginalFileName: t.OriginalFileName,
		CreatedBy:        t.CreatedBy,
		CreatedAt:        t.CreatedAt,
		UpdatedAt:        t.UpdatedAt,
	}
}

// NewDocumentResponse convierte la metadata de un documento.
func NewDocumentResponse(d *entity.Document) DocumentResponse {
	return DocumentResponse{
		ID:           d.ID,
		FileName:     d.FileName,
		FilePath:     d.FilePath,
		MimeType:     d.MimeType,
		FileSize:     d.FileSize,
		UploadedBy:   d.UploadedBy,
		UploaderRole: d.UploaderRole,
		Category:     d.Category,
		Uploader:     NewUserSummaryResponse(d.Uploader),
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

// NewAuditLogResponse convierte una entrada de auditoría.
func NewAuditLogResponse(l *entity.AuditLog) AuditLogResponse {
	return AuditLogResponse{
		ID:          l.ID,
		UserID:      l.UserID,
		UserRole:    l.UserRole,
		ActionType:  l.ActionType,
		Description: l.Description,
		TargetID:    l.TargetID,
		IPAddress:   l.IPAddress,
		User:        NewUserSummaryResponse(l.User),
		CreatedAt:   l.CreatedAt,
	}
}
