package domain

import "errors"

// Errores de dominio (sin dependencias externas).
// Cada capa los envuelve con fmt.Errorf("...: %w") y la capa HTTP los traduce con errors.Is.
var (
	// Validación (400)
	ErrValidation     = errors.New("entrada inválida")
	ErrInvalidSection = errors.New("sección no válida")
	ErrInvalidRole    = errors.New("rol no válido")
	ErrInvalidAction  = errors.New("tipo de acción de auditoría no válido")
	ErrFileNotAllowed = errors.New("tipo de archivo no permitido")
	ErrFileTooLarge   = errors.New("el archivo supera el tamaño máximo permitido")

	// Autenticación (401)
	ErrUnauthorized       = errors.New("no autorizado")
	ErrInvalidCredentials = errors.New("credenciales incorrectas")
	ErrTokenRevoked       = errors.New("token revocado")

	// Permisos (403)
	ErrForbidden = errors.New("acceso denegado")

	// No encontrado (404)
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrUserNotFound = errors.New("usuario no encontrado")
	ErrToolNotFound = errors.New("herramienta no encontrada")

	// Conflicto (409)
	ErrConflict        = errors.New("conflicto con el estado actual")
	ErrDuplicateUser   = errors.New("el usuario ya existe (email o documento duplicado)")
	ErrVersionConflict = errors.New("el registro fue modificado por otra petición")

	// Integridad de almacenamiento (404 con código propio)
	ErrPhysicalFileMissing = errors.New("archivo físico no encontrado, la referencia está rota")
)
