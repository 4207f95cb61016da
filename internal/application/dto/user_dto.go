package dto

import "time"

// RegisterRequest entrada para registro (solo admin). La contraseña inicial es el número de documento.
type RegisterRequest struct {
	Name           string `json:"name" validate:"required,max=200"`
	Email          string `json:"email" validate:"required,email"`
	DocumentType   string `json:"documentType" validate:"required,oneof=CC TI CE NIT"`
	DocumentNumber string `json:"documentNumber" validate:"required"`
	Position       string `json:"position" validate:"omitempty,max=200"`
	Area           string `json:"area" validate:"omitempty,max=200"`
	Role           string `json:"role" validate:"omitempty,oneof=admin talento servicio basico invitado"`
}

// LoginRequest entrada para login: el número de documento es la llave de acceso.
type LoginRequest struct {
	DocumentNumber string `json:"documentNumber" validate:"required"`
	Password       string `json:"password" validate:"required"`
}

// LoginResponse salida con token JWT y datos del usuario.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// ChangePasswordRequest entrada para cambio de contraseña.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword" validate:"required,min=6"`
}

// ChangeRoleRequest entrada para cambiar el rol de otro usuario (solo admin).
type ChangeRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=admin talento servicio basico invitado"`
}

// UserResponse salida de un usuario (sin hash).
type UserResponse struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	Email              string    `json:"email"`
	DocumentType       string    `json:"documentType"`
	DocumentNumber     string    `json:"documentNumber,omitempty"`
	Position           string    `json:"position"`
	Area               string    `json:"area"`
	Role               string    `json:"role"`
	MustChangePassword bool      `json:"mustChangePassword"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}
