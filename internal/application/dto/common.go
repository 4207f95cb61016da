package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// MessageResponse respuesta simple de confirmación.
type MessageResponse struct {
	Message string `json:"message"`
}

// UserSummaryResponse datos mínimos de un usuario embebidos en otras respuestas.
type UserSummaryResponse struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	DocumentNumber string `json:"documentNumber,omitempty"`
	Role           string `json:"role,omitempty"`
}
