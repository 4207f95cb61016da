package access_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/intranet-api/internal/domain"
	"github.com/jhoicas/intranet-api/internal/domain/access"
)

func TestCanEditSection_SeccionDesconocida(t *testing.T) {
	err := access.CanEditSection("finanzas", "admin")
	assert.ErrorIs(t, err, domain.ErrInvalidSection)
}

func TestCanEditSection_RolVacio(t *testing.T) {
	err := access.CanEditSection("talento", "")
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestHasRole(t *testing.T) {
	assert.True(t, access.HasRole("servicio", access.DocumentRoles...))
	assert.False(t, access.HasRole("invitado", access.DocumentRoles...))
	assert.False(t, access.HasRole("", "admin"))
}
