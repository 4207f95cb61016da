package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "secreto-de-prueba"

func TestGenerateYParse(t *testing.T) {
	tok, err := Generate(testSecret, "user-1", "admin", "intranet-api", 60)
	require.NoError(t, err)
	assert.NotEmpty(t, tok.ID)
	assert.WithinDuration(t, time.Now().Add(time.Hour), tok.ExpiresAt, 5*time.Second)

	claims, err := Parse(testSecret, tok.Value)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, tok.ID, claims.ID)
	assert.Equal(t, tok.ExpiresAt.Unix(), claims.ExpiresAtTime().Unix())
}

func TestGenerate_JTIUnico(t *testing.T) {
	a, err := Generate(testSecret, "u", "basico", "x", 5)
	require.NoError(t, err)
	b, err := Generate(testSecret, "u", "basico", "x", 5)
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestParse_FirmaIncorrecta(t *testing.T) {
	tok, err := Generate(testSecret, "user-1", "admin", "x", 5)
	require.NoError(t, err)

	_, err = Parse("otro-secreto", tok.Value)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParse_Expirado(t *testing.T) {
	tok, err := Generate(testSecret, "user-1", "admin", "x", -1)
	require.NoError(t, err)

	_, err = Parse(testSecret, tok.Value)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestSecretVacio(t *testing.T) {
	_, err := Generate("", "u", "admin", "x", 5)
	assert.Error(t, err)
	_, err = Parse("", "abc")
	assert.Error(t, err)
}
