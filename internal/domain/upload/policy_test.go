package upload

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/intranet-api/internal/domain"
)

func TestIsAllowedMIME(t *testing.T) {
	for _, ok := range []string{
		"application/pdf",
		"application/msword",
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		"image/png",
		"IMAGE/JPEG",
		"application/pdf; charset=binary",
	} {
		assert.True(t, IsAllowedMIME(ok), ok)
	}
	for _, bad := range []string{"", "text/plain", "application/zip", "application/x-msdownload"} {
		assert.False(t, IsAllowedMIME(bad), bad)
	}
}

func TestCheck(t *testing.T) {
	assert.NoError(t, Check("a.pdf", "application/pdf", 100, 0))
	assert.ErrorIs(t, Check("a.exe", "application/x-msdownload", 100, 0), domain.ErrFileNotAllowed)
	assert.ErrorIs(t, Check("a.pdf", "application/pdf", DefaultMaxBytes+1, 0), domain.ErrFileTooLarge)
	assert.ErrorIs(t, Check("a.pdf", "application/pdf", 11, 10), domain.ErrFileTooLarge)
	assert.ErrorIs(t, Check(" ", "application/pdf", 1, 0), domain.ErrValidation)
}

func TestObjectKey(t *testing.T) {
	now := time.UnixMilli(1700000000123)
	assert.Equal(t, "1020304050-1700000000123.pdf", ObjectKey("1020304050", "Informe Final.PDF", now))
	assert.Equal(t, "unknown-1700000000123", ObjectKey("", "sin-extension", now))
	assert.Equal(t, "tools/abc-1700000000123.png", ObjectKey("tools/abc", "../../etc/logo.png", now))
}
