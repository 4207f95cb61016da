package ports

import (
	"context"
	"time"
)

// TokenRevoker lista de revocación de tokens (logout). El adaptador Redis guarda cada jti hasta su expiración.
type TokenRevoker interface {
	Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// NoopRevoker se usa cuando no hay Redis configurado: logout solo queda auditado.
type NoopRevoker struct{}

func (NoopRevoker) Revoke(context.Context, string, time.Time) error { return nil }

func (NoopRevoker) IsRevoked(context.Context, string) (bool, error) { return false, nil }
