// Package redis guarda la lista de tokens revocados (logout) en Redis.
package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/jhoicas/intranet-api/internal/application/ports"
)

var _ ports.TokenRevoker = (*Revoker)(nil)

const keyPrefix = "revoked:"

// Revoker guarda cada jti revocado hasta la expiración natural del token.
type Revoker struct {
	client *goredis.Client
	now    func() time.Time
}

// Connect abre la conexión a partir de REDIS_URL y verifica con PING.
func Connect(ctx context.Context, url string) (*goredis.Client, error) {
	opts, err := goredis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("redis: url inválida: %w", err)
	}
	client := goredis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis: ping: %w", err)
	}
	return client, nil
}

// NewRevoker construye el adaptador sobre un cliente ya conectado.
func NewRevoker(client *goredis.Client) *Revoker {
	return &Revoker{client: client, now: time.Now}
}

// Revoke marca el token; un token ya expirado no necesita guardarse.
func (r *Revoker) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error {
	if tokenID == "" {
		return nil
	}
	ttl := expiresAt.Sub(r.now())
	if ttl <= 0 {
		return nil
	}
	if err := r.client.Set(ctx, keyPrefix+tokenID, 1, ttl).Err(); err != nil {
		return fmt.Errorf("redis: revocar token: %w", err)
	}
	return nil
}

func (r *Revoker) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	if tokenID == "" {
		return false, nil
	}
	n, err := r.client.Exists(ctx, keyPrefix+tokenID).Result()
	if err != nil {
		return false, fmt.Errorf("redis: consultar revocación: %w", err)
	}
	return n > 0, nil
}
