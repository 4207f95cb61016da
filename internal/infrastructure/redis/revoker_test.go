package redis

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testClient se conecta al Redis de pruebas; omite el test si no está disponible.
func testClient(t *testing.T) *goredis.Client {
	t.Helper()
	url := os.Getenv("REDIS_TEST_URL")
	if url == "" {
		url = "redis://localhost:6379/15"
	}
	client, err := Connect(context.Background(), url)
	if err != nil {
		t.Skipf("skipping integration test: Redis no disponible: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestRevoker_RevokeEIsRevoked(t *testing.T) {
	client := testClient(t)
	r := NewRevoker(client)
	ctx := context.Background()
	jti := uuid.NewString()
	t.Cleanup(func() { client.Del(ctx, keyPrefix+jti) })

	revoked, err := r.IsRevoked(ctx, jti)
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, r.Revoke(ctx, jti, time.Now().Add(time.Minute)))

	revoked, err = r.IsRevoked(ctx, jti)
	require.NoError(t, err)
	assert.True(t, revoked)

	ttl, err := client.TTL(ctx, keyPrefix+jti).Result()
	require.NoError(t, err)
	assert.LessOrEqual(t, ttl, time.Minute)
}

func TestRevoker_TokenExpiradoNoSeGuarda(t *testing.T) {
	client := testClient(t)
	r := NewRevoker(client)
	ctx := context.Background()
	jti := uuid.NewString()

	require.NoError(t, r.Revoke(ctx, jti, time.Now().Add(-time.Minute)))

	revoked, err := r.IsRevoked(ctx, jti)
	require.NoError(t, err)
	assert.False(t, revoked)
}
