package postgres

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/jhoicas/intranet-api/pkg/config"
)

// Límites del pool: el portal tiene poco tráfico concurrente.
const (
	maxConns        = 15
	minConns        = 1
	maxConnLifetime = time.Hour
	maxConnIdleTime = 15 * time.Minute
	pingTimeout     = 10 * time.Second
)

// NewPool crea el pool de conexiones PostgreSQL y verifica la conexión.
// Los hosts se marcan con IPv4 cuando es posible: los contenedores suelen no tener ruta IPv6
// y algunos proveedores administrados resuelven primero AAAA.
func NewPool(ctx context.Context, cfg config.DBConfig, appName string, log zerolog.Logger) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(preferIPv4(cfg.ConnectionString()))
	if err != nil {
		return nil, fmt.Errorf("parse DSN: %w", err)
	}
	poolConfig.ConnConfig.DialFunc = dialIPv4
	if appName != "" {
		poolConfig.ConnConfig.RuntimeParams["application_name"] = appName
	}
	poolConfig.MaxConns = maxConns
	poolConfig.MinConns = minConns
	poolConfig.MaxConnLifetime = maxConnLifetime
	poolConfig.MaxConnIdleTime = maxConnIdleTime
	poolConfig.HealthCheckPeriod = time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("crear pool: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping DB: %w", err)
	}
	log.Info().
		Str("host", poolConfig.ConnConfig.Host).
		Str("database", poolConfig.ConnConfig.Database).
		Msg("conexión a PostgreSQL establecida")
	return pool, nil
}

// dialIPv4 conecta por tcp4 cuando el host tiene dirección IPv4; si no, usa el dial normal.
func dialIPv4(ctx context.Context, network, addr string) (net.Conn, error) {
	var d net.Dialer
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return nil, err
	}
	if ip, err := lookupIPv4(ctx, host); err == nil {
		return d.DialContext(ctx, "tcp4", net.JoinHostPort(ip, port))
	}
	return d.DialContext(ctx, network, addr)
}

// preferIPv4 reemplaza el host del DSN en formato URL por su IPv4 si existe.
// DSN en formato clave=valor se devuelven sin cambios (el dial ya fuerza IPv4).
func preferIPv4(dsn string) string {
	u, err := url.Parse(dsn)
	if err != nil || u.Host == "" {
		return dsn
	}
	ip, err := lookupIPv4(context.Background(), u.Hostname())
	if err != nil {
		return dsn
	}
	port := u.Port()
	if port == "" {
		port = "5432"
	}
	u.Host = net.JoinHostPort(ip, port)
	return u.String()
}

// lookupIPv4 resuelve host a IPv4 con el resolver del sistema y, si falla,
// con un DNS público (dentro de Docker el DNS puede devolver solo IPv6).
func lookupIPv4(ctx context.Context, host string) (string, error) {
	if ip := net.ParseIP(host); ip != nil {
		if ip.To4() != nil {
			return host, nil
		}
		return "", fmt.Errorf("%s es IPv6", host)
	}
	resolvers := []*net.Resolver{
		net.DefaultResolver,
		{
			PreferGo: true,
			Dial: func(ctx context.Context, _, _ string) (net.Conn, error) {
				var d net.Dialer
				return d.DialContext(ctx, "udp", "8.8.8.8:53")
			},
		},
	}
	var lastErr error
	for _, r := range resolvers {
		ips, err := r.LookupIP(ctx, "ip4", host)
		if err != nil {
			lastErr = err
			continue
		}
		if len(ips) > 0 {
			return ips[0].String(), nil
		}
	}
	if lastErr == nil {
		lastErr = fmt.Errorf("%s sin dirección IPv4", host)
	}
	return "", lastErr
}
