// seed_admin crea el primer usuario administrador del portal si aún no existe.
//
// Uso: go run ./cmd/seed_admin -document 1000 -email admin@empresa.com -name "Administrador"
// La contraseña se toma de SEED_ADMIN_PASSWORD; si está vacía se usa el número de documento
// y el usuario queda obligado a cambiarla en el primer login.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/intranet-api/internal/domain/entity"
	"github.com/jhoicas/intranet-api/internal/infrastructure/postgres"
	"github.com/jhoicas/intranet-api/pkg/config"
	"github.com/jhoicas/intranet-api/pkg/logger"
)

func main() {
	document := flag.String("document", os.Getenv("SEED_ADMIN_DOCUMENT"), "número de documento (llave de login)")
	email := flag.String("email", os.Getenv("SEED_ADMIN_EMAIL"), "correo del administrador")
	name := flag.String("name", "Administrador", "nombre completo")
	flag.Parse()

	if strings.TrimSpace(*document) == "" || strings.TrimSpace(*email) == "" {
		fmt.Fprintln(os.Stderr, "Uso: seed_admin -document <número> -email <correo> [-name <nombre>]")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB, cfg.App.Name+"-seed", log.Zerolog())
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if cfg.DB.AutoMigrate {
		if err := postgres.Migrate(pool); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
	}

	users := postgres.NewUserRepository(pool)
	exists, err := users.ExistsByEmailOrDocument(ctx, *email, *document)
	if err != nil {
		log.Fatal().Err(err).Msg("buscar usuario")
	}
	if exists {
		log.Info().Str("document", *document).Msg("el administrador ya existe, nada que hacer")
		return
	}

	password := os.Getenv("SEED_ADMIN_PASSWORD")
	mustChange := password == ""
	if mustChange {
		password = *document
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal().Err(err).Msg("hash de contraseña")
	}

	now := time.Now().UTC()
	admin := &entity.User{
		ID:                 uuid.New().String(),
		Name:               strings.TrimSpace(*name),
		Email:              strings.TrimSpace(*email),
		DocumentType:       entity.DocumentTypeCC,
		DocumentNumber:     strings.TrimSpace(*document),
		Position:           "Administrador",
		Area:               "General",
		PasswordHash:       string(hash),
		Role:               entity.RoleAdmin,
		MustChangePassword: mustChange,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := users.Create(ctx, admin); err != nil {
		log.Fatal().Err(err).Msg("crear administrador")
	}
	log.Info().Str("id", admin.ID).Str("document", admin.DocumentNumber).Bool("must_change_password", mustChange).Msg("administrador creado")
}
