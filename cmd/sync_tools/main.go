// sync_tools reaplica el catálogo de herramientas por defecto sobre el contenido ya
// guardado, conservando las URL de las herramientas que sigan existiendo.
//
// Uso: go run ./cmd/sync_tools [-section servicio] [-dry-run]
// Sin -section recorre todas las secciones. CONTENT_DEFAULTS_FILE permite usar un catálogo externo.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/jhoicas/intranet-api/internal/domain"
	"github.com/jhoicas/intranet-api/internal/domain/content"
	"github.com/jhoicas/intranet-api/internal/domain/entity"
	"github.com/jhoicas/intranet-api/internal/infrastructure/postgres"
	"github.com/jhoicas/intranet-api/pkg/config"
	"github.com/jhoicas/intranet-api/pkg/logger"
)

func main() {
	section := flag.String("section", "", "sección a sincronizar (vacío = todas)")
	dryRun := flag.Bool("dry-run", false, "muestra los cambios sin guardarlos")
	flag.Parse()

	sections := entity.Sections
	if *section != "" {
		if !entity.IsValidSection(*section) {
			fmt.Fprintf(os.Stderr, "Sección desconocida %q\n", *section)
			os.Exit(2)
		}
		sections = []string{*section}
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	defaults, err := content.LoadDefaults(cfg.Content.DefaultsFile)
	if err != nil {
		log.Fatal().Err(err).Msg("catálogo de herramientas por defecto")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB, cfg.App.Name+"-sync-tools", log.Zerolog())
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	repo := postgres.NewContentRepository(pool)
	failed := false
	for _, s := range sections {
		if err := syncSection(ctx, repo, defaults, s, *dryRun, log); err != nil {
			log.Error().Err(err).Str("section", s).Msg("sincronización fallida")
			failed = true
		}
	}
	if failed {
		os.Exit(1)
	}
}

func syncSection(ctx context.Context, repo *postgres.ContentRepo, defaults *content.Defaults, section string, dryRun bool, log *logger.Logger) error {
	now := time.Now().UTC()
	c, err := repo.FindBySection(ctx, section)
	if err != nil {
		return err
	}
	if c == nil {
		c = content.New(section, defaults, now)
	} else {
		before := content.Serialize(c.Tools)
		c.Tools = content.MergeTools(c.Tools, defaults.ToolsFor(section))
		if content.Serialize(c.Tools) == before {
			log.Info().Str("section", section).Msg("sin cambios")
			return nil
		}
		c.UpdatedAt = now
	}

	log.Info().Str("section", section).Int("tools", len(c.Tools)).Bool("dry_run", dryRun).Msg("herramientas sincronizadas")
	if dryRun {
		return nil
	}
	if err := repo.Save(ctx, c); err != nil {
		if errors.Is(err, domain.ErrVersionConflict) {
			return fmt.Errorf("la sección cambió durante la sincronización, reintente: %w", err)
		}
		return err
	}
	return nil
}
