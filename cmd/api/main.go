package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/intranet-api/internal/application/audit"
	"github.com/jhoicas/intranet-api/internal/application/auth"
	appcontent "github.com/jhoicas/intranet-api/internal/application/content"
	"github.com/jhoicas/intranet-api/internal/application/document"
	"github.com/jhoicas/intranet-api/internal/application/ports"
	"github.com/jhoicas/intranet-api/internal/application/tool"
	"github.com/jhoicas/intranet-api/internal/application/usecase"
	"github.com/jhoicas/intranet-api/internal/domain/content"
	"github.com/jhoicas/intranet-api/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/intranet-api/internal/infrastructure/pdf"
	"github.com/jhoicas/intranet-api/internal/infrastructure/postgres"
	infraredis "github.com/jhoicas/intranet-api/internal/infrastructure/redis"
	"github.com/jhoicas/intranet-api/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/intranet-api/internal/interfaces/http"
	"github.com/jhoicas/intranet-api/pkg/config"
	"github.com/jhoicas/intranet-api/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	if cfg.JWT.Secret == "" {
		panic("JWT_SECRET es obligatorio")
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	zl := log.Zerolog()
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.Storage.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB, cfg.App.Name, log.Component("postgres").Zerolog())
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if cfg.DB.AutoMigrate {
		if err := postgres.Migrate(pool); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
	}

	defaults, err := content.LoadDefaults(cfg.Content.DefaultsFile)
	if err != nil {
		log.Fatal().Err(err).Str("file", cfg.Content.DefaultsFile).Msg("catálogo de herramientas por defecto")
	}

	files, err := storage.New(cfg.Storage, log.Component("storage").Zerolog())
	if err != nil {
		log.Fatal().Err(err).Msg("almacenamiento de archivos")
	}

	health := map[string]httpRouter.Pinger{"postgres": pool}

	// Sin Redis el logout queda auditado pero el token sigue siendo válido hasta expirar.
	var revoker ports.TokenRevoker = ports.NoopRevoker{}
	if cfg.Redis.URL != "" {
		client, err := infraredis.Connect(ctx, cfg.Redis.URL)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer client.Close()
		revoker = infraredis.NewRevoker(client)
		health["redis"] = httpRouter.PingFunc(func(ctx context.Context) error {
			return client.Ping(ctx).Err()
		})
	} else {
		log.Warn().Msg("REDIS_URL vacío: los tokens no se revocan en logout")
	}

	userRepo := postgres.NewUserRepository(pool)
	contentRepo := postgres.NewContentRepository(pool)
	toolRepo := postgres.NewToolRepository(pool)
	documentRepo := postgres.NewDocumentRepository(pool)
	auditRepo := postgres.NewAuditLogRepository(pool)

	recorder := audit.NewRecorder(auditRepo, zl, metrics.AuditWriteFailures, infrapdf.NewAuditReportGenerator(nil))
	authUC := auth.NewAuthUseCase(userRepo, revoker, recorder, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, cfg.Auth.StrictPasswordChange)
	userUC := usecase.NewUserUseCase(userRepo, recorder)
	pipeline := appcontent.NewPipeline(contentRepo, userRepo, defaults, recorder, zl, metrics.ContentVersionConflicts)
	toolUC := tool.NewUseCase(toolRepo, files, recorder, zl, cfg.Storage.MaxUploadBytes)
	documentUC := document.NewUseCase(documentRepo, files, recorder, zl, cfg.Storage.MaxUploadBytes)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ErrorHandler: httpRouter.ErrorHandler(zl),
		// margen para los campos del formulario multipart
		BodyLimit:    int(cfg.Storage.MaxUploadBytes) + 1024*1024,
		ReadTimeout:  time.Second * 30,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Join(cfg.HTTP.AllowedOrigins, ","),
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowCredentials: true,
	}))
	app.Use(httpRouter.RequestLogger(log.Component("http").Zerolog()))

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "Intranet API",
		}))
	}

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:     authUC,
		UserUC:     userUC,
		Content:    pipeline,
		ToolUC:     toolUC,
		DocumentUC: documentUC,
		Audit:      recorder,
		JWTSecret:  cfg.JWT.Secret,
		Health:     health,
		Log:        zl,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
