package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/wmslabs/composicao-api/internal/application/auth"
	"github.com/wmslabs/composicao-api/internal/application/composition"
	"github.com/wmslabs/composicao-api/internal/application/packaging"
	infrapdf "github.com/wmslabs/composicao-api/internal/infrastructure/pdf"
	"github.com/wmslabs/composicao-api/internal/infrastructure/postgres"
	"github.com/wmslabs/composicao-api/internal/infrastructure/xmlreport"
	httpRouter "github.com/wmslabs/composicao-api/internal/interfaces/http"
	"github.com/wmslabs/composicao-api/pkg/config"
	"github.com/wmslabs/composicao-api/pkg/logger"

	_ "github.com/wmslabs/composicao-api/docs"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("carregar configuração: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicação")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexão ao PostgreSQL")
	}
	defer pool.Close()

	productRepo := postgres.NewProductRepository(pool)
	packagingRepo := postgres.NewPackagingRepository(pool)
	palletRepo := postgres.NewPalletRepository(pool)
	compRepo := postgres.NewCompositionRepository(pool)
	reportRepo := postgres.NewReportRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	resolver := packaging.NewResolver(productRepo, packagingRepo)

	pdfRenderer := infrapdf.NewMarotoReportRenderer()
	romaneioBuilder := xmlreport.NewRomaneioBuilder()

	compositionUC := composition.NewUseCase(
		txRunner, compRepo, palletRepo, reportRepo, resolver,
		pdfRenderer, romaneioBuilder,
	)
	authUC := auth.NewUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Composição de Paletes API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		CompositionUC: compositionUC,
		Resolver:      resolver,
		AuthUC:        authUC,
		JWTSecret:     cfg.JWT.Secret,
		RateLimit:     cfg.RateLimit,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("sinal de desligamento recebido, encerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("encerramento do servidor")
	}

	log.Info().Msg("aplicação encerrada")
}
