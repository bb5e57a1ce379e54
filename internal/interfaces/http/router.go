package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/wmslabs/composicao-api/internal/application/auth"
	"github.com/wmslabs/composicao-api/internal/application/composition"
	"github.com/wmslabs/composicao-api/internal/application/dto"
	"github.com/wmslabs/composicao-api/internal/application/packaging"
	"github.com/wmslabs/composicao-api/pkg/config"
)

// RouterDeps dependências para o router.
type RouterDeps struct {
	CompositionUC *composition.UseCase
	Resolver      *packaging.Resolver
	AuthUC        *auth.UseCase
	JWTSecret     string
	RateLimit     config.RateLimitConfig
}

// Router registra as rotas da API. Rotas de escrita (montagem, desmontagem,
// transição de status) passam também pelo limiter: o núcleo não faz retry,
// excedentes são rejeitados antes dos casos de uso.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rotas protegidas (exigem Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	writeLimiter := limiter.New(limiter.Config{
		Max:        deps.RateLimit.Max,
		Expiration: time.Duration(deps.RateLimit.Seconds) * time.Second,
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(dto.ErrorResponse{
				Code: "RATE_LIMITED", Message: "limite de requisições excedido, tente novamente em instantes",
			})
		},
	})

	// Compositions (protegido)
	compositions := protected.Group("/compositions")
	compositionHandler := NewCompositionHandler(deps.CompositionUC)
	compositions.Post("/calculate", compositionHandler.Calculate)
	compositions.Post("/validate", compositionHandler.Validate)
	compositions.Post("/", compositionHandler.Save)
	compositions.Get("/", compositionHandler.List)
	compositions.Get("/:id", compositionHandler.GetByID)
	compositions.Patch("/:id/status", writeLimiter, compositionHandler.UpdateStatus)
	compositions.Post("/:id/assemble", writeLimiter, compositionHandler.Assemble)
	compositions.Post("/:id/disassemble", writeLimiter, compositionHandler.Disassemble)
	compositions.Post("/:id/report", compositionHandler.Report)
	compositions.Delete("/:id", writeLimiter, compositionHandler.SoftDelete)

	// Packaging (protegido)
	products := protected.Group("/products")
	packagingHandler := NewPackagingHandler(deps.Resolver)
	products.Get("/:id/packaging", packagingHandler.Hierarchy)
	products.Post("/:id/packaging/convert", packagingHandler.Convert)
}
