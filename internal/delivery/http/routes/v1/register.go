package v1

import (
	"log"

	"iri-backend/internal/config"
	"iri-backend/internal/database"
	"iri-backend/internal/delivery/http/handler"
	"iri-backend/internal/delivery/http/middleware"
	"iri-backend/internal/infrastructure/cache"
	"iri-backend/internal/pkg/jwt"
	"iri-backend/internal/pkg/mailer"
	"iri-backend/internal/repository"
	"iri-backend/internal/usecase"
	"iri-backend/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type Deps struct {
	Config config.Config
	DB     database.DB
	Cache  *cache.Redis
	Hub    *ws.Hub
	Mailer mailer.Mailer
	Logger *log.Logger
}

// Register wires every v1 route group: repositories, usecases and
// handlers are assembled here so the rest of the app stays ignorant of
// HTTP concerns.
func Register(r fiber.Router, deps Deps) {
	if r == nil {
		return
	}

	jwtSvc := jwt.NewHMACService(
		deps.Config.JWT.AccessSecret,
		deps.Config.JWT.RefreshSecret,
		deps.Config.JWT.AccessExpiresIn,
		deps.Config.JWT.RefreshExpiresIn,
	)

	authMw := middleware.NewAuthMiddleware(jwtSvc)

	userRepo := repository.NewPostgresUserRepository(deps.DB)
	catalogRepo := repository.NewPostgresCatalogRepository(deps.DB)
	profileRepo := repository.NewPostgresProfileRepository(deps.DB)
	verificationRepo := repository.NewPostgresVerificationRepository(deps.DB)
	scoreRepo := repository.NewPostgresReadinessScoreRepository(deps.DB)

	authUC := usecase.NewAuthUsecase(userRepo, jwtSvc)
	catalogUC := usecase.NewCatalogUsecase(catalogRepo)
	profileUC := usecase.NewProfileUsecase(profileRepo, deps.Cache)
	verificationUC := usecase.NewVerificationUsecase(
		profileRepo, verificationRepo, deps.Mailer, deps.Cache, deps.Hub,
		deps.Config.App.FrontendURL, deps.Logger,
	)
	readinessUC := usecase.NewReadinessUsecase(
		catalogRepo, profileRepo, verificationRepo, scoreRepo,
		deps.Cache, deps.Hub, deps.Logger,
	)

	authHandler := handler.NewAuthHandler(authUC)
	catalogHandler := handler.NewCatalogHandler(catalogUC)
	profileHandler := handler.NewProfileHandler(profileUC)
	verificationHandler := handler.NewVerificationHandler(verificationUC)
	readinessHandler := handler.NewReadinessHandler(readinessUC)
	wsHandler := ws.NewHandler(deps.Hub, jwtSvc, deps.Logger)

	authHandler.RegisterRoutes(r.Group("/auth"))
	catalogHandler.RegisterRoutes(r)

	protected := r.Group("", authMw.Middleware())
	profileHandler.RegisterRoutes(protected.Group("/profiles"))
	verificationHandler.RegisterRoutes(protected.Group("/verification"))
	readinessHandler.RegisterRoutes(protected.Group("/readiness"))

	// The websocket endpoint authenticates inside the handler; the
	// token may arrive as a query parameter.
	r.Get("/ws/updates", wsHandler.HandleUpdates)
}
