package v1

import (
	"log"

	"study-buddy/internal/config"
	"study-buddy/internal/database"
	"study-buddy/internal/delivery/http/handler"
	"study-buddy/internal/delivery/http/middleware"
	"study-buddy/internal/pkg/jwt"
	"study-buddy/internal/repository"
	"study-buddy/internal/usecase"
	"study-buddy/internal/ws"

	"github.com/gofiber/fiber/v3"
)

func Register(r fiber.Router, cfg config.Config, db database.DB, cache usecase.MatchCache, suggest usecase.SuggestionClient, hub *ws.Hub, logger *log.Logger) {
	if r == nil {
		return
	}

	jwtSvc := jwt.NewHMACService(
		cfg.JWT.AccessSecret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessExpiresIn,
		cfg.JWT.RefreshExpiresIn,
	)

	authMw := middleware.NewAuthMiddleware(jwtSvc)

	userRepo := repository.NewPostgresUserRepository(db)
	profileRepo := repository.NewPostgresProfileRepository(db)
	blindSpotRepo := repository.NewPostgresBlindSpotRepository(db)
	matchRepo := repository.NewPostgresMatchRepository(db)

	var notifier usecase.MatchNotifier
	if hub != nil {
		notifier = ws.NewMatchNotifier(hub)
	}

	authUC := usecase.NewAuthUsecase(userRepo, jwtSvc)
	profileUC := usecase.NewProfileUsecase(profileRepo, logger)
	blindSpotUC := usecase.NewBlindSpotUsecase(blindSpotRepo, logger)
	matchingUC := usecase.NewMatchingUsecase(profileRepo, blindSpotRepo, matchRepo, suggest, cache, notifier, logger)
	matchUC := usecase.NewMatchUsecase(matchRepo, cache, cfg.Redis.TTL, logger)

	authHandler := handler.NewAuthHandler(authUC)
	profileHandler := handler.NewProfileHandler(profileUC, blindSpotUC)
	matchHandler := handler.NewMatchHandler(matchingUC, matchUC)

	authGroup := r.Group("/auth")
	authHandler.RegisterRoutes(authGroup)

	protected := r.Group("", authMw.Middleware())
	profileHandler.RegisterRoutes(protected)
	matchHandler.RegisterRoutes(protected)
}
