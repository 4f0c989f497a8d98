package routes

import (
	"log"

	"study-buddy/internal/config"
	"study-buddy/internal/database"
	"study-buddy/internal/delivery/http/handler"
	v1 "study-buddy/internal/delivery/http/routes/v1"
	"study-buddy/internal/usecase"
	"study-buddy/internal/ws"

	"github.com/gofiber/fiber/v3"
)

// Deps carries everything route registration needs. All fields besides Config
// and DB are optional; absent collaborators degrade gracefully.
type Deps struct {
	Config  config.Config
	DB      database.DB
	Cache   usecase.MatchCache
	Suggest usecase.SuggestionClient
	Hub     *ws.Hub
	Logger  *log.Logger
}

func Register(app *fiber.App, deps Deps) {
	if app == nil {
		return
	}

	handler.NewHealthHandler(deps.DB).RegisterRoutes(app)

	if deps.Hub != nil {
		wsHandler := ws.NewHandler(deps.Hub, deps.Logger)
		app.Get("/ws/matches", wsHandler.HandleMatchesWS)
	}

	api := app.Group("/api")
	v1.Register(api.Group("/v1"), deps.Config, deps.DB, deps.Cache, deps.Suggest, deps.Hub, deps.Logger)
}
