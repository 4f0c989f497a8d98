package app

import (
	"context"
	"log"
	"time"

	"study-buddy/internal/config"
	"study-buddy/internal/database"
	"study-buddy/internal/database/migration"
	dbpostgres "study-buddy/internal/database/postgres"
	"study-buddy/internal/infrastructure/cache"
	"study-buddy/internal/infrastructure/suggest"
	"study-buddy/internal/usecase"
	"study-buddy/internal/ws"
)

// Container owns the long-lived collaborators of the service. Everything in
// it is built once at startup and torn down on Close.
type Container struct {
	Config  config.Config
	DB      database.DB
	Cache   *cache.Redis
	Suggest usecase.SuggestionClient
	Hub     *ws.Hub
	Logger  *log.Logger
}

func NewContainer(cfg config.Config, logger *log.Logger) (*Container, error) {
	if logger == nil {
		logger = log.Default()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	if err := (migration.Runner{Dir: "migrations"}).Run(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	redisCache := cache.NewRedis(cfg.Redis, logger)

	gemini, err := suggest.NewGeminiClient(ctx, cfg.Gemini, logger)
	if err != nil {
		logger.Printf("suggestion client unavailable, using fallbacks: %v", err)
	}

	hub := ws.NewHub(logger)
	go hub.Run()

	c := &Container{
		Config: cfg,
		DB:     db,
		Cache:  redisCache,
		Hub:    hub,
		Logger: logger,
	}
	if gemini != nil {
		c.Suggest = gemini
	}
	return c, nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.Cache != nil {
		_ = c.Cache.Close()
	}
	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}
