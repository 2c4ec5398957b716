package app

import (
	"readit/internal/ai"
	"readit/internal/cache"
	"readit/internal/config"
	"readit/internal/database"
	"readit/internal/logger"
	"readit/internal/ranking"
	"readit/internal/repository"
	"readit/internal/service"
	"readit/internal/storage"
)

// App wires every dependency explicitly; nothing lives in package-level
// globals, so tests can swap any piece out.
func App(cfg *config.Config) (*database.DB, *repository.Repository, *service.Service, storage.Storage) {
	db, err := database.ConnectDB(cfg)
	if err != nil {
		logger.Error.Fatalf("failed to connect to database: %v", err)
	}

	minioClient, err := storage.NewMinIOClient(cfg)
	if err != nil {
		logger.Error.Fatalf("failed to initialize MinIO: %v", err)
	}

	var c cache.Cache
	c, err = cache.NewRedisCache(cfg.Redis)
	if err != nil {
		logger.Warn.Printf("redis unavailable, running without cache: %v", err)
		c = cache.NoopCache{}
	}

	repo := repository.NewRepository(db.DB, ranking.WeightsFromConfig(cfg.Trending))
	aiClient := ai.NewClient(cfg.AI)
	services := service.NewService(repo, cfg, aiClient, c)

	return db, repo, services, minioClient
}
