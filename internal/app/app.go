package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"GeniusLabs/internal/app/server"
	"GeniusLabs/internal/catalog"
	"GeniusLabs/internal/config"
	"GeniusLabs/internal/delivery/http"
	"GeniusLabs/internal/service"
	"GeniusLabs/internal/service/achievement"
	"GeniusLabs/internal/service/profile"
	"GeniusLabs/internal/service/progress"
	"GeniusLabs/internal/storage/minio_storage"
	"GeniusLabs/internal/storage/postgres"
	"GeniusLabs/internal/storage/redis_cache"
	"GeniusLabs/pkg/logger"
)

func Run(cfg *config.Config) {
	log := logger.New(cfg.Env)
	log.Info("Starting with Env: " + cfg.Env)

	pg, err := postgres.NewPostgresPool(cfg.Postgres.User, cfg.Postgres.Password, cfg.Postgres.Host, cfg.Postgres.Port, cfg.Postgres.DBName)
	if err != nil {
		log.FatalErr("error connecting to database", err)
	}
	defer pg.Close()

	if err := pg.Migrate(context.Background()); err != nil {
		log.FatalErr("error applying schema", err)
	}

	cat, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		log.FatalErr("error loading module catalog", err)
	}

	var cache *redis_cache.ProgressCache
	if cfg.Redis.Address != "" {
		cache, err = redis_cache.New(cfg.Redis.Address, cfg.Redis.Password, cfg.Redis.DB, cfg.Redis.TTL)
		if err != nil {
			// the cache is a fallback, not a dependency
			log.ErrorErr("redis unavailable, running without progress cache", err)
			cache = nil
		} else {
			defer cache.Close()
		}
	}

	var avatars *minio_storage.AvatarStorage
	if cfg.Minio.AccessKey != "" {
		minioClient, err := minio_storage.NewMinioStorage(cfg.Minio.Endpoint, cfg.Minio.AccessKey, cfg.Minio.SecretKey, cfg.Minio.UseSSL)
		if err != nil {
			log.FatalErr("error connecting to minio", err)
		}
		avatars, err = minio_storage.NewAvatarStorage(minioClient, cfg.Minio.AvatarBucket, cfg.Minio.PresignTTL)
		if err != nil {
			log.FatalErr("error preparing avatar bucket", err)
		}
	}

	progressRepo := postgres.NewProgressPostgres(pg.Pool)
	profileRepo := postgres.NewProfilePostgres(pg.Pool)
	achievementRepo := postgres.NewAchievementPostgres(pg.Pool)

	var progressSvc *progress.ProgressService
	if cache != nil {
		progressSvc = progress.NewProgressService(log, progressRepo, cat, cache)
	} else {
		progressSvc = progress.NewProgressService(log, progressRepo, cat, nil)
	}

	var profileSvc *profile.ProfileService
	if avatars != nil {
		profileSvc = profile.NewProfileService(log, profileRepo, progressRepo, avatars)
	} else {
		profileSvc = profile.NewProfileService(log, profileRepo, progressRepo, nil)
	}

	evaluator := achievement.NewEvaluator(achievement.DefaultCatalog(), achievement.DefaultCustomPredicates())
	achievementSvc := achievement.NewAchievementService(log, evaluator, achievementRepo, progressRepo)

	u := service.Collection{
		ProgressService:    progressSvc,
		ProfileService:     profileSvc,
		AchievementService: achievementSvc,
	}

	r := http.InitRoutes(log, cfg, u, cat, pg)

	srv := server.New(cfg.HTTPServer.Address, cfg.HTTPServer.Timeout, cfg.HTTPServer.IdleTimeout, r)
	srv.Start()
	log.Info("listening on " + cfg.HTTPServer.Address)

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	select {
	case s := <-interrupt:
		log.Info("app signal: " + s.String())
	case err := <-srv.Notify():
		log.ErrorErr("server error", err)
	}
	if err := srv.Shutdown(); err != nil {
		log.ErrorErr("shutdown error", err)
	}
}
