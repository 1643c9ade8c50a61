package main

import (
	"context"
	"log"

	"github.com/starlinemember/portfolio-website/config"
	"github.com/starlinemember/portfolio-website/internal/auth"
	"github.com/starlinemember/portfolio-website/internal/bootstrap"
	"github.com/starlinemember/portfolio-website/internal/cronjob"
	"github.com/starlinemember/portfolio-website/internal/mail"
	"github.com/starlinemember/portfolio-website/internal/security"
	"github.com/starlinemember/portfolio-website/internal/storage/postgres"
	"github.com/starlinemember/portfolio-website/internal/uploads"
)

const serviceName = "portfolio-api"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	bootstrap.SetGinMode(cfg.App.Environment)

	ctx := context.Background()

	db, err := bootstrap.OpenDB(ctx, bootstrap.DBOptions{
		DSN: postgres.PoolDSN(&cfg.Database),
	})
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	rdb, err := bootstrap.OpenRedis(ctx, cfg.Redis, 3)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}
	defer rdb.Close()

	provider, err := auth.NewFirebaseProvider(cfg.Firebase)
	if err != nil {
		log.Fatalf("auth provider: %v", err)
	}

	mailer := mail.NewClient(cfg.Mail)

	authRepo := auth.NewRepo(db)
	attempts := security.NewAttemptRepo(db)
	blocklist := security.NewBlocklist(db)
	codes := auth.NewCodeStore(rdb, cfg.Security.TwoFactorTTL, cfg.Security.TwoFactorDevCode)
	authSvc := auth.NewService(provider, authRepo, codes, attempts, blocklist, mailer, cfg.Security)

	var uploadStore *uploads.Store
	if cfg.Storage.Bucket != "" {
		uploadStore, err = uploads.NewStore(ctx, cfg.Storage)
		if err != nil {
			log.Fatalf("uploads: %v", err)
		}
	} else {
		log.Println("S3_BUCKET not set, uploads disabled")
	}

	scheduler := cronjob.NewScheduler(authRepo, blocklist, attempts, cfg.Security.SessionSweep)
	if err := scheduler.Start(); err != nil {
		log.Fatalf("scheduler: %v", err)
	}
	defer scheduler.Stop()

	r := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName: serviceName,
		Version:     cfg.App.Version,
		Config:      cfg,
		DB:          db,
		Redis:       rdb,
		Mailer:      mailer,
		AuthSvc:     authSvc,
		Uploads:     uploadStore,
	})

	log.Printf("%s %s listening on :%s", serviceName, cfg.App.Version, cfg.Server.Port)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("server: %v", err)
	}
}
