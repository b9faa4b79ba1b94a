package main

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"path"
	"time"

	"github.com/joho/godotenv"

	"github.com/oksasatya/go-ddd-user-accounts/config"
	"github.com/oksasatya/go-ddd-user-accounts/internal/application"
	"github.com/oksasatya/go-ddd-user-accounts/internal/container"
	"github.com/oksasatya/go-ddd-user-accounts/internal/infrastructure/storage"
	"github.com/oksasatya/go-ddd-user-accounts/pkg/helpers"
)

// export writes every user as NDJSON to the configured GCS bucket.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}
	if cfg.GCSBucket == "" {
		log.Fatal("GCS_BUCKET not configured")
	}
	logger := helpers.NewLogger(cfg.AppName+"-export", cfg.Env)
	container.SetConfig(cfg)
	container.SetLogger(logger)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	closeStorage, err := container.InitStorage(ctx, cfg)
	if err != nil {
		log.Fatalf("storage: %v", err)
	}
	defer closeStorage()

	var buf bytes.Buffer
	n, err := application.NewExportUsers(container.GetUsers(), application.WithLogger(logger)).Execute(ctx, &buf)
	if err != nil {
		logger.WithError(err).Fatal("export users")
	}

	client, err := storage.NewGCSClient(ctx, cfg.GCSCredentialsJSONPath)
	if err != nil {
		logger.WithError(err).Fatal("gcs client")
	}
	defer func() { _ = client.Close() }()

	object := path.Join(cfg.ExportPrefix, fmt.Sprintf("users-%s.ndjson", time.Now().UTC().Format("20060102T150405Z")))
	url, err := storage.NewUploader(client, cfg.GCSBucket).Upload(ctx, object, "application/x-ndjson", &buf)
	if err != nil {
		logger.WithError(err).Fatal("upload export")
	}
	logger.WithField("users", n).Infof("exported to %s", url)
}
