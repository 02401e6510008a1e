package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/unified-blog-backend/api"
	"github.com/rpupo63/unified-blog-backend/config"
	"github.com/rpupo63/unified-blog-backend/database"
	"github.com/rpupo63/unified-blog-backend/models"
	"github.com/rpupo63/unified-blog-backend/services"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load(ctx)
	setupLogger(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Error loading configuration")
	}

	log.Info().Str("dbType", config.GetString(cfg, "DB_TYPE", "postgres")).Msg("Initializing app...")

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Error connecting to database")
	}

	if config.GetBool(cfg, "AUTO_MIGRATE", false) {
		log.Info().Msg("Running schema migration...")
		if err := models.Migrate(db); err != nil {
			log.Fatal().Err(err).Msg("Error migrating schema")
		}
	}

	// If generating column mismatch report, run report and exit
	if config.GetBool(cfg, "GENERATE_COLUMN_REPORT", false) {
		log.Info().Msg("Generating column mismatch report...")
		if err := models.LogColumnMismatchReport(db); err != nil {
			log.Fatal().Err(err).Msg("Error generating column mismatch report")
		}
		return
	}

	media, err := newMediaService(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Error configuring media uploads")
	}

	// Room for both the interrupt and the error Start reports after shutdown.
	errChannel := make(chan error, 2)

	server, err := api.NewServer(cfg, database.New(db), media)
	if err != nil {
		log.Fatal().Err(err).Msg("Error initializing server")
	}

	// Listen for interrupt signals to gracefully shutdown the server
	go listenToInterrupt(errChannel)

	run(server, errChannel, 30*time.Second)
}

// run serves until the first error arrives on errChannel, then shuts the
// server down and returns that error.
func run(server api.Server, errChannel chan error, shutdownTimeout time.Duration) error {
	go server.Start(errChannel)

	fatalErr := <-errChannel
	log.Info().Msgf("Closing server: %v", fatalErr)

	server.ShutdownGracefully(shutdownTimeout)
	return fatalErr
}

// setupLogger configures the global logger. Local runs get a console writer.
func setupLogger(cfg map[string]string) {
	zerolog.TimeFieldFormat = time.RFC3339

	level, err := zerolog.ParseLevel(strings.ToLower(config.GetString(cfg, "LOG_LEVEL", "info")))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if config.GetString(cfg, "APP_ENV", "") == "local" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
}

// newMediaService signs featured image uploads into MEDIA_BUCKET. Without a
// bucket the service reports uploads as unavailable.
func newMediaService(ctx context.Context, cfg map[string]string) (*services.MediaService, error) {
	bucket := config.GetString(cfg, "MEDIA_BUCKET", "")
	if bucket == "" {
		log.Warn().Msg("MEDIA_BUCKET not set, featured image uploads are disabled")
		return services.NewMediaService(nil, "", ""), nil
	}

	awsCfg, err := config.AWS(ctx, cfg)
	if err != nil {
		return nil, err
	}
	presigner := s3.NewPresignClient(s3.NewFromConfig(awsCfg))
	return services.NewMediaService(presigner, bucket, config.GetString(cfg, "MEDIA_PUBLIC_BASE_URL", "")), nil
}

// listenToInterrupt waits for SIGINT or SIGTERM and then sends an error to the error channel.
func listenToInterrupt(errChannel chan<- error) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	errChannel <- fmt.Errorf("%s", <-c)
}
