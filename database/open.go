package database

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	zlog "github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/plugin/dbresolver"

	"github.com/rpupo63/unified-blog-backend/config"
	"github.com/rpupo63/unified-blog-backend/errs"
)

// Open connects to the database selected by DB_TYPE and registers any read
// replicas listed in DATABASE_REPLICA_URLS.
func Open(cfg map[string]string) (*gorm.DB, error) {
	dbType := strings.ToLower(config.GetString(cfg, "DB_TYPE", "postgres"))
	zlog.Info().Str("dbType", dbType).Msg("Connecting to database")

	dialector, err := dialectorFor(dbType, cfg)
	if err != nil {
		return nil, err
	}

	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             10 * time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  config.GetString(cfg, "APP_ENV", "local") == "local",
		},
	)

	db, err := gorm.Open(dialector, &gorm.Config{
		PrepareStmt: false,
		Logger:      newLogger,
	})
	if err != nil {
		return nil, errs.NewDatabaseError("connect to", "database", err)
	}

	if dbType == "sqlite" {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, errs.NewDatabaseError("configure", "database", err)
		}
		// sqlite allows a single writer
		sqlDB.SetMaxOpenConns(1)
	}

	if replicas := config.GetList(cfg, "DATABASE_REPLICA_URLS"); len(replicas) > 0 && dbType == "postgres" {
		if err := useReplicas(db, replicas); err != nil {
			return nil, err
		}
		zlog.Info().Int("replicas", len(replicas)).Msg("Read replicas registered")
	}

	// Test database connection
	var result int
	if err := db.Raw("SELECT 1").Scan(&result).Error; err != nil {
		return nil, errs.NewDatabaseError("test", "database connection", err)
	}

	return db, nil
}

func dialectorFor(dbType string, cfg map[string]string) (gorm.Dialector, error) {
	switch dbType {
	case "postgres":
		dsn := config.GetString(cfg, "DATABASE_URL", "")
		if dsn == "" {
			return nil, errs.NewEnvironmentVariableError("DATABASE_URL")
		}
		return postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}), nil
	case "sqlite":
		return sqlite.Open(config.GetString(cfg, "SQLITE_DB_PATH", "blog.db")), nil
	default:
		return nil, errs.NewConfigError("DB_TYPE", fmt.Errorf("unsupported DB_TYPE %q", dbType))
	}
}

// useReplicas routes plain reads to the replicas. Writes, transactions and
// row locks stay on the primary.
func useReplicas(db *gorm.DB, urls []string) error {
	replicas := make([]gorm.Dialector, 0, len(urls))
	for _, url := range urls {
		replicas = append(replicas, postgres.New(postgres.Config{
			DSN:                  url,
			PreferSimpleProtocol: true,
		}))
	}

	err := db.Use(dbresolver.Register(dbresolver.Config{
		Replicas: replicas,
		Policy:   dbresolver.RandomPolicy{},
	}).
		SetMaxIdleConns(10).
		SetConnMaxLifetime(time.Hour))
	if err != nil {
		return errs.NewDatabaseError("register", "read replicas", err)
	}
	return nil
}
