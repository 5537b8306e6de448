package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/vietanh2810/social-events-api/internal/api"
	"github.com/vietanh2810/social-events-api/internal/cache"
	"github.com/vietanh2810/social-events-api/internal/config"
	"github.com/vietanh2810/social-events-api/internal/db"
	"github.com/vietanh2810/social-events-api/internal/i18n"
	"github.com/vietanh2810/social-events-api/internal/logger"
	"github.com/vietanh2810/social-events-api/internal/repository/dao"
)

const configPath = "./cmd/app/config.yml"

func Start() error {
	conf, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to initialize config -> %w", err)
	}

	if err = logger.Init(conf.API.Environment); err != nil {
		return fmt.Errorf("failed to initialize logger -> %w", err)
	}
	if err = logger.SetLevel(conf.API.LogLevel); err != nil {
		return fmt.Errorf("failed to set log level -> %w", err)
	}

	err = config.Watch(configPath, func(next *config.AppConfig) {
		if err := logger.SetLevel(next.API.LogLevel); err != nil {
			zap.L().Warn("invalid log level", zap.String("level", next.API.LogLevel), zap.Error(err))
		}
	})
	if err != nil {
		return fmt.Errorf("failed to watch config -> %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	postgresDB, err := openDatabase(conf.Postgres)
	if err != nil {
		return fmt.Errorf("failed to initialize database -> %w", err)
	}

	rdb, err := cache.NewRedisClient(ctx, conf.Redis)
	if err != nil {
		return fmt.Errorf("failed to initialize redis -> %w", err)
	}
	defer rdb.Close()

	translator, err := i18n.NewTranslator(conf.API.DefaultLocale)
	if err != nil {
		return fmt.Errorf("failed to initialize translator -> %w", err)
	}

	s := api.NewServer(ctx, conf, postgresDB, rdb, translator)

	addr := ":" + s.Config.API.Port
	zap.L().Info(fmt.Sprintf("starting server at %v", addr))
	if err = s.Router.Run(addr); err != nil {
		return fmt.Errorf("failed to start the server -> %w", err)
	}

	return nil
}

// openDatabase connects to DATABASE_URL when set, to the configured server otherwise,
// and brings the schema up to date.
func openDatabase(conf *config.PostgresConfig) (*gorm.DB, error) {
	var (
		postgresDB *gorm.DB
		err        error
	)

	url := os.Getenv("DATABASE_URL")
	if url != "" {
		postgresDB, err = db.OpenPostgresWithURL(url)
	} else {
		url = conf.URL()
		postgresDB, err = db.OpenPostgres(conf)
	}
	if err != nil {
		return nil, err
	}

	switch conf.MigrationMode {
	case config.MigrateSQL:
		err = db.Migrate(url)
	case config.MigrateAuto:
		err = dao.InitTables(postgresDB)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to migrate -> %w", err)
	}

	return postgresDB, nil
}
