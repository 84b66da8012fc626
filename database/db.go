package database

import (
	"context"
	"fmt"
	"log/slog" // use slog for structured logging
	"time"

	"churchhub/internal/microservices/http-api/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Options tune the connection pool.
type Options struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

var DefaultOptions = Options{
	MaxOpenConns:    25,
	MaxIdleConns:    5,
	ConnMaxLifetime: 30 * time.Minute,
}

// GormConfig is shared by the postgres connection and the sqlite test databases.
// TranslateError maps driver errors to gorm.ErrDuplicatedKey and friends.
func GormConfig() *gorm.Config {
	return &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	}
}

// Connect opens a pgx-backed pool and hands it to gorm.
func Connect(ctx context.Context, dsn string, opts Options, log *slog.Logger) (*gorm.DB, error) {
	pgxConfig, err := pgx.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("invalid database url: %w", err)
	}
	if _, ok := pgxConfig.RuntimeParams["application_name"]; !ok {
		pgxConfig.RuntimeParams["application_name"] = "churchhub"
	}

	sqlDB := stdlib.OpenDB(*pgxConfig)
	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), GormConfig())
	if err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB.SetMaxOpenConns(opts.MaxOpenConns)
	sqlDB.SetMaxIdleConns(opts.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(opts.ConnMaxLifetime)

	// Verify the connection
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		// close the db handle if ping fails to avoid resource leak
		sqlDB.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	log.Info("Connected to the database successfully")
	return db, nil
}

func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// AllModels lists every table-backed model in dependency order.
func AllModels() []any {
	return []any{
		&models.Branch{},
		&models.User{},
		&models.Project{},
		&models.Contribution{},
		&models.MagazineSubmission{},
		&models.MagazineSection{},
		&models.Notification{},
	}
}

// AutoMigrate creates the schema from the models. It backs the sqlite test
// databases; postgres deployments use the versioned migrations.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(AllModels()...)
}
