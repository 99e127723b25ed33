package persistence

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/staffhub/backend/internal/domain/shared"
	"github.com/staffhub/backend/internal/infrastructure/config"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Store is the process-lifetime storage handle. The connection is attempted
// exactly once at construction; on failure the Store stays in a cached
// "unavailable" state instead of retrying per call. Reads against an
// unavailable Store degrade to empty results, writes fail with
// shared.ErrUnavailable.
type Store struct {
	db *gorm.DB
}

// NewStore attempts to connect to Postgres once. It always returns a usable
// Store; a non-nil error means the Store is unavailable and why.
func NewStore(cfg *config.DatabaseConfig, gormLog gormlogger.Interface) (*Store, error) {
	if cfg.URL == "" {
		return &Store{}, errors.New("database URL is not configured")
	}

	db, err := gorm.Open(postgres.Open(cfg.URL), &gorm.Config{
		Logger:                 gormLog,
		SkipDefaultTransaction: true,
		PrepareStmt:            true,
		TranslateError:         true,
	})
	if err != nil {
		return &Store{}, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return &Store{}, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Minute)
	sqlDB.SetConnMaxIdleTime(time.Duration(cfg.ConnMaxIdleTime) * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		return &Store{}, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Store{db: db}, nil
}

// NewStoreWithDB wraps an existing GORM connection. Used by tests and by the
// migration command, which manage the connection themselves.
func NewStoreWithDB(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Available reports whether the initial connection attempt succeeded.
func (s *Store) Available() bool {
	return s != nil && s.db != nil
}

// DB returns the underlying GORM handle, or nil when unavailable.
func (s *Store) DB() *gorm.DB {
	if s == nil {
		return nil
	}
	return s.db
}

// Close closes the database connection. No-op when unavailable.
func (s *Store) Close() error {
	if !s.Available() {
		return nil
	}
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	return sqlDB.Close()
}

// Ping checks if the database connection is alive.
func (s *Store) Ping() error {
	if !s.Available() {
		return shared.ErrUnavailable
	}
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	return sqlDB.Ping()
}

// translateError maps GORM errors onto domain errors. Constraint violations
// surface as typed conflicts so concurrent duplicate writes fail loudly
// instead of silently duplicating.
func translateError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return shared.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return shared.ErrAlreadyExists
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return shared.ErrRelationViolated
	// SQLite reports RESTRICT delete failures as a plain error that GORM's
	// translator does not map.
	case strings.Contains(err.Error(), "FOREIGN KEY constraint failed"):
		return shared.ErrRelationViolated
	default:
		return err
	}
}
