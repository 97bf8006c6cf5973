package store

import (
	"errors"
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/Nizam1989/Nizam-CP-sub001/config"
	"github.com/Nizam1989/Nizam-CP-sub001/model"
)

// ErrDuplicateJobNumber is returned by InsertJob when the job number is
// already taken. The unique index on jobs.job_number is the sole
// deduplication mechanism; there is no separate idempotency key.
var ErrDuplicateJobNumber = errors.New("job number already exists")

// Store wraps the relational database. All core operations receive it
// explicitly; there is no package-level connection.
type Store struct {
	db *gorm.DB
}

// Open connects to postgres and runs schema migration
func Open(cfg *config.DatabaseConfig) (*Store, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &Store{db: db}
	if err := s.Migrate(); err != nil {
		return nil, err
	}
	return s, nil
}

// NewStore wraps an existing gorm connection (used by tests with sqlite)
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Migrate creates or updates the schema
func (s *Store) Migrate() error {
	err := s.db.AutoMigrate(
		&model.Job{},
		&model.Step{},
		&model.UpdateRecord{},
		&model.Attachment{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}

// Close releases the underlying connection pool
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
