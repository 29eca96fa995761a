package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"taskmanager/internal/models"
)

var (
	// ErrNotFound is returned when a lookup or delete matches no row.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists is returned when a unique constraint would be violated.
	ErrAlreadyExists = errors.New("already exists")
	// ErrProfileExists rejects a second profile for the same worker.
	ErrProfileExists = fmt.Errorf("profile %w", ErrAlreadyExists)
)

// Store wraps access to the SQLite database through gorm.
type Store struct {
	db     *gorm.DB
	logger *slog.Logger
}

// Open initializes a new SQLite store and migrates the schema.
func Open(dbPath string, logger *slog.Logger) (*Store, error) {
	if dbPath == "" {
		return nil, fmt.Errorf("empty database path")
	}

	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	if err := ensureDir(dbPath); err != nil {
		return nil, err
	}

	conn, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?_busy_timeout=5000&_foreign_keys=ON", dbPath))
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	conn.SetMaxOpenConns(1)
	conn.SetConnMaxLifetime(0)

	db, err := gorm.Open(&gormsqlite.Dialector{DriverName: "sqlite3", Conn: conn}, &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Discard,
	})
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open gorm: %w", err)
	}

	s := &Store{db: db, logger: logger}
	if err := s.migrate(); err != nil {
		_ = conn.Close()
		return nil, err
	}

	return s, nil
}

// Close releases the database resources.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	conn, err := s.db.DB()
	if err != nil {
		return err
	}
	return conn.Close()
}

func ensureDir(dbPath string) error {
	dir := filepath.Dir(dbPath)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

func (s *Store) migrate() error {
	err := s.db.AutoMigrate(
		&models.Position{},
		&models.TaskType{},
		&models.Worker{},
		&models.Profile{},
		&models.Task{},
	)
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	return nil
}

// SeedLookups inserts every position and task type label that is not
// stored yet and reports how many rows were added.
func (s *Store) SeedLookups(ctx context.Context) (int, error) {
	created := 0
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, name := range models.PositionNames() {
			var p models.Position
			res := tx.Where(models.Position{Name: name}).FirstOrCreate(&p)
			if res.Error != nil {
				return fmt.Errorf("seed position %q: %w", name, res.Error)
			}
			created += int(res.RowsAffected)
		}
		for _, name := range models.TaskTypeNames() {
			var tt models.TaskType
			res := tx.Where(models.TaskType{Name: name}).FirstOrCreate(&tt)
			if res.Error != nil {
				return fmt.Errorf("seed task type %q: %w", name, res.Error)
			}
			created += int(res.RowsAffected)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	s.logger.Info("lookup tables seeded", slog.Int("created", created))
	return created, nil
}

func lookupError(err error, entity string, id any) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s %v: %w", entity, id, ErrNotFound)
	}
	return fmt.Errorf("get %s: %w", entity, err)
}

func writeError(err error, op string) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%s: %w", op, ErrAlreadyExists)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// exists reports whether a row of model with the given id is stored.
func exists(tx *gorm.DB, model any, id int64) (bool, error) {
	var n int64
	if err := tx.Model(model).Where("id = ?", id).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}
