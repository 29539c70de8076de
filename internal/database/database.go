package database

import (
	"database/sql"
	"fmt"
	"os"
	"sync/atomic"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// memoryDBs numbers in-memory databases so that every Manager gets its own.
var memoryDBs atomic.Uint64

// Manager handles the SQLite connection backing the local stores.
type Manager struct {
	DB             *gorm.DB
	SqlDB          *sql.DB
	InMemory       bool
	SqliteFilePath string
	Logger         zerolog.Logger
}

// NewManager creates a new database manager.
func NewManager(log zerolog.Logger) *Manager {
	return &Manager{
		Logger: log,
	}
}

// Connect opens the SQLite database at path. An empty path opens a private
// in-memory database.
func (m *Manager) Connect(path string) error {
	db, err := m.GetSqliteDB(path)
	if err != nil {
		return fmt.Errorf("failed to get local SQLite DB: %w", err)
	}
	m.DB = db
	m.SqliteFilePath = path
	m.InMemory = path == ""

	m.SqlDB, err = m.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to access sql interface: %w", err)
	}

	if err := m.SqlDB.Ping(); err != nil {
		return fmt.Errorf("failed to validate connection: %w", err)
	}

	m.Logger.Info().Bool("inMemory", m.InMemory).Msg("Connected to database")
	return nil
}

// GetSqliteDB returns a connection to a SQLite database.
// If path is empty, uses an in-memory database.
func (m *Manager) GetSqliteDB(path string) (*gorm.DB, error) {
	dsn := path
	if path == "" {
		dsn = fmt.Sprintf("file:minimap%d?mode=memory&cache=shared", memoryDBs.Add(1))
	}

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		PrepareStmt:            true,
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	if path != "" {
		m.Logger.Info().Str("path", path).Msg("Using local SQLite DB")
	} else {
		m.Logger.Info().Msg("Using local SQLite DB in memory")
	}

	pragmas := []string{
		"PRAGMA user_version = 1;",
		"PRAGMA journal_mode = MEMORY;",
		"PRAGMA synchronous = OFF;",
		"PRAGMA temp_store = MEMORY;",
	}

	for _, pragma := range pragmas {
		if err := db.Exec(pragma).Error; err != nil {
			return nil, fmt.Errorf("error setting PRAGMA: %w", err)
		}
	}

	return db, nil
}

// Setup migrates the given models.
func (m *Manager) Setup(models ...any) error {
	if m.DB == nil {
		return fmt.Errorf("db not connected")
	}

	m.Logger.Info().Msg("Migrating schema")
	if err := m.DB.AutoMigrate(models...); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}

	m.Logger.Info().Msg("Database setup complete")
	return nil
}

// DumpMemoryToDisk vacuums the database into a file, replacing it.
func (m *Manager) DumpMemoryToDisk(path string) error {
	if path == "" {
		return fmt.Errorf("sqlite file path not set")
	}

	if _, err := os.Stat(path); err == nil {
		if err := os.Remove(path); err != nil {
			return fmt.Errorf("error removing existing DB file: %w", err)
		}
	}

	start := time.Now()
	if err := m.DB.Exec("VACUUM INTO ?", path).Error; err != nil {
		return fmt.Errorf("error dumping memory DB to disk: %w", err)
	}

	m.Logger.Debug().Dur("duration", time.Since(start)).Str("path", path).Msg("Dumped memory DB to disk")
	return nil
}

// Close releases the connection. An in-memory database is gone afterwards.
func (m *Manager) Close() error {
	if m.SqlDB == nil {
		return nil
	}
	return m.SqlDB.Close()
}
