package kv

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/reman-wear/storefront/pkg/config"
	"github.com/reman-wear/storefront/pkg/logger"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"
)

// Snapshot is the row shape backing the database store.
type Snapshot struct {
	Key       string `gorm:"primaryKey;size:64"`
	Value     []byte
	UpdatedAt time.Time
}

// DB persists snapshots in a relational database through GORM. SQLite
// serves local single-user installs, Postgres a hosted deployment.
type DB struct {
	conn *gorm.DB
}

// OpenDB boots a GORM-backed store using the provided configuration.
func OpenDB(ctx context.Context, cfg config.StorageConfig, logg *logger.Logger) (*DB, error) {
	if cfg.DSN == "" {
		return nil, fmt.Errorf("storage DSN is required")
	}

	var dialector gorm.Dialector
	switch cfg.Driver {
	case config.StorageDriverPostgres:
		dialector = postgres.New(postgres.Config{
			DSN:                  cfg.DSN,
			PreferSimpleProtocol: true,
		})
	case config.StorageDriverSQLite:
		dialector = sqlite.Open(cfg.DSN)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	gormLogger := gormlogger.New(
		log.New(io.Discard, "", log.LstdFlags),
		gormlogger.Config{LogLevel: gormlogger.Silent},
	)

	conn, err := gorm.Open(dialector, &gorm.Config{
		Logger:                 gormLogger,
		SkipDefaultTransaction: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening db connection: %w", err)
	}

	sqlDB, err := conn.DB()
	if err != nil {
		return nil, fmt.Errorf("getting sql db handle: %w", err)
	}
	applyPoolSettings(sqlDB, cfg)

	if err := conn.WithContext(ctx).AutoMigrate(&Snapshot{}); err != nil {
		return nil, fmt.Errorf("migrating snapshots table: %w", err)
	}

	if logg != nil {
		logg.Info(ctx, "snapshot database ready")
	}

	return &DB{conn: conn}, nil
}

func applyPoolSettings(sqlDB *sql.DB, cfg config.StorageConfig) {
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}
}

// NewDBWithConn wraps an existing GORM connection; used by tests.
func NewDBWithConn(conn *gorm.DB) (*DB, error) {
	if conn == nil {
		return nil, fmt.Errorf("gorm connection is required")
	}
	if err := conn.AutoMigrate(&Snapshot{}); err != nil {
		return nil, fmt.Errorf("migrating snapshots table: %w", err)
	}
	return &DB{conn: conn}, nil
}

func (d *DB) Get(ctx context.Context, key string) ([]byte, error) {
	var row Snapshot
	err := d.conn.WithContext(ctx).First(&row, "key = ?", key).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("loading snapshot %s: %w", key, err)
	}
	return row.Value, nil
}

func (d *DB) Set(ctx context.Context, key string, value []byte) error {
	row := Snapshot{Key: key, Value: value, UpdatedAt: time.Now().UTC()}
	err := d.conn.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&row).Error
	if err != nil {
		return fmt.Errorf("storing snapshot %s: %w", key, err)
	}
	return nil
}

func (d *DB) Delete(ctx context.Context, key string) error {
	if err := d.conn.WithContext(ctx).Delete(&Snapshot{}, "key = ?", key).Error; err != nil {
		return fmt.Errorf("deleting snapshot %s: %w", key, err)
	}
	return nil
}

// Close shuts down the pooled connections.
func (d *DB) Close() error {
	sqlDB, err := d.conn.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
