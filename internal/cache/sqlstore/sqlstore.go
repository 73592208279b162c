// Package sqlstore persists cache entries in a SQL database.
package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"github.com/yisselda/translation-service/internal/cache"
)

// Supported drivers.
const (
	DriverSQLite   = "sqlite3"
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
)

const table = "translation_cache"

const schema = `CREATE TABLE IF NOT EXISTS translation_cache (
	cache_key VARCHAR(64) NOT NULL PRIMARY KEY,
	translated_text TEXT NOT NULL,
	created_at BIGINT NOT NULL,
	last_access_at BIGINT NOT NULL
)`

// Store implements cache.Store.
type Store struct {
	db     *sqlx.DB
	sq     sq.StatementBuilderType
	upsert string
}

var _ cache.Store = (*Store)(nil)

type row struct {
	Key            string `db:"cache_key"`
	TranslatedText string `db:"translated_text"`
	CreatedAt      int64  `db:"created_at"`
	LastAccessAt   int64  `db:"last_access_at"`
}

// Open connects to the database and creates the cache table if needed.
func Open(ctx context.Context, driver, dsn string) (*Store, error) {
	switch driver {
	case DriverSQLite, DriverPostgres:
	case DriverMySQL:
		cfg, err := mysql.ParseDSN(dsn)
		if err != nil {
			return nil, fmt.Errorf("mysql.ParseDSN() > %w", err)
		}
		cfg.ParseTime = true
		dsn = cfg.FormatDSN()
	default:
		return nil, fmt.Errorf("unsupported cache store driver: %s", driver)
	}

	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlx.Open() > %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db.PingContext() > %w", err)
	}

	s := New(db)
	if err := s.Migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// New wraps an open database. The placeholder and upsert syntax follow
// db.DriverName().
func New(db *sqlx.DB) *Store {
	s := &Store{
		db: db,
		sq: sq.StatementBuilder.PlaceholderFormat(sq.Question),
		upsert: "ON CONFLICT (cache_key) DO UPDATE SET " +
			"translated_text = excluded.translated_text, " +
			"created_at = excluded.created_at, " +
			"last_access_at = excluded.last_access_at",
	}
	switch db.DriverName() {
	case DriverPostgres:
		s.sq = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	case DriverMySQL:
		s.upsert = "ON DUPLICATE KEY UPDATE " +
			"translated_text = VALUES(translated_text), " +
			"created_at = VALUES(created_at), " +
			"last_access_at = VALUES(last_access_at)"
	}
	return s
}

// Migrate creates the cache table.
func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create %s: %w", table, err)
	}
	return nil
}

// Get implements cache.Store.
func (s *Store) Get(ctx context.Context, key cache.Key) (*cache.Entry, error) {
	query, args, err := s.sq.
		Select("cache_key", "translated_text", "created_at", "last_access_at").
		From(table).
		Where(sq.Eq{"cache_key": string(key)}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	var r row
	if err := s.db.GetContext(ctx, &r, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select %s: %w", table, err)
	}
	return &cache.Entry{
		Key:            cache.Key(r.Key),
		TranslatedText: r.TranslatedText,
		CreatedAt:      time.UnixMilli(r.CreatedAt),
		LastAccessAt:   time.UnixMilli(r.LastAccessAt),
	}, nil
}

// Put implements cache.Store.
func (s *Store) Put(ctx context.Context, entry cache.Entry) error {
	query, args, err := s.sq.
		Insert(table).
		Columns("cache_key", "translated_text", "created_at", "last_access_at").
		Values(string(entry.Key), entry.TranslatedText, entry.CreatedAt.UnixMilli(), entry.LastAccessAt.UnixMilli()).
		Suffix(s.upsert).
		ToSql()
	if err != nil {
		return fmt.Errorf("build upsert: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert %s: %w", table, err)
	}
	return nil
}

// DeleteExpired implements cache.Store.
func (s *Store) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	query, args, err := s.sq.
		Delete(table).
		Where(sq.Lt{"created_at": before.UnixMilli()}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build delete: %w", err)
	}
	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("delete %s: %w", table, err)
	}
	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return deleted, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}
