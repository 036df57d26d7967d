package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net"
	"os"
	"strconv"
	"time"

	"github.com/honorguild/honorbot/honorbot/database/models"
	"github.com/honorguild/honorbot/internal/domain/logger"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/pgdriver"
	_ "modernc.org/sqlite"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	defaultConnTimeout   = 5 * time.Second
	defaultMaxRetries    = 3
	defaultRetryInterval = time.Second
	slowQueryThreshold   = 500 * time.Millisecond
)

type DBConfig struct {
	Driver       string `toml:"driver" env:"DRIVER"`
	Path         string `toml:"path" env:"PATH"`
	Host         string `toml:"host" env:"HOST"`
	Port         int    `toml:"port" env:"PORT"`
	User         string `toml:"user" env:"USER"`
	Password     string `toml:"password" env:"PASSWORD"`
	Database     string `toml:"database" env:"NAME"`
	SSLMode      string `toml:"sslmode" env:"SSLMODE"`
	PoolSize     int    `toml:"pool_size"`
	MaxIdleConns int    `toml:"max_idle_conns"`
	MaxLifetime  int    `toml:"max_lifetime"`
	LogQueries   bool   `toml:"log_queries"`
}

// DB wraps the bun handle the repositories use. On Postgres it also keeps the
// pgx pool for health checks and session setup.
type DB struct {
	pool  *pgxpool.Pool
	bunDB *bun.DB
}

func New(ctx context.Context, cfg DBConfig) (*DB, error) {
	var (
		db  *DB
		err error
	)
	switch cfg.Driver {
	case "", DriverPostgres:
		db, err = newPostgres(ctx, cfg)
	case DriverSQLite:
		db, err = NewSQLite(cfg.Path)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
	if err != nil {
		return nil, err
	}

	if cfg.LogQueries {
		db.bunDB.AddQueryHook(logger.NewQueryLogger(slowQueryThreshold))
	}
	return db, nil
}

func newPostgres(ctx context.Context, cfg DBConfig) (*DB, error) {
	var conn net.Conn
	var err error

	addr := net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))
	tryDial := func() (net.Conn, error) {
		if os.Getenv("DB_DIAL_FORCE_IPV6") == "1" {
			return net.DialTimeout("tcp6", addr, defaultConnTimeout)
		}
		// Prefer IPv4, then fall back to IPv6
		if c, e := net.DialTimeout("tcp4", addr, defaultConnTimeout); e == nil {
			return c, nil
		}
		return net.DialTimeout("tcp6", addr, defaultConnTimeout)
	}

	for i := 0; i < defaultMaxRetries; i++ {
		conn, err = tryDial()
		if err == nil {
			break
		}
		time.Sleep(defaultRetryInterval)
	}
	if err != nil {
		return nil, fmt.Errorf("database server unreachable after %d attempts: %w", defaultMaxRetries, err)
	}
	conn.Close()

	poolConfig, err := pgxpool.ParseConfig(buildConnString(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection string: %w", err)
	}
	if cfg.PoolSize > 0 {
		poolConfig.MaxConns = int32(cfg.PoolSize)
	}
	if cfg.MaxIdleConns > 0 {
		poolConfig.MinConns = int32(cfg.MaxIdleConns)
	}
	if cfg.MaxLifetime > 0 {
		poolConfig.MaxConnLifetime = time.Duration(cfg.MaxLifetime) * time.Second
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(buildConnString(cfg))))
	if cfg.PoolSize > 0 {
		sqldb.SetMaxOpenConns(cfg.PoolSize)
	}
	return &DB{pool: pool, bunDB: bun.NewDB(sqldb, pgdialect.New())}, nil
}

func buildConnString(cfg DBConfig) string {
	sslMode := cfg.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s&connect_timeout=5",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Database, sslMode,
	)
}

// NewSQLite opens a SQLite database at path, or a private in-memory database
// when path is empty or ":memory:". Writers are serialized on one connection.
func NewSQLite(path string) (*DB, error) {
	dsn := ":memory:"
	if path != "" && path != ":memory:" {
		dsn = "file:" + path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	}

	sqldb, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	sqldb.SetMaxOpenConns(1)
	sqldb.SetConnMaxLifetime(0)

	return &DB{bunDB: bun.NewDB(sqldb, sqlitedialect.New())}, nil
}

func (db *DB) BunDB() *bun.DB {
	return db.bunDB
}

func (db *DB) IsPostgres() bool {
	return db.bunDB.Dialect().Name() == dialect.PG
}

func (db *DB) ExecWithLog(ctx context.Context, query string, args ...any) (sql.Result, error) {
	start := time.Now()
	result, err := db.bunDB.ExecContext(ctx, query, args...)
	duration := time.Since(start)

	if err != nil {
		slog.Error("Query failed",
			slog.String("type", "db"),
			slog.String("operation", "exec"),
			slog.String("query", query),
			slog.Any("args", args),
			slog.Duration("took", duration),
			slog.Any("error", err),
		)
		return result, err
	}

	slog.Debug("Query executed",
		slog.String("type", "db"),
		slog.String("operation", "exec"),
		slog.String("query", query),
		slog.Duration("took", duration),
	)
	return result, nil
}

// Ping verifies both database connections are working
func (db *DB) Ping(ctx context.Context) error {
	if db.pool != nil {
		if err := db.pool.Ping(ctx); err != nil {
			return fmt.Errorf("pgxpool ping failed: %w", err)
		}
	}
	if err := db.bunDB.PingContext(ctx); err != nil {
		return fmt.Errorf("bun ping failed: %w", err)
	}
	return nil
}

func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
	if db.bunDB != nil {
		db.bunDB.Close()
	}
}

// InitializeSchema creates all required database tables and indexes
func (db *DB) InitializeSchema(ctx context.Context) error {
	if db.IsPostgres() {
		if err := db.ensureUTF8Encoding(ctx); err != nil {
			return fmt.Errorf("failed to ensure UTF-8 encoding: %w", err)
		}
	}

	tables := []any{
		(*models.UserHonor)(nil),
		(*models.HonorLog)(nil),
		(*models.DailyBonus)(nil),
		(*models.LootLog)(nil),
		(*models.BadWord)(nil),
	}
	for _, model := range tables {
		if _, err := db.bunDB.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
			return fmt.Errorf("failed to create table: %w", err)
		}
	}

	if err := db.ensureNoteColumn(ctx); err != nil {
		return fmt.Errorf("failed to add honor_log.note: %w", err)
	}

	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_user_honor_honor ON user_honor(honor);",
		"CREATE INDEX IF NOT EXISTS idx_honor_log_user_ts ON honor_log(user_id, ts);",
		"CREATE INDEX IF NOT EXISTS idx_honor_log_ts ON honor_log(ts);",
		"CREATE INDEX IF NOT EXISTS idx_loot_log_user_ts ON loot_log(user_id, ts);",
	}
	for _, idx := range indexes {
		if _, err := db.ExecWithLog(ctx, idx); err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}

	slog.Info("Database schema initialized",
		slog.String("type", "db"),
		slog.String("dialect", db.bunDB.Dialect().Name().String()),
		slog.Int("tables", len(tables)),
	)
	return nil
}

// ensureNoteColumn upgrades honor_log tables created before entries carried a
// free-text note.
func (db *DB) ensureNoteColumn(ctx context.Context) error {
	if db.IsPostgres() {
		_, err := db.ExecWithLog(ctx, "ALTER TABLE honor_log ADD COLUMN IF NOT EXISTS note TEXT NOT NULL DEFAULT '';")
		return err
	}

	var n int
	if err := db.bunDB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM pragma_table_info('honor_log') WHERE name = 'note'").Scan(&n); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	_, err := db.ExecWithLog(ctx, "ALTER TABLE honor_log ADD COLUMN note TEXT NOT NULL DEFAULT '';")
	return err
}

func (db *DB) ensureUTF8Encoding(ctx context.Context) error {
	var encoding string
	if err := db.pool.QueryRow(ctx, "SHOW server_encoding;").Scan(&encoding); err != nil {
		return fmt.Errorf("failed to check database encoding: %w", err)
	}

	// Reasons and nicknames carry emoji; changing encoding requires a superuser.
	if encoding != "UTF8" {
		slog.Warn("Database is not using UTF-8 encoding, tier symbols may be mangled",
			slog.String("type", "db"),
			slog.String("current_encoding", encoding))
	}
	return nil
}
