package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"toastd/logging"

	_ "modernc.org/sqlite"
)

// Config holds database configuration
type Config struct {
	Path              string        `env:"DB_PATH" default:"./toastd.db"`
	MaxOpenConns      int           `env:"DB_MAX_OPEN_CONNS" default:"25"`
	MaxIdleConns      int           `env:"DB_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime   time.Duration `env:"DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime   time.Duration `env:"DB_CONN_MAX_IDLE_TIME" default:"15m"`
	BusyTimeoutMs     int           `env:"DB_BUSY_TIMEOUT_MS" default:"5000"`
	EnableForeignKeys bool          `env:"DB_ENABLE_FOREIGN_KEYS" default:"true"`
	EnableWAL         bool          `env:"DB_ENABLE_WAL" default:"true"`
}

// Database wraps the SQL database connections and provides managed access
type Database struct {
	readDB  *sql.DB // Connection pool for reads
	writeDB *sql.DB // Serialized connection for writes
	config  Config
	logger  *logging.Logger
}

// New creates a new Database instance with separate read/write connections
func New(config Config, logger *logging.Logger) (*Database, error) {
	dsn := buildDSN(config)

	// Check if database needs to be initialized
	dbExists := checkDatabaseExists(config.Path)

	logger.Database("Opening database connections",
		"path", config.Path,
		"exists", dbExists,
		"read_max_open_conns", config.MaxOpenConns,
		"write_max_open_conns", 1)

	// Create read connection pool
	readDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open read database: %w", err)
	}

	// Configure read connection pool for concurrency
	readDB.SetMaxOpenConns(config.MaxOpenConns)
	readDB.SetMaxIdleConns(config.MaxIdleConns)
	readDB.SetConnMaxLifetime(config.ConnMaxLifetime)
	readDB.SetConnMaxIdleTime(config.ConnMaxIdleTime)

	// Create write connection (serialized)
	writeDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		readDB.Close()
		return nil, fmt.Errorf("failed to open write database: %w", err)
	}

	// Configure write connection for serialization
	writeDB.SetMaxOpenConns(1) // Single connection forces serialization
	writeDB.SetMaxIdleConns(1) // Keep the connection alive
	writeDB.SetConnMaxLifetime(config.ConnMaxLifetime)
	writeDB.SetConnMaxIdleTime(config.ConnMaxIdleTime)

	database := &Database{
		readDB:  readDB,
		writeDB: writeDB,
		config:  config,
		logger:  logger,
	}

	// Test connections and configure database
	if err := database.initialize(); err != nil {
		readDB.Close()
		writeDB.Close()
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// Run migrations to ensure database schema is up to date
	if err := database.runMigrations(); err != nil {
		readDB.Close()
		writeDB.Close()
		return nil, fmt.Errorf("failed to run database migrations: %w", err)
	}

	logger.Database("Database initialized successfully",
		"path", config.Path,
		"existed", dbExists,
		"wal_mode", config.EnableWAL,
		"read_connections", config.MaxOpenConns,
		"write_connections", 1)

	return database, nil
}

// buildDSN constructs the SQLite Data Source Name. modernc.org/sqlite applies
// each _pragma on every new connection.
func buildDSN(config Config) string {
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(%d)", config.Path, config.BusyTimeoutMs)

	if config.EnableWAL {
		dsn += "&_pragma=journal_mode(WAL)"
	}

	if config.EnableForeignKeys {
		dsn += "&_pragma=foreign_keys(1)"
	}

	dsn += "&_pragma=synchronous(NORMAL)"
	dsn += "&_pragma=temp_store(MEMORY)"
	dsn += "&_pragma=cache_size(-16000)" // 16MB cache

	return dsn
}

// initialize configures both database connections after creation
func (d *Database) initialize() error {
	// Test read connection
	if err := d.readDB.Ping(); err != nil {
		return fmt.Errorf("failed to ping read database: %w", err)
	}

	// Test write connection
	if err := d.writeDB.Ping(); err != nil {
		return fmt.Errorf("failed to ping write database: %w", err)
	}

	// Configure both connections with same settings
	connections := []*sql.DB{d.readDB, d.writeDB}
	connectionTypes := []string{"read", "write"}

	for i, conn := range connections {
		connType := connectionTypes[i]

		// Set busy timeout
		if _, err := conn.Exec(fmt.Sprintf("PRAGMA busy_timeout = %d", d.config.BusyTimeoutMs)); err != nil {
			return fmt.Errorf("failed to set busy_timeout on %s connection: %w", connType, err)
		}
		d.logger.Database("Busy timeout configured", "connection", connType, "timeout_ms", d.config.BusyTimeoutMs)

		// Enable and verify WAL mode
		if d.config.EnableWAL {
			// Force enable WAL mode via PRAGMA
			var journalMode string
			err := conn.QueryRow("PRAGMA journal_mode=WAL").Scan(&journalMode)
			if err != nil {
				return fmt.Errorf("failed to enable WAL mode on %s connection: %w", connType, err)
			}

			if journalMode != "wal" {
				d.logger.Warn("WAL mode not enabled", "connection", connType, "journal_mode", journalMode)
			} else {
				d.logger.Database("WAL mode enabled", "connection", connType)
			}
		}
	}

	// Log connection pool stats for monitoring
	d.logPoolStats()

	return nil
}

// ReadDB returns the read database connection
func (d *Database) ReadDB() *sql.DB {
	return d.readDB
}

// WriteDB returns the write database connection
func (d *Database) WriteDB() *sql.DB {
	return d.writeDB
}

// Close closes both database connections
func (d *Database) Close() error {
	d.logger.Database("Closing database connections")

	if d.config.EnableWAL {
		d.logger.Database("Checkpointing WAL")
		if _, err := d.writeDB.Exec("PRAGMA wal_checkpoint(TRUNCATE);"); err != nil {
			d.logger.Warn("failed to checkpoint WAL", "error", err)
		}
	}

	var errs []error
	if err := d.readDB.Close(); err != nil {
		errs = append(errs, fmt.Errorf("read connection: %w", err))
	}
	if err := d.writeDB.Close(); err != nil {
		errs = append(errs, fmt.Errorf("write connection: %w", err))
	}

	if len(errs) > 0 {
		return fmt.Errorf("failed to close connections: %v", errs)
	}
	return nil
}

// Health checks database connectivity and returns pool statistics for both connections
func (d *Database) Health(ctx context.Context) (map[string]interface{}, error) {
	if err := d.readDB.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("read database ping failed: %w", err)
	}
	if err := d.writeDB.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("write database ping failed: %w", err)
	}

	readStats := d.readDB.Stats()
	writeStats := d.writeDB.Stats()

	return map[string]interface{}{
		"read_pool": map[string]interface{}{
			"open_connections":    readStats.OpenConnections,
			"in_use":              readStats.InUse,
			"idle":                readStats.Idle,
			"wait_count":          readStats.WaitCount,
			"wait_duration":       readStats.WaitDuration.String(),
			"max_idle_closed":     readStats.MaxIdleClosed,
			"max_lifetime_closed": readStats.MaxLifetimeClosed,
			"max_open_conns":      d.config.MaxOpenConns,
		},
		"write_pool": map[string]interface{}{
			"open_connections":    writeStats.OpenConnections,
			"in_use":              writeStats.InUse,
			"idle":                writeStats.Idle,
			"wait_count":          writeStats.WaitCount,
			"wait_duration":       writeStats.WaitDuration.String(),
			"max_idle_closed":     writeStats.MaxIdleClosed,
			"max_lifetime_closed": writeStats.MaxLifetimeClosed,
			"max_open_conns":      1,
		},
	}, nil
}

// logPoolStats logs current connection pool statistics for both connections
func (d *Database) logPoolStats() {
	readStats := d.readDB.Stats()
	writeStats := d.writeDB.Stats()

	d.logger.Database("Read connection pool stats",
		"open_connections", readStats.OpenConnections,
		"in_use", readStats.InUse,
		"idle", readStats.Idle,
		"wait_count", readStats.WaitCount,
		"wait_duration", readStats.WaitDuration.String())

	d.logger.Database("Write connection pool stats",
		"open_connections", writeStats.OpenConnections,
		"in_use", writeStats.InUse,
		"idle", writeStats.Idle,
		"wait_count", writeStats.WaitCount,
		"wait_duration", writeStats.WaitDuration.String())
}

// WithTx executes a function within a database transaction (uses write connection)
func (d *Database) WithTx(ctx context.Context, fn func(*sql.Tx) error) error {
	return d.withTx(ctx, d.writeDB, nil, "write", fn)
}

// WithReadTx executes a function within a read-only transaction
func (d *Database) WithReadTx(ctx context.Context, fn func(*sql.Tx) error) error {
	return d.withTx(ctx, d.readDB, &sql.TxOptions{ReadOnly: true}, "read", fn)
}

func (d *Database) withTx(ctx context.Context, conn *sql.DB, opts *sql.TxOptions, kind string, fn func(*sql.Tx) error) error {
	tx, err := conn.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("failed to begin %s transaction: %w", kind, err)
	}

	if err := fn(tx); err != nil {
		if rollbackErr := tx.Rollback(); rollbackErr != nil {
			d.logger.Error("Failed to rollback transaction", "kind", kind, "error", rollbackErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit %s transaction: %w", kind, err)
	}

	return nil
}
