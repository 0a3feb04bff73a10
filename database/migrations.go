package database

import (
	"cmp"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"slices"
	"strconv"
	"strings"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

const migrationsDir = "migrations"

// Migration is one numbered schema file, e.g. "1_toast_history.sql".
type Migration struct {
	Version int64
	Name    string
	SQL     string
}

// parseMigrationName splits "<version>_<name>.sql" into its version and base name.
func parseMigrationName(file string) (int64, string, error) {
	base, ok := strings.CutSuffix(file, ".sql")
	if !ok {
		return 0, "", fmt.Errorf("non-migration file in %s: %s", migrationsDir, file)
	}
	prefix, _, ok := strings.Cut(base, "_")
	if !ok {
		return 0, "", fmt.Errorf("malformed migration filename: %s", file)
	}
	version, err := strconv.ParseInt(prefix, 10, 64)
	if err != nil {
		return 0, "", fmt.Errorf("invalid version in migration filename %s: %w", file, err)
	}
	return version, base, nil
}

// loadMigrations reads every migration under dir in fsys, ordered by version.
// Two files sharing a version are an error.
func loadMigrations(fsys fs.FS, dir string) ([]Migration, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("read migrations: %w", err)
	}

	migrations := make([]Migration, 0, len(entries))
	for _, entry := range entries {
		version, name, err := parseMigrationName(entry.Name())
		if err != nil {
			return nil, err
		}
		content, err := fs.ReadFile(fsys, path.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("read migration %s: %w", entry.Name(), err)
		}
		migrations = append(migrations, Migration{Version: version, Name: name, SQL: string(content)})
	}

	slices.SortFunc(migrations, func(a, b Migration) int { return cmp.Compare(a.Version, b.Version) })
	for i := 1; i < len(migrations); i++ {
		if migrations[i].Version == migrations[i-1].Version {
			return nil, fmt.Errorf("duplicate migration version %d: %s and %s",
				migrations[i].Version, migrations[i-1].Name, migrations[i].Name)
		}
	}
	return migrations, nil
}

// appliedVersions returns the versions recorded in schema_migrations,
// creating the table on first use.
func (d *Database) appliedVersions() (map[int64]bool, error) {
	if _, err := d.writeDB.Exec(`CREATE TABLE IF NOT EXISTS schema_migrations (
		version INT PRIMARY KEY,
		name TEXT NOT NULL,
		applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`); err != nil {
		return nil, fmt.Errorf("create schema_migrations: %w", err)
	}

	rows, err := d.readDB.Query("SELECT version FROM schema_migrations")
	if err != nil {
		return nil, fmt.Errorf("query applied migrations: %w", err)
	}
	defer rows.Close()

	applied := make(map[int64]bool)
	for rows.Next() {
		var version int64
		if err := rows.Scan(&version); err != nil {
			return nil, fmt.Errorf("scan migration version: %w", err)
		}
		applied[version] = true
	}
	return applied, rows.Err()
}

func (d *Database) apply(m Migration) error {
	tx, err := d.writeDB.Begin()
	if err != nil {
		return fmt.Errorf("begin migration %s: %w", m.Name, err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(m.SQL); err != nil {
		return fmt.Errorf("execute migration %s: %w", m.Name, err)
	}
	if _, err := tx.Exec("INSERT INTO schema_migrations (version, name) VALUES (?, ?)", m.Version, m.Name); err != nil {
		return fmt.Errorf("record migration %s: %w", m.Name, err)
	}
	return tx.Commit()
}

// migrate applies every migration in fsys not yet recorded, in version
// order, and returns how many ran.
func (d *Database) migrate(fsys fs.FS) (int, error) {
	migrations, err := loadMigrations(fsys, migrationsDir)
	if err != nil {
		return 0, err
	}
	applied, err := d.appliedVersions()
	if err != nil {
		return 0, err
	}

	ran := 0
	for _, m := range migrations {
		if applied[m.Version] {
			continue
		}
		d.logger.Database("Applying migration", "version", m.Version, "name", m.Name)
		if err := d.apply(m); err != nil {
			return ran, err
		}
		ran++
	}
	return ran, nil
}

func (d *Database) runMigrations() error {
	ran, err := d.migrate(migrationFiles)
	if err != nil {
		return err
	}
	d.logger.Database("Database schema up to date", "applied", ran)
	return nil
}

// checkDatabaseExists reports whether path holds a non-empty file.
func checkDatabaseExists(path string) bool {
	stat, err := os.Stat(path)
	return err == nil && stat.Size() > 0
}
