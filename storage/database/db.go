package database

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"github.com/trezcool/homework/core"
	appfs "github.com/trezcool/homework/fs"
)

// Dialects, named after the goose dialects.
const (
	Postgres = "postgres"
	SQLite   = "sqlite3"
)

var drivers = map[string]string{
	Postgres: "postgres", // lib/pq
	SQLite:   "sqlite",   // modernc.org/sqlite
}

func init() {
	// modernc registers as "sqlite", which sqlx does not know the bindvar type of.
	sqlx.BindDriver(drivers[SQLite], sqlx.QUESTION)
}

// Source is a parsed DATABASE_URL.
type Source struct {
	Dialect string
	DSN     string
}

func (src Source) Driver() string {
	return drivers[src.Dialect]
}

// ParseURL maps a DATABASE_URL to a driver DSN.
// postgres:// and postgresql:// URLs go to postgres; sqlite:/// URLs (relative, or absolute
// with four slashes), file: URIs and bare paths go to sqlite. An empty URL is core.LocalDatabase.
func ParseURL(rawURL string) (Source, error) {
	rawURL = core.CleanString(rawURL)
	switch {
	case rawURL == "":
		return sqliteSource(core.LocalDatabase), nil
	case strings.HasPrefix(rawURL, "postgres://"), strings.HasPrefix(rawURL, "postgresql://"):
		return Source{Dialect: Postgres, DSN: rawURL}, nil
	case strings.HasPrefix(rawURL, "sqlite:///"):
		return sqliteSource(strings.TrimPrefix(rawURL, "sqlite:///")), nil
	case strings.HasPrefix(rawURL, "file:"):
		return Source{Dialect: SQLite, DSN: rawURL}, nil
	case strings.Contains(rawURL, "://"):
		return Source{}, errors.Errorf("unsupported database url scheme: %q", rawURL[:strings.Index(rawURL, "://")])
	default:
		return sqliteSource(rawURL), nil
	}
}

func sqliteSource(path string) Source {
	if path == "" {
		path = core.LocalDatabase
	}
	return Source{
		Dialect: SQLite,
		DSN:     fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)", path),
	}
}

// Open connects to the configured database and waits for it to be ready.
func Open(conf *core.Config) (*sqlx.DB, error) {
	src, err := ParseURL(conf.Store.DatabaseURL)
	if err != nil {
		return nil, err
	}
	return OpenSource(src)
}

func OpenSource(src Source) (*sqlx.DB, error) {
	db, err := sqlx.Open(src.Driver(), src.DSN)
	if err != nil {
		return nil, errors.Wrap(err, "opening database")
	}
	if src.Dialect == SQLite {
		// one writer at a time; sqlite serializes anyway
		db.SetMaxOpenConns(1)
	}
	if err = ping(db); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "pinging database")
	}
	return db, nil
}

// ping waits for the database to be ready. Waits 100ms longer between each attempt.
func ping(db *sqlx.DB) error {
	var err error
	maxAttempts := 30
	for attempts := 1; attempts <= maxAttempts; attempts++ {
		err = db.Ping()
		if err == nil {
			break
		}
		time.Sleep(time.Duration(attempts) * 100 * time.Millisecond)
	}

	if err != nil {
		return errors.Wrap(err, "DB ping timeout")
	}
	return nil
}

// Dialect returns the goose dialect of an open database.
func Dialect(db *sqlx.DB) string {
	if db.DriverName() == drivers[Postgres] {
		return Postgres
	}
	return SQLite
}

// Migrate applies all pending migrations.
func Migrate(db *sqlx.DB, logger core.Logger) error {
	if err := Run(context.Background(), db, logger, "up"); err != nil {
		return errors.Wrap(err, "migrating database")
	}
	return nil
}

// Run executes a goose command (up, down, status, version, redo, ...) against the embedded migrations.
func Run(ctx context.Context, db *sqlx.DB, logger core.Logger, command string, args ...string) error {
	dialect := Dialect(db)
	goose.SetBaseFS(appfs.FS)
	goose.SetLogger(gooseLogger{logger})
	if err := goose.SetDialect(dialect); err != nil {
		return err
	}
	return goose.RunContext(ctx, command, db.DB, "migrations/"+dialect, args...)
}

// gooseLogger forwards goose output to a core.Logger.
type gooseLogger struct {
	logger core.Logger
}

func (l gooseLogger) Printf(format string, v ...interface{}) {
	l.logger.Info(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

func (l gooseLogger) Fatalf(format string, v ...interface{}) {
	l.logger.Fatal(strings.TrimSpace(fmt.Sprintf(format, v...)))
}
