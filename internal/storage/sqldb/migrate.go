package sqldb

import (
	"context"
	"embed"
	"fmt"
	"log/slog"
	"path"
	"sync"

	"github.com/pressly/goose/v3"
)

// Schema files live under migrations/<dialect>/ and are compiled into
// the binary.
//
//go:embed migrations/*/*.sql
var migrations embed.FS

// goose keeps its configuration in package globals.
var gooseMu sync.Mutex

// Migrate applies every pending migration for the DB's dialect. The
// students table is created with IF NOT EXISTS, so databases created
// before goose tracked them migrate cleanly.
func (s *DB) Migrate(ctx context.Context) error {
	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(migrations)
	defer goose.SetBaseFS(nil)
	goose.SetLogger(slogGooseLogger{})

	if err := goose.SetDialect(string(s.dialect)); err != nil {
		return fmt.Errorf("sqldb.Migrate: set dialect: %w", err)
	}

	dir := path.Join("migrations", string(s.dialect))
	if err := goose.UpContext(ctx, s.db, dir); err != nil {
		return fmt.Errorf("sqldb.Migrate: up: %w", err)
	}

	return nil
}

// slogGooseLogger forwards goose output to the default slog logger.
type slogGooseLogger struct{}

func (slogGooseLogger) Printf(format string, v ...any) {
	slog.Info(fmt.Sprintf(format, v...), slog.String("component", "migrations"))
}

// Fatalf logs without exiting; the error still comes back from goose.
func (slogGooseLogger) Fatalf(format string, v ...any) {
	slog.Error(fmt.Sprintf(format, v...), slog.String("component", "migrations"))
}
