package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"sort"
)

//go:embed *.sql
var files embed.FS

// Executor минимальный интерфейс для применения миграций
type Executor interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

// Names возвращает имена файлов миграций в порядке применения
func Names() ([]string, error) {
	names, err := fs.Glob(files, "*.sql")
	if err != nil {
		return nil, err
	}
	sort.Strings(names)
	return names, nil
}

// Read возвращает содержимое файла миграции
func Read(name string) (string, error) {
	data, err := files.ReadFile(name)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Apply последовательно применяет все миграции
// Скрипты идемпотентны (IF NOT EXISTS / CREATE OR REPLACE), поэтому повторный запуск безопасен
func Apply(ctx context.Context, db Executor) error {
	names, err := Names()
	if err != nil {
		return fmt.Errorf("migrations: list files: %w", err)
	}
	for _, name := range names {
		script, err := Read(name)
		if err != nil {
			return fmt.Errorf("migrations: read %s: %w", name, err)
		}
		if _, err := db.ExecContext(ctx, script); err != nil {
			return fmt.Errorf("migrations: apply %s: %w", name, err)
		}
	}
	return nil
}
