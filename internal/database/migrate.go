package database

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"go.uber.org/zap"
)

//go:embed schema/postgres/*.sql schema/sqlite/*.sql
var embedSchema embed.FS

// ApplySchema applies all SQL schema files for the connection's dialect.
// Every file is idempotent and runs on each start.
func (db *DB) ApplySchema(ctx context.Context, l *zap.Logger) error {
	dir := "schema/" + db.dialect.String()

	sqlFiles, err := schemaFiles(dir)
	if err != nil {
		return err
	}

	l.Info("found schema files", zap.String("dialect", db.dialect.String()), zap.Strings("files", sqlFiles))

	for _, filename := range sqlFiles {
		content, err := embedSchema.ReadFile(dir + "/" + filename)
		if err != nil {
			return fmt.Errorf("failed to read schema file %s: %w", filename, err)
		}

		if _, err := db.conn.ExecContext(ctx, string(content)); err != nil {
			return fmt.Errorf("failed to execute schema %s: %w", filename, err)
		}

		l.Debug("schema file executed", zap.String("file", filename))
	}

	return nil
}

func schemaFiles(dir string) ([]string, error) {
	entries, err := fs.ReadDir(embedSchema, dir)
	if err != nil {
		return nil, err
	}

	var sqlFiles []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".sql") {
			sqlFiles = append(sqlFiles, entry.Name())
		}
	}

	sort.Strings(sqlFiles)
	return sqlFiles, nil
}
