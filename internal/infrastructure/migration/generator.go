package migration

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/atelier-edu/atelier/internal/shared/logger"
)

const migrationTimestampLayout = "20060102150405"

// Generator authors timestamped up/down SQL migration pairs in the layout
// golang-migrate expects (<timestamp>_<name>.{up,down}.sql).
type Generator struct {
	scriptsPath string
	logger      logger.Interface
}

func NewGenerator(scriptsPath string) *Generator {
	return &Generator{
		scriptsPath: scriptsPath,
		logger:      logger.NewLogger().With("component", "migration.generator"),
	}
}

// CreateMigration writes an empty up/down pair for the given name. The
// timestamp prefix keeps pairs ordered and unique across branches.
func (g *Generator) CreateMigration(name string) error {
	if err := os.MkdirAll(g.scriptsPath, 0755); err != nil {
		return fmt.Errorf("failed to create scripts directory: %w", err)
	}

	now := time.Now()
	stamp := now.Format(migrationTimestampLayout)
	created := now.Format(time.DateTime)

	files := []struct {
		path    string
		content string
	}{
		{
			path:    filepath.Join(g.scriptsPath, fmt.Sprintf("%s_%s.up.sql", stamp, name)),
			content: fmt.Sprintf("-- %s (up)\n-- created %s\n\n", name, created),
		},
		{
			path:    filepath.Join(g.scriptsPath, fmt.Sprintf("%s_%s.down.sql", stamp, name)),
			content: fmt.Sprintf("-- %s (down)\n-- created %s\n\n", name, created),
		},
	}

	for _, f := range files {
		if err := os.WriteFile(f.path, []byte(f.content), 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", filepath.Base(f.path), err)
		}
	}

	g.logger.Infow("migration pair created",
		"name", name,
		"up_file", files[0].path,
		"down_file", files[1].path)

	return nil
}
