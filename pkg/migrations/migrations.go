package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
)

// TableName is the goose bookkeeping table.
const TableName = "schema_migrations"

const dir = "sql"

//go:embed sql/*.sql
var files embed.FS

// Commands lists the supported migrate sub-commands.
var Commands = []string{"up", "down", "status", "version", "reset"}

// Run executes a goose command against db using the embedded SQL files.
func Run(ctx context.Context, db *sql.DB, command string, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	goose.SetBaseFS(files)
	goose.SetLogger(&gooseLogger{sugar: logger.Sugar()})
	goose.SetTableName(TableName)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}

	logger.Info("running migrations", zap.String("command", command))
	var err error
	switch command {
	case "up":
		err = goose.UpContext(ctx, db, dir)
	case "down":
		err = goose.DownContext(ctx, db, dir)
	case "status":
		err = goose.StatusContext(ctx, db, dir)
	case "version":
		err = goose.VersionContext(ctx, db, dir)
	case "reset":
		err = goose.ResetContext(ctx, db, dir)
	default:
		return fmt.Errorf("unknown migrate command %q", command)
	}
	if err != nil {
		return fmt.Errorf("migrate %s: %w", command, err)
	}
	return nil
}

type gooseLogger struct {
	sugar *zap.SugaredLogger
}

func (l *gooseLogger) Fatalf(format string, v ...interface{}) {
	l.sugar.Fatalf(format, v...)
}

func (l *gooseLogger) Printf(format string, v ...interface{}) {
	l.sugar.Infof(format, v...)
}
