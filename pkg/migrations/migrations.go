package migrations

import (
	"embed"
	"fmt"
	"io/fs"
	"os"

	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:embed sql/sqlite/*.sql sql/postgres/*.sql
var embeddedMigrations embed.FS

// MigrateStore applies the migrations of the database dialect. When migrationFolder is set it
// is used instead of the migrations compiled into the binary.
func MigrateStore(db *gorm.DB, migrationFolder string) error {
	goose.SetLogger(&logger{})

	dialect, dir, err := gooseDialect(db.Dialector.Name())
	if err != nil {
		return err
	}

	var migrationFS fs.FS
	if migrationFolder != "" {
		fi, err := os.Stat(migrationFolder)
		if err != nil {
			return err
		}
		if !fi.Mode().IsDir() {
			return fmt.Errorf("failed to open migration folder: %s is not a folder", migrationFolder)
		}
		migrationFS = os.DirFS(migrationFolder)
		dir = "."
	} else {
		migrationFS = embeddedMigrations
	}

	goose.SetBaseFS(migrationFS)
	defer goose.SetBaseFS(nil)

	if err := goose.SetDialect(dialect); err != nil {
		return err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return err
	}

	return goose.Up(sqlDB, dir)
}

func gooseDialect(gormDialect string) (dialect string, dir string, err error) {
	switch gormDialect {
	case "sqlite":
		return "sqlite3", "sql/sqlite", nil
	case "postgres":
		return "postgres", "sql/postgres", nil
	default:
		return "", "", fmt.Errorf("no migrations for database dialect %q", gormDialect)
	}
}

/*
logger implements goose.Logger interface

	type Logger interface {
		Fatalf(format string, v ...interface{})
		Printf(format string, v ...interface{})
	}
*/
type logger struct{}

func (m *logger) Printf(format string, v ...interface{}) { zap.S().Named("migrations").Infof(format, v...) }
func (m *logger) Fatalf(format string, v ...interface{}) { zap.S().Named("migrations").Fatalf(format, v...) }
