package models

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/Daskott/addressbook/server/logger"
	"github.com/Daskott/addressbook/shared"
	"github.com/Daskott/addressbook/utils"
	sqliteEncrypt "github.com/Daskott/gorm-sqlite-cipher"
	"github.com/pkg/errors"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

const DB_NAME = "addressbook.db"

const testPassPhrase = "addressbook-test"

var logg = logger.NewLogger("models")
var db *gorm.DB

// AutoMigrate opens the db described by 'config' & auto-migrates the schema
func AutoMigrate(config shared.DatabaseConfig) error {
	err := openDB(config)
	if err != nil {
		return err
	}

	err = db.AutoMigrate(&Contact{}, &ContactMethod{})
	if err != nil {
		return errors.Wrap(err, "failed to migrate schema")
	}

	logg.Infof("Connected to %v database", config.Driver)
	return nil
}

// InitializeTestDb points the package at a fresh sqlite db in 'dbRootDir'
func InitializeTestDb(dbRootDir string) error {
	logg = logger.NewNopLogger()

	return AutoMigrate(shared.DatabaseConfig{
		Driver: shared.SQLITE_DRIVER,
		Sqlite: shared.SqliteConfig{PassPhrase: testPassPhrase, Dir: dbRootDir},
	})
}

// CloseDB closes the underlying connection pool, if one is open
func CloseDB() error {
	if db == nil {
		return nil
	}

	sqlDB, err := db.DB()
	if err != nil {
		return err
	}

	db = nil
	return sqlDB.Close()
}

// ---------------------------------------------------------------------------------//
// Helper functions
// --------------------------------------------------------------------------------//

func openDB(config shared.DatabaseConfig) error {
	dialector, err := dialectorFor(config)
	if err != nil {
		return err
	}

	// Release any previous pool before swapping the handle
	if err := CloseDB(); err != nil {
		logg.Warnf("failed to close previous database: %v", err)
	}

	db, err = gorm.Open(dialector, &gorm.Config{
		Logger: gormLogger.New(
			log.New(os.Stdout, "\r\n", log.LstdFlags),
			gormLogger.Config{
				LogLevel:                  gormLogLevel(config.LogLevel),
				IgnoreRecordNotFoundError: true,
				Colorful:                  false,
			},
		),
	})
	if err != nil {
		return fmt.Errorf("failed to connect database: %v", err)
	}

	return nil
}

func dialectorFor(config shared.DatabaseConfig) (gorm.Dialector, error) {
	switch config.Driver {
	case shared.SQLITE_DRIVER:
		dsn, err := sqliteDSN(config.Sqlite)
		if err != nil {
			return nil, fmt.Errorf("failed to set sqlite DSN: %v", err)
		}
		return sqliteEncrypt.Open(dsn), nil
	case shared.MYSQL_DRIVER:
		return mysql.Open(config.DSN), nil
	case shared.POSTGRES_DRIVER:
		return postgres.Open(config.DSN), nil
	}

	return nil, errors.Errorf("unsupported database driver %q", config.Driver)
}

func sqliteDSN(config shared.SqliteConfig) (string, error) {
	dbDir, err := DbDirectory(config.Dir)
	if err != nil {
		return "", err
	}

	dbName := fmt.Sprintf("file:%v", filepath.Join(dbDir, DB_NAME))

	return fmt.Sprintf(
		"%v?_pragma_key=%s&_pragma_cipher_page_size=4096&_journal_mode=WAL",
		dbName,
		config.PassPhrase,
	), nil
}

func DbDirectory(dbRootDir string) (string, error) {
	dbDir := filepath.Join(dbRootDir, "db")

	err := utils.CreateDirIfNotExist(dbDir)
	if err != nil {
		return "", err
	}

	return dbDir, nil
}

func gormLogLevel(level string) gormLogger.LogLevel {
	switch level {
	case "error":
		return gormLogger.Error
	case "warn":
		return gormLogger.Warn
	case "info":
		return gormLogger.Info
	}
	return gormLogger.Silent
}
