package shared

import (
	"strings"

	"github.com/go-playground/validator"
)

const (
	SQLITE_DRIVER   = "sqlite"
	MYSQL_DRIVER    = "mysql"
	POSTGRES_DRIVER = "postgres"
)

type ServerConfig struct {
	AddressBook AddressBookConfig `mapstructure:"addressbook" validate:"required"`
	Database    DatabaseConfig    `mapstructure:"database" validate:"required"`
	Backup      BackupConfig      `mapstructure:"backup"`
}

type AddressBookConfig struct {
	Listener ListenerConfig `mapstructure:"listener" validate:"required"`
	LogLevel string         `mapstructure:"logLevel" validate:"omitempty,oneof=debug info warn error"`
}

type ListenerConfig struct {
	Port        int   `mapstructure:"port" validate:"required,min=1,max=65535"`
	MaxUploadMB int64 `mapstructure:"maxUploadMB" validate:"omitempty,min=1"`
}

type DatabaseConfig struct {
	Driver   string       `mapstructure:"driver" validate:"required,oneof=sqlite mysql postgres"`
	DSN      string       `mapstructure:"dsn"`
	LogLevel string       `mapstructure:"logLevel" validate:"omitempty,oneof=silent error warn info"`
	Sqlite   SqliteConfig `mapstructure:"sqlite"`
}

type SqliteConfig struct {
	PassPhrase string `mapstructure:"passPhrase"`
	Dir        string `mapstructure:"dir"`
}

type BackupConfig struct {
	Enabled                bool   `mapstructure:"enabled"`
	Schedule               string `mapstructure:"schedule" validate:"required_with=Enabled"`
	TimeZone               string `mapstructure:"timeZone"`
	Bucket                 string `mapstructure:"bucket" validate:"required_with=Enabled"`
	Prefix                 string `mapstructure:"prefix"`
	ApplicationCredentials string `mapstructure:"applicationCredentials"`
}

// ValidateConfig checks 'config' against its validate tags & the rules
// which depend on the selected database driver.
func ValidateConfig(config *ServerConfig) []string {
	errs := []string{}

	if err := validator.New().Struct(config); err != nil {
		errs = append(errs, strings.Split(err.Error(), "\n")...)
	}

	switch config.Database.Driver {
	case SQLITE_DRIVER:
		if strings.TrimSpace(config.Database.Sqlite.PassPhrase) == "" {
			errs = append(errs, "database.sqlite.passPhrase is required for the sqlite driver")
		}
	case MYSQL_DRIVER, POSTGRES_DRIVER:
		if strings.TrimSpace(config.Database.DSN) == "" {
			errs = append(errs, "database.dsn is required for the "+config.Database.Driver+" driver")
		}
	}

	return errs
}
