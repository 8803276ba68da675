package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Daskott/addressbook/colors"
	devConfig "github.com/Daskott/addressbook/dev/config"
	"github.com/Daskott/addressbook/server"
	"github.com/Daskott/addressbook/server/logger"
	"github.com/Daskott/addressbook/shared"
	"github.com/Daskott/addressbook/utils"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const ENV_PREFIX = "ADDRESSBOOK"

var (
	cfgFile  string
	isDevEnv bool

	warningLabel = colors.Yellow("Warning:")
)

// rootCmd represents the base command when called without any subcommands
var rootCmd *cobra.Command

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

func init() {
	rootCmd = createRootCmd()
}

func createRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use: "addressbook",
		Short: `addressbook is a small address book backend.

It stores contacts & the different ways to reach them, and moves them
in & out of spreadsheets.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "server config file")
	cmd.PersistentFlags().BoolVarP(&isDevEnv, "dev", "", false, "run in development mode")

	cmd.AddCommand(
		createServerCmd(),
		createExportCmd(),
		createImportCmd(),
		createRestoreCmd(),
	)

	return cmd
}

// loadServerConfig reads the server config from 'cfgFile' (or the dev config in dev mode),
// overriding keys with ADDRESSBOOK_* env vars, and validates it
func loadServerConfig() (*shared.ServerConfig, error) {
	// A missing .env is fine, it's only a convenience for local runs
	_ = godotenv.Load()

	config := viper.New()
	setConfigDefaults(config)

	configFile := cfgFile
	if isDevEnv && configFile == "" {
		var err error
		configFile, err = devConfigFilePath()
		if err != nil {
			return nil, err
		}
	}

	config.SetEnvPrefix(ENV_PREFIX)
	config.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	config.AutomaticEnv() // read in environment variables that match

	if configFile != "" {
		config.SetConfigFile(configFile)
		if err := config.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading server config file: %v", err)
		}
	} else {
		fmt.Fprintln(os.Stderr, warningLabel, "no config file provided, using defaults & environment")
	}

	serverConfig := shared.ServerConfig{}
	if err := config.Unmarshal(&serverConfig); err != nil {
		return nil, fmt.Errorf("error parsing server config: %v", err)
	}

	if errs := shared.ValidateConfig(&serverConfig); len(errs) > 0 {
		return nil, fmt.Errorf("invalid server config:\n%v", strings.Join(errs, "\n"))
	}

	if err := logger.SetLevel(serverConfig.AddressBook.LogLevel); err != nil {
		return nil, err
	}

	return &serverConfig, nil
}

func setConfigDefaults(config *viper.Viper) {
	config.SetDefault("addressbook.logLevel", "info")
	config.SetDefault("addressbook.listener.port", 3000)
	config.SetDefault("addressbook.listener.maxUploadMB", server.DEFAULT_MAX_UPLOAD_MB)
	config.SetDefault("database.driver", shared.SQLITE_DRIVER)
	config.SetDefault("database.dsn", "")
	config.SetDefault("database.logLevel", "silent")
	config.SetDefault("database.sqlite.passPhrase", "")
	config.SetDefault("database.sqlite.dir", ".")
	config.SetDefault("backup.enabled", false)
	config.SetDefault("backup.schedule", "0 3 * * *")
	config.SetDefault("backup.timeZone", "UTC")
	config.SetDefault("backup.bucket", "")
	config.SetDefault("backup.prefix", "")
	config.SetDefault("backup.applicationCredentials", "")
}

// devConfigFilePath returns dev/config/server.yml, creating it the first time
func devConfigFilePath() (string, error) {
	rootDir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	configDir := filepath.Join(rootDir, "dev", "config")
	if err := utils.CreateDirIfNotExist(configDir); err != nil {
		return "", err
	}

	configFilePath := filepath.Join(configDir, "server.yml")
	if !utils.FileExist(configFilePath) {
		err = os.WriteFile(configFilePath, []byte(devConfig.SERVER_YML), 0600)
		if err != nil {
			return "", err
		}
	}

	return configFilePath, nil
}

func formattedError(format string, a ...interface{}) error {
	return fmt.Errorf(colors.Red(format), a...)
}
