package cmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/Daskott/addressbook/server/gstorage"
	"github.com/Daskott/addressbook/server/models"
	"github.com/Daskott/addressbook/server/spreadsheet"
	"github.com/Daskott/addressbook/shared"
	"github.com/spf13/cobra"
)

const DOWNLOAD_TIMEOUT = 50 * time.Second

func createExportCmd() *cobra.Command {
	var outFile string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export every contact to an xlsx spreadsheet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := loadServerConfig()
			if err != nil {
				return err
			}

			if err := models.AutoMigrate(config.Database); err != nil {
				return err
			}
			defer models.CloseDB()

			contacts, err := models.FetchContacts(false)
			if err != nil {
				return err
			}

			f, err := os.Create(outFile)
			if err != nil {
				return err
			}
			defer f.Close()

			if err := spreadsheet.Export(contacts, f); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "exported %v contacts to %v\n", len(contacts), outFile)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outFile, "out", "o", spreadsheet.FILE_NAME, "file to write the spreadsheet to")

	return cmd
}

func createImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Import contacts from an xlsx spreadsheet",
		Long: `Import contacts from an xlsx spreadsheet with the columns
"Name", "Is Favorite" & "Contact Methods" (type:value; type:value).
Nothing is imported if any row fails.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := loadServerConfig()
			if err != nil {
				return err
			}

			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			contacts, err := spreadsheet.Import(f)
			if err != nil {
				return err
			}

			return storeImportedContacts(cmd, config, contacts)
		},
	}
}

func createRestoreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "restore OBJECT",
		Short: "Import contacts from a backup in the configured storage bucket",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := loadServerConfig()
			if err != nil {
				return err
			}

			if config.Backup.Bucket == "" {
				return formattedError("must set 'backup.bucket' to restore a backup")
			}

			storage, err := gstorage.NewGStorage(config.Backup.ApplicationCredentials)
			if err != nil {
				return err
			}
			defer storage.Close()

			ctx, cancel := context.WithTimeout(context.Background(), DOWNLOAD_TIMEOUT)
			defer cancel()

			buff := new(bytes.Buffer)
			err = storage.Download(ctx, config.Backup.Bucket, args[0], buff)
			if errors.Is(err, gstorage.ErrObjectNotExist) {
				return formattedError("no backup named %q in bucket %q", args[0], config.Backup.Bucket)
			}
			if err != nil {
				return err
			}

			contacts, err := spreadsheet.Import(buff)
			if err != nil {
				return err
			}

			return storeImportedContacts(cmd, config, contacts)
		},
	}
}

func storeImportedContacts(cmd *cobra.Command, config *shared.ServerConfig, contacts []models.Contact) error {
	if err := models.AutoMigrate(config.Database); err != nil {
		return err
	}
	defer models.CloseDB()

	if err := models.ImportContacts(contacts); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "imported %v contacts\n", len(contacts))
	return nil
}
