package cmd

import (
	"github.com/Daskott/addressbook/server"
	"github.com/spf13/cobra"
)

func createServerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "server",
		Short: "Start an address book server",
		Long:  `The address book server exposes contacts over http & handles spreadsheet import/export`,
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := loadServerConfig()
			if err != nil {
				return err
			}

			server.Start(config)
			return nil
		},
	}
}
