package cmd

import (
	"github.com/honorguild/honorbot/honorbot/logger"
	"github.com/spf13/cobra"
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Create the ledger tables and indexes if they do not exist",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		db, err := openDatabase(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer db.Close()

		if err = db.InitializeSchema(cmd.Context()); err != nil {
			return err
		}
		logger.LogSystem("Schema is up to date")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(schemaCmd)
}
