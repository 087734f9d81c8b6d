package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage the database schema",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply pending migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		// Opening the store applies pending migrations.
		st, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer st.Close()

		v, err := st.SchemaVersion(cmd.Context())
		if err != nil {
			return err
		}
		log.Info("schema up to date", "version", v)
		return nil
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back the most recent migration",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer st.Close()

		if err := st.MigrateDown(cmd.Context()); err != nil {
			return err
		}
		v, err := st.SchemaVersion(cmd.Context())
		if err != nil {
			return err
		}
		log.Info("rolled back one migration", "version", v)
		return nil
	},
}

var migrateStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Print the schema version",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer st.Close()

		v, err := st.SchemaVersion(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Printf("driver:  %s\nversion: %d\n", cfg.Database.Driver, v)
		return nil
	},
}

func init() {
	migrateCmd.AddCommand(migrateUpCmd)
	migrateCmd.AddCommand(migrateDownCmd)
	migrateCmd.AddCommand(migrateStatusCmd)
}
