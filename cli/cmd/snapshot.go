package cmd

import (
	"github.com/spf13/cobra"
	"github.com/vippsas/sqlintel"
)

var (
	snapshotCmd = &cobra.Command{
		Use:   "snapshot <db>",
		Short: "Dumps the schema metadata of a database as yaml",
		Long: `Loads tables, columns and synonyms of a database and writes them as yaml to
stdout. The output can be passed instead of a database name to the other
commands to complete without a connection.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			completer, dbc, err := loadCompleter(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if dbc != nil {
				defer dbc.Close()
			}
			return sqlintel.WriteSnapshotYAML(cmd.OutOrStdout(), completer.Snapshot())
		},
	}
)

func init() {
	rootCmd.AddCommand(snapshotCmd)
}
