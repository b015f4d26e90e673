package cmd

import (
	"fmt"

	"github.com/alecthomas/repr"
	"github.com/spf13/cobra"
	"github.com/vippsas/sqlintel/sqlparser"
)

var (
	contextCmd = &cobra.Command{
		Use:   "context <text>",
		Short: "Prints the completion context at the cursor and the alias pairs found in text",
		Long: `Prints what the completer sees at the cursor position: whether a bare identifier
or an alias/table qualified one is being typed, and every word pair that may
introduce an alias. Does not need a database.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, offset, err := cursorOffset(args[0], cursor)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, sqlparser.CursorContext(text, offset))
			repr.New(out).Println(sqlparser.FindAliasPairs(text))
			return nil
		},
	}
)

func init() {
	contextCmd.Flags().IntVarP(&cursor, "cursor", "c", -1, "cursor position in characters; defaults to the end of the text")
	rootCmd.AddCommand(contextCmd)
}
