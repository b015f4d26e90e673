package cmd

import (
	"fmt"
	"unicode/utf8"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/vippsas/sqlintel"
)

var (
	cursor int

	completeCmd = &cobra.Command{
		Use:   "complete <db> <text>",
		Short: "Prints completion candidates for the cursor position in text",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			completer, dbc, err := loadCompleter(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if dbc != nil {
				defer dbc.Close()
			}

			buffer, offset, err := cursorOffset(args[1], cursor)
			if err != nil {
				return err
			}
			for _, c := range completer.Complete(buffer, offset, true) {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d\n", c.Text, c.ReplaceLength)
			}
			return nil
		},
	}
)

// cursorOffset converts a character position given on the command line into
// a byte offset in text. A negative position means the end of text.
func cursorOffset(text string, pos int) (string, int, error) {
	if pos < 0 {
		return text, len(text), nil
	}
	if pos > utf8.RuneCountInString(text) {
		return "", 0, errors.Errorf("cursor %d is past the end of the text", pos)
	}
	buffer, offset := sqlintel.RuneCursor([]rune(text), pos)
	return buffer, offset, nil
}

func init() {
	completeCmd.Flags().IntVarP(&cursor, "cursor", "c", -1, "cursor position in characters; defaults to the end of the text")
	rootCmd.AddCommand(completeCmd)
}
