package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"github.com/vippsas/sqlintel"
)

const (
	prompt             = "sql> "
	continuationPrompt = " ..> "
)

var (
	replCmd = &cobra.Command{
		Use:   "repl <db>",
		Short: "Interactive SQL prompt with table and column completion",
		Long: `Runs statements against a database listed in sqlintel.yaml. Statements end with
';' and may span several lines; an empty statement exits. Press Tab to complete
table names, or column names after 'alias.' or 'table.'.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			completer, dbc, err := loadCompleter(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			var db sqlintel.DB
			if dbc != nil {
				defer dbc.Close()
				db = dbc
			}
			return runREPL(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), completer, db)
		},
	}
)

// readlineCompleter completes the word at the cursor. pending holds earlier
// lines of an unfinished statement, so aliases introduced there are known.
type readlineCompleter struct {
	completer *sqlintel.Completer
	pending   *strings.Builder
}

var _ readline.AutoCompleter = readlineCompleter{}

func (r readlineCompleter) Do(line []rune, pos int) ([][]rune, int) {
	text, offset := sqlintel.RuneCursor(line, pos)
	before := r.pending.String()
	candidates := r.completer.Complete(before+text, len(before)+offset, true)
	if len(candidates) == 0 {
		return nil, 0
	}

	// readline keeps what has been typed and appends the rest of the
	// candidate; follow the case of the typed part
	length := candidates[0].ReplaceLength
	partial := text[offset-length : offset]
	lower := partial != "" && partial == strings.ToLower(partial)

	result := make([][]rune, 0, len(candidates))
	for _, c := range candidates {
		suffix := c.Text[c.ReplaceLength:]
		if lower {
			suffix = strings.ToLower(suffix)
		}
		result = append(result, []rune(suffix))
	}
	return result, length
}

func runREPL(ctx context.Context, stdout, stderr io.Writer, completer *sqlintel.Completer, db sqlintel.DB) error {
	var statement strings.Builder

	historyFile := ""
	if home, err := os.UserHomeDir(); err == nil {
		historyFile = filepath.Join(home, ".sqlintel_history")
	}
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          prompt,
		HistoryFile:     historyFile,
		AutoComplete:    readlineCompleter{completer: completer, pending: &statement},
		InterruptPrompt: "^C",
		EOFPrompt:       ".quit",
		Stdout:          stdout,
		Stderr:          stderr,
	})
	if err != nil {
		return err
	}
	defer rl.Close()

	fmt.Fprintln(stdout, "Type .help for commands, .quit to exit")
	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			statement.Reset()
			rl.SetPrompt(prompt)
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if statement.Len() == 0 && strings.HasPrefix(line, ".") {
			if quit := dotCommand(stdout, stderr, completer, line); quit {
				return nil
			}
			continue
		}

		statement.WriteString(line)
		if !strings.HasSuffix(line, ";") {
			statement.WriteString("\n")
			rl.SetPrompt(continuationPrompt)
			continue
		}
		rl.SetPrompt(prompt)

		query := strings.TrimSpace(strings.TrimSuffix(statement.String(), ";"))
		statement.Reset()
		if query == "" {
			return nil
		}
		if db == nil {
			fmt.Fprintln(stderr, "Error: no database connection, completing from a snapshot file")
			continue
		}
		result, err := sqlintel.Run(ctx, db, query)
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			continue
		}
		renderResult(stdout, result)
	}
}

func dotCommand(stdout, stderr io.Writer, completer *sqlintel.Completer, line string) (quit bool) {
	parts := strings.Fields(line)
	switch strings.ToLower(parts[0]) {
	case ".quit", ".exit":
		return true
	case ".help":
		fmt.Fprint(stdout, `
Commands:
  .help           Show this help message
  .tables         List tables and synonyms known to the completer
  .quit / .exit   Exit

Statements end with ';'. An empty statement (';' alone) exits.
Tab completes table names, and column names after 'alias.' or 'table.'.

`)
	case ".tables":
		for _, name := range completer.Snapshot().SuggestTables("") {
			fmt.Fprintln(stdout, name)
		}
	default:
		fmt.Fprintf(stderr, "Unknown command: %s (type .help for commands)\n", parts[0])
	}
	return false
}

func renderResult(w io.Writer, result sqlintel.ResultSet) {
	if len(result.Columns) == 0 {
		fmt.Fprintln(w, "OK")
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	header := make(table.Row, len(result.Columns))
	for i, col := range result.Columns {
		header[i] = col
	}
	t.AppendHeader(header)
	for _, values := range result.Rows {
		row := make(table.Row, len(values))
		for i, v := range values {
			if v == nil {
				v = "NULL"
			}
			row[i] = v
		}
		t.AppendRow(row)
	}
	t.Render()
	fmt.Fprintf(w, "(%d rows)\n", len(result.Rows))
}

func init() {
	rootCmd.AddCommand(replCmd)
}
