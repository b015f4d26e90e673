package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/vippsas/sqlintel/server"
)

var (
	serveCmd = &cobra.Command{
		Use:   "serve <db>",
		Short: "Serves completion requests as msgpack over stdin/stdout",
		Long: `Reads msgpack completion requests from stdin and writes responses to stdout,
for use by editor plugins. See package server for the message format. Logs go
to stderr.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			completer, dbc, err := loadCompleter(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if dbc != nil {
				// metadata is loaded once, the connection is not needed while serving
				_ = dbc.Close()
			}
			logrus.SetOutput(os.Stderr)
			return server.NewServer(completer, os.Stdin, os.Stdout, logrus.StandardLogger()).Serve()
		},
	}
)

func init() {
	rootCmd.AddCommand(serveCmd)
}
