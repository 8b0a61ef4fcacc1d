// Command linktracker runs the link tracker service and its maintenance tasks.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/atinyakov/go-link-tracker/internal/config"
)

var buildVersion string
var buildDate string
var buildCommit string

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "linktracker",
		Short: "Share links behind optional passwords and track who views them",
		Version: fmt.Sprintf("%s (built %s, commit %s)",
			orNA(buildVersion), orNA(buildDate), orNA(buildCommit)),
		SilenceUsage: true,
	}

	config.RegisterFlags(root.PersistentFlags())

	root.AddCommand(newServeCmd(), newMigrateCmd(), newStatsCmd())

	return root
}

func execute() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func main() {
	execute()
}
