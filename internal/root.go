package internal

import (
	"os"
	"strings"

	"github.com/MrSnakeDoc/crate/internal/logger"
	"github.com/MrSnakeDoc/crate/internal/middleware"

	"github.com/spf13/cobra"
)

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "crate",
		Short: "Minimal artifact distribution store",
		Long: `Crate serves a directory of packaged artifacts over HTTP.
Clients list the catalog (name, sha256, version), download artifacts by name
and upload new ones. The same binary runs the store and talks to it.`,
		Example: `crate serve --data-dir ./data
crate push dist/BackupAgent_1.2.0.zip
crate pull BackupAgent_1.2.0.zip -o /opt/agents`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			logger.ConfigureLoggerFromFlags()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := cmd.PersistentFlags()
	pf.CountVarP(&logger.FlagVerboseCount, "verbose", "V", "Verbose output (repeat for more)")
	pf.BoolVarP(&logger.FlagQuiet, "quiet", "q", false, "Only print errors")
	pf.BoolVar(&logger.FlagJSON, "json-logs", false, "Emit logs as JSON")
	pf.String(middleware.ConfigFlag, "", "Config file (default ~/.config/crate/config.yml, or $CRATE_CONFIG)")

	RegisterSubCommands(cmd)

	return cmd
}

func Execute() error {
	root := NewRootCmd()

	if os.Getenv("COMP_LINE") != "" ||
		(len(os.Args) > 1 && strings.HasPrefix(os.Args[1], "__complete")) {
		return root.Execute()
	}

	if err := root.Execute(); err != nil {
		logger.Debug("Failed to execute root command: %v", err)
		return err
	}
	return nil
}
