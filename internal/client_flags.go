package internal

import (
	"os"
	"strings"

	"github.com/MrSnakeDoc/crate/internal/config"
	"github.com/MrSnakeDoc/crate/internal/core"
	"github.com/MrSnakeDoc/crate/internal/errs"
	"github.com/MrSnakeDoc/crate/internal/logger"
	"github.com/MrSnakeDoc/crate/internal/middleware"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func addStoreURLFlag(cmd *cobra.Command) {
	cmd.Flags().StringP("url", "u", "", "Store base URL (default from config, http://localhost:5001)")
}

// storeURLFrom returns --url when set, otherwise the configured store_url.
func storeURLFrom(cmd *cobra.Command, cfg *config.Config) (string, error) {
	u, err := cmd.Flags().GetString("url")
	if err != nil {
		return "", err
	}
	if u = strings.TrimSpace(u); u == "" {
		u = strings.TrimSpace(cfg.StoreURL)
	}
	if u == "" {
		return "", middleware.FlagComboError(errs.MissingStoreURL, cmd.Name())
	}
	return u, nil
}

func addTransferFlags(cmd *cobra.Command) {
	cmd.Flags().IntP("jobs", "j", 1, "Number of concurrent transfers")
}

// configureTransfers applies --jobs and attaches a progress bar when stderr
// is an interactive terminal.
func configureTransfers(cmd *cobra.Command, base *core.Base) error {
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return err
	}
	base.Jobs = jobs

	if !logger.FlagQuiet && !logger.FlagJSON && term.IsTerminal(int(os.Stderr.Fd())) {
		base.Progress = os.Stderr
	}
	return nil
}
