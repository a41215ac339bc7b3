package internal

import (
	"github.com/MrSnakeDoc/crate/internal/config"
	"github.com/MrSnakeDoc/crate/internal/errs"
	"github.com/MrSnakeDoc/crate/internal/middleware"
	"github.com/MrSnakeDoc/crate/internal/pull"

	"github.com/spf13/cobra"
)

func NewPullCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pull NAME...",
		Short: "Download artifacts from a store",
		Long: `Download artifacts by file name. Each download is checked against the
sha256 published in the store catalog unless --no-verify is given.`,
		Example: `crate pull BackupAgent_1.2.0.zip -o /opt/agents`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return middleware.FlagComboError(errs.MissingTargets, "pull")
			}

			cfg, err := middleware.Get[*config.Config](cmd, middleware.CtxKeyConfig)
			if err != nil {
				return err
			}
			storeURL, err := storeURLFrom(cmd, cfg)
			if err != nil {
				return err
			}

			outDir, err := cmd.Flags().GetString("output")
			if err != nil {
				return err
			}
			noVerify, err := cmd.Flags().GetBool("no-verify")
			if err != nil {
				return err
			}

			p, err := pull.New(cfg, storeURL, nil)
			if err != nil {
				return err
			}
			if err := configureTransfers(cmd, p.Base); err != nil {
				return err
			}
			return p.Execute(cmd.Context(), args, outDir, !noVerify)
		},
	}

	addStoreURLFlag(cmd)
	addTransferFlags(cmd)
	cmd.Flags().StringP("output", "o", ".", "Directory to save artifacts into")
	cmd.Flags().Bool("no-verify", false, "Skip checksum verification against the catalog")
	return cmd
}
