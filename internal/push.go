package internal

import (
	"github.com/MrSnakeDoc/crate/internal/config"
	"github.com/MrSnakeDoc/crate/internal/errs"
	"github.com/MrSnakeDoc/crate/internal/middleware"
	"github.com/MrSnakeDoc/crate/internal/push"

	"github.com/spf13/cobra"
)

func NewPushCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "push FILE...",
		Short: "Upload artifacts to a store",
		Long: `Upload local files under their base name. The default is a raw
application/zip body with an X-Filename header; --multipart sends a form
upload instead. An existing artifact with the same name is replaced.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return middleware.FlagComboError(errs.MissingTargets, "push")
			}

			cfg, err := middleware.Get[*config.Config](cmd, middleware.CtxKeyConfig)
			if err != nil {
				return err
			}
			storeURL, err := storeURLFrom(cmd, cfg)
			if err != nil {
				return err
			}

			multipart, err := cmd.Flags().GetBool("multipart")
			if err != nil {
				return err
			}

			p, err := push.New(cfg, storeURL, nil)
			if err != nil {
				return err
			}
			if err := configureTransfers(cmd, p.Base); err != nil {
				return err
			}
			return p.Execute(cmd.Context(), args, multipart)
		},
	}

	addStoreURLFlag(cmd)
	addTransferFlags(cmd)
	cmd.Flags().BoolP("multipart", "m", false, "Send as multipart/form-data instead of a raw body")
	return cmd
}
