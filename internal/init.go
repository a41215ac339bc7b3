package internal

import (
	"github.com/MrSnakeDoc/crate/internal/config"
	"github.com/MrSnakeDoc/crate/internal/initiator"
	"github.com/MrSnakeDoc/crate/internal/logger"
	"github.com/MrSnakeDoc/crate/internal/middleware"

	"github.com/spf13/cobra"
)

func NewInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a crate config file",
		Long: `Write the current settings (defaults, or the file given with --config)
to ~/.config/crate/config.yml.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := middleware.Get[*config.Config](cmd, middleware.CtxKeyConfig)
			if err != nil {
				return err
			}
			force, err := cmd.Flags().GetBool("force")
			if err != nil {
				return err
			}

			path, err := initiator.New(force).Execute(cfg)
			if err != nil {
				return err
			}

			logger.Success("Wrote %s", path)
			return nil
		},
	}

	cmd.Flags().BoolP("force", "f", false, "Overwrite an existing config file")
	return cmd
}
