package internal

import (
	"github.com/MrSnakeDoc/crate/internal/config"
	"github.com/MrSnakeDoc/crate/internal/list"
	"github.com/MrSnakeDoc/crate/internal/middleware"

	"github.com/spf13/cobra"
)

func NewCatalogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "catalog",
		Aliases: []string{"ls"},
		Short:   "List the artifacts offered by a store",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := middleware.Get[*config.Config](cmd, middleware.CtxKeyConfig)
			if err != nil {
				return err
			}
			storeURL, err := storeURLFrom(cmd, cfg)
			if err != nil {
				return err
			}

			asJSON, err := cmd.Flags().GetBool("json")
			if err != nil {
				return err
			}
			latest, err := cmd.Flags().GetBool("latest")
			if err != nil {
				return err
			}

			l, err := list.New(cfg, storeURL, nil)
			if err != nil {
				return err
			}
			l.Out = cmd.OutOrStdout()
			return l.Execute(cmd.Context(), asJSON, latest)
		},
	}

	addStoreURLFlag(cmd)
	cmd.Flags().Bool("json", false, "Print the catalog as JSON")
	cmd.Flags().BoolP("latest", "l", false, "Show only the highest version of each package")
	return cmd
}
