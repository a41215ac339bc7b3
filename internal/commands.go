package internal

import (
	"github.com/MrSnakeDoc/crate/internal/middleware"
	"github.com/spf13/cobra"
)

var defaultCommands = []middleware.CommandFactory{
	middleware.UseMiddlewareChain(middleware.LoadConfig)(NewServeCmd),
	middleware.UseMiddlewareChain(middleware.LoadConfig)(NewCatalogCmd),
	middleware.UseMiddlewareChain(middleware.LoadConfig)(NewPullCmd),
	middleware.UseMiddlewareChain(middleware.LoadConfig)(NewPushCmd),
	middleware.UseMiddlewareChain(middleware.LoadConfig)(NewInitCmd),
	NewVersionCmd,
}

func RegisterSubCommands(cmd *cobra.Command) {
	for _, factory := range defaultCommands {
		cmd.AddCommand(factory())
	}
}
