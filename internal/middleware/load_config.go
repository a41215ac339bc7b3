package middleware

import (
	"context"
	"fmt"

	"github.com/MrSnakeDoc/crate/internal/globalconfig"
	"github.com/MrSnakeDoc/crate/internal/logger"
	"github.com/spf13/cobra"
)

// ConfigFlag is the persistent root flag naming an explicit config file.
const ConfigFlag = "config"

// LoadConfig resolves the config file and stores the result under
// CtxKeyConfig for the command's RunE.
func LoadConfig(cmd *cobra.Command, args []string, next func(cmd *cobra.Command, args []string) error) error {
	var path string
	if f := cmd.Flags().Lookup(ConfigFlag); f != nil {
		path = f.Value.String()
	}

	cfg, err := globalconfig.Load(path)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	logger.Debug("config: data_dir=%s addr=%s store_url=%s", cfg.DataDir, cfg.Addr, cfg.StoreURL)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(context.WithValue(ctx, CtxKeyConfig, cfg))

	return next(cmd, args)
}
