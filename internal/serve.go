package internal

import (
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/MrSnakeDoc/crate/internal/config"
	"github.com/MrSnakeDoc/crate/internal/logger"
	"github.com/MrSnakeDoc/crate/internal/middleware"
	"github.com/MrSnakeDoc/crate/internal/server"
	"github.com/MrSnakeDoc/crate/internal/store"

	"github.com/spf13/cobra"
)

func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the artifact store",
		Long: `Serve the data directory over HTTP:
  GET  /catalog              list artifacts with sha256 and version
  GET  /packages/{filename}  download one artifact
  POST /upload               store an artifact (multipart "file" or raw application/zip + X-Filename)`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := middleware.Get[*config.Config](cmd, middleware.CtxKeyConfig)
			if err != nil {
				return err
			}
			if err := applyServeFlags(cmd, cfg); err != nil {
				return err
			}

			repo, err := store.NewFS(cfg.DataDir)
			if err != nil {
				return err
			}
			logger.Info("Serving artifacts from %s", repo.Dir())

			handler := server.NewHandler(repo, server.Options{
				Extension:      cfg.Extension,
				MaxUploadBytes: cfg.MaxUploadBytes,
			})

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return server.New(cfg.Addr, handler, cfg.ShutdownTimeout).Serve(ctx)
		},
	}

	cmd.Flags().String("addr", "", "Listen address (default from config, localhost:5001)")
	cmd.Flags().String("data-dir", "", "Artifact directory (default from config, ./data)")
	cmd.Flags().String("ext", "", "Extension listed in the catalog (default .zip)")
	cmd.Flags().Int64("max-upload", 0, "Reject uploads larger than this many bytes (0 = unlimited)")
	return cmd
}

// applyServeFlags lets explicitly set flags win over the config file.
func applyServeFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	if flags.Changed("addr") {
		v, err := flags.GetString("addr")
		if err != nil {
			return err
		}
		cfg.Addr = v
	}
	if flags.Changed("data-dir") {
		v, err := flags.GetString("data-dir")
		if err != nil {
			return err
		}
		cfg.DataDir = v
	}
	if flags.Changed("ext") {
		v, err := flags.GetString("ext")
		if err != nil {
			return err
		}
		cfg.Extension = v
	}
	if flags.Changed("max-upload") {
		v, err := flags.GetInt64("max-upload")
		if err != nil {
			return err
		}
		cfg.MaxUploadBytes = v
	}

	if cfg.Extension != "" && !strings.HasPrefix(cfg.Extension, ".") {
		cfg.Extension = "." + cfg.Extension
	}
	return nil
}
