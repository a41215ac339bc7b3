package initiator

import (
	"fmt"
	"path/filepath"

	"github.com/MrSnakeDoc/crate/internal/config"
	"github.com/MrSnakeDoc/crate/internal/globalconfig"
	"github.com/MrSnakeDoc/crate/internal/logger"
	"github.com/MrSnakeDoc/crate/internal/utils"
)

type Initiator struct {
	Force bool
}

func New(force bool) *Initiator {
	return &Initiator{Force: force}
}

// Execute writes cfg to the default config location and returns its path.
// A relative data_dir is made absolute against the working directory so the
// file keeps pointing at the same store from anywhere.
func (i *Initiator) Execute(cfg *config.Config) (string, error) {
	path, err := globalconfig.DefaultPath()
	if err != nil {
		return "", err
	}

	exists, err := utils.FileExists(path)
	if err != nil {
		return "", err
	}
	if exists && !i.Force {
		return "", fmt.Errorf("config already exists at %s (use --force to overwrite)", path)
	}

	out := *cfg
	if out.DataDir, err = filepath.Abs(out.DataDir); err != nil {
		return "", fmt.Errorf("failed to resolve data_dir: %w", err)
	}

	if err := globalconfig.Save(&out); err != nil {
		return "", err
	}
	logger.Debug("init: wrote %s (data_dir=%s)", path, out.DataDir)
	return path, nil
}
