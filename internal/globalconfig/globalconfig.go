package globalconfig

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/MrSnakeDoc/crate/internal/config"
	"github.com/MrSnakeDoc/crate/internal/utils"
	"github.com/MrSnakeDoc/crate/internal/utils/pathutils"

	"gopkg.in/yaml.v3"
)

const (
	configDir  = ".config/crate"
	configFile = "config.yml"

	// EnvConfigPath overrides the default config location.
	EnvConfigPath = "CRATE_CONFIG"
)

func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, configDir), nil
}

// DefaultPath is ~/.config/crate/config.yml.
func DefaultPath() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFile), nil
}

// ResolvePath picks the config file: explicit path, then $CRATE_CONFIG, then
// ~/.config/crate/config.yml. explicit reports whether the caller asked for
// a specific file (which then must exist).
func ResolvePath(flagPath string) (path string, explicit bool, err error) {
	if p := strings.TrimSpace(flagPath); p != "" {
		return p, true, nil
	}
	if p := strings.TrimSpace(os.Getenv(EnvConfigPath)); p != "" {
		return p, true, nil
	}
	p, err := DefaultPath()
	return p, false, err
}

// Load reads the config file resolved from flagPath. A missing default file
// is not an error: defaults are returned instead.
func Load(flagPath string) (*config.Config, error) {
	path, explicit, err := ResolvePath(flagPath)
	if err != nil {
		return nil, err
	}
	absPath, err := pathutils.ToAbsolutePath(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve config path: %w", err)
	}

	cfg := config.Default()

	exists, err := utils.FileExists(absPath)
	if err != nil {
		return nil, err
	}
	if !exists {
		if explicit {
			return nil, fmt.Errorf("config file not found at %s", path)
		}
		return &cfg, nil
	}

	var fileCfg config.Config
	if err := utils.FileReader(absPath, utils.FileTypeYAML, &fileCfg); err != nil {
		return nil, err
	}
	fileCfg.ApplyDefaults()

	if fileCfg.DataDir, err = pathutils.ToAbsolutePath(fileCfg.DataDir); err != nil {
		return nil, fmt.Errorf("failed to resolve data_dir: %w", err)
	}
	return &fileCfg, nil
}

// Save writes cfg to the default config location.
func Save(cfg *config.Config) error {
	fullConfigDir, err := GetConfigDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(fullConfigDir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	out := *cfg
	if out.DataDir, err = pathutils.ToHomePathFormat(out.DataDir); err != nil {
		return fmt.Errorf("failed to convert to home path format: %w", err)
	}

	data, err := yaml.Marshal(&out)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(filepath.Join(fullConfigDir, configFile), data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
