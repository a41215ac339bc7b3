package config

import "time"

// Config is the operator-facing configuration for both the server and the
// client commands. Zero values are filled from Default by ApplyDefaults.
type Config struct {
	DataDir         string        `yaml:"data_dir"`
	Addr            string        `yaml:"addr"`
	Extension       string        `yaml:"extension"`
	StoreURL        string        `yaml:"store_url"`
	MaxUploadBytes  int64         `yaml:"max_upload_bytes,omitempty"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout,omitempty"`
	ClientTimeout   time.Duration `yaml:"client_timeout,omitempty"`
}

func Default() Config {
	return Config{
		DataDir:         "data",
		Addr:            "localhost:5001",
		Extension:       ".zip",
		StoreURL:        "http://localhost:5001",
		MaxUploadBytes:  0,
		ShutdownTimeout: 10 * time.Second,
		ClientTimeout:   time.Minute,
	}
}

// ApplyDefaults fills every unset field from Default.
func (c *Config) ApplyDefaults() {
	d := Default()
	if c.DataDir == "" {
		c.DataDir = d.DataDir
	}
	if c.Addr == "" {
		c.Addr = d.Addr
	}
	if c.Extension == "" {
		c.Extension = d.Extension
	}
	if c.StoreURL == "" {
		c.StoreURL = d.StoreURL
	}
	if c.ShutdownTimeout <= 0 {
		c.ShutdownTimeout = d.ShutdownTimeout
	}
	if c.ClientTimeout <= 0 {
		c.ClientTimeout = d.ClientTimeout
	}
}
