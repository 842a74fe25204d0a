package config

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

const (
	configDirName  = "scorch"
	configFileName = "config.yaml"
)

type fileConfig struct {
	Path     *string          `yaml:"path"`
	Workers  *int             `yaml:"workers"`
	MaxDepth *int             `yaml:"maxDepth"`
	Theme    *string          `yaml:"theme"`
	Protect  *protectOverride `yaml:"protect"`
	Debug    *bool            `yaml:"debug"`
}

type protectOverride struct {
	Denied         []string `yaml:"denied"`
	DeniedSubtrees []string `yaml:"deniedSubtrees"`
}

func ConfigPath() string {
	return filepath.Join(xdg.ConfigHome, configDirName, configFileName)
}

func LoadConfig() (Config, error) {
	base := DefaultConfig()
	data, err := os.ReadFile(ConfigPath())
	if err != nil {
		if os.IsNotExist(err) {
			return base, nil
		}
		return base, err
	}
	var stored fileConfig
	if err := yaml.Unmarshal(data, &stored); err != nil {
		return base, err
	}
	return mergeConfig(base, stored), nil
}

func SaveConfig(cfg Config) error {
	path := ConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

func mergeConfig(base Config, stored fileConfig) Config {
	merged := base
	if stored.Path != nil {
		merged.Path = *stored.Path
	}
	if stored.Workers != nil {
		merged.Workers = *stored.Workers
	}
	if stored.MaxDepth != nil && *stored.MaxDepth > 0 {
		merged.MaxDepth = *stored.MaxDepth
	}
	if stored.Theme != nil {
		merged.Theme = *stored.Theme
	}
	if stored.Debug != nil {
		merged.Debug = *stored.Debug
	}
	if stored.Protect != nil {
		if stored.Protect.Denied != nil {
			merged.Protect.Denied = stored.Protect.Denied
		}
		if stored.Protect.DeniedSubtrees != nil {
			merged.Protect.DeniedSubtrees = stored.Protect.DeniedSubtrees
		}
	}
	return merged
}
