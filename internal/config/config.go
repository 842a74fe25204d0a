package config

import "scorch/internal/policy"

type Config struct {
	Path     string       `yaml:"path"`
	Workers  int          `yaml:"workers"`
	MaxDepth int          `yaml:"maxDepth"`
	Theme    string       `yaml:"theme"`
	Protect  policy.Table `yaml:"protect"`
	Debug    bool         `yaml:"debug"`
}

func DefaultConfig() Config {
	return Config{
		Path:     ".",
		Workers:  0,
		MaxDepth: 5,
		Theme:    "ember",
		Protect:  policy.DefaultTable(),
	}
}
