// Package cliconfig loads the tunables for a obdd manager (the closed
// configuration set from spec §4.7) from a config file, environment
// variables, or flag defaults, grounded on the Load function in the
// junjiewwang-perf-analysis example's pkg/config/config.go.
package cliconfig

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config mirrors the configs struct in the obdd package (see config.go),
// exposed as a mapstructure-tagged value so viper can populate it from a
// YAML/JSON/TOML file or OBDD_-prefixed environment variables.
type Config struct {
	Nodesize        int     `mapstructure:"nodesize"`
	Cachesize       int     `mapstructure:"cachesize"`
	Cacheratio      int     `mapstructure:"cacheratio"`
	Maxnodesize     int     `mapstructure:"maxnodesize"`
	Maxnodeincrease int     `mapstructure:"maxnodeincrease"`
	Minfreenodes    int     `mapstructure:"minfreenodes"`
	Reordering      bool    `mapstructure:"reordering"`
	MaxGrowth       float64 `mapstructure:"max_growth"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("nodesize", 0)
	v.SetDefault("cachesize", 0)
	v.SetDefault("cacheratio", 0)
	v.SetDefault("maxnodesize", 0)
	v.SetDefault("maxnodeincrease", 0)
	v.SetDefault("minfreenodes", 20)
	v.SetDefault("reordering", false)
	v.SetDefault("max_growth", 2.0)
}

// Load reads configuration from configPath if non-empty, otherwise searches
// the standard locations, then lets OBDD_-prefixed environment variables
// override whatever the file set.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("obdd")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/obdd")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	v.SetEnvPrefix("obdd")
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}
