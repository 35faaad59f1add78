package store

import (
	"errors"
	"fmt"
	"os"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// Config carries the settings the planner reads from .planner.yaml and the
// PLANNER_* environment.
type Config interface {
	BasePath() string
	Backend() string
	LogLevel() string
	PreviousColor() string
	Addr() string
}

// LoadConfig reads configuration with viper. A missing config file is not an
// error.
func LoadConfig() (Config, error) {
	v := viper.New()
	v.SetDefault("path", "~/.planner")
	v.SetDefault("backend", BackendDiskv)
	v.SetDefault("log_level", "info")
	v.SetDefault("previous_color", "keep")
	v.SetDefault("addr", "127.0.0.1:8080")
	v.SetConfigName(".planner") // .yaml is implicit
	v.SetEnvPrefix("PLANNER")
	v.AutomaticEnv()

	if override := os.Getenv("PLANNER_CONFIG_PATH"); override != "" {
		v.AddConfigPath(override)
	}
	v.AddConfigPath("./")
	if home, err := homedir.Dir(); err == nil {
		v.AddConfigPath(home)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("store: read config file: %w", err)
		}
	}

	path, err := homedir.Expand(v.GetString("path"))
	if err != nil {
		return nil, fmt.Errorf("store: expand path: %w", err)
	}

	return FileConfig{
		Path:    path,
		Store:   v.GetString("backend"),
		Level:   v.GetString("log_level"),
		Markers: v.GetString("previous_color"),
		Listen:  v.GetString("addr"),
	}, nil
}

// FileConfig is the resolved configuration. Tests build it directly.
type FileConfig struct {
	Path    string `json:"path"`
	Store   string `json:"backend"`
	Level   string `json:"log_level"`
	Markers string `json:"previous_color"`
	Listen  string `json:"addr"`
}

func (f FileConfig) BasePath() string      { return f.Path }
func (f FileConfig) Backend() string       { return f.Store }
func (f FileConfig) LogLevel() string      { return f.Level }
func (f FileConfig) PreviousColor() string { return f.Markers }
func (f FileConfig) Addr() string          { return f.Listen }
