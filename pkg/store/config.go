package store

import (
	"os"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// Config resolves where the local data set lives and whether the operator
// requested the destructive remote reset.
type Config interface {
	BasePath() string
	ResetRemote() bool
}

// LoadConfig reads the optional .mise config file and the MISE_* environment.
// Recognized keys: path (base directory for the record store, default
// ~/.mise.db) and reset (triggers the destructive remote reseed, see the
// sync package).
func LoadConfig() (Config, error) {
	viper.SetDefault("path", "~/.mise.db")
	viper.SetDefault("reset", false)
	viper.SetConfigName(".mise") // .yaml is implicit
	viper.SetEnvPrefix("MISE")
	viper.AutomaticEnv()

	if override := os.Getenv("MISE_CONFIG_PATH"); override != "" {
		viper.AddConfigPath(override)
	}
	viper.AddConfigPath("./")
	viper.AddConfigPath("$HOME")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	path := viper.GetString("path")
	if expanded, err := homedir.Expand(path); err == nil {
		path = expanded
	}

	return &fileConfig{Path: path, Reset: viper.GetBool("reset")}, nil
}

type fileConfig struct {
	Path  string `json:"path"`
	Reset bool   `json:"reset"`
}

func (f *fileConfig) BasePath() string {
	return f.Path
}

func (f *fileConfig) ResetRemote() bool {
	return f.Reset
}
