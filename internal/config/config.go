// Package config loads git-branches settings from defaults, a TOML file, the
// environment and command line flags, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/spf13/viper"
)

const (
	appName   = "git-branches"
	envPrefix = "GIT_BRANCHES"
)

// Keys shared with flag bindings.
const (
	KeyRepo          = "repo"
	KeyGit           = "git"
	KeyBackend       = "backend"
	KeyFormat        = "format"
	KeyColor         = "color"
	KeyTheme         = "theme"
	KeyReverseOrder  = "reverse_order"
	KeyVerbose       = "verbose"
	KeyWatchDebounce = "watch.debounce"
)

type Config struct {
	Repo         string      `mapstructure:"repo"`
	Git          string      `mapstructure:"git"`
	Backend      string      `mapstructure:"backend"`
	Format       string      `mapstructure:"format"`
	Color        string      `mapstructure:"color"`
	Theme        string      `mapstructure:"theme"`
	ReverseOrder bool        `mapstructure:"reverse_order"`
	Verbose      bool        `mapstructure:"verbose"`
	Watch        WatchConfig `mapstructure:"watch"`
}

type WatchConfig struct {
	Debounce time.Duration `mapstructure:"debounce"`
}

// defaultReverseOrder is true where git for-each-ref is known to return the
// committerdate sort reversed.
var defaultReverseOrder = runtime.GOOS == "windows"

// New returns a viper instance with defaults and environment lookup set up.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault(KeyRepo, ".")
	v.SetDefault(KeyGit, "git")
	v.SetDefault(KeyBackend, "cli")
	v.SetDefault(KeyFormat, "table")
	v.SetDefault(KeyColor, "auto")
	v.SetDefault(KeyTheme, "auto")
	v.SetDefault(KeyReverseOrder, defaultReverseOrder)
	v.SetDefault(KeyVerbose, false)
	v.SetDefault(KeyWatchDebounce, 350*time.Millisecond)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	return v
}

// DefaultDir is $XDG_CONFIG_HOME/git-branches or its platform equivalent.
func DefaultDir() string {
	return filepath.Join(xdg.ConfigHome, appName)
}

// searchDirs lists the user config directory first, then the system ones from
// $XDG_CONFIG_DIRS.
func searchDirs() []string {
	// The environment may have changed since xdg read it at init.
	xdg.Reload()
	dirs := []string{DefaultDir()}
	for _, dir := range xdg.ConfigDirs {
		dirs = append(dirs, filepath.Join(dir, appName))
	}
	return dirs
}

// Load reads the config file and decodes everything into a Config. An explicit
// file must exist; the default one is optional.
func Load(v *viper.Viper, file string) (Config, error) {
	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("toml")
		for _, dir := range searchDirs() {
			v.AddConfigPath(dir)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}
