package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/samber/oops"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/agentx-labs/extreg/internal/branding"
	"github.com/agentx-labs/extreg/internal/userdata"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Setting keys.
const (
	KeyHost        = "host"
	KeyModulePaths = "module_paths"
	KeyLoaded      = "loaded"
	KeyLogFormat   = "log_format"
	KeyLogLevel    = "log_level"
)

// flagNames maps setting keys to the persistent CLI flags that override them.
var flagNames = map[string]string{
	KeyHost:        "host",
	KeyModulePaths: "module-path",
	KeyLogFormat:   "log-format",
	KeyLogLevel:    "log-level",
}

// settableKeys are the keys accepted by Set.
var settableKeys = []string{KeyHost, KeyModulePaths, KeyLogFormat, KeyLogLevel}

// LoadedModule describes a module already active in the host process.
type LoadedModule struct {
	Name    string `mapstructure:"name"`
	Version string `mapstructure:"version"`
	Path    string `mapstructure:"path"`
}

// Settings is the resolved configuration.
type Settings struct {
	Host        string         `mapstructure:"host"`
	ModulePaths []string       `mapstructure:"module_paths"`
	Loaded      []LoadedModule `mapstructure:"loaded"`
	LogFormat   string         `mapstructure:"log_format"`
	LogLevel    string         `mapstructure:"log_level"`
}

// Dir returns the path to the config directory (~/.extreg/).
func Dir() string {
	root, err := userdata.GetHomeRoot()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return root
}

// FilePath returns the full path to the default config file.
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// Config layers flags, environment and the config file over defaults.
type Config struct {
	v    *viper.Viper
	file string
}

// New creates a Config reading file, or FilePath() when file is empty.
func New(file string) *Config {
	if file == "" {
		file = FilePath()
	}

	v := viper.New()
	v.SetConfigFile(file)
	v.SetConfigType(fileType)
	v.SetEnvPrefix(branding.EnvPrefix())
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault(KeyHost, branding.HostModule())
	v.SetDefault(KeyLogFormat, "text")
	v.SetDefault(KeyLogLevel, "info")
	if modules, err := userdata.GetModulesRoot(); err == nil {
		v.SetDefault(KeyModulePaths, []string{modules})
	}

	return &Config{v: v, file: file}
}

// File returns the config file path.
func (c *Config) File() string {
	return c.file
}

// BindFlags binds the persistent CLI flags present in flags to their keys.
func (c *Config) BindFlags(flags *pflag.FlagSet) error {
	for key, name := range flagNames {
		f := flags.Lookup(name)
		if f == nil {
			continue
		}
		if err := c.v.BindPFlag(key, f); err != nil {
			return oops.In("config").With("flag", name).Wrapf(err, "bind flag")
		}
	}
	return nil
}

// Load reads the config file, if present, and returns the merged settings.
func (c *Config) Load() (*Settings, error) {
	if err := readIfExists(c.v); err != nil {
		return nil, err
	}

	var s Settings
	if err := c.v.Unmarshal(&s); err != nil {
		return nil, oops.In("config").With("file", c.file).Wrapf(err, "decode settings")
	}
	s.Host = strings.TrimSpace(s.Host)
	s.ModulePaths = splitPaths(s.ModulePaths)
	return &s, nil
}

// Get returns a config value by key, rendered as a string. Lists are joined
// with the OS path list separator.
func (c *Config) Get(key string) string {
	if key == KeyModulePaths {
		return strings.Join(splitPaths(c.v.GetStringSlice(key)), string(os.PathListSeparator))
	}
	return c.v.GetString(key)
}

// Set writes a key to the config file. Only values already in the file
// and the new key are persisted; flags and environment are not.
func (c *Config) Set(key, value string) error {
	if !slices.Contains(settableKeys, key) {
		return oops.In("config").
			With("key", key).
			Errorf("unknown config key %q (valid keys: %s)", key, strings.Join(settableKeys, ", "))
	}

	var val any = value
	if key == KeyModulePaths {
		val = splitPaths([]string{value})
	}

	file := viper.New()
	file.SetConfigFile(c.file)
	file.SetConfigType(fileType)
	if err := readIfExists(file); err != nil {
		return err
	}
	file.Set(key, val)

	if err := os.MkdirAll(filepath.Dir(c.file), userdata.DirPermNormal); err != nil {
		return oops.In("config").With("dir", filepath.Dir(c.file)).Wrapf(err, "create config directory")
	}
	if err := file.WriteConfigAs(c.file); err != nil {
		return oops.In("config").With("file", c.file).Wrapf(err, "write config file")
	}

	c.v.Set(key, val)
	return nil
}

// readIfExists reads v's config file. A missing file is not an error.
func readIfExists(v *viper.Viper) error {
	err := v.ReadInConfig()
	if err == nil {
		return nil
	}
	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return oops.In("config").With("file", v.ConfigFileUsed()).Wrapf(err, "read config file")
}

// splitPaths expands entries holding OS path lists and drops blanks.
func splitPaths(entries []string) []string {
	var out []string
	for _, entry := range entries {
		for _, p := range filepath.SplitList(entry) {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}
