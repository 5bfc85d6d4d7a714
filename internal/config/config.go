package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config represents the complete prodpath configuration
type Config struct {
	Tree    TreeConfig    `mapstructure:"tree" yaml:"tree"`
	Words   WordsConfig   `mapstructure:"words" yaml:"words"`
	Output  OutputConfig  `mapstructure:"output" yaml:"output"`
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
}

// TreeConfig controls the max product search
type TreeConfig struct {
	// Arithmetic selects the number type products are computed in.
	// Options: "checked" (int64, fails on overflow), "big" (exact)
	Arithmetic string `mapstructure:"arithmetic" yaml:"arithmetic"`
	// ShowPath prints the nodes of the best path along with its product
	ShowPath bool `mapstructure:"show_path" yaml:"show_path"`
}

// WordsConfig controls the word frequency command
type WordsConfig struct {
	// Banned words are never reported. Matching is case-insensitive.
	Banned []string `mapstructure:"banned" yaml:"banned"`
	// Top is how many ranked words to print (0 prints only the winner)
	Top int `mapstructure:"top" yaml:"top"`
}

// OutputConfig controls how results are printed
type OutputConfig struct {
	// Format is one of "text", "json", "yaml"
	Format string `mapstructure:"format" yaml:"format"`
	// Color enables styled text output
	Color bool `mapstructure:"color" yaml:"color"`
}

// LoggingConfig controls debug logging
type LoggingConfig struct {
	// Enabled turns on the JSON debug log
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`
	// Level is the minimum log level: debug, info, warn, error
	Level string `mapstructure:"level" yaml:"level"`
	// Dir is where prodpath.log is written; empty means stderr
	Dir string `mapstructure:"dir" yaml:"dir"`
}

// Arithmetic modes
const (
	ArithmeticChecked = "checked"
	ArithmeticBig     = "big"
)

// Output formats
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Default returns a Config with sensible default values
func Default() *Config {
	return &Config{
		Tree: TreeConfig{
			Arithmetic: ArithmeticChecked,
			ShowPath:   false,
		},
		Words: WordsConfig{
			Banned: []string{},
			Top:    0,
		},
		Output: OutputConfig{
			Format: FormatText,
			Color:  true,
		},
		Logging: LoggingConfig{
			Enabled: false,
			Level:   "info",
			Dir:     "", // stderr
		},
	}
}

// SetDefaults registers default values with viper
func SetDefaults() {
	defaults := Default()

	viper.SetDefault("tree.arithmetic", defaults.Tree.Arithmetic)
	viper.SetDefault("tree.show_path", defaults.Tree.ShowPath)

	viper.SetDefault("words.banned", defaults.Words.Banned)
	viper.SetDefault("words.top", defaults.Words.Top)

	viper.SetDefault("output.format", defaults.Output.Format)
	viper.SetDefault("output.color", defaults.Output.Color)

	viper.SetDefault("logging.enabled", defaults.Logging.Enabled)
	viper.SetDefault("logging.level", defaults.Logging.Level)
	viper.SetDefault("logging.dir", defaults.Logging.Dir)
}

// Load reads the configuration from viper into a Config struct and validates it
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, errs
	}

	return &cfg, nil
}

// ConfigDir returns the path to the user's config directory
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "prodpath")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".prodpath"
	}
	return filepath.Join(home, ".config", "prodpath")
}

// ConfigFile returns the path to the config file
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}
