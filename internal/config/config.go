// Package config loads and persists vcf-validator settings with viper:
// CLI flags override the config file, which overrides built-in defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// FileName is the config file viper reads/writes, resolved under the user's
// home directory.
const FileName = ".vcf-validator.yaml"

// Defaults are the built-in settings used when neither the config file nor
// a CLI flag overrides them.
var Defaults = map[string]any{
	"version":           "VCFv4.3",
	"ploidy.default":    2,
	"report.sink":       "stdout",
	"ploidy-mismatch":   "warning",
	"dedupe-undefined":  true,
}

// Load initializes viper with Defaults and merges in FileName if present.
func Load() error {
	for k, v := range Defaults {
		viper.SetDefault(k, v)
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("determine home directory: %w", err)
	}

	viper.SetConfigFile(filepath.Join(home, FileName))
	viper.SetConfigType("yaml")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil
		}
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	return nil
}

// Show marshals every currently-resolved setting as YAML.
func Show() (string, error) {
	settings := viper.AllSettings()
	if len(settings) == 0 {
		return "# No configuration set. Config file: ~/" + FileName + "\n", nil
	}
	out, err := yaml.Marshal(settings)
	if err != nil {
		return "", fmt.Errorf("marshaling config: %w", err)
	}
	return string(out), nil
}

// Set stores key=value in viper and persists it to the config file,
// parsing boolean-like strings ("true"/"yes"/"on" and their negations).
func Set(key, value string) (string, error) {
	switch value {
	case "true", "yes", "on":
		viper.Set(key, true)
	case "false", "no", "off":
		viper.Set(key, false)
	default:
		viper.Set(key, value)
	}

	cfgFile := viper.ConfigFileUsed()
	if cfgFile == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("determine home directory: %w", err)
		}
		cfgFile = filepath.Join(home, FileName)
	}

	if err := viper.WriteConfigAs(cfgFile); err != nil {
		return "", fmt.Errorf("writing config: %w", err)
	}
	return cfgFile, nil
}

// Get returns the resolved value for key, or an error if it was never set.
func Get(key string) (any, error) {
	val := viper.Get(key)
	if val == nil {
		return nil, fmt.Errorf("key %q is not set", key)
	}
	return val, nil
}
