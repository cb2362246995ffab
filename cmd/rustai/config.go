package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"rustai/internal/config"
)

var (
	configShowDiff  bool
	configInitForce bool
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage rustai configuration",
	Long:  "View and manage rustai configuration stored in .rustai/config.json",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	Long: `Display the configuration after defaults, the config file and RUSTAI_*
environment overrides are applied.

Examples:
  rustai config show                 # Every setting
  rustai config show --diff          # Only settings that differ from defaults
  rustai config show --format json   # Machine-readable output`,
	Args: cobra.NoArgs,
	RunE: runConfigShow,
}

var configEnvCmd = &cobra.Command{
	Use:   "env",
	Short: "List supported environment variables",
	Args:  cobra.NoArgs,
	RunE:  runConfigEnv,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default configuration to .rustai/config.json",
	Args:  cobra.NoArgs,
	RunE:  runConfigInit,
}

func init() {
	configShowCmd.Flags().BoolVar(&configShowDiff, "diff", false, "Only show non-default values")
	configInitCmd.Flags().BoolVar(&configInitForce, "force", false, "Overwrite an existing config file")

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configEnvCmd)
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}

// ConfigSetting is one flattened config key.
type ConfigSetting struct {
	Key     string      `json:"key" yaml:"key"`
	Value   interface{} `json:"value" yaml:"value"`
	Default interface{} `json:"default" yaml:"default"`
}

// ConfigShowResponse is the response format for config show
type ConfigShowResponse struct {
	ConfigPath   string               `json:"configPath,omitempty" yaml:"configPath,omitempty"`
	UsedDefaults bool                 `json:"usedDefaults" yaml:"usedDefaults"`
	EnvOverrides []config.EnvOverride `json:"envOverrides,omitempty" yaml:"envOverrides,omitempty"`
	Settings     []ConfigSetting      `json:"settings" yaml:"settings"`
}

// ConfigEnvResponse lists override variables.
type ConfigEnvResponse struct {
	Variables []string `json:"variables" yaml:"variables"`
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	current, err := flattenConfig(appLoad.Config)
	if err != nil {
		return err
	}
	defaults, err := flattenConfig(config.DefaultConfig())
	if err != nil {
		return err
	}

	settings := make([]ConfigSetting, 0, len(current))
	for _, key := range sortedMapKeys(current) {
		value, def := current[key], defaults[key]
		if configShowDiff && reflect.DeepEqual(value, def) {
			continue
		}
		settings = append(settings, ConfigSetting{Key: key, Value: value, Default: def})
	}

	return writeResponse(cmd.OutOrStdout(), &ConfigShowResponse{
		ConfigPath:   appLoad.ConfigPath,
		UsedDefaults: appLoad.UsedDefaults,
		EnvOverrides: appLoad.EnvOverrides,
		Settings:     settings,
	})
}

func runConfigEnv(cmd *cobra.Command, args []string) error {
	return writeResponse(cmd.OutOrStdout(), &ConfigEnvResponse{Variables: config.EnvVarNames()})
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := filepath.Join(projectRoot, config.Dir, config.FileName)
	if _, err := os.Stat(path); err == nil && !configInitForce {
		return fmt.Errorf("%s already exists; use --force to overwrite", path)
	}
	if err := config.DefaultConfig().Save(projectRoot); err != nil {
		return err
	}
	appLogger.Info("Wrote default configuration", "path", path)
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", displayPath(path))
	return nil
}

// flattenConfig turns the config's JSON form into dotted keys.
func flattenConfig(cfg *config.Config) (map[string]interface{}, error) {
	data, err := json.Marshal(cfg)
	if err != nil {
		return nil, err
	}
	var tree map[string]interface{}
	if err := json.Unmarshal(data, &tree); err != nil {
		return nil, err
	}
	flat := make(map[string]interface{})
	flatten("", tree, flat)
	return flat, nil
}

func flatten(prefix string, node map[string]interface{}, out map[string]interface{}) {
	for k, v := range node {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		if child, ok := v.(map[string]interface{}); ok {
			flatten(key, child, out)
			continue
		}
		out[key] = v
	}
}

func sortedMapKeys(m map[string]interface{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func formatConfigShowHuman(resp *ConfigShowResponse) (string, error) {
	var b strings.Builder
	b.WriteString("rustai Configuration\n")
	b.WriteString(strings.Repeat("─", 50) + "\n")

	if resp.UsedDefaults {
		b.WriteString("Source: defaults (no config file found)\n")
	} else if resp.ConfigPath != "" {
		b.WriteString(fmt.Sprintf("Source: %s\n", resp.ConfigPath))
	}
	if len(resp.EnvOverrides) > 0 {
		b.WriteString("\nEnvironment Overrides:\n")
		for _, ov := range resp.EnvOverrides {
			b.WriteString(fmt.Sprintf("  %s=%s → %s\n", ov.EnvVar, ov.Value, ov.Key))
		}
	}
	b.WriteString("\n")

	if len(resp.Settings) == 0 {
		b.WriteString("All settings use their defaults.\n")
	}
	for _, s := range resp.Settings {
		line := fmt.Sprintf("%s: %v", s.Key, s.Value)
		if !reflect.DeepEqual(s.Value, s.Default) {
			line += fmt.Sprintf(" (default: %v)", s.Default)
		}
		b.WriteString(line + "\n")
	}
	return b.String(), nil
}

func formatConfigEnvHuman(resp *ConfigEnvResponse) (string, error) {
	return "Supported environment variables:\n  " + strings.Join(resp.Variables, "\n  ") + "\n", nil
}
