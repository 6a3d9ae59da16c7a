package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/calvinalkan/gh-board/internal/github"

	"github.com/tailscale/hujson"
)

// Config holds all configuration options.
type Config struct {
	// From config files (serialized)
	Owner   string     `json:"owner,omitempty"`
	Project ProjectRef `json:"project,omitempty"`
	GH      string     `json:"gh,omitempty"`

	// Resolved (computed, not serialized)
	EffectiveCwd string `json:"-"` // Absolute working directory (from -C flag or os.Getwd)

	// Sources tracks which config files were loaded (for diagnostics)
	Sources ConfigSources `json:"-"`
}

// ProjectRef is a project number. Config files may spell it as a JSON
// number or a string.
type ProjectRef string

// UnmarshalJSON accepts 3 and "3".
func (p *ProjectRef) UnmarshalJSON(data []byte) error {
	var num json.Number

	if err := json.Unmarshal(data, &num); err == nil {
		*p = ProjectRef(num.String())

		return nil
	}

	var str string

	if err := json.Unmarshal(data, &str); err != nil {
		return errors.New("project must be a number or string")
	}

	*p = ProjectRef(str)

	return nil
}

// ConfigSources tracks which config files were loaded.
type ConfigSources struct {
	Global  string // Path to global config if loaded, empty otherwise
	Project string // Path to project config if loaded, empty otherwise
}

// Error variables for configuration.
var (
	ErrConfigFileNotFound = errors.New("config file not found")
	ErrConfigFileRead     = errors.New("cannot read config file")
	ErrConfigInvalid      = errors.New("invalid config file")
	ErrGHEmpty            = errors.New("gh cannot be empty")
)

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		GH: github.DefaultBinary,
	}
}

// ConfigFileName is the default project config file name.
const ConfigFileName = ".gh-board.json"

// getGlobalConfigPath returns the path to the global config file.
// Uses $XDG_CONFIG_HOME/gh-board/config.json if set, otherwise
// ~/.config/gh-board/config.json. Empty if neither variable is set.
func getGlobalConfigPath(env map[string]string) string {
	if xdgConfig := env["XDG_CONFIG_HOME"]; xdgConfig != "" {
		return filepath.Join(xdgConfig, "gh-board", "config.json")
	}

	if home := env["HOME"]; home != "" {
		return filepath.Join(home, ".config", "gh-board", "config.json")
	}

	return ""
}

// LoadConfigInput holds the inputs for LoadConfig.
type LoadConfigInput struct {
	WorkDirOverride string            // -C/--cwd flag value; if empty, os.Getwd() is used
	ConfigPath      string            // -c/--config flag value
	Overrides       Config            // --owner, --project, --gh flag values; empty means no override
	GHOverridden    bool              // --gh was given, even if empty
	Env             map[string]string // environment variables
}

// LoadConfig loads configuration with the following precedence (highest wins):
// 1. Defaults
// 2. Global user config ($XDG_CONFIG_HOME/gh-board/config.json or ~/.config/gh-board/config.json)
// 3. Project config file at default location (.gh-board.json, if exists)
// 4. Explicit config file via ConfigPath (if non-empty), replacing 3
// 5. CLI overrides.
func LoadConfig(input LoadConfigInput) (Config, error) {
	workDir := input.WorkDirOverride
	if workDir == "" {
		var err error

		workDir, err = os.Getwd()
		if err != nil {
			return Config{}, fmt.Errorf("cannot get working directory: %w", err)
		}
	} else if !filepath.IsAbs(workDir) {
		abs, err := filepath.Abs(workDir)
		if err != nil {
			return Config{}, fmt.Errorf("cannot resolve working directory: %w", err)
		}

		workDir = abs
	}

	cfg := DefaultConfig()

	globalPath := getGlobalConfigPath(input.Env)
	if globalPath != "" {
		globalCfg, loaded, err := loadConfigFile(globalPath, false)
		if err != nil {
			return Config{}, err
		}

		if loaded {
			cfg.Sources.Global = globalPath
			cfg = mergeConfig(cfg, globalCfg)
		}
	}

	projectCfg, projectPath, err := loadProjectConfig(workDir, input.ConfigPath)
	if err != nil {
		return Config{}, err
	}

	cfg.Sources.Project = projectPath
	cfg = mergeConfig(cfg, projectCfg)

	cfg = mergeConfig(cfg, input.Overrides)
	if input.GHOverridden && input.Overrides.GH == "" {
		return Config{}, ErrGHEmpty
	}

	cfg.EffectiveCwd = workDir

	return cfg, nil
}

// loadProjectConfig loads the project config file (.gh-board.json) or an
// explicit config file. Returns the config, the path if loaded, and any error.
func loadProjectConfig(workDir, configPath string) (Config, string, error) {
	if configPath == "" {
		cfgFile := filepath.Join(workDir, ConfigFileName)

		cfg, loaded, err := loadConfigFile(cfgFile, false)
		if err != nil || !loaded {
			return Config{}, "", err
		}

		return cfg, cfgFile, nil
	}

	cfgFile := configPath
	if !filepath.IsAbs(cfgFile) {
		cfgFile = filepath.Join(workDir, cfgFile)
	}

	// Check existence first to provide a clear "not found" error
	if _, statErr := os.Stat(cfgFile); statErr != nil {
		return Config{}, "", fmt.Errorf("%w: %s", ErrConfigFileNotFound, configPath)
	}

	cfg, _, err := loadConfigFile(cfgFile, true)
	if err != nil {
		return Config{}, "", err
	}

	return cfg, cfgFile, nil
}

// loadConfigFile loads a config file. If mustExist is false, missing files
// return zero config. Returns the config, whether the file was loaded, and
// any error.
func loadConfigFile(path string, mustExist bool) (Config, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !mustExist {
			return Config{}, false, nil
		}

		return Config{}, false, fmt.Errorf("%w: %s", ErrConfigFileRead, path)
	}

	cfg, parseErr := parseConfig(data)
	if parseErr != nil {
		return Config{}, false, fmt.Errorf("%w %s: %w", ErrConfigInvalid, path, parseErr)
	}

	return cfg, true, nil
}

func parseConfig(data []byte) (Config, error) {
	// Standardize JSONC to JSON
	standardized, err := hujson.Standardize(data)
	if err != nil {
		return Config{}, fmt.Errorf("invalid JSONC: %w", err)
	}

	var cfg Config

	unmarshalErr := json.Unmarshal(standardized, &cfg)
	if unmarshalErr != nil {
		return Config{}, fmt.Errorf("invalid JSON: %w", unmarshalErr)
	}

	// An explicit "gh": "" would leave nothing to run.
	var raw map[string]any

	_ = json.Unmarshal(standardized, &raw)

	if val, exists := raw["gh"]; exists {
		if str, ok := val.(string); ok && str == "" {
			return Config{}, ErrGHEmpty
		}
	}

	return cfg, nil
}

func mergeConfig(base, overlay Config) Config {
	if overlay.Owner != "" {
		base.Owner = overlay.Owner
	}

	if overlay.Project != "" {
		base.Project = overlay.Project
	}

	if overlay.GH != "" {
		base.GH = overlay.GH
	}

	return base
}
