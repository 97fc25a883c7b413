package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileConfig is the on-disk YAML configuration shape for scanbit.
type FileConfig struct {
	Threads    *int    `yaml:"threads"`
	LogLevel   *string `yaml:"log_level"`
	LogFormat  *string `yaml:"log_format"`
	NoColor    *bool   `yaml:"no_color"`
	OutputPath *string `yaml:"output_path"`
	Scanner    *string `yaml:"scanner"`
	Seed       *int64  `yaml:"seed"`

	// Conversion limits
	MaxDepth *int `yaml:"max_depth"`
	MaxNodes *int `yaml:"max_nodes"`

	// Default objective when none is given on the command line
	Objective *ObjectiveConfig `yaml:"objective"`
}

// ObjectiveConfig names the scoring function used by scan commands.
type ObjectiveConfig struct {
	// Builtin is one of the built-in objectives, e.g. "gaussian".
	Builtin *string `yaml:"builtin"`

	// Command is an argv run once per point; it reads the parameters as a
	// JSON object on stdin and prints the log-likelihood.
	Command []string `yaml:"command"`

	// Reentrant lets concurrent workers call the objective in parallel.
	Reentrant *bool `yaml:"reentrant"`
}

// FileNames are the local config names in search order.
var FileNames = []string{".scanbit.yml", ".scanbit.yaml", "scanbit.yml", "scanbit.yaml"}

// LoadFile reads a YAML config file from the provided path.
func LoadFile(path string) (FileConfig, error) {
	var cfg FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// LoadLocal searches for a project-local config file in dir.
func LoadLocal(dir string) (FileConfig, error) {
	var cfg FileConfig
	for _, name := range FileNames {
		p := filepath.Join(dir, name)
		if _, err := os.Stat(p); err == nil {
			return LoadFile(p)
		}
	}
	return cfg, errors.New("no local config")
}

// GlobalPath is the global config location under the XDG base directory or
// ~/.config.
func GlobalPath() (string, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, _ := os.UserHomeDir()
		if home != "" {
			base = filepath.Join(home, ".config")
		}
	}
	if base == "" {
		return "", errors.New("no config dir")
	}
	return filepath.Join(base, "scanbit", "config.yml"), nil
}

// LoadGlobal loads the global config file.
func LoadGlobal() (FileConfig, error) {
	var cfg FileConfig
	p, err := GlobalPath()
	if err != nil {
		return cfg, err
	}
	if _, err := os.Stat(p); err == nil {
		return LoadFile(p)
	}
	return cfg, errors.New("no global config")
}

// GetObjective returns the objective section, empty when unset.
func (fc FileConfig) GetObjective() ObjectiveConfig {
	if fc.Objective == nil {
		return ObjectiveConfig{}
	}
	return *fc.Objective
}

// GetBuiltin returns the builtin objective name or empty string.
func (oc ObjectiveConfig) GetBuiltin() string {
	if oc.Builtin == nil {
		return ""
	}
	return *oc.Builtin
}

// IsReentrant returns true if concurrent objective calls are allowed (default: false).
func (oc ObjectiveConfig) IsReentrant() bool {
	if oc.Reentrant == nil {
		return false
	}
	return *oc.Reentrant
}

// Template is written by "scanbit config init".
const Template = `# scanbit configuration
# Command line flags override these values; this file overrides the global
# config at $XDG_CONFIG_HOME/scanbit/config.yml.

threads: 0          # 0 uses every CPU
log_level: info     # debug | info | warn | error
log_format: text    # text | json
no_color: false
# output_path: scanbit_run_data/my_run
# scanner: random
# seed: 1

max_depth: 64
max_nodes: 1000000

objective:
  builtin: gaussian
  # command: ["python3", "loglike.py"]
  # reentrant: false
`
