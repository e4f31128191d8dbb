package cli

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/SeonWoooPark/Mes-Base-sub002/pkg/bom"
	"github.com/SeonWoooPark/Mes-Base-sub002/pkg/errors"
)

// configFile is the optional TOML config carrying engine limits.
//
//	[limits]
//	max_depth = 100
//	max_nodes = 100000
//	critical_cost_threshold = "1000"
type configFile struct {
	Limits bom.Limits `toml:"limits"`
}

// configPath returns the explicit path when set, otherwise the first of
// ./bomctl.toml and ~/.config/bomctl/bomctl.toml that exists. Empty means
// no config.
func configPath(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if _, err := os.Stat("bomctl.toml"); err == nil {
		return "bomctl.toml"
	}
	if home, err := os.UserHomeDir(); err == nil {
		p := filepath.Join(home, ".config", appName, "bomctl.toml")
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// loadConfig reads engine limits from a TOML file. Unset fields fall back
// to the defaults.
func loadConfig(path string) (bom.Limits, error) {
	var cfg configFile
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return bom.Limits{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "config %s", path)
	}
	limits := cfg.Limits.WithDefaults()
	if limits.CriticalCostThreshold.IsNegative() {
		return bom.Limits{}, errors.New(errors.ErrCodeInvalidField,
			"config %s: critical_cost_threshold cannot be negative", path)
	}
	return limits, nil
}
