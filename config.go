package telegen

import (
	"github.com/BurntSushi/toml"
	"github.com/cockroachdb/errors"
)

// Config holds generation settings.
type Config struct {
	// PackageName is the Python package the generated client imports the
	// model module from. Default "api_types".
	PackageName string

	// ModelModule is the module name of the generated models file,
	// without extension. Default "objects".
	ModelModule string

	// BaseURL is the API base address baked into the generated client.
	// Default "https://api.telegram.org/".
	BaseURL string

	// ReservedWords maps wire names to safe Python identifiers. Nil
	// selects the built-in table (from, format, type). The table is
	// pluggable so the engine can target reserved-word sets of other
	// Python dialects or linting regimes.
	ReservedWords map[string]string
}

// applyConfigDefaults fills in default values, returning a copy.
func applyConfigDefaults(cfg *Config) *Config {
	result := Config{}
	if cfg != nil {
		result = *cfg
	}
	if result.PackageName == "" {
		result.PackageName = "api_types"
	}
	if result.ModelModule == "" {
		result.ModelModule = "objects"
	}
	if result.BaseURL == "" {
		result.BaseURL = "https://api.telegram.org/"
	}
	return &result
}

// LoadReservedWords reads a reserved-word table from a TOML file of
// wire-name = "safe_identifier" pairs.
func LoadReservedWords(path string) (map[string]string, error) {
	table := make(map[string]string)
	if _, err := toml.DecodeFile(path, &table); err != nil {
		return nil, errors.Wrapf(err, "loading reserved-word table %s", path)
	}
	if len(table) == 0 {
		return nil, errors.Newf("reserved-word table %s is empty", path)
	}
	return table, nil
}
