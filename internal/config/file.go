package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dmitrijs2005/minifeed/internal/flagx"
)

// parseFile overlays values from the file named by -c or -config. Files with
// a .yaml or .yml extension are decoded as YAML, anything else as JSON. Keys
// missing from the file keep their current value.
//
// If the file cannot be read or decoded, parseFile panics.
func parseFile(config *Config) {
	path := flagx.ConfigFileFlag()
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	if err := decodeFile(path, data, config); err != nil {
		panic(err)
	}
}

func decodeFile(path string, data []byte, config *Config) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Unmarshal(data, config)
	default:
		return json.Unmarshal(data, config)
	}
}
