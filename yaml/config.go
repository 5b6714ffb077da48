// Package yaml reads and writes harvest.Config as YAML.
package yaml

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/fwojciec/harvest"
	"gopkg.in/yaml.v3"
)

// DefaultConfigPath returns the per-user config file location,
// $XDG_CONFIG_HOME/harvest/config.yaml.
func DefaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, "harvest", "config.yaml")
}

// LoadConfig overlays the settings in the file at path onto base. Keys
// absent from the file keep their base value. A missing file is not an
// error when optional is true.
func LoadConfig(path string, base harvest.Config, optional bool) (harvest.Config, error) {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) && optional {
		return base, nil
	}
	if err != nil {
		return base, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	cfg, err := DecodeConfig(f, base)
	if err != nil {
		return base, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// DecodeConfig overlays YAML settings read from r onto base. Unknown keys
// are rejected with EINVALID.
func DecodeConfig(r io.Reader, base harvest.Config) (harvest.Config, error) {
	cfg := base
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return base, nil
		}
		return base, harvest.Errorf(harvest.EINVALID, "invalid config: %v", err)
	}
	return cfg, nil
}

// EncodeConfig writes cfg as YAML. Durations are written in
// time.Duration notation ("2s").
func EncodeConfig(w io.Writer, cfg harvest.Config) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return err
	}
	return enc.Close()
}
