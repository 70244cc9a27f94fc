package config

import (
	"errors"
	"io/fs"
	"os"

	"github.com/BurntSushi/toml"

	"raccfmt/internal/diag"
)

const defaultHeader = "# raccfmt configuration\n# Every key is optional; missing keys fall back to the defaults below.\n\n"

// Load reads the TOML config at path. A missing file yields the defaults.
func Load(path string) (Config, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return Config{}, diag.NewConfig(diag.ConfigReadFailed, err, "failed to stat %s", path)
	}

	var raw map[string]any
	if _, err := toml.DecodeFile(path, &raw); err != nil {
		var parseErr toml.ParseError
		if errors.As(err, &parseErr) {
			return Config{}, withPath(diag.NewConfig(diag.ConfigInvalidTOML, err, "invalid TOML in config file"), path)
		}
		return Config{}, withPath(diag.NewConfig(diag.ConfigReadFailed, err, "failed to read config file"), path)
	}
	if raw == nil {
		raw = map[string]any{}
	}
	cfg, err := FromMap(raw)
	if err != nil {
		return Config{}, withPath(err, path)
	}
	return cfg, nil
}

// WriteDefault writes the default configuration to path and refuses to
// overwrite an existing file.
func WriteDefault(path string) error {
	data, err := Default().Encode()
	if err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return withPath(diag.NewConfig(diag.ConfigExists, err, "config file already exists"), path)
		}
		return err
	}
	if _, err := f.WriteString(defaultHeader); err != nil {
		_ = f.Close()
		return err
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func withPath(err error, path string) error {
	var de *diag.Error
	if errors.As(err, &de) {
		return de.WithPath(path)
	}
	return err
}
