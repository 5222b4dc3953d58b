package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// projectManifest is a loaded clinker.toml:
//
//	[package]
//	name = "mykernels"
//
//	[check]
//	fixtures = "tests/sig"   # optional, default "testdata"
//
//	[output]
//	color = "off"            # optional, default of the --color flag
type projectManifest struct {
	Path   string
	Root   string
	Config projectConfig
}

type projectConfig struct {
	Package packageConfig `toml:"package"`
	Check   checkConfig   `toml:"check"`
	Output  outputConfig  `toml:"output"`
}

type packageConfig struct {
	Name string `toml:"name"`
}

type checkConfig struct {
	Fixtures string `toml:"fixtures"`
}

type outputConfig struct {
	Color string `toml:"color"`
}

// findClinkerToml walks up from startDir looking for clinker.toml.
func findClinkerToml(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, "clinker.toml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

func loadProjectManifest(startDir string) (*projectManifest, bool, error) {
	path, ok, err := findClinkerToml(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	var cfg projectConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, true, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("package") {
		return nil, true, fmt.Errorf("%s: missing [package]", path)
	}
	if !meta.IsDefined("package", "name") || strings.TrimSpace(cfg.Package.Name) == "" {
		return nil, true, fmt.Errorf("%s: missing [package].name", path)
	}
	return &projectManifest{
		Path:   path,
		Root:   filepath.Dir(path),
		Config: cfg,
	}, true, nil
}

// manifestColorMode returns the manifest's [output].color entry, or "" when
// there is no manifest or it does not set one. A broken manifest is treated
// as absent here; the commands that require one report it themselves.
func manifestColorMode() string {
	m, ok, err := loadProjectManifest(".")
	if err != nil || !ok {
		return ""
	}
	return strings.TrimSpace(m.Config.Output.Color)
}

// defaultFixtureDir resolves where `check` looks when no directory argument
// is given: the manifest's [check].fixtures relative to the manifest root,
// falling back to "testdata".
func defaultFixtureDir() (string, error) {
	m, ok, err := loadProjectManifest(".")
	if err != nil {
		return "", err
	}
	if !ok {
		return "testdata", nil
	}
	fixtures := strings.TrimSpace(m.Config.Check.Fixtures)
	if fixtures == "" {
		fixtures = "testdata"
	}
	return filepath.Join(m.Root, filepath.FromSlash(fixtures)), nil
}
