package registry

import (
	"fmt"
	"os"
	"path/filepath"

	"channelhub/internal/common/fsutil"
	"channelhub/internal/config"
	"channelhub/pkg/types"
)

// LoadDir reads every *.yaml, *.yml, *.json and *.toml file in dir as one
// module definition, in filename order. Subdirectories and other files are
// skipped. The result is validated as a whole.
func LoadDir(dir string) ([]types.ModuleDefinition, error) {
	paths, err := fsutil.Files(dir, config.SupportedExtension)
	if err != nil {
		return nil, err
	}
	var defs []types.ModuleDefinition
	for _, p := range paths {
		b, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", filepath.Base(p), err)
		}
		var def types.ModuleDefinition
		if err := config.Unmarshal(filepath.Ext(p), b, &def); err != nil {
			return nil, fmt.Errorf("decode %s: %w", filepath.Base(p), err)
		}
		defs = append(defs, def)
	}
	if err := config.ValidateDefinitions(defs); err != nil {
		return nil, err
	}
	return defs, nil
}

// Resolve merges inline definitions with those found in dir (skipped when
// empty or missing) and validates the union.
func Resolve(inline []types.ModuleDefinition, dir string) ([]types.ModuleDefinition, error) {
	defs := append([]types.ModuleDefinition(nil), inline...)
	if dir != "" {
		p, err := fsutil.ExpandHome(dir)
		if err != nil {
			return nil, err
		}
		if fsutil.PathExists(p) {
			fromDir, err := LoadDir(p)
			if err != nil {
				return nil, err
			}
			defs = append(defs, fromDir...)
		}
	}
	if err := config.ValidateDefinitions(defs); err != nil {
		return nil, err
	}
	return defs, nil
}
