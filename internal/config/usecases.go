package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/af-corp/model-catalog/internal/types"
)

// LoadUseCase reads one use case from a YAML or JSON file. Blank
// deployment and latency types default to "Any".
func LoadUseCase(path string) (*types.UseCase, error) {
	var uc types.UseCase
	if err := LoadFile(path, &uc); err != nil {
		return nil, err
	}
	if uc.Name == "" {
		uc.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	uc.Requirements = uc.Requirements.WithDefaults()
	return &uc, nil
}

// LoadUseCases reads every *.yaml, *.yml and *.json file in dir, sorted by
// file name. A missing directory yields no use cases.
func LoadUseCases(dir string) ([]types.UseCase, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read use case dir %s: %w", dir, err)
	}
	var names []string
	for _, e := range entries {
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".yaml", ".yml", ".json":
			if !e.IsDir() {
				names = append(names, e.Name())
			}
		}
	}
	sort.Strings(names)

	out := make([]types.UseCase, 0, len(names))
	for _, n := range names {
		uc, err := LoadUseCase(filepath.Join(dir, n))
		if err != nil {
			return nil, err
		}
		out = append(out, *uc)
	}
	return out, nil
}
