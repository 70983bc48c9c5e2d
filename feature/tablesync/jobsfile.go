package tablesync

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/goccy/go-yaml"

	"table-sync/core/reconcile"
)

// JobsFile is the on-disk layout of a jobs file.
type JobsFile struct {
	Families []Family `yaml:"families"`
}

// ParseFamilies decodes families from YAML and validates them against registry.
func ParseFamilies(data []byte, registry *reconcile.Registry) ([]Family, error) {
	var file JobsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse jobs file: %w", err)
	}
	if len(file.Families) == 0 {
		return nil, fmt.Errorf("jobs file declares no families")
	}
	seen := make(map[string]struct{}, len(file.Families))
	for _, f := range file.Families {
		if _, dup := seen[f.Name]; dup {
			return nil, fmt.Errorf("duplicate family %s", f.Name)
		}
		seen[f.Name] = struct{}{}
		if err := f.Validate(registry); err != nil {
			return nil, err
		}
	}
	return file.Families, nil
}

// LoadCatalog reads the families declared in path.
// An empty path or a missing file yields the built-in families.
func LoadCatalog(path string, registry *reconcile.Registry) (Catalog, error) {
	if path == "" {
		return NewCatalog(DefaultFamilies()...), nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return NewCatalog(DefaultFamilies()...), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read jobs file %s: %w", path, err)
	}
	families, err := ParseFamilies(data, registry)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return NewCatalog(families...), nil
}

// MarshalFamilies renders families in the jobs file layout.
func MarshalFamilies(families []Family) ([]byte, error) {
	data, err := yaml.Marshal(JobsFile{Families: families})
	if err != nil {
		return nil, fmt.Errorf("failed to render jobs file: %w", err)
	}
	return data, nil
}
