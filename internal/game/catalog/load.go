package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// LoadMaster reads every category's master dataset JSON file named by the
// registry. This is the one asynchronous boundary of the core: it runs once
// at startup and its failure is terminal for the session: there is no
// automatic retry, and nothing may run against an incomplete master catalog.
//
// Precondition: reg must be non-nil; baseDir is the directory registry file
// paths are relative to.
// Postcondition: Returns raw Datasets ready for Build, or a non-nil error.
func LoadMaster(reg *Registry, baseDir string) (Datasets, error) {
	out := make(Datasets, len(reg.Categories))
	for _, cfg := range reg.Categories {
		if cfg.File == "" {
			out[cfg.Name] = nil
			continue
		}
		path := filepath.Join(baseDir, cfg.File)
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("catalog: reading master dataset %q: %w", path, err)
		}
		var rows []map[string]any
		if err := json.Unmarshal(data, &rows); err != nil {
			return nil, fmt.Errorf("catalog: parsing master dataset %q: %w", path, err)
		}
		out[cfg.Name] = rows
	}
	return out, nil
}

// UserData is the persisted user-dataset blob, shared across all sheet types.
type UserData struct {
	Version int                         `json:"version"`
	Data    map[string][]map[string]any `json:"data"`
}

// Datasets returns the user blob's rows as Datasets for Build.
//
// Postcondition: Returns a non-nil map; a nil receiver or empty blob yields
// an empty Datasets.
func (u *UserData) Datasets() Datasets {
	if u == nil || u.Data == nil {
		return Datasets{}
	}
	out := make(Datasets, len(u.Data))
	for k, v := range u.Data {
		out[k] = v
	}
	return out
}
