package localedata

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// WithYAMLDir loads every .yaml or .yml file of fsys. A file maps locale IDs
// to data, or, when named after a locale (de_AT.yaml), holds that locale's
// data directly.
func WithYAMLDir(fsys fs.FS) Option {
	return func(r *Registry) error {
		return r.loadDir(fsys, []string{".yaml", ".yml"}, yaml.Unmarshal)
	}
}

// WithJSONDir is WithYAMLDir for .json files.
func WithJSONDir(fsys fs.FS) Option {
	return func(r *Registry) error {
		return r.loadDir(fsys, []string{".json"}, json.Unmarshal)
	}
}

func (r *Registry) loadDir(fsys fs.FS, exts []string, unmarshal func([]byte, any) error) error {
	return fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		ext := strings.ToLower(path.Ext(p))
		if !slices.Contains(exts, ext) {
			return nil
		}

		raw, err := fs.ReadFile(fsys, p)
		if err != nil {
			return fmt.Errorf("reading %q: %w", p, err)
		}

		name := strings.TrimSuffix(path.Base(p), path.Ext(p))
		if _, err := key(name); err == nil {
			var single Data
			if err := unmarshal(raw, &single); err == nil && !single.empty() {
				return r.Put(name, single)
			}
		}
		return r.load(p, raw, unmarshal)
	})
}

func (d Data) empty() bool {
	return d.Date == (Styles{}) && d.Time == (Styles{}) && d.DateTime == "" &&
		len(d.Months) == 0 && len(d.Weekdays) == 0 && len(d.Skeletons) == 0 &&
		d.FirstDay == 0 && d.Number == (NumberPatterns{})
}
