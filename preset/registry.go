package preset

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vitalsynth/vitalsynth/logging"
)

// Registry holds named presets loaded from YAML files.
type Registry struct {
	presets map[string]*Preset
	logger  logging.Logger
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		presets: make(map[string]*Preset),
		logger:  logging.WithFields(logging.Fields{"component": "preset"}),
	}
}

// LoadFromFile parses one preset file and registers it by name.
func (r *Registry) LoadFromFile(path string) (*Preset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read preset file: %w", err)
	}

	var p Preset
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse preset file %s: %w", path, err)
	}
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("preset file %s: %w", path, err)
	}

	r.presets[p.Name] = &p
	r.logger.Debug("loaded preset", logging.Fields{
		"name":   p.Name,
		"family": p.Family,
		"path":   path,
	})
	return &p, nil
}

// LoadFromDir loads every .yaml/.yml file in a directory. Files that fail to
// parse abort the load.
func (r *Registry) LoadFromDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read preset directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext != ".yaml" && ext != ".yml" {
			continue
		}
		if _, err := r.LoadFromFile(filepath.Join(dir, entry.Name())); err != nil {
			return err
		}
	}
	return nil
}

// Get returns a preset by name.
func (r *Registry) Get(name string) (*Preset, error) {
	p, ok := r.presets[name]
	if !ok {
		return nil, fmt.Errorf("preset %q not found", name)
	}
	return p, nil
}

// List returns the registered preset names, sorted.
func (r *Registry) List() []string {
	names := make([]string, 0, len(r.presets))
	for name := range r.presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
