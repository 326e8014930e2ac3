package catalog

import (
	_ "embed"
	"fmt"
	"sync"

	"go.yaml.in/yaml/v3"

	"github.com/kickstart-dev/kickstart/internal/selector"
)

//go:embed catalog.yaml
var rawCatalog []byte

// Entry is one framework or module.
type Entry struct {
	ID          string `yaml:"id" json:"id"`
	Label       string `yaml:"label" json:"label"`
	Description string `yaml:"description" json:"description"`
	Category    string `yaml:"category,omitempty" json:"category,omitempty"`
	// Package is the npm package added to package.json.
	Package string `yaml:"package" json:"package"`
	// Module is the name registered in nuxt.config's modules array. Empty
	// when the package is not a Nuxt module.
	Module string `yaml:"module,omitempty" json:"module,omitempty"`
	// Dev marks the packages as devDependencies.
	Dev bool `yaml:"dev,omitempty" json:"dev,omitempty"`
	// Extra lists companion packages installed alongside Package.
	Extra []string `yaml:"extra,omitempty" json:"extra,omitempty"`
}

// Catalog is the parsed catalog.yaml.
type Catalog struct {
	Frameworks []Entry `yaml:"frameworks" json:"frameworks"`
	Modules    []Entry `yaml:"modules" json:"modules"`
}

// Dependency is a package to add to package.json.
type Dependency struct {
	Name string
	Dev  bool
}

var (
	loadOnce sync.Once
	loaded   *Catalog
	loadErr  error
)

// Load returns the embedded catalog, parsing it on first use.
func Load() (*Catalog, error) {
	loadOnce.Do(func() {
		loaded, loadErr = Parse(rawCatalog)
	})
	return loaded, loadErr
}

// Parse decodes and checks a catalog document.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}
	if len(c.Frameworks) == 0 {
		return nil, fmt.Errorf("catalog declares no frameworks")
	}

	seen := make(map[string]bool)
	for _, group := range [][]Entry{c.Frameworks, c.Modules} {
		for _, e := range group {
			if e.ID == "" {
				return nil, fmt.Errorf("catalog entry %q has no id", e.Label)
			}
			if seen[e.ID] {
				return nil, fmt.Errorf("duplicate catalog id %q", e.ID)
			}
			seen[e.ID] = true
			if e.Package == "" {
				return nil, fmt.Errorf("catalog entry %q has no package", e.ID)
			}
		}
	}
	return &c, nil
}

// FrameworkOptions returns the frameworks as selector options.
func (c *Catalog) FrameworkOptions() []selector.Option {
	return toOptions(c.Frameworks)
}

// ModuleOptions returns the modules as selector options.
func (c *Catalog) ModuleOptions() []selector.Option {
	return toOptions(c.Modules)
}

func toOptions(entries []Entry) []selector.Option {
	opts := make([]selector.Option, len(entries))
	for i, e := range entries {
		opts[i] = selector.Option{
			ID:          e.ID,
			Label:       e.Label,
			Description: e.Description,
			Category:    e.Category,
		}
	}
	return opts
}

// Framework looks up a framework by id.
func (c *Catalog) Framework(id string) (*Entry, error) {
	for i := range c.Frameworks {
		if c.Frameworks[i].ID == id {
			return &c.Frameworks[i], nil
		}
	}
	return nil, fmt.Errorf("unknown UI framework %q", id)
}

// Module looks up a module by id.
func (c *Catalog) Module(id string) (*Entry, error) {
	for i := range c.Modules {
		if c.Modules[i].ID == id {
			return &c.Modules[i], nil
		}
	}
	return nil, fmt.Errorf("unknown module %q", id)
}

// Selection resolves a framework id and module ids into entries, keeping
// module declaration order regardless of the order the ids were given in.
func (c *Catalog) Selection(frameworkID string, moduleIDs []string) ([]Entry, error) {
	fw, err := c.Framework(frameworkID)
	if err != nil {
		return nil, err
	}

	want := make(map[string]bool, len(moduleIDs))
	for _, id := range moduleIDs {
		if _, err := c.Module(id); err != nil {
			return nil, err
		}
		want[id] = true
	}

	entries := []Entry{*fw}
	for _, m := range c.Modules {
		if want[m.ID] {
			entries = append(entries, m)
		}
	}
	return entries, nil
}

// Dependencies flattens entries into the packages to add, first occurrence
// wins.
func Dependencies(entries []Entry) []Dependency {
	seen := make(map[string]bool)
	var deps []Dependency
	add := func(name string, dev bool) {
		if seen[name] {
			return
		}
		seen[name] = true
		deps = append(deps, Dependency{Name: name, Dev: dev})
	}
	for _, e := range entries {
		add(e.Package, e.Dev)
		for _, x := range e.Extra {
			add(x, e.Dev)
		}
	}
	return deps
}

// Packages returns the de-duplicated dependencies for a framework and
// module selection.
func (c *Catalog) Packages(frameworkID string, moduleIDs []string) ([]Dependency, error) {
	entries, err := c.Selection(frameworkID, moduleIDs)
	if err != nil {
		return nil, err
	}
	return Dependencies(entries), nil
}

// NuxtModules returns the nuxt.config module names for entries.
func NuxtModules(entries []Entry) []string {
	var mods []string
	for _, e := range entries {
		if e.Module != "" {
			mods = append(mods, e.Module)
		}
	}
	return mods
}

// Categories groups modules by category in first-seen order.
func (c *Catalog) Categories() ([]string, map[string][]Entry) {
	var order []string
	groups := make(map[string][]Entry)
	for _, m := range c.Modules {
		cat := m.Category
		if cat == "" {
			cat = "other"
		}
		if _, ok := groups[cat]; !ok {
			order = append(order, cat)
		}
		groups[cat] = append(groups[cat], m)
	}
	return order, groups
}
