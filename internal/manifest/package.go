package manifest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
)

const (
	keyName            = "name"
	keyDependencies    = "dependencies"
	keyDevDependencies = "devDependencies"
)

// Package is a package.json document. Unknown fields are carried through
// untouched.
type Package struct {
	keys   []string
	fields map[string]json.RawMessage
}

// Parse decodes a package.json document, remembering key order.
func Parse(data []byte) (*Package, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("parsing package.json: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("parsing package.json: top level is not an object")
	}

	p := &Package{fields: make(map[string]json.RawMessage)}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("parsing package.json: %w", err)
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("parsing package.json: unexpected token %v", tok)
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("parsing package.json field %q: %w", key, err)
		}
		if _, dup := p.fields[key]; !dup {
			p.keys = append(p.keys, key)
		}
		p.fields[key] = raw
	}
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("parsing package.json: %w", err)
	}
	return p, nil
}

// Load reads and parses the package.json at path.
func Load(path string) (*Package, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}
	p, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// Name returns the package name, or "" when unset.
func (p *Package) Name() string {
	var name string
	if raw, ok := p.fields[keyName]; ok {
		_ = json.Unmarshal(raw, &name)
	}
	return name
}

// SetName sets the "name" field, adding it first when missing.
func (p *Package) SetName(name string) error {
	raw, err := marshal(name)
	if err != nil {
		return err
	}
	if _, ok := p.fields[keyName]; !ok {
		p.keys = append([]string{keyName}, p.keys...)
	}
	p.fields[keyName] = raw
	return nil
}

// Dependencies returns a copy of the dependencies (dev when dev is true).
func (p *Package) Dependencies(dev bool) (map[string]string, error) {
	key := depKey(dev)
	deps := make(map[string]string)
	raw, ok := p.fields[key]
	if !ok {
		return deps, nil
	}
	if err := json.Unmarshal(raw, &deps); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", key, err)
	}
	// A JSON null resets the map.
	if deps == nil {
		deps = make(map[string]string)
	}
	return deps, nil
}

// AddDependency sets name to rng in dependencies or devDependencies. A
// package listed in the other section is moved.
func (p *Package) AddDependency(name, rng string, dev bool) error {
	if other, err := p.Dependencies(!dev); err != nil {
		return err
	} else if _, ok := other[name]; ok {
		delete(other, name)
		if err := p.setDeps(!dev, other); err != nil {
			return err
		}
	}

	deps, err := p.Dependencies(dev)
	if err != nil {
		return err
	}
	deps[name] = rng
	return p.setDeps(dev, deps)
}

func (p *Package) setDeps(dev bool, deps map[string]string) error {
	key := depKey(dev)
	if len(deps) == 0 {
		p.remove(key)
		return nil
	}
	// encoding/json writes map keys sorted.
	raw, err := marshal(deps)
	if err != nil {
		return err
	}
	if _, ok := p.fields[key]; !ok {
		p.keys = append(p.keys, key)
	}
	p.fields[key] = raw
	return nil
}

func (p *Package) remove(key string) {
	if _, ok := p.fields[key]; !ok {
		return
	}
	delete(p.fields, key)
	for i, k := range p.keys {
		if k == key {
			p.keys = append(p.keys[:i], p.keys[i+1:]...)
			break
		}
	}
}

// Bytes encodes the document with two-space indentation and a trailing
// newline.
func (p *Package) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("{")
	for i, key := range p.keys {
		if i > 0 {
			buf.WriteString(",")
		}
		buf.WriteString("\n  ")

		k, err := marshal(key)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteString(": ")

		var v bytes.Buffer
		if err := json.Indent(&v, p.fields[key], "  ", "  "); err != nil {
			return nil, fmt.Errorf("encoding %s: %w", key, err)
		}
		buf.Write(v.Bytes())
	}
	if len(p.keys) > 0 {
		buf.WriteString("\n")
	}
	buf.WriteString("}\n")
	return buf.Bytes(), nil
}

// Save writes the document to path.
func (p *Package) Save(path string) error {
	data, err := p.Bytes()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

func depKey(dev bool) string {
	if dev {
		return keyDevDependencies
	}
	return keyDependencies
}

// marshal encodes v compactly without HTML escaping.
func marshal(v any) (json.RawMessage, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("encoding JSON: %w", err)
	}
	return json.RawMessage(strings.TrimSuffix(buf.String(), "\n")), nil
}

// SortedNames returns the keys of deps in order.
func SortedNames(deps map[string]string) []string {
	names := make([]string, 0, len(deps))
	for n := range deps {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
