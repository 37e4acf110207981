package extension

import (
	"sort"

	"github.com/goccy/go-yaml"
)

// FunctionSignature and DecoratorSignature are the YAML-serializable
// projections of a Callable used by exportExtension (spec.md §4.4);
// they omit the Go-side Native/ExtensionOwner fields, which have no
// meaning outside this process.
type FunctionSignature struct {
	Name        string   `yaml:"name"`
	ArgKinds    []string `yaml:"args"`
	ReturnKind  string   `yaml:"returns"`
	Description string   `yaml:"description,omitempty"`
}

type DecoratorSignature struct {
	Name        string `yaml:"name"`
	ArgKind     string `yaml:"arg"`
	Description string `yaml:"description,omitempty"`
}

// Manifest is the {name,author,version,functions,decorators} shape
// `exportExtension` returns (spec.md §4.4, §6).
type Manifest struct {
	Name       string                `yaml:"name"`
	Author     string                `yaml:"author"`
	Version    string                `yaml:"version"`
	Functions  []FunctionSignature   `yaml:"functions"`
	Decorators []DecoratorSignature  `yaml:"decorators"`
}

// Export builds a Manifest describing every callable currently
// registered (host-native and extension alike), sorted by name for a
// stable, diffable rendering.
func (r *Registry) Export(name, author, version string) Manifest {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m := Manifest{Name: name, Author: author, Version: version}
	for _, c := range r.functions {
		m.Functions = append(m.Functions, FunctionSignature{
			Name: c.Name, ArgKinds: append([]string(nil), c.ArgKinds...),
			ReturnKind: c.ReturnKind, Description: c.Description,
		})
	}
	for _, c := range r.decorators {
		argKind := ""
		if len(c.ArgKinds) > 0 {
			argKind = c.ArgKinds[0]
		}
		m.Decorators = append(m.Decorators, DecoratorSignature{
			Name: c.Name, ArgKind: argKind, Description: c.Description,
		})
	}
	sort.Slice(m.Functions, func(i, j int) bool { return m.Functions[i].Name < m.Functions[j].Name })
	sort.Slice(m.Decorators, func(i, j int) bool { return m.Decorators[i].Name < m.Decorators[j].Name })
	return m
}

// MarshalYAML renders a Manifest via goccy/go-yaml, the manifest
// format an embedding host persists alongside an extension script.
func (m Manifest) MarshalYAML() ([]byte, error) {
	return yaml.Marshal(m)
}

// ParseManifest reads a Manifest back from YAML, used when a host
// reloads a previously exported extension description.
func ParseManifest(data []byte) (Manifest, error) {
	var m Manifest
	err := yaml.Unmarshal(data, &m)
	return m, err
}
