// Package theme composes the widget's CSS variables from three layers:
// compiled defaults < brand tokens from the platform < live editor overrides.
package theme

import (
	_ "embed"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

var (
	nameRe       = regexp.MustCompile(`^--[A-Za-z0-9_-]+$`)
	unsafeValue  = regexp.MustCompile(`[;{}<>]`)
	embeddedVars = mustParse(defaultsYAML)
)

// Var is one CSS custom property.
type Var struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Vars is an ordered variable list; names are unique.
type Vars []Var

// Get looks a variable up by name.
func (v Vars) Get(name string) (string, bool) {
	for _, kv := range v {
		if kv.Name == name {
			return kv.Value, true
		}
	}
	return "", false
}

// Map returns the variables keyed by name.
func (v Vars) Map() map[string]string {
	out := make(map[string]string, len(v))
	for _, kv := range v {
		out[kv.Name] = kv.Value
	}
	return out
}

// CSS renders the variables as a single rule for selector.
func (v Vars) CSS(selector string) string {
	if selector == "" {
		selector = ":root"
	}
	var b strings.Builder
	b.WriteString(selector)
	b.WriteString(" {\n")
	for _, kv := range v {
		fmt.Fprintf(&b, "  %s: %s;\n", kv.Name, kv.Value)
	}
	b.WriteString("}\n")
	return b.String()
}

// Defaults returns the embedded defaults.
func Defaults() Vars {
	out := make(Vars, len(embeddedVars))
	copy(out, embeddedVars)
	return out
}

// LoadDefaults reads defaults from a YAML mapping file, or the embedded set when path is empty.
func LoadDefaults(path string) (Vars, error) {
	if path == "" {
		return Defaults(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read theme defaults: %w", err)
	}
	return Parse(data)
}

// Parse reads a YAML mapping of variable name to value, keeping document order.
func Parse(data []byte) (Vars, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse theme defaults: %w", err)
	}
	if len(doc.Content) == 0 {
		return Vars{}, nil
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("parse theme defaults: expected a mapping")
	}

	vars := make(Vars, 0, len(root.Content)/2)
	seen := map[string]bool{}
	for i := 0; i+1 < len(root.Content); i += 2 {
		name, ok := NormalizeName(root.Content[i].Value)
		if !ok {
			return nil, fmt.Errorf("parse theme defaults: invalid variable name %q", root.Content[i].Value)
		}
		value, ok := SanitizeValue(root.Content[i+1].Value)
		if !ok || seen[name] {
			continue
		}
		seen[name] = true
		vars = append(vars, Var{Name: name, Value: value})
	}
	return vars, nil
}

func mustParse(data []byte) Vars {
	v, err := Parse(data)
	if err != nil {
		panic(err)
	}
	return v
}

// NormalizeName adds the "--" prefix when missing and rejects anything that
// is not a plain custom-property name.
func NormalizeName(name string) (string, bool) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", false
	}
	if !strings.HasPrefix(name, "--") {
		name = "--" + name
	}
	return name, nameRe.MatchString(name)
}

// SanitizeValue trims a value and refuses ones that could break out of a declaration.
func SanitizeValue(value string) (string, bool) {
	value = strings.TrimSpace(value)
	if value == "" || unsafeValue.MatchString(value) {
		return "", false
	}
	return value, true
}

// Clean normalises a raw token map, dropping invalid names and values.
func Clean(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		name, ok := NormalizeName(k)
		if !ok {
			continue
		}
		if value, ok := SanitizeValue(v); ok {
			out[name] = value
		}
	}
	return out
}

// Layers holds the three theme layers. Compose applies precedence at read
// time, so the order in which Brand and Overrides were set never matters.
type Layers struct {
	Defaults  Vars              `json:"defaults"`
	Brand     map[string]string `json:"brand"`
	Overrides map[string]string `json:"overrides"`
}

// NewLayers starts with defaults and empty brand and override layers.
func NewLayers(defaults Vars) Layers {
	return Layers{
		Defaults:  defaults,
		Brand:     map[string]string{},
		Overrides: map[string]string{},
	}
}

// Compose returns the effective variables: default names in default order,
// then brand-only names sorted, then override-only names sorted.
func (l Layers) Compose() Vars {
	brand := Clean(l.Brand)
	overrides := Clean(l.Overrides)

	out := make(Vars, 0, len(l.Defaults)+len(brand)+len(overrides))
	seen := map[string]bool{}
	pick := func(name, fallback string) string {
		if v, ok := overrides[name]; ok {
			return v
		}
		if v, ok := brand[name]; ok {
			return v
		}
		return fallback
	}

	for _, kv := range l.Defaults {
		seen[kv.Name] = true
		out = append(out, Var{Name: kv.Name, Value: pick(kv.Name, kv.Value)})
	}
	for _, layer := range []map[string]string{brand, overrides} {
		names := make([]string, 0, len(layer))
		for name := range layer {
			if !seen[name] {
				names = append(names, name)
			}
		}
		sort.Strings(names)
		for _, name := range names {
			seen[name] = true
			out = append(out, Var{Name: name, Value: pick(name, "")})
		}
	}
	return out
}

// MergeOverrides sets the given override keys; an empty value removes the key.
func (l *Layers) MergeOverrides(patch map[string]string) {
	if l.Overrides == nil {
		l.Overrides = map[string]string{}
	}
	for k, v := range patch {
		name, ok := NormalizeName(k)
		if !ok {
			continue
		}
		if strings.TrimSpace(v) == "" {
			delete(l.Overrides, name)
			continue
		}
		if value, ok := SanitizeValue(v); ok {
			l.Overrides[name] = value
		}
	}
}
