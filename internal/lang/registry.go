package lang

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/google/shlex"
)

// Registry maps language tags and file extensions to adapters. It is
// filled before evaluation starts and only read afterwards.
type Registry struct {
	adapters map[string]Adapter
	byExt    map[string]string
}

func NewRegistry() *Registry {
	return &Registry{
		adapters: make(map[string]Adapter),
		byExt:    make(map[string]string),
	}
}

// Default returns a registry with the built-in languages.
func Default() *Registry {
	r := NewRegistry()
	for _, spec := range BuiltinSpecs() {
		if err := r.AddSpec(spec, false); err != nil {
			panic(err)
		}
	}
	return r
}

// Register adds an adapter. Tags must be unique.
func (r *Registry) Register(a Adapter, extensions ...string) error {
	if _, ok := r.adapters[a.Tag()]; ok {
		return fmt.Errorf("language %s is already registered", a.Tag())
	}
	r.adapters[a.Tag()] = a
	for _, ext := range extensions {
		r.byExt[strings.ToLower(ext)] = a.Tag()
	}
	return nil
}

// AddSpec registers the adapter for spec. With replace set an existing
// language with the same id is replaced.
func (r *Registry) AddSpec(spec Spec, replace bool) error {
	a, err := NewAdapter(spec)
	if err != nil {
		return err
	}
	if replace {
		r.remove(a.Tag())
	}
	return r.Register(a, spec.Extensions...)
}

// LoadFile adds languages from a TOML file, replacing built-ins with the
// same id.
func (r *Registry) LoadFile(path string) error {
	specs, err := LoadSpecs(path)
	if err != nil {
		return err
	}
	for _, spec := range specs {
		if err := r.AddSpec(spec, true); err != nil {
			return err
		}
	}
	return nil
}

func (r *Registry) remove(tag string) {
	delete(r.adapters, tag)
	for ext, t := range r.byExt {
		if t == tag {
			delete(r.byExt, ext)
		}
	}
}

func (r *Registry) Get(tag string) (Adapter, bool) {
	a, ok := r.adapters[tag]
	return a, ok
}

// Detect infers the language tag from a file name extension.
func (r *Registry) Detect(filename string) (string, bool) {
	tag, ok := r.byExt[strings.ToLower(filepath.Ext(filename))]
	return tag, ok
}

func (r *Registry) Tags() []string {
	tags := make([]string, 0, len(r.adapters))
	for tag := range r.adapters {
		tags = append(tags, tag)
	}
	slices.Sort(tags)
	return tags
}

// CheckToolchain reports whether the programs language tag invokes exist
// on the host. Commands starting with a placeholder, such as a compiled
// binary, are not looked up.
func (r *Registry) CheckToolchain(tag string) error {
	a, ok := r.adapters[tag]
	if !ok {
		return fmt.Errorf("unknown language %q", tag)
	}
	c, ok := a.(interface{ commands() []string })
	if !ok {
		return nil
	}
	for _, tpl := range c.commands() {
		args, err := shlex.Split(tpl)
		if err != nil {
			return fmt.Errorf("invalid command template %q: %w", tpl, err)
		}
		if len(args) == 0 || strings.Contains(args[0], "{") {
			continue
		}
		if err := lookPath(tag, args); err != nil {
			return err
		}
	}
	return nil
}
