// Package resource is the snippet database consulted during expansion: markup
// aliases and expandos, and stylesheet property names.
package resource

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"bennypowers.dev/abbrex/internal/collections"
	"bennypowers.dev/abbrex/internal/log"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaults []byte

var (
	// ErrCircularExpando is returned when snippets reference each other in a loop
	ErrCircularExpando = errors.New("circular snippet reference")
	// ErrUnsupportedFormat is returned for snippet files that are not YAML or JSON
	ErrUnsupportedFormat = errors.New("unsupported snippets format")
)

// Syntax selects the snippet namespace
type Syntax int

const (
	// Markup snippets expand element names
	Markup Syntax = iota
	// Stylesheet snippets expand property names
	Stylesheet
)

func (s Syntax) String() string {
	if s == Stylesheet {
		return "stylesheet"
	}
	return "markup"
}

// Entry is a single snippet
type Entry struct {
	Name   string
	Value  string
	Syntax Syntax
}

// Property splits a stylesheet snippet value into its property name and
// default value, as in position:relative
func (e Entry) Property() (name, value string) {
	name, value, _ = strings.Cut(e.Value, ":")
	return strings.TrimSpace(name), strings.TrimSpace(value)
}

// Resolver looks snippets up by name
type Resolver interface {
	Lookup(name string, syntax Syntax) (Entry, bool)
}

// File is the on-disk snippets format
type File struct {
	Markup     map[string]string `yaml:"markup" json:"markup"`
	Stylesheet map[string]string `yaml:"stylesheet" json:"stylesheet"`
}

// Registry is a concurrency-safe Resolver
type Registry struct {
	mu      sync.RWMutex
	entries map[Syntax]map[string]Entry
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		entries: map[Syntax]map[string]Entry{
			Markup:     {},
			Stylesheet: {},
		},
	}
}

// Default creates a registry holding the built-in snippets
func Default() *Registry {
	r := NewRegistry()
	if err := r.Load(defaults, ".yaml"); err != nil {
		panic(fmt.Sprintf("built-in snippets: %v", err))
	}
	return r
}

// Add stores a snippet, replacing any snippet of the same name
func (r *Registry) Add(syntax Syntax, name, value string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[syntax][name] = Entry{Name: name, Value: value, Syntax: syntax}
}

// AddFile stores every snippet of f
func (r *Registry) AddFile(f *File) {
	for name, value := range f.Markup {
		r.Add(Markup, name, value)
	}
	for name, value := range f.Stylesheet {
		r.Add(Stylesheet, name, value)
	}
}

// Lookup returns the snippet called name
func (r *Registry) Lookup(name string, syntax Syntax) (Entry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[syntax][name]
	return e, ok
}

// Names returns the sorted snippet names of syntax
func (r *Registry) Names(syntax Syntax) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return collections.SortedKeys(r.entries[syntax])
}

// Len returns the number of snippets of syntax
func (r *Registry) Len(syntax Syntax) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries[syntax])
}

// Load adds snippets from data in the format named by ext
func (r *Registry) Load(data []byte, ext string) error {
	f, err := ParseFile(data, ext)
	if err != nil {
		return err
	}
	r.AddFile(f)
	return nil
}

// LoadFile adds snippets from a YAML or JSON(C) file
func (r *Registry) LoadFile(path string) error {
	f, err := ReadFile(path)
	if err != nil {
		return err
	}
	r.AddFile(f)
	return nil
}

// ReadFile reads and decodes a snippets file
func ReadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read snippets %s: %w", path, err)
	}
	f, err := ParseFile(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("failed to parse snippets %s: %w", path, err)
	}
	log.Debug("Read %d markup and %d stylesheet snippets from %s", len(f.Markup), len(f.Stylesheet), path)
	return f, nil
}

// ParseFile decodes snippets data in the format named by ext
func ParseFile(data []byte, ext string) (*File, error) {
	var f File
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, err
		}
	case ".json", ".jsonc":
		if err := json.Unmarshal(jsonc.ToJSON(data), &f); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	return &f, nil
}
