// Package config holds the user-facing settings of abbrex and turns them
// into the explicit per-call contexts of the expansion packages.
package config

import (
	"path/filepath"
	"slices"
	"unicode/utf8"

	"bennypowers.dev/abbrex/internal/collections"
	"bennypowers.dev/abbrex/internal/parser/markup"
	"bennypowers.dev/abbrex/internal/parser/stylesheet"
	"bennypowers.dev/abbrex/internal/rollout"
	"github.com/bmatcuk/doublestar/v4"
)

// Config is the complete abbrex configuration
type Config struct {
	Markup     MarkupConfig     `yaml:"markup" json:"markup"`
	Stylesheet StylesheetConfig `yaml:"stylesheet" json:"stylesheet"`

	// Languages maps doublestar globs to language IDs, like **/*.vue: html
	Languages map[string]string `yaml:"languages" json:"languages" validate:"dive,keys,glob,endkeys,required"`

	// Snippets is the path of an extra snippets file, relative to the config file
	Snippets string `yaml:"snippets,omitempty" json:"snippets,omitempty"`
}

// MarkupConfig configures markup expansion
type MarkupConfig struct {
	NumberingGlyph    string            `yaml:"numberingGlyph" json:"numberingGlyph" validate:"len=1"`
	OutputPlaceholder string            `yaml:"outputPlaceholder" json:"outputPlaceholder" validate:"required"`
	MaxRepeat         int               `yaml:"maxRepeat" json:"maxRepeat" validate:"gte=0"`
	Variables         map[string]string `yaml:"variables" json:"variables"`
	// InlineElements are the parents whose unnamed children become span
	InlineElements []string `yaml:"inlineElements" json:"inlineElements" validate:"dive,required"`
}

// StylesheetConfig configures stylesheet expansion
type StylesheetConfig struct {
	IntUnit     string            `yaml:"intUnit" json:"intUnit"`
	FloatUnit   string            `yaml:"floatUnit" json:"floatUnit"`
	UnitAliases map[string]string `yaml:"unitAliases" json:"unitAliases" validate:"dive,keys,required,endkeys,required"`
	Unitless    []string          `yaml:"unitless" json:"unitless" validate:"dive,required"`
	ShortHex    bool              `yaml:"shortHex" json:"shortHex"`
}

// DefaultConfig returns the built-in configuration
func DefaultConfig() *Config {
	units := stylesheet.DefaultUnitOptions()
	ctx := rollout.DefaultContext()
	return &Config{
		Markup: MarkupConfig{
			NumberingGlyph:    string(ctx.NumberingGlyph),
			OutputPlaceholder: ctx.OutputPlaceholder,
			MaxRepeat:         1000,
			Variables: map[string]string{
				"lang":    "en",
				"locale":  "en-US",
				"charset": "UTF-8",
			},
			InlineElements: slices.Clone(ctx.InlineElements),
		},
		Stylesheet: StylesheetConfig{
			IntUnit:     units.IntUnit,
			FloatUnit:   units.FloatUnit,
			UnitAliases: units.Aliases,
			Unitless:    units.Unitless,
			ShortHex:    true,
		},
		Languages: map[string]string{
			"**/*.{html,htm,xhtml}": "html",
			"**/*.vue":              "html",
			"**/*.svelte":           "html",
			"**/*.css":              "css",
			"**/*.{scss,sass,less}": "css",
			"**/*.{js,mjs,cjs}":     "javascript",
			"**/*.{jsx,tsx}":        "javascriptreact",
			"**/*.{ts,mts}":         "typescript",
		},
	}
}

// LanguageFor returns the language ID of path. When several globs match,
// the longest pattern wins.
func (c *Config) LanguageFor(path string) (string, bool) {
	path = filepath.ToSlash(path)
	best := ""
	for _, pattern := range collections.SortedKeys(c.Languages) {
		matched, err := doublestar.Match(pattern, path)
		if err != nil || !matched {
			continue
		}
		if len(pattern) > len(best) {
			best = pattern
		}
	}
	if best == "" {
		return "", false
	}
	return c.Languages[best], true
}

// RolloutContext builds the rollout settings
func (c *Config) RolloutContext() rollout.Context {
	glyph, _ := utf8.DecodeRuneInString(c.Markup.NumberingGlyph)
	if glyph == utf8.RuneError {
		glyph = 0
	}
	return rollout.Context{
		NumberingGlyph:    glyph,
		OutputPlaceholder: c.Markup.OutputPlaceholder,
		MaxRepeat:         c.Markup.MaxRepeat,
		InlineElements:    c.Markup.InlineElements,
	}
}

// ParseOptions builds the markup parser settings
func (c *Config) ParseOptions() markup.ParseOptions {
	return markup.ParseOptions{Variables: c.Markup.Variables}
}

// UnitOptions builds the stylesheet unit settings
func (c *Config) UnitOptions() stylesheet.UnitOptions {
	return stylesheet.UnitOptions{
		IntUnit:   c.Stylesheet.IntUnit,
		FloatUnit: c.Stylesheet.FloatUnit,
		Aliases:   c.Stylesheet.UnitAliases,
		Unitless:  c.Stylesheet.Unitless,
	}
}
