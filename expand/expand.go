// Package expand turns markup and stylesheet abbreviations into trees.
//
// The low-level functions expose each stage: tokenizing, parsing and rollout.
// Markup and Stylesheet run the whole pipeline, including snippet resolution
// and configuration.
package expand

import (
	"sync"

	"bennypowers.dev/abbrex/internal/config"
	"bennypowers.dev/abbrex/internal/log"
	"bennypowers.dev/abbrex/internal/node"
	"bennypowers.dev/abbrex/internal/parser/markup"
	"bennypowers.dev/abbrex/internal/parser/stylesheet"
	"bennypowers.dev/abbrex/internal/resource"
	"bennypowers.dev/abbrex/internal/rollout"
	"bennypowers.dev/abbrex/internal/token"
)

type (
	// Token is a lexeme of either abbreviation grammar
	Token = token.Token
	// Tree is a parsed markup abbreviation
	Tree = node.Tree
	// Property is a parsed stylesheet abbreviation
	Property = stylesheet.Property
	// ConcreteTree is an expanded markup abbreviation
	ConcreteTree = rollout.ConcreteTree
	// ConcreteNode is an element or text node of a ConcreteTree
	ConcreteNode = rollout.ConcreteNode
	// PasteSpec is text to wrap with an abbreviation
	PasteSpec = rollout.PasteSpec
	// RolloutContext configures rollout
	RolloutContext = rollout.Context
	// ParseOptions configures markup parsing
	ParseOptions = markup.ParseOptions
	// ValueOptions configures stylesheet parsing
	ValueOptions = stylesheet.ParseOptions
)

// Options configures the full pipelines
type Options struct {
	// Config defaults to config.DefaultConfig
	Config *config.Config
	// Resolver defaults to the built-in snippets
	Resolver resource.Resolver
	// Paste is wrapped by markup abbreviations
	Paste *PasteSpec
	// Value expands a stylesheet abbreviation as a property value
	Value bool
}

var builtins = sync.OnceValue(resource.Default)

func (o Options) config() *config.Config {
	if o.Config != nil {
		return o.Config
	}
	return config.DefaultConfig()
}

func (o Options) resolver() resource.Resolver {
	if o.Resolver != nil {
		return o.Resolver
	}
	return builtins()
}

// TokenizeMarkup converts a markup abbreviation into tokens
func TokenizeMarkup(input string) ([]Token, error) {
	return markup.Tokenize(input)
}

// ParseMarkup parses a markup abbreviation into an optimized tree
func ParseMarkup(input string, opts ...ParseOptions) (*Tree, error) {
	var o ParseOptions
	if len(opts) > 0 {
		o = opts[0]
	}
	return markup.Parse(input, o)
}

// TokenizeValue converts a stylesheet abbreviation into tokens. In value
// context keywords may start with digits and dashes.
func TokenizeValue(input string, valueContext bool) ([]Token, error) {
	return stylesheet.Tokenize(input, valueContext)
}

// ParseValue groups stylesheet tokens into properties
func ParseValue(tokens []Token, opts ...ValueOptions) ([]Property, error) {
	var o ValueOptions
	if len(opts) > 0 {
		o = opts[0]
	}
	return stylesheet.ParseTokens(tokens, o)
}

// Rollout expands repeats, counters, pasted text and fields of a parsed tree
func Rollout(tree *Tree, paste *PasteSpec, ctx RolloutContext) *ConcreteTree {
	return rollout.Rollout(tree, paste, ctx)
}

// Markup parses abbr, resolves snippets and rolls the tree out
func Markup(abbr string, opts Options) (*ConcreteTree, error) {
	cfg := opts.config()
	parseOpts := cfg.ParseOptions()

	tree, err := markup.Parse(abbr, parseOpts)
	if err != nil {
		return nil, err
	}
	if err := resource.ResolveMarkup(tree, opts.resolver(), parseOpts); err != nil {
		return nil, err
	}

	log.Debug("Expanding %s", abbr)
	return rollout.Rollout(tree, opts.Paste, cfg.RolloutContext()), nil
}

// Stylesheet parses abbr, resolves property names and adds units
func Stylesheet(abbr string, opts Options) ([]Property, error) {
	cfg := opts.config()

	props, err := stylesheet.Parse(abbr, stylesheet.ParseOptions{Value: opts.Value})
	if err != nil {
		return nil, err
	}
	if !opts.Value {
		props, err = resource.ResolveStylesheet(props, opts.resolver())
		if err != nil {
			return nil, err
		}
	}
	stylesheet.ResolveUnits(props, cfg.UnitOptions())
	return props, nil
}
