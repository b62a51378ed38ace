package stylesheet

import "slices"

// UnitOptions configures numeric unit resolution
type UnitOptions struct {
	// IntUnit is appended to unit-less integers
	IntUnit string
	// FloatUnit is appended to unit-less fractions
	FloatUnit string
	// Aliases maps shorthand units to CSS units
	Aliases map[string]string
	// Unitless lists properties whose numbers never get a unit
	Unitless []string
}

// DefaultUnitOptions returns the conventional unit settings
func DefaultUnitOptions() UnitOptions {
	return UnitOptions{
		IntUnit:   "px",
		FloatUnit: "em",
		Aliases: map[string]string{
			"p": "%",
			"e": "em",
			"x": "ex",
			"r": "rem",
		},
		Unitless: []string{
			"z-index", "line-height", "opacity", "font-weight",
			"zoom", "flex", "flex-grow", "flex-shrink", "order",
		},
	}
}

// ResolveUnits expands unit aliases and adds default units to the
// top-level numbers of each property. Function arguments are left alone.
func ResolveUnits(props []Property, opts UnitOptions) {
	for i := range props {
		unitless := slices.Contains(opts.Unitless, props[i].Name)
		for _, v := range props[i].Value {
			for _, item := range v.Value {
				if n, ok := item.(*NumberValue); ok {
					resolveNumber(n, unitless, opts)
				}
			}
		}
	}
}

func resolveNumber(n *NumberValue, unitless bool, opts UnitOptions) {
	if alias, ok := opts.Aliases[n.Unit]; ok {
		n.Unit = alias
		return
	}
	if n.Unit != "" || n.Value == 0 || unitless {
		return
	}
	if n.IsFloat() {
		n.Unit = opts.FloatUnit
	} else {
		n.Unit = opts.IntUnit
	}
}
