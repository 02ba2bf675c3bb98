package colormap

import (
	"fmt"
	"sort"
)

// Price tints store markers: green (cheapest) through yellow and burgundy to red
var Price = Gradient{
	Name: "price",
	Stops: []Stop{
		{Pos: 0, Color: RGB{0, 150, 0}},
		{Pos: 0.33, Color: RGB{180, 180, 0}},
		{Pos: 0.67, Color: RGB{140, 40, 40}},
		{Pos: 1, Color: RGB{180, 0, 0}},
	},
	Fallback: RGB{0xB8, 0x86, 0x0B},
	Missing:  RGB{0x7B, 0x3F, 0xF2},
}

// Poverty fills choropleth regions: light green through yellow to red
var Poverty = Gradient{
	Name: "poverty",
	Stops: []Stop{
		{Pos: 0, Color: RGB{200, 255, 200}},
		{Pos: 0.5, Color: RGB{255, 255, 0}},
		{Pos: 1, Color: RGB{255, 0, 0}},
	},
	Fallback:     RGB{128, 128, 128},
	Missing:      RGB{128, 128, 128},
	Alpha:        0.4,
	MissingAlpha: 0.3,
}

// Heat blends heat-layer intensity from blue through purple and orange to red
var Heat = Gradient{
	Name: "heat",
	Stops: []Stop{
		{Pos: 0, Color: RGB{0, 0, 255}},
		{Pos: 0.25, Color: RGB{128, 0, 200}},
		{Pos: 0.5, Color: RGB{255, 128, 0}},
		{Pos: 0.75, Color: RGB{255, 64, 0}},
		{Pos: 1, Color: RGB{255, 0, 0}},
	},
	Fallback:     RGB{180, 180, 180},
	Missing:      RGB{0, 0, 0},
	MissingAlpha: 0.01,
}

// GreyRed is a continuous two-color blend
var GreyRed = Gradient{
	Name: "grey-red",
	Stops: []Stop{
		{Pos: 0, Color: RGB{180, 180, 180}},
		{Pos: 1, Color: RGB{255, 0, 0}},
	},
	Fallback:     RGB{180, 180, 180},
	Missing:      RGB{128, 128, 128},
	MissingAlpha: 0.3,
}

var registry = map[string]Gradient{
	Price.Name:   Price,
	Poverty.Name: Poverty,
	Heat.Name:    Heat,
	GreyRed.Name: GreyRed,
}

// Lookup returns a preset gradient by name. A preset with malformed stops
// is reported as an error rather than served.
func Lookup(name string) (Gradient, error) {
	g, ok := registry[name]
	if !ok {
		return Gradient{}, fmt.Errorf("unknown gradient %q", name)
	}
	if err := g.Validate(); err != nil {
		return Gradient{}, fmt.Errorf("gradient %q: %w", name, err)
	}
	return g, nil
}

// Names lists the preset gradients
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// HeatStops returns the gradient as the position -> css map leaflet-heat expects
func HeatStops(g Gradient) map[string]string {
	stops := make(map[string]string, len(g.Stops))
	for _, s := range g.Stops {
		stops[fmt.Sprintf("%g", s.Pos)] = s.Color.CSS(1)
	}
	return stops
}
