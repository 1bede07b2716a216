package config

import "sort"

// Preset is a named example function with suggested integration bounds.
type Preset struct {
	Function    string
	Description string
	Bounds      BoundsConfig
	Domain      DomainConfig
}

var Presets = map[string]*Preset{
	"cubic": {
		Function: "x**3 - 3*x**2 + 2", Description: "local maximum at 0, minimum at 2",
		Bounds: BoundsConfig{Lower: "0", Upper: "3"},
	},
	"parabola": {
		Function: "x**2 - 4*x + 1", Description: "single minimum",
		Bounds: BoundsConfig{Lower: "0", Upper: "4"},
	},
	"inflection": {
		Function: "x**3", Description: "flat inflection reported as a saddle point",
		Bounds: BoundsConfig{Lower: "-1", Upper: "1"},
	},
	"constant": {
		Function: "5", Description: "no critical points",
		Bounds: BoundsConfig{Lower: "0", Upper: "2"},
	},
	"quartic": {
		Function: "x**4 - 5*x**2 + 4", Description: "two minima around a maximum",
		Bounds: BoundsConfig{Lower: "-2", Upper: "2"},
		Domain: DomainConfig{Min: -3, Max: 3},
	},
	"wave": {
		Function: "sin(x)", Description: "principal maximum and minimum",
		Bounds: BoundsConfig{Lower: "0", Upper: "3"},
		Domain: DomainConfig{Min: -1, Max: 7},
	},
	"rational": {
		Function: "x/(x**2 + 1)", Description: "rational function with a minimum and a maximum",
		Bounds: BoundsConfig{Lower: "0", Upper: "1"},
	},
	"gaussian": {
		Function: "exp(-x**2/2)", Description: "no closed-form integral",
		Bounds: BoundsConfig{Lower: "-1", Upper: "1"},
		Domain: DomainConfig{Min: -4, Max: 4},
	},
}

func GetPreset(name string) *Preset {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	return p
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
