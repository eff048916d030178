package config

import "sort"

var Presets = map[string]map[string]*Config{
	"oscillator": {
		"default": {
			System: "oscillator", Method: "dopri5", Tol: 1e-6, End: 20.0, Samples: 401,
		},
		"damped": {
			System: "oscillator", Method: "dopri5", Tol: 1e-6, End: 30.0, Samples: 601,
			Params: map[string]float64{"damping": 0.3},
		},
		"stiff-spring": {
			System: "oscillator", Method: "dopri5", Tol: 1e-8, End: 5.0, Samples: 1001,
			Params: map[string]float64{"stiffness": 400},
		},
	},
	"decay": {
		"slow": {
			System: "decay", Method: "bs32", Tol: 1e-6, End: 10.0, Samples: 101,
		},
		"fast": {
			System: "decay", Method: "dopri5", Tol: 1e-6, End: 1.0, Samples: 101,
			Params: map[string]float64{"rate": 10},
		},
	},
	"lorenz": {
		"chaos": {
			System: "lorenz", Method: "dopri5", Tol: 1e-8, End: 25.0, Samples: 2501,
		},
		"transient": {
			System: "lorenz", Method: "bs32", Tol: 1e-5, End: 5.0, Samples: 501,
		},
	},
	"kepler": {
		"circular": {
			System: "kepler", Method: "dopri5", Tol: 1e-8, End: 6.2832, Samples: 201,
			Params: map[string]float64{"eccentricity": 0},
		},
		"eccentric": {
			System: "kepler", Method: "dopri5", Tol: 1e-9, End: 12.5664, Samples: 401,
		},
		"extreme": {
			System: "kepler", Method: "dopri5", Tol: 1e-10, End: 6.2832, Samples: 401,
			Params: map[string]float64{"eccentricity": 0.9},
		},
	},
	"tank": {
		"heatup": {
			System: "tank", Method: "dopri5", Tol: 1e-6, End: 21600, Samples: 361,
			Params: map[string]float64{"loadflow": 0},
		},
		"evening-draw": {
			System: "tank", Method: "dopri5", Tol: 1e-6, End: 14400, Samples: 241,
			Params: map[string]float64{"loadflow": 0.03},
		},
		"standby": {
			System: "tank", Method: "bs32", Tol: 1e-5, End: 86400, Samples: 289,
			Params: map[string]float64{"heatpump": 0, "loadflow": 0},
		},
	},
}

func GetPreset(system, preset string) *Config {
	systemPresets, ok := Presets[system]
	if !ok {
		return nil
	}
	cfg, ok := systemPresets[preset]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets(system string) []string {
	systemPresets, ok := Presets[system]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(systemPresets))
	for name := range systemPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
