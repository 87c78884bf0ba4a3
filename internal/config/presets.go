package config

var Presets = map[string]map[string]*Config{
	"quadratic": {
		"sqrt2": {
			Function: "quadratic", Left: 1.0, Right: 2.0,
			Tolerance: 1e-10, MaxIterations: 1000, MinInterval: 1e-15,
		},
		"coarse": {
			Function: "quadratic", Left: 1.0, Right: 2.0,
			Tolerance: 1e-4, MaxIterations: 100, MinInterval: 1e-15,
		},
		"budget": {
			Function: "quadratic", Left: 1.0, Right: 2.0,
			Tolerance: 1e-12, MaxIterations: 20, MinInterval: 1e-15,
		},
	},
	"cubic": {
		"plastic": {
			Function: "cubic", Left: 1.0, Right: 2.0,
			Tolerance: 1e-10, MaxIterations: 1000, MinInterval: 1e-15,
		},
		"coarse": {
			Function: "cubic", Left: 1.0, Right: 2.0,
			Tolerance: 1e-4, MaxIterations: 100, MinInterval: 1e-15,
		},
	},
	"sine": {
		"pi": {
			Function: "sine", Left: 3.0, Right: 4.0,
			Tolerance: 1e-10, MaxIterations: 1000, MinInterval: 1e-15,
		},
		"wide": {
			Function: "sine", Left: 2.0, Right: 4.0,
			Tolerance: 1e-10, MaxIterations: 1000, MinInterval: 1e-15,
		},
	},
	"expdecay": {
		"ln2": {
			Function: "expdecay", Left: 0.0, Right: 2.0,
			Tolerance: 1e-10, MaxIterations: 1000, MinInterval: 1e-15,
		},
	},
	"logshift": {
		"e": {
			Function: "logshift", Left: 1.0, Right: 4.0,
			Tolerance: 1e-10, MaxIterations: 1000, MinInterval: 1e-15,
		},
	},
}

func GetPreset(function, preset string) *Config {
	functionPresets, ok := Presets[function]
	if !ok {
		return nil
	}
	cfg, ok := functionPresets[preset]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets(function string) []string {
	functionPresets, ok := Presets[function]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(functionPresets))
	for name := range functionPresets {
		names = append(names, name)
	}
	return names
}
