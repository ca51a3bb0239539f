package config

var Presets = map[string]*Config{
	"reference": DefaultConfig(),
	"quick": {
		Cycles: 3,
		Grid:   GridConfig{Size: 10, Strings: 20, DeltaChi: 1e-8, Sigma: 1.0, Samples: 10},
		Stretch: StretchConfig{
			Factor: 2, Power: 3,
		},
		Reheat: ReheatConfig{Steps: 20, Epsilon: 0.01, Omega: DefaultOmega},
	},
	"fine": {
		Cycles:  5,
		Grid:    GridConfig{Size: 30, Strings: 100, DeltaChi: 1e-8, Sigma: 1.0, Samples: 20},
		Stretch: StretchConfig{Factor: 4, Power: 3},
		Reheat:  ReheatConfig{Steps: 100, Epsilon: 0.01, Omega: DefaultOmega},
	},
	"biased": {
		Cycles:  5,
		Grid:    GridConfig{Size: 20, Strings: 50, DeltaChi: 0.1, Sigma: 1.0, Samples: 10},
		Stretch: StretchConfig{Factor: 4, Power: 3},
		Reheat:  ReheatConfig{Steps: 50, Epsilon: 0.01, Omega: DefaultOmega},
	},
}

func GetPreset(name string) *Config {
	return Presets[name]
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
