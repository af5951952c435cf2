package config

import "sort"

var Presets = map[string]*Config{
	"default": DefaultConfig(),
	"single": {
		Name: "single", Dt: DefaultDt, Duration: 20.0,
		Forcing: DefaultForcing, Collision: DefaultCollision, MSD: DefaultMSD,
		Ensembles: []EnsembleConfig{
			{Name: "n100", Width: DefaultWidth, Height: DefaultHeight, Particles: 100, Radius: DefaultRadius, Force: DefaultForce, Borders: true},
		},
	},
	"free": {
		Name: "free", Dt: DefaultDt, Duration: DefaultDuration,
		Forcing: DefaultForcing, Collision: DefaultCollision, MSD: DefaultMSD,
		Ensembles: Row(DefaultParticleCounts, DefaultWidth, DefaultHeight, DefaultForce, false),
	},
	"dense": {
		Name: "dense", Dt: DefaultDt, Duration: DefaultDuration,
		Forcing: DefaultForcing, Collision: DefaultCollision, MSD: DefaultMSD,
		Ensembles: []EnsembleConfig{
			{Name: "n2000", Width: 200, Height: 200, Particles: 2000, Radius: 1, Force: 100, Borders: true},
		},
	},
	"narrow": {
		Name: "narrow", Dt: DefaultDt, Duration: 20.0,
		Forcing: DefaultForcing, Collision: DefaultCollision, MSD: DefaultMSD,
		Ensembles: []EnsembleConfig{
			{Name: "channel", Width: DefaultWidth, Height: 50, Particles: 200, Radius: DefaultRadius, Force: DefaultForce, Borders: true},
			{Name: "square", Y: 600, Width: 224, Height: 224, Particles: 200, Radius: DefaultRadius, Force: DefaultForce, Borders: true},
		},
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

// ListPresets returns the preset names in sorted order.
func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
