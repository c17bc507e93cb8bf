package config

import "github.com/elliotchance/orderedmap/v2"

// Presets keeps insertion order so listings read from the reference scene
// through increasing mass ratios.
var Presets = newPresets()

func newPresets() *orderedmap.OrderedMap[string, *Config] {
	p := orderedmap.NewOrderedMap[string, *Config]()
	base := DefaultConfig()

	p.Set("classic", base)
	// Ratios 100^k: the final count spells the first k+1 digits of pi.
	p.Set("pi1", base.WithMasses(1, 1))
	p.Set("pi2", base.WithMasses(1, 100))
	p.Set("pi3", base.WithMasses(1, 1e4))
	p.Set("pi4", base.WithMasses(1, 1e6))
	p.Set("pi5", base.WithMasses(1, 1e8))
	return p
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets.Get(name)
	if !ok {
		return nil
	}
	cp := *cfg
	return &cp
}

func ListPresets() []string {
	return Presets.Keys()
}
