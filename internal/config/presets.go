package config

import (
	"sort"

	"github.com/san-kum/pendulab/internal/pendulum"
)

type Preset struct {
	Description string
	Pendulum    pendulum.Config
	InitState   InitStateConfig
}

var Presets = map[string]Preset{
	"rest": {
		Description: "hanging straight down",
		Pendulum:    pendulum.DefaultConfig(),
	},
	"gentle": {
		Description: "small swing, nearly periodic",
		Pendulum:    pendulum.DefaultConfig(),
		InitState:   InitStateConfig{Theta1: 0.3, Theta2: 0.3},
	},
	"swing": {
		Description: "both rods raised to the horizontal",
		Pendulum:    pendulum.DefaultConfig(),
		InitState:   InitStateConfig{Theta1: 1.5, Theta2: 1.5},
	},
	"chaos": {
		Description: "released almost upside down",
		Pendulum:    pendulum.DefaultConfig(),
		InitState:   InitStateConfig{Theta1: 3.0, Theta2: 3.0},
	},
	"heavy-top": {
		Description: "heavy upper bob, light lower bob",
		Pendulum: pendulum.Config{
			Length1: 150, Length2: 150, Mass1: 50, Mass2: 10, Gravity: pendulum.DefaultGravity,
		},
		InitState: InitStateConfig{Theta1: 1.0, Theta2: 2.0},
	},
	"heavy-bottom": {
		Description: "light upper bob carrying a heavy lower bob",
		Pendulum: pendulum.Config{
			Length1: 100, Length2: 200, Mass1: 10, Mass2: 50, Gravity: pendulum.DefaultGravity,
		},
		InitState: InitStateConfig{Theta1: 2.0, Theta2: 1.0},
	},
}

func GetPreset(name string) *Preset {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	return &p
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
