package core

import "testing"

func TestTicksPerSecond(t *testing.T) {
	tests := []struct {
		name     string
		tickRate int
		want     int
	}{
		{"configured", 60, 60},
		{"zero falls back", 0, DefaultTickRate},
		{"negative falls back", -5, DefaultTickRate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := RuntimeConfig{TickRate: tt.tickRate}
			if got := cfg.TicksPerSecond(); got != tt.want {
				t.Errorf("TicksPerSecond() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.ScreenW != 80 || cfg.ScreenH != 24 {
		t.Errorf("unexpected screen size %dx%d", cfg.ScreenW, cfg.ScreenH)
	}
	if cfg.TickRate != DefaultTickRate {
		t.Errorf("TickRate = %d, want %d", cfg.TickRate, DefaultTickRate)
	}
	if cfg.Seed != 0 {
		t.Errorf("Seed = %d, want 0", cfg.Seed)
	}
}
