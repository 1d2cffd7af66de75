// Package settings persists the user's preference toggles.
package settings

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const fileName = "settings.yaml"

// Settings are the user preference toggles. All default to on.
type Settings struct {
	Sound      bool `yaml:"sound"`
	Haptic     bool `yaml:"haptic"`
	Animations bool `yaml:"animations"`
}

// Defaults returns the out-of-the-box settings.
func Defaults() Settings {
	return Settings{Sound: true, Haptic: true, Animations: true}
}

// Manager loads and saves settings under a config directory.
type Manager struct {
	path    string
	current Settings
}

// Load reads settings from dir/settings.yaml, falling back to defaults
// when the file does not exist yet.
func Load(dir string) (*Manager, error) {
	m := &Manager{path: filepath.Join(dir, fileName), current: Defaults()}

	data, err := os.ReadFile(m.path)
	if errors.Is(err, fs.ErrNotExist) {
		return m, nil
	}
	if err != nil {
		return nil, fmt.Errorf("settings: read %s: %w", m.path, err)
	}

	if err := yaml.Unmarshal(data, &m.current); err != nil {
		return nil, fmt.Errorf("settings: parse %s: %w", m.path, err)
	}
	return m, nil
}

// Current returns the active settings.
func (m *Manager) Current() Settings {
	return m.current
}

// ToggleSound flips the sound preference and persists it.
func (m *Manager) ToggleSound() error {
	m.current.Sound = !m.current.Sound
	return m.save()
}

// ToggleHaptic flips the haptic preference and persists it.
func (m *Manager) ToggleHaptic() error {
	m.current.Haptic = !m.current.Haptic
	return m.save()
}

// ToggleAnimations flips the animations preference and persists it.
func (m *Manager) ToggleAnimations() error {
	m.current.Animations = !m.current.Animations
	return m.save()
}

// Reset restores the defaults and persists them.
func (m *Manager) Reset() error {
	m.current = Defaults()
	return m.save()
}

func (m *Manager) save() error {
	if err := os.MkdirAll(filepath.Dir(m.path), 0o755); err != nil {
		return fmt.Errorf("settings: create %s: %w", filepath.Dir(m.path), err)
	}
	data, err := yaml.Marshal(m.current)
	if err != nil {
		return fmt.Errorf("settings: encode: %w", err)
	}
	if err := os.WriteFile(m.path, data, 0o644); err != nil {
		return fmt.Errorf("settings: write %s: %w", m.path, err)
	}
	return nil
}
