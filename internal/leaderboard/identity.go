package leaderboard

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// envPlayerName overrides the display name without touching the
// persisted identity file.
const envPlayerName = "MINIARCADES_PLAYER"

// Identity is who scores are attributed to.
type Identity struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
}

// ResolveIdentity loads the persisted player identity from
// dir/identity.yaml, creating a guest identity on first run. The
// display name is taken from, in order: the MINIARCADES_PLAYER
// environment variable, the configuredName argument, the persisted
// name, or "Guest".
func ResolveIdentity(dir, configuredName string) (Identity, error) {
	path := filepath.Join(dir, "identity.yaml")

	var id Identity
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &id); err != nil {
			return Identity{}, fmt.Errorf("leaderboard: parse %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist):
		// first run, generate below
	default:
		return Identity{}, fmt.Errorf("leaderboard: read %s: %w", path, err)
	}

	dirty := false
	if id.ID == "" {
		id.ID = "guest-" + uuid.NewString()
		dirty = true
	}

	if name := os.Getenv(envPlayerName); name != "" {
		id.Name = name
	} else if configuredName != "" {
		id.Name = configuredName
	} else if id.Name == "" {
		id.Name = "Guest"
		dirty = true
	}

	if dirty {
		if err := saveIdentity(path, id); err != nil {
			return Identity{}, err
		}
	}

	return id, nil
}

func saveIdentity(path string, id Identity) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("leaderboard: create %s: %w", filepath.Dir(path), err)
	}
	data, err := yaml.Marshal(id)
	if err != nil {
		return fmt.Errorf("leaderboard: encode identity: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("leaderboard: write %s: %w", path, err)
	}
	return nil
}
