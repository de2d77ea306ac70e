// Package config loads and stores the user's preferences.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	ErrProfileNotFound  = errors.New("profile not found")
	ErrDuplicateProfile = errors.New("profile already exists")
	ErrInvalidProfile   = errors.New("invalid profile")
)

// Profile is a named script directory with its own grid width.
type Profile struct {
	Name      string `yaml:"name"`
	ScriptDir string `yaml:"script_dir"`
	Columns   int    `yaml:"columns"`
}

type Preferences struct {
	ActiveProfile string    `yaml:"active_profile"`
	Terminal      string    `yaml:"terminal,omitempty"`
	Profiles      []Profile `yaml:"profiles"`

	app AppConfig
}

// Default returns preferences with a single default profile.
func Default(app AppConfig) *Preferences {
	p := &Preferences{app: app}
	setDefaults(p)
	return p
}

// Load reads preferences from path. A missing file is not an error and yields
// defaults. A file that cannot be read or parsed yields defaults together with
// the error so the caller can report it.
func Load(path string, app AppConfig) (*Preferences, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(app), nil
		}
		return Default(app), fmt.Errorf("read preferences: %w", err)
	}

	p := &Preferences{app: app}
	if err := yaml.Unmarshal(data, p); err != nil {
		return Default(app), fmt.Errorf("parse preferences %s: %w", path, err)
	}

	setDefaults(p)
	return p, nil
}

// Save writes the preferences atomically, creating the parent directory.
func (p *Preferences) Save(path string) error {
	data, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode preferences: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create preferences directory: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write preferences: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replace preferences: %w", err)
	}
	return nil
}

func setDefaults(p *Preferences) {
	if p.app.DefaultColumns <= 0 {
		p.app.DefaultColumns = DefaultColumns
	}

	kept := p.Profiles[:0]
	seen := make(map[string]bool, len(p.Profiles))
	for _, profile := range p.Profiles {
		profile.Name = strings.TrimSpace(profile.Name)
		if profile.Name == "" || seen[profile.Name] {
			continue
		}
		seen[profile.Name] = true
		kept = append(kept, p.normalize(profile))
	}
	p.Profiles = kept

	if len(p.Profiles) == 0 {
		p.Profiles = append(p.Profiles, p.normalize(Profile{Name: DefaultProfile}))
	}
	if !seen[p.ActiveProfile] || p.ActiveProfile == "" {
		p.ActiveProfile = p.Profiles[0].Name
	}
}

func (p *Preferences) normalize(profile Profile) Profile {
	if profile.Columns <= 0 {
		profile.Columns = p.app.DefaultColumns
	}
	if profile.Columns > MaxColumns {
		profile.Columns = MaxColumns
	}
	if strings.TrimSpace(profile.ScriptDir) == "" {
		profile.ScriptDir = p.app.DefaultScriptDir
	}
	return profile
}

// Active returns the profile currently in use. It is never nil.
func (p *Preferences) Active() *Profile {
	if profile, err := p.Profile(p.ActiveProfile); err == nil {
		return profile
	}
	setDefaults(p)
	return &p.Profiles[0]
}

// Profile returns the named profile for modification in place.
func (p *Preferences) Profile(name string) (*Profile, error) {
	for i := range p.Profiles {
		if p.Profiles[i].Name == name {
			return &p.Profiles[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrProfileNotFound, name)
}

func (p *Preferences) ProfileNames() []string {
	names := make([]string, 0, len(p.Profiles))
	for _, profile := range p.Profiles {
		names = append(names, profile.Name)
	}
	return names
}

func (p *Preferences) AddProfile(profile Profile) error {
	profile.Name = strings.TrimSpace(profile.Name)
	if profile.Name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidProfile)
	}
	if _, err := p.Profile(profile.Name); err == nil {
		return fmt.Errorf("%w: %q", ErrDuplicateProfile, profile.Name)
	}
	p.Profiles = append(p.Profiles, p.normalize(profile))
	return nil
}

// RemoveProfile deletes the named profile. Removing the active profile
// activates the first remaining one; removing the last recreates the default.
func (p *Preferences) RemoveProfile(name string) error {
	for i := range p.Profiles {
		if p.Profiles[i].Name != name {
			continue
		}
		p.Profiles = append(p.Profiles[:i], p.Profiles[i+1:]...)
		setDefaults(p)
		return nil
	}
	return fmt.Errorf("%w: %q", ErrProfileNotFound, name)
}

// Use makes the named profile active.
func (p *Preferences) Use(name string) error {
	if _, err := p.Profile(name); err != nil {
		return err
	}
	p.ActiveProfile = name
	return nil
}

// SetColumns updates the active profile's grid width. Values below one are
// replaced by the default and values above MaxColumns are clamped.
func (p *Preferences) SetColumns(n int) {
	active := p.Active()
	active.Columns = n
	*active = p.normalize(*active)
}

// SetScriptDir points the active profile at dir.
func (p *Preferences) SetScriptDir(dir string) {
	active := p.Active()
	active.ScriptDir = dir
	*active = p.normalize(*active)
}
