package config

import (
	"os"
	"path/filepath"
)

const (
	AppName        = "Quick Launch"
	AppID          = "com.quicklaunch.quick-launch"
	AppVersion     = "0.3.0"
	DefaultColumns = 3
	MaxColumns     = 8
	DefaultProfile = "default"

	configDirName   = "quick-launch"
	preferencesFile = "preferences.yaml"
	scriptDirName   = ".quick_launch"
)

// AppConfig holds the process-wide constants. It is built once in main and
// passed to whatever needs it.
type AppConfig struct {
	ID               string
	Name             string
	Version          string
	DefaultColumns   int
	DefaultScriptDir string
	PreferencesPath  string
}

func DefaultAppConfig() AppConfig {
	return AppConfig{
		ID:               AppID,
		Name:             AppName,
		Version:          AppVersion,
		DefaultColumns:   DefaultColumns,
		DefaultScriptDir: defaultScriptDir(),
		PreferencesPath:  defaultPreferencesPath(),
	}
}

func defaultScriptDir() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, scriptDirName)
}

func defaultPreferencesPath() string {
	dir, err := os.UserConfigDir()
	if err != nil || dir == "" {
		return filepath.Join(".", configDirName, preferencesFile)
	}
	return filepath.Join(dir, configDirName, preferencesFile)
}
