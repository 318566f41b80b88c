package events

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// LoadFromFile loads event entries from a JSON file.
func LoadFromFile(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read events file: %w", err)
	}

	var list []Entry
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("failed to parse events JSON: %w", err)
	}
	return list, nil
}

// GetDefaultPath returns the path to the events file in the user config directory.
func GetDefaultPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get config directory: %w", err)
	}
	return filepath.Join(configDir, "swipecal", "events.json"), nil
}

// LoadDefault loads the events file from the user config directory. A missing
// file is not an error and yields no entries.
func LoadDefault() ([]Entry, error) {
	path, err := GetDefaultPath()
	if err != nil {
		return nil, err
	}
	list, err := LoadFromFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	return list, err
}
