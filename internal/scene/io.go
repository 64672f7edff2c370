package scene

import (
	"encoding/json"
	"fmt"
	"os"
)

// Load reads render Settings from a JSON file.
// Fields missing from the file keep the values already present in base.
func Load(path string, base Settings) (Settings, error) {
	f, err := os.Open(path)
	if err != nil {
		return base, fmt.Errorf("open settings: %w", err)
	}
	defer f.Close()

	s := base
	if err := json.NewDecoder(f).Decode(&s); err != nil {
		return base, fmt.Errorf("decode settings: %w", err)
	}
	return s, nil
}

// Save writes Settings to a JSON file.
func Save(path string, s Settings) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create settings: %w", err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	return nil
}
