package deck

import (
	"encoding/json"
	"fmt"
	"os"
)

// Save writes the deck as indented JSON.
func Save(d *Deck, path string) error {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return fmt.Errorf("encode deck: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write deck: %w", err)
	}
	return nil
}

// Load reads a deck from a JSON file.
func Load(path string) (*Deck, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read deck: %w", err)
	}
	var d Deck
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("decode deck %s: %w", path, err)
	}
	if d.ID == "" {
		return nil, fmt.Errorf("decode deck %s: missing id", path)
	}
	return &d, nil
}
