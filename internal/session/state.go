package session

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"GiftChart/internal/model"
)

// LoadState reads the session state from a JSON file. Returns a zero state if the file doesn't exist.
func LoadState(filePath string) (*model.SessionState, error) {
	if filePath == "" {
		return &model.SessionState{}, nil
	}
	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return &model.SessionState{}, nil
		}
		return nil, err
	}
	var state model.SessionState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, err
	}
	return &state, nil
}

// SaveState writes the session state to a JSON file. An empty path keeps the
// state in memory only.
func SaveState(filePath string, state *model.SessionState) error {
	state.UpdatedAt = time.Now()
	if filePath == "" {
		return nil
	}
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}
	if dir := filepath.Dir(filePath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(filePath, data, 0600)
}
