package selection

import (
	"encoding/json"
	"os"
	"path/filepath"

	"family-tasks/internal/errors"
)

// slotKey is the key the selected member is stored under.
const slotKey = "selectedMember"

// Slot persists small key-value state across restarts.
type Slot interface {
	// Get returns the stored value and whether it was present.
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Delete(key string) error
}

// FileSlot stores values as a JSON object in a single file.
type FileSlot struct {
	path string
}

// NewFileSlot creates a file-backed slot at the given path.
func NewFileSlot(path string) *FileSlot {
	return &FileSlot{path: path}
}

func (s *FileSlot) read() (map[string]string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, errors.NewGatewayError("read selection file", err)
	}

	values := map[string]string{}
	if err := json.Unmarshal(data, &values); err != nil {
		// A corrupt file behaves like an empty one.
		return map[string]string{}, nil
	}
	return values, nil
}

func (s *FileSlot) write(values map[string]string) error {
	data, err := json.Marshal(values)
	if err != nil {
		return errors.NewGatewayError("encode selection file", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return errors.NewGatewayError("create selection directory", err)
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return errors.NewGatewayError("write selection file", err)
	}
	return nil
}

// Get returns the stored value for key and whether it was present.
func (s *FileSlot) Get(key string) (string, bool, error) {
	values, err := s.read()
	if err != nil {
		return "", false, err
	}
	value, ok := values[key]
	return value, ok, nil
}

// Set stores value under key.
func (s *FileSlot) Set(key, value string) error {
	values, err := s.read()
	if err != nil {
		return err
	}
	values[key] = value
	return s.write(values)
}

// Delete removes key from the slot. Deleting an absent key is not an error.
func (s *FileSlot) Delete(key string) error {
	values, err := s.read()
	if err != nil {
		return err
	}
	if _, ok := values[key]; !ok {
		return nil
	}
	delete(values, key)
	return s.write(values)
}
