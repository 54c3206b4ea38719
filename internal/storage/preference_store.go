package storage

import (
	"errors"
	"sync"

	"cozypomodoro/internal/core/model"
)

// ErrReadOnly is returned by the first Set on a store whose settings file
// could not be loaded. Later Sets stay in memory silently.
var ErrReadOnly = errors.New("settings file unreadable, preferences kept in memory")

// FileStore is a key-value preference store kept in the preferences section
// of the settings file. Every Set rewrites the whole file.
type FileStore struct {
	mu       sync.Mutex
	path     string
	config   model.AppConfig
	readOnly bool
	warned   bool
}

// NewFileStore returns a store over the settings already loaded from path.
func NewFileStore(path string, config model.AppConfig) *FileStore {
	return &FileStore{path: path, config: copyPreferences(config)}
}

// NewReadOnlyFileStore returns a store that never writes path. Use it when the
// file at path failed to load, so the user's file survives untouched.
func NewReadOnlyFileStore(path string, config model.AppConfig) *FileStore {
	return &FileStore{path: path, config: copyPreferences(config), readOnly: true}
}

// OpenFileStore loads settings from path and returns a store over them.
func OpenFileStore(path string) (*FileStore, model.AppConfig, error) {
	config, err := LoadSettings(path)
	if err != nil {
		return nil, config, err
	}
	return NewFileStore(path, config), config, nil
}

// Get returns the stored value for key.
func (store *FileStore) Get(key string) (string, bool) {
	store.mu.Lock()
	defer store.mu.Unlock()
	value, ok := store.config.Preferences[key]
	return value, ok
}

// Set stores value under key and saves the settings file. The value is only
// visible to Get once the file write succeeded.
func (store *FileStore) Set(key, value string) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	if current, ok := store.config.Preferences[key]; ok && current == value {
		return nil
	}

	if store.readOnly {
		store.config.Preferences[key] = value
		if store.warned {
			return nil
		}
		store.warned = true
		return ErrReadOnly
	}

	next := copyPreferences(store.config)
	next.Preferences[key] = value
	if err := SaveSettings(store.path, next); err != nil {
		return err
	}
	store.config = next
	return nil
}

// ReadOnly reports whether Set leaves the file alone.
func (store *FileStore) ReadOnly() bool {
	return store.readOnly
}

// Path returns the settings file location.
func (store *FileStore) Path() string {
	return store.path
}

func copyPreferences(config model.AppConfig) model.AppConfig {
	preferences := make(map[string]string, len(config.Preferences)+1)
	for key, value := range config.Preferences {
		preferences[key] = value
	}
	config.Preferences = preferences
	return config
}
