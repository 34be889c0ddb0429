package upload

import (
	"os"
)

// SettingsFileSystem is the interface the settings manager uses to persist snapshots.
type SettingsFileSystem interface {
	MkDir(name string) error
	RemoveFile(filename string) error
	WriteFile(filename string, data []byte) error
	ReadFile(filename string) ([]byte, error)
	ReadDir(dirname string) ([]string, error)
}

// SettingsFileSystemImpl is the OS-backed implementation of SettingsFileSystem.
type SettingsFileSystemImpl struct {
}

// MkDir creates the settings directory if it does not exist yet.
func (fs *SettingsFileSystemImpl) MkDir(name string) error {
	return os.MkdirAll(name, 0700)
}

// ReadFile reads a settings file.
func (fs *SettingsFileSystemImpl) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(name)
}

// WriteFile writes a settings file.
func (fs *SettingsFileSystemImpl) WriteFile(name string, data []byte) error {
	return os.WriteFile(name, data, 0600)
}

// RemoveFile deletes a settings file.
func (fs *SettingsFileSystemImpl) RemoveFile(name string) error {
	return os.Remove(name)
}

// ReadDir returns the entries of the settings directory sorted by filename.
func (fs *SettingsFileSystemImpl) ReadDir(name string) ([]string, error) {
	names := make([]string, 0)

	files, err := os.ReadDir(name)
	if err != nil {
		return names, err
	}

	for _, file := range files {
		names = append(names, file.Name())
	}

	return names, nil
}
