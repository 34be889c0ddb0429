package upload

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	yaml "gopkg.in/yaml.v3"
)

const settingsFilePrefix = "FormsinkSettings"

// SettingsMgr is the versioned settings store. Snapshots are persisted so the
// service comes back up with the settings it last ran with.
type SettingsMgr interface {
	PutSettings(s Settings) (int64, error)
	DisposeSettings(version int64) error
}

type settingsMgrImpl struct {
	curVersion int64
	dir        string
	fileSystem SettingsFileSystem
	mux        sync.Mutex
}

// NewSettingsMgr creates a settings manager over dir and restores any
// previously persisted snapshots.
func NewSettingsMgr(fileSystem SettingsFileSystem, dir string) (SettingsMgr, map[int64]Settings, error) {
	c := &settingsMgrImpl{
		dir:        strings.TrimSuffix(dir, "/") + "/",
		fileSystem: fileSystem,
	}

	err := c.fileSystem.MkDir(c.dir)
	if err != nil {
		return nil, nil, err
	}

	m, err := c.restoreSettings()
	if err != nil {
		return nil, nil, err
	}

	return c, m, nil
}

// PutSettings writes the settings snapshot to disk and returns its version.
func (c *settingsMgrImpl) PutSettings(s Settings) (int64, error) {
	c.mux.Lock()
	defer c.mux.Unlock()

	bb, err := yaml.Marshal(&s)
	if err != nil {
		return -1, err
	}

	err = c.fileSystem.WriteFile(c.dir+settingsFilePrefix+strconv.FormatInt(c.curVersion, 10), bb)
	if err != nil {
		return -1, err
	}

	c.curVersion++
	return c.curVersion - 1, nil
}

// DisposeSettings deletes the settings snapshot of the given version.
func (c *settingsMgrImpl) DisposeSettings(version int64) error {
	c.mux.Lock()
	defer c.mux.Unlock()

	err := c.fileSystem.RemoveFile(c.dir + settingsFilePrefix + strconv.FormatInt(version, 10))
	if err != nil {
		return fmt.Errorf("delete settings version %v has error: %v", version, err)
	}

	return nil
}

func (c *settingsMgrImpl) restoreSettings() (map[int64]Settings, error) {
	c.mux.Lock()
	defer c.mux.Unlock()

	c.curVersion = 0
	m := make(map[int64]Settings)
	files, err := c.fileSystem.ReadDir(c.dir)
	if err != nil {
		return m, err
	}

	var found = false
	for _, f := range files {
		if !strings.HasPrefix(f, settingsFilePrefix) {
			continue
		}

		bb, err := c.fileSystem.ReadFile(c.dir + f)
		if err != nil {
			return m, fmt.Errorf("read settings file %v has error: %v", f, err)
		}

		var s Settings
		if err := yaml.Unmarshal(bb, &s); err != nil {
			return m, fmt.Errorf("decode settings file %v has error: %v", f, err)
		}

		v, err := strconv.ParseInt(f[len(settingsFilePrefix):], 10, 64)
		if err != nil {
			return m, fmt.Errorf("processing settings file %v has error: %v", f, err)
		}

		found = true
		if v > c.curVersion {
			c.curVersion = v
		}
		m[v] = s
	}

	if found {
		c.curVersion++
	}

	return m, nil
}
