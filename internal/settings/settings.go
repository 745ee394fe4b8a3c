// Package settings persists the remote-connection credentials blob: the
// single piece of local state that survives restarts. It is read once at
// startup and written only by the explicit settings-save action; catalog and
// cart state never touch it.
package settings

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/go-faster/errors"
)

// Settings is the stored configuration blob.
type Settings struct {
	ProjectID          string `json:"projectId"`
	CredentialsFile    string `json:"credentialsFile,omitempty"`
	ProductsCollection string `json:"productsCollection,omitempty"`
	ContentCollection  string `json:"contentCollection,omitempty"`
	ContentDoc         string `json:"contentDoc,omitempty"`
}

// IsZero reports whether no setting has been saved.
func (s Settings) IsZero() bool {
	return s == Settings{}
}

// Load reads the blob from path. A missing file is not an error: it returns
// the zero value, meaning "use the environment configuration".
func Load(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Settings{}, nil
		}
		return Settings{}, errors.Wrap(err, "read settings")
	}

	var s Settings
	if err := json.Unmarshal(data, &s); err != nil {
		return Settings{}, errors.Wrap(err, "decode settings")
	}
	return s, nil
}

// Save writes the blob atomically: a temp file in the same directory is
// renamed over the target, so a crashed save never leaves a torn file.
func Save(path string, s Settings) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encode settings")
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".settings-*")
	if err != nil {
		return errors.Wrap(err, "create temp file")
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errors.Wrap(err, "write settings")
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "close temp file")
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return errors.Wrap(err, "replace settings")
	}
	return nil
}
