// Package localstate resolves where durable client state lives and opens it.
package localstate

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	envHome    = "GUARDIAO_HOME" // override for tests
	dirName    = ".guardiao"     // default under $HOME
	dbFilename = "session.db"
)

// DataDir returns the directory where local state is stored.
// custom wins over GUARDIAO_HOME, which wins over ~/.guardiao.
// It creates the directory with 0700 permissions if it does not exist.
func DataDir(custom string) (string, error) {
	if custom == "" {
		custom = os.Getenv(envHome)
	}
	if custom != "" {
		if err := os.MkdirAll(custom, 0o700); err != nil {
			return "", err
		}
		return custom, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine user home: %w", err)
	}
	dir := filepath.Join(home, dirName)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", err
	}
	return dir, nil
}

// DBPath returns the absolute path to the session database file.
func DBPath(custom string) (string, error) {
	dir, err := DataDir(custom)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, dbFilename), nil
}
