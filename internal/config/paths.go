package config

import (
	"os"
	"path/filepath"

	"github.com/gitops-tools/autoresolve/internal/errors"
)

// File and directory names for configuration discovery.
const (
	// HomeDirName is the global configuration directory under $HOME.
	HomeDirName = ".autoresolve"

	// GlobalConfigFileName is the config file inside the global directory.
	GlobalConfigFileName = "config.yaml"

	// ProjectConfigFileName is the per-repository config file.
	ProjectConfigFileName = ".autoresolve.yaml"

	// LogsDirName is the log directory inside the global directory.
	LogsDirName = "logs"

	// LogFileName is the rotating CLI log file.
	LogFileName = "autoresolve.log"
)

// HomeDir returns the autoresolve home directory path.
// If the AUTORESOLVE_HOME environment variable is set, it is used as-is.
// Otherwise it defaults to ~/.autoresolve.
func HomeDir() (string, error) {
	if home := os.Getenv("AUTORESOLVE_HOME"); home != "" {
		return home, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "failed to get user home directory")
	}

	return filepath.Join(home, HomeDirName), nil
}

// GlobalConfigPath returns the path of the global config file.
func GlobalConfigPath() (string, error) {
	dir, err := HomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, GlobalConfigFileName), nil
}

// ProjectConfigPath returns the path of the per-repository config file for
// the given working directory.
func ProjectConfigPath(workDir string) string {
	return filepath.Join(workDir, ProjectConfigFileName)
}

// LogFilePath returns the path to the rotating CLI log file.
func LogFilePath() (string, error) {
	dir, err := HomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, LogsDirName, LogFileName), nil
}
