package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

const (
	AppName    = "yanix-launcher"
	DataDirEnv = "YANIX_DATA_DIR"
)

// ResolveDataDir picks the directory holding the launcher's settings files.
// An explicit override wins, then an existing XDG data dir, then a legacy
// extracted-in-home layout. If none exist the XDG dir is created.
func ResolveDataDir() (string, error) {
	if env := os.Getenv(DataDirEnv); env != "" {
		if err := EnsureDir(env); err != nil {
			return "", err
		}
		return env, nil
	}

	candidates := []string{filepath.Join(xdg.DataHome, AppName)}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, AppName, "binary", "data"))
	}
	for _, c := range candidates {
		if dirExists(c) {
			return c, nil
		}
	}

	fp := candidates[0]
	if err := EnsureDir(fp); err != nil {
		return "", err
	}
	return fp, nil
}

func EnsureDir(p string) error {
	return os.MkdirAll(p, 0o755)
}

func dirExists(p string) bool {
	info, err := os.Stat(p)
	return err == nil && info.IsDir()
}
