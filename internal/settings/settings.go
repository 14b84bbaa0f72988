// Package settings persists the user's selected executable and UI language
// as single-value plain-text files.
package settings

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/SiirRandall/yanix-launcher/internal/i18n"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

const (
	ExecutableFile = "game_path.txt"
	LanguageFile   = "multilang.txt"
)

var ErrUnsupportedLanguage = errors.New("unsupported language")

// Store reads and writes settings under a single directory. Missing or
// unreadable files read as unset; writes surface I/O errors.
type Store struct {
	fs  afero.Fs
	dir string
}

func New(fs afero.Fs, dir string) *Store {
	return &Store{fs: fs, dir: dir}
}

func (s *Store) Dir() string { return s.dir }

// ExecutablePath returns the saved game executable, if any. The path is not
// checked for existence here.
func (s *Store) ExecutablePath() (string, bool) {
	v := s.read(ExecutableFile)
	return v, v != ""
}

func (s *Store) SetExecutablePath(path string) error {
	return s.write(ExecutableFile, path)
}

func (s *Store) Language() string {
	v := s.read(LanguageFile)
	if !i18n.Supported(v) {
		if v != "" {
			log.Warn().Str("code", v).Msg("unsupported language in settings, using default")
		}
		return i18n.Default
	}
	return v
}

func (s *Store) SetLanguage(code string) error {
	if !i18n.Supported(code) {
		return fmt.Errorf("%w: %q", ErrUnsupportedLanguage, code)
	}
	return s.write(LanguageFile, code)
}

func (s *Store) read(name string) string {
	p := filepath.Join(s.dir, name)
	data, err := afero.ReadFile(s.fs, p)
	if err != nil {
		if !errors.Is(err, afero.ErrFileNotFound) {
			log.Warn().Err(err).Str("path", p).Msg("failed to read setting")
		}
		return ""
	}
	return strings.TrimSpace(string(data))
}

func (s *Store) write(name, value string) error {
	if err := s.fs.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create settings dir: %w", err)
	}
	p := filepath.Join(s.dir, name)
	if err := afero.WriteFile(s.fs, p, []byte(value), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	log.Debug().Str("path", p).Msg("setting saved")
	return nil
}
