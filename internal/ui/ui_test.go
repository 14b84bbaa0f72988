package ui

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"testing"
	"time"

	"fyne.io/fyne/v2/test"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SiirRandall/yanix-launcher/internal/config"
	"github.com/SiirRandall/yanix-launcher/internal/i18n"
	"github.com/SiirRandall/yanix-launcher/internal/launcher"
	"github.com/SiirRandall/yanix-launcher/internal/settings"
)

const gamePath = "/games/YandereSimulator/YandereSimulator.exe"

type fakeProcess struct {
	exit chan error
}

func (*fakeProcess) Pid() int      { return 4242 }
func (p *fakeProcess) Wait() error { return <-p.exit }

type fakeExecutor struct {
	proc *fakeProcess
}

func (*fakeExecutor) LookPath(name string) (string, error) {
	return "", fmt.Errorf("%s: not found", name)
}

func (e *fakeExecutor) Start(context.Context, string, ...string) (launcher.Process, error) {
	return e.proc, nil
}

type harness struct {
	shell  *Shell
	store  *settings.Store
	fs     afero.Fs
	proc   *fakeProcess
	exited chan *launcher.Session
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	a := test.NewTempApp(t)
	w := test.NewWindow(nil)
	t.Cleanup(w.Close)

	cfg := config.Defaults()
	cfg.DataDir = "/data"
	h := &harness{
		fs:     afero.NewMemMapFs(),
		proc:   &fakeProcess{exit: make(chan error, 1)},
		exited: make(chan *launcher.Session, 1),
	}
	require.NoError(t, afero.WriteFile(h.fs, gamePath, []byte("MZ"), 0o644))
	h.store = settings.New(h.fs, cfg.DataDir)

	l := launcher.New(launcher.Options{
		Executor:    &fakeExecutor{proc: h.proc},
		Fs:          h.fs,
		CompatLayer: cfg.CompatLayer,
		AuxTool:     cfg.AuxTool,
		GameTitle:   cfg.GameTitle,
		OnExit: func(s *launcher.Session) {
			h.shell.SessionEnded(s)
			h.exited <- s
		},
	})
	h.shell = Build(w, Deps{Opener: a, Config: &cfg, Store: h.store, Launcher: l})
	return h
}

func TestPlay_DisabledWhileRunning(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.store.SetExecutablePath(gamePath))

	test.Tap(h.shell.playBtn)
	assert.True(t, h.shell.playBtn.Disabled())

	h.proc.exit <- nil
	select {
	case <-h.exited:
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for the session to end")
	}
	assert.False(t, h.shell.playBtn.Disabled())
	assert.Contains(t, h.shell.logView.Text, "Game exited after")
}

func TestPlay_UnsetPathKeepsButtonEnabled(t *testing.T) {
	h := newHarness(t)

	test.Tap(h.shell.playBtn)

	assert.False(t, h.shell.playBtn.Disabled())
	assert.Contains(t, h.shell.logView.Text, "executable not set")
}

func TestSettings_ApplySavesLanguage(t *testing.T) {
	h := newHarness(t)
	require.Equal(t, "Language: "+i18n.DisplayName("en"), h.shell.langLabel.Text)

	f := newSettingsForm(h.store, h.shell.languageApplied, h.shell.showErr)
	i := slices.Index(f.codes, "es")
	require.GreaterOrEqual(t, i, 0)
	f.sel.SetSelectedIndex(i)
	test.Tap(f.apply)

	data, err := afero.ReadFile(h.fs, "/data/multilang.txt")
	require.NoError(t, err)
	assert.Equal(t, "es", string(data))
	assert.Equal(t, "Language: "+i18n.DisplayName("es"), h.shell.langLabel.Text)
	assert.Contains(t, h.shell.logView.Text, "Language set to es")
}

func TestSettings_PreselectsStoredLanguage(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.store.SetLanguage("ja"))

	f := newSettingsForm(h.store, func(string) {}, func(error) {})
	assert.Equal(t, "ja", f.codes[f.sel.SelectedIndex()])
}

func TestSettings_WriteErrorIsReported(t *testing.T) {
	_ = test.NewTempApp(t)
	store := settings.New(afero.NewReadOnlyFs(afero.NewMemMapFs()), "/data")

	var gotErr error
	applied := false
	f := newSettingsForm(store, func(string) { applied = true }, func(err error) { gotErr = err })
	f.sel.SetSelectedIndex(slices.Index(f.codes, "fr"))
	test.Tap(f.apply)

	assert.False(t, applied)
	require.Error(t, gotErr)
	assert.Contains(t, gotErr.Error(), "could not save language setting")
}

func TestLanguageChangedMessage(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Language changed!", languageChangedMessage("en"))
	assert.Equal(t, "Language changed!", languageChangedMessage("pt"))
	assert.Contains(t, languageChangedMessage("es"), "machine translated")
	assert.Contains(t, languageChangedMessage("ja"), "machine translated")
}

func TestUserMessage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err  error
		want string
	}{
		{err: launcher.ErrConfigurationUnset, want: "Game executable not set"},
		{err: fmt.Errorf("%w: /g/x.exe", launcher.ErrPathInvalid), want: "Saved game path is invalid"},
		{err: launcher.ErrAlreadyRunning, want: "already running"},
		{err: fmt.Errorf("%w: winetricks", launcher.ErrRuntimeMissing), want: "winetricks"},
		{err: errors.New("disk full"), want: "disk full"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			t.Parallel()
			assert.Contains(t, userMessage(tt.err), tt.want)
		})
	}
}
