package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
	"github.com/rs/zerolog/log"

	"github.com/SiirRandall/yanix-launcher/internal/config"
	"github.com/SiirRandall/yanix-launcher/internal/i18n"
	"github.com/SiirRandall/yanix-launcher/internal/launcher"
	"github.com/SiirRandall/yanix-launcher/internal/links"
	"github.com/SiirRandall/yanix-launcher/internal/settings"
)

// Deps are the components the window calls into.
type Deps struct {
	Opener   links.Opener
	Config   *config.Config
	Store    *settings.Store
	Launcher *launcher.Launcher
}

// Shell is the mounted launcher window.
type Shell struct {
	w         fyne.Window
	d         Deps
	welcome   *widget.Label
	langLabel *widget.Label
	logView   *widget.Entry

	playBtn       *widget.Button
	selectExeBtn  *widget.Button
	winetricksBtn *widget.Button
	settingsBtn   *widget.Button
	downloadBtn   *widget.Button
	supportBtn    *widget.Button
	communityBtn  *widget.Button
	blogBtn       *widget.Button
}

func logLine(e *widget.Entry, format string, args ...any) {
	fyne.Do(func() {
		ts := time.Now().Format("15:04:05")
		e.SetText(e.Text + fmt.Sprintf("[%s] %s\n", ts, fmt.Sprintf(format, args...)))
		e.CursorColumn = 0
		e.CursorRow = strings.Count(e.Text, "\n")
	})
}

func runOnUI(fn func()) { fyne.Do(fn) }

// Build builds and mounts the launcher UI on the given window.
func Build(w fyne.Window, d Deps) *Shell {
	s := &Shell{
		w:         w,
		d:         d,
		welcome:   widget.NewLabel(""),
		langLabel: widget.NewLabel(""),
		logView:   widget.NewMultiLineEntry(),

		playBtn:       widget.NewButton("Play", nil),
		selectExeBtn:  widget.NewButton("Select .exe for WINE", nil),
		winetricksBtn: widget.NewButton("Winetricks", nil),
		settingsBtn:   widget.NewButton("Settings", nil),
		downloadBtn:   widget.NewButton("Download Game", nil),
		supportBtn:    widget.NewButton("Support", nil),
		communityBtn:  widget.NewButton("Discord", nil),
		blogBtn:       widget.NewButton("Blog", nil),
	}
	s.refreshLabels()
	s.logView.Disable()
	s.logView.SetPlaceHolder("Logs will appear here…")

	buttons := container.NewVBox(
		s.playBtn,
		s.settingsBtn,
		s.selectExeBtn,
		s.downloadBtn,
		s.winetricksBtn,
		s.supportBtn,
		s.communityBtn,
		s.blogBtn,
		s.welcome,
		s.langLabel,
	)
	w.SetContent(container.NewBorder(nil, nil, buttons, nil,
		container.NewBorder(widget.NewLabel("Status / Logs"), nil, nil, nil, s.logView)))

	s.downloadBtn.OnTapped = s.openLink(d.Config.Links.Download)
	s.supportBtn.OnTapped = s.openLink(d.Config.Links.Support)
	s.communityBtn.OnTapped = s.openLink(d.Config.Links.Community)
	s.blogBtn.OnTapped = s.openLink(d.Config.Links.Blog)
	s.playBtn.OnTapped = s.play
	s.selectExeBtn.OnTapped = s.selectExecutable
	s.winetricksBtn.OnTapped = s.runAuxTool
	s.settingsBtn.OnTapped = s.showSettings

	if p, ok := d.Store.ExecutablePath(); ok {
		logLine(s.logView, "Executable: %s", p)
	} else {
		logLine(s.logView, "No executable selected yet.")
	}
	return s
}

func (s *Shell) refreshLabels() {
	s.welcome.SetText(fmt.Sprintf("Welcome to Yanix Launcher V %s", s.d.Config.Version))
	s.langLabel.SetText("Language: " + i18n.DisplayName(s.d.Store.Language()))
}

func (s *Shell) showErr(err error) {
	log.Error().Err(err).Msg("action failed")
	logLine(s.logView, "Error: %v", err)
	dialog.ShowInformation("Error", userMessage(err), s.w)
}

func (s *Shell) openLink(raw string) func() {
	return func() {
		if err := links.Open(s.d.Opener, raw); err != nil {
			s.showErr(err)
		}
	}
}

func (s *Shell) play() {
	// disabled before launching so a fast exit cannot be overtaken
	s.playBtn.Disable()
	sess, err := s.d.Launcher.LaunchConfigured(context.Background(), s.d.Store)
	if err != nil {
		s.playBtn.Enable()
		s.showErr(err)
		return
	}
	logLine(s.logView, "Started %s (pid %d)", sess.Path, sess.PID)
}

// SessionEnded is the launcher's exit hook. It runs on the monitor goroutine.
func (s *Shell) SessionEnded(sess *launcher.Session) {
	played := sess.Duration(time.Now()).Round(time.Second)
	if err := sess.Err(); err != nil {
		logLine(s.logView, "Game exited after %s: %v", played, err)
	} else {
		logLine(s.logView, "Game exited after %s", played)
	}
	runOnUI(s.playBtn.Enable)
}

func (s *Shell) selectExecutable() {
	fd := dialog.NewFileOpen(func(rc fyne.URIReadCloser, err error) {
		if err != nil {
			s.showErr(err)
			return
		}
		if rc == nil {
			return
		}
		p := rc.URI().Path()
		_ = rc.Close()
		if err := s.d.Store.SetExecutablePath(p); err != nil {
			s.showErr(fmt.Errorf("could not save executable path: %w", err))
			return
		}
		logLine(s.logView, "Executable set to: %s", p)
		dialog.ShowInformation("Success", "Executable path saved successfully.", s.w)
	}, s.w)
	fd.SetFilter(storage.NewExtensionFileFilter([]string{".exe"}))
	fd.Show()
}

func (s *Shell) runAuxTool() {
	if err := s.d.Launcher.LaunchAuxiliaryTool(context.Background()); err != nil {
		s.showErr(err)
		return
	}
	logLine(s.logView, "Started %s", s.d.Config.AuxTool)
}

func (s *Shell) showSettings() {
	var dlg dialog.Dialog
	f := newSettingsForm(s.d.Store, func(code string) {
		dlg.Hide()
		s.languageApplied(code)
	}, s.showErr)

	dlg = dialog.NewCustom("Settings", "Close",
		container.NewVBox(widget.NewLabel("Select Language"), f.sel, f.apply), s.w)
	dlg.Resize(fyne.NewSize(300, 180))
	dlg.Show()
}

func (s *Shell) languageApplied(code string) {
	s.refreshLabels()
	logLine(s.logView, "Language set to %s", code)
	dialog.ShowInformation("Info", languageChangedMessage(code), s.w)
}

// settingsForm is the language picker shown in the settings dialog.
type settingsForm struct {
	codes []string
	sel   *widget.Select
	apply *widget.Button
}

// newSettingsForm preselects the stored language. onApplied runs after a
// successful save.
func newSettingsForm(store *settings.Store, onApplied func(code string), onErr func(error)) *settingsForm {
	f := &settingsForm{codes: i18n.Codes()}
	names := make([]string, len(f.codes))
	for i, c := range f.codes {
		names[i] = fmt.Sprintf("%s (%s)", i18n.DisplayName(c), c)
	}
	f.sel = widget.NewSelect(names, nil)
	current := store.Language()
	for i, c := range f.codes {
		if c == current {
			f.sel.SetSelectedIndex(i)
		}
	}

	f.apply = widget.NewButton("Apply", func() {
		i := f.sel.SelectedIndex()
		if i < 0 {
			return
		}
		code := f.codes[i]
		if err := store.SetLanguage(code); err != nil {
			onErr(fmt.Errorf("could not save language setting: %w", err))
			return
		}
		onApplied(code)
	})
	return f
}

func languageChangedMessage(code string) string {
	msg := "Language changed!"
	if i18n.MachineTranslated(code) {
		msg += "\n\nThis language is machine translated and may have mistakes."
	}
	return msg
}

// userMessage maps launcher failures to the text shown in dialogs.
func userMessage(err error) string {
	switch {
	case errors.Is(err, launcher.ErrConfigurationUnset):
		return "Game executable not set. Please select the .exe file first."
	case errors.Is(err, launcher.ErrPathInvalid):
		return "Saved game path is invalid. Please re-select the executable."
	case errors.Is(err, launcher.ErrAlreadyRunning):
		return "The game is already running."
	case errors.Is(err, launcher.ErrRuntimeMissing):
		return fmt.Sprintf("Not installed or not in your PATH: %v", err)
	default:
		return err.Error()
	}
}
