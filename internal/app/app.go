package app

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"fyne.io/fyne/v2"
	fynex "fyne.io/fyne/v2/app"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"

	"github.com/SiirRandall/yanix-launcher/internal/config"
	"github.com/SiirRandall/yanix-launcher/internal/launcher"
	"github.com/SiirRandall/yanix-launcher/internal/logging"
	"github.com/SiirRandall/yanix-launcher/internal/paths"
	"github.com/SiirRandall/yanix-launcher/internal/presence"
	"github.com/SiirRandall/yanix-launcher/internal/settings"
	"github.com/SiirRandall/yanix-launcher/internal/ui"
)

const IconFile = "Yanix-Launcher.png"

// Components is everything the window needs, built from one Config.
type Components struct {
	Config   *config.Config
	Store    *settings.Store
	Reporter *presence.Reporter
	Launcher *launcher.Launcher
}

// NewComponents wires the store, reporter and launcher for cfg. onExit is
// handed every finished game session and may be nil.
func NewComponents(afs afero.Fs, cfg *config.Config, client presence.Client, onExit func(*launcher.Session)) *Components {
	if !cfg.Presence.Enabled {
		client = presence.NopClient{}
	}
	rep := presence.NewReporter(client, presence.Options{
		ClientID:   cfg.Presence.ClientID,
		LargeImage: cfg.Presence.LargeImage,
		LargeText:  cfg.Presence.LargeText,
	})
	return &Components{
		Config:   cfg,
		Store:    settings.New(afs, cfg.DataDir),
		Reporter: rep,
		Launcher: launcher.New(launcher.Options{
			Reporter:    rep,
			Fs:          afs,
			CompatLayer: cfg.CompatLayer,
			AuxTool:     cfg.AuxTool,
			GameTitle:   cfg.GameTitle,
			OnExit:      onExit,
		}),
	}
}

// Start connects presence (best effort) and reports the idle state.
func (c *Components) Start() {
	if err := c.Reporter.Connect(); err == nil {
		c.Reporter.Report(presence.Idle())
	}
}

// Stop disconnects presence. A running game is left alone.
func (c *Components) Stop() {
	c.Reporter.Disconnect()
}

// Run is the entry point used by main.
func Run() error {
	if runtime.GOOS != "linux" {
		fmt.Println("Note: Yanix Launcher targets Linux with WINE. Other platforms are untested.")
	}

	dataDir, err := paths.ResolveDataDir()
	if err != nil {
		return fmt.Errorf("resolve data dir: %w", err)
	}
	afs := afero.NewOsFs()
	cfg, err := config.Load(afs, dataDir)
	if err != nil {
		return err
	}
	if err := logging.Init(dataDir, cfg.Debug); err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	log.Info().Str("data_dir", dataDir).Str("compat", cfg.CompatLayer).Msg("starting launcher")

	// games can only be started from the shell, so it is set before any exit
	var shell *ui.Shell
	comps := NewComponents(afs, cfg, presence.DiscordClient{}, func(s *launcher.Session) {
		shell.SessionEnded(s)
	})
	comps.Start()

	a := fynex.NewWithID("com.yanix.launcher")
	w := a.NewWindow("Yanix Launcher")
	if icon := loadIcon(dataDir); icon != nil {
		a.SetIcon(icon)
		w.SetIcon(icon)
	}
	w.Resize(fyne.NewSize(1100, 600))
	w.SetFixedSize(true)

	shell = ui.Build(w, ui.Deps{
		Opener:   a,
		Config:   cfg,
		Store:    comps.Store,
		Launcher: comps.Launcher,
	})
	w.SetOnClosed(comps.Stop)

	w.ShowAndRun()
	return nil
}

func loadIcon(dir string) fyne.Resource {
	p := filepath.Join(dir, IconFile)
	if _, err := os.Stat(p); err != nil {
		return nil
	}
	res, err := fyne.LoadResourceFromPath(p)
	if err != nil {
		log.Warn().Err(err).Str("path", p).Msg("failed to load icon")
		return nil
	}
	return res
}
