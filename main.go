// Package main provides the entry point for the Worship Presenter editor.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/dialog"

	"worship-presenter/internal/app"
	"worship-presenter/internal/deck"
	"worship-presenter/internal/media"
	"worship-presenter/internal/remote"
	"worship-presenter/internal/version"
	"worship-presenter/ui/mainwindow"
	"worship-presenter/ui/prefs"
)

const appTitle = "Worship Presenter"

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Printf("Starting %s v%s", appTitle, version.Version)

	appPrefs := prefs.Load()

	d := deck.Sample()
	if len(os.Args) > 1 {
		loaded, err := deck.Load(os.Args[1])
		if err != nil {
			log.Printf("Failed to load deck %s: %v", os.Args[1], err)
		} else {
			d = loaded
		}
	}

	state := app.NewState(d)
	cfg := state.Config()
	cfg.SnapToGrid = appPrefs.Bool(prefs.KeySnapToGrid, cfg.SnapToGrid)
	cfg.GridSize = appPrefs.Float(prefs.KeyGridSize, cfg.GridSize)
	cfg.ShowGuides = appPrefs.Bool(prefs.KeyShowGuides, cfg.ShowGuides)
	state.SetConfig(cfg)

	library, err := media.Open(dataDir())
	if err != nil {
		log.Fatalf("Failed to open media library: %v", err)
	}

	fyneApp := fyneapp.NewWithID("worship-presenter")
	fyneApp.Settings().SetTheme(&app.PresenterTheme{})

	win := mainwindow.New(fyneApp, state, library, appPrefs)
	win.Resize(windowSize(appPrefs))
	win.SetCloseIntercept(func() {
		size := win.Canvas().Size()
		appPrefs.SetFloat(prefs.KeyWindowWidth, float64(size.Width))
		appPrefs.SetFloat(prefs.KeyWindowHeight, float64(size.Height))
		if err := appPrefs.Save(); err != nil {
			log.Printf("Failed to save preferences: %v", err)
		}
		win.Close()
	})

	startRemote(state, appPrefs)

	if os.Getenv("WP_HOT_RELOAD") != "" {
		setupHotReload(win)
	}

	win.ShowAndRun()
}

// dataDir returns the application data directory, creating it if needed.
func dataDir() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir = filepath.Join(os.Getenv("HOME"), ".config")
	}
	dir := filepath.Join(configDir, "worship-presenter")
	if err := os.MkdirAll(dir, 0755); err != nil {
		log.Printf("Failed to create data dir %s: %v", dir, err)
	}
	return dir
}

func windowSize(p *prefs.Prefs) fyne.Size {
	w := float32(p.Float(prefs.KeyWindowWidth, 1280))
	h := float32(p.Float(prefs.KeyWindowHeight, 800))
	if w < 640 {
		w = 640
	}
	if h < 400 {
		h = 400
	}
	return fyne.NewSize(w, h)
}

// startRemote launches the remote-control API when enabled by either the
// environment or preferences.
func startRemote(state *app.State, p *prefs.Prefs) {
	cfg, err := remote.LoadConfig()
	if err != nil {
		log.Printf("Remote control: bad configuration: %v", err)
		return
	}
	if !cfg.Enabled && !p.Bool(prefs.KeyRemoteEnabled, false) {
		return
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	srv := remote.NewServer(cfg, state, logger)
	srv.Start(context.Background())
	log.Printf("Remote control: listening on %s", cfg.Addr)
}

// setupHotReload restarts the editor when a newer binary appears, for
// development sessions.
func setupHotReload(win *mainwindow.MainWindow) {
	reloader := app.NewHotReloader(2 * time.Second)
	if reloader == nil {
		log.Println("Hot reload: unable to determine executable path")
		return
	}

	log.Printf("Hot reload: watching %s (modified %s)",
		reloader.ExecPath(), reloader.StartupTime().Format("15:04:05"))

	reloader.OnNewBinary(func() {
		log.Println("Hot reload: newer binary detected")
		dialog.ShowConfirm("New Version Available",
			"The application binary has been updated.\nRestart now?",
			func(restart bool) {
				if !restart {
					reloader.ResetBaseline()
					reloader.Start()
					return
				}
				log.Println("Hot reload: restarting...")
				if err := reloader.Restart(); err != nil {
					log.Printf("Hot reload: restart failed: %v", err)
				}
			}, win.Window)
	})

	reloader.Start()
}
