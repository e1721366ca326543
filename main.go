// Package main provides the entry point for the Menu Book Studio application.
package main

import (
	"context"
	"log"
	"os"
	"time"

	"menubook/internal/api"
	"menubook/internal/app"
	"menubook/ui/mainwindow"
	"menubook/ui/prefs"
	"menubook/ui/viewer"

	fyneapp "fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/dialog"
)

const (
	appTitle   = "Menu Book Studio"
	appVersion = "0.1.0"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Printf("Starting %s v%s", appTitle, appVersion)

	fyneApp := fyneapp.NewWithID("com.menubook.studio")
	fyneApp.Settings().SetTheme(&app.MenuBookTheme{})

	appPrefs := prefs.Load()

	serverURL := os.Getenv("MENUBOOK_SERVER")
	if serverURL == "" {
		serverURL = appPrefs.String(prefs.KeyServerURL, prefs.DefaultServerURL)
	}
	log.Printf("Backend: %s", serverURL)

	client := api.NewClient(serverURL)
	appState := app.NewState(client)

	win := mainwindow.New(fyneApp, appState, appPrefs)

	// Fetch the restaurant list up front so the selectors populate.
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := appState.RefreshRestaurants(ctx); err != nil {
			log.Printf("Initial list fetch failed: %v", err)
		}
	}()

	// A slug argument opens that menu's viewer straight away.
	if len(os.Args) > 1 {
		viewer.Open(fyneApp, client, os.Args[1], 0)
	}

	setupHotReload(win)

	win.SetOnClosed(func() {
		win.SavePreferences()
		appState.CloseSession()
	})

	win.ShowAndRun()
}

// setupHotReload configures automatic restart detection when the binary is recompiled.
func setupHotReload(win *mainwindow.MainWindow) {
	reloader := app.NewHotReloader(2 * time.Second)
	if reloader == nil {
		log.Println("Hot reload: unable to determine executable path")
		return
	}

	log.Printf("Hot reload: watching %s (modified %s)",
		reloader.ExecPath(), reloader.StartupTime().Format("15:04:05"))

	reloader.OnTick(func() {
		win.SavePreferencesIfChanged()
	})

	reloader.OnNewBinary(func() {
		log.Println("Hot reload: newer binary detected")
		dialog.ShowConfirm("New Version Available",
			"The application binary has been updated.\nRestart now?",
			func(restart bool) {
				if restart {
					log.Println("Hot reload: saving preferences before restart...")
					win.SavePreferences()
					log.Println("Hot reload: restarting...")
					if err := reloader.Restart(); err != nil {
						log.Printf("Hot reload: restart failed: %v", err)
					}
					return
				}
				reloader.ResetBaseline()
				reloader.Start()
			}, win.Window)
	})

	reloader.Start()
}
