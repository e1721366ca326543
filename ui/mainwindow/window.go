// Package mainwindow provides the main application window.
package mainwindow

import (
	"context"
	"fmt"
	"time"

	"menubook/internal/app"
	"menubook/internal/version"
	"menubook/ui/panels"
	"menubook/ui/prefs"
	"menubook/ui/viewer"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
)

// MainWindow is the studio's primary window: the admin panels in tabs with a
// status bar underneath. Viewer windows are opened separately, one per menu.
type MainWindow struct {
	fyne.Window
	app   fyne.App
	state *app.State
	prefs *prefs.Prefs

	tabs      *container.AppTabs
	statusBar *widget.Label

	restaurants *panels.RestaurantsPanel
	banners     *panels.BannerPanel
	metadata    *panels.MetadataPanel
	create      *panels.CreatePanel
}

// New creates the main window.
func New(fyneApp fyne.App, state *app.State, p *prefs.Prefs) *MainWindow {
	win := fyneApp.NewWindow("Menu Book Studio")

	mw := &MainWindow{
		Window: win,
		app:    fyneApp,
		state:  state,
		prefs:  p,
	}

	mw.setupUI()
	mw.setupMenus()
	mw.setupEventHandlers()
	mw.restoreWindowSize()

	return mw
}

// setupUI creates the main UI layout.
func (mw *MainWindow) setupUI() {
	mw.restaurants = panels.NewRestaurantsPanel(mw.state, mw.app)
	mw.banners = panels.NewBannerPanel(mw.state, mw.Window, mw.prefs)
	mw.metadata = panels.NewMetadataPanel(mw.state)
	mw.create = panels.NewCreatePanel(mw.state, mw.Window, mw.prefs)

	mw.tabs = container.NewAppTabs(
		container.NewTabItem("Restaurants", mw.restaurants.Container()),
		container.NewTabItem("Banner Studio", mw.banners.Container()),
		container.NewTabItem("Settings", mw.metadata.Container()),
		container.NewTabItem("Create", mw.create.Container()),
	)

	mw.statusBar = widget.NewLabel("Ready")

	content := container.NewBorder(
		nil,                               // top
		container.NewPadded(mw.statusBar), // bottom
		nil,                               // left
		nil,                               // right
		mw.tabs,                           // center
	)
	mw.SetContent(content)
}

// setupMenus creates the application menus.
func (mw *MainWindow) setupMenus() {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Refresh Restaurants", mw.onRefresh),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() { mw.app.Quit() }),
	)

	viewerMenu := fyne.NewMenu("Viewer",
		fyne.NewMenuItem("Open Menu by Slug...", mw.onOpenBySlug),
		fyne.NewMenuItem("Open Last Viewed Menu", mw.onOpenLast),
	)

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", mw.onAbout),
	)

	mw.SetMainMenu(fyne.NewMainMenu(fileMenu, viewerMenu, helpMenu))
}

// setupEventHandlers registers for application events.
func (mw *MainWindow) setupEventHandlers() {
	mw.state.On(app.EventRestaurantListLoaded, func(data interface{}) {
		mw.updateStatus("Restaurant list loaded")
	})

	mw.state.On(app.EventRestaurantLoaded, func(data interface{}) {
		if rec := mw.state.CurrentRecord(); rec != nil {
			mw.SetTitle("Menu Book Studio - " + rec.Name)
			mw.prefs.SetString(prefs.KeyLastSlug, rec.Slug)
			mw.updateStatus("Editing " + rec.Name)
		}
	})

	mw.state.On(app.EventRestaurantLoadFailed, func(data interface{}) {
		if err, ok := data.(error); ok {
			mw.updateStatus("Load failed: " + err.Error())
		}
	})

	mw.state.On(app.EventDraftChanged, func(data interface{}) {
		mw.updateStatus("Draft modified")
	})

	mw.state.On(app.EventSaveSucceeded, func(data interface{}) {
		mw.updateStatus("Banners saved")
	})

	mw.state.On(app.EventSaveFailed, func(data interface{}) {
		if err, ok := data.(error); ok {
			mw.updateStatus("Save failed: " + err.Error())
		}
	})

	mw.state.On(app.EventStatusToggled, func(data interface{}) {
		mw.updateStatus("Status updated")
	})

	mw.state.On(app.EventRestaurantCreated, func(data interface{}) {
		mw.updateStatus("Restaurant created")
	})
}

// restoreWindowSize applies the persisted window size, falling back to a
// sensible default for a tabbed form layout.
func (mw *MainWindow) restoreWindowSize() {
	w := mw.prefs.Float(prefs.KeyWindowWidth, 1100)
	h := mw.prefs.Float(prefs.KeyWindowHeight, 780)
	mw.Resize(fyne.NewSize(float32(w), float32(h)))
}

// PersistWindowSize records the current window size in preferences.
func (mw *MainWindow) PersistWindowSize() {
	size := mw.Canvas().Size()
	mw.prefs.SetFloat(prefs.KeyWindowWidth, float64(size.Width))
	mw.prefs.SetFloat(prefs.KeyWindowHeight, float64(size.Height))
}

// SavePreferences persists the window size and writes preferences to disk.
func (mw *MainWindow) SavePreferences() {
	mw.PersistWindowSize()
	if err := mw.prefs.Save(); err != nil {
		mw.updateStatus("Failed to save preferences: " + err.Error())
	}
}

// SavePreferencesIfChanged writes preferences only if something changed.
// Safe to call from a background goroutine.
func (mw *MainWindow) SavePreferencesIfChanged() {
	_ = mw.prefs.SaveIfChanged()
}

// updateStatus updates the status bar text.
func (mw *MainWindow) updateStatus(text string) {
	mw.statusBar.SetText(text)
}

// autoplayInterval reads the configured slideshow interval; zero disables it.
func (mw *MainWindow) autoplayInterval() time.Duration {
	secs := mw.prefs.Float(prefs.KeyAutoplaySeconds, 0)
	if secs <= 0 {
		return 0
	}
	return time.Duration(secs * float64(time.Second))
}

// Menu action handlers

func (mw *MainWindow) onRefresh() {
	mw.updateStatus("Refreshing...")
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := mw.state.RefreshRestaurants(ctx); err != nil {
			mw.updateStatus("Refresh failed: " + err.Error())
		}
	}()
}

func (mw *MainWindow) onOpenBySlug() {
	entry := widget.NewEntry()
	entry.SetPlaceHolder("restaurant-slug")
	entry.SetText(mw.prefs.String(prefs.KeyLastSlug, ""))
	dialog.ShowForm("Open Menu", "Open", "Cancel",
		[]*widget.FormItem{widget.NewFormItem("Slug", entry)},
		func(ok bool) {
			if !ok || entry.Text == "" {
				return
			}
			mw.prefs.SetString(prefs.KeyLastSlug, entry.Text)
			viewer.Open(mw.app, mw.state.Client(), entry.Text, mw.autoplayInterval())
		}, mw.Window)
}

func (mw *MainWindow) onOpenLast() {
	slug := mw.prefs.String(prefs.KeyLastSlug, "")
	if slug == "" {
		mw.updateStatus("No menu viewed yet")
		return
	}
	viewer.Open(mw.app, mw.state.Client(), slug, mw.autoplayInterval())
}

func (mw *MainWindow) onAbout() {
	dialog.ShowInformation("About Menu Book Studio",
		fmt.Sprintf("Menu Book Studio v%s\n\n"+
			"Digital menu books and promotional banners for restaurants.\n\n"+
			"Built: %s\n"+
			"Commit: %s",
			version.Version, version.BuildTime, version.GitCommit),
		mw.Window)
}
