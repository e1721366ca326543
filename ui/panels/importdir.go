package panels

import (
	"os"
	"path/filepath"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/storage"

	"menubook/ui/prefs"
)

// lastImportDir returns the directory the operator last imported an image
// from, when one is recorded and still exists.
func lastImportDir(p *prefs.Prefs) (string, bool) {
	dir := p.String(prefs.KeyLastImportDir, "")
	if dir == "" {
		return "", false
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return "", false
	}
	return dir, true
}

// lastImportLocation wraps lastImportDir as a file dialog start location.
func lastImportLocation(p *prefs.Prefs) (fyne.ListableURI, bool) {
	dir, ok := lastImportDir(p)
	if !ok {
		return nil, false
	}
	lister, err := storage.ListerForURI(storage.NewFileURI(dir))
	if err != nil {
		return nil, false
	}
	return lister, true
}

// rememberImportDir records the directory of a picked file so the next file
// dialog opens there.
func rememberImportDir(p *prefs.Prefs, uri fyne.URI) {
	dir := filepath.Dir(uri.Path())
	if dir == "" || dir == "." {
		return
	}
	p.SetString(prefs.KeyLastImportDir, dir)
}
