package panels

import (
	"path/filepath"
	"testing"

	"fyne.io/fyne/v2/storage"

	"menubook/ui/prefs"
)

func TestRememberImportDir(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	p := prefs.Load()

	dir := t.TempDir()
	rememberImportDir(p, storage.NewFileURI(filepath.Join(dir, "menu.jpg")))
	if got := p.String(prefs.KeyLastImportDir, ""); got != dir {
		t.Errorf("KeyLastImportDir = %q, want %q", got, dir)
	}
}

func TestLastImportDir(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	p := prefs.Load()

	if _, ok := lastImportDir(p); ok {
		t.Error("expected no directory before any import")
	}

	dir := t.TempDir()
	p.SetString(prefs.KeyLastImportDir, dir)
	got, ok := lastImportDir(p)
	if !ok || got != dir {
		t.Errorf("lastImportDir = %q, %v, want %q, true", got, ok, dir)
	}

	p.SetString(prefs.KeyLastImportDir, filepath.Join(dir, "gone"))
	if _, ok := lastImportDir(p); ok {
		t.Error("expected no directory once it no longer exists")
	}
}
