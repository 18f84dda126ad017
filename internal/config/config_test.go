package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeManifest(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, ManifestName)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	return path
}

func TestFindWalksUp(t *testing.T) {
	root := t.TempDir()
	want := writeManifest(t, root, "")

	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	got, ok, err := Find(nested)
	if err != nil || !ok {
		t.Fatalf("Find = (%q, %v, %v)", got, ok, err)
	}
	if got != want {
		t.Fatalf("Find = %q, want %q", got, want)
	}
}

func TestFindMissing(t *testing.T) {
	_, ok, err := Find(t.TempDir())
	if err != nil {
		t.Fatalf("Find failed: %v", err)
	}
	if ok {
		t.Fatal("Find reported a manifest in an empty tree")
	}
}

func TestLoad(t *testing.T) {
	path := writeManifest(t, t.TempDir(), `
[sheet]
rows = 20
cols = 30

[view]
size = 5

[ui]
mode = "off"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Sheet.Rows != 20 || cfg.Sheet.Cols != 30 {
		t.Fatalf("sheet = %+v", cfg.Sheet)
	}
	if cfg.View.Size != 5 {
		t.Fatalf("view.size = %d", cfg.View.Size)
	}
	if cfg.UI.Mode != "off" {
		t.Fatalf("ui.mode = %q", cfg.UI.Mode)
	}
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	path := writeManifest(t, t.TempDir(), "[sheet]\nrows = 7\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	def := Default()
	if cfg.Sheet.Rows != 7 || cfg.Sheet.Cols != def.Sheet.Cols {
		t.Fatalf("sheet = %+v", cfg.Sheet)
	}
	if cfg.UI.Mode != def.UI.Mode {
		t.Fatalf("ui.mode = %q", cfg.UI.Mode)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	cases := []string{
		"[sheet]\nrows = 0\n",
		"[sheet]\ncols = -3\n",
		"[view]\nsize = 0\n",
		"[ui]\nmode = \"sometimes\"\n",
		"[sheet\n",
	}
	for _, body := range cases {
		path := writeManifest(t, t.TempDir(), body)
		if _, err := Load(path); err == nil {
			t.Fatalf("Load accepted %q", body)
		}
	}
}

func TestDiscoverDefaults(t *testing.T) {
	cfg, err := Discover(t.TempDir())
	if err != nil {
		t.Fatalf("Discover failed: %v", err)
	}
	if cfg != Default() {
		t.Fatalf("Discover = %+v, want defaults", cfg)
	}
}
