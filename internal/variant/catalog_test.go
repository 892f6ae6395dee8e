package variant

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/adrg/xdg"
)

func TestLoadBuiltin(t *testing.T) {
	c := NewCatalog()
	if err := c.LoadBuiltin(); err != nil {
		t.Fatalf("LoadBuiltin() error: %v", err)
	}

	infos := c.List()
	var names []string
	for _, info := range infos {
		names = append(names, info.Name)
		if info.Source != "builtin" {
			t.Errorf("%s Source = %q, want builtin", info.Name, info.Source)
		}
	}
	if got := strings.Join(names, ","); got != "capablanca,losalamos,standard" {
		t.Errorf("List() names = %s, want capablanca,losalamos,standard", got)
	}

	cfg, err := c.Get("capablanca")
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if cfg.Dimensions().Width != 10 {
		t.Errorf("capablanca width = %d, want 10", cfg.Dimensions().Width)
	}

	if _, err := c.Get("nonexistent"); !errors.Is(err, ErrVariantNotFound) {
		t.Errorf("Get(nonexistent) error = %v, want ErrVariantNotFound", err)
	}
}

func TestBuiltin(t *testing.T) {
	for _, name := range []string{"standard", "capablanca", "losalamos"} {
		cfg, err := Builtin(name)
		if err != nil {
			t.Errorf("Builtin(%s) error: %v", name, err)
			continue
		}
		if cfg.Name() != name {
			t.Errorf("Builtin(%s).Name() = %q", name, cfg.Name())
		}
	}
	if _, err := Builtin("nonexistent"); !errors.Is(err, ErrVariantNotFound) {
		t.Errorf("Builtin(nonexistent) error = %v, want ErrVariantNotFound", err)
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "mini.toml")
	if err := os.WriteFile(file, []byte(miniVariant), 0o644); err != nil {
		t.Fatal(err)
	}

	c := NewCatalog()
	cfg, err := c.LoadFile(file)
	if err != nil {
		t.Fatalf("LoadFile() error: %v", err)
	}
	if cfg.Name() != "mini" {
		t.Errorf("Name() = %q, want mini", cfg.Name())
	}
	if infos := c.List(); len(infos) != 1 || infos[0].Source != file {
		t.Errorf("List() = %+v", infos)
	}

	if _, err := c.LoadFile(filepath.Join(dir, "missing.toml")); err == nil {
		t.Error("LoadFile(missing) should fail")
	}
}

func TestUserVariants(t *testing.T) {
	// Registered first so it runs after the environment is restored.
	t.Cleanup(xdg.Reload)
	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", home)
	t.Setenv("XDG_CONFIG_DIRS", t.TempDir())
	xdg.Reload()

	dir := filepath.Join(home, "chessvariant", "variants")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	override := strings.Replace(miniVariant, `name = "mini"`, `name = "standard"`, 1)
	files := map[string]string{
		"mini.toml":   miniVariant,
		"std.toml":    override,
		"broken.toml": "name = \"broken\"\nwidth = 0\n",
		"notes.txt":   "ignored",
	}
	for name, data := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(data), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	c := NewCatalog()
	if err := c.LoadBuiltin(); err != nil {
		t.Fatalf("LoadBuiltin() error: %v", err)
	}
	if n := c.LoadUser(); n != 2 {
		t.Errorf("LoadUser() = %d, want 2", n)
	}

	std, err := c.Get("standard")
	if err != nil {
		t.Fatalf("Get(standard) error: %v", err)
	}
	if std.Dimensions().Width != 5 {
		t.Errorf("user file did not override standard: width %d", std.Dimensions().Width)
	}
	if _, err := c.Get("broken"); !errors.Is(err, ErrVariantNotFound) {
		t.Errorf("Get(broken) error = %v, want ErrVariantNotFound", err)
	}
}

func TestResolveSearchesUserDir(t *testing.T) {
	// Registered first so it runs after the environment is restored.
	t.Cleanup(xdg.Reload)
	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", home)
	t.Setenv("XDG_CONFIG_DIRS", t.TempDir())
	xdg.Reload()

	dir := filepath.Join(home, "chessvariant", "variants")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "mini.toml"), []byte(miniVariant), 0o644); err != nil {
		t.Fatal(err)
	}

	c := NewCatalog()
	cfg, err := c.Resolve("mini")
	if err != nil {
		t.Fatalf("Resolve(mini) error: %v", err)
	}
	if cfg.Name() != "mini" {
		t.Errorf("Name() = %q, want mini", cfg.Name())
	}
	if _, err := c.Get("mini"); err != nil {
		t.Errorf("resolved variant not registered: %v", err)
	}
	if _, err := c.Resolve("absent"); !errors.Is(err, ErrVariantNotFound) {
		t.Errorf("Resolve(absent) error = %v, want ErrVariantNotFound", err)
	}
}
