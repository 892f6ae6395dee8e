package variant

import (
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/adrg/xdg"
)

//go:embed variants/*.toml
var builtinFS embed.FS

// Standard is the name of the built-in orthodox chess variant.
const Standard = "standard"

// userDir is the variant directory under the XDG config home.
const userDir = "chessvariant/variants"

type entry struct {
	config *Config
	source string
}

// Catalog holds named variants loaded from embedded and user files.
type Catalog struct {
	variants map[string]entry
	logger   *slog.Logger
}

// NewCatalog creates an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{
		variants: make(map[string]entry),
		logger:   slog.Default().With("component", "variant-catalog"),
	}
}

// LoadBuiltin loads the variants embedded in the binary.
func (c *Catalog) LoadBuiltin() error {
	files, err := fs.Glob(builtinFS, "variants/*.toml")
	if err != nil {
		return err
	}
	for _, name := range files {
		data, err := builtinFS.ReadFile(name)
		if err != nil {
			return fmt.Errorf("read builtin %s: %w", name, err)
		}
		if _, err := c.add(data, "builtin"); err != nil {
			return fmt.Errorf("builtin %s: %w", path.Base(name), err)
		}
	}
	return nil
}

// LoadFile reads and registers a variant file. A variant already in the
// catalog under the same name is replaced.
func (c *Catalog) LoadFile(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("read variant: %w", err)
	}
	return c.add(data, filePath)
}

// LoadUser registers every *.toml file found in the user variant
// directories. Files that fail to load are skipped and logged.
func (c *Catalog) LoadUser() int {
	loaded := 0
	dirs := append([]string{xdg.ConfigHome}, xdg.ConfigDirs...)
	for _, base := range dirs {
		dir := filepath.Join(base, filepath.FromSlash(userDir))
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, e := range entries {
			if e.IsDir() || !strings.HasSuffix(e.Name(), ".toml") {
				continue
			}
			file := filepath.Join(dir, e.Name())
			if _, err := c.LoadFile(file); err != nil {
				c.logger.Warn("skipping user variant", "path", file, "err", err)
				continue
			}
			loaded++
		}
	}
	return loaded
}

// Resolve returns a variant by name, falling back to a user file named
// <name>.toml under the XDG config directories.
func (c *Catalog) Resolve(name string) (*Config, error) {
	if cfg, err := c.Get(name); err == nil {
		return cfg, nil
	}
	file, err := xdg.SearchConfigFile(path.Join(userDir, name+".toml"))
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrVariantNotFound, name)
	}
	return c.LoadFile(file)
}

// Get returns a registered variant.
func (c *Catalog) Get(name string) (*Config, error) {
	e, ok := c.variants[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrVariantNotFound, name)
	}
	return e.config, nil
}

// List returns summaries of every registered variant sorted by name.
func (c *Catalog) List() []Info {
	infos := make([]Info, 0, len(c.variants))
	for _, e := range c.variants {
		info := e.config.Info()
		info.Source = e.source
		infos = append(infos, info)
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })
	return infos
}

// Decode parses a TOML variant definition and builds its Config.
func Decode(data []byte) (*Config, error) {
	var def Definition
	if err := toml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("parse variant: %w", err)
	}
	if def.Name == "" {
		return nil, fmt.Errorf("%w: missing name", ErrInvalidVariant)
	}
	cfg, err := New(def)
	if err != nil {
		return nil, fmt.Errorf("validate variant %s: %w", def.Name, err)
	}
	return cfg, nil
}

func (c *Catalog) add(data []byte, source string) (*Config, error) {
	cfg, err := Decode(data)
	if err != nil {
		return nil, err
	}
	if prev, ok := c.variants[cfg.Name()]; ok {
		c.logger.Info("variant overridden", "name", cfg.Name(), "previous", prev.source, "source", source)
	}
	c.variants[cfg.Name()] = entry{config: cfg, source: source}
	c.logger.Debug("variant loaded", "name", cfg.Name(), "source", source,
		"width", cfg.Dimensions().Width, "height", cfg.Dimensions().Height)
	return cfg, nil
}

// Builtin returns an embedded variant without consulting user files.
func Builtin(name string) (*Config, error) {
	data, err := builtinFS.ReadFile("variants/" + name + ".toml")
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrVariantNotFound, name)
	}
	return Decode(data)
}
